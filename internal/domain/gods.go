package domain

import "strings"

// GodName - числовой идентификатор бога-покровителя.
type GodName uint8

const (
	GodNone GodName = iota
	GodRa
	GodAnubis
	GodIsis
	GodOsiris
	GodHorus
	GodSet
	GodThoth
	GodBastet

	godCount
)

var godStringToName = map[string]GodName{
	"NONE":   GodNone,
	"RA":     GodRa,
	"ANUBIS": GodAnubis,
	"ISIS":   GodIsis,
	"OSIRIS": GodOsiris,
	"HORUS":  GodHorus,
	"SET":    GodSet,
	"THOTH":  GodThoth,
	"BASTET": GodBastet,
}

var godNameToString = map[GodName]string{
	GodNone:   "NONE",
	GodRa:     "RA",
	GodAnubis: "ANUBIS",
	GodIsis:   "ISIS",
	GodOsiris: "OSIRIS",
	GodHorus:  "HORUS",
	GodSet:    "SET",
	GodThoth:  "THOTH",
	GodBastet: "BASTET",
}

// ParseGod конвертирует строку дескриптора в GodName.
func ParseGod(s string) GodName {
	if g, ok := godStringToName[strings.ToUpper(s)]; ok {
		return g
	}
	return GodNone
}

func (g GodName) String() string {
	if s, ok := godNameToString[g]; ok {
		return s
	}
	return "NONE"
}

// RelationshipTable - плотная таблица множителей урона (бог атакующего x бог цели).
// Строится один раз при старте; незаполненные пары = 1.0.
type RelationshipTable [godCount][godCount]float64

// NewRelationshipTable создает таблицу с известными враждами пантеона.
func NewRelationshipTable() *RelationshipTable {
	var t RelationshipTable
	for i := range t {
		for j := range t[i] {
			t[i][j] = 1.0
		}
	}

	// Вражда Сета с Осирисом и Хором - взаимная.
	t[GodSet][GodOsiris] = 1.5
	t[GodOsiris][GodSet] = 1.5
	t[GodSet][GodHorus] = 1.5
	t[GodHorus][GodSet] = 1.5

	// Ра подавляет хаос Сета.
	t[GodRa][GodSet] = 1.25

	return &t
}

// Multiplier возвращает множитель урона для пары богов.
func (t *RelationshipTable) Multiplier(attacker, defender GodName) float64 {
	if attacker >= godCount || defender >= godCount {
		return 1.0
	}
	return t[attacker][defender]
}
