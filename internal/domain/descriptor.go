package domain

// EntityDescriptor - "боеготовая" карта, которую движку отдает внешняя
// подсистема колоды. Движок не проверяет ее происхождение, только геометрию.
type EntityDescriptor struct {
	Name      string `json:"name"`
	Side      int    `json:"side"`
	God       string `json:"god"`
	Alignment string `json:"alignment,omitempty"`

	Attack     int `json:"attack"`
	Defense    int `json:"defense"`
	MaxHP      int `json:"maxHp"`
	SpiritPow  int `json:"spiritPow"`
	LifeForce  int `json:"lifeForce"`
	Favor      int `json:"favor"`
	Initiative int `json:"initiative"`
	MoveRange  int `json:"moveRange"`
	Resistance int `json:"resistance"`

	CritChance  float64 `json:"critChance,omitempty"`
	DodgeChance float64 `json:"dodgeChance,omitempty"`
	BlockChance float64 `json:"blockChance,omitempty"`

	SeparableSpirit bool `json:"separableSpirit"`
	ManifestableKa  bool `json:"manifestableKa"`
	Resurrectable   bool `json:"resurrectable"`

	Effects []*Effect `json:"effects,omitempty"`
}

var alignmentStringTo = map[string]Alignment{
	"ORDER": AlignOrder,
	"CHAOS": AlignChaos,
	"LIFE":  AlignLife,
	"DEATH": AlignDeath,
}

// ParseAlignment конвертирует строку дескриптора в Alignment.
func ParseAlignment(s string) Alignment {
	if a, ok := alignmentStringTo[s]; ok {
		return a
	}
	return AlignNone
}

// Materialize собирает сущность из дескриптора. ID присвоит Roster.
func (d *EntityDescriptor) Materialize() *Entity {
	moveRange := d.MoveRange
	if moveRange <= 0 {
		moveRange = 1
	}

	return &Entity{
		ID:        NoEntity,
		Name:      d.Name,
		Side:      d.Side,
		God:       ParseGod(d.God),
		Alignment: ParseAlignment(d.Alignment),
		Stats: &StatsComponent{
			Attack:      d.Attack,
			Defense:     d.Defense,
			HP:          d.MaxHP,
			MaxHP:       d.MaxHP,
			SpiritPow:   d.SpiritPow,
			LifeForce:   d.LifeForce,
			Favor:       d.Favor,
			Initiative:  d.Initiative,
			MoveRange:   moveRange,
			Resistance:  d.Resistance,
			CritChance:  d.CritChance,
			DodgeChance: d.DodgeChance,
			BlockChance: d.BlockChance,
		},
		Caps: Capabilities{
			SeparableSpirit: d.SeparableSpirit,
			ManifestableKa:  d.ManifestableKa,
			Resurrectable:   d.Resurrectable,
		},
		Effects: d.Effects,
	}
}
