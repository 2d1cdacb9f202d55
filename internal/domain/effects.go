package domain

import "strings"

// EffectTiming - когда эффект срабатывает.
type EffectTiming uint8

const (
	TimingImmediate EffectTiming = iota
	TimingOnPlay
	TimingOnDeath
	TimingOnDamage
	TimingStartOfTurn
	TimingEndOfTurn
	TimingPersistent
)

var timingToString = map[EffectTiming]string{
	TimingImmediate:   "IMMEDIATE",
	TimingOnPlay:      "ON_PLAY",
	TimingOnDeath:     "ON_DEATH",
	TimingOnDamage:    "ON_DAMAGE",
	TimingStartOfTurn: "START_OF_TURN",
	TimingEndOfTurn:   "END_OF_TURN",
	TimingPersistent:  "PERSISTENT",
}

func (t EffectTiming) String() string {
	if s, ok := timingToString[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// EffectKind - что эффект делает при срабатывании.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectDamage
	EffectHeal
	EffectStatMod
)

// Имена статов для EffectStatMod.
type StatName uint8

const (
	StatAttack StatName = iota
	StatDefense
	StatInitiative
)

// Длительности-маркеры.
const (
	DurationPermanent = -1
	DurationInstant   = 0
)

// Effect - прикрепленный или ожидающий модификатор.
// Duration: -1 постоянный, 0 мгновенный, N>0 раундов осталось.
type Effect struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Kind   EffectKind   `json:"kind"`
	Timing EffectTiming `json:"timing"`

	Duration int      `json:"duration"`
	Stacks   int      `json:"stacks"`
	Stat     StatName `json:"stat,omitempty"`
	Amount   int      `json:"amount"`

	Active bool `json:"active"`
}

// Tick уменьшает длительность после срабатывания.
// Возвращает true, когда эффект истек и подлежит удалению.
func (e *Effect) Tick() bool {
	if e.Duration == DurationPermanent {
		return false
	}
	if e.Duration > 0 {
		e.Duration--
	}
	return e.Duration == 0
}

// ParseTiming конвертирует строку дескриптора в EffectTiming.
func ParseTiming(s string) EffectTiming {
	upper := strings.ToUpper(s)
	for timing, name := range timingToString {
		if name == upper {
			return timing
		}
	}
	return TimingPersistent
}
