package domain

import "strings"

// EventType - Внутренний числовой идентификатор события
type EventType uint8

const (
	EventUnknown EventType = iota
	EventCombatStarted
	EventRoundStarted
	EventPhaseCompleted
	EventEntityAdded
	EventEntityRemoved
	EventEntityDied
	EventEntityResurrected
	EventInterventionApplied
	EventInterventionExpired
	EventSoulChanged
	EventDamageDealt
	EventHealed
	EventJudgmentPassed
	EventCombatEnded
)

// Маппинг для конвертации JSON -> Domain
var eventStringToCmd = map[string]EventType{
	"COMBAT_STARTED":       EventCombatStarted,
	"ROUND_STARTED":        EventRoundStarted,
	"PHASE_COMPLETED":      EventPhaseCompleted,
	"ENTITY_ADDED":         EventEntityAdded,
	"ENTITY_REMOVED":       EventEntityRemoved,
	"ENTITY_DIED":          EventEntityDied,
	"ENTITY_RESURRECTED":   EventEntityResurrected,
	"INTERVENTION_APPLIED": EventInterventionApplied,
	"INTERVENTION_EXPIRED": EventInterventionExpired,
	"SOUL_CHANGED":         EventSoulChanged,
	"DAMAGE_DEALT":         EventDamageDealt,
	"HEALED":               EventHealed,
	"JUDGMENT_PASSED":      EventJudgmentPassed,
	"COMBAT_ENDED":         EventCombatEnded,
}

// Маппинг для логов Domain -> String
var eventCmdToString = func() map[EventType]string {
	m := make(map[EventType]string, len(eventStringToCmd))
	for s, e := range eventStringToCmd {
		m[e] = s
	}
	return m
}()

// ParseEvent конвертирует строку из JSON в EventType
func ParseEvent(s string) EventType {
	upper := strings.ToUpper(s)
	if val, ok := eventStringToCmd[upper]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (e EventType) String() string {
	if val, ok := eventCmdToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}
