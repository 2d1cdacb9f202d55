package domain

import (
	"encoding/json"
	"strings"
)

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionAttack
	ActionCast
	ActionDefend
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"MOVE":   ActionMove,
	"ATTACK": ActionAttack,
	"CAST":   ActionCast,
	"DEFEND": ActionDefend,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionMove:   "MOVE",
	ActionAttack: "ATTACK",
	ActionCast:   "CAST",
	ActionDefend: "DEFEND",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Action - заявленное намерение сущности в фазе действий.
// После Resolved=true запись неизменна и живет в истории боя.
type Action struct {
	Source   EntityID        `json:"source"`
	Type     ActionType      `json:"type"`
	Targets  []EntityID      `json:"targets,omitempty"`
	Params   json.RawMessage `json:"params,omitempty"`
	Round    int             `json:"round"`
	Phase    Phase           `json:"phase"`
	Resolved bool            `json:"resolved"`
	Result   string          `json:"result,omitempty"`
}
