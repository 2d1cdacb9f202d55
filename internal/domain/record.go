package domain

import "encoding/json"

// RecordedAction - одно разрешенное действие в архивной записи боя.
type RecordedAction struct {
	Round   int             `json:"round"`
	Source  EntityID        `json:"source"`
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CombatRecord - архив завершенного боя. Сида и истории действий
// достаточно, чтобы проиграть бой заново: весь рандом движка идет
// из локального генератора.
type CombatRecord struct {
	Seed      int64            `json:"seed"`
	Timestamp int64            `json:"timestamp"`
	Rounds    int              `json:"rounds"`
	Result    string           `json:"result"`
	Actions   []RecordedAction `json:"actions"`
}
