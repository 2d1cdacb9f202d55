package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Снимок состояния боя: фаза, раунд, сущности, порядок инициативы и
// новые события с прошлой рассылки.
type ServerResponse struct {
	// Type тип сообщения. "UPDATE" - снимок, "EVENT" - одиночное событие.
	Type string `json:"type"`

	CombatID string `json:"combatId,omitempty"`

	Phase string `json:"phase,omitempty"`
	Round int    `json:"round,omitempty"`
	State string `json:"state,omitempty"`

	// ActiveEntityID ID сущности, чей ход сейчас.
	// КЛИЕНТ ДОЛЖЕН СРАВНИВАТЬ ЭТО ПОЛЕ СО СВОИМ ID. Если они совпадают,
	// значит, можно принимать ввод от игрока.
	ActiveEntityID string `json:"activeEntityId,omitempty"`

	// MyEntityID ID сущности, которой управляет данный клиент.
	MyEntityID string `json:"myEntityId,omitempty"`

	// Grid метаданные о размере поля боя.
	Grid *GridMeta `json:"grid,omitempty"`

	// Balance - глобальный счетчик космического равновесия.
	Balance int `json:"balance"`

	Entities   []EntityView          `json:"entities,omitempty"`
	Initiative []InitiativeEntryView `json:"initiative,omitempty"`
	Events     []EventView           `json:"events,omitempty"`
	Logs       []LogEntry            `json:"logs,omitempty"`
}

// GridMeta содержит размеры поля, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// EntityView это DTO для сущности боя.
type EntityView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Side int    `json:"side"`
	God  string `json:"god"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	// Stats характеристики сущности. Поле может отсутствовать (omitempty),
	// если клиент не имеет права видеть статы этой сущности.
	Stats *StatsView `json:"stats,omitempty"`

	SpiritSeparated bool `json:"spiritSeparated,omitempty"`
	KaStrength      int  `json:"kaStrength,omitempty"`
	ActionsLeft     int  `json:"actionsLeft"`
	Balance         int  `json:"balance"`
}

// StatsView это DTO для характеристик сущности.
// Некоторые поля могут отсутствовать, если сервер скрывает их от клиента.
type StatsView struct {
	HP         int  `json:"hp"`
	MaxHP      int  `json:"maxHp"`
	Attack     int  `json:"attack,omitempty"`
	Defense    int  `json:"defense,omitempty"`
	Favor      int  `json:"favor,omitempty"`
	Initiative int  `json:"initiative,omitempty"`
	IsDead     bool `json:"isDead"`
}

// InitiativeEntryView - одна запись порядка инициативы.
type InitiativeEntryView struct {
	EntityID string `json:"entityId"`
	Priority int    `json:"priority"`
}

// EventView - событие ленты боя для клиента.
type EventView struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp int64                  `json:"timestamp"`
	Round     int                    `json:"round"`
	Phase     string                 `json:"phase"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// LogEntry представляет одну запись в игровом логе (чате).
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сущности, от имени которой выполняется действие.
	Token string `json:"token,omitempty"`

	// CombatID - бой, к которому относится команда.
	CombatID string `json:"combatId,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// DirectionPayload используется для действий, связанных с направлением (e.g. MOVE).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// TargetPayload используется для действий, нацеленных на другую сущность (ATTACK, CAST).
type TargetPayload struct {
	TargetID int32 `json:"targetId"`
}
