package engine

import (
	"time"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"

	"github.com/google/uuid"
)

// Event - запись append-only ленты боя.
// Payload - плоская структура для логов/аналитики, не для управления боем.
type Event struct {
	ID        string                 `json:"id"`
	Type      domain.EventType       `json:"-"`
	Name      string                 `json:"type"`
	Timestamp int64                  `json:"timestamp"`
	Round     int                    `json:"round"`
	Phase     string                 `json:"phase"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// emit добавляет событие в ленту и рассылает подписчикам.
// Лента только растет; события после записи не меняются.
func (c *Combat) emit(t domain.EventType, payload map[string]interface{}) {
	ev := Event{
		ID:        uuid.NewString(),
		Type:      t,
		Name:      t.String(),
		Timestamp: time.Now().UnixMilli(),
		Round:     c.Round,
		Phase:     c.Phase.String(),
		Payload:   payload,
	}
	c.events = append(c.events, ev)

	if c.onEvent != nil {
		c.onEvent(ev)
	}
}

// Events возвращает копию ленты событий.
func (c *Combat) Events() []Event {
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}
