package engine

import (
	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/api"
)

// maxLogEntries - хвост лога, который уезжает в каждый снимок.
const maxLogEntries = 50

// Snapshot собирает полный снимок боя для клиента.
// viewer - сущность, для которой строится снимок (NoEntity для наблюдателя).
// Безопасно из любой горутины: снимок строится под замком боя.
func (c *Combat) Snapshot(viewer domain.EntityID) *api.ServerResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(viewer)
}

// snapshotLocked - вариант для кода, уже держащего замок (рассылка
// персональных снимков из цикла фаз).
func (c *Combat) snapshotLocked(viewer domain.EntityID) *api.ServerResponse {
	resp := &api.ServerResponse{
		Type:     "UPDATE",
		CombatID: c.ID,
		Phase:    c.Phase.String(),
		Round:    c.Round,
		State:    c.State.String(),
		Balance:  c.Balance,
		Grid: &api.GridMeta{
			Width:  c.Board.Width,
			Height: c.Board.Height,
		},
	}

	if c.activeID != domain.NoEntity {
		resp.ActiveEntityID = c.activeID.String()
	}
	if viewer != domain.NoEntity {
		resp.MyEntityID = viewer.String()
	}

	c.Roster.ForEach(func(e *domain.Entity) {
		resp.Entities = append(resp.Entities, buildEntityView(e))
	})

	for _, item := range c.Scheduler.Snapshot() {
		resp.Initiative = append(resp.Initiative, api.InitiativeEntryView{
			EntityID: item.EntityID.String(),
			Priority: item.Priority,
		})
	}

	for _, ev := range c.events {
		resp.Events = append(resp.Events, buildEventView(ev))
	}

	logs := c.Logs
	if len(logs) > maxLogEntries {
		logs = logs[len(logs)-maxLogEntries:]
	}
	resp.Logs = append(resp.Logs, logs...)

	return resp
}

func buildEntityView(e *domain.Entity) api.EntityView {
	view := api.EntityView{
		ID:          e.ID.String(),
		Name:        e.Name,
		Side:        e.Side,
		God:         e.God.String(),
		ActionsLeft: e.ActionsLeft,
		Balance:     e.Balance,
	}
	view.Pos.X = e.Pos.X
	view.Pos.Y = e.Pos.Y

	if e.Stats != nil {
		view.Stats = &api.StatsView{
			HP:         e.Stats.HP,
			MaxHP:      e.Stats.MaxHP,
			Attack:     e.Stats.Attack,
			Defense:    e.Stats.Defense,
			Favor:      e.Stats.Favor,
			Initiative: e.Stats.Initiative,
			IsDead:     e.Stats.IsDead,
		}
	}
	view.SpiritSeparated = e.Spirit != nil
	if e.Manifest != nil {
		view.KaStrength = e.Manifest.Strength
	}
	return view
}

func buildEventView(ev Event) api.EventView {
	return api.EventView{
		ID:        ev.ID,
		Type:      ev.Name,
		Timestamp: ev.Timestamp,
		Round:     ev.Round,
		Phase:     ev.Phase,
		Payload:   ev.Payload,
	}
}
