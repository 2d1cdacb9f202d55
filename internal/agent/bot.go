package agent

import (
	"encoding/json"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/engine"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/api"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"
)

// Bot - "игрок-компьютер" (Headless Agent). Пример ВНЕШНЕГО клиента:
// он подписывается на обновления так же, как живой игрок, и на их основе
// решает, какую команду отправить обратно. Пока бот подписан, движок
// считает его сущность управляемой и ждет команду в фазе действий.
//
// Жизненный цикл:
//  1. NewBot -> Регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> Запуск в горутине, слушает Inbox.
//  3. Когда ActiveEntityID совпадает с его сущностью - makeMove.
type Bot struct {
	EntityID domain.EntityID
	CombatID string
	Service  *engine.CombatService
	Inbox    chan *api.ServerResponse
}

func NewBot(entityID domain.EntityID, combatID string, service *engine.CombatService) *Bot {
	logger.Log.WithField("entity_id", entityID).Info("Creating headless agent")
	return &Bot{
		EntityID: entityID,
		CombatID: combatID,
		Service:  service,
		Inbox:    service.Hub.Register(entityID),
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run() {
	defer b.Service.Hub.Unregister(b.EntityID)

	for state := range b.Inbox {
		// Бот реагирует только когда движок сообщает: "Твой ход".
		if state.Type != "UPDATE" || state.ActiveEntityID != b.EntityID.String() {
			continue
		}
		b.makeMove(state)
	}
	logger.Log.WithField("entity_id", b.EntityID).Info("Headless agent shut down")
}

// makeMove - мозг бота. Работает только с тем, что пришло в снимке:
// никакого доступа к внутреннему состоянию боя у него нет.
func (b *Bot) makeMove(state *api.ServerResponse) {
	var me *api.EntityView
	for i := range state.Entities {
		if state.Entities[i].ID == b.EntityID.String() {
			me = &state.Entities[i]
			break
		}
	}
	if me == nil || (me.Stats != nil && me.Stats.IsDead) {
		return // Мертвые не ходят
	}

	foe := nearestFoe(state.Entities, me)
	if foe == nil {
		b.sendDefend()
		return
	}

	dx := foe.Pos.X - me.Pos.X
	dy := foe.Pos.Y - me.Pos.Y

	// Враг в пределах удара - бьем, иначе сближаемся
	if chebyshev(dx, dy) <= 2 {
		if id, ok := domain.ParseEntityID(foe.ID); ok {
			b.sendAttack(id)
			return
		}
	}
	b.sendMove(sign(dx), sign(dy))
}

func nearestFoe(entities []api.EntityView, me *api.EntityView) *api.EntityView {
	var best *api.EntityView
	bestDist := 0

	for i := range entities {
		e := &entities[i]
		if e.Side == me.Side || e.Stats == nil || e.Stats.IsDead {
			continue
		}
		d := sq(e.Pos.X-me.Pos.X) + sq(e.Pos.Y-me.Pos.Y)
		if best == nil || d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}

// --- Хелперы для отправки команд на сервер ---

func (b *Bot) sendCommand(action domain.ActionType, payload interface{}) {
	var payloadBytes []byte
	if payload != nil {
		var err error
		payloadBytes, err = json.Marshal(payload)
		if err != nil {
			logger.Log.WithError(err).Warn("Agent failed to marshal payload")
			return
		}
	}

	cmd := api.ClientCommand{
		Token:    b.EntityID.String(),
		CombatID: b.CombatID,
		Action:   action.String(),
		Payload:  payloadBytes,
	}
	if err := b.Service.ProcessCommand(cmd); err != nil {
		logger.Log.WithError(err).Debug("Agent command rejected")
	}
}

func (b *Bot) sendMove(dx, dy int) {
	b.sendCommand(domain.ActionMove, api.DirectionPayload{Dx: dx, Dy: dy})
}

func (b *Bot) sendAttack(targetID domain.EntityID) {
	b.sendCommand(domain.ActionAttack, api.TargetPayload{TargetID: int32(targetID)})
}

func (b *Bot) sendDefend() {
	b.sendCommand(domain.ActionDefend, nil)
}

func chebyshev(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

func sq(v int) int { return v * v }

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
