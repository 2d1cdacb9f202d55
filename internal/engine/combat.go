package engine

import (
	"encoding/json"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/engine/handlers"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/engine/handlers/actions"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/systems"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/api"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// Combat - один изолированный бой: поле, состав, очередь инициативы и
// 13-фазный цикл раунда. Все состояние принадлежит единственному циклу
// фаз; компоненты мутируют его только из своей фазы.
type Combat struct {
	ID     string
	Config Config

	// mu - замок границы боя. Цикл фаз держит его на протяжении фазы и
	// отпускает только на единственной точке ожидания (ход игрока), так что
	// снимки и отладочные ручки из других горутин видят целые фазы.
	mu sync.Mutex

	Board         *domain.Board
	Roster        *domain.Roster
	Scheduler     *Scheduler
	Relationships *domain.RelationshipTable
	Interventions map[domain.GodName]*domain.DivineIntervention

	State   domain.CombatState
	Phase   domain.Phase
	Round   int
	Balance int // Глобальный счетчик Маат

	Rng  *rand.Rand // Локальный генератор
	Seed int64      // Сид, с которого начался бой

	// Команды от игроков (читаются только в фазе действий)
	CommandChan chan domain.InternalCommand

	History []domain.Action // Неизменяемая история разрешенных действий
	Logs    []api.LogEntry

	handlers map[domain.ActionType]handlers.HandlerFunc

	// Легальные цели, предвычисленные фазой Targeting
	targets map[domain.EntityID]map[domain.ActionType][]domain.EntityID

	events  []Event
	onEvent func(Event)

	// onUpdate дергается в начале хода каждого актора (рассылка снимков)
	onUpdate func(active domain.EntityID)

	// HasSubscriber - управляется ли сущность живым клиентом
	HasSubscriber func(domain.EntityID) bool

	abort    atomic.Bool
	activeID domain.EntityID

	// Терминальное условие, выставленное фазой загробного перехода
	pendingEnd bool
	endReason  string
	winner     domain.EntityID

	// Окончательно мертвые: ролл воскрешения уже сделан и провален
	fallen map[domain.EntityID]bool

	// Смерти, уже объявленные фазой разрешения урона
	mourned map[domain.EntityID]bool
}

func NewCombat(cfg Config, board *domain.Board) *Combat {
	c := &Combat{
		ID:            uuid.NewString(),
		Config:        cfg,
		Board:         board,
		Roster:        domain.NewRoster(),
		Scheduler:     NewScheduler(),
		Relationships: domain.NewRelationshipTable(),
		Interventions: make(map[domain.GodName]*domain.DivineIntervention),
		State:         domain.StateNotStarted,
		Phase:         domain.PhasePreparation,
		Seed:          cfg.Seed,
		Rng:           rand.New(rand.NewSource(cfg.Seed)),
		CommandChan:   make(chan domain.InternalCommand, 100),
		handlers:      make(map[domain.ActionType]handlers.HandlerFunc),
		targets:       make(map[domain.EntityID]map[domain.ActionType][]domain.EntityID),
		activeID:      domain.NoEntity,
		winner:        domain.NoEntity,
		fallen:        make(map[domain.EntityID]bool),
		mourned:       make(map[domain.EntityID]bool),
	}
	c.registerHandlers()
	return c
}

func (c *Combat) registerHandlers() {
	c.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	c.handlers[domain.ActionAttack] = handlers.WithPayload(actions.HandleAttack)
	c.handlers[domain.ActionCast] = handlers.WithPayload(actions.HandleCast)
	c.handlers[domain.ActionDefend] = handlers.WithEmptyPayload(actions.HandleDefend)
}

// AddEntity ставит боеготовую сущность на поле.
// Структурные ошибки возвращаются синхронно и не меняют состояние.
func (c *Combat) AddEntity(desc *domain.EntityDescriptor, pos domain.Position) (domain.EntityID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.State.Terminal() {
		return domain.NoEntity, eris.Wrap(domain.ErrCombatEnded, "add entity")
	}
	if !c.Board.IsFree(pos) {
		return domain.NoEntity, eris.Wrapf(domain.ErrInvalidPosition, "add entity at (%d,%d)", pos.X, pos.Y)
	}

	e := desc.Materialize()
	e.Pos = pos
	e.ActionsLeft = c.Config.ActionBudget

	id := c.Roster.Add(e)
	c.Board.Place(id, pos)

	c.emit(domain.EventEntityAdded, map[string]interface{}{
		"entityId": id.String(),
		"name":     e.Name,
		"god":      e.God.String(),
		"side":     e.Side,
	})
	return id, nil
}

// RemoveEntity снимает сущность с поля, из очереди и из состава.
func (c *Combat) RemoveEntity(id domain.EntityID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.Roster.Get(id)
	if e == nil {
		return false
	}

	c.Scheduler.Remove(id)
	c.Board.Remove(e.Pos)
	c.Roster.Remove(id)
	delete(c.fallen, id)
	delete(c.mourned, id)

	c.emit(domain.EventEntityRemoved, map[string]interface{}{
		"entityId": id.String(),
		"name":     e.Name,
	})
	return true
}

// Start переводит бой в IN_PROGRESS. Ошибка, если бой уже шел или окончен.
func (c *Combat) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.State.Terminal() {
		return eris.Wrap(domain.ErrCombatEnded, "start")
	}
	if c.State == domain.StateInProgress {
		return eris.New("combat already in progress")
	}

	c.State = domain.StateInProgress
	c.Round = 1
	c.Phase = domain.PhasePreparation

	logger.Log.WithFields(logrus.Fields{
		"combat_id": c.ID,
		"seed":      c.Seed,
		"entities":  c.Roster.Len(),
	}).Info("Combat started")

	c.emit(domain.EventCombatStarted, map[string]interface{}{"seed": c.Seed})
	c.emit(domain.EventRoundStarted, map[string]interface{}{"round": c.Round})
	return nil
}

// RequestAbort просит прервать бой. Принимается только на границе фаз:
// ни одна фаза не останавливается на середине.
func (c *Combat) RequestAbort() {
	c.abort.Store(true)
}

// AdvancePhase выполняет текущую фазу целиком и сдвигает указатель.
// Возвращает фазу, которая была выполнена.
func (c *Combat) AdvancePhase() (domain.Phase, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.State.Terminal() {
		return c.Phase, eris.Wrap(domain.ErrCombatEnded, "advance phase")
	}
	if c.State == domain.StateNotStarted {
		return c.Phase, eris.New("combat not started")
	}

	// Внешний abort принимаем до входа в фазу
	if c.abort.Load() {
		c.State = domain.StateInterrupted
		c.emit(domain.EventCombatEnded, map[string]interface{}{"result": "interrupted"})
		return c.Phase, nil
	}

	executed := c.Phase
	panicked := c.runPhase(executed)

	c.emit(domain.EventPhaseCompleted, map[string]interface{}{"phase": executed.String()})

	// Фаза Cleanup могла завершить бой
	if c.State.Terminal() {
		return executed, nil
	}

	// Сбой внутри фазы: фаза закрыта, управление уходит сразу в Cleanup
	if panicked && executed != domain.PhaseCleanup {
		c.Phase = domain.PhaseCleanup
		return executed, nil
	}

	next, wrapped := executed.Next()
	c.Phase = next
	if wrapped {
		c.Round++
		c.emit(domain.EventRoundStarted, map[string]interface{}{"round": c.Round})
	}
	return executed, nil
}

// runPhase выполняет хендлер фазы, глотая панику.
// Никакая ошибка не оставляет цикл фаз в полуприменненном состоянии.
func (c *Combat) runPhase(p domain.Phase) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.WithFields(logrus.Fields{
				"combat_id": c.ID,
				"phase":     p.String(),
				"panic":     r,
			}).Error("Phase handler failed, skipping to cleanup")
			panicked = true
		}
	}()

	phaseTable[p](c)
	return false
}

// Run крутит цикл фаз до терминального состояния.
// Единственная точка ожидания - ход живого игрока внутри фазы действий.
func (c *Combat) Run() {
	logger.Log.WithField("combat_id", c.ID).Info("Combat loop started")
	for !c.State.Terminal() {
		if _, err := c.AdvancePhase(); err != nil {
			logger.Log.WithError(err).Error("Combat loop stopped")
			return
		}
	}
	logger.Log.WithFields(logrus.Fields{
		"combat_id": c.ID,
		"state":     c.State.String(),
		"rounds":    c.Round,
	}).Info("Combat loop finished")
}

// executeAction прогоняет команду через хендлер и фиксирует результат.
func (c *Combat) executeAction(actor *domain.Entity, cmd domain.InternalCommand) error {
	if actor.ActionsLeft <= 0 {
		return eris.Wrapf(domain.ErrInsufficientActions, "entity %s", actor.ID)
	}

	handler, ok := c.handlers[cmd.Action]
	if !ok {
		return eris.Errorf("no handler for action %s", cmd.Action)
	}

	ctx := handlers.Context{
		Board:         c.Board,
		Roster:        c.Roster,
		Actor:         actor,
		Relationships: c.Relationships,
		Targets:       c.targets[actor.ID],
		Interventions: c.Interventions,
		Rng:           c.Rng,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"combat_id": c.ID,
			"actor":     actor.Name,
			"action":    cmd.Action.String(),
		}).WithError(err).Warn("Action rejected")
		return err
	}

	actor.ActionsLeft--
	actor.Balance += result.Score
	c.Balance += result.Score

	var targets []domain.EntityID
	if result.Target != domain.NoEntity {
		targets = []domain.EntityID{result.Target}
	}
	c.History = append(c.History, domain.Action{
		Source:   actor.ID,
		Type:     cmd.Action,
		Targets:  targets,
		Params:   cmd.Payload,
		Round:    c.Round,
		Phase:    c.Phase,
		Resolved: true,
		Result:   result.Msg,
	})

	if result.Msg != "" {
		c.AddLog(result.Msg, result.MsgType)
	}

	switch cmd.Action {
	case domain.ActionAttack:
		c.emit(domain.EventDamageDealt, map[string]interface{}{
			"source": actor.ID.String(),
			"target": result.Target.String(),
			"killed": result.Killed,
		})
	case domain.ActionCast:
		c.emit(domain.EventHealed, map[string]interface{}{
			"source": actor.ID.String(),
			"target": result.Target.String(),
		})
	}
	return nil
}

// defaultAction - действие по умолчанию (оборона) при таймауте или тупике AI.
func (c *Combat) defaultAction(actor *domain.Entity) {
	_ = c.executeAction(actor, domain.InternalCommand{
		Action: domain.ActionDefend,
		Actor:  actor.ID,
	})
}

// humanTurn ждет команду живого игрока. Единственная точка ожидания движка:
// остальные фазы не продвигаются, пока ход не разрешен. На время ожидания
// замок боя отпускается, чтобы снимки продолжали обслуживаться.
func (c *Combat) humanTurn(actor *domain.Entity) {
	if c.onUpdate != nil {
		c.onUpdate(actor.ID)
	}

	timeout := time.After(c.Config.TurnTimeout)
	for {
		c.mu.Unlock()
		select {
		case cmd := <-c.CommandChan:
			c.mu.Lock()
			if cmd.Actor != actor.ID {
				continue // Чужая команда не в свой ход
			}
			if err := c.executeAction(actor, cmd); err != nil {
				c.AddLog(err.Error(), "ERROR")
				continue // Даем попробовать еще раз до таймаута
			}
			return

		case <-timeout:
			c.mu.Lock()
			logger.Log.WithFields(logrus.Fields{
				"combat_id": c.ID,
				"actor":     actor.ID,
			}).Warn("Turn timed out")
			c.defaultAction(actor)
			return
		}
	}
}

// aiTurn решает ход за сущность без подписчика.
func (c *Combat) aiTurn(actor *domain.Entity) {
	legal := c.targets[actor.ID]

	// 1. Бьем ближайшую легальную цель
	if ids := legal[domain.ActionAttack]; len(ids) > 0 {
		target := systems.Nearest(c.Roster, actor, ids)
		if target != nil {
			payload, _ := json.Marshal(api.TargetPayload{TargetID: int32(target.ID)})
			if err := c.executeAction(actor, domain.InternalCommand{
				Action:  domain.ActionAttack,
				Actor:   actor.ID,
				Payload: payload,
			}); err == nil {
				return
			}
		}
	}

	// 2. Потрепаны и умеем лечить - лечимся
	if actor.Stats.HP*2 < actor.Stats.MaxHP && systems.Contains(legal[domain.ActionCast], actor.ID) {
		payload, _ := json.Marshal(api.TargetPayload{TargetID: int32(actor.ID)})
		if err := c.executeAction(actor, domain.InternalCommand{
			Action:  domain.ActionCast,
			Actor:   actor.ID,
			Payload: payload,
		}); err == nil {
			return
		}
	}

	// 3. Шаг к ближайшему врагу
	if enemy := c.nearestEnemy(actor); enemy != nil {
		payload, _ := json.Marshal(api.DirectionPayload{
			Dx: sign(enemy.Pos.X - actor.Pos.X),
			Dy: sign(enemy.Pos.Y - actor.Pos.Y),
		})
		if err := c.executeAction(actor, domain.InternalCommand{
			Action:  domain.ActionMove,
			Actor:   actor.ID,
			Payload: payload,
		}); err == nil {
			return
		}
	}

	c.defaultAction(actor)
}

func (c *Combat) nearestEnemy(actor *domain.Entity) *domain.Entity {
	var best *domain.Entity
	bestDist := 0
	c.Roster.ForEach(func(other *domain.Entity) {
		if other.Side == actor.Side || !other.IsAlive() {
			return
		}
		d := actor.Pos.DistanceSquaredTo(other.Pos)
		if best == nil || d < bestDist {
			best = other
			bestDist = d
		}
	})
	return best
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func (c *Combat) isHuman(e *domain.Entity) bool {
	if c.HasSubscriber != nil && c.HasSubscriber(e.ID) {
		return true
	}
	return false
}

// AddLog пишет строку в клиентский лог боя.
func (c *Combat) AddLog(text, logType string) {
	if logType == "" {
		logType = "INFO"
	}
	c.Logs = append(c.Logs, api.LogEntry{
		ID:        uuid.NewString(),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
}

// Winner возвращает победителя (NoEntity при ничьей или до конца боя).
func (c *Combat) Winner() domain.EntityID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.winner
}

// CurrentState возвращает состояние боя (безопасно из любой горутины).
func (c *Combat) CurrentState() domain.CombatState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.State
}

// AttachController привязывает сессию игрока к сущности.
// Возвращает имя сущности и false, если такой сущности в бою нет.
func (c *Combat) AttachController(id domain.EntityID, controller string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.Roster.Get(id)
	if e == nil {
		return "", false
	}
	e.ControllerID = controller
	return e.Name, true
}

// DetachController отвязывает сессию от сущности (отключение клиента).
// Дальше ходы сущности берет на себя AI.
func (c *Combat) DetachController(id domain.EntityID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e := c.Roster.Get(id); e != nil {
		e.ControllerID = ""
	}
}

// Inspect выполняет fn под замком боя. Для отладочных ручек, читающих
// внутренности напрямую; fn не должна блокироваться.
func (c *Combat) Inspect(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// Record собирает архивную запись боя: сид плюс история действий.
func (c *Combat) Record() *domain.CombatRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec := &domain.CombatRecord{
		Seed:      c.Seed,
		Timestamp: time.Now().Unix(),
		Rounds:    c.Round,
		Result:    c.endReason,
		Actions:   make([]domain.RecordedAction, 0, len(c.History)),
	}
	if c.State == domain.StateInterrupted {
		rec.Result = "interrupted"
	}

	for _, a := range c.History {
		rec.Actions = append(rec.Actions, domain.RecordedAction{
			Round:   a.Round,
			Source:  a.Source,
			Type:    a.Type,
			Payload: a.Params,
		})
	}
	return rec
}
