package engine

import (
	"sync"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/infrastructure/storage"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/network"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/api"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// CombatService владеет всеми активными боями и маршрутизирует команды
// клиентов. Каждый бой крутит свой цикл фаз в отдельной горутине.
type CombatService struct {
	mu     sync.RWMutex
	config Config

	Hub *network.Broadcaster

	recorder *storage.RecordService

	combats map[string]*Combat
	seq     int64 // Порядковый номер боя (сдвиг сида)
}

func NewCombatService(cfg Config) *CombatService {
	s := &CombatService{
		config:  cfg,
		Hub:     network.NewBroadcaster(),
		combats: make(map[string]*Combat),
	}
	if cfg.RecordDir != "" {
		s.recorder = storage.NewRecordService(cfg.RecordDir)
	}
	return s
}

// CreateCombat создает бой на плоском поле указанного размера.
func (s *CombatService) CreateCombat(width, height int) *Combat {
	return s.CreateCombatOn(domain.NewBoard(width, height))
}

// CreateCombatOn создает бой на готовом поле (например, сгенерированной
// арене). Сид боя = мастер-сид + порядковый номер: повтор запуска с тем
// же сидом воспроизводит те же броски.
func (s *CombatService) CreateCombatOn(board *domain.Board) *Combat {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.config
	cfg.Seed = s.config.Seed + s.seq
	s.seq++

	c := NewCombat(cfg, board)
	c.HasSubscriber = s.Hub.HasSubscriber
	c.onEvent = func(ev Event) {
		s.Hub.Broadcast(&api.ServerResponse{
			Type:     "EVENT",
			CombatID: c.ID,
			Round:    ev.Round,
			Phase:    ev.Phase,
			Balance:  c.Balance,
			Events:   []api.EventView{buildEventView(ev)},
		})
	}
	c.onUpdate = func(active domain.EntityID) {
		s.broadcastState(c)
	}

	s.combats[c.ID] = c

	logger.Log.WithFields(logrus.Fields{
		"combat_id": c.ID,
		"seed":      cfg.Seed,
		"grid":      map[string]int{"w": board.Width, "h": board.Height},
	}).Info("Combat created")

	return c
}

// StartCombat запускает цикл фаз боя в фоне.
func (s *CombatService) StartCombat(id string) error {
	c := s.GetCombat(id)
	if c == nil {
		return eris.Errorf("combat %s not found", id)
	}
	if err := c.Start(); err != nil {
		return err
	}
	go func() {
		c.Run()
		s.archive(c)
	}()
	return nil
}

// archive пишет запись завершенного боя на диск (если архив включен).
func (s *CombatService) archive(c *Combat) {
	if s.recorder == nil {
		return
	}
	path, err := s.recorder.Save(c.Record())
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to archive combat record")
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"combat_id": c.ID,
		"path":      path,
	}).Info("Combat record archived")
}

// GetCombat возвращает бой по ID (nil, если не найден).
func (s *CombatService) GetCombat(id string) *Combat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.combats[id]
}

// Combats возвращает срез активных боев (для отладочных ручек).
func (s *CombatService) Combats() []*Combat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Combat, 0, len(s.combats))
	for _, c := range s.combats {
		out = append(out, c)
	}
	return out
}

// RemoveCombat выкидывает завершенный бой из реестра.
func (s *CombatService) RemoveCombat(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.combats, id)
}

// ProcessCommand разбирает команду клиента и кладет ее в канал боя.
// Канал читается только в фазе действий; чужие и несвоевременные
// команды движок отбрасывает сам.
func (s *CombatService) ProcessCommand(cmd api.ClientCommand) error {
	actor, ok := domain.ParseEntityID(cmd.Token)
	if !ok {
		return eris.Errorf("bad entity token %q", cmd.Token)
	}

	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		return eris.Errorf("unknown action %q", cmd.Action)
	}

	c := s.GetCombat(cmd.CombatID)
	if c == nil {
		return eris.Errorf("combat %s not found", cmd.CombatID)
	}
	if c.CurrentState().Terminal() {
		return eris.Wrap(domain.ErrCombatEnded, "process command")
	}

	select {
	case c.CommandChan <- domain.InternalCommand{
		Action:  action,
		Actor:   actor,
		Payload: cmd.Payload,
	}:
		return nil
	default:
		return eris.New("combat command queue is full")
	}
}

// broadcastState рассылает персональные снимки всем подписанным сущностям.
// Вызывается из цикла фаз, который уже держит замок боя, поэтому снимки
// строятся напрямую, без повторного захвата.
func (s *CombatService) broadcastState(c *Combat) {
	c.Roster.ForEach(func(e *domain.Entity) {
		if s.Hub.HasSubscriber(e.ID) {
			s.Hub.SendTo(e.ID, c.snapshotLocked(e.ID))
		}
	})
}
