package engine

import (
	"testing"
	"time"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := NewConfig()
	cfg.Seed = 42
	cfg.TurnTimeout = 20 * time.Millisecond
	return cfg
}

func tankDescriptor(name string, side int) *domain.EntityDescriptor {
	return &domain.EntityDescriptor{
		Name:       name,
		Side:       side,
		Attack:     1,
		Defense:    100,
		MaxHP:      1000,
		Initiative: 10,
		Resistance: 50,
	}
}

// runUntilDone крутит фазы с предохранителем от зависания теста.
func runUntilDone(t *testing.T, c *Combat) {
	t.Helper()
	for i := 0; i < 2000 && !c.State.Terminal(); i++ {
		_, err := c.AdvancePhase()
		require.NoError(t, err)
	}
	require.True(t, c.State.Terminal(), "combat did not finish")
}

func TestCombatLifecycleStates(t *testing.T) {
	c := NewCombat(testConfig(), domain.NewBoard(8, 8))
	assert.Equal(t, domain.StateNotStarted, c.State)

	// До старта фазы не двигаются
	_, err := c.AdvancePhase()
	assert.Error(t, err)

	_, err = c.AddEntity(tankDescriptor("anhur", 0), domain.Position{X: 0, Y: 0})
	require.NoError(t, err)

	require.NoError(t, c.Start())
	assert.Equal(t, domain.StateInProgress, c.State)
	assert.Equal(t, 1, c.Round)

	// Повторный старт запрещен
	assert.Error(t, c.Start())
}

func TestPhaseSequenceNeverSkipsOrRepeats(t *testing.T) {
	c := NewCombat(testConfig(), domain.NewBoard(8, 8))
	_, err := c.AddEntity(tankDescriptor("left", 0), domain.Position{X: 0, Y: 0})
	require.NoError(t, err)
	_, err = c.AddEntity(tankDescriptor("right", 1), domain.Position{X: 7, Y: 7})
	require.NoError(t, err)
	require.NoError(t, c.Start())

	var executed []domain.Phase
	for i := 0; i < int(domain.PhaseCount); i++ {
		p, err := c.AdvancePhase()
		require.NoError(t, err)
		executed = append(executed, p)
	}

	require.Len(t, executed, int(domain.PhaseCount))
	for i, p := range executed {
		assert.Equal(t, domain.Phase(i), p, "phase order broken at step %d", i)
	}

	// Полный круг = ровно один новый раунд
	assert.Equal(t, 2, c.Round)
	assert.Equal(t, domain.PhasePreparation, c.Phase)
}

func TestRoundCounterMonotonic(t *testing.T) {
	c := NewCombat(testConfig(), domain.NewBoard(8, 8))
	_, err := c.AddEntity(tankDescriptor("left", 0), domain.Position{X: 0, Y: 0})
	require.NoError(t, err)
	_, err = c.AddEntity(tankDescriptor("right", 1), domain.Position{X: 7, Y: 7})
	require.NoError(t, err)
	require.NoError(t, c.Start())

	prev := c.Round
	for round := 0; round < 3; round++ {
		for i := 0; i < int(domain.PhaseCount); i++ {
			_, err := c.AdvancePhase()
			require.NoError(t, err)
			if c.State.Terminal() {
				return
			}
		}
		assert.Equal(t, prev+1, c.Round)
		prev = c.Round
	}
}

func TestDrawAtRoundCap(t *testing.T) {
	cfg := testConfig()
	cfg.RoundCap = 3
	c := NewCombat(cfg, domain.NewBoard(8, 8))

	_, err := c.AddEntity(tankDescriptor("left", 0), domain.Position{X: 0, Y: 0})
	require.NoError(t, err)
	_, err = c.AddEntity(tankDescriptor("right", 1), domain.Position{X: 7, Y: 7})
	require.NoError(t, err)
	require.NoError(t, c.Start())

	runUntilDone(t, c)

	assert.Equal(t, domain.StateCompleted, c.State)
	assert.Equal(t, domain.NoEntity, c.Winner())
	assert.GreaterOrEqual(t, c.Round, cfg.RoundCap)
}

func TestSurvivorWins(t *testing.T) {
	c := NewCombat(testConfig(), domain.NewBoard(8, 8))

	strongID, err := c.AddEntity(&domain.EntityDescriptor{
		Name:       "khopesh",
		Side:       0,
		Attack:     80,
		Defense:    100,
		MaxHP:      1000,
		Initiative: 20,
		Resistance: 50,
	}, domain.Position{X: 3, Y: 3})
	require.NoError(t, err)

	_, err = c.AddEntity(&domain.EntityDescriptor{
		Name:       "husk",
		Side:       1,
		Attack:     1,
		MaxHP:      5,
		Initiative: 1,
		Resistance: 50,
	}, domain.Position{X: 3, Y: 4})
	require.NoError(t, err)

	require.NoError(t, c.Start())
	runUntilDone(t, c)

	assert.Equal(t, domain.StateCompleted, c.State)
	assert.Equal(t, strongID, c.Winner())

	// Погибший навсегда покинул поле и очередь
	assert.Equal(t, 1, len(c.Roster.Alive()))
}

func TestAbortOnlyAtPhaseBoundary(t *testing.T) {
	c := NewCombat(testConfig(), domain.NewBoard(8, 8))
	_, err := c.AddEntity(tankDescriptor("left", 0), domain.Position{X: 0, Y: 0})
	require.NoError(t, err)
	require.NoError(t, c.Start())

	_, err = c.AdvancePhase()
	require.NoError(t, err)

	c.RequestAbort()
	_, err = c.AdvancePhase()
	require.NoError(t, err)

	assert.Equal(t, domain.StateInterrupted, c.State)

	// После прерывания движок мертв
	_, err = c.AdvancePhase()
	assert.ErrorIs(t, err, domain.ErrCombatEnded)
}

func TestAddEntityRejectsBadPlacement(t *testing.T) {
	c := NewCombat(testConfig(), domain.NewBoard(4, 4))

	_, err := c.AddEntity(tankDescriptor("first", 0), domain.Position{X: 1, Y: 1})
	require.NoError(t, err)

	// Занятая клетка
	_, err = c.AddEntity(tankDescriptor("second", 1), domain.Position{X: 1, Y: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidPosition)

	// За границей поля
	_, err = c.AddEntity(tankDescriptor("third", 1), domain.Position{X: 9, Y: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidPosition)
}

func TestAddEntityAfterCompletion(t *testing.T) {
	cfg := testConfig()
	cfg.RoundCap = 1
	c := NewCombat(cfg, domain.NewBoard(8, 8))

	_, err := c.AddEntity(tankDescriptor("left", 0), domain.Position{X: 0, Y: 0})
	require.NoError(t, err)
	_, err = c.AddEntity(tankDescriptor("right", 1), domain.Position{X: 7, Y: 7})
	require.NoError(t, err)
	require.NoError(t, c.Start())
	runUntilDone(t, c)

	_, err = c.AddEntity(tankDescriptor("late", 0), domain.Position{X: 5, Y: 5})
	assert.ErrorIs(t, err, domain.ErrCombatEnded)
}

func TestHumanTurnTimesOutToDefend(t *testing.T) {
	c := NewCombat(testConfig(), domain.NewBoard(8, 8))

	humanID, err := c.AddEntity(tankDescriptor("mortal", 0), domain.Position{X: 2, Y: 2})
	require.NoError(t, err)
	c.HasSubscriber = func(id domain.EntityID) bool { return id == humanID }

	require.NoError(t, c.Start())

	// Доходим до конца фазы действий
	for c.Phase <= domain.PhaseAction {
		_, err := c.AdvancePhase()
		require.NoError(t, err)
	}

	mortal := c.Roster.Get(humanID)
	require.NotNil(t, mortal)
	assert.Equal(t, 0, mortal.ActionsLeft, "timeout must consume the action budget")

	found := false
	for _, ef := range mortal.Effects {
		if ef.Name == "guard stance" {
			found = true
		}
	}
	assert.True(t, found, "default action on timeout is defend")
}

func TestDeterministicWithSameSeed(t *testing.T) {
	play := func() []Event {
		cfg := testConfig()
		cfg.RoundCap = 4
		c := NewCombat(cfg, domain.NewBoard(8, 8))
		_, err := c.AddEntity(tankDescriptor("left", 0), domain.Position{X: 2, Y: 2})
		require.NoError(t, err)
		_, err = c.AddEntity(tankDescriptor("right", 1), domain.Position{X: 2, Y: 3})
		require.NoError(t, err)
		require.NoError(t, c.Start())
		runUntilDone(t, c)
		return c.Events()
	}

	first := play()
	second := play()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Type, second[i].Type, "event %d diverged", i)
		assert.Equal(t, first[i].Round, second[i].Round, "event %d round diverged", i)
	}
}

func TestConcurrentSnapshotsDuringRun(t *testing.T) {
	cfg := testConfig()
	cfg.RoundCap = 3
	c := NewCombat(cfg, domain.NewBoard(8, 8))

	leftID, err := c.AddEntity(tankDescriptor("left", 0), domain.Position{X: 0, Y: 0})
	require.NoError(t, err)
	_, err = c.AddEntity(tankDescriptor("right", 1), domain.Position{X: 7, Y: 7})
	require.NoError(t, err)
	require.NoError(t, c.Start())

	done := make(chan struct{})
	go func() {
		c.Run()
		close(done)
	}()

	// Снимки и привязка контроллера из чужой горутины, пока цикл фаз
	// мутирует состав: все проходит через замок границы боя
	for i := 0; ; i++ {
		select {
		case <-done:
			assert.Equal(t, domain.StateCompleted, c.CurrentState())
			return
		default:
		}

		resp := c.Snapshot(domain.NoEntity)
		require.Equal(t, "UPDATE", resp.Type)
		require.NotEmpty(t, resp.Entities)

		if i%2 == 0 {
			_, ok := c.AttachController(leftID, "session_spectator")
			assert.True(t, ok)
		} else {
			c.DetachController(leftID)
		}
	}
}

func TestEffectDurationTicksOnMatchingTrigger(t *testing.T) {
	c := NewCombat(testConfig(), domain.NewBoard(8, 8))

	desc := tankDescriptor("vessel", 0)
	desc.Effects = []*domain.Effect{
		{
			ID: "dawn", Name: "dawn blessing",
			Kind: domain.EffectHeal, Timing: domain.TimingStartOfTurn,
			Duration: 2, Stacks: 1, Amount: 1, Active: true,
		},
		{
			ID: "haze", Name: "battle haze",
			Kind: domain.EffectStatMod, Timing: domain.TimingPersistent,
			Duration: 1, Stacks: 1, Stat: domain.StatAttack, Amount: 1, Active: true,
		},
	}
	id, err := c.AddEntity(desc, domain.Position{X: 1, Y: 1})
	require.NoError(t, err)
	require.NoError(t, c.Start())

	// Один полный раунд
	for i := 0; i < int(domain.PhaseCount); i++ {
		_, err := c.AdvancePhase()
		require.NoError(t, err)
	}

	vessel := c.Roster.Get(id)
	require.NotNil(t, vessel)

	var dawn *domain.Effect
	for _, ef := range vessel.Effects {
		if ef.Name == "battle haze" {
			t.Error("per-round modifier must expire in cleanup")
		}
		if ef.Name == "dawn blessing" {
			dawn = ef
		}
	}
	// Сработал один раз в подготовке: длительность списана за срабатывание
	require.NotNil(t, dawn, "start-of-turn effect must survive its first trigger")
	assert.Equal(t, 1, dawn.Duration)
	assert.True(t, dawn.Active)
}

func TestSnapshotShape(t *testing.T) {
	c := NewCombat(testConfig(), domain.NewBoard(6, 5))
	id, err := c.AddEntity(tankDescriptor("seen", 0), domain.Position{X: 1, Y: 1})
	require.NoError(t, err)
	require.NoError(t, c.Start())

	resp := c.Snapshot(id)
	assert.Equal(t, "UPDATE", resp.Type)
	assert.Equal(t, c.ID, resp.CombatID)
	assert.Equal(t, id.String(), resp.MyEntityID)
	assert.Equal(t, 1, resp.Round)
	require.NotNil(t, resp.Grid)
	assert.Equal(t, 6, resp.Grid.Width)
	assert.Equal(t, 5, resp.Grid.Height)
	require.Len(t, resp.Entities, 1)
	require.NotNil(t, resp.Entities[0].Stats)
	assert.Equal(t, 1000, resp.Entities[0].Stats.MaxHP)
}
