package systems

import (
	"math/rand"
	"testing"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCorpse(god domain.GodName, favor int) *domain.Entity {
	return &domain.Entity{
		Name:  "fallen",
		God:   god,
		Stats: &domain.StatsComponent{HP: 0, MaxHP: 30, Favor: favor, IsDead: true},
		Caps:  domain.Capabilities{Resurrectable: true},
	}
}

func TestResurrectionChance(t *testing.T) {
	base := 0.2

	// Нулевое благоволение - базовый шанс без бонуса
	e := makeCorpse(domain.GodRa, 0)
	assert.InDelta(t, base, ResurrectionChance(e, base, 100), 1e-9)

	// Отрицательное благоволение бонуса не дает
	e = makeCorpse(domain.GodRa, -40)
	assert.InDelta(t, base, ResurrectionChance(e, base, 100), 1e-9)

	// Положительное добавляет favor/scale
	e = makeCorpse(domain.GodRa, 30)
	assert.InDelta(t, 0.5, ResurrectionChance(e, base, 100), 1e-9)

	// Владыки мертвых опекают своих
	e = makeCorpse(domain.GodOsiris, 0)
	assert.InDelta(t, 0.3, ResurrectionChance(e, base, 100), 1e-9)
}

func TestTryResurrectRestoresFraction(t *testing.T) {
	e := makeCorpse(domain.GodOsiris, 100)

	var ok bool
	for seed := int64(1); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		if rng.Float64() < ResurrectionChance(e, 0.2, 100) {
			ok = TryResurrect(e, rand.New(rand.NewSource(seed)), 0.2, 100, 1.0/3.0)
			break
		}
	}

	require.True(t, ok)
	assert.False(t, e.Stats.IsDead)
	assert.Equal(t, 10, e.Stats.HP)
}

func TestTryResurrectRequiresCapability(t *testing.T) {
	e := makeCorpse(domain.GodOsiris, 100)
	e.Caps.Resurrectable = false

	rng := rand.New(rand.NewSource(1))
	assert.False(t, TryResurrect(e, rng, 1.0, 1, 0.5))
	assert.True(t, e.Stats.IsDead)
}

func TestMarkDeadReleasesSoul(t *testing.T) {
	e := makeCorpse(domain.GodAnubis, 0)
	e.Spirit = &domain.SpiritComponent{}
	e.Manifest = &domain.ManifestComponent{Strength: 3}
	e.ActionsLeft = 1

	MarkDead(e)
	assert.Nil(t, e.Spirit)
	assert.Nil(t, e.Manifest)
	assert.Zero(t, e.ActionsLeft)
}

func TestCompletionCheck(t *testing.T) {
	r := domain.NewRoster()
	a := &domain.Entity{Name: "a", Stats: &domain.StatsComponent{HP: 10, MaxHP: 10}}
	b := &domain.Entity{Name: "b", Stats: &domain.StatsComponent{HP: 10, MaxHP: 10}}
	r.Add(a)
	r.Add(b)

	ended, _ := CompletionCheck(r, 1, 50)
	assert.False(t, ended)

	// Остался один - он победитель
	b.Stats.IsDead = true
	ended, winner := CompletionCheck(r, 1, 50)
	require.True(t, ended)
	assert.Equal(t, a, winner)

	// Никого - победителя нет
	a.Stats.IsDead = true
	ended, winner = CompletionCheck(r, 1, 50)
	require.True(t, ended)
	assert.Nil(t, winner)
}

func TestCompletionCheckRoundCapForcesDraw(t *testing.T) {
	r := domain.NewRoster()
	r.Add(&domain.Entity{Name: "a", Stats: &domain.StatsComponent{HP: 10, MaxHP: 10}})
	r.Add(&domain.Entity{Name: "b", Stats: &domain.StatsComponent{HP: 10, MaxHP: 10}})

	ended, winner := CompletionCheck(r, 50, 50)
	require.True(t, ended)
	assert.Nil(t, winner)
}
