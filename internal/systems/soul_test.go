package systems

import (
	"testing"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSoulful(name string) *domain.Entity {
	return &domain.Entity{
		Name: name,
		Stats: &domain.StatsComponent{
			HP: 20, MaxHP: 20, SpiritPow: 8, LifeForce: 6,
		},
		Caps: domain.Capabilities{SeparableSpirit: true, ManifestableKa: true},
	}
}

func TestSeparateSpiritIdempotent(t *testing.T) {
	e := makeSoulful("priest")

	require.NoError(t, SeparateSpirit(e, 1))
	require.NotNil(t, e.Spirit)
	assert.Equal(t, 4, e.Spirit.InitiativeBonus)
	assert.Equal(t, 2, e.Spirit.DefenseBonus)

	// Повторное отделение без воссоединения - ошибка, состояние не меняется
	err := SeparateSpirit(e, 2)
	require.Error(t, err)
	assert.Equal(t, 1, e.Spirit.SinceRound)
}

func TestSeparateSpiritRequiresCapability(t *testing.T) {
	e := makeSoulful("brute")
	e.Caps.SeparableSpirit = false

	assert.Error(t, SeparateSpirit(e, 1))
	assert.Nil(t, e.Spirit)
}

func TestReuniteGrantsWholeness(t *testing.T) {
	e := makeSoulful("priest")
	require.NoError(t, SeparateSpirit(e, 1))
	require.NoError(t, ReuniteSpirit(e))

	assert.Nil(t, e.Spirit)
	require.Len(t, e.Effects, 1)
	assert.Equal(t, "wholeness", e.Effects[0].Name)
	assert.Equal(t, 1, e.Effects[0].Duration)
	assert.Equal(t, 2, e.Effects[0].Amount)

	// Воссоединять нечего
	assert.Error(t, ReuniteSpirit(e))
}

func TestSpiritDefenseBonusCounts(t *testing.T) {
	e := makeSoulful("priest")
	e.Stats.Defense = 3
	require.NoError(t, SeparateSpirit(e, 1))

	assert.Equal(t, 5, e.EffectiveDefense())
}

func TestManifestKa(t *testing.T) {
	e := makeSoulful("guard")

	require.NoError(t, ManifestKa(e))
	require.NotNil(t, e.Manifest)
	assert.Equal(t, 6, e.Manifest.Strength)

	// Повторное проявление - ошибка
	assert.Error(t, ManifestKa(e))
}

func TestReleaseSoulStatesOnDeath(t *testing.T) {
	e := makeSoulful("guard")
	require.NoError(t, SeparateSpirit(e, 1))
	require.NoError(t, ManifestKa(e))

	ReleaseSoulStates(e)
	assert.Nil(t, e.Spirit)
	assert.Nil(t, e.Manifest)
}
