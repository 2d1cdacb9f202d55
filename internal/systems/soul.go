package systems

import (
	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// SeparateSpirit отделяет Ба от тела. Идемпотентно: повторный вызов без
// воссоединения возвращает ошибку и ничего не меняет.
func SeparateSpirit(e *domain.Entity, round int) error {
	if !e.Caps.SeparableSpirit {
		return eris.New("entity cannot separate its spirit")
	}
	if e.Spirit != nil {
		return eris.New("spirit already separated")
	}
	if !e.IsAlive() {
		return eris.New("dead entities hold no spirit")
	}

	e.Spirit = &domain.SpiritComponent{
		InitiativeBonus: e.Stats.SpiritPow / 2,
		DefenseBonus:    e.Stats.SpiritPow / 4,
		SinceRound:      round,
	}

	logger.Log.WithField("entity", e.Name).Info("Ба отделился от тела")
	return nil
}

// ReuniteSpirit возвращает Ба в тело и дает разовый бонус целостности
// до конца раунда.
func ReuniteSpirit(e *domain.Entity) error {
	if e.Spirit == nil {
		return eris.New("spirit is not separated")
	}

	bonus := e.Stats.SpiritPow / 4
	if bonus < 1 {
		bonus = 1
	}
	e.Spirit = nil
	e.AddEffect(&domain.Effect{
		ID:       uuid.NewString(),
		Name:     "wholeness",
		Kind:     domain.EffectStatMod,
		Timing:   domain.TimingEndOfTurn,
		Duration: 1,
		Stacks:   1,
		Stat:     domain.StatAttack,
		Amount:   bonus,
		Active:   true,
	})

	logger.Log.WithField("entity", e.Name).Info("Ба воссоединился с телом")
	return nil
}

// ManifestKa проявляет жизненную силу как защитное присутствие.
// Поглощает урон раньше здоровья (см. ResolveDamage).
func ManifestKa(e *domain.Entity) error {
	if !e.Caps.ManifestableKa {
		return eris.New("entity cannot manifest its life force")
	}
	if e.Manifest != nil {
		return eris.New("life force already manifested")
	}
	if !e.IsAlive() {
		return eris.New("dead entities have no life force")
	}

	strength := e.Stats.LifeForce
	if strength < 1 {
		strength = 1
	}
	e.Manifest = &domain.ManifestComponent{Strength: strength}

	logger.Log.WithField("entity", e.Name).Info("Ка проявилось как щит")
	return nil
}

// ReleaseSoulStates сбрасывает оба состояния души. Вызывается при смерти.
func ReleaseSoulStates(e *domain.Entity) {
	e.Spirit = nil
	e.Manifest = nil
}
