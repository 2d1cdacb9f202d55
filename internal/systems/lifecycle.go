package systems

import (
	"math/rand"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ResurrectionChance - шанс вернуться из мертвых.
// Нулевое или отрицательное благоволение дает базовый шанс без бонуса;
// положительное добавляет favor/scale. Союз с Осирисом или Анубисом
// (владыки мертвых) дает дополнительную долю.
func ResurrectionChance(e *domain.Entity, base, favorScale float64) float64 {
	p := base
	if e.Stats != nil && e.Stats.Favor > 0 && favorScale > 0 {
		p += float64(e.Stats.Favor) / favorScale
	}
	if e.God == domain.GodOsiris || e.God == domain.GodAnubis {
		p += 0.1
	}
	if p > 0.9 {
		p = 0.9
	}
	return p
}

// TryResurrect бросает на воскрешение мертвой сущности.
// При успехе восстанавливает долю здоровья и снимает флаг смерти.
func TryResurrect(e *domain.Entity, rng *rand.Rand, base, favorScale, restoreFraction float64) bool {
	if !e.Caps.Resurrectable || e.Stats == nil || !e.Stats.IsDead {
		return false
	}

	if rng.Float64() >= ResurrectionChance(e, base, favorScale) {
		return false
	}

	restored := int(float64(e.Stats.MaxHP) * restoreFraction)
	e.Stats.Revive(restored)

	logger.Log.WithFields(logrus.Fields{
		"component": "lifecycle_system",
		"entity":    e.Name,
		"hp":        e.Stats.HP,
	}).Info("Entity resurrected")

	return true
}

// MarkDead фиксирует смерть: сбрасывает состояния души и бюджет действий.
func MarkDead(e *domain.Entity) {
	ReleaseSoulStates(e)
	e.ActionsLeft = 0
}

// CompletionCheck - исход боя после фазы загробного перехода.
// winner == nil при ничьей или когда живых не осталось.
func CompletionCheck(roster *domain.Roster, round, roundCap int) (ended bool, winner *domain.Entity) {
	alive := roster.Alive()
	if len(alive) <= 1 {
		if len(alive) == 1 {
			winner = alive[0]
		}
		return true, winner
	}
	if round >= roundCap {
		return true, nil
	}
	return false, nil
}
