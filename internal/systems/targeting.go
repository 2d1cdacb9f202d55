package systems

import (
	"math/rand"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
)

// ValidTargets возвращает легальные цели для действия.
// Порядок детерминирован (по возрастанию ID), случайный выбор делается
// отдельно через PickRandom с инжектированным генератором.
func ValidTargets(roster *domain.Roster, actor *domain.Entity, action domain.ActionType) []domain.EntityID {
	if actor == nil || !actor.IsAlive() {
		return nil
	}

	var out []domain.EntityID

	switch action {
	case domain.ActionAttack:
		reach := float64(actor.Stats.MoveRange) + domain.MeleeReach
		roster.ForEach(func(other *domain.Entity) {
			if other.ID == actor.ID || !other.IsAlive() {
				return
			}
			if actor.Pos.DistanceTo(other.Pos) <= reach {
				out = append(out, other.ID)
			}
		})

	case domain.ActionCast:
		// Лечащее заклинание: только союзники (включая себя) в радиусе
		roster.ForEach(func(other *domain.Entity) {
			if !other.IsAlive() || other.Side != actor.Side {
				return
			}
			if actor.Pos.DistanceTo(other.Pos) <= domain.CastRange {
				out = append(out, other.ID)
			}
		})

	case domain.ActionDefend:
		out = append(out, actor.ID)
	}

	// Пустой набор - не ошибка: действие просто недоступно
	return out
}

// SideTargets возвращает всех живых на указанной стороне (площадные действия).
func SideTargets(roster *domain.Roster, side int) []domain.EntityID {
	var out []domain.EntityID
	roster.ForEach(func(e *domain.Entity) {
		if e.IsAlive() && e.Side == side {
			out = append(out, e.ID)
		}
	})
	return out
}

// Contains проверяет, что цель входит в легальный набор.
func Contains(targets []domain.EntityID, id domain.EntityID) bool {
	for _, t := range targets {
		if t == id {
			return true
		}
	}
	return false
}

// PickRandom выбирает одну цель из набора. NoEntity, если набор пуст.
func PickRandom(targets []domain.EntityID, rng *rand.Rand) domain.EntityID {
	if len(targets) == 0 {
		return domain.NoEntity
	}
	return targets[rng.Intn(len(targets))]
}

// Nearest возвращает ближайшую к актору цель из набора.
func Nearest(roster *domain.Roster, actor *domain.Entity, targets []domain.EntityID) *domain.Entity {
	var best *domain.Entity
	bestDist := 0

	for _, id := range targets {
		e := roster.Get(id)
		if e == nil {
			continue
		}
		d := actor.Pos.DistanceSquaredTo(e.Pos)
		if best == nil || d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}
