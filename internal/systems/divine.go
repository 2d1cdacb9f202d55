package systems

import (
	"math"
	"math/rand"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"

	"github.com/sirupsen/logrus"
)

// InterventionChance - вероятность вмешательства: min(cap, |favor|/scale).
func InterventionChance(favor int, scale, cap float64) float64 {
	if scale <= 0 {
		return 0
	}
	p := math.Abs(float64(favor)) / scale
	if p > cap {
		p = cap
	}
	return p
}

// RollIntervention бросает на вмешательство бога сущности.
// Положительное благоволение тянет из пула благословений, благоволение
// ниже curseThreshold - из пула проклятий. nil, если бросок не прошел.
func RollIntervention(e *domain.Entity, rng *rand.Rand, scale, cap float64, curseThreshold, duration int) *domain.DivineIntervention {
	if e.God == domain.GodNone || e.Stats == nil {
		return nil
	}

	favor := e.Stats.Favor
	if rng.Float64() >= InterventionChance(favor, scale, cap) {
		return nil
	}

	var pool []domain.InterventionKind
	switch {
	case favor > 0:
		pool = domain.BlessingPool(e.God)
	case favor <= curseThreshold:
		pool = domain.CursePool(e.God)
	}
	if len(pool) == 0 {
		return nil
	}

	kind := pool[rng.Intn(len(pool))]
	iv := &domain.DivineIntervention{
		God:      e.God,
		Kind:     kind,
		Duration: duration,
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "divine_system",
		"entity":    e.Name,
		"god":       e.God.String(),
		"kind":      kind.String(),
		"duration":  duration,
	}).Info("Divine intervention granted")

	return iv
}

// ApplyIntervention кладет вмешательство в мапу боя.
// Повторное вмешательство того же бога обновляет длительность, не стакается.
func ApplyIntervention(active map[domain.GodName]*domain.DivineIntervention, iv *domain.DivineIntervention) {
	if existing, ok := active[iv.God]; ok {
		existing.Kind = iv.Kind
		existing.Duration = iv.Duration
		return
	}
	active[iv.God] = iv
}

// DecayInterventions уменьшает длительности раз в раунд.
// Возвращает истекших богов (для событий).
func DecayInterventions(active map[domain.GodName]*domain.DivineIntervention) []domain.GodName {
	var expired []domain.GodName
	for god, iv := range active {
		iv.Duration--
		if iv.Duration <= 0 {
			delete(active, god)
			expired = append(expired, god)
		}
	}
	return expired
}

// InterventionInitiative возвращает сдвиг инициативы от вмешательства
// бога сущности (0, если вмешательства нет или оно не про инициативу).
func InterventionInitiative(active map[domain.GodName]*domain.DivineIntervention, god domain.GodName) int {
	iv, ok := active[god]
	if !ok {
		return 0
	}
	stat, amount := iv.Kind.StatEffect()
	if stat != domain.StatInitiative {
		return 0
	}
	return amount
}

// InterventionStat возвращает сдвиг произвольного стата от вмешательства.
func InterventionStat(active map[domain.GodName]*domain.DivineIntervention, god domain.GodName, stat domain.StatName) int {
	iv, ok := active[god]
	if !ok {
		return 0
	}
	s, amount := iv.Kind.StatEffect()
	if s != stat {
		return 0
	}
	return amount
}
