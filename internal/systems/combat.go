package systems

import (
	"math/rand"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"

	"github.com/sirupsen/logrus"
)

// DamageKind - стихия урона.
type DamageKind uint8

const (
	DamagePhysical DamageKind = iota
	DamageSolar
	DamageShadow
)

// Стихийные преимущества: разреженная таблица, остальное 1.0.
var elementMultiplier = map[DamageKind]map[domain.Alignment]float64{
	DamageSolar:  {domain.AlignDeath: 1.25},
	DamageShadow: {domain.AlignLife: 1.25},
}

// DamageOutcome - результат расчета урона.
type DamageOutcome struct {
	Base       int
	Reduction  int
	Multiplier float64
	Absorbed   int // Поглощено проявленным Ка
	Final      int // Снято со здоровья
	Destroyed  bool
}

// ResolveDamage считает и применяет урон.
// Снижение защитой = min(base/2, defense); итог = max(1, base - снижение),
// затем множитель отношений богов и стихии. Защита цели учитывает активное
// вмешательство ее бога (active; nil - вмешательств нет). Смерть только
// помечается (IsDead), снятие с поля - забота Lifecycle.
func ResolveDamage(attacker, defender *domain.Entity, base int, kind DamageKind, rel *domain.RelationshipTable, active map[domain.GodName]*domain.DivineIntervention) DamageOutcome {
	out := DamageOutcome{Base: base, Multiplier: 1.0}

	if defender.Stats == nil || defender.Stats.IsDead || base <= 0 {
		return out
	}

	def := defender.EffectiveDefense() + InterventionStat(active, defender.God, domain.StatDefense)
	if def < 0 {
		def = 0
	}

	reduction := base / 2
	if def < reduction {
		reduction = def
	}
	out.Reduction = reduction

	actual := base - reduction
	if actual < 1 {
		actual = 1
	}

	mult := 1.0
	if rel != nil && attacker != nil {
		mult = rel.Multiplier(attacker.God, defender.God)
	}
	if byAlign, ok := elementMultiplier[kind]; ok {
		if m, ok := byAlign[defender.Alignment]; ok {
			mult *= m
		}
	}
	out.Multiplier = mult

	final := int(float64(actual) * mult)
	if final < 1 {
		final = 1
	}

	// Проявленное Ка поглощает урон раньше здоровья
	if defender.Manifest != nil && defender.Manifest.Strength > 0 {
		absorbed := final
		if absorbed > defender.Manifest.Strength {
			absorbed = defender.Manifest.Strength
		}
		defender.Manifest.Strength -= absorbed
		final -= absorbed
		out.Absorbed = absorbed
		if defender.Manifest.Strength == 0 {
			defender.Manifest = nil
		}
	}

	out.Final = final
	out.Destroyed = defender.Stats.TakeDamage(final)

	fields := logrus.Fields{
		"component": "combat_system",
		"target":    defender.Name,
		"base":      out.Base,
		"reduction": out.Reduction,
		"mult":      out.Multiplier,
		"absorbed":  out.Absorbed,
		"final":     out.Final,
		"destroyed": out.Destroyed,
	}
	if attacker != nil {
		fields["attacker"] = attacker.Name
	}
	logger.Log.WithFields(fields).Debug("Damage resolved")

	return out
}

// StrikeRoll - исход бросков точности перед расчетом урона.
type StrikeRoll struct {
	Crit    bool // Базовый урон удваивается
	Dodged  bool // Цель полностью избегает удара
	Blocked bool // Базовый урон режется вдвое
}

// RollStrike бросает уклонение цели, затем крит атакующего и блок цели.
// Нулевой шанс не тратит бросок генератора: бойцы без этих статов
// проходят через формулу урона без случайности.
func RollStrike(rng *rand.Rand, attacker, defender *domain.Entity) StrikeRoll {
	var roll StrikeRoll
	if rng == nil || attacker == nil || attacker.Stats == nil || defender.Stats == nil {
		return roll
	}

	if p := defender.Stats.DodgeChance; p > 0 && rng.Float64() < p {
		roll.Dodged = true
		return roll
	}
	if p := attacker.Stats.CritChance; p > 0 && rng.Float64() < p {
		roll.Crit = true
	}
	if p := defender.Stats.BlockChance; p > 0 && rng.Float64() < p {
		roll.Blocked = true
	}
	return roll
}

// HealOutcome - результат лечения.
type HealOutcome struct {
	Amount      int
	FullyHealed bool
}

// ResolveHeal лечит цель, зажимая здоровье на максимуме.
func ResolveHeal(target *domain.Entity, amount int) HealOutcome {
	out := HealOutcome{}
	if target.Stats == nil || target.Stats.IsDead || amount <= 0 {
		return out
	}

	before := target.Stats.HP
	out.FullyHealed = target.Stats.Heal(amount)
	out.Amount = target.Stats.HP - before

	logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"target":    target.Name,
		"healed":    out.Amount,
		"full":      out.FullyHealed,
	}).Debug("Heal resolved")

	return out
}
