package systems

import "github.com/Noquela/Sands-of-Duat-sub000/internal/domain"

// ScoreAttack оценивает мораль атаки: бить слабого - против Маат,
// бросать вызов сильному - достойно.
func ScoreAttack(attacker, target *domain.Entity) int {
	if attacker.Stats == nil || target.Stats == nil {
		return 0
	}
	if target.Stats.Attack < attacker.Stats.Attack || target.Stats.HP < attacker.Stats.HP/2 {
		return domain.MoralAttackWeak
	}
	return domain.MoralAttackStrong
}

// ScoreHeal - лечение всегда в ладу с Маат.
func ScoreHeal() int {
	return domain.MoralHeal
}

// ScoreKill оценивает убийство: враг или мирный.
func ScoreKill(killer, victim *domain.Entity) int {
	if victim.Side != killer.Side {
		return domain.MoralKillHostile
	}
	return domain.MoralKillPeaceful
}

// JudgmentVerdict - исход суда над личным балансом.
type JudgmentVerdict uint8

const (
	VerdictNeutral JudgmentVerdict = iota
	VerdictBlessed
	VerdictCursed
)

// Judge выносит вердикт по личному балансу сущности.
func Judge(balance, blessThreshold, curseThreshold int) JudgmentVerdict {
	if balance >= blessThreshold {
		return VerdictBlessed
	}
	if balance <= curseThreshold {
		return VerdictCursed
	}
	return VerdictNeutral
}

// BalanceDecay приближает счетчик к нулю после коррекции.
func BalanceDecay(balance int) int {
	return balance / 2
}
