package systems

import (
	"math/rand"
	"testing"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"
)

func init() {
	logger.Init()
}

func makeFighter(name string, attack, defense, hp int) *domain.Entity {
	return &domain.Entity{
		Name: name,
		Stats: &domain.StatsComponent{
			Attack:  attack,
			Defense: defense,
			HP:      hp,
			MaxHP:   hp,
		},
	}
}

func TestResolveDamageScenario(t *testing.T) {
	// Атака 10 против защиты 4: снижение min(10/2, 4) = 4, урон 6
	attacker := makeFighter("X", 10, 0, 20)
	defender := makeFighter("Y", 0, 4, 20)

	out := ResolveDamage(attacker, defender, attacker.Stats.Attack, DamagePhysical, nil, nil)

	if out.Final != 6 {
		t.Errorf("Expected 6 damage, got %d", out.Final)
	}
	if defender.Stats.HP != 14 {
		t.Errorf("Expected HP 14, got %d", defender.Stats.HP)
	}
}

func TestResolveDamageFormula(t *testing.T) {
	// health_after = max(0, health - max(1, amount - min(amount/2, defense)))
	for amount := 1; amount <= 30; amount++ {
		for defense := 0; defense <= 20; defense++ {
			defender := makeFighter("D", 0, defense, 100)

			reduction := amount / 2
			if defense < reduction {
				reduction = defense
			}
			expected := amount - reduction
			if expected < 1 {
				expected = 1
			}

			out := ResolveDamage(nil, defender, amount, DamagePhysical, nil, nil)
			if out.Final != expected {
				t.Fatalf("amount=%d defense=%d: expected %d, got %d", amount, defense, expected, out.Final)
			}
			if defender.Stats.HP != 100-expected {
				t.Fatalf("amount=%d defense=%d: expected HP %d, got %d", amount, defense, 100-expected, defender.Stats.HP)
			}
		}
	}
}

func TestResolveDamageMinimumOne(t *testing.T) {
	attacker := makeFighter("X", 2, 0, 20)
	defender := makeFighter("Y", 0, 50, 20)

	out := ResolveDamage(attacker, defender, 2, DamagePhysical, nil, nil)
	if out.Final != 1 {
		t.Errorf("Expected minimum 1 damage, got %d", out.Final)
	}
}

func TestResolveDamageGodMultiplier(t *testing.T) {
	rel := domain.NewRelationshipTable()

	attacker := makeFighter("Set", 10, 0, 20)
	attacker.God = domain.GodSet
	defender := makeFighter("Osiris", 0, 0, 30)
	defender.God = domain.GodOsiris

	// actual = max(1, 10-0) = 10; вражда x1.5 = 15
	out := ResolveDamage(attacker, defender, 10, DamagePhysical, rel, nil)
	if out.Final != 15 {
		t.Errorf("Expected 15 damage with feud multiplier, got %d", out.Final)
	}
}

func TestResolveDamageKaAbsorbsFirst(t *testing.T) {
	attacker := makeFighter("X", 10, 0, 20)
	defender := makeFighter("Y", 0, 0, 20)
	defender.Manifest = &domain.ManifestComponent{Strength: 4}

	out := ResolveDamage(attacker, defender, 10, DamagePhysical, nil, nil)

	if out.Absorbed != 4 {
		t.Errorf("Expected 4 absorbed by Ka, got %d", out.Absorbed)
	}
	if out.Final != 6 {
		t.Errorf("Expected 6 to health, got %d", out.Final)
	}
	if defender.Manifest != nil {
		t.Error("Expected exhausted Ka to dissipate")
	}
}

func TestResolveDamageMarksDeadButKeepsEntity(t *testing.T) {
	attacker := makeFighter("X", 100, 0, 20)
	defender := makeFighter("Y", 0, 0, 5)

	out := ResolveDamage(attacker, defender, 100, DamagePhysical, nil, nil)

	if !out.Destroyed {
		t.Error("Expected Destroyed signal")
	}
	if defender.Stats.HP != 0 {
		t.Errorf("Expected HP clamped at 0, got %d", defender.Stats.HP)
	}
	if !defender.Stats.IsDead {
		t.Error("Expected IsDead flag")
	}
}

func TestResolveDamageBlessingRaisesDefense(t *testing.T) {
	// Покров Исиды (+3 защиты) должен реально менять расчет
	blessed := makeFighter("blessed", 0, 0, 20)
	blessed.God = domain.GodIsis
	plain := makeFighter("plain", 0, 0, 20)
	plain.God = domain.GodIsis

	active := map[domain.GodName]*domain.DivineIntervention{
		domain.GodIsis: {God: domain.GodIsis, Kind: domain.BlessingWardOfIsis, Duration: 2},
	}

	withBlessing := ResolveDamage(nil, blessed, 10, DamagePhysical, nil, active)
	without := ResolveDamage(nil, plain, 10, DamagePhysical, nil, nil)

	if withBlessing.Final >= without.Final {
		t.Fatalf("blessing has no mechanical effect: blessed takes %d, unblessed takes %d",
			withBlessing.Final, without.Final)
	}
	// base 10, защита 0+3: снижение min(5, 3) = 3
	if withBlessing.Final != 7 {
		t.Errorf("Expected 7 damage under the ward, got %d", withBlessing.Final)
	}
}

func TestResolveDamageCurseLowersDefense(t *testing.T) {
	cursed := makeFighter("cursed", 0, 4, 20)
	cursed.God = domain.GodAnubis

	active := map[domain.GodName]*domain.DivineIntervention{
		domain.GodAnubis: {God: domain.GodAnubis, Kind: domain.CurseOfDust, Duration: 2},
	}

	// Защита 4-3=1: снижение min(5, 1) = 1
	out := ResolveDamage(nil, cursed, 10, DamagePhysical, nil, active)
	if out.Final != 9 {
		t.Errorf("Expected 9 damage under the curse, got %d", out.Final)
	}
}

func TestRollStrikeZeroChancesAreSilent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	attacker := makeFighter("X", 10, 0, 20)
	defender := makeFighter("Y", 0, 0, 20)

	before := rng.Int63()
	rng = rand.New(rand.NewSource(7))

	roll := RollStrike(rng, attacker, defender)
	if roll.Crit || roll.Dodged || roll.Blocked {
		t.Fatalf("zero chances must never trigger: %+v", roll)
	}
	// Нулевые шансы не тратят броски генератора
	if got := rng.Int63(); got != before {
		t.Error("RollStrike consumed random draws despite zero chances")
	}
}

func TestRollStrikeCertainDodge(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	attacker := makeFighter("X", 10, 0, 20)
	attacker.Stats.CritChance = 1.0
	defender := makeFighter("Y", 0, 0, 20)
	defender.Stats.DodgeChance = 1.0

	roll := RollStrike(rng, attacker, defender)
	if !roll.Dodged {
		t.Error("Expected a certain dodge")
	}
	if roll.Crit {
		t.Error("Dodge preempts the crit roll")
	}
}

func TestRollStrikeCritAndBlock(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	attacker := makeFighter("X", 10, 0, 20)
	attacker.Stats.CritChance = 1.0
	defender := makeFighter("Y", 0, 0, 20)
	defender.Stats.BlockChance = 1.0

	roll := RollStrike(rng, attacker, defender)
	if !roll.Crit || !roll.Blocked {
		t.Fatalf("Expected certain crit and block, got %+v", roll)
	}
}

func TestResolveHealClampsAtMax(t *testing.T) {
	target := makeFighter("Y", 0, 0, 20)
	target.Stats.HP = 15

	out := ResolveHeal(target, 50)
	if !out.FullyHealed {
		t.Error("Expected FullyHealed signal")
	}
	if out.Amount != 5 {
		t.Errorf("Expected 5 actually healed, got %d", out.Amount)
	}
	if target.Stats.HP != 20 {
		t.Errorf("Expected HP 20, got %d", target.Stats.HP)
	}

	// Мертвых не лечим
	target.Stats.IsDead = true
	out = ResolveHeal(target, 10)
	if out.Amount != 0 {
		t.Errorf("Expected no healing on the dead, got %d", out.Amount)
	}
}
