package actions

import (
	"fmt"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/engine/handlers"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/systems"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/api"
)

// damageKindFor - стихия урона по богу-покровителю атакующего.
func damageKindFor(god domain.GodName) systems.DamageKind {
	switch god {
	case domain.GodRa, domain.GodHorus, domain.GodBastet:
		return systems.DamageSolar
	case domain.GodSet, domain.GodAnubis, domain.GodOsiris:
		return systems.DamageShadow
	}
	return systems.DamagePhysical
}

func HandleAttack(ctx handlers.Context, p api.TargetPayload) (handlers.Result, error) {
	targetID := domain.EntityID(p.TargetID)

	// Цель должна быть в легальном наборе, предвычисленном фазой Targeting
	if !systems.Contains(ctx.Targets[domain.ActionAttack], targetID) {
		return handlers.Result{}, domain.ErrInvalidTarget
	}

	target := ctx.Roster.Get(targetID)
	if target == nil || !target.IsAlive() {
		return handlers.Result{}, domain.ErrInvalidTarget
	}

	score := systems.ScoreAttack(ctx.Actor, target)

	// Уклонение/крит/блок бросаются до расчета урона
	strike := systems.RollStrike(ctx.Rng, ctx.Actor, target)
	if strike.Dodged {
		return handlers.Result{
			Msg:     fmt.Sprintf("%s уклоняется от удара %s.", target.Name, ctx.Actor.Name),
			MsgType: "COMBAT",
			Target:  targetID,
			Score:   score,
		}, nil
	}

	// Атака с учетом активного вмешательства бога атакующего
	base := ctx.Actor.EffectiveAttack() +
		systems.InterventionStat(ctx.Interventions, ctx.Actor.God, domain.StatAttack)
	if base < 0 {
		base = 0
	}
	if strike.Crit {
		base *= 2
	}
	if strike.Blocked {
		base /= 2
	}

	out := systems.ResolveDamage(
		ctx.Actor,
		target,
		base,
		damageKindFor(ctx.Actor.God),
		ctx.Relationships,
		ctx.Interventions,
	)

	msg := fmt.Sprintf("%s наносит %d урона по %s.", ctx.Actor.Name, out.Final, target.Name)
	if strike.Crit {
		msg += " Критический удар!"
	}
	if strike.Blocked {
		msg += fmt.Sprintf(" %s принимает удар в блок.", target.Name)
	}
	if out.Absorbed > 0 {
		msg += fmt.Sprintf(" Ка поглощает %d.", out.Absorbed)
	}
	if out.Destroyed {
		score += systems.ScoreKill(ctx.Actor, target)
		msg += fmt.Sprintf(" %s погибает.", target.Name)
	}

	return handlers.Result{
		Msg:     msg,
		MsgType: "COMBAT",
		Target:  targetID,
		Score:   score,
		Killed:  out.Destroyed,
	}, nil
}
