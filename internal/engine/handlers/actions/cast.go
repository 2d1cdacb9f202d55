package actions

import (
	"fmt"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/engine/handlers"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/systems"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/api"
)

// HandleCast - лечащее заклинание по союзнику (включая себя).
// Сила исцеления растет с силой духа заклинателя.
func HandleCast(ctx handlers.Context, p api.TargetPayload) (handlers.Result, error) {
	targetID := domain.EntityID(p.TargetID)

	if !systems.Contains(ctx.Targets[domain.ActionCast], targetID) {
		return handlers.Result{}, domain.ErrInvalidTarget
	}

	target := ctx.Roster.Get(targetID)
	if target == nil || !target.IsAlive() {
		return handlers.Result{}, domain.ErrInvalidTarget
	}

	amount := 2 + ctx.Actor.Stats.SpiritPow/2
	out := systems.ResolveHeal(target, amount)

	msg := fmt.Sprintf("%s исцеляет %s на %d.", ctx.Actor.Name, target.Name, out.Amount)
	if out.FullyHealed {
		msg += " Раны закрылись полностью."
	}

	return handlers.Result{
		Msg:     msg,
		MsgType: "COMBAT",
		Target:  targetID,
		Score:   systems.ScoreHeal(),
	}, nil
}
