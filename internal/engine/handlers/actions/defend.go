package actions

import (
	"fmt"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/engine/handlers"

	"github.com/google/uuid"
)

// HandleDefend - глухая оборона до конца раунда.
// Также действие по умолчанию при таймауте хода игрока.
func HandleDefend(ctx handlers.Context) (handlers.Result, error) {
	bonus := ctx.Actor.Stats.Defense / 2
	if bonus < 1 {
		bonus = 1
	}

	ctx.Actor.AddEffect(&domain.Effect{
		ID:       uuid.NewString(),
		Name:     "guard stance",
		Kind:     domain.EffectStatMod,
		Timing:   domain.TimingEndOfTurn,
		Duration: 1,
		Stacks:   1,
		Stat:     domain.StatDefense,
		Amount:   bonus,
		Active:   true,
	})

	return handlers.Result{
		Msg:     fmt.Sprintf("%s уходит в оборону (+%d защиты).", ctx.Actor.Name, bonus),
		MsgType: "INFO",
		Target:  domain.NoEntity,
	}, nil
}
