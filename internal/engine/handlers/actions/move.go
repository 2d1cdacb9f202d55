package actions

import (
	"fmt"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/engine/handlers"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/api"
)

func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	from := ctx.Actor.Pos
	to := from.Shift(p.Dx, p.Dy)

	// Клетка должна быть внутри поля и свободна
	if !ctx.Board.Move(ctx.Actor.ID, from, to) {
		return handlers.Result{}, domain.ErrInvalidPosition
	}
	ctx.Actor.Pos = to

	return handlers.Result{
		Msg:     fmt.Sprintf("%s перемещается в (%d, %d).", ctx.Actor.Name, to.X, to.Y),
		MsgType: "INFO",
		Target:  domain.NoEntity,
	}, nil
}
