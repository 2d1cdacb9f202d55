package domain

import "github.com/rotisserie/eris"

// Таксономия ошибок движка. Структурные ошибки возвращаются вызывающему
// синхронно и не меняют состояние боя.
var (
	ErrInvalidPosition     = eris.New("position outside board or occupied")
	ErrInsufficientActions = eris.New("no action budget left this round")
	ErrInvalidTarget       = eris.New("target not in legal target set")
	ErrEffectExecution     = eris.New("effect execution failed")
	ErrCombatEnded         = eris.New("combat already ended")
)
