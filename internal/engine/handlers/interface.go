package handlers

import (
	"encoding/json"
	"math/rand"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
)

// Context передает хендлеру состояние боя.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Board         *domain.Board
	Roster        *domain.Roster
	Actor         *domain.Entity
	Relationships *domain.RelationshipTable

	// Targets - легальные наборы целей актора, предвычисленные фазой Targeting.
	Targets map[domain.ActionType][]domain.EntityID

	// Interventions - активные божественные вмешательства боя.
	// Резолвер урона и броски точности читают отсюда модификаторы.
	Interventions map[domain.GodName]*domain.DivineIntervention

	Rng *rand.Rand
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в ленту событий напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, ERROR)

	Target domain.EntityID // Основная цель (NoEntity, если нет)
	Score  int             // Сдвиг баланса Маат за поступок
	Killed bool            // Цель погибла от этого действия
}

// HandlerFunc - это контракт для любой команды (MOVE, ATTACK, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{Target: domain.NoEntity}
}
