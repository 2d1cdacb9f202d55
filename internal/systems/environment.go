package systems

import "github.com/Noquela/Sands-of-Duat-sub000/internal/domain"

// PassageMagnitude - опасность перехода через очередной час Дуата.
// Растет с глубиной раунда, смягчается сопротивлением сущности.
func PassageMagnitude(round, base, resistance int) int {
	m := base + round/2 - resistance
	if m < 0 {
		m = 0
	}
	return m
}

// PassageBoon - на четных раундах путь дарит небольшое облегчение.
func PassageBoon(round int) int {
	if round%2 == 0 {
		return 1 + round/4
	}
	return 0
}

// CellHazard - добавка опасности от рельефа клетки.
func CellHazard(board *domain.Board, e *domain.Entity) int {
	if board == nil {
		return 0
	}
	return board.HazardAt(e.Pos)
}
