package domain

// TerrainKind - тип клетки поля боя.
type TerrainKind uint8

const (
	TerrainSand TerrainKind = iota
	TerrainRock
	TerrainRiver
)

// Board - поле боя: геометрия, рельеф и индекс занятости клеток.
// Занятость хранится плоским слайсом EntityID, NoEntity = клетка свободна.
type Board struct {
	Width  int
	Height int

	Terrain  []TerrainKind
	Hazard   []int // Бонусный урон от рельефа (например, река душ)
	occupied []EntityID
}

func NewBoard(width, height int) *Board {
	size := width * height
	b := &Board{
		Width:    width,
		Height:   height,
		Terrain:  make([]TerrainKind, size),
		Hazard:   make([]int, size),
		occupied: make([]EntityID, size),
	}
	for i := range b.occupied {
		b.occupied[i] = NoEntity
	}
	return b
}

// Index конвертирует 2D координаты в индекс плоского слайса.
func (b *Board) Index(x, y int) int {
	return y*b.Width + x
}

// InBounds проверяет, что позиция внутри поля.
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// At возвращает, кто стоит на клетке (NoEntity, если пусто).
func (b *Board) At(p Position) EntityID {
	if !b.InBounds(p) {
		return NoEntity
	}
	return b.occupied[b.Index(p.X, p.Y)]
}

// IsFree - клетка внутри поля и не занята.
func (b *Board) IsFree(p Position) bool {
	return b.InBounds(p) && b.occupied[b.Index(p.X, p.Y)] == NoEntity
}

// Place ставит сущность на клетку. false, если клетка вне поля или занята.
func (b *Board) Place(id EntityID, p Position) bool {
	if !b.IsFree(p) {
		return false
	}
	b.occupied[b.Index(p.X, p.Y)] = id
	return true
}

// Remove освобождает клетку, которую занимала сущность.
func (b *Board) Remove(p Position) {
	if b.InBounds(p) {
		b.occupied[b.Index(p.X, p.Y)] = NoEntity
	}
}

// Move переставляет сущность. false, если целевая клетка недоступна.
func (b *Board) Move(id EntityID, from, to Position) bool {
	if !b.IsFree(to) {
		return false
	}
	b.Remove(from)
	b.occupied[b.Index(to.X, to.Y)] = id
	return true
}

// HazardAt возвращает модификатор опасности рельефа на клетке.
func (b *Board) HazardAt(p Position) int {
	if !b.InBounds(p) {
		return 0
	}
	return b.Hazard[b.Index(p.X, p.Y)]
}
