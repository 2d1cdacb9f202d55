package arena

import (
	"math/rand"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
)

// Константы генерации
const (
	MinSize = 6 // Меньше нечем маневрировать

	riverHazard = 2 // Река душ жжет каждый ход
	emberHazard = 1

	rockFraction  = 12 // Одна скала на столько клеток
	emberFraction = 20
)

// Rect - прямоугольный участок рельефа
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Generate создает арену: песчаная основа, скальные выходы, извилистая
// река душ и тлеющие участки. Весь рандом из инжектированного генератора,
// одинаковый сид дает одинаковую арену.
func Generate(width, height int, rng *rand.Rand) *domain.Board {
	if width < MinSize {
		width = MinSize
	}
	if height < MinSize {
		height = MinSize
	}

	b := domain.NewBoard(width, height)

	carveRocks(b, rng)
	carveRiver(b, rng)
	scatterEmbers(b, rng)

	return b
}

// carveRocks разбрасывает скальные выходы небольшими кластерами.
func carveRocks(b *domain.Board, rng *rand.Rand) {
	count := b.Width * b.Height / rockFraction

	for i := 0; i < count; i++ {
		r := Rect{
			X: rng.Intn(b.Width),
			Y: rng.Intn(b.Height),
			W: 1 + rng.Intn(2),
			H: 1 + rng.Intn(2),
		}
		for y := r.Y; y < r.Y+r.H && y < b.Height; y++ {
			for x := r.X; x < r.X+r.W && x < b.Width; x++ {
				b.Terrain[b.Index(x, y)] = domain.TerrainRock
			}
		}
	}
}

// carveRiver прокладывает реку душ сверху вниз со случайными изгибами.
// Река непрерывна: каждая следующая клетка соседствует с предыдущей.
func carveRiver(b *domain.Board, rng *rand.Rand) {
	x := b.Width/3 + rng.Intn(b.Width/3)

	for y := 0; y < b.Height; y++ {
		idx := b.Index(x, y)
		b.Terrain[idx] = domain.TerrainRiver
		b.Hazard[idx] = riverHazard

		// Изгиб не дальше чем на клетку, без выхода за край
		x += rng.Intn(3) - 1
		if x < 1 {
			x = 1
		}
		if x > b.Width-2 {
			x = b.Width - 2
		}
	}
}

// scatterEmbers помечает тлеющие клетки на открытом песке.
func scatterEmbers(b *domain.Board, rng *rand.Rand) {
	count := b.Width * b.Height / emberFraction

	for i := 0; i < count; i++ {
		x := rng.Intn(b.Width)
		y := rng.Intn(b.Height)
		idx := b.Index(x, y)
		if b.Terrain[idx] != domain.TerrainSand {
			continue // Реку и скалы не трогаем
		}
		b.Hazard[idx] = emberHazard
	}
}
