package arena

import (
	"math/rand"
	"testing"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(12, 10, rand.New(rand.NewSource(99)))
	b := Generate(12, 10, rand.New(rand.NewSource(99)))

	for i := range a.Terrain {
		if a.Terrain[i] != b.Terrain[i] {
			t.Fatalf("terrain diverged at cell %d with the same seed", i)
		}
		if a.Hazard[i] != b.Hazard[i] {
			t.Fatalf("hazard diverged at cell %d with the same seed", i)
		}
	}
}

func TestGenerateRiverIsContinuous(t *testing.T) {
	b := Generate(16, 12, rand.New(rand.NewSource(5)))

	prevX := -1
	for y := 0; y < b.Height; y++ {
		found := -1
		for x := 0; x < b.Width; x++ {
			if b.Terrain[b.Index(x, y)] == domain.TerrainRiver {
				found = x
				break
			}
		}
		if found == -1 {
			t.Fatalf("row %d has no river cell", y)
		}
		if b.HazardAt(domain.Position{X: found, Y: y}) < riverHazard {
			t.Fatalf("river cell (%d,%d) carries no hazard", found, y)
		}
		if prevX >= 0 && abs(found-prevX) > 1 {
			t.Fatalf("river jumps from column %d to %d between rows", prevX, found)
		}
		prevX = found
	}
}

func TestGenerateEnforcesMinimumSize(t *testing.T) {
	b := Generate(2, 3, rand.New(rand.NewSource(1)))
	if b.Width < MinSize || b.Height < MinSize {
		t.Fatalf("board %dx%d is below the minimum", b.Width, b.Height)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
