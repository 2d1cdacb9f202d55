package engine

import (
	"container/heap"
	"math/rand"
	"testing"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"
)

func init() {
	logger.Init()
}

func makeFighter(name string, initiative, hp int) *domain.Entity {
	return &domain.Entity{
		ID:   domain.NoEntity,
		Name: name,
		Stats: &domain.StatsComponent{
			Attack:     5,
			HP:         hp,
			MaxHP:      hp,
			Initiative: initiative,
			MoveRange:  1,
		},
		ActionsLeft: 1,
	}
}

func basePriority(e *domain.Entity) int {
	return e.Stats.Initiative
}

// Тройка (Priority, Tiebreak, Seq) дает строгий полный порядок:
// никакие две записи не равны.
func TestQueueStrictTotalOrder(t *testing.T) {
	q := make(InitiativeQueue, 0)

	items := []*InitiativeItem{
		{EntityID: 0, Priority: 5, Tiebreak: 2, Seq: 1},
		{EntityID: 1, Priority: 9, Tiebreak: 1, Seq: 2},
		{EntityID: 2, Priority: 5, Tiebreak: 7, Seq: 3},
		{EntityID: 3, Priority: 5, Tiebreak: 2, Seq: 4},
	}
	for _, it := range items {
		heap.Push(&q, it)
	}

	// Приоритет убыв., тайбрейк убыв., при полном совпадении - ранняя вставка
	want := []domain.EntityID{1, 2, 0, 3}
	for i, expected := range want {
		got := heap.Pop(&q).(*InitiativeItem)
		if got.EntityID != expected {
			t.Fatalf("position %d: got entity %d, want %d", i, got.EntityID, expected)
		}
	}
}

func TestSchedulerRebuildAndAdvance(t *testing.T) {
	roster := domain.NewRoster()
	fast := makeFighter("fast", 30, 10)
	mid := makeFighter("mid", 15, 10)
	slow := makeFighter("slow", 1, 10)
	roster.Add(fast)
	roster.Add(mid)
	roster.Add(slow)

	s := NewScheduler()
	// Разрывы приоритета больше randomSpread: порядок детерминирован
	s.Rebuild(roster.Alive(), basePriority, rand.New(rand.NewSource(7)))

	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}

	for _, want := range []string{"fast", "mid", "slow"} {
		e := s.Advance(roster)
		if e == nil || e.Name != want {
			t.Fatalf("expected %s, got %+v", want, e)
		}
	}
	if e := s.Advance(roster); e != nil {
		t.Fatalf("queue should be exhausted, got %s", e.Name)
	}
}

func TestSchedulerPriorityFloor(t *testing.T) {
	roster := domain.NewRoster()
	e := makeFighter("weakling", -50, 10)
	roster.Add(e)

	s := NewScheduler()
	s.Rebuild(roster.Alive(), basePriority, rand.New(rand.NewSource(1)))

	snap := s.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(snap))
	}
	if snap[0].Priority < minPriority {
		t.Fatalf("priority %d is below the floor", snap[0].Priority)
	}

	// Сдвиг вниз тоже упирается в пол
	s.Modify(e.ID, -1000)
	snap = s.Snapshot()
	if snap[0].Priority != minPriority {
		t.Fatalf("expected floor %d after modify, got %d", minPriority, snap[0].Priority)
	}
}

func TestSchedulerSkipsDeadLazily(t *testing.T) {
	roster := domain.NewRoster()
	first := makeFighter("first", 30, 10)
	second := makeFighter("second", 10, 10)
	roster.Add(first)
	roster.Add(second)

	s := NewScheduler()
	s.Rebuild(roster.Alive(), basePriority, rand.New(rand.NewSource(3)))

	// Смерть после пересборки: запись осталась, но извлечение ее пропустит
	first.Stats.IsDead = true

	e := s.Advance(roster)
	if e == nil || e.Name != "second" {
		t.Fatalf("dead entity must be skipped, got %+v", e)
	}
}

func TestSchedulerSkipsExhaustedBudget(t *testing.T) {
	roster := domain.NewRoster()
	spent := makeFighter("spent", 30, 10)
	fresh := makeFighter("fresh", 10, 10)
	roster.Add(spent)
	roster.Add(fresh)

	spent.ActionsLeft = 0

	s := NewScheduler()
	s.Rebuild(roster.Alive(), basePriority, rand.New(rand.NewSource(3)))

	e := s.Advance(roster)
	if e == nil || e.Name != "fresh" {
		t.Fatalf("entity without budget must be skipped, got %+v", e)
	}
	if e := s.Advance(roster); e != nil {
		t.Fatalf("expected exhausted queue, got %s", e.Name)
	}
}

func TestSchedulerRemove(t *testing.T) {
	roster := domain.NewRoster()
	a := makeFighter("a", 30, 10)
	b := makeFighter("b", 10, 10)
	roster.Add(a)
	roster.Add(b)

	s := NewScheduler()
	s.Rebuild(roster.Alive(), basePriority, rand.New(rand.NewSource(3)))

	s.Remove(a.ID)
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry after remove, got %d", s.Len())
	}
	e := s.Advance(roster)
	if e == nil || e.Name != "b" {
		t.Fatalf("expected b, got %+v", e)
	}
}

func TestSchedulerSnapshotDoesNotDrain(t *testing.T) {
	roster := domain.NewRoster()
	roster.Add(makeFighter("a", 30, 10))
	roster.Add(makeFighter("b", 10, 10))

	s := NewScheduler()
	s.Rebuild(roster.Alive(), basePriority, rand.New(rand.NewSource(3)))

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 snapshot entries, got %d", len(snap))
	}
	if snap[0].Priority < snap[1].Priority {
		t.Fatal("snapshot must be in extraction order")
	}
	if s.Len() != 2 {
		t.Fatalf("snapshot must not drain the queue, len=%d", s.Len())
	}
}
