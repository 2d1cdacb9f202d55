package engine

import (
	"container/heap"
	"math/rand"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"
)

// minPriority - нижняя граница приоритета. Нулевых и отрицательных
// приоритетов не бывает, иначе цикл извлечения мог бы не завершиться.
const minPriority = 1

// randomSpread - ширина случайной добавки к приоритету при пересборке.
const randomSpread = 5

// InitiativeItem - запись очереди инициативы.
// Порядок: Priority убыв., Tiebreak убыв., Seq возр. (ранняя вставка первой).
// Тройка гарантирует строгий полный порядок: Seq уникален.
type InitiativeItem struct {
	EntityID domain.EntityID
	Priority int
	Tiebreak int
	Seq      uint64
	Index    int // Индекс в куче (нужен для heap.Fix)
}

// InitiativeQueue реализует heap.Interface (max-heap по приоритету)
type InitiativeQueue []*InitiativeItem

func (pq InitiativeQueue) Len() int { return len(pq) }

func (pq InitiativeQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority > pq[j].Priority
	}
	if pq[i].Tiebreak != pq[j].Tiebreak {
		return pq[i].Tiebreak > pq[j].Tiebreak
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq InitiativeQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *InitiativeQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*InitiativeItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *InitiativeQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// PriorityFunc считает приоритет сущности при пересборке
// (базовая инициатива + божественные и душевные модификаторы).
type PriorityFunc func(*domain.Entity) int

// Scheduler управляет очередью инициативы раунда.
type Scheduler struct {
	queue   InitiativeQueue
	itemMap map[domain.EntityID]*InitiativeItem
	seq     uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		queue:   make(InitiativeQueue, 0),
		itemMap: make(map[domain.EntityID]*InitiativeItem),
	}
}

// Rebuild пересобирает очередь в начале раунда.
// Ровно одна запись на живую сущность; случайная добавка ограничена
// randomSpread и берется из инжектированного генератора.
func (s *Scheduler) Rebuild(entities []*domain.Entity, priority PriorityFunc, rng *rand.Rand) {
	s.queue = s.queue[:0]
	s.itemMap = make(map[domain.EntityID]*InitiativeItem, len(entities))

	for _, e := range entities {
		if !e.IsAlive() {
			continue
		}

		p := priority(e) + rng.Intn(randomSpread)
		if p < minPriority {
			p = minPriority
		}

		s.seq++
		item := &InitiativeItem{
			EntityID: e.ID,
			Priority: p,
			Tiebreak: e.Stats.Initiative,
			Seq:      s.seq,
		}
		heap.Push(&s.queue, item)
		s.itemMap[e.ID] = item
	}

	logger.Log.WithField("entries", s.queue.Len()).Debug("Initiative rebuilt")
}

// Advance извлекает следующую сущность с остатком бюджета действий.
// Мертвые и удаленные записи лениво пропускаются. nil - очередь иссякла
// (фаза действий завершается досрочно, это не ошибка).
func (s *Scheduler) Advance(roster *domain.Roster) *domain.Entity {
	for s.queue.Len() > 0 {
		item := heap.Pop(&s.queue).(*InitiativeItem)
		delete(s.itemMap, item.EntityID)

		e := roster.Get(item.EntityID)
		if e == nil || !e.IsAlive() {
			continue // Лениво пропускаем мертвых
		}
		if e.ActionsLeft <= 0 {
			continue // Бюджет исчерпан - в список действий раунда не попадает
		}
		return e
	}
	return nil
}

// Modify сдвигает приоритет живой записи, сохраняя инвариант кучи.
func (s *Scheduler) Modify(id domain.EntityID, delta int) {
	item, ok := s.itemMap[id]
	if !ok {
		return
	}
	item.Priority += delta
	if item.Priority < minPriority {
		item.Priority = minPriority
	}
	heap.Fix(&s.queue, item.Index)
}

// Remove убирает запись сущности (снятие с поля).
func (s *Scheduler) Remove(id domain.EntityID) {
	if item, ok := s.itemMap[id]; ok {
		heap.Remove(&s.queue, item.Index)
		delete(s.itemMap, id)
	}
}

func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// Snapshot возвращает записи очереди в порядке извлечения (для снимков и отладки).
func (s *Scheduler) Snapshot() []InitiativeItem {
	tmp := make(InitiativeQueue, len(s.queue))
	for i, item := range s.queue {
		cp := *item
		tmp[i] = &cp
	}
	heap.Init(&tmp)

	out := make([]InitiativeItem, 0, len(tmp))
	for tmp.Len() > 0 {
		out = append(out, *heap.Pop(&tmp).(*InitiativeItem))
	}
	return out
}
