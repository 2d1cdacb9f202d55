package domain

// Roster - плотный массив сущностей с free-list освободившихся слотов.
// EntityID это индекс слота; после Remove слот переиспользуется.
type Roster struct {
	slots []*Entity
	free  []EntityID
}

func NewRoster() *Roster {
	return &Roster{
		slots: make([]*Entity, 0, 8),
		free:  make([]EntityID, 0, 4),
	}
}

// Add помещает сущность в первый свободный слот и присваивает ей ID.
func (r *Roster) Add(e *Entity) EntityID {
	if n := len(r.free); n > 0 {
		id := r.free[n-1]
		r.free = r.free[:n-1]
		e.ID = id
		r.slots[id] = e
		return id
	}

	id := EntityID(len(r.slots))
	e.ID = id
	r.slots = append(r.slots, e)
	return id
}

// Get возвращает сущность по ID (nil, если слот пуст или ID вне диапазона).
func (r *Roster) Get(id EntityID) *Entity {
	if id < 0 || int(id) >= len(r.slots) {
		return nil
	}
	return r.slots[id]
}

// Remove освобождает слот. false, если сущности там не было.
func (r *Roster) Remove(id EntityID) bool {
	if r.Get(id) == nil {
		return false
	}
	r.slots[id] = nil
	r.free = append(r.free, id)
	return true
}

// ForEach обходит занятые слоты в порядке индексов (детерминированно).
func (r *Roster) ForEach(fn func(*Entity)) {
	for _, e := range r.slots {
		if e != nil {
			fn(e)
		}
	}
}

// Alive возвращает живые сущности в порядке индексов.
func (r *Roster) Alive() []*Entity {
	out := make([]*Entity, 0, len(r.slots))
	for _, e := range r.slots {
		if e != nil && e.IsAlive() {
			out = append(out, e)
		}
	}
	return out
}

// Len - количество занятых слотов.
func (r *Roster) Len() int {
	return len(r.slots) - len(r.free)
}
