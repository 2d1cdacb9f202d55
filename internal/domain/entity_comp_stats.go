package domain

// TakeDamage наносит урон. Возвращает true, если цель погибла.
// Здоровье зажато в [0, MaxHP]. Снятие с поля - забота Lifecycle, не статов.
func (s *StatsComponent) TakeDamage(amount int) bool {
	if s.IsDead {
		return false
	}

	if amount < 0 {
		amount = 0
	}

	s.HP -= amount

	if s.HP <= 0 {
		s.HP = 0
		s.IsDead = true
		return true
	}
	return false
}

// Heal лечит сущность. Возвращает true, если здоровье уперлось в максимум.
func (s *StatsComponent) Heal(amount int) bool {
	if s.IsDead {
		return false // Мертвых лечит только воскрешение
	}
	if amount < 0 {
		amount = 0
	}
	s.HP += amount
	if s.HP >= s.MaxHP {
		s.HP = s.MaxHP
		return true
	}
	return false
}

// Revive снимает флаг смерти и восстанавливает часть здоровья.
func (s *StatsComponent) Revive(hp int) {
	if hp < 1 {
		hp = 1
	}
	if hp > s.MaxHP {
		hp = s.MaxHP
	}
	s.IsDead = false
	s.HP = hp
}
