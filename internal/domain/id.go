package domain

import "strconv"

// EntityID - индекс записи в Roster. Плотный, переиспользуется через free-list.
type EntityID int32

// NoEntity обозначает отсутствие сущности (пустая клетка, нет цели).
const NoEntity EntityID = -1

// String для логов и токенов протокола.
func (id EntityID) String() string {
	return strconv.Itoa(int(id))
}

// ParseEntityID парсит токен клиента обратно в ID.
func ParseEntityID(s string) (EntityID, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return NoEntity, false
	}
	return EntityID(v), true
}
