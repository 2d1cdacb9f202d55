package domain

// --- КОМПОНЕНТЫ ---

// StatsComponent - Характеристики и Ресурсы
type StatsComponent struct {
	Attack     int `json:"attack"`
	Defense    int `json:"defense"`
	HP         int `json:"hp"`
	MaxHP      int `json:"maxHp"`
	SpiritPow  int `json:"spiritPow"`  // Сила Ба (дух)
	LifeForce  int `json:"lifeForce"`  // Сила Ка (жизненная сила)
	Favor      int `json:"favor"`      // Божественное благоволение (может быть < 0)
	Initiative int `json:"initiative"` // Базовая инициатива
	MoveRange  int `json:"moveRange"`
	Resistance int `json:"resistance"` // Сопротивление опасностям перехода

	CritChance  float64 `json:"critChance,omitempty"`
	DodgeChance float64 `json:"dodgeChance,omitempty"`
	BlockChance float64 `json:"blockChance,omitempty"`

	IsDead bool `json:"isDead"`
}

// SpiritComponent - отделенный дух (Ба).
// Если nil - дух не отделен. Присутствие компонента и есть состояние.
type SpiritComponent struct {
	InitiativeBonus int `json:"initiativeBonus"`
	DefenseBonus    int `json:"defenseBonus"`
	SinceRound      int `json:"sinceRound"`
}

// ManifestComponent - проявленная жизненная сила (Ка).
// Поглощает урон вместо здоровья, пока Strength > 0.
type ManifestComponent struct {
	Strength int `json:"strength"`
}

// Capabilities - что сущность умеет по описанию карты.
type Capabilities struct {
	SeparableSpirit bool `json:"separableSpirit"`
	ManifestableKa  bool `json:"manifestableKa"`
	Resurrectable   bool `json:"resurrectable"`
}
