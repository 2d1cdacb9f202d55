package domain

// Дистанции действий (в клетках)
const (
	MeleeReach = 1.5 // Соседняя клетка, включая диагональ
	CastRange  = 6.0
)

// Пороги автоматических переходов душ (доли от MaxHP)
const (
	SpiritSeparationNum = 1 // HP < MaxHP/3 -> дух отделяется
	SpiritSeparationDen = 3
	ManifestNum         = 1 // HP < MaxHP/2 -> Ка проявляется
	ManifestDen         = 2
)

// Веса моральных поступков (суд Маат)
const (
	MoralAttackWeak   = -1
	MoralAttackStrong = +1
	MoralHeal         = +2
	MoralKillHostile  = +2
	MoralKillPeaceful = -3
)
