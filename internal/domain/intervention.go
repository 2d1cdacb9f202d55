package domain

// InterventionKind - конкретное благословение или проклятие.
type InterventionKind uint8

const (
	InterventionNone InterventionKind = iota

	// Благословения
	BlessingSolarMight    // Ра: +атака
	BlessingSwiftWings    // Хор, Бастет: +инициатива
	BlessingWardOfIsis    // Исида: +защита
	BlessingScalesOfThoth // Тот: +защита, мера
	BlessingGraveCalm     // Анубис, Осирис: +защита

	// Проклятия
	CurseOfChaos     // Сет: -атака
	CurseOfStillness // -инициатива
	CurseOfDust      // -защита
)

var interventionToString = map[InterventionKind]string{
	BlessingSolarMight:    "SOLAR_MIGHT",
	BlessingSwiftWings:    "SWIFT_WINGS",
	BlessingWardOfIsis:    "WARD_OF_ISIS",
	BlessingScalesOfThoth: "SCALES_OF_THOTH",
	BlessingGraveCalm:     "GRAVE_CALM",
	CurseOfChaos:          "CURSE_OF_CHAOS",
	CurseOfStillness:      "CURSE_OF_STILLNESS",
	CurseOfDust:           "CURSE_OF_DUST",
}

func (k InterventionKind) String() string {
	if s, ok := interventionToString[k]; ok {
		return s
	}
	return "NONE"
}

// IsCurse - проклятие или благословение.
func (k InterventionKind) IsCurse() bool {
	return k == CurseOfChaos || k == CurseOfStillness || k == CurseOfDust
}

// StatEffect возвращает, какой стат и насколько меняет вмешательство.
func (k InterventionKind) StatEffect() (StatName, int) {
	switch k {
	case BlessingSolarMight:
		return StatAttack, 3
	case BlessingSwiftWings:
		return StatInitiative, 4
	case BlessingWardOfIsis, BlessingScalesOfThoth, BlessingGraveCalm:
		return StatDefense, 3
	case CurseOfChaos:
		return StatAttack, -3
	case CurseOfStillness:
		return StatInitiative, -4
	case CurseOfDust:
		return StatDefense, -3
	}
	return StatAttack, 0
}

// DivineIntervention - активное вмешательство, ключ в мапе боя - бог.
// Повторное вмешательство того же бога обновляет Duration, а не стакается.
type DivineIntervention struct {
	God      GodName          `json:"god"`
	Kind     InterventionKind `json:"kind"`
	Duration int              `json:"duration"`
}

// BlessingPool возвращает пул благословений бога.
func BlessingPool(g GodName) []InterventionKind {
	switch g {
	case GodRa:
		return []InterventionKind{BlessingSolarMight, BlessingSwiftWings}
	case GodAnubis, GodOsiris:
		return []InterventionKind{BlessingGraveCalm, BlessingSolarMight}
	case GodIsis:
		return []InterventionKind{BlessingWardOfIsis}
	case GodHorus, GodBastet:
		return []InterventionKind{BlessingSwiftWings, BlessingSolarMight}
	case GodSet:
		return []InterventionKind{BlessingSolarMight}
	case GodThoth:
		return []InterventionKind{BlessingScalesOfThoth, BlessingWardOfIsis}
	}
	return nil
}

// CursePool возвращает пул проклятий бога.
func CursePool(g GodName) []InterventionKind {
	switch g {
	case GodSet:
		return []InterventionKind{CurseOfChaos, CurseOfStillness}
	case GodNone:
		return nil
	}
	return []InterventionKind{CurseOfDust, CurseOfStillness}
}
