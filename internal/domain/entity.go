package domain

// Alignment - космическая природа сущности (для стихийных множителей).
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignOrder
	AlignChaos
	AlignLife
	AlignDeath
)

// --- СУЩНОСТЬ ---

type Entity struct {
	// Идентификация
	ID   EntityID `json:"id"`
	Name string   `json:"name"`
	Side int      `json:"side"` // Сторона конфликта (0/1)

	// ControllerID - ID сессии/пользователя, который управляет этой сущностью.
	// Если пусто - управляется AI.
	ControllerID string `json:"controllerId,omitempty"`

	God       GodName   `json:"god"`
	Alignment Alignment `json:"alignment"`

	Pos Position `json:"pos"`

	// Компоненты (Если nil - значит свойство отсутствует)
	Stats    *StatsComponent    `json:"stats,omitempty"`
	Spirit   *SpiritComponent   `json:"spirit,omitempty"`
	Manifest *ManifestComponent `json:"manifest,omitempty"`

	Caps    Capabilities `json:"caps"`
	Effects []*Effect    `json:"effects,omitempty"`

	// Состояние раунда
	ActionsLeft int `json:"actionsLeft"`
	Balance     int `json:"balance"` // Личный счет Маат
}

// IsAlive - жива ли сущность (есть статы и флаг смерти не выставлен).
func (e *Entity) IsAlive() bool {
	return e.Stats != nil && !e.Stats.IsDead
}

// EffectiveDefense - защита с учетом бонуса отделенного духа и активных эффектов.
func (e *Entity) EffectiveDefense() int {
	if e.Stats == nil {
		return 0
	}
	def := e.Stats.Defense
	if e.Spirit != nil {
		def += e.Spirit.DefenseBonus
	}
	for _, ef := range e.Effects {
		if ef.Active && ef.Kind == EffectStatMod && ef.Stat == StatDefense {
			def += ef.Amount * ef.Stacks
		}
	}
	return def
}

// EffectiveAttack - атака с учетом активных эффектов.
func (e *Entity) EffectiveAttack() int {
	if e.Stats == nil {
		return 0
	}
	atk := e.Stats.Attack
	for _, ef := range e.Effects {
		if ef.Active && ef.Kind == EffectStatMod && ef.Stat == StatAttack {
			atk += ef.Amount * ef.Stacks
		}
	}
	if atk < 0 {
		atk = 0
	}
	return atk
}

// AddEffect прикрепляет эффект к сущности.
func (e *Entity) AddEffect(ef *Effect) {
	e.Effects = append(e.Effects, ef)
}

// PruneEffects убирает деактивированные и истекшие эффекты.
func (e *Entity) PruneEffects() {
	kept := e.Effects[:0]
	for _, ef := range e.Effects {
		if ef.Active && ef.Duration != 0 {
			kept = append(kept, ef)
		}
	}
	e.Effects = kept
}
