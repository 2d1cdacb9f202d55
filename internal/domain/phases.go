package domain

// Phase - одна из 13 фаз раунда (часы ночного пути через Дуат).
type Phase uint8

const (
	PhasePreparation Phase = iota
	PhaseDivineInvocation
	PhaseSoulPreparation
	PhaseTargeting
	PhaseInitiativeRoll
	PhasePassage
	PhaseAction
	PhaseJudgment
	PhaseDamageResolution
	PhaseManifestation
	PhaseAfterlife
	PhaseBalance
	PhaseCleanup

	PhaseCount
)

var phaseToString = map[Phase]string{
	PhasePreparation:      "PREPARATION",
	PhaseDivineInvocation: "DIVINE_INVOCATION",
	PhaseSoulPreparation:  "SOUL_PREPARATION",
	PhaseTargeting:        "TARGETING",
	PhaseInitiativeRoll:   "INITIATIVE_ROLL",
	PhasePassage:          "PASSAGE",
	PhaseAction:           "ACTION",
	PhaseJudgment:         "JUDGMENT",
	PhaseDamageResolution: "DAMAGE_RESOLUTION",
	PhaseManifestation:    "MANIFESTATION",
	PhaseAfterlife:        "AFTERLIFE",
	PhaseBalance:          "COSMIC_BALANCE",
	PhaseCleanup:          "CLEANUP",
}

func (p Phase) String() string {
	if s, ok := phaseToString[p]; ok {
		return s
	}
	return "UNKNOWN"
}

// Next возвращает следующую фазу и true, если цикл замкнулся (новый раунд).
func (p Phase) Next() (Phase, bool) {
	if p >= PhaseCleanup {
		return PhasePreparation, true
	}
	return p + 1, false
}

// CombatState - состояние боя в целом.
type CombatState uint8

const (
	StateNotStarted CombatState = iota
	StateInProgress
	StateCompleted
	StateInterrupted
)

var stateToString = map[CombatState]string{
	StateNotStarted:  "NOT_STARTED",
	StateInProgress:  "IN_PROGRESS",
	StateCompleted:   "COMPLETED",
	StateInterrupted: "INTERRUPTED",
}

func (s CombatState) String() string {
	if v, ok := stateToString[s]; ok {
		return v
	}
	return "UNKNOWN"
}

// Terminal - терминальное ли состояние (бой окончен).
func (s CombatState) Terminal() bool {
	return s == StateCompleted || s == StateInterrupted
}
