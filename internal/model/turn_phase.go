package model

// TurnPhase is the sub-phase within a combatant's own turn.
type TurnPhase string

const (
	PhaseMain TurnPhase = "main"
	PhaseSide TurnPhase = "side"
)

// TurnPhaseState tracks a combatant's action budget inside one turn.
// Reset at the start of each of the owner's turns.
type TurnPhaseState struct {
	Phase           TurnPhase
	SideActionsUsed int32
	MaxSideActions  int32
}

// Reset returns the state to the start-of-turn configuration.
func (t *TurnPhaseState) Reset() {
	t.Phase = PhaseMain
	t.SideActionsUsed = 0
}

// SideBudgetLeft reports whether another side action may be taken.
func (t *TurnPhaseState) SideBudgetLeft() bool {
	return t.SideActionsUsed < t.MaxSideActions
}
