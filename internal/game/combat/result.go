package combat

import "github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"

// RejectReason explains why a skill use was not resolved. Rejections are
// ordinary results, not errors: no state is mutated and the engine keeps
// accepting requests.
type RejectReason string

const (
	ReasonNone               RejectReason = ""
	ReasonNotYourTurn        RejectReason = "not_your_turn"
	ReasonUnknownCombatant   RejectReason = "unknown_combatant"
	ReasonUnknownSkill       RejectReason = "unknown_skill"
	ReasonDead               RejectReason = "dead"
	ReasonStunned            RejectReason = "stunned"
	ReasonSilenced           RejectReason = "silenced"
	ReasonOnCooldown         RejectReason = "on_cooldown"
	ReasonInsufficientChakra RejectReason = "insufficient_chakra"
	ReasonInsufficientHP     RejectReason = "insufficient_hp"
	ReasonSideBudget         RejectReason = "side_budget_exhausted"
	ReasonPassiveSkill       RejectReason = "passive_skill"
)

// Rolls carries every random outcome of one skill use, for the caller's
// combat log.
type Rolls struct {
	HitChance  float64
	Hit        bool
	CritChance float64
	Crit       bool
	GutsChance float64
	Guts       bool
}

// UseResult is the outcome of a UseSkill request.
type UseResult struct {
	Accepted  bool
	Rejection RejectReason

	Rolls          Rolls
	DamageDealt    int32
	Absorbed       int32
	Reflected      int32
	SelfInflicted  bool // confusion redirected the damage
	EffectsApplied []model.EffectType
	ToggledOn      bool
	ToggledOff     bool

	TurnEnded      bool
	TargetDefeated bool
}

// reject builds a rejection result.
func reject(reason RejectReason) UseResult {
	return UseResult{Rejection: reason}
}

// TurnStartReport is the outcome of the once-per-turn start tick.
type TurnStartReport struct {
	DOTDamage        int32
	Healed           int32
	ChakraRestored   int32
	ExpiredEffects   []model.EffectType
	UpkeepPaid       int32
	TogglesForcedOff []string
	Stunned          bool
	TurnEnded        bool // stunned turns auto-resolve as a pass
}
