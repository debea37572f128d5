package model

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks data-validation failures. Skills and effects that
// fail validation must never enter play; all load paths wrap this sentinel.
var ErrInvalidConfig = errors.New("invalid configuration")

// DamageType selects the defense channel a skill is mitigated against.
type DamageType string

const (
	DamagePhysical  DamageType = "physical"
	DamageElemental DamageType = "elemental"
	DamageMental    DamageType = "mental"
	DamageTrue      DamageType = "true" // bypasses all defense
)

// ValidDamageType reports whether t is a known damage type.
func ValidDamageType(t DamageType) bool {
	switch t {
	case DamagePhysical, DamageElemental, DamageMental, DamageTrue:
		return true
	}
	return false
}

// DamageProperty modifies how defense applies.
type DamageProperty string

const (
	PropertyNormal     DamageProperty = "normal"      // flat and percent defense apply
	PropertyPiercing   DamageProperty = "piercing"    // ignores flat defense
	PropertyArmorBreak DamageProperty = "armor_break" // ignores percent defense
)

// AttackMethod selects the hit-roll stat matchup.
type AttackMethod string

const (
	MethodMelee  AttackMethod = "melee"  // Speed vs Speed
	MethodRanged AttackMethod = "ranged" // Accuracy vs Speed
	MethodAuto   AttackMethod = "auto"   // always hits
)

// ActionType controls how a skill interacts with the turn state machine.
type ActionType string

const (
	ActionMain    ActionType = "main"    // resolves and ends the turn
	ActionSide    ActionType = "side"    // free action, capped per turn
	ActionToggle  ActionType = "toggle"  // persistent on/off with upkeep
	ActionPassive ActionType = "passive" // always active, never cast
)

// Requirements gate skill learning by stats and clan.
type Requirements struct {
	MinStats map[Attribute]int32 `yaml:"min_stats,omitempty"`
	Clan     string              `yaml:"clan,omitempty"`
}

// Skill is the static definition of a combat technique. Definitions are
// shared and read-only after load; per-combatant state (cooldown counter,
// toggle flag) lives in SkillState.
type Skill struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	Action   ActionType     `yaml:"action"`
	Type     DamageType     `yaml:"damage_type"`
	Property DamageProperty `yaml:"property"`
	Method   AttackMethod   `yaml:"method"`
	Element  Element        `yaml:"element"`

	ScalingStat      Attribute `yaml:"scaling_stat"`
	DamageMultiplier float64   `yaml:"damage_multiplier"`
	Hits             int32     `yaml:"hits"` // defaults to 1

	ChakraCost int32 `yaml:"chakra_cost"`
	HPCost     int32 `yaml:"hp_cost"`
	Cooldown   int32 `yaml:"cooldown"`    // turns
	UpkeepCost int32 `yaml:"upkeep_cost"` // toggle skills only

	// CritBonus is added to the attacker's crit chance for this skill.
	// Penetration is an extra fraction of percent defense ignored.
	CritBonus   float64 `yaml:"crit_bonus"`
	Penetration float64 `yaml:"penetration"`

	Effects      []EffectDefinition `yaml:"effects,omitempty"`
	Requirements *Requirements      `yaml:"requirements,omitempty"`
}

// Offensive reports whether the skill deals direct damage.
func (s *Skill) Offensive() bool {
	return s.DamageMultiplier > 0 && s.ScalingStat != ""
}

// Validate checks the definition against the configuration taxonomy.
// A skill failing validation must be rejected at load time.
func (s *Skill) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: skill without id", ErrInvalidConfig)
	}
	switch s.Action {
	case ActionMain, ActionSide, ActionToggle, ActionPassive:
	default:
		return fmt.Errorf("%w: skill %s: unknown action %q", ErrInvalidConfig, s.ID, s.Action)
	}
	if s.Action == ActionToggle && s.UpkeepCost < 0 {
		return fmt.Errorf("%w: skill %s: negative upkeep", ErrInvalidConfig, s.ID)
	}
	// Any damage field present means the skill intends to deal damage, so
	// the whole damage block must be coherent. Gating this on Offensive()
	// would let a non-positive multiplier slip through unvalidated.
	if s.ScalingStat != "" || s.Type != "" || s.DamageMultiplier != 0 {
		if !ValidDamageType(s.Type) {
			return fmt.Errorf("%w: skill %s: unknown damage type %q", ErrInvalidConfig, s.ID, s.Type)
		}
		if !ValidAttribute(s.ScalingStat) {
			return fmt.Errorf("%w: skill %s: unknown scaling stat %q", ErrInvalidConfig, s.ID, s.ScalingStat)
		}
		if s.DamageMultiplier <= 0 {
			return fmt.Errorf("%w: skill %s: damage multiplier %.2f must be positive", ErrInvalidConfig, s.ID, s.DamageMultiplier)
		}
		switch s.Property {
		case PropertyNormal, PropertyPiercing, PropertyArmorBreak, "":
		default:
			return fmt.Errorf("%w: skill %s: unknown property %q", ErrInvalidConfig, s.ID, s.Property)
		}
		switch s.Method {
		case MethodMelee, MethodRanged, MethodAuto:
		default:
			return fmt.Errorf("%w: skill %s: unknown attack method %q", ErrInvalidConfig, s.ID, s.Method)
		}
	}
	if !ValidElement(s.Element) && s.Element != "" {
		return fmt.Errorf("%w: skill %s: unknown element %q", ErrInvalidConfig, s.ID, s.Element)
	}
	if s.ChakraCost < 0 || s.HPCost < 0 || s.Cooldown < 0 {
		return fmt.Errorf("%w: skill %s: negative cost or cooldown", ErrInvalidConfig, s.ID)
	}
	if s.Hits < 0 {
		return fmt.Errorf("%w: skill %s: negative hit count", ErrInvalidConfig, s.ID)
	}
	if s.Requirements != nil {
		for attr := range s.Requirements.MinStats {
			if !ValidAttribute(attr) {
				return fmt.Errorf("%w: skill %s: requirement on unknown attribute %q", ErrInvalidConfig, s.ID, attr)
			}
		}
	}
	for i := range s.Effects {
		if err := ValidateEffect(&s.Effects[i]); err != nil {
			return fmt.Errorf("skill %s effect %d: %w", s.ID, i, err)
		}
	}
	return nil
}

// ValidateEffect checks an effect definition's required fields per type.
func ValidateEffect(def *EffectDefinition) error {
	switch def.Type {
	case EffectBuff, EffectDebuff:
		if !ValidStatRef(def.TargetStat) {
			return fmt.Errorf("%w: %s targets unknown stat %q", ErrInvalidConfig, def.Type, def.TargetStat)
		}
		if def.Value == 0 {
			return fmt.Errorf("%w: %s with zero value", ErrInvalidConfig, def.Type)
		}
	case EffectDOT, EffectCurse, EffectHeal, EffectDrain, EffectRegen, EffectShield:
		if def.Value <= 0 {
			return fmt.Errorf("%w: %s value %.2f must be positive", ErrInvalidConfig, def.Type, def.Value)
		}
	case EffectReflection, EffectConfusion:
		if def.Value <= 0 || def.Value > 1 {
			return fmt.Errorf("%w: %s fraction %.2f outside (0,1]", ErrInvalidConfig, def.Type, def.Value)
		}
	case EffectStun, EffectSilence, EffectInvulnerability:
		// no value required
	default:
		return fmt.Errorf("%w: unknown effect type %q", ErrInvalidConfig, def.Type)
	}
	if def.Duration < PermanentDuration {
		return fmt.Errorf("%w: %s duration %d below -1", ErrInvalidConfig, def.Type, def.Duration)
	}
	if def.Duration == 0 {
		switch def.Type {
		case EffectHeal, EffectDrain:
			// instant effects carry no duration
		default:
			return fmt.Errorf("%w: %s with zero duration", ErrInvalidConfig, def.Type)
		}
	}
	if def.Chance < 0 || def.Chance > 1 {
		return fmt.Errorf("%w: %s chance %.2f outside [0,1]", ErrInvalidConfig, def.Type, def.Chance)
	}
	return nil
}

// SkillState is a combatant's per-skill runtime state.
type SkillState struct {
	Skill        *Skill
	CooldownLeft int32
	ToggleActive bool
}

// Ready reports whether the skill is off cooldown.
func (s *SkillState) Ready() bool { return s.CooldownLeft == 0 }
