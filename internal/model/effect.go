package model

// EffectType tags an effect definition. Application and per-turn behavior
// live in the effect package's handler table, keyed by this tag.
type EffectType string

const (
	EffectStun            EffectType = "stun"
	EffectDOT             EffectType = "dot"
	EffectBuff            EffectType = "buff"
	EffectDebuff          EffectType = "debuff"
	EffectHeal            EffectType = "heal"
	EffectDrain           EffectType = "drain"
	EffectConfusion       EffectType = "confusion"
	EffectSilence         EffectType = "silence"
	EffectShield          EffectType = "shield"
	EffectInvulnerability EffectType = "invulnerability"
	EffectCurse           EffectType = "curse"
	EffectReflection      EffectType = "reflection"
	EffectRegen           EffectType = "regen"
)

// Beneficial reports whether the effect targets the caster rather than the
// enemy when carried by an offensive skill.
func (t EffectType) Beneficial() bool {
	switch t {
	case EffectBuff, EffectHeal, EffectShield, EffectInvulnerability,
		EffectReflection, EffectRegen:
		return true
	}
	return false
}

// PermanentDuration marks an effect that never expires on its own.
const PermanentDuration int32 = -1

// StatRef names a buff/debuff target: either a primary attribute or one of
// the three percent-defense channels.
type StatRef string

const (
	StatPhysicalGuard  StatRef = "physical_guard"
	StatElementalGuard StatRef = "elemental_guard"
	StatMentalGuard    StatRef = "mental_guard"
)

// ValidStatRef reports whether ref names an attribute or a guard channel.
func ValidStatRef(ref StatRef) bool {
	if ValidAttribute(Attribute(ref)) {
		return true
	}
	switch ref {
	case StatPhysicalGuard, StatElementalGuard, StatMentalGuard:
		return true
	}
	return false
}

// EffectDefinition is the data-driven description of an effect a skill can
// inflict. Instances attached to a combatant are Buff values.
type EffectDefinition struct {
	Type EffectType `yaml:"type"`

	// Value meaning depends on Type: damage/heal per turn for dot/hot
	// types, shield pool size for shield, fraction (0..1) for buff/debuff/
	// reflection/confusion chance overrides.
	Value float64 `yaml:"value"`

	// Duration in turns. PermanentDuration (-1) never expires.
	Duration int32 `yaml:"duration"`

	// Chance is the trigger probability in [0,1] rolled when the carrying
	// skill hits. Zero means always.
	Chance float64 `yaml:"chance"`

	// TargetStat is required for buff/debuff types.
	TargetStat StatRef `yaml:"target_stat,omitempty"`
}

// A Buff is a live EffectDefinition instance attached to one combatant.
// It is owned exclusively by that combatant's buff list and is destroyed
// when Remaining reaches zero or when explicitly cleared.
type Buff struct {
	Def       EffectDefinition
	Remaining int32  // turns left; PermanentDuration never decrements
	Source    string // skill or approach id that applied it

	// ShieldHP is the remaining absorption pool for shield buffs.
	ShieldHP float64
}

// Expired reports whether the buff should be removed.
func (b *Buff) Expired() bool {
	if b.Def.Type == EffectShield && b.ShieldHP <= 0 {
		return true
	}
	return b.Remaining == 0
}
