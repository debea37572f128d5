// Package approach resolves the pre-combat stance: requirement gating,
// success probability, and the success effects that bias or skip the
// fight that follows.
package approach

import (
	"errors"
	"fmt"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
)

// Type names one of the five pre-combat approaches.
type Type string

const (
	FrontalAssault    Type = "frontal_assault"
	StealthAmbush     Type = "stealth_ambush"
	GenjutsuSetup     Type = "genjutsu_setup"
	EnvironmentalTrap Type = "environmental_trap"
	ShadowBypass      Type = "shadow_bypass"
)

// ErrUnavailable marks an approach that may not be attempted at all:
// requirements unmet or the chakra cost unaffordable.
var ErrUnavailable = errors.New("approach unavailable")

// Terrain is the static profile of the encounter location, supplied by
// the scene layer as data.
type Terrain struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	StealthModifier float64 `yaml:"stealth_modifier"` // added to stealth approach chance
	HasHazards      bool    `yaml:"has_hazards"`      // required by environmental traps
}

// SuccessEffects describes what a successful approach grants.
type SuccessEffects struct {
	GuaranteedFirstTurn bool    `yaml:"guaranteed_first_turn"`
	FirstHitMultiplier  float64 `yaml:"first_hit_multiplier"`
	EnemyHPReduction    float64 `yaml:"enemy_hp_reduction"` // fraction of max HP removed pre-combat
	SkipCombat          bool    `yaml:"skip_combat"`
	XPMultiplier        float64 `yaml:"xp_multiplier"`
}

// Definition is the static description of one approach variant.
type Definition struct {
	Type       Type            `yaml:"type"`
	ChakraCost int32           `yaml:"chakra_cost"`
	Stat       model.Attribute `yaml:"stat"` // empty means automatic success

	BaseChance     float64 `yaml:"base_chance"`
	ChancePerPoint float64 `yaml:"chance_per_point"`
	StealthScaled  bool    `yaml:"stealth_scaled"` // terrain stealth modifier applies

	MinStats        map[model.Attribute]int32 `yaml:"min_stats,omitempty"`
	RequiredSkill   string                    `yaml:"required_skill,omitempty"`
	RequiresHazards bool                      `yaml:"requires_hazards"`
	BlockedRanks    []model.EncounterRank     `yaml:"blocked_ranks,omitempty"`

	Success SuccessEffects `yaml:"success"`
}

// Defaults returns the shipping approach table.
func Defaults() map[Type]Definition {
	return map[Type]Definition{
		FrontalAssault: {
			Type: FrontalAssault,
			// Always available, no roll: combat simply begins.
			Success: SuccessEffects{XPMultiplier: 1.0},
		},
		StealthAmbush: {
			Type:           StealthAmbush,
			ChakraCost:     10,
			Stat:           model.AttrSpeed,
			BaseChance:     0.30,
			ChancePerPoint: 0.008,
			StealthScaled:  true,
			MinStats:       map[model.Attribute]int32{model.AttrDexterity: 15},
			Success: SuccessEffects{
				GuaranteedFirstTurn: true,
				FirstHitMultiplier:  1.5,
				XPMultiplier:        1.1,
			},
		},
		GenjutsuSetup: {
			Type:           GenjutsuSetup,
			ChakraCost:     20,
			Stat:           model.AttrIntelligence,
			BaseChance:     0.25,
			ChancePerPoint: 0.009,
			MinStats:       map[model.Attribute]int32{model.AttrIntelligence: 20},
			Success: SuccessEffects{
				GuaranteedFirstTurn: true,
				EnemyHPReduction:    0.10,
				XPMultiplier:        1.2,
			},
		},
		EnvironmentalTrap: {
			Type:            EnvironmentalTrap,
			ChakraCost:      15,
			Stat:            model.AttrDexterity,
			BaseChance:      0.35,
			ChancePerPoint:  0.007,
			RequiresHazards: true,
			Success: SuccessEffects{
				EnemyHPReduction: 0.20,
				XPMultiplier:     1.15,
			},
		},
		ShadowBypass: {
			Type:           ShadowBypass,
			ChakraCost:     25,
			Stat:           model.AttrSpeed,
			BaseChance:     0.20,
			ChancePerPoint: 0.006,
			StealthScaled:  true,
			MinStats:       map[model.Attribute]int32{model.AttrSpeed: 25},
			BlockedRanks:   []model.EncounterRank{model.RankElite, model.RankBoss},
			Success: SuccessEffects{
				SkipCombat:   true,
				XPMultiplier: 0.5,
			},
		},
	}
}

// MeetsRequirements checks stat, skill, terrain and rank gates for an
// approach. The reason string is empty when the requirements are met.
func MeetsRequirements(def Definition, attacker, defender *model.Combatant, terrain Terrain) (bool, string) {
	for _, rank := range def.BlockedRanks {
		if defender.Rank == rank {
			return false, fmt.Sprintf("%s cannot be used against %s encounters", def.Type, rank)
		}
	}
	for attr, min := range def.MinStats {
		val, err := attacker.Base.Get(attr)
		if err != nil || val < min {
			return false, fmt.Sprintf("requires %s %d", attr, min)
		}
	}
	if def.RequiredSkill != "" && !attacker.KnowsSkill(def.RequiredSkill) {
		return false, fmt.Sprintf("requires skill %s", def.RequiredSkill)
	}
	if def.RequiresHazards && !terrain.HasHazards {
		return false, "terrain has no usable hazards"
	}
	return true, ""
}

// SuccessChance computes the success probability for an approach attempt,
// clamped to [0.05, 0.95]. Approaches without a scaling stat always
// succeed.
func SuccessChance(def Definition, attacker *model.Combatant, terrain Terrain) float64 {
	if def.Stat == "" {
		return 1.0
	}
	val, _ := attacker.Base.Get(def.Stat)
	chance := def.BaseChance + float64(val)*def.ChancePerPoint
	if def.StealthScaled {
		chance += terrain.StealthModifier
	}
	if chance < 0.05 {
		chance = 0.05
	}
	if chance > 0.95 {
		chance = 0.95
	}
	return chance
}
