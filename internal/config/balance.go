package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance holds every tunable combat constant. The engine takes a *Balance
// instead of reading package-level constants so alternate balance tables
// can be tested without code changes.
type Balance struct {
	// Pools
	BaseHP          int32 `yaml:"base_hp"`
	HPPerWillpower  int32 `yaml:"hp_per_willpower"`
	BaseChakra      int32 `yaml:"base_chakra"`
	ChakraPerChakra int32 `yaml:"chakra_per_chakra"`

	// Defense channels
	PercentDefenseCap      float64 `yaml:"percent_defense_cap"`
	DefenseFlatPerPoint    float64 `yaml:"defense_flat_per_point"`
	DefensePercentPerPoint float64 `yaml:"defense_percent_per_point"`

	// Evasion
	EvasionPerSpeed float64 `yaml:"evasion_per_speed"`
	EvasionSoftCap  float64 `yaml:"evasion_soft_cap"` // speed threshold
	EvasionCeiling  float64 `yaml:"evasion_ceiling"`

	// Crits
	BaseCrit              float64 `yaml:"base_crit"`
	CritPerDexterity      float64 `yaml:"crit_per_dexterity"`
	CritCeiling           float64 `yaml:"crit_ceiling"`
	MeleeCritMult         float64 `yaml:"melee_crit_mult"`
	RangedCritMult        float64 `yaml:"ranged_crit_mult"`
	RangedCritPerAccuracy float64 `yaml:"ranged_crit_per_accuracy"`

	// Resistances and sustain
	StatusResistPerCalmness float64 `yaml:"status_resist_per_calmness"`
	StatusResistCap         float64 `yaml:"status_resist_cap"`
	GutsPerWillpower        float64 `yaml:"guts_per_willpower"`
	GutsCap                 float64 `yaml:"guts_cap"`
	HPRegenPerPoint         float64 `yaml:"hp_regen_per_point"`     // per (willpower+intelligence)
	ChakraRegenPerPoint     float64 `yaml:"chakra_regen_per_point"` // per (intelligence+calmness)

	// Hit resolution
	BaseHitChance   float64 `yaml:"base_hit_chance"`
	HitPerStatPoint float64 `yaml:"hit_per_stat_point"`
	HitFloor        float64 `yaml:"hit_floor"`
	HitCeiling      float64 `yaml:"hit_ceiling"`

	// Elemental cycle
	SuperEffectiveMult       float64 `yaml:"super_effective_mult"`
	ResistedMult             float64 `yaml:"resisted_mult"`
	SuperEffectiveCritBonus  float64 `yaml:"super_effective_crit_bonus"`
	SuperEffectiveDefensePen float64 `yaml:"super_effective_defense_pen"`

	// Turn economy
	MaxSideActions      int32   `yaml:"max_side_actions"`
	ConfusionSelfChance float64 `yaml:"confusion_self_chance"`
}

// DefaultBalance returns the shipping balance table.
func DefaultBalance() *Balance {
	return &Balance{
		BaseHP:          50,
		HPPerWillpower:  12,
		BaseChakra:      30,
		ChakraPerChakra: 8,

		PercentDefenseCap:      0.75,
		DefenseFlatPerPoint:    0.5,
		DefensePercentPerPoint: 0.002,

		EvasionPerSpeed: 0.0025,
		EvasionSoftCap:  250,
		EvasionCeiling:  0.85,

		BaseCrit:              0.06,
		CritPerDexterity:      0.0045,
		CritCeiling:           0.80,
		MeleeCritMult:         1.6,
		RangedCritMult:        1.5,
		RangedCritPerAccuracy: 0.004,

		StatusResistPerCalmness: 0.004,
		StatusResistCap:         0.80,
		GutsPerWillpower:        0.005,
		GutsCap:                 0.50,
		HPRegenPerPoint:         0.15,
		ChakraRegenPerPoint:     0.12,

		BaseHitChance:   0.85,
		HitPerStatPoint: 0.015,
		HitFloor:        0.05,
		HitCeiling:      0.99,

		SuperEffectiveMult:       1.5,
		ResistedMult:             0.5,
		SuperEffectiveCritBonus:  0.20,
		SuperEffectiveDefensePen: 0.5,

		MaxSideActions:      2,
		ConfusionSelfChance: 0.5,
	}
}

// LoadBalance reads a YAML balance file over the defaults. Missing keys
// keep their default values.
func LoadBalance(path string) (*Balance, error) {
	bal := DefaultBalance()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading balance config: %w", err)
	}
	if err := yaml.Unmarshal(data, bal); err != nil {
		return nil, fmt.Errorf("parsing balance config: %w", err)
	}
	if err := bal.Validate(); err != nil {
		return nil, err
	}
	return bal, nil
}

// Validate rejects tables that would break engine invariants.
func (b *Balance) Validate() error {
	if b.PercentDefenseCap <= 0 || b.PercentDefenseCap > 1 {
		return fmt.Errorf("percent_defense_cap %.2f outside (0,1]", b.PercentDefenseCap)
	}
	if b.EvasionCeiling <= 0 || b.EvasionCeiling >= 1 {
		return fmt.Errorf("evasion_ceiling %.2f outside (0,1)", b.EvasionCeiling)
	}
	if b.CritCeiling <= 0 || b.CritCeiling >= 1 {
		return fmt.Errorf("crit_ceiling %.2f outside (0,1)", b.CritCeiling)
	}
	if b.HitFloor < 0 || b.HitCeiling > 1 || b.HitFloor >= b.HitCeiling {
		return fmt.Errorf("hit chance bounds [%.2f, %.2f] invalid", b.HitFloor, b.HitCeiling)
	}
	if b.SuperEffectiveMult < 1 {
		return fmt.Errorf("super_effective_mult %.2f below 1", b.SuperEffectiveMult)
	}
	if b.ResistedMult <= 0 || b.ResistedMult > 1 {
		return fmt.Errorf("resisted_mult %.2f outside (0,1]", b.ResistedMult)
	}
	if b.MaxSideActions < 0 {
		return fmt.Errorf("max_side_actions %d negative", b.MaxSideActions)
	}
	return nil
}
