package model

import "fmt"

// EncounterRank classifies an enemy for approach gating.
type EncounterRank string

const (
	RankNormal EncounterRank = "normal"
	RankElite  EncounterRank = "elite"
	RankBoss   EncounterRank = "boss"
)

// EquipmentBonuses are the flat stat contributions of equipped items,
// provided by the inventory layer as plain data.
type EquipmentBonuses struct {
	Stats      map[Attribute]int32 `yaml:"stats,omitempty"`
	FlatHP     int32               `yaml:"flat_hp"`
	FlatChakra int32               `yaml:"flat_chakra"`

	// Per-channel defense from armor: flat reduction and percent (0..1).
	FlatDefense    map[DamageType]float64 `yaml:"flat_defense,omitempty"`
	PercentDefense map[DamageType]float64 `yaml:"percent_defense,omitempty"`
}

// Combatant is one participant in combat: base attributes, equipment,
// current pools, active buffs, known skills. HP and chakra are private
// with clamping setters so the invariants 0 <= hp <= maxHP and
// 0 <= chakra <= maxChakra hold no matter who deals the damage.
type Combatant struct {
	ID       string
	Name     string
	Clan     string
	Rank     EncounterRank
	Base     PrimaryAttributes
	Affinity Element
	Equip    EquipmentBonuses

	currentHP     int32
	currentChakra int32
	maxHP         int32
	maxChakra     int32

	Buffs  []*Buff
	Skills map[string]*SkillState

	// skillOrder preserves learn order so iteration over skills is stable;
	// ranging the map would make rng consumption depend on iteration order.
	skillOrder []string

	Turn TurnPhaseState
}

// NewCombatant creates a combatant with full pools. maxHP/maxChakra are the
// derived values at creation; SyncMaxPools refreshes them when stats change.
func NewCombatant(id, name string, base PrimaryAttributes, affinity Element, maxHP, maxChakra int32) *Combatant {
	if maxHP < 1 {
		maxHP = 1
	}
	if maxChakra < 0 {
		maxChakra = 0
	}
	return &Combatant{
		ID:            id,
		Name:          name,
		Rank:          RankNormal,
		Base:          base,
		Affinity:      affinity,
		currentHP:     maxHP,
		currentChakra: maxChakra,
		maxHP:         maxHP,
		maxChakra:     maxChakra,
		Skills:        make(map[string]*SkillState),
	}
}

// CurrentHP returns current hit points.
func (c *Combatant) CurrentHP() int32 { return c.currentHP }

// MaxHP returns the hit point ceiling last synced from derived stats.
func (c *Combatant) MaxHP() int32 { return c.maxHP }

// CurrentChakra returns current chakra.
func (c *Combatant) CurrentChakra() int32 { return c.currentChakra }

// MaxChakra returns the chakra ceiling last synced from derived stats.
func (c *Combatant) MaxChakra() int32 { return c.maxChakra }

// SetCurrentHP clamps hp into [0, maxHP] and stores it.
func (c *Combatant) SetCurrentHP(hp int32) {
	if hp < 0 {
		hp = 0
	}
	if hp > c.maxHP {
		hp = c.maxHP
	}
	c.currentHP = hp
}

// SetCurrentChakra clamps chakra into [0, maxChakra] and stores it.
func (c *Combatant) SetCurrentChakra(chakra int32) {
	if chakra < 0 {
		chakra = 0
	}
	if chakra > c.maxChakra {
		chakra = c.maxChakra
	}
	c.currentChakra = chakra
}

// SyncMaxPools updates the HP/chakra ceilings after a stat change,
// clamping current values down if needed.
func (c *Combatant) SyncMaxPools(maxHP, maxChakra int32) {
	if maxHP < 1 {
		maxHP = 1
	}
	if maxChakra < 0 {
		maxChakra = 0
	}
	c.maxHP = maxHP
	c.maxChakra = maxChakra
	if c.currentHP > maxHP {
		c.currentHP = maxHP
	}
	if c.currentChakra > maxChakra {
		c.currentChakra = maxChakra
	}
}

// IsDead reports whether the combatant has no hit points left.
func (c *Combatant) IsDead() bool { return c.currentHP <= 0 }

// LearnSkill adds a skill after checking its learning requirements.
func (c *Combatant) LearnSkill(s *Skill) error {
	if s.Requirements != nil {
		for attr, min := range s.Requirements.MinStats {
			val, err := c.Base.Get(attr)
			if err != nil {
				return err
			}
			if val < min {
				return fmt.Errorf("skill %s requires %s >= %d, have %d", s.ID, attr, min, val)
			}
		}
		if s.Requirements.Clan != "" && s.Requirements.Clan != c.Clan {
			return fmt.Errorf("skill %s requires clan %s", s.ID, s.Requirements.Clan)
		}
	}
	if _, known := c.Skills[s.ID]; !known {
		c.skillOrder = append(c.skillOrder, s.ID)
	}
	c.Skills[s.ID] = &SkillState{Skill: s}
	return nil
}

// SkillsInOrder returns the runtime skill states in learn order.
func (c *Combatant) SkillsInOrder() []*SkillState {
	out := make([]*SkillState, 0, len(c.skillOrder))
	for _, id := range c.skillOrder {
		out = append(out, c.Skills[id])
	}
	return out
}

// SkillState returns the runtime state for a known skill, or nil.
func (c *Combatant) SkillState(skillID string) *SkillState {
	return c.Skills[skillID]
}

// KnowsSkill reports whether the combatant has learned the skill.
func (c *Combatant) KnowsSkill(skillID string) bool {
	_, ok := c.Skills[skillID]
	return ok
}
