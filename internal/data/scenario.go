package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/config"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/game/approach"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/game/stats"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
)

// CombatantSpec describes one battle participant in a scenario file.
type CombatantSpec struct {
	ID         string                  `yaml:"id"`
	Name       string                  `yaml:"name"`
	Clan       string                  `yaml:"clan"`
	Rank       model.EncounterRank     `yaml:"rank"`
	Attributes model.PrimaryAttributes `yaml:"attributes"`
	Affinity   model.Element           `yaml:"affinity"`
	Equipment  model.EquipmentBonuses  `yaml:"equipment"`
	SkillIDs   []string                `yaml:"skills"`
}

// Scenario is a loadable two-sided battle setup for the simulator.
type Scenario struct {
	Player   CombatantSpec    `yaml:"player"`
	Enemy    CombatantSpec    `yaml:"enemy"`
	Terrain  approach.Terrain `yaml:"terrain"`
	Approach approach.Type    `yaml:"approach"`
}

// LoadScenario reads and validates a scenario file against a skill table.
func LoadScenario(path string, skills *SkillTable) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	for _, spec := range []*CombatantSpec{&sc.Player, &sc.Enemy} {
		if spec.ID == "" {
			return nil, fmt.Errorf("%w: combatant without id", model.ErrInvalidConfig)
		}
		for _, id := range spec.SkillIDs {
			if skills.Get(id) == nil {
				return nil, fmt.Errorf("%w: combatant %s references unknown skill %q",
					model.ErrInvalidConfig, spec.ID, id)
			}
		}
	}
	return &sc, nil
}

// Build constructs a live combatant from a spec. Max pools come from the
// derived stats of the bare loadout (no buffs yet).
func (s CombatantSpec) Build(skills *SkillTable, bal *config.Balance) (*model.Combatant, error) {
	derived := stats.Derive(s.Attributes, s.Equipment, nil, bal)

	affinity := s.Affinity
	if affinity == "" {
		affinity = model.ElementNone
	}

	c := model.NewCombatant(s.ID, s.Name, s.Attributes, affinity, derived.MaxHP, derived.MaxChakra)
	c.Clan = s.Clan
	c.Equip = s.Equipment
	if s.Rank != "" {
		c.Rank = s.Rank
	}

	for _, id := range s.SkillIDs {
		sk := skills.Get(id)
		if sk == nil {
			return nil, fmt.Errorf("%w: unknown skill %q", model.ErrInvalidConfig, id)
		}
		if err := c.LearnSkill(sk); err != nil {
			return nil, err
		}
	}
	return c, nil
}
