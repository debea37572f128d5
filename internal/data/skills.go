// Package data loads the static definition files: skills, terrains and
// battle scenarios. All validation happens here, at load time, so
// malformed definitions never enter play.
package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
)

// SkillTable is the loaded, validated skill catalog.
type SkillTable struct {
	byID map[string]*model.Skill
}

// Get returns a skill definition by id, or nil.
func (t *SkillTable) Get(id string) *model.Skill { return t.byID[id] }

// Len returns the number of loaded skills.
func (t *SkillTable) Len() int { return len(t.byID) }

// All returns every loaded skill, in unspecified order.
func (t *SkillTable) All() []*model.Skill {
	out := make([]*model.Skill, 0, len(t.byID))
	for _, s := range t.byID {
		out = append(out, s)
	}
	return out
}

type skillFile struct {
	Skills []*model.Skill `yaml:"skills"`
}

// LoadSkills reads and validates a YAML skill file. Any invalid skill
// fails the whole load: partially valid catalogs are worse than none.
func LoadSkills(path string) (*SkillTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skill file: %w", err)
	}
	return ParseSkills(raw)
}

// ParseSkills builds a SkillTable from YAML bytes.
func ParseSkills(raw []byte) (*SkillTable, error) {
	var file skillFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing skill file: %w", err)
	}

	table := &SkillTable{byID: make(map[string]*model.Skill, len(file.Skills))}
	for _, s := range file.Skills {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := table.byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate skill id %q", model.ErrInvalidConfig, s.ID)
		}
		if s.Hits == 0 {
			s.Hits = 1
		}
		table.byID[s.ID] = s
	}
	return table, nil
}
