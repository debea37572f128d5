package model

import "fmt"

// Attribute names a primary character attribute. Skills and buffs reference
// attributes by name, so unknown names must be caught at data-load time.
type Attribute string

const (
	AttrWillpower    Attribute = "willpower"
	AttrChakra       Attribute = "chakra"
	AttrStrength     Attribute = "strength"
	AttrSpirit       Attribute = "spirit"
	AttrIntelligence Attribute = "intelligence"
	AttrCalmness     Attribute = "calmness"
	AttrSpeed        Attribute = "speed"
	AttrAccuracy     Attribute = "accuracy"
	AttrDexterity    Attribute = "dexterity"
)

// Attributes lists all primary attributes in canonical order.
var Attributes = []Attribute{
	AttrWillpower, AttrChakra, AttrStrength, AttrSpirit, AttrIntelligence,
	AttrCalmness, AttrSpeed, AttrAccuracy, AttrDexterity,
}

// ValidAttribute reports whether name is a known primary attribute.
func ValidAttribute(name Attribute) bool {
	switch name {
	case AttrWillpower, AttrChakra, AttrStrength, AttrSpirit, AttrIntelligence,
		AttrCalmness, AttrSpeed, AttrAccuracy, AttrDexterity:
		return true
	}
	return false
}

// PrimaryAttributes holds a combatant's nine base stats. Base values only
// change on level-up or training; combat-time bonuses are applied at read
// time by the stats package, never written back here.
type PrimaryAttributes struct {
	Willpower    int32 `yaml:"willpower"`
	Chakra       int32 `yaml:"chakra"`
	Strength     int32 `yaml:"strength"`
	Spirit       int32 `yaml:"spirit"`
	Intelligence int32 `yaml:"intelligence"`
	Calmness     int32 `yaml:"calmness"`
	Speed        int32 `yaml:"speed"`
	Accuracy     int32 `yaml:"accuracy"`
	Dexterity    int32 `yaml:"dexterity"`
}

// Get returns the named attribute value.
func (p PrimaryAttributes) Get(name Attribute) (int32, error) {
	switch name {
	case AttrWillpower:
		return p.Willpower, nil
	case AttrChakra:
		return p.Chakra, nil
	case AttrStrength:
		return p.Strength, nil
	case AttrSpirit:
		return p.Spirit, nil
	case AttrIntelligence:
		return p.Intelligence, nil
	case AttrCalmness:
		return p.Calmness, nil
	case AttrSpeed:
		return p.Speed, nil
	case AttrAccuracy:
		return p.Accuracy, nil
	case AttrDexterity:
		return p.Dexterity, nil
	}
	return 0, fmt.Errorf("unknown attribute %q", name)
}

// Set writes the named attribute value. Used by level-up and by the stats
// package when building the effective snapshot.
func (p *PrimaryAttributes) Set(name Attribute, value int32) error {
	switch name {
	case AttrWillpower:
		p.Willpower = value
	case AttrChakra:
		p.Chakra = value
	case AttrStrength:
		p.Strength = value
	case AttrSpirit:
		p.Spirit = value
	case AttrIntelligence:
		p.Intelligence = value
	case AttrCalmness:
		p.Calmness = value
	case AttrSpeed:
		p.Speed = value
	case AttrAccuracy:
		p.Accuracy = value
	case AttrDexterity:
		p.Dexterity = value
	default:
		return fmt.Errorf("unknown attribute %q", name)
	}
	return nil
}
