package stats

import (
	"testing"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/config"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
)

func bal() *config.Balance { return config.DefaultBalance() }

func TestDerive_Pools(t *testing.T) {
	primary := model.PrimaryAttributes{Willpower: 10, Chakra: 5}
	equip := model.EquipmentBonuses{FlatHP: 20, FlatChakra: 10}

	d := Derive(primary, equip, nil, bal())

	// 50 + 10*12 + 20
	if d.MaxHP != 190 {
		t.Errorf("MaxHP = %d, want 190", d.MaxHP)
	}
	// 30 + 5*8 + 10
	if d.MaxChakra != 80 {
		t.Errorf("MaxChakra = %d, want 80", d.MaxChakra)
	}
}

func TestDerive_EffectiveAttributes(t *testing.T) {
	primary := model.PrimaryAttributes{Strength: 20}
	equip := model.EquipmentBonuses{Stats: map[model.Attribute]int32{model.AttrStrength: 10}}
	buffs := []*model.Buff{
		{Def: model.EffectDefinition{Type: model.EffectBuff, TargetStat: model.StatRef(model.AttrStrength), Value: 0.5}, Remaining: 2},
	}

	d := Derive(primary, equip, buffs, bal())

	// (20 + 10) * 1.5
	if d.Effective.Strength != 45 {
		t.Errorf("effective strength = %d, want 45", d.Effective.Strength)
	}
}

func TestDerive_DebuffNeverNegative(t *testing.T) {
	primary := model.PrimaryAttributes{Speed: 10}
	buffs := []*model.Buff{
		{Def: model.EffectDefinition{Type: model.EffectDebuff, TargetStat: model.StatRef(model.AttrSpeed), Value: 2.0}, Remaining: 1},
	}

	d := Derive(primary, model.EquipmentBonuses{}, buffs, bal())
	if d.Effective.Speed != 0 {
		t.Errorf("effective speed = %d, want 0", d.Effective.Speed)
	}
}

func TestDerive_PercentDefenseCapped(t *testing.T) {
	equip := model.EquipmentBonuses{
		PercentDefense: map[model.DamageType]float64{model.DamagePhysical: 0.5},
	}
	// Guard buffs stacked far past the cap.
	buffs := []*model.Buff{
		{Def: model.EffectDefinition{Type: model.EffectBuff, TargetStat: model.StatPhysicalGuard, Value: 0.4}, Remaining: 3},
		{Def: model.EffectDefinition{Type: model.EffectBuff, TargetStat: model.StatPhysicalGuard, Value: 0.4}, Remaining: 3},
	}

	d := Derive(model.PrimaryAttributes{}, equip, buffs, bal())
	if d.Physical.Percent != 0.75 {
		t.Errorf("percent defense = %.2f, want capped 0.75", d.Physical.Percent)
	}
}

func TestDerive_GuardDebuffFloorsAtZero(t *testing.T) {
	buffs := []*model.Buff{
		{Def: model.EffectDefinition{Type: model.EffectDebuff, TargetStat: model.StatMentalGuard, Value: 0.9}, Remaining: 1},
	}
	d := Derive(model.PrimaryAttributes{}, model.EquipmentBonuses{}, buffs, bal())
	if d.Mental.Percent != 0 {
		t.Errorf("percent defense = %.2f, want 0", d.Mental.Percent)
	}
}

func TestDerive_EvasionCeiling(t *testing.T) {
	d := Derive(model.PrimaryAttributes{Speed: 10000}, model.EquipmentBonuses{}, nil, bal())
	if d.Evasion > 0.85 {
		t.Errorf("evasion = %.3f, exceeds hard ceiling", d.Evasion)
	}
}

func TestDerive_EvasionSoftCap(t *testing.T) {
	b := bal()
	below := Derive(model.PrimaryAttributes{Speed: 200}, model.EquipmentBonuses{}, nil, b)
	at := Derive(model.PrimaryAttributes{Speed: 250}, model.EquipmentBonuses{}, nil, b)
	above := Derive(model.PrimaryAttributes{Speed: 300}, model.EquipmentBonuses{}, nil, b)

	if !(below.Evasion < at.Evasion && at.Evasion < above.Evasion) {
		t.Errorf("evasion not monotonic: %.3f, %.3f, %.3f", below.Evasion, at.Evasion, above.Evasion)
	}
	// Past the soft cap each point is worth less than before it.
	gainBelow := at.Evasion - below.Evasion
	gainAbove := above.Evasion - at.Evasion
	if gainAbove >= gainBelow {
		t.Errorf("no diminishing returns: gain below %.4f, above %.4f", gainBelow, gainAbove)
	}
}

func TestDerive_CritCeiling(t *testing.T) {
	d := Derive(model.PrimaryAttributes{Dexterity: 1000}, model.EquipmentBonuses{}, nil, bal())
	if d.CritChance != 0.80 {
		t.Errorf("crit chance = %.2f, want ceiling 0.80", d.CritChance)
	}
}

func TestDerive_RangedCritScalesWithAccuracy(t *testing.T) {
	low := Derive(model.PrimaryAttributes{Accuracy: 10}, model.EquipmentBonuses{}, nil, bal())
	high := Derive(model.PrimaryAttributes{Accuracy: 50}, model.EquipmentBonuses{}, nil, bal())
	if high.RangedCritMult <= low.RangedCritMult {
		t.Error("ranged crit multiplier should grow with accuracy")
	}
	if low.MeleeCritMult != high.MeleeCritMult {
		t.Error("melee crit multiplier should not depend on accuracy")
	}
}

func TestDerive_Monotonic(t *testing.T) {
	b := bal()
	for _, attr := range model.Attributes {
		var lowAttrs, highAttrs model.PrimaryAttributes
		lowAttrs.Set(attr, 10)
		highAttrs.Set(attr, 50)

		low := Derive(lowAttrs, model.EquipmentBonuses{}, nil, b)
		high := Derive(highAttrs, model.EquipmentBonuses{}, nil, b)

		checks := []struct {
			name      string
			low, high float64
		}{
			{"maxHP", float64(low.MaxHP), float64(high.MaxHP)},
			{"maxChakra", float64(low.MaxChakra), float64(high.MaxChakra)},
			{"evasion", low.Evasion, high.Evasion},
			{"crit", low.CritChance, high.CritChance},
			{"guts", low.GutsChance, high.GutsChance},
			{"statusResist", low.StatusResist, high.StatusResist},
			{"hpRegen", low.HPRegen, high.HPRegen},
			{"chakraRegen", low.ChakraRegen, high.ChakraRegen},
		}
		for _, c := range checks {
			if c.high < c.low {
				t.Errorf("%s decreased when raising %s: %.3f -> %.3f", c.name, attr, c.low, c.high)
			}
		}
	}
}
