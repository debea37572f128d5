// Package stats derives combat-usable statistics from primary attributes,
// equipment bonuses and active buffs. Every Derive call is an independent
// read-only snapshot; nothing here mutates the combatant.
package stats

import (
	"math"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/config"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
)

// DefenseChannel is one of the three mitigation channels.
type DefenseChannel struct {
	Flat    float64
	Percent float64 // clamped to [0, bal.PercentDefenseCap]
}

// Derived is the computed stat snapshot. Callers must not cache it across
// buff or equipment changes; recompute instead.
type Derived struct {
	Effective model.PrimaryAttributes

	MaxHP     int32
	MaxChakra int32

	Physical  DefenseChannel
	Elemental DefenseChannel
	Mental    DefenseChannel

	Evasion        float64
	CritChance     float64
	MeleeCritMult  float64
	RangedCritMult float64
	StatusResist   float64
	GutsChance     float64
	HPRegen        float64
	ChakraRegen    float64
}

// Channel returns the defense channel matching a damage type. TRUE damage
// has no channel and returns the zero value.
func (d *Derived) Channel(t model.DamageType) DefenseChannel {
	switch t {
	case model.DamagePhysical:
		return d.Physical
	case model.DamageElemental:
		return d.Elemental
	case model.DamageMental:
		return d.Mental
	}
	return DefenseChannel{}
}

// Defense channel scaling stats.
var channelStat = map[model.DamageType]model.Attribute{
	model.DamagePhysical:  model.AttrStrength,
	model.DamageElemental: model.AttrSpirit,
	model.DamageMental:    model.AttrCalmness,
}

var channelGuard = map[model.DamageType]model.StatRef{
	model.DamagePhysical:  model.StatPhysicalGuard,
	model.DamageElemental: model.StatElementalGuard,
	model.DamageMental:    model.StatMentalGuard,
}

// Derive computes the full stat snapshot.
//
// Order: effective attributes (base + flat equipment, then multiplicative
// buff/debuff percentages), then pools, defense channels, evasion, crits,
// resistances and regen. All outputs are non-negative and monotonic in
// their scaling stat.
func Derive(primary model.PrimaryAttributes, equip model.EquipmentBonuses, buffs []*model.Buff, bal *config.Balance) Derived {
	eff := effectiveAttributes(primary, equip, buffs)

	d := Derived{Effective: eff}

	d.MaxHP = bal.BaseHP + eff.Willpower*bal.HPPerWillpower + equip.FlatHP
	if d.MaxHP < 1 {
		d.MaxHP = 1
	}
	d.MaxChakra = bal.BaseChakra + eff.Chakra*bal.ChakraPerChakra + equip.FlatChakra
	if d.MaxChakra < 0 {
		d.MaxChakra = 0
	}

	d.Physical = deriveChannel(model.DamagePhysical, eff, equip, buffs, bal)
	d.Elemental = deriveChannel(model.DamageElemental, eff, equip, buffs, bal)
	d.Mental = deriveChannel(model.DamageMental, eff, equip, buffs, bal)

	d.Evasion = evasion(float64(eff.Speed), bal)
	d.CritChance = clamp(bal.BaseCrit+float64(eff.Dexterity)*bal.CritPerDexterity, 0, bal.CritCeiling)
	d.MeleeCritMult = bal.MeleeCritMult
	d.RangedCritMult = bal.RangedCritMult + float64(eff.Accuracy)*bal.RangedCritPerAccuracy
	d.StatusResist = clamp(float64(eff.Calmness)*bal.StatusResistPerCalmness, 0, bal.StatusResistCap)
	d.GutsChance = clamp(float64(eff.Willpower)*bal.GutsPerWillpower, 0, bal.GutsCap)
	d.HPRegen = nonNegative(float64(eff.Willpower+eff.Intelligence) * bal.HPRegenPerPoint)
	d.ChakraRegen = nonNegative(float64(eff.Intelligence+eff.Calmness) * bal.ChakraRegenPerPoint)

	return d
}

// effectiveAttributes applies flat equipment bonuses, then the summed
// buff/debuff percentage modifiers per stat. Debuff values count negative.
// Effective values never drop below zero.
func effectiveAttributes(primary model.PrimaryAttributes, equip model.EquipmentBonuses, buffs []*model.Buff) model.PrimaryAttributes {
	eff := primary
	for attr, bonus := range equip.Stats {
		if v, err := eff.Get(attr); err == nil {
			eff.Set(attr, v+bonus)
		}
	}
	for _, attr := range model.Attributes {
		pct := 0.0
		for _, b := range buffs {
			if model.StatRef(attr) != b.Def.TargetStat {
				continue
			}
			switch b.Def.Type {
			case model.EffectBuff:
				pct += b.Def.Value
			case model.EffectDebuff:
				pct -= b.Def.Value
			}
		}
		if pct == 0 {
			continue
		}
		v, _ := eff.Get(attr)
		scaled := int32(math.Floor(float64(v) * (1 + pct)))
		if scaled < 0 {
			scaled = 0
		}
		eff.Set(attr, scaled)
	}
	return eff
}

// deriveChannel builds one defense channel: equipment flat + scaling-stat
// contribution, equipment percent + guard buffs, percent capped.
func deriveChannel(t model.DamageType, eff model.PrimaryAttributes, equip model.EquipmentBonuses, buffs []*model.Buff, bal *config.Balance) DefenseChannel {
	stat, _ := eff.Get(channelStat[t])

	ch := DefenseChannel{
		Flat:    equip.FlatDefense[t] + float64(stat)*bal.DefenseFlatPerPoint,
		Percent: equip.PercentDefense[t] + float64(stat)*bal.DefensePercentPerPoint,
	}

	guard := channelGuard[t]
	for _, b := range buffs {
		if b.Def.TargetStat != guard {
			continue
		}
		switch b.Def.Type {
		case model.EffectBuff:
			ch.Percent += b.Def.Value
		case model.EffectDebuff:
			ch.Percent -= b.Def.Value
		}
	}

	ch.Flat = nonNegative(ch.Flat)
	ch.Percent = clamp(ch.Percent, 0, bal.PercentDefenseCap)
	return ch
}

// evasion scales linearly with speed up to the soft cap, then with the
// square root of the excess, and never exceeds the hard ceiling.
func evasion(speed float64, bal *config.Balance) float64 {
	if speed <= 0 {
		return 0
	}
	effective := speed
	if speed > bal.EvasionSoftCap {
		effective = bal.EvasionSoftCap + math.Sqrt(speed-bal.EvasionSoftCap)
	}
	return clamp(effective*bal.EvasionPerSpeed, 0, bal.EvasionCeiling)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
