// Package element resolves the elemental advantage cycle:
// Fire → Wind → Lightning → Earth → Water → Fire.
package element

import (
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/config"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
)

// beats maps each element to the one it is strong against.
var beats = map[model.Element]model.Element{
	model.ElementFire:      model.ElementWind,
	model.ElementWind:      model.ElementLightning,
	model.ElementLightning: model.ElementEarth,
	model.ElementEarth:     model.ElementWater,
	model.ElementWater:     model.ElementFire,
}

// Effectiveness returns the damage multiplier for attack element vs
// defender element. Super-effective matchups (attacker beats defender)
// return bal.SuperEffectiveMult, resisted matchups (defender beats
// attacker) return bal.ResistedMult, everything else 1.0. ElementNone
// never participates in the cycle. Pure function, no error cases.
// The matchup is asymmetric: swapping arguments does not invert it.
func Effectiveness(attack, defender model.Element, bal *config.Balance) float64 {
	if attack == model.ElementNone || defender == model.ElementNone {
		return 1.0
	}
	if beats[attack] == defender {
		return bal.SuperEffectiveMult
	}
	if beats[defender] == attack {
		return bal.ResistedMult
	}
	return 1.0
}

// SuperEffective reports whether attack beats defender in the cycle.
func SuperEffective(attack, defender model.Element) bool {
	if attack == model.ElementNone || defender == model.ElementNone {
		return false
	}
	return beats[attack] == defender
}
