package combat

import (
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/config"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/game/stats"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
)

// Mitigate applies defense to already-multiplied damage:
//
//	final = max(0, damage - flatDef) * (1 - percentDef)
//
// The damage property selects which defense parts apply: NORMAL takes
// both, PIERCING ignores the flat part, ARMOR_BREAK ignores the percent
// part, and TRUE damage bypasses the channel entirely. Super-effective
// hits ignore bal.SuperEffectiveDefensePen of the percent part; the
// skill's own penetration stacks on top. Percent defense arrives already
// clamped to bal.PercentDefenseCap by the stats package.
func Mitigate(damage float64, ch stats.DefenseChannel, dtype model.DamageType, prop model.DamageProperty, superEffective bool, penetration float64, bal *config.Balance) float64 {
	if damage <= 0 {
		return 0
	}
	if dtype == model.DamageTrue {
		return damage
	}

	flat := ch.Flat
	percent := ch.Percent

	switch prop {
	case model.PropertyPiercing:
		flat = 0
	case model.PropertyArmorBreak:
		percent = 0
	}

	if superEffective {
		percent *= 1 - bal.SuperEffectiveDefensePen
	}
	if penetration > 0 {
		percent *= 1 - penetration
	}
	if percent < 0 {
		percent = 0
	}

	out := damage - flat
	if out < 0 {
		out = 0
	}
	return out * (1 - percent)
}
