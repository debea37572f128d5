package effect

import (
	"log/slog"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
)

func (e *Engine) has(c *model.Combatant, t model.EffectType) bool {
	for _, b := range c.Buffs {
		if b.Def.Type == t {
			return true
		}
	}
	return false
}

// IsStunned reports whether the combatant may take no actions this turn.
func (e *Engine) IsStunned(c *model.Combatant) bool {
	return e.has(c, model.EffectStun)
}

// IsSilenced reports whether chakra-costing skills are blocked.
func (e *Engine) IsSilenced(c *model.Combatant) bool {
	return e.has(c, model.EffectSilence)
}

// Invulnerable reports whether all incoming damage is negated.
func (e *Engine) Invulnerable(c *model.Combatant) bool {
	return e.has(c, model.EffectInvulnerability)
}

// CurseActive reports whether healing on the combatant is suppressed.
func (e *Engine) CurseActive(c *model.Combatant) bool {
	return e.has(c, model.EffectCurse)
}

// ConfusionChance returns the probability that the combatant's action is
// redirected to itself, or 0 when not confused. A confusion effect with a
// zero value falls back to the configured default chance.
func (e *Engine) ConfusionChance(c *model.Combatant) float64 {
	for _, b := range c.Buffs {
		if b.Def.Type == model.EffectConfusion {
			if b.Def.Value > 0 {
				return b.Def.Value
			}
			return e.bal.ConfusionSelfChance
		}
	}
	return 0
}

// ReflectFraction returns the summed fraction of raw incoming damage
// redirected to the attacker, capped at 1.
func (e *Engine) ReflectFraction(c *model.Combatant) float64 {
	total := 0.0
	for _, b := range c.Buffs {
		if b.Def.Type == model.EffectReflection {
			total += b.Def.Value
		}
	}
	if total > 1 {
		total = 1
	}
	return total
}

// AbsorbDamage runs post-mitigation damage through the target's shield
// pools, oldest first. The remainder passes through to HP untouched by
// defenses. Fully depleted shields are removed immediately.
func (e *Engine) AbsorbDamage(c *model.Combatant, damage float64) (remaining, absorbed float64) {
	if damage <= 0 {
		return 0, 0
	}
	remaining = damage
	n := 0
	for _, b := range c.Buffs {
		if b.Def.Type == model.EffectShield && remaining > 0 {
			take := remaining
			if take > b.ShieldHP {
				take = b.ShieldHP
			}
			b.ShieldHP -= take
			remaining -= take
			absorbed += take
			if b.ShieldHP <= 0 {
				slog.Debug("shield depleted", "combatant", c.ID, "source", b.Source)
				continue // drop the spent shield
			}
		}
		c.Buffs[n] = b
		n++
	}
	c.Buffs = c.Buffs[:n]
	return remaining, absorbed
}
