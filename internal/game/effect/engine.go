// Package effect owns the lifecycle of timed effects on a combatant:
// application with stacking rules, start-of-turn ticking, expiry, and
// damage interception (shield, invulnerability, reflection).
package effect

import (
	"fmt"
	"log/slog"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/config"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
)

// Engine applies and ticks effects. It holds no per-combatant state of its
// own; buff lists live on the combatants, which stay exclusively owned by
// the resolution flow.
type Engine struct {
	bal *config.Balance
}

// NewEngine creates an effect engine over a balance table.
func NewEngine(bal *config.Balance) *Engine {
	return &Engine{bal: bal}
}

// Apply attaches an effect definition to target. Instant effects (heal,
// drain) resolve immediately; timed effects become Buff instances.
//
// Stacking: a timed effect with the same type, target stat and source as
// an existing buff refreshes it (duration and pool take the larger value)
// instead of stacking a second instance. Different sources stack.
//
// A malformed definition fails the request with ErrInvalidConfig; it is
// never silently dropped.
func (e *Engine) Apply(source, target *model.Combatant, def model.EffectDefinition, from string) error {
	if err := model.ValidateEffect(&def); err != nil {
		return err
	}
	h, ok := handlers[def.Type]
	if !ok {
		return fmt.Errorf("%w: no handler for effect %q", model.ErrInvalidConfig, def.Type)
	}

	if h.instant {
		h.apply(e, source, target, def)
		slog.Debug("instant effect applied",
			"type", def.Type,
			"value", def.Value,
			"target", target.ID)
		return nil
	}

	for _, b := range target.Buffs {
		if b.Def.Type == def.Type && b.Def.TargetStat == def.TargetStat && b.Source == from {
			if def.Duration == model.PermanentDuration || (b.Remaining != model.PermanentDuration && def.Duration > b.Remaining) {
				b.Remaining = def.Duration
			}
			if def.Type == model.EffectShield && def.Value > b.ShieldHP {
				b.ShieldHP = def.Value
			}
			b.Def.Value = def.Value
			slog.Debug("effect refreshed",
				"type", def.Type,
				"source", from,
				"target", target.ID,
				"remaining", b.Remaining)
			return nil
		}
	}

	buff := &model.Buff{Def: def, Remaining: def.Duration, Source: from}
	if def.Type == model.EffectShield {
		buff.ShieldHP = def.Value
	}
	target.Buffs = append(target.Buffs, buff)
	slog.Debug("effect applied",
		"type", def.Type,
		"value", def.Value,
		"duration", def.Duration,
		"source", from,
		"target", target.ID)
	return nil
}

// Clear removes all buffs of the given type from the combatant.
func (e *Engine) Clear(c *model.Combatant, t model.EffectType) {
	n := 0
	for _, b := range c.Buffs {
		if b.Def.Type != t {
			c.Buffs[n] = b
			n++
		}
	}
	c.Buffs = c.Buffs[:n]
}
