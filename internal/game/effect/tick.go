package effect

import (
	"log/slog"
	"math"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/game/stats"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
)

// TickReport summarizes what one start-of-turn tick did to a combatant.
type TickReport struct {
	DOTDamage      int32
	Healed         int32
	ChakraRestored int32
	Expired        []model.EffectType
}

// TickTurnStart runs the owner's start-of-turn effect pass:
//
//  1. Buffs that ran out last turn (remaining duration 0) are filtered
//     into a fresh list, so no stale references survive.
//  2. DOT and curse damage totals are applied to HP (clamped at 0).
//  3. Regen buffs plus derived HP/chakra regen are applied (clamped at
//     max); curse blocks all HP healing this tick.
//  4. Every surviving timed buff's duration is decremented by one;
//     permanent buffs (duration -1) never decrement.
//
// A buff with duration N therefore affects N of the owner's turns: it is
// still visible to the stun/silence checks on the turn its counter hits
// zero and disappears at the next tick. Cooldown decrements and toggle
// upkeep are the resolver's job and happen after this call; that ordering
// is part of the turn contract.
func (e *Engine) TickTurnStart(c *model.Combatant, d stats.Derived) TickReport {
	var rep TickReport

	kept := make([]*model.Buff, 0, len(c.Buffs))
	for _, b := range c.Buffs {
		if b.Expired() {
			rep.Expired = append(rep.Expired, b.Def.Type)
			continue
		}
		kept = append(kept, b)
	}
	c.Buffs = kept

	dot := 0.0
	hot := 0.0
	cursed := e.CurseActive(c)
	for _, b := range c.Buffs {
		switch b.Def.Type {
		case model.EffectDOT, model.EffectCurse:
			dot += b.Def.Value
		case model.EffectRegen:
			hot += b.Def.Value
		}
	}

	if dot > 0 {
		rep.DOTDamage = int32(math.Floor(dot))
		c.SetCurrentHP(c.CurrentHP() - rep.DOTDamage)
	}

	if !cursed {
		heal := int32(math.Floor(hot + d.HPRegen))
		if heal > 0 && !c.IsDead() {
			before := c.CurrentHP()
			c.SetCurrentHP(before + heal)
			rep.Healed = c.CurrentHP() - before
		}
	}

	chakra := int32(math.Floor(d.ChakraRegen))
	if chakra > 0 && !c.IsDead() {
		before := c.CurrentChakra()
		c.SetCurrentChakra(before + chakra)
		rep.ChakraRestored = c.CurrentChakra() - before
	}

	for _, b := range c.Buffs {
		if b.Remaining != model.PermanentDuration && b.Remaining > 0 {
			b.Remaining--
		}
	}

	if rep.DOTDamage > 0 || rep.Healed > 0 || len(rep.Expired) > 0 {
		slog.Debug("turn-start tick",
			"combatant", c.ID,
			"dot", rep.DOTDamage,
			"healed", rep.Healed,
			"chakra", rep.ChakraRestored,
			"expired", len(rep.Expired))
	}

	return rep
}
