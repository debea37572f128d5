package effect

import "github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"

// handler describes how one effect type is applied. Timed effects only
// need the table entry so Apply knows the type is known; their per-turn
// behavior lives in tick.go and the interception queries.
type handler struct {
	instant bool
	apply   func(e *Engine, source, target *model.Combatant, def model.EffectDefinition)
}

// handlers is the per-type lookup table. Adding an effect type means
// adding a tag in model and one entry here.
var handlers = map[model.EffectType]handler{
	model.EffectStun:            {},
	model.EffectDOT:             {},
	model.EffectBuff:            {},
	model.EffectDebuff:          {},
	model.EffectConfusion:       {},
	model.EffectSilence:         {},
	model.EffectShield:          {},
	model.EffectInvulnerability: {},
	model.EffectCurse:           {},
	model.EffectReflection:      {},
	model.EffectRegen:           {},

	model.EffectHeal:  {instant: true, apply: applyHeal},
	model.EffectDrain: {instant: true, apply: applyDrain},
}

// applyHeal restores HP to the target, halved while cursed.
func applyHeal(e *Engine, _, target *model.Combatant, def model.EffectDefinition) {
	amount := def.Value
	if e.CurseActive(target) {
		amount /= 2
	}
	target.SetCurrentHP(target.CurrentHP() + int32(amount))
}

// applyDrain moves chakra from the target to the source.
func applyDrain(_ *Engine, source, target *model.Combatant, def model.EffectDefinition) {
	amount := int32(def.Value)
	if amount > target.CurrentChakra() {
		amount = target.CurrentChakra()
	}
	target.SetCurrentChakra(target.CurrentChakra() - amount)
	if source != nil {
		source.SetCurrentChakra(source.CurrentChakra() + amount)
	}
}
