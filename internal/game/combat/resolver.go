// Package combat drives the turn engine: it validates skill-use requests,
// rolls hit/crit/guts, applies the damage formula with elemental and
// defense interplay, hands effect definitions to the effect engine, and
// advances the turn-phase state machine.
//
// The engine is single-threaded and synchronous: each request fully
// resolves before the next is accepted, and resolution is all-or-nothing
// per skill use.
package combat

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/config"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/game/approach"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/game/effect"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/game/element"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/game/stats"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/rng"
)

// Resolver owns one combat instance between two combatants. It is the only
// writer of their HP, chakra and buff lists for the duration of the fight.
type Resolver struct {
	bal     *config.Balance
	rng     rng.Source
	effects *effect.Engine

	combatants map[string]*model.Combatant
	order      [2]string // turn rotation, index 0 acts first
	active     int       // index into order

	// openingMult is the pending first-hit multiplier from a successful
	// approach; consumed by the opener's first damaging skill.
	openingMult  float64
	openingActor string
}

// NewResolver starts a combat instance. first acts first; both combatants
// get their turn state initialized from the balance table.
func NewResolver(bal *config.Balance, src rng.Source, first, second *model.Combatant) *Resolver {
	for _, c := range []*model.Combatant{first, second} {
		c.Turn.MaxSideActions = bal.MaxSideActions
		c.Turn.Reset()
	}
	return &Resolver{
		bal:        bal,
		rng:        src,
		effects:    effect.NewEngine(bal),
		combatants: map[string]*model.Combatant{first.ID: first, second.ID: second},
		order:      [2]string{first.ID, second.ID},
	}
}

// ApplyOpening consumes a resolved approach: on a guaranteed first turn
// the opener keeps initiative regardless of construction order, and the
// first-hit multiplier is armed for the opener's first landed hit.
func (r *Resolver) ApplyOpening(openerID string, res approach.Result) {
	if !res.Success {
		return
	}
	if res.GuaranteedFirstTurn && r.order[r.active] != openerID {
		r.active = 1 - r.active
	}
	if res.FirstHitMultiplier > 0 {
		r.openingMult = res.FirstHitMultiplier
		r.openingActor = openerID
	}
}

// Effects exposes the effect engine for pre-combat setup.
func (r *Resolver) Effects() *effect.Engine { return r.effects }

// ActiveID returns the combatant whose turn it is.
func (r *Resolver) ActiveID() string { return r.order[r.active] }

// Combatant returns a participant by id, or nil.
func (r *Resolver) Combatant(id string) *model.Combatant { return r.combatants[id] }

// DeriveStats recomputes the current stat snapshot for a combatant.
// Never cached: buffs and equipment may change between calls.
func (r *Resolver) DeriveStats(id string) (stats.Derived, error) {
	c, ok := r.combatants[id]
	if !ok {
		return stats.Derived{}, fmt.Errorf("unknown combatant %q", id)
	}
	return stats.Derive(c.Base, c.Equip, c.Buffs, r.bal), nil
}

// TickTurnStart runs the fixed start-of-turn sequence for the active
// combatant, in contract order:
//
//  1. Effect ticks: DOT/HOT, regen, expiry (effect engine).
//  2. Toggle upkeep: each active toggle is charged its upkeep cost;
//     insufficient chakra forces the toggle off and charges nothing.
//  3. Cooldowns decrement by one, floored at zero.
//  4. Stun check: a stunned combatant's turn auto-resolves as a pass.
//
// The scene controller calls this exactly once per turn, before any
// UseSkill or PassTurn for that turn.
func (r *Resolver) TickTurnStart(combatantID string) (TurnStartReport, error) {
	c, ok := r.combatants[combatantID]
	if !ok {
		return TurnStartReport{}, fmt.Errorf("unknown combatant %q", combatantID)
	}
	if combatantID != r.ActiveID() {
		return TurnStartReport{}, fmt.Errorf("not %s's turn", combatantID)
	}

	c.Turn.Reset()

	var rep TurnStartReport

	derived := stats.Derive(c.Base, c.Equip, c.Buffs, r.bal)
	c.SyncMaxPools(derived.MaxHP, derived.MaxChakra)

	tick := r.effects.TickTurnStart(c, derived)
	rep.DOTDamage = tick.DOTDamage
	rep.Healed = tick.Healed
	rep.ChakraRestored = tick.ChakraRestored
	rep.ExpiredEffects = tick.Expired

	for _, st := range c.SkillsInOrder() {
		if !st.ToggleActive {
			continue
		}
		upkeep := st.Skill.UpkeepCost
		if c.CurrentChakra() < upkeep {
			st.ToggleActive = false
			r.clearToggleEffects(c, st.Skill)
			rep.TogglesForcedOff = append(rep.TogglesForcedOff, st.Skill.ID)
			slog.Debug("toggle forced off", "combatant", c.ID, "skill", st.Skill.ID)
			continue
		}
		c.SetCurrentChakra(c.CurrentChakra() - upkeep)
		rep.UpkeepPaid += upkeep
	}

	for _, st := range c.SkillsInOrder() {
		if st.CooldownLeft > 0 {
			st.CooldownLeft--
		}
	}

	if r.effects.IsStunned(c) {
		rep.Stunned = true
		rep.TurnEnded = true
		r.endTurn()
		slog.Debug("stunned, turn passed", "combatant", c.ID)
	}

	return rep, nil
}

// PassTurn ends the active combatant's turn without a main action.
func (r *Resolver) PassTurn(actorID string) (model.TurnPhaseState, error) {
	c, ok := r.combatants[actorID]
	if !ok {
		return model.TurnPhaseState{}, fmt.Errorf("unknown combatant %q", actorID)
	}
	if actorID != r.ActiveID() {
		return c.Turn, fmt.Errorf("not %s's turn", actorID)
	}
	r.endTurn()
	return c.Turn, nil
}

// UseSkill resolves one skill use by the active combatant. Rejections are
// returned in the result with no state mutated; an accepted use resolves
// completely before returning.
func (r *Resolver) UseSkill(actorID, skillID, targetID string) UseResult {
	actor, ok := r.combatants[actorID]
	if !ok {
		return reject(ReasonUnknownCombatant)
	}
	target, ok := r.combatants[targetID]
	if !ok {
		return reject(ReasonUnknownCombatant)
	}
	if actorID != r.ActiveID() {
		return reject(ReasonNotYourTurn)
	}
	if actor.IsDead() {
		return reject(ReasonDead)
	}

	st := actor.SkillState(skillID)
	if st == nil {
		return reject(ReasonUnknownSkill)
	}
	sk := st.Skill

	switch {
	case sk.Action == model.ActionPassive:
		return reject(ReasonPassiveSkill)
	case r.effects.IsStunned(actor):
		return reject(ReasonStunned)
	case sk.ChakraCost > 0 && r.effects.IsSilenced(actor):
		return reject(ReasonSilenced)
	case !st.Ready():
		return reject(ReasonOnCooldown)
	case sk.Action == model.ActionSide && !actor.Turn.SideBudgetLeft():
		return reject(ReasonSideBudget)
	case sk.Action != model.ActionToggle && actor.CurrentChakra() < sk.ChakraCost:
		return reject(ReasonInsufficientChakra)
	case sk.HPCost > 0 && actor.CurrentHP() <= sk.HPCost:
		return reject(ReasonInsufficientHP)
	}

	// Toggle flips resolve here: activation pays the chakra cost once,
	// upkeep replaces it on later turn-start ticks. Deactivation is free.
	if sk.Action == model.ActionToggle {
		return r.flipToggle(actor, st)
	}

	actor.SetCurrentChakra(actor.CurrentChakra() - sk.ChakraCost)
	if sk.HPCost > 0 {
		actor.SetCurrentHP(actor.CurrentHP() - sk.HPCost)
	}

	res := r.resolveSkill(actor, target, sk)

	if sk.Cooldown > 0 {
		st.CooldownLeft = sk.Cooldown
	}

	switch sk.Action {
	case model.ActionSide:
		actor.Turn.SideActionsUsed++
	case model.ActionMain:
		res.TurnEnded = true
		r.endTurn()
	}

	res.Accepted = true
	return res
}

// flipToggle turns a toggle skill on or off.
func (r *Resolver) flipToggle(actor *model.Combatant, st *model.SkillState) UseResult {
	sk := st.Skill
	if st.ToggleActive {
		st.ToggleActive = false
		r.clearToggleEffects(actor, sk)
		return UseResult{Accepted: true, ToggledOff: true}
	}
	if actor.CurrentChakra() < sk.ChakraCost {
		return reject(ReasonInsufficientChakra)
	}
	actor.SetCurrentChakra(actor.CurrentChakra() - sk.ChakraCost)
	st.ToggleActive = true

	res := UseResult{Accepted: true, ToggledOn: true}
	for _, def := range sk.Effects {
		if err := r.effects.Apply(actor, actor, def, sk.ID); err != nil {
			slog.Error("toggle effect rejected", "skill", sk.ID, "err", err)
			continue
		}
		res.EffectsApplied = append(res.EffectsApplied, def.Type)
	}
	return res
}

// clearToggleEffects removes buffs a toggle skill applied when it flips off.
func (r *Resolver) clearToggleEffects(c *model.Combatant, sk *model.Skill) {
	n := 0
	for _, b := range c.Buffs {
		if b.Source != sk.ID {
			c.Buffs[n] = b
			n++
		}
	}
	c.Buffs = c.Buffs[:n]
}

// endTurn hands initiative to the other combatant.
func (r *Resolver) endTurn() {
	r.active = 1 - r.active
}

// resolveSkill runs the damage and effect pipeline for an accepted use.
func (r *Resolver) resolveSkill(actor, target *model.Combatant, sk *model.Skill) UseResult {
	var res UseResult

	actorStats := stats.Derive(actor.Base, actor.Equip, actor.Buffs, r.bal)

	// Confusion: the action's damage may be redirected to the actor.
	victim := target
	if chance := r.effects.ConfusionChance(actor); chance > 0 && r.rng.Float64() < chance {
		victim = actor
		res.SelfInflicted = true
		slog.Debug("confusion self-hit", "actor", actor.ID, "skill", sk.ID)
	}

	victimStats := stats.Derive(victim.Base, victim.Equip, victim.Buffs, r.bal)

	if sk.Offensive() {
		r.resolveDamage(actor, victim, sk, actorStats, victimStats, &res)
	} else {
		res.Rolls.Hit = true
	}

	// Confusion redirects the damage, not the whole action: beneficial
	// effects still land on the actor; only the harmful ones miss the
	// intended target on a self-hit.
	if res.Rolls.Hit {
		res.EffectsApplied = r.applySkillEffects(actor, target, sk, victimStats, res.SelfInflicted)
	}

	res.TargetDefeated = victim.IsDead()
	return res
}

// resolveDamage performs the roll-and-mitigate pipeline against victim.
//
// Multi-hit skills roll hit and crit per sub-hit; interception, HP
// application and the guts check happen once on the accumulated total.
func (r *Resolver) resolveDamage(actor, victim *model.Combatant, sk *model.Skill, actorStats, victimStats stats.Derived, res *UseResult) {
	hitChance := r.hitChance(sk.Method, actorStats, victimStats)
	res.Rolls.HitChance = hitChance

	superEff := element.SuperEffective(sk.Element, victim.Affinity)
	effMult := element.Effectiveness(sk.Element, victim.Affinity, r.bal)

	critChance := actorStats.CritChance + sk.CritBonus
	if critChance > r.bal.CritCeiling {
		critChance = r.bal.CritCeiling
	}
	if superEff {
		// Super-effective hits push past the normal ceiling.
		critChance += r.bal.SuperEffectiveCritBonus
		if critChance > 1 {
			critChance = 1
		}
	}
	res.Rolls.CritChance = critChance

	scaling, _ := actorStats.Effective.Get(sk.ScalingStat)
	base := float64(scaling) * sk.DamageMultiplier

	// The opening bonus stays armed until a sub-hit actually lands, so a
	// whiffed ambush strike does not waste it.
	opening := r.openingMult > 0 && actor.ID == r.openingActor
	if opening {
		base *= r.openingMult
	}

	hits := sk.Hits
	if hits < 1 {
		hits = 1
	}

	raw := 0.0   // pre-mitigation total, drives reflection
	total := 0.0 // post-mitigation total
	anyHit := false
	channel := victimStats.Channel(sk.Type)

	for i := int32(0); i < hits; i++ {
		if sk.Method != model.MethodAuto && r.rng.Float64() >= hitChance {
			continue
		}
		anyHit = true
		res.Rolls.Hit = true

		dmg := base * effMult
		if r.rng.Float64() < critChance {
			res.Rolls.Crit = true
			if sk.Method == model.MethodRanged {
				dmg *= actorStats.RangedCritMult
			} else {
				dmg *= actorStats.MeleeCritMult
			}
		}
		raw += dmg
		total += Mitigate(dmg, channel, sk.Type, sk.Property, superEff, sk.Penetration, r.bal)
	}

	if !anyHit {
		slog.Debug("attack missed", "actor", actor.ID, "skill", sk.ID, "chance", hitChance)
		return
	}
	if opening {
		r.openingMult = 0
	}

	// Interception order: invulnerability, shields, then HP. Reflection
	// works from the raw pre-mitigation total and skips guts.
	if r.effects.Invulnerable(victim) {
		total = 0
	}

	remaining, absorbed := r.effects.AbsorbDamage(victim, total)
	res.Absorbed = int32(math.Floor(absorbed))

	if frac := r.effects.ReflectFraction(victim); frac > 0 && victim != actor {
		reflected := int32(math.Floor(raw * frac))
		if reflected > 0 {
			actor.SetCurrentHP(actor.CurrentHP() - reflected)
			res.Reflected = reflected
		}
	}

	final := int32(math.Floor(remaining))
	if final <= 0 {
		return
	}

	hpBefore := victim.CurrentHP()
	lethal := final >= hpBefore

	if lethal && hpBefore > 1 {
		res.Rolls.GutsChance = victimStats.GutsChance
		if r.rng.Float64() < victimStats.GutsChance {
			res.Rolls.Guts = true
			victim.SetCurrentHP(1)
			res.DamageDealt = hpBefore - 1
			slog.Debug("guts survival", "combatant", victim.ID)
			return
		}
	}

	victim.SetCurrentHP(hpBefore - final)
	res.DamageDealt = hpBefore - victim.CurrentHP()
}

// hitChance computes the effective chance for one sub-hit: base chance
// plus the stat matchup differential, minus the victim's evasion, clamped
// to the configured floor and ceiling. AUTO skills never roll.
func (r *Resolver) hitChance(method model.AttackMethod, actorStats, victimStats stats.Derived) float64 {
	if method == model.MethodAuto {
		return 1
	}
	attack := actorStats.Effective.Speed
	if method == model.MethodRanged {
		attack = actorStats.Effective.Accuracy
	}
	diff := float64(attack - victimStats.Effective.Speed)

	chance := r.bal.BaseHitChance + diff*r.bal.HitPerStatPoint - victimStats.Evasion
	if chance < r.bal.HitFloor {
		chance = r.bal.HitFloor
	}
	if chance > r.bal.HitCeiling {
		chance = r.bal.HitCeiling
	}
	return chance
}

// applySkillEffects rolls each attached effect definition and applies the
// ones that trigger. Harmful effect chances are reduced by the victim's
// status resistance; on a redirected action harmful effects are dropped
// without a roll.
func (r *Resolver) applySkillEffects(actor, target *model.Combatant, sk *model.Skill, targetStats stats.Derived, selfHit bool) []model.EffectType {
	var applied []model.EffectType
	for _, def := range sk.Effects {
		recipient := target
		chance := def.Chance
		if chance == 0 {
			chance = 1
		}
		if def.Type.Beneficial() {
			recipient = actor
		} else {
			if selfHit {
				continue
			}
			chance *= 1 - targetStats.StatusResist
		}
		if r.rng.Float64() >= chance {
			continue
		}
		if err := r.effects.Apply(actor, recipient, def, sk.ID); err != nil {
			slog.Error("effect rejected", "skill", sk.ID, "type", def.Type, "err", err)
			continue
		}
		applied = append(applied, def.Type)
	}
	return applied
}
