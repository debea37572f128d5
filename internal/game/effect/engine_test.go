package effect

import (
	"errors"
	"testing"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/config"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/game/stats"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
)

func newCombatant(t *testing.T, hp, chakra int32) *model.Combatant {
	t.Helper()
	return model.NewCombatant("c1", "test", model.PrimaryAttributes{}, model.ElementNone, hp, chakra)
}

func newEngine() *Engine { return NewEngine(config.DefaultBalance()) }

func dotDef(value float64, duration int32) model.EffectDefinition {
	return model.EffectDefinition{Type: model.EffectDOT, Value: value, Duration: duration}
}

func TestApply_MalformedDefinitionFails(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 50)

	tests := []struct {
		name string
		def  model.EffectDefinition
	}{
		{"unknown type", model.EffectDefinition{Type: "petrify", Value: 1, Duration: 1}},
		{"buff without target stat", model.EffectDefinition{Type: model.EffectBuff, Value: 0.2, Duration: 2}},
		{"dot without value", model.EffectDefinition{Type: model.EffectDOT, Duration: 2}},
		{"duration below -1", dotDef(5, -2)},
		{"chance above 1", model.EffectDefinition{Type: model.EffectStun, Duration: 1, Chance: 1.5}},
		{"reflection above 1", model.EffectDefinition{Type: model.EffectReflection, Value: 1.2, Duration: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Apply(nil, c, tt.def, "src")
			if !errors.Is(err, model.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if len(c.Buffs) != 0 {
				t.Fatal("malformed definition must not attach a buff")
			}
		})
	}
}

func TestApply_SameSourceRefreshes(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 50)

	if err := e.Apply(nil, c, dotDef(5, 2), "poison_blade"); err != nil {
		t.Fatal(err)
	}
	c.Buffs[0].Remaining = 1

	if err := e.Apply(nil, c, dotDef(5, 3), "poison_blade"); err != nil {
		t.Fatal(err)
	}
	if len(c.Buffs) != 1 {
		t.Fatalf("expected refresh, got %d buffs", len(c.Buffs))
	}
	if c.Buffs[0].Remaining != 3 {
		t.Errorf("remaining = %d, want refreshed 3", c.Buffs[0].Remaining)
	}
}

func TestApply_DifferentSourcesStack(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 50)

	e.Apply(nil, c, dotDef(5, 2), "poison_blade")
	e.Apply(nil, c, dotDef(3, 2), "venom_cloud")

	if len(c.Buffs) != 2 {
		t.Fatalf("expected 2 stacked buffs, got %d", len(c.Buffs))
	}
}

func TestApply_InstantHeal(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 50)
	c.SetCurrentHP(40)

	err := e.Apply(nil, c, model.EffectDefinition{Type: model.EffectHeal, Value: 25}, "healing_palm")
	if err != nil {
		t.Fatal(err)
	}
	if c.CurrentHP() != 65 {
		t.Errorf("hp = %d, want 65", c.CurrentHP())
	}
	if len(c.Buffs) != 0 {
		t.Error("instant heal must not attach a buff")
	}
}

func TestApply_HealClampedAtMax(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 50)
	c.SetCurrentHP(95)

	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectHeal, Value: 50}, "healing_palm")
	if c.CurrentHP() != 100 {
		t.Errorf("hp = %d, want clamped 100", c.CurrentHP())
	}
}

func TestApply_HealHalvedWhileCursed(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 50)
	c.SetCurrentHP(40)
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectCurse, Value: 1, Duration: 3}, "hex")

	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectHeal, Value: 30}, "healing_palm")
	if c.CurrentHP() != 55 {
		t.Errorf("hp = %d, want 55 (heal halved)", c.CurrentHP())
	}
}

func TestApply_DrainMovesChakra(t *testing.T) {
	e := newEngine()
	caster := model.NewCombatant("caster", "caster", model.PrimaryAttributes{}, model.ElementNone, 100, 50)
	caster.SetCurrentChakra(10)
	victim := newCombatant(t, 100, 50)

	e.Apply(caster, victim, model.EffectDefinition{Type: model.EffectDrain, Value: 20}, "leech")
	if victim.CurrentChakra() != 30 {
		t.Errorf("victim chakra = %d, want 30", victim.CurrentChakra())
	}
	if caster.CurrentChakra() != 30 {
		t.Errorf("caster chakra = %d, want 30", caster.CurrentChakra())
	}
}

func TestTick_DOTDamageAndExpiry(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 0)
	e.Apply(nil, c, dotDef(7, 2), "poison")

	d := stats.Derived{}

	rep := e.TickTurnStart(c, d)
	if rep.DOTDamage != 7 {
		t.Errorf("tick 1 dot = %d, want 7", rep.DOTDamage)
	}
	if c.CurrentHP() != 93 {
		t.Errorf("hp = %d, want 93", c.CurrentHP())
	}

	rep = e.TickTurnStart(c, d)
	if rep.DOTDamage != 7 {
		t.Errorf("tick 2 dot = %d, want 7", rep.DOTDamage)
	}

	// Counter hit zero after the second tick; the third tick removes it
	// and deals no damage.
	rep = e.TickTurnStart(c, d)
	if rep.DOTDamage != 0 {
		t.Errorf("tick 3 dot = %d, want 0", rep.DOTDamage)
	}
	if len(rep.Expired) != 1 || rep.Expired[0] != model.EffectDOT {
		t.Errorf("expected dot expiry, got %v", rep.Expired)
	}
	if len(c.Buffs) != 0 {
		t.Error("expired buff still attached")
	}
}

func TestTick_PermanentBuffNeverExpires(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 0)
	e.Apply(nil, c, model.EffectDefinition{
		Type: model.EffectBuff, Value: 0.1, Duration: model.PermanentDuration,
		TargetStat: model.StatRef(model.AttrStrength),
	}, "bloodline")

	for i := 0; i < 10; i++ {
		e.TickTurnStart(c, stats.Derived{})
	}
	if len(c.Buffs) != 1 || c.Buffs[0].Remaining != model.PermanentDuration {
		t.Fatal("permanent buff should survive any number of ticks")
	}
}

func TestTick_RegenAndDerivedRegen(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 50)
	c.SetCurrentHP(50)
	c.SetCurrentChakra(10)
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectRegen, Value: 6, Duration: 3}, "sage_mode")

	rep := e.TickTurnStart(c, stats.Derived{HPRegen: 2.5, ChakraRegen: 3.9})
	if rep.Healed != 8 { // floor(6 + 2.5)
		t.Errorf("healed = %d, want 8", rep.Healed)
	}
	if rep.ChakraRestored != 3 { // floor(3.9)
		t.Errorf("chakra = %d, want 3", rep.ChakraRestored)
	}
}

func TestTick_CurseBlocksHealing(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 0)
	c.SetCurrentHP(50)
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectCurse, Value: 4, Duration: 2}, "hex")
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectRegen, Value: 10, Duration: 2}, "sage_mode")

	rep := e.TickTurnStart(c, stats.Derived{HPRegen: 5})
	if rep.Healed != 0 {
		t.Errorf("healed = %d, want 0 while cursed", rep.Healed)
	}
	if rep.DOTDamage != 4 {
		t.Errorf("curse damage = %d, want 4", rep.DOTDamage)
	}
}

func TestTick_DOTClampsAtZero(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 0)
	c.SetCurrentHP(3)
	e.Apply(nil, c, dotDef(50, 2), "poison")

	e.TickTurnStart(c, stats.Derived{})
	if c.CurrentHP() != 0 {
		t.Errorf("hp = %d, want clamped 0", c.CurrentHP())
	}
}

func TestAbsorbDamage_ShieldPipeline(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 0)
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectShield, Value: 30, Duration: 3}, "iron_skin")

	remaining, absorbed := e.AbsorbDamage(c, 20)
	if remaining != 0 || absorbed != 20 {
		t.Errorf("got remaining %.1f absorbed %.1f, want 0/20", remaining, absorbed)
	}
	if c.Buffs[0].ShieldHP != 10 {
		t.Errorf("shield pool = %.1f, want 10", c.Buffs[0].ShieldHP)
	}

	// Overkill depletes the shield; the spent buff is removed at once.
	remaining, absorbed = e.AbsorbDamage(c, 25)
	if remaining != 15 || absorbed != 10 {
		t.Errorf("got remaining %.1f absorbed %.1f, want 15/10", remaining, absorbed)
	}
	if len(c.Buffs) != 0 {
		t.Error("depleted shield should be removed immediately")
	}
}

func TestAbsorbDamage_OldestShieldFirst(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 0)
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectShield, Value: 10, Duration: 3}, "first")
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectShield, Value: 10, Duration: 3}, "second")

	e.AbsorbDamage(c, 12)
	if len(c.Buffs) != 1 || c.Buffs[0].Source != "second" {
		t.Fatal("oldest shield should deplete first")
	}
	if c.Buffs[0].ShieldHP != 8 {
		t.Errorf("second shield pool = %.1f, want 8", c.Buffs[0].ShieldHP)
	}
}

func TestQueries(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 0)

	if e.IsStunned(c) || e.IsSilenced(c) || e.Invulnerable(c) {
		t.Fatal("fresh combatant should have no statuses")
	}

	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectStun, Duration: 1}, "bash")
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectSilence, Duration: 2}, "seal")
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectInvulnerability, Duration: 1}, "ward")

	if !e.IsStunned(c) || !e.IsSilenced(c) || !e.Invulnerable(c) {
		t.Fatal("statuses should be visible while the buffs are attached")
	}
}

func TestReflectFraction_SumCapped(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 0)
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectReflection, Value: 0.7, Duration: 2}, "mirror_a")
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectReflection, Value: 0.6, Duration: 2}, "mirror_b")

	if got := e.ReflectFraction(c); got != 1.0 {
		t.Errorf("reflect fraction = %.2f, want capped 1.0", got)
	}
}

func TestConfusionChance_DefaultsFromBalance(t *testing.T) {
	e := newEngine()
	c := newCombatant(t, 100, 0)

	if e.ConfusionChance(c) != 0 {
		t.Fatal("unconfused combatant should have zero chance")
	}
	e.Apply(nil, c, model.EffectDefinition{Type: model.EffectConfusion, Value: 0.35, Duration: 2}, "genjutsu")
	if got := e.ConfusionChance(c); got != 0.35 {
		t.Errorf("confusion chance = %.2f, want 0.35", got)
	}

	// A confusion buff without an explicit value uses the balance default.
	c.Buffs[0].Def.Value = 0
	if got := e.ConfusionChance(c); got != 0.5 {
		t.Errorf("confusion chance = %.2f, want balance default 0.5", got)
	}
}
