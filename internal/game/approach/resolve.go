package approach

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/rng"
)

// Result reports a resolved approach attempt. The first-turn fields feed
// the combat resolver when combat proceeds.
type Result struct {
	Type        Type
	Success     bool
	Chance      float64
	ChakraSpent int32

	SkipCombat          bool
	GuaranteedFirstTurn bool
	FirstHitMultiplier  float64
	XPMultiplier        float64
	EnemyHPRemoved      int32
}

// Resolve attempts an approach before combat begins.
//
// The chakra cost is charged on the attempt, before the success roll, so
// a failed approach still pays. An approach whose requirements are unmet
// or whose cost exceeds current chakra is not attempted at all and
// returns ErrUnavailable.
//
// On failure no penalty applies; combat proceeds normally. On success the
// approach's success effects are applied: enemy HP reduction happens here,
// the first-turn bias is returned for the resolver to consume.
func Resolve(def Definition, attacker, defender *model.Combatant, terrain Terrain, src rng.Source) (Result, error) {
	if ok, reason := MeetsRequirements(def, attacker, defender, terrain); !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnavailable, reason)
	}
	if attacker.CurrentChakra() < def.ChakraCost {
		return Result{}, fmt.Errorf("%w: costs %d chakra, have %d",
			ErrUnavailable, def.ChakraCost, attacker.CurrentChakra())
	}

	attacker.SetCurrentChakra(attacker.CurrentChakra() - def.ChakraCost)

	res := Result{
		Type:         def.Type,
		Chance:       SuccessChance(def, attacker, terrain),
		ChakraSpent:  def.ChakraCost,
		XPMultiplier: 1.0,
	}
	res.Success = src.Float64() < res.Chance

	if res.Success {
		res.SkipCombat = def.Success.SkipCombat
		res.GuaranteedFirstTurn = def.Success.GuaranteedFirstTurn
		res.FirstHitMultiplier = def.Success.FirstHitMultiplier
		if def.Success.XPMultiplier > 0 {
			res.XPMultiplier = def.Success.XPMultiplier
		}
		if def.Success.EnemyHPReduction > 0 {
			removed := int32(math.Floor(float64(defender.MaxHP()) * def.Success.EnemyHPReduction))
			defender.SetCurrentHP(defender.CurrentHP() - removed)
			res.EnemyHPRemoved = removed
		}
	}

	slog.Debug("approach resolved",
		"type", def.Type,
		"attacker", attacker.ID,
		"defender", defender.ID,
		"chance", res.Chance,
		"success", res.Success,
		"chakra_spent", res.ChakraSpent)

	return res, nil
}
