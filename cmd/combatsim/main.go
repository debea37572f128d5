// combatsim runs scripted battles through the combat core and reports
// aggregate outcomes. Each battle is fully deterministic for a given
// seed, so balance changes can be compared run to run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/config"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/data"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/game/approach"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/game/combat"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/model"
	"github.com/CesarAugustusGroB/SHINOBI-WAY-the-inifinite-tower-sub004/internal/rng"
)

const maxTurnsPerBattle = 200

func main() {
	var (
		skillsPath   = flag.String("skills", "data/skills.yaml", "skill definition file")
		scenarioPath = flag.String("scenario", "data/scenario.yaml", "battle scenario file")
		balancePath  = flag.String("balance", "", "balance override file (defaults when empty)")
		battles      = flag.Int("battles", 1000, "number of battles to simulate")
		seed         = flag.Uint64("seed", 1, "base seed; battle i uses seed+i")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := run(context.Background(), *skillsPath, *scenarioPath, *balancePath, *battles, *seed); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, skillsPath, scenarioPath, balancePath string, battles int, seed uint64) error {
	bal := config.DefaultBalance()
	if balancePath != "" {
		loaded, err := config.LoadBalance(balancePath)
		if err != nil {
			return fmt.Errorf("loading balance: %w", err)
		}
		bal = loaded
	}

	skills, err := data.LoadSkills(skillsPath)
	if err != nil {
		return fmt.Errorf("loading skills: %w", err)
	}
	scenario, err := data.LoadScenario(scenarioPath, skills)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	slog.Info("simulation starting",
		"battles", battles,
		"skills", skills.Len(),
		"player", scenario.Player.Name,
		"enemy", scenario.Enemy.Name)

	var playerWins, enemyWins, skipped, draws, totalTurns atomic.Int64

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < battles; i++ {
		g.Go(func() error {
			outcome, turns, err := runBattle(scenario, skills, bal, seed+uint64(i))
			if err != nil {
				return err
			}
			totalTurns.Add(int64(turns))
			switch outcome {
			case "player":
				playerWins.Add(1)
			case "enemy":
				enemyWins.Add(1)
			case "skipped":
				skipped.Add(1)
			default:
				draws.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("simulation finished",
		"player_wins", playerWins.Load(),
		"enemy_wins", enemyWins.Load(),
		"skipped", skipped.Load(),
		"draws", draws.Load(),
		"avg_turns", float64(totalTurns.Load())/float64(battles))
	return nil
}

// runBattle plays one battle to completion and reports the winner.
func runBattle(sc *data.Scenario, skills *data.SkillTable, bal *config.Balance, seed uint64) (string, int, error) {
	src := rng.Seeded(seed)

	player, err := sc.Player.Build(skills, bal)
	if err != nil {
		return "", 0, err
	}
	enemy, err := sc.Enemy.Build(skills, bal)
	if err != nil {
		return "", 0, err
	}

	r := combat.NewResolver(bal, src, player, enemy)

	if sc.Approach != "" {
		def, ok := approach.Defaults()[sc.Approach]
		if !ok {
			return "", 0, fmt.Errorf("unknown approach %q", sc.Approach)
		}
		res, err := approach.Resolve(def, player, enemy, sc.Terrain, src)
		if err != nil {
			slog.Debug("approach unavailable", "type", sc.Approach, "err", err)
		} else {
			if res.Success && res.SkipCombat {
				return "skipped", 0, nil
			}
			r.ApplyOpening(player.ID, res)
		}
	}

	for turn := 0; turn < maxTurnsPerBattle; turn++ {
		actorID := r.ActiveID()
		actor := r.Combatant(actorID)

		rep, err := r.TickTurnStart(actorID)
		if err != nil {
			return "", turn, err
		}
		if player.IsDead() {
			return "enemy", turn, nil
		}
		if enemy.IsDead() {
			return "player", turn, nil
		}
		if rep.Stunned {
			continue
		}

		targetID := enemy.ID
		if actorID == enemy.ID {
			targetID = player.ID
		}

		if !useAnySkill(r, actor, targetID) {
			if _, err := r.PassTurn(actorID); err != nil {
				return "", turn, err
			}
		}

		if player.IsDead() {
			return "enemy", turn, nil
		}
		if enemy.IsDead() {
			return "player", turn, nil
		}
	}
	return "draw", maxTurnsPerBattle, nil
}

// useAnySkill plays the first accepted main skill, trying side skills
// first. Skills are tried in learn order so a battle is fully determined
// by its seed. Returns false if nothing could be used and the turn must
// pass.
func useAnySkill(r *combat.Resolver, actor *model.Combatant, targetID string) bool {
	for _, st := range actor.SkillsInOrder() {
		if st.Skill.Action != model.ActionSide {
			continue
		}
		r.UseSkill(actor.ID, st.Skill.ID, targetID)
	}
	for _, st := range actor.SkillsInOrder() {
		if st.Skill.Action != model.ActionMain {
			continue
		}
		if res := r.UseSkill(actor.ID, st.Skill.ID, targetID); res.Accepted {
			return true
		}
	}
	return false
}
