// Command selfplay-demo runs one or more independent PUCT self-play matches
// against the reference games in internal/game, using a deterministic
// stand-in evaluator in place of a learned model. It exists to exercise
// internal/mcts end to end, the same way a trained scorer would be driven
// through it in production.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/azlab/mctscore/internal/config"
	"github.com/azlab/mctscore/internal/evaluator"
	"github.com/azlab/mctscore/internal/game"
	"github.com/azlab/mctscore/internal/mcts"
)

var (
	flagGame = flag.String("game", "guessit",
		"Reference game to self-play: guessit, leapfrog-linear or leapfrog-branching.")
	flagGridSize = flag.Int("grid_size", 3, "Grid size for -game=guessit.")
	flagPlayers  = flag.Int("players", 2, "Number of players for -game=guessit.")
	flagEvaluator = flag.String("evaluator", "uninformed",
		"Leaf evaluator to use: uninformed (value 0) or biased (value 0.5).")
	flagSearch = flag.String("search", "simulations=200,temperature=0",
		"Comma-separated search configuration, as simulations=N,temperature=T.")
	flagInstances = flag.Int("instances", 1,
		"Number of independent self-play matches to run concurrently.")
)

func main() {
	flag.Parse()
	if *flagInstances <= 0 {
		klog.Fatalf("invalid -instances=%d, must be positive", *flagInstances)
	}

	searchCfg := must.M1(config.ParseSearchConfig(*flagSearch))

	reports := make([]Report, *flagInstances)
	var g errgroup.Group
	for i := 0; i < *flagInstances; i++ {
		i := i
		g.Go(func() error {
			report, err := runMatch(i, searchCfg)
			if err != nil {
				return errors.Wrapf(err, "match %d", i)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		klog.Fatalf("self-play failed: %v", err)
	}

	fmt.Fprintln(os.Stdout, RenderSummary(reports))
}

// runMatch plays one reference game to completion with its own Engine,
// choosing each move via chooseAction according to the configured
// temperature. Each match owns its Engine exclusively: concurrency across
// matches comes from running many of these, never from sharing one.
func runMatch(id int, cfg config.SearchConfig) (Report, error) {
	switch *flagGame {
	case "guessit":
		return playGuessIt(id, cfg)
	case "leapfrog-linear":
		return playLeapFrog(id, cfg, game.NewLeapFrogLinear())
	case "leapfrog-branching":
		return playLeapFrog(id, cfg, game.NewLeapFrogBranching())
	default:
		return Report{}, errors.Errorf("unknown -game=%q", *flagGame)
	}
}

// chooseAction reads the search policy at s and either takes the
// most-visited action outright (temperature 0, the evaluation-time
// behavior) or samples from the temperature-weighted visit distribution
// (temperature > 0, the training-time behavior), mirroring the teacher's own
// "roll a random number against the cumulative policy" sampling.
func chooseAction[S any](eng *mcts.Engine[S, int], s S, cfg config.SearchConfig) (int, error) {
	if cfg.Temperature == 0 {
		action, _, err := eng.BestAction(s)
		return action, err
	}

	dist, err := eng.GetDistribution(s, cfg.Temperature)
	if err != nil {
		return 0, err
	}
	r := rand.Float64()
	var cumulative float64
	for _, ap := range dist {
		cumulative += ap.Prob
		if r <= cumulative {
			return ap.Action, nil
		}
	}
	return dist[len(dist)-1].Action, nil // rounding error fallback
}

func newEvaluator[S any](actionsCount int) (evaluator.Evaluator[S], error) {
	switch *flagEvaluator {
	case "uninformed":
		return evaluator.NewUninformed[S](actionsCount), nil
	case "biased":
		return evaluator.NewBiased[S](actionsCount), nil
	default:
		return nil, errors.Errorf("unknown -evaluator=%q", *flagEvaluator)
	}
}

func playGuessIt(id int, cfg config.SearchConfig) (Report, error) {
	g := game.NewGuessIt(*flagGridSize, *flagPlayers)
	ev, err := newEvaluator[game.GuessItState](g.ActionSpaceSize())
	if err != nil {
		return Report{}, err
	}
	eng := mcts.New[game.GuessItState, int](g, ev)

	s := g.InitialState()
	var plies int
	for !g.IsTerminal(s) {
		for i := 0; i < cfg.Simulations; i++ {
			eng.Simulate(s)
		}
		action, err := chooseAction(eng, s, cfg)
		if err != nil {
			return Report{}, err
		}
		klog.V(2).Infof("match %d: player %d claims cell %d", id, g.CurrentPlayer(s), action)
		s = g.TakeAction(s, action)
		plies++
	}
	return Report{ID: id, Game: *flagGame, Plies: plies, Winner: g.CurrentPlayer(s), Values: g.TerminalValue(s)}, nil
}

func playLeapFrog(id int, cfg config.SearchConfig, g *game.LeapFrog) (Report, error) {
	ev, err := newEvaluator[game.LeapFrogState](g.ActionSpaceSize())
	if err != nil {
		return Report{}, err
	}
	eng := mcts.New[game.LeapFrogState, int](g, ev)

	s := g.InitialState()
	var plies int
	for !g.IsTerminal(s) {
		for i := 0; i < cfg.Simulations; i++ {
			eng.Simulate(s)
		}
		action, err := chooseAction(eng, s, cfg)
		if err != nil {
			return Report{}, err
		}
		klog.V(2).Infof("match %d: player %d steps with action %d", id, g.CurrentPlayer(s), action)
		s = g.TakeAction(s, action)
		plies++
	}
	return Report{ID: id, Game: *flagGame, Plies: plies, Winner: g.CurrentPlayer(s), Values: g.TerminalValue(s)}, nil
}
