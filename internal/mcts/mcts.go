// Package mcts implements a PUCT-guided Monte Carlo tree search engine that
// is generic over any game.Game and evaluator.Evaluator pair: a
// transposition table keyed by state hash, one simulation at a time,
// single-threaded.
//
// Concurrency is the caller's concern: run independent Engine instances (or
// independent Simulate calls against independently-owned Engines) from
// separate goroutines, for example with golang.org/x/sync/errgroup, rather
// than sharing one Engine's tree across goroutines.
package mcts

import (
	"math"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/azlab/mctscore/internal/evaluator"
	"github.com/azlab/mctscore/internal/game"
	"github.com/azlab/mctscore/internal/generics"
)

// edge is one outgoing action from a node in the search tree, with its
// running visit statistics.
type edge[A any] struct {
	action A
	prior  float64
	visits int
	value  float64 // running mean, from the perspective of the node's CurrentPlayer
}

// node is the set of outgoing edges discovered for a given state hash, plus
// the player to move there. It is created once, the first time a state is
// reached, and is never mutated except through its edges' statistics.
type node[A any] struct {
	player int
	edges  []edge[A]
}

func (n *node[A]) sumVisits() int {
	sum := 0
	for i := range n.edges {
		sum += n.edges[i].visits
	}
	return sum
}

// Engine runs PUCT search over a single game tree. It is not safe for
// concurrent use: callers that want parallelism should run independent
// Engines, one per goroutine.
type Engine[S any, A any] struct {
	game      game.Game[S, A]
	evaluator evaluator.Evaluator[S]
	tree      map[game.Hash]*node[A]
}

// New returns an Engine driving g with leaf evaluations from e.
func New[S any, A any](g game.Game[S, A], e evaluator.Evaluator[S]) *Engine[S, A] {
	return &Engine[S, A]{
		game:      g,
		evaluator: e,
		tree:      make(map[game.Hash]*node[A]),
	}
}

// Reset discards all accumulated search statistics, so the next Simulate
// call starts from an empty tree.
func (eng *Engine[S, A]) Reset() {
	eng.tree = make(map[game.Hash]*node[A])
}

// TreeSize returns the number of distinct states expanded so far.
func (eng *Engine[S, A]) TreeSize() int {
	return len(eng.tree)
}

// VisitedHashes returns the hashes of every state expanded so far, in
// unspecified order -- state hashes have no natural ordering to sort by.
func (eng *Engine[S, A]) VisitedHashes() []game.Hash {
	return generics.KeysSlice(eng.tree)
}

type pathFrame[A any] struct {
	n       *node[A]
	edgeIdx int
}

// Simulate runs a single PUCT simulation from root: it descends the tree
// selecting the highest-UCB edge at each step, expands the first unvisited
// state it reaches (or reads the terminal value, if root's trajectory ends
// the game), and backs the resulting value up the visited path.
//
// It panics if root is itself a state for which LegalActions returns no
// actions and IsTerminal is false, since that is a contract violation the
// game implementation must not allow.
func (eng *Engine[S, A]) Simulate(root S) {
	s := root
	var path []pathFrame[A]

	for {
		if eng.game.IsTerminal(s) {
			leafPlayer := eng.game.CurrentPlayer(s)
			values := eng.game.TerminalValue(s)
			if leafPlayer < 0 || leafPlayer >= len(values) {
				panic(errors.Errorf("mcts: terminal value vector has %d entries, but current player is %d", len(values), leafPlayer))
			}
			eng.backup(path, leafPlayer, values[leafPlayer])
			return
		}

		h := eng.game.Hash(s)
		n, known := eng.tree[h]
		if !known {
			var value float64
			n, value = eng.expand(s)
			eng.tree[h] = n
			klog.V(3).Infof("mcts: expanded node player=%d edges=%d value=%.4f", n.player, len(n.edges), value)
			eng.backup(path, n.player, value)
			return
		}

		idx := eng.selectEdge(n)
		path = append(path, pathFrame[A]{n: n, edgeIdx: idx})
		s = eng.game.TakeAction(s, n.edges[idx].action)
	}
}

// expand builds a fresh node for s: it asks the evaluator for priors over
// the game's dense action space, masks them down to s's legal actions and
// renormalizes, and stores one edge per legal action.
func (eng *Engine[S, A]) expand(s S) (*node[A], float64) {
	actions := eng.game.LegalActions(s)
	if len(actions) == 0 {
		panic(errors.New("mcts: expand called on a non-terminal state with no legal actions"))
	}

	pred := eng.evaluator.Evaluate(s)
	legalIndices := make([]int, len(actions))
	for i, a := range actions {
		legalIndices[i] = eng.game.ActionIndex(a)
	}
	priors := must.M1(evaluator.MaskAndRenormalize(pred.Priors, legalIndices))

	edges := make([]edge[A], len(actions))
	for i, a := range actions {
		edges[i] = edge[A]{action: a, prior: priors[eng.game.ActionIndex(a)]}
	}
	return &node[A]{player: eng.game.CurrentPlayer(s), edges: edges}, pred.Value
}

// selectEdge picks the edge maximizing the PUCT score
// Q + P * sqrt(sumVisits) / (1 + visits), breaking ties in favor of the
// earliest action in canonical order.
func (eng *Engine[S, A]) selectEdge(n *node[A]) int {
	sumVisits := float64(n.sumVisits())
	sqrtSum := math.Sqrt(sumVisits)

	best := 0
	bestScore := math.Inf(-1)
	for i := range n.edges {
		e := &n.edges[i]
		score := e.value + e.prior*sqrtSum/(1+float64(e.visits))
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// backup propagates a leaf value of v, from leafPlayer's perspective, up the
// visited path. Each edge's running mean is updated from the perspective of
// the node it was selected from: the same sign as the leaf when that node's
// player matches leafPlayer, negated otherwise. This is exact for two-player
// zero-sum games and an approximation for games with more than two players,
// by design: see the design notes on multi-player backup.
func (eng *Engine[S, A]) backup(path []pathFrame[A], leafPlayer int, v float64) {
	for i := len(path) - 1; i >= 0; i-- {
		frame := path[i]
		e := &frame.n.edges[frame.edgeIdx]
		signedV := v
		if frame.n.player != leafPlayer {
			signedV = -v
		}
		e.visits++
		e.value += (signedV - e.value) / float64(e.visits)
	}
}

// ActionProb pairs an action with its share of the search policy.
type ActionProb[A any] struct {
	Action A
	Visits int
	Prob   float64
}

// GetDistribution returns the search policy at s, derived from the visit
// counts accumulated by prior Simulate calls that passed through s. s must
// already have been expanded (Simulate must have visited it at least once).
//
// With temperature 0 all mass goes to the most-visited action, ties broken
// by canonical order. Otherwise each action's share is proportional to
// visits^(1/temperature), normalized to sum to 1 -- or, if every edge still
// has zero visits (s was expanded but never itself traversed further),
// uniform over its actions.
func (eng *Engine[S, A]) GetDistribution(s S, temperature float64) ([]ActionProb[A], error) {
	h := eng.game.Hash(s)
	n, known := eng.tree[h]
	if !known {
		return nil, errors.New("mcts: GetDistribution called on a state never visited by Simulate")
	}

	result := make([]ActionProb[A], len(n.edges))
	for i, e := range n.edges {
		result[i] = ActionProb[A]{Action: e.action, Visits: e.visits}
	}

	if temperature == 0 {
		best := 0
		for i := 1; i < len(result); i++ {
			if result[i].Visits > result[best].Visits {
				best = i
			}
		}
		result[best].Prob = 1
		return result, nil
	}

	weights := make([]float64, len(result))
	var sum float64
	for i, av := range result {
		w := math.Pow(float64(av.Visits), 1/temperature)
		weights[i] = w
		sum += w
	}
	if sum == 0 {
		// All Nᵢ = 0: s was expanded but never traversed further. Fall back
		// to uniform, mirroring evaluator.MaskAndRenormalize's zero-mass case.
		uniform := 1 / float64(len(result))
		for i := range result {
			result[i].Prob = uniform
		}
		return result, nil
	}
	for i, w := range weights {
		result[i].Prob = w / sum
	}
	return result, nil
}

// BestAction returns the action with the most visits at s, breaking ties by
// canonical order, along with its edge's running value estimate.
func (eng *Engine[S, A]) BestAction(s S) (A, float64, error) {
	h := eng.game.Hash(s)
	n, known := eng.tree[h]
	if !known {
		var zero A
		return zero, 0, errors.New("mcts: BestAction called on a state never visited by Simulate")
	}
	best := 0
	for i := 1; i < len(n.edges); i++ {
		if n.edges[i].visits > n.edges[best].visits {
			best = i
		}
	}
	return n.edges[best].action, n.edges[best].value, nil
}
