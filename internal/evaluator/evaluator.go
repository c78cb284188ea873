// Package evaluator defines the leaf-evaluation contract the mcts package
// calls into, and a couple of deterministic evaluators used to exercise and
// validate the search engine without a real learned model attached.
package evaluator

import "github.com/pkg/errors"

// Prediction is what an Evaluator returns for a single non-terminal state: a
// value estimate for the player to move, and prior probabilities over the
// game's dense action space (see game.Game.ActionSpaceSize).
type Prediction struct {
	// Value is the evaluator's estimate of the outcome for the state's
	// current player, in [-1, 1].
	Value float64

	// Priors holds one probability per action in the game's dense action
	// space; entries for illegal actions are ignored by the caller.
	Priors []float64
}

// Evaluator is implemented by anything that can score a non-terminal state S
// reached while expanding the search tree. It is never called on terminal
// states: the engine reads TerminalValue from the Game instead.
type Evaluator[S any] interface {
	Evaluate(s S) Prediction
}

// MaskAndRenormalize zeroes every entry of priors whose dense index is not in
// legalIndices and rescales the remainder to sum to 1. If every legal entry
// is zero, it falls back to a uniform distribution over legalIndices, since a
// policy that assigns no mass to any legal action is not a usable prior.
func MaskAndRenormalize(priors []float64, legalIndices []int) ([]float64, error) {
	if len(legalIndices) == 0 {
		return nil, errors.New("evaluator: cannot mask priors against an empty legal action set")
	}
	masked := make([]float64, len(priors))
	var sum float64
	for _, idx := range legalIndices {
		if idx < 0 || idx >= len(priors) {
			return nil, errors.Errorf("evaluator: legal action index %d out of range [0,%d)", idx, len(priors))
		}
		masked[idx] = priors[idx]
		sum += priors[idx]
	}
	if sum <= 0 {
		uniform := 1.0 / float64(len(legalIndices))
		for _, idx := range legalIndices {
			masked[idx] = uniform
		}
		return masked, nil
	}
	for _, idx := range legalIndices {
		masked[idx] /= sum
	}
	return masked, nil
}
