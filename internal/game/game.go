// Package game defines the contract that any turn-based, perfect-information,
// multi-player game must satisfy to be driven by the mcts package.
//
// The core never looks inside a state: it hashes it, asks the game for legal
// actions and successors, and passes it on to an evaluator. Concrete games
// live outside this package; guessit.go and leapfrog.go below are reference
// implementations used to exercise and test the search engine itself.
package game

// Hash is the canonical byte-identity of a state, used as the tree key.
// Two states the game considers equivalent must produce equal hashes.
type Hash [32]byte

// Game is implemented by a concrete turn-based game over state type S and
// action type A. Implementations need not be two-player or zero-sum.
//
// NumPlayers, ActionSpaceSize and ActionIndex describe the fixed shape the
// Evaluator's dense policy vector is laid out against; LegalActions may
// return any subset of that space, in a stable, canonical order.
type Game[S any, A any] interface {
	// InitialState returns a fresh starting position.
	InitialState() S

	// CurrentPlayer returns the player to move at s, in [0, NumPlayers).
	CurrentPlayer(s S) int

	// NumPlayers returns the number of players in the game, >= 1.
	NumPlayers() int

	// ActionSpaceSize returns the size of the fixed, dense action space that
	// Evaluator priors are indexed against.
	ActionSpaceSize() int

	// ActionIndex returns the dense index of a within the action space.
	ActionIndex(a A) int

	// LegalActions returns the actions available at s, in canonical order.
	// Non-empty for every non-terminal state.
	LegalActions(s S) []A

	// TakeAction returns the state reached by playing a at s. Undefined if a
	// is not legal at s.
	TakeAction(s S, a A) S

	// IsTerminal reports whether the game has ended at s.
	IsTerminal(s S) bool

	// TerminalValue returns, for a terminal s, one reward in [-1, 1] per
	// player. Only defined when IsTerminal(s) is true.
	TerminalValue(s S) []float64

	// Hash returns the canonical hash of s.
	Hash(s S) Hash
}
