package game

import (
	"crypto/sha256"
	"encoding/binary"
)

// LeapFrog is a reference race game: players take turns advancing their own
// marker along a track by one of a fixed set of step sizes; the first marker
// to reach or pass the target wins outright and everyone else loses. It
// generalizes the two race fixtures used to validate this engine's backup
// arithmetic: a "linear" variant with a single fixed step, and a "branching"
// variant with several step sizes to choose between.
type LeapFrog struct {
	numPlayers int
	target     int
	steps      []int
}

// NewLeapFrog returns a LeapFrog race for numPlayers players to the given
// target distance, where each move advances the mover's own marker by
// steps[action].
func NewLeapFrog(numPlayers, target int, steps []int) *LeapFrog {
	if numPlayers < 1 {
		panic("game: LeapFrog requires at least one player")
	}
	if len(steps) == 0 {
		panic("game: LeapFrog requires at least one step size")
	}
	stepsCopy := make([]int, len(steps))
	copy(stepsCopy, steps)
	return &LeapFrog{numPlayers: numPlayers, target: target, steps: stepsCopy}
}

// NewLeapFrogLinear is the single-action, 3-player race used to validate the
// engine's per-player backup sign rule step by step.
func NewLeapFrogLinear() *LeapFrog {
	return NewLeapFrog(3, 5, []int{1})
}

// NewLeapFrogBranching is the multi-action, 3-player race used to exercise
// PUCT action selection under a non-trivial branching factor.
func NewLeapFrogBranching() *LeapFrog {
	return NewLeapFrog(3, 5, []int{1, 2, 3})
}

// LeapFrogState holds each player's position on the track plus the player
// associated with the position. As with GuessItState, Turn freezes on the
// player whose move ended the game rather than advancing past it.
type LeapFrogState struct {
	Positions [8]int // only the first NumPlayers entries are meaningful
	Turn      int
}

var _ Game[LeapFrogState, int] = (*LeapFrog)(nil)

func (g *LeapFrog) InitialState() LeapFrogState {
	return LeapFrogState{Turn: 0}
}

func (g *LeapFrog) CurrentPlayer(s LeapFrogState) int { return s.Turn }

func (g *LeapFrog) NumPlayers() int { return g.numPlayers }

func (g *LeapFrog) ActionSpaceSize() int { return len(g.steps) }

func (g *LeapFrog) ActionIndex(a int) int { return a }

func (g *LeapFrog) LegalActions(s LeapFrogState) []int {
	actions := make([]int, len(g.steps))
	for i := range g.steps {
		actions[i] = i
	}
	return actions
}

func (g *LeapFrog) TakeAction(s LeapFrogState, a int) LeapFrogState {
	next := s
	next.Positions[s.Turn] = s.Positions[s.Turn] + g.steps[a]
	if next.Positions[s.Turn] < g.target {
		next.Turn = (s.Turn + 1) % g.numPlayers
	}
	return next
}

func (g *LeapFrog) IsTerminal(s LeapFrogState) bool {
	return s.Positions[s.Turn] >= g.target
}

func (g *LeapFrog) TerminalValue(s LeapFrogState) []float64 {
	values := make([]float64, g.numPlayers)
	for p := range values {
		values[p] = -1
	}
	values[s.Turn] = 1
	return values
}

func (g *LeapFrog) Hash(s LeapFrogState) Hash {
	var buf [8*4 + 8]byte
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(int32(s.Positions[i])))
	}
	binary.LittleEndian.PutUint64(buf[32:], uint64(s.Turn))
	return sha256.Sum256(buf[:])
}
