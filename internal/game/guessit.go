package game

import (
	"crypto/sha256"
	"encoding/binary"
)

// GuessIt is a reference game used to exercise the search engine: players take
// turns claiming cells of a gridSize x gridSize board; the board's last cell
// in canonical (row-major) order is a fixed target. Whoever claims it wins;
// claiming any other cell just removes it from the remaining choices and
// passes the turn to the next player. With one player the game is a solitary
// elimination puzzle that always ends in a win on the last move.
//
// It is a deliberately simple fixture for validating search behavior, not
// anything resembling a production game.
type GuessIt struct {
	gridSize   int
	numPlayers int
	numCells   int
	target     int
}

// NewGuessIt returns a GuessIt played on a gridSize x gridSize board by
// numPlayers players (1 or more).
func NewGuessIt(gridSize, numPlayers int) *GuessIt {
	if gridSize < 1 {
		panic("game: GuessIt grid size must be >= 1")
	}
	if numPlayers < 1 {
		panic("game: GuessIt requires at least one player")
	}
	numCells := gridSize * gridSize
	return &GuessIt{
		gridSize:   gridSize,
		numPlayers: numPlayers,
		numCells:   numCells,
		target:     numCells - 1,
	}
}

// GuessItState is a bitmask of claimed cells plus the player associated with
// the position. For a terminal state, Turn identifies the player whose move
// claimed the target, rather than whoever would move next -- this is what
// lets CurrentPlayer double as "the player the leaf value belongs to" for
// both ongoing and finished positions, and is the convention the engine's
// backup rule (see internal/mcts) is built around.
type GuessItState struct {
	Claimed uint64
	Turn    int
}

var _ Game[GuessItState, int] = (*GuessIt)(nil)

func (g *GuessIt) InitialState() GuessItState {
	return GuessItState{Claimed: 0, Turn: 0}
}

func (g *GuessIt) CurrentPlayer(s GuessItState) int { return s.Turn }

func (g *GuessIt) NumPlayers() int { return g.numPlayers }

func (g *GuessIt) ActionSpaceSize() int { return g.numCells }

func (g *GuessIt) ActionIndex(a int) int { return a }

func (g *GuessIt) LegalActions(s GuessItState) []int {
	actions := make([]int, 0, g.numCells)
	for cell := 0; cell < g.numCells; cell++ {
		if s.Claimed&(1<<uint(cell)) == 0 {
			actions = append(actions, cell)
		}
	}
	return actions
}

func (g *GuessIt) TakeAction(s GuessItState, a int) GuessItState {
	next := GuessItState{Claimed: s.Claimed | (1 << uint(a)), Turn: s.Turn}
	if a != g.target {
		next.Turn = (s.Turn + 1) % g.numPlayers
	}
	return next
}

func (g *GuessIt) IsTerminal(s GuessItState) bool {
	return s.Claimed&(1<<uint(g.target)) != 0
}

func (g *GuessIt) TerminalValue(s GuessItState) []float64 {
	values := make([]float64, g.numPlayers)
	for p := range values {
		values[p] = -1
	}
	values[s.Turn] = 1
	return values
}

func (g *GuessIt) Hash(s GuessItState) Hash {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], s.Claimed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(s.Turn))
	return sha256.Sum256(buf[:])
}
