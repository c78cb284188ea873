package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azlab/mctscore/internal/evaluator"
	"github.com/azlab/mctscore/internal/game"
)

// armState is a minimal one-ply, one-player game used to check the exact
// arithmetic of PUCT selection and backup in isolation: action 0 always
// wins, action 1 always loses.
type armState int

const (
	armStart armState = iota
	armWon
	armLost
)

type armGame struct{}

func (armGame) InitialState() armState       { return armStart }
func (armGame) CurrentPlayer(armState) int   { return 0 }
func (armGame) NumPlayers() int              { return 1 }
func (armGame) ActionSpaceSize() int         { return 2 }
func (armGame) ActionIndex(a int) int        { return a }
func (armGame) TakeAction(s armState, a int) armState {
	if a == 0 {
		return armWon
	}
	return armLost
}
func (armGame) IsTerminal(s armState) bool { return s != armStart }
func (armGame) LegalActions(s armState) []int {
	if s != armStart {
		return nil
	}
	return []int{0, 1}
}
func (armGame) TerminalValue(s armState) []float64 {
	if s == armWon {
		return []float64{1}
	}
	return []float64{-1}
}
func (armGame) Hash(s armState) game.Hash {
	var h game.Hash
	h[0] = byte(s)
	return h
}

var _ game.Game[armState, int] = armGame{}

// TestArmGamePUCTExplorationSwitchesArms verifies the PUCT formula and
// backup rule against a hand-computed trace: with a uniform 0.5/0.5 prior,
// action 0 (which always wins) is exploited for the first 6 traversals
// before action 1's exploration bonus grows large enough to outweigh it.
func TestArmGamePUCTExplorationSwitchesArms(t *testing.T) {
	eng := New[armState, int](armGame{}, evaluator.NewUninformed[armState](2))

	const totalCalls = 8 // 1 root expansion + 7 traversals
	for i := 0; i < totalCalls; i++ {
		eng.Simulate(armStart)
	}

	dist, err := eng.GetDistribution(armStart, 1)
	require.NoError(t, err)
	require.Len(t, dist, 2)

	byAction := map[int]ActionProb[int]{}
	for _, ap := range dist {
		byAction[ap.Action] = ap
	}

	assert.Equal(t, 6, byAction[0].Visits)
	assert.InDelta(t, 1.0, byAction[0].Prob*7.0/6.0, 1e-9) // prob should be 6/7
	assert.Equal(t, 1, byAction[1].Visits)

	action, value, err := eng.BestAction(armStart)
	require.NoError(t, err)
	assert.Equal(t, 0, action)
	assert.InDelta(t, 1.0, value, 1e-12)
}

// TestArmGameRootExpansionDoesNotBackup verifies that the very first
// Simulate call, which only creates the root node, leaves no statistics
// behind: there is nothing above the root to back a value up into.
func TestArmGameRootExpansionDoesNotBackup(t *testing.T) {
	eng := New[armState, int](armGame{}, evaluator.NewUninformed[armState](2))
	eng.Simulate(armStart)

	dist, err := eng.GetDistribution(armStart, 1)
	require.NoError(t, err)
	for _, ap := range dist {
		assert.Equal(t, 0, ap.Visits)
	}
}

// TestArmGameGetDistributionTemperatureZero verifies that greedy
// distribution extraction puts all mass on the most-visited action.
func TestArmGameGetDistributionTemperatureZero(t *testing.T) {
	eng := New[armState, int](armGame{}, evaluator.NewUninformed[armState](2))
	for i := 0; i < 9; i++ {
		eng.Simulate(armStart)
	}

	dist, err := eng.GetDistribution(armStart, 0)
	require.NoError(t, err)

	var totalProb float64
	for _, ap := range dist {
		totalProb += ap.Prob
		if ap.Action == 0 {
			assert.Equal(t, 1.0, ap.Prob)
		} else {
			assert.Equal(t, 0.0, ap.Prob)
		}
	}
	assert.InDelta(t, 1.0, totalProb, 1e-12)
}

// TestGuessItOnePlayerDirectWinHasMaximalValue checks the reference GuessIt
// game end to end: claiming the target cell directly is the only action
// whose subtree resolves to a win after a single traversal, so once PUCT
// explores it, its edge's running value locks to exactly 1 forever -- an
// uninformed evaluator can never report anything higher for a sibling that
// has not yet resolved to a real terminal.
func TestGuessItOnePlayerDirectWinHasMaximalValue(t *testing.T) {
	g := game.NewGuessIt(2, 1) // 4 cells, target = 3
	eng := New[game.GuessItState, int](g, evaluator.NewUninformed[game.GuessItState](g.ActionSpaceSize()))

	root := g.InitialState()
	for i := 0; i < 40; i++ {
		eng.Simulate(root)
	}

	dist, err := eng.GetDistribution(root, 1)
	require.NoError(t, err)
	require.Len(t, dist, 4)

	var sawDirectWin bool
	for _, ap := range dist {
		if ap.Action == g.ActionSpaceSize()-1 && ap.Visits > 0 {
			sawDirectWin = true
		}
		assert.LessOrEqual(t, ap.Visits, 40)
	}
	assert.True(t, sawDirectWin, "PUCT should have explored the direct win within 40 simulations")

	for _, e := range eng.tree[g.Hash(root)].edges {
		if e.action == g.ActionSpaceSize()-1 {
			assert.Equal(t, 1.0, e.value, "the direct win's running value should stay exactly 1")
		}
	}

	_, value, err := eng.BestAction(root)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, value, 0.0, "the best-visited action's value can never be worse than an unresolved draw")
}

// TestGuessItTwoPlayerAlternatesAndFreezesWinner exercises GuessIt's turn
// order and terminal-player convention directly, without going through
// search: claiming the target ends the game with the claimer's turn frozen
// in state, so CurrentPlayer(terminal) reports the winner.
func TestGuessItTwoPlayerAlternatesAndFreezesWinner(t *testing.T) {
	g := game.NewGuessIt(2, 2) // 4 cells, target = 3
	s := g.InitialState()

	require.Equal(t, 0, g.CurrentPlayer(s))
	s = g.TakeAction(s, 0) // player 0 claims cell 0
	require.Equal(t, 1, g.CurrentPlayer(s))
	s = g.TakeAction(s, 1) // player 1 claims cell 1
	require.Equal(t, 0, g.CurrentPlayer(s))
	s = g.TakeAction(s, 2) // player 0 claims cell 2
	require.Equal(t, 1, g.CurrentPlayer(s))

	require.False(t, g.IsTerminal(s))
	s = g.TakeAction(s, 3) // player 1 claims the target and wins
	require.True(t, g.IsTerminal(s))
	assert.Equal(t, 1, g.CurrentPlayer(s))
	assert.Equal(t, []float64{-1, 1}, g.TerminalValue(s))
}

// TestLeapFrogLinearTerminatesOnTarget checks that a player's marker
// reaching the target ends the race in that player's favor, with the turn
// frozen on that player.
func TestLeapFrogLinearTerminatesOnTarget(t *testing.T) {
	g := game.NewLeapFrogLinear() // 3 players, target 5, single step of 1
	s := game.LeapFrogState{Turn: 0}
	s.Positions[0] = 4

	require.False(t, g.IsTerminal(s))
	s = g.TakeAction(s, 0)
	require.True(t, g.IsTerminal(s))
	assert.Equal(t, 0, g.CurrentPlayer(s))
	assert.Equal(t, []float64{1, -1, -1}, g.TerminalValue(s))
}

// TestLeapFrogBranchingLargerStepCanWinEarlier checks that a bigger step
// size can cross the target from further back, still ending the game.
func TestLeapFrogBranchingLargerStepCanWinEarlier(t *testing.T) {
	g := game.NewLeapFrogBranching() // 3 players, target 5, steps {1,2,3}
	s := game.LeapFrogState{Turn: 2}
	s.Positions[2] = 3

	s = g.TakeAction(s, 2) // step of 3: 3 -> 6, past the target
	require.True(t, g.IsTerminal(s))
	assert.Equal(t, 2, g.CurrentPlayer(s))
	assert.Equal(t, []float64{-1, -1, 1}, g.TerminalValue(s))
}
