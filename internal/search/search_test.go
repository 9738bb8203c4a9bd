package search

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/aweeraman/AIND-Isolation/internal/game"
	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//	  max
//	 /    \
//	min    min
//	/ \    / \
//	3  5  2   9
func prunableTree() *node {
	return branch(
		branch(leaf(3), leaf(5)),
		branch(leaf(2), leaf(9)),
	)
}

func randomBoard(r *rand.Rand, width int, height int, plies int) *game.Board {
	b := game.NewBoard(width, height)
	for i := 0; i < plies; i++ {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			break
		}
		b = b.Forecast(moves[r.Intn(len(moves))])
	}
	return b
}

func TestMinimaxVisitsEveryLeaf(t *testing.T) {
	state := newTreeState(prunableTree())
	agent := NewMinimaxAgent(treeValue, WithSearchDepth{2})

	result := agent.Search(state, Unlimited)

	assert.Equal(t, Move{0, 0}, result.Move)
	assert.Equal(t, 3.0, result.Score)
	assert.Equal(t, 2, result.Depth)
	assert.Equal(t, []float64{3, 5, 2, 9}, *state.visited)
	assert.Equal(t, 7, result.Nodes)
}

func TestAlphaBetaPrunes(t *testing.T) {
	state := newTreeState(prunableTree())
	tree := &DebugTree{}
	agent := NewAlphaBetaAgent(treeValue, WithDebugTree{tree})

	result := agent.AlphaBeta(state, 2, Unlimited)

	assert.Equal(t, Move{0, 0}, result.Move)
	assert.Equal(t, 3.0, result.Score)
	assert.Equal(t, []float64{3, 5, 2}, *state.visited)
	assert.Equal(t, 1, tree.NumPruned())
	assert.Contains(t, tree.String(10), "x min pruned 1 [3 2]", tree.String(10))
}

func TestTiesKeepTheFirstMove(t *testing.T) {
	state := newTreeState(branch(leaf(1), leaf(1), leaf(1)))

	assert.Equal(t, Move{0, 0}, NewMinimaxAgent(treeValue).ChooseMove(state, Unlimited))
	assert.Equal(t, Move{0, 0}, NewAlphaBetaAgent(treeValue).ChooseMove(state, Unlimited))

	state = newTreeState(branch(leaf(0), leaf(2), leaf(2)))
	assert.Equal(t, Move{0, 1}, NewMinimaxAgent(treeValue).ChooseMove(state, Unlimited))
	assert.Equal(t, Move{0, 1}, NewAlphaBetaAgent(treeValue).ChooseMove(state, Unlimited))
}

func TestAllMovesLose(t *testing.T) {
	state := newTreeState(branch(leaf(NegInf), leaf(NegInf)))

	minimax := NewMinimaxAgent(treeValue).Search(state, Unlimited)
	assert.Equal(t, Move{0, 0}, minimax.Move)
	assert.Equal(t, NegInf, minimax.Score)

	alphaBeta := NewAlphaBetaAgent(treeValue).Search(state, Unlimited)
	assert.Equal(t, Move{0, 0}, alphaBeta.Move)
	assert.Equal(t, NegInf, alphaBeta.Score)
	assert.True(t, alphaBeta.Exhausted)
}

func TestNoLegalMoves(t *testing.T) {
	state := newTreeState(leaf(NegInf))

	minimax := NewMinimaxAgent(treeValue).Search(state, Unlimited)
	assert.Equal(t, NoMove, minimax.Move)
	assert.Equal(t, NegInf, minimax.Score)

	assert.Equal(t, NoMove, NewAlphaBetaAgent(treeValue).ChooseMove(state, Unlimited))
}

func TestDepthZeroEvaluatesTheRoot(t *testing.T) {
	root := prunableTree()
	root.value = 4
	state := newTreeState(root)

	result := NewMinimaxAgent(treeValue).Minimax(state, 0, Unlimited)

	assert.Equal(t, NoMove, result.Move)
	assert.Equal(t, 4.0, result.Score)
	assert.Equal(t, 1, result.Evaluations)
}

func TestInvalidOptions(t *testing.T) {
	assert.Panics(t, func() {
		NewMinimaxAgent(treeValue, WithSearchDepth{0})
	})
	assert.Panics(t, func() {
		NewAlphaBetaAgent(treeValue, WithTimeoutMargin{-time.Millisecond})
	})
	assert.Panics(t, func() {
		NewAlphaBetaAgent[treeState](nil)
	})
}

func TestMinimaxMatchesAlphaBeta(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		b := randomBoard(r, 5, 5, 2+r.Intn(8))
		if len(b.LegalMoves()) == 0 {
			continue
		}

		for depth := 1; depth <= 3; depth++ {
			t.Run(fmt.Sprintf("board %d depth %d", i, depth), func(t *testing.T) {
				minimax := NewMinimaxAgent(AggressiveScore[*game.Board]).Minimax(b, depth, Unlimited)
				alphaBeta := NewAlphaBetaAgent(AggressiveScore[*game.Board]).AlphaBeta(b, depth, Unlimited)

				assert.Equal(t, minimax.Score, alphaBeta.Score, b.String())
				assert.Equal(t, minimax.Move, alphaBeta.Move, b.String())
				assert.LessOrEqual(t, alphaBeta.Nodes, minimax.Nodes)
			})
		}
	}
}

func TestDeadlineCheckedAtEveryNode(t *testing.T) {
	b := randomBoard(rand.New(rand.NewSource(3)), 7, 7, 2)
	require.NotEmpty(t, b.LegalMoves())

	timeLeft, calls := countdown(1 << 30)
	result := NewMinimaxAgent(MobilityScore[*game.Board]).Minimax(b, 3, timeLeft)

	assert.False(t, result.OutOfTime)
	assert.Equal(t, result.Nodes, *calls)
}

func TestMinimaxOutOfTime(t *testing.T) {
	b := randomBoard(rand.New(rand.NewSource(3)), 7, 7, 2)
	require.NotEmpty(t, b.LegalMoves())

	timeLeft, _ := countdown(10)
	result := NewMinimaxAgent(MobilityScore[*game.Board]).Search(b, timeLeft)

	assert.True(t, result.OutOfTime)
	assert.Equal(t, NoMove, result.Move)
	assert.Equal(t, 10, result.Nodes)
}

func TestTimeoutMargin(t *testing.T) {
	b := game.NewDefaultBoard()
	agent := NewAlphaBetaAgent(MobilityScore[*game.Board], WithTimeoutMargin{time.Second})

	result := agent.Search(b, func() time.Duration { return 500 * time.Millisecond })

	assert.True(t, result.OutOfTime)
	assert.Equal(t, NoMove, result.Move)
	assert.Equal(t, 0, result.Nodes)
}

func TestMinimaxTimeoutMargin(t *testing.T) {
	b := game.NewDefaultBoard()
	agent := NewMinimaxAgent(MobilityScore[*game.Board], WithTimeoutMargin{time.Second})

	calls := 0
	result := agent.Search(b, func() time.Duration {
		calls++
		return 500 * time.Millisecond
	})

	assert.True(t, result.OutOfTime)
	assert.Equal(t, NoMove, result.Move)
	assert.Equal(t, 0, result.Nodes)
	assert.Equal(t, 1, calls)
}

func TestIterativeDeepeningKeepsLastCompletedDepth(t *testing.T) {
	b := randomBoard(rand.New(rand.NewSource(7)), 7, 7, 4)
	require.NotEmpty(t, b.LegalMoves())

	agent := NewAlphaBetaAgent(MobilityScore[*game.Board])
	shallow := agent.AlphaBeta(b, DefaultSearchDepth, Unlimited)
	require.False(t, shallow.Exhausted)

	timeLeft, _ := countdown(shallow.Nodes + 5)
	result := agent.Search(b, timeLeft)

	assert.True(t, result.OutOfTime)
	assert.Equal(t, DefaultSearchDepth, result.Depth)
	assert.Equal(t, shallow.Move, result.Move)
	assert.Equal(t, shallow.Score, result.Score)
	assert.Equal(t, shallow.Nodes+5, result.Nodes)
}

func TestIterativeDeepeningMaxDepth(t *testing.T) {
	b := randomBoard(rand.New(rand.NewSource(11)), 5, 5, 4)
	require.NotEmpty(t, b.LegalMoves())

	agent := NewAlphaBetaAgent(MobilityScore[*game.Board], WithSearchDepth{2}, WithMaxDepth{4})
	result := agent.Search(b, Unlimited)

	assert.False(t, result.OutOfTime)
	assert.LessOrEqual(t, result.Depth, 4)
	assert.GreaterOrEqual(t, result.Depth, 2)
	assert.Equal(t, agent.AlphaBeta(b, result.Depth, Unlimited).Move, result.Move)
}

func TestIterativeDeepeningStopsWhenExhausted(t *testing.T) {
	b := randomBoard(rand.New(rand.NewSource(5)), 5, 5, 14)
	if len(b.LegalMoves()) == 0 {
		t.Skip("random game already finished")
	}

	result := NewAlphaBetaAgent(MobilityScore[*game.Board]).Search(b, Unlimited)

	assert.True(t, result.Exhausted)
	assert.False(t, result.OutOfTime)
	assert.True(t, b.IsLegal(result.Move), result)
}

func TestSearchLogs(t *testing.T) {
	lines := []string{}
	logger := FuncLogger(func(s string) { lines = append(lines, s) })

	state := newTreeState(prunableTree())
	NewAlphaBetaAgent(treeValue, WithLogger{logger}).Search(state, Unlimited)

	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "alphabeta move (0, 0) score 3 depth 3")
}

func TestDebugLoggingOverridesLogger(t *testing.T) {
	options := buildOptions([]SearchOption{WithLogger{FuncLogger(func(string) {})}, WithDebugLogging{}})
	assert.Equal(t, &DefaultLogger, options.logger)
}
