package search

import (
	"fmt"

	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
	"github.com/dustin/go-humanize"
)

/*
minimax and alpha-beta share one recursive routine

           a
       /        \     <-- searching player moves (maximize)
      b          c
   /   \       /   \   <-- opponent moves (minimize)
  d     e     f     g

search(a, 2) scores d..g with the evaluator, takes min(d, e) and min(f, g) on
the opponent's layer and the larger of those two on ours.

with bounds, by the time we look at c we already know what b guarantees
(alpha). if f is already no better for us than alpha, the opponent would
answer c with f (or something worse for us), so g is never looked at.
*/

// outcome is the result of searching one subtree. A subtree cut short by the
// deadline has outOfTime set and its score and move mean nothing.
type outcome struct {
	score     float64
	move      Optional[Move]
	outOfTime bool
}

// SearchResult is what a top-level search reports to its caller.
type SearchResult struct {
	Move  Move
	Score float64

	// Depth is the deepest fully searched depth.
	Depth       int
	Nodes       int
	Evaluations int
	OutOfTime   bool

	// Exhausted means no branch reached the depth limit, so searching deeper
	// would return the same move.
	Exhausted bool
}

func (r SearchResult) String() string {
	return fmt.Sprintf("move %v score %v depth %d nodes %s evaluations %s",
		r.Move, ScoreString(r.Score), r.Depth,
		humanize.Comma(int64(r.Nodes)), humanize.Comma(int64(r.Evaluations)))
}

type treeSearch[S State[S]] struct {
	score     Evaluator[S]
	player    Player
	deadline  deadline
	debugTree *DebugTree

	nodes       int
	evaluations int
	reachedEdge bool
}

func newTreeSearch[S State[S]](state S, score Evaluator[S], options searchOptions, timeLeft TimeLeft) *treeSearch[S] {
	return &treeSearch[S]{
		score:     score,
		player:    state.ActivePlayer(),
		deadline:  deadline{timeLeft, options.timeoutMargin},
		debugTree: options.debugTree,
	}
}

// search scores state for the searching player looking depth plies ahead.
// Without bounds it is plain minimax; with bounds, siblings are skipped as
// soon as alpha >= beta.
func (t *treeSearch[S]) search(state S, depth int, bounds Optional[Bounds], maximizing bool) outcome {
	if t.deadline.expired() {
		return outcome{outOfTime: true}
	}
	t.nodes++

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return outcome{score: state.Utility(t.player)}
	}

	if depth <= 0 {
		t.evaluations++
		t.reachedEdge = true
		return outcome{score: t.score(state, t.player)}
	}

	best := outcome{}
	for i, move := range moves {
		if t.debugTree != nil {
			t.debugTree.MovePush(move, maximizing, bounds)
		}

		child := t.search(state.Forecast(move), depth-1, bounds, !maximizing)

		if t.debugTree != nil {
			score := Some(child.score)
			if child.outOfTime {
				score = Empty[float64]()
			}
			t.debugTree.MovePop(move, maximizing, bounds, score)
		}

		if child.outOfTime {
			return child
		}

		if best.move.IsEmpty() || improves(child.score, best.score, maximizing) {
			best = outcome{score: child.score, move: Some(move)}
		}

		if bounds.HasValue() {
			bounds = Some(bounds.Value().tighten(child.score, maximizing))
			if bounds.Value().Pruned() {
				if skipped := len(moves) - i - 1; skipped > 0 && t.debugTree != nil {
					t.debugTree.Prune(maximizing, bounds.Value(), skipped)
				}
				break
			}
		}
	}

	return best
}

func (t *treeSearch[S]) result(o outcome, depth int) SearchResult {
	if o.outOfTime {
		return SearchResult{
			Move:        NoMove,
			Nodes:       t.nodes,
			Evaluations: t.evaluations,
			OutOfTime:   true,
		}
	}
	return SearchResult{
		Move:        o.move.ValueOr(NoMove),
		Score:       o.score,
		Depth:       depth,
		Nodes:       t.nodes,
		Evaluations: t.evaluations,
		Exhausted:   !t.reachedEdge,
	}
}

// MinimaxAgent searches to a fixed depth without pruning.
type MinimaxAgent[S State[S]] struct {
	score   Evaluator[S]
	options searchOptions
}

func NewMinimaxAgent[S State[S]](score Evaluator[S], opts ...SearchOption) *MinimaxAgent[S] {
	if score == nil {
		panic(Errorf("minimax agent needs an evaluator"))
	}
	return &MinimaxAgent[S]{
		score:   score,
		options: buildOptions(opts),
	}
}

func (a *MinimaxAgent[S]) SearchDepth() int {
	return a.options.searchDepth
}

func (a *MinimaxAgent[S]) ChooseMove(state S, timeLeft TimeLeft) Move {
	return a.Search(state, timeLeft).Move
}

// Search runs minimax at the configured depth. If time runs out first there
// is nothing to fall back on and the result holds NoMove.
func (a *MinimaxAgent[S]) Search(state S, timeLeft TimeLeft) SearchResult {
	result := a.Minimax(state, a.options.searchDepth, timeLeft)
	if result.OutOfTime {
		a.options.logger.Println("minimax out of time at depth", a.options.searchDepth)
	} else {
		a.options.logger.Println("minimax", result)
	}
	return result
}

func (a *MinimaxAgent[S]) Minimax(state S, depth int, timeLeft TimeLeft) SearchResult {
	t := newTreeSearch(state, a.score, a.options, timeLeft)
	return t.result(t.search(state, depth, Empty[Bounds](), true), depth)
}

// AlphaBetaAgent runs alpha-beta search with iterative deepening.
type AlphaBetaAgent[S State[S]] struct {
	score   Evaluator[S]
	options searchOptions
}

func NewAlphaBetaAgent[S State[S]](score Evaluator[S], opts ...SearchOption) *AlphaBetaAgent[S] {
	if score == nil {
		panic(Errorf("alpha-beta agent needs an evaluator"))
	}
	return &AlphaBetaAgent[S]{
		score:   score,
		options: buildOptions(opts),
	}
}

func (a *AlphaBetaAgent[S]) SearchDepth() int {
	return a.options.searchDepth
}

func (a *AlphaBetaAgent[S]) ChooseMove(state S, timeLeft TimeLeft) Move {
	return a.Search(state, timeLeft).Move
}

// Search deepens one ply at a time starting at the configured depth and
// returns the move of the deepest pass that finished before the deadline.
func (a *AlphaBetaAgent[S]) Search(state S, timeLeft TimeLeft) SearchResult {
	best := SearchResult{Move: NoMove}
	nodes := 0
	evaluations := 0

	for depth := a.options.searchDepth; ; depth++ {
		if a.options.maxDepth.HasValue() && depth > a.options.maxDepth.Value() {
			break
		}

		if a.options.debugTree != nil {
			a.options.debugTree.DepthPush(fmt.Sprintf("depth %d", depth))
		}

		result := a.AlphaBeta(state, depth, timeLeft)
		nodes += result.Nodes
		evaluations += result.Evaluations

		if a.options.debugTree != nil {
			score := Some(result.Score)
			if result.OutOfTime {
				score = Empty[float64]()
			}
			a.options.debugTree.DepthPop(fmt.Sprintf("depth %d", depth), score)
		}

		if result.OutOfTime {
			a.options.logger.Println("alphabeta out of time at depth", depth)
			best.OutOfTime = true
			break
		}

		best = result
		a.options.logger.Println("alphabeta", result)

		if result.Exhausted {
			break
		}
	}

	best.Nodes = nodes
	best.Evaluations = evaluations
	return best
}

// AlphaBeta searches depth plies with pruning. The move is NoMove when the
// deadline hit or when the search could not settle on one of state's legal
// moves.
func (a *AlphaBetaAgent[S]) AlphaBeta(state S, depth int, timeLeft TimeLeft) SearchResult {
	t := newTreeSearch(state, a.score, a.options, timeLeft)
	result := t.result(t.search(state, depth, Some(InitialBounds()), true), depth)

	if !result.OutOfTime && !Contains(state.LegalMoves(), result.Move) {
		result.Move = NoMove
	}
	return result
}
