package runner

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aweeraman/AIND-Isolation/internal/game"
	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
	"github.com/aweeraman/AIND-Isolation/internal/search"
)

const (
	DefaultTimeLimit = 150 * time.Millisecond

	// an agent still thinking this long after its turn ended is abandoned
	abandonAfter = time.Second
)

type Agent = search.Agent[*game.Board]

// Searcher is implemented by agents that can report how their search went.
type Searcher interface {
	Search(state *game.Board, timeLeft search.TimeLeft) search.SearchResult
}

var (
	_ Agent    = (*search.MinimaxAgent[*game.Board])(nil)
	_ Agent    = (*search.AlphaBetaAgent[*game.Board])(nil)
	_ Searcher = (*search.MinimaxAgent[*game.Board])(nil)
	_ Searcher = (*search.AlphaBetaAgent[*game.Board])(nil)
)

// Outcome is why a match ended.
type Outcome int

const (
	// the loser had no legal moves
	OutcomeNoMoves Outcome = iota
	// the loser answered after its turn ended
	OutcomeTimeout
	// the loser chose a move that was not legal
	OutcomeIllegalMove
)

var _outcomeStrings = [...]string{
	"no moves", "timeout", "illegal move",
}

func (o Outcome) String() string {
	return _outcomeStrings[o]
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o Outcome) IsForfeit() bool {
	return o != OutcomeNoMoves
}

// MoveEvent describes one finished turn.
type MoveEvent struct {
	Turn    int
	Player  Player
	Move    Move
	Elapsed time.Duration

	// Result is only set for agents that implement Searcher.
	Result Optional[search.SearchResult]

	// Board is the position after the move.
	Board *game.Board
}

type MatchResult struct {
	Winner  Player
	Outcome Outcome

	// History lists every move played, openings included.
	History []Move

	Board *game.Board
}

func (r MatchResult) Loser() Player {
	return r.Winner.Other()
}

func (r MatchResult) String() string {
	return fmt.Sprintf("%v wins after %d moves (%v)", r.Winner, len(r.History), r.Outcome)
}

type matchOptions struct {
	timeLimit    time.Duration
	openingMoves int
	rng          *rand.Rand
	logger       Logger
	onMove       func(MoveEvent)
}

type MatchOption interface {
	apply(options *matchOptions)
}

type WithTimeLimit struct {
	Limit time.Duration
}

func (o WithTimeLimit) apply(options *matchOptions) {
	options.timeLimit = o.Limit
}

// WithOpeningMoves plays Count random moves before the agents take over.
type WithOpeningMoves struct {
	Count int
	Rand  *rand.Rand
}

func (o WithOpeningMoves) apply(options *matchOptions) {
	options.openingMoves = o.Count
	options.rng = o.Rand
}

type WithLogger struct {
	Logger Logger
}

func (o WithLogger) apply(options *matchOptions) {
	options.logger = o.Logger
}

// WithMoveListener is called after every move an agent makes.
type WithMoveListener struct {
	OnMove func(MoveEvent)
}

func (o WithMoveListener) apply(options *matchOptions) {
	options.onMove = o.OnMove
}

func buildOptions(opts []MatchOption) matchOptions {
	options := matchOptions{
		timeLimit: DefaultTimeLimit,
		logger:    &SilentLogger,
		onMove:    func(MoveEvent) {},
	}
	for _, opt := range opts {
		opt.apply(&options)
	}
	if options.rng == nil {
		options.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return options
}

type turn struct {
	move    Move
	result  Optional[search.SearchResult]
	elapsed time.Duration
}

// think asks agent for a move on a copy of board, so an abandoned agent can't
// touch the match position.
func think(agent Agent, board *game.Board, limit time.Duration) Optional[turn] {
	start := time.Now()
	deadline := start.Add(limit)
	timeLeft := search.TimeLeftUntil(deadline)
	state := board.Copy()

	done := make(chan turn, 1)
	go func() {
		t := turn{}
		if searcher, ok := agent.(Searcher); ok {
			result := searcher.Search(state, timeLeft)
			t.move = result.Move
			t.result = Some(result)
		} else {
			t.move = agent.ChooseMove(state, timeLeft)
		}
		t.elapsed = time.Since(start)
		done <- t
	}()

	select {
	case t := <-done:
		return Some(t)
	case <-time.After(limit + abandonAfter):
		return Empty[turn]()
	}
}

// Play runs a match on board, which is modified in place. agents[Player1]
// moves for player1 and agents[Player2] for player2.
func Play(board *game.Board, agents [2]Agent, opts ...MatchOption) MatchResult {
	options := buildOptions(opts)
	history := []Move{}

	for i := 0; i < options.openingMoves; i++ {
		moves := board.LegalMoves()
		if len(moves) == 0 {
			break
		}
		move := moves[options.rng.Intn(len(moves))]
		err := board.ApplyMove(move)
		if !IsNil(err) {
			panic(err)
		}
		history = append(history, move)
	}

	for turnNumber := 0; ; turnNumber++ {
		player := board.ActivePlayer()
		legal := board.LegalMoves()

		end := func(outcome Outcome) MatchResult {
			result := MatchResult{
				Winner:  player.Other(),
				Outcome: outcome,
				History: history,
				Board:   board,
			}
			options.logger.Println(result)
			return result
		}

		if len(legal) == 0 {
			return end(OutcomeNoMoves)
		}

		t := think(agents[player], board, options.timeLimit)
		if t.IsEmpty() || t.Value().elapsed > options.timeLimit {
			options.logger.Println(player, "ran out of time")
			return end(OutcomeTimeout)
		}

		move := t.Value().move
		if !Contains(legal, move) {
			if move.IsNoMove() {
				options.logger.Println(player, "returned no move")
			} else {
				options.logger.Println(player, "chose illegal move", move)
			}
			return end(OutcomeIllegalMove)
		}

		err := board.ApplyMove(move)
		if !IsNil(err) {
			panic(err)
		}
		history = append(history, move)

		options.logger.Printf("%v %v in %v\n", player, move, t.Value().elapsed.Round(time.Millisecond))
		options.onMove(MoveEvent{
			Turn:    turnNumber,
			Player:  player,
			Move:    move,
			Elapsed: t.Value().elapsed,
			Result:  t.Value().result,
			Board:   board.Copy(),
		})
	}
}
