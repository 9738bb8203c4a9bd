package tournament

import (
	"math/rand"

	"github.com/aweeraman/AIND-Isolation/internal/game"
	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
	"github.com/aweeraman/AIND-Isolation/internal/runner"
	"github.com/aweeraman/AIND-Isolation/internal/search"
)

// RandomAgent plays a uniformly random legal move.
type RandomAgent struct {
	rng *rand.Rand
}

var _ runner.Agent = (*RandomAgent)(nil)

func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng}
}

func (a *RandomAgent) ChooseMove(state *game.Board, timeLeft search.TimeLeft) Move {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return NoMove
	}
	return moves[a.rng.Intn(len(moves))]
}

// NewAgent builds the agent described by config. Each call returns a fresh
// agent, so agents are never shared between matches. Options in extra are
// applied after the ones derived from config.
func NewAgent(config AgentConfig, rng *rand.Rand, logger Logger, extra ...search.SearchOption) (runner.Agent, Error) {
	if config.Algorithm == AlgorithmRandom {
		return NewRandomAgent(rng), NilError
	}

	score, ok := search.EvaluatorByName[*game.Board](config.Evaluator)
	if !ok {
		return nil, Errorf("agent %v: unknown evaluator %q", config.Name, config.Evaluator)
	}

	opts := []search.SearchOption{search.WithLogger{Logger: logger}}
	if config.Depth > 0 {
		opts = append(opts, search.WithSearchDepth{Depth: config.Depth})
	}
	if config.TimeoutMargin > 0 {
		opts = append(opts, search.WithTimeoutMargin{Margin: config.TimeoutMargin})
	}
	opts = append(opts, extra...)

	switch config.Algorithm {
	case AlgorithmMinimax:
		return search.NewMinimaxAgent(score, opts...), NilError
	case AlgorithmAlphaBeta:
		return search.NewAlphaBetaAgent(score, opts...), NilError
	}
	return nil, Errorf("agent %v: unknown algorithm %q", config.Name, config.Algorithm)
}
