package search

import (
	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
)

// State is what the searchers need from a game. Implementations must be
// immutable from the searcher's point of view: Forecast returns a new state
// and never modifies the receiver.
type State[S any] interface {
	ActivePlayer() Player

	// LegalMoves is empty when the active player has lost.
	LegalMoves() []Move

	Forecast(move Move) S

	// Utility is +Inf for a won game, -Inf for a lost game and 0 otherwise.
	Utility(player Player) float64

	IsWinner(player Player) bool
	IsLoser(player Player) bool
}

// Board adds the geometry queries used by the heuristic evaluators.
type Board[S any] interface {
	State[S]

	Width() int
	Height() int
	Location(player Player) Optional[Move]

	// MovesFrom lists the cells reachable from location in one move.
	MovesFrom(location Move) []Move

	// PlayerMoves lists player's moves as if it were player's turn. A player
	// that has not moved yet may go to any open cell.
	PlayerMoves(player Player) []Move
}

// Evaluator scores a non-terminal state from player's point of view.
type Evaluator[S any] func(state S, player Player) float64

// Agent picks a move for the active player of state before timeLeft runs out.
type Agent[S any] interface {
	ChooseMove(state S, timeLeft TimeLeft) Move
}
