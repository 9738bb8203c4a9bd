package search

import (
	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
)

// Every evaluator returns +Inf / -Inf for decided games before looking at
// anything else, so a decided game always outranks a heuristic estimate.
func decided[S Board[S]](state S, player Player) Optional[float64] {
	if state.IsWinner(player) {
		return Some(PosInf)
	}
	if state.IsLoser(player) {
		return Some(NegInf)
	}
	return Empty[float64]()
}

func followUpMoves[S Board[S]](state S, player Player) []Move {
	return state.PlayerMoves(player)
}

const (
	centerBonus        = 5.0
	centerMobilityRate = 0.5
)

func centerOf[S Board[S]](state S) Move {
	return Move{Row: state.Height() / 2, Col: state.Width() / 2}
}

// CenterScore rewards standing on the center cell, plus a bonus per move
// available from there. Anywhere else scores zero.
func CenterScore[S Board[S]](state S, player Player) float64 {
	if result := decided(state, player); result.HasValue() {
		return result.Value()
	}

	location := state.Location(player)
	if location.IsEmpty() || location.Value() != centerOf(state) {
		return 0
	}

	return centerBonus + centerMobilityRate*float64(len(followUpMoves(state, player)))
}

// MobilityScore is the player's follow-up move count minus the opponent's.
func MobilityScore[S Board[S]](state S, player Player) float64 {
	if result := decided(state, player); result.HasValue() {
		return result.Value()
	}

	own := len(followUpMoves(state, player))
	opponent := len(followUpMoves(state, player.Other()))
	return float64(own - opponent)
}

func isEdge[S Board[S]](state S, m Move) bool {
	return m.Row == 0 || m.Col == 0 || m.Row == state.Height()-1 || m.Col == state.Width()-1
}

// edgeRatio counts the edge cells among the player's location and follow-up
// moves, relative to the number of follow-up moves.
func edgeRatio[S Board[S]](state S, player Player) float64 {
	moves := followUpMoves(state, player)
	if len(moves) == 0 {
		return 0
	}

	edgeCount := 0
	location := state.Location(player)
	if location.HasValue() && isEdge(state, location.Value()) {
		edgeCount++
	}
	for _, m := range moves {
		if isEdge(state, m) {
			edgeCount++
		}
	}
	return float64(edgeCount) / float64(len(moves))
}

// CornerAvoidanceScore penalizes being tied to the board's edges: the share
// of edge cells among a player's position and follow-up moves, opponent minus
// player. A player in the middle of the board scores above one on the rim.
func CornerAvoidanceScore[S Board[S]](state S, player Player) float64 {
	if result := decided(state, player); result.HasValue() {
		return result.Value()
	}

	return edgeRatio(state, player.Other()) - edgeRatio(state, player)
}

// OpenMoveScore counts the player's legal moves.
func OpenMoveScore[S Board[S]](state S, player Player) float64 {
	if result := decided(state, player); result.HasValue() {
		return result.Value()
	}

	return float64(len(followUpMoves(state, player)))
}

// AggressiveScore is the player's legal move count minus twice the
// opponent's, so cutting the opponent off counts double.
func AggressiveScore[S Board[S]](state S, player Player) float64 {
	if result := decided(state, player); result.HasValue() {
		return result.Value()
	}

	own := len(followUpMoves(state, player))
	opponent := len(followUpMoves(state, player.Other()))
	return float64(own - 2*opponent)
}

// NullScore only tells decided games apart.
func NullScore[S State[S]](state S, player Player) float64 {
	if state.IsWinner(player) {
		return PosInf
	}
	if state.IsLoser(player) {
		return NegInf
	}
	return 0
}
