package search

import (
	"math"
	"time"

	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
)

// node is a hand-built game tree. Values are from player1's point of view;
// leaves are terminal positions.
type node struct {
	value    float64
	children []*node
}

func leaf(value float64) *node {
	return &node{value: value}
}

func branch(children ...*node) *node {
	return &node{children: children}
}

// treeState walks a node tree. The move to child i is Move{0, i}.
type treeState struct {
	node   *node
	active Player

	// visited collects the leaf values scored, in visiting order.
	visited *[]float64
}

var _ State[treeState] = treeState{}

func newTreeState(root *node) treeState {
	return treeState{node: root, active: Player1, visited: &[]float64{}}
}

func (s treeState) valueFor(player Player) float64 {
	if player == Player1 {
		return s.node.value
	}
	return -s.node.value
}

func (s treeState) ActivePlayer() Player {
	return s.active
}

func (s treeState) LegalMoves() []Move {
	moves := make([]Move, len(s.node.children))
	for i := range s.node.children {
		moves[i] = Move{Row: 0, Col: i}
	}
	return moves
}

func (s treeState) Forecast(move Move) treeState {
	return treeState{node: s.node.children[move.Col], active: s.active.Other(), visited: s.visited}
}

func (s treeState) Utility(player Player) float64 {
	*s.visited = append(*s.visited, s.node.value)
	return s.valueFor(player)
}

func (s treeState) IsWinner(player Player) bool {
	return len(s.node.children) == 0 && math.IsInf(s.valueFor(player), 1)
}

func (s treeState) IsLoser(player Player) bool {
	return len(s.node.children) == 0 && math.IsInf(s.valueFor(player), -1)
}

// treeValue is the heuristic for interior nodes cut off by the depth limit.
func treeValue(s treeState, player Player) float64 {
	*s.visited = append(*s.visited, s.node.value)
	return s.valueFor(player)
}

// countdown has n calls' worth of time and then none.
func countdown(n int) (TimeLeft, *int) {
	calls := 0
	return func() time.Duration {
		calls++
		if calls > n {
			return 0
		}
		return Unlimited()
	}, &calls
}
