package game

import (
	"math"

	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
)

const (
	DefaultWidth  = 7
	DefaultHeight = 7
)

// Board is an Isolation position. Each player moves like a chess knight onto
// open cells, and every cell a player has stood on stays blocked. A player
// that has not moved yet may open on any open cell.
type Board struct {
	width     int
	height    int
	blocked   []bool
	locations [2]Optional[Move]
	active    Player
	moveCount int
}

func NewBoard(width int, height int) *Board {
	return &Board{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
		active:  Player1,
	}
}

func NewDefaultBoard() *Board {
	return NewBoard(DefaultWidth, DefaultHeight)
}

var knightDirections = [8]Move{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) ActivePlayer() Player {
	return b.active
}

func (b *Board) InactivePlayer() Player {
	return b.active.Other()
}

func (b *Board) MoveCount() int {
	return b.moveCount
}

func (b *Board) Location(player Player) Optional[Move] {
	return b.locations[player]
}

func (b *Board) index(m Move) int {
	return m.Row*b.width + m.Col
}

func (b *Board) InBounds(m Move) bool {
	return m.Row >= 0 && m.Row < b.height && m.Col >= 0 && m.Col < b.width
}

func (b *Board) IsOpen(m Move) bool {
	return b.InBounds(m) && !b.blocked[b.index(m)]
}

// OpenCells lists every open cell in row-major order.
func (b *Board) OpenCells() []Move {
	cells := []Move{}
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			if !b.blocked[row*b.width+col] {
				cells = append(cells, Move{row, col})
			}
		}
	}
	return cells
}

// MovesFrom lists the open cells a knight jump away from location.
func (b *Board) MovesFrom(location Move) []Move {
	moves := make([]Move, 0, len(knightDirections))
	for _, d := range knightDirections {
		target := Move{location.Row + d.Row, location.Col + d.Col}
		if b.IsOpen(target) {
			moves = append(moves, target)
		}
	}
	return moves
}

func (b *Board) PlayerMoves(player Player) []Move {
	location := b.locations[player]
	if location.IsEmpty() {
		return b.OpenCells()
	}
	return b.MovesFrom(location.Value())
}

func (b *Board) LegalMoves() []Move {
	return b.PlayerMoves(b.active)
}

func (b *Board) IsLegal(move Move) bool {
	return Contains(b.LegalMoves(), move)
}

func (b *Board) IsWinner(player Player) bool {
	return player == b.InactivePlayer() && len(b.LegalMoves()) == 0
}

func (b *Board) IsLoser(player Player) bool {
	return player == b.active && len(b.LegalMoves()) == 0
}

func (b *Board) Utility(player Player) float64 {
	if b.IsWinner(player) {
		return math.Inf(1)
	}
	if b.IsLoser(player) {
		return math.Inf(-1)
	}
	return 0
}

func (b *Board) Copy() *Board {
	c := *b
	c.blocked = make([]bool, len(b.blocked))
	copy(c.blocked, b.blocked)
	return &c
}

// Forecast returns the board after the active player makes move. The
// receiver is left untouched.
func (b *Board) Forecast(move Move) *Board {
	c := b.Copy()
	c.apply(move)
	return c
}

// ApplyMove plays move for the active player in place.
func (b *Board) ApplyMove(move Move) Error {
	if !b.IsLegal(move) {
		return Errorf("illegal move %v for %v", move, b.active)
	}
	b.apply(move)
	return NilError
}

func (b *Board) apply(move Move) {
	b.blocked[b.index(move)] = true
	b.locations[b.active] = Some(move)
	b.active = b.active.Other()
	b.moveCount++
}
