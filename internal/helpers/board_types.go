package helpers

import "fmt"

type Player uint

const (
	Player1 Player = iota
	Player2
)

var _playerStrings = [2]string{
	"player1", "player2",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

// Move is the cell a player moves onto.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoMove is returned when a player has no move to make.
var NoMove = Move{-1, -1}

func (m Move) IsNoMove() bool {
	return m == NoMove
}

func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}
