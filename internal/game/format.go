package game

import (
	"strings"

	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
)

const (
	openCell    = '.'
	blockedCell = '#'
)

var playerCells = [2]byte{'1', '2'}

// ParseBoard reads one string per row: '.' for open cells, '#' for blocked
// cells and '1' / '2' for the players.
func ParseBoard(rows []string, active Player) (*Board, Error) {
	if len(rows) == 0 {
		return nil, Errorf("board has no rows")
	}

	width := len(rows[0])
	b := NewBoard(width, len(rows))
	b.active = active

	for row, line := range rows {
		if len(line) != width {
			return nil, Errorf("row %d has width %d, expected %d", row, len(line), width)
		}
		for col := 0; col < width; col++ {
			m := Move{row, col}
			switch line[col] {
			case openCell:
				continue
			case blockedCell:
			case playerCells[Player1]:
				if b.locations[Player1].HasValue() {
					return nil, Errorf("player1 appears twice")
				}
				b.locations[Player1] = Some(m)
			case playerCells[Player2]:
				if b.locations[Player2].HasValue() {
					return nil, Errorf("player2 appears twice")
				}
				b.locations[Player2] = Some(m)
			default:
				return nil, Errorf("unknown cell %q at %v", line[col], m)
			}
			b.blocked[b.index(m)] = true
			b.moveCount++
		}
	}

	return b, NilError
}

func (b *Board) Rows() []string {
	rows := make([]string, b.height)
	for row := 0; row < b.height; row++ {
		line := make([]byte, b.width)
		for col := 0; col < b.width; col++ {
			m := Move{row, col}
			switch {
			case b.locations[Player1] == Some(m):
				line[col] = playerCells[Player1]
			case b.locations[Player2] == Some(m):
				line[col] = playerCells[Player2]
			case b.blocked[b.index(m)]:
				line[col] = blockedCell
			default:
				line[col] = openCell
			}
		}
		rows[row] = string(line)
	}
	return rows
}

func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}
