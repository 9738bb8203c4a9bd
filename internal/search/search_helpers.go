package search

import (
	"fmt"
	"math"
)

var (
	PosInf = math.Inf(1)
	NegInf = math.Inf(-1)
)

// Bounds are the alpha / beta window threaded through alpha-beta search.
// Alpha is the score the maximizer can already force, Beta the score the
// minimizer can already force.
type Bounds struct {
	Alpha float64
	Beta  float64
}

func InitialBounds() Bounds {
	return Bounds{Alpha: NegInf, Beta: PosInf}
}

// tighten folds a child score into the window for the player choosing at
// this layer.
func (b Bounds) tighten(score float64, maximizing bool) Bounds {
	if maximizing {
		b.Alpha = math.Max(b.Alpha, score)
	} else {
		b.Beta = math.Min(b.Beta, score)
	}
	return b
}

func (b Bounds) Pruned() bool {
	return b.Alpha >= b.Beta
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%v %v]", ScoreString(b.Alpha), ScoreString(b.Beta))
}

func ScoreString(score float64) string {
	if math.IsInf(score, 1) {
		return "win"
	}
	if math.IsInf(score, -1) {
		return "loss"
	}
	return fmt.Sprint(score)
}

// improves reports whether score should replace best on this layer. Ties
// keep the earlier move.
func improves(score float64, best float64, maximizing bool) bool {
	if maximizing {
		return score > best
	}
	return score < best
}
