package search

import (
	"fmt"
	"strings"

	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
)

type DebugLine struct {
	Label  string
	Depth  int
	Bounds Optional[Bounds]
	Score  Optional[float64]

	// Skipped counts the siblings dropped by a cutoff on this line.
	Skipped int
}

// DebugTree records the moves visited by a search, one line per move in the
// order the search finished them.
type DebugTree struct {
	CurrentDepth int
	Lines        []DebugLine
}

func layerLabel(maximizing bool) string {
	if maximizing {
		return "max"
	}
	return "min"
}

func (s *DebugTree) DepthPush(label string) {
	s.Lines = append(s.Lines, DebugLine{
		Label: "> " + label,
		Depth: s.CurrentDepth,
	})
	s.CurrentDepth += 1
}

func (s *DebugTree) DepthPop(label string, score Optional[float64]) {
	s.CurrentDepth -= 1
	s.Lines = append(s.Lines, DebugLine{
		Label: "$ " + label,
		Depth: s.CurrentDepth,
		Score: score,
	})
}

func (s *DebugTree) MovePush(move Move, maximizing bool, bounds Optional[Bounds]) {
	s.Lines = append(s.Lines, DebugLine{
		Label:  fmt.Sprintf("> %v %v", layerLabel(maximizing), move),
		Depth:  s.CurrentDepth,
		Bounds: bounds,
	})
	s.CurrentDepth += 1
}

func (s *DebugTree) MovePop(move Move, maximizing bool, bounds Optional[Bounds], score Optional[float64]) {
	s.CurrentDepth -= 1
	s.Lines = append(s.Lines, DebugLine{
		Label:  fmt.Sprintf("$ %v %v", layerLabel(maximizing), move),
		Depth:  s.CurrentDepth,
		Bounds: bounds,
		Score:  score,
	})
}

func (s *DebugTree) Prune(maximizing bool, bounds Bounds, skipped int) {
	s.Lines = append(s.Lines, DebugLine{
		Label:   fmt.Sprintf("x %v pruned %d", layerLabel(maximizing), skipped),
		Depth:   s.CurrentDepth,
		Bounds:  Some(bounds),
		Skipped: skipped,
	})
}

// String renders finished moves shallower than depth. Moves cut short by the
// deadline have no score and are shown as "timeout".
func (s *DebugTree) String(depth int) string {
	result := ""
	for _, line := range s.Lines {
		if line.Depth >= depth || strings.HasPrefix(line.Label, ">") {
			continue
		}
		scoreString := "timeout"
		if line.Score.HasValue() {
			scoreString = ScoreString(line.Score.Value())
		}
		if strings.HasPrefix(line.Label, "x") {
			scoreString = ""
		}
		boundsString := ""
		if line.Bounds.HasValue() {
			boundsString = " " + line.Bounds.Value().String()
		}
		result += strings.TrimRight(fmt.Sprintf("%v%v%v %v",
			strings.Repeat(" ", line.Depth),
			line.Label,
			boundsString,
			scoreString), " ") + "\n"
	}
	return result
}

// NumPruned counts the sibling moves skipped by alpha-beta cutoffs.
func (s *DebugTree) NumPruned() int {
	return ReduceSlice(s.Lines, 0, func(total int, line DebugLine) int {
		return total + line.Skipped
	})
}
