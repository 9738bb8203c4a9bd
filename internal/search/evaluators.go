package search

import (
	"sort"
)

const (
	CenterEvaluator         = "center"
	MobilityEvaluator       = "mobility"
	CornerAvoidingEvaluator = "corners"
	OpenMoveEvaluator       = "open"
	AggressiveEvaluator     = "aggressive"
	NullEvaluator           = "null"
)

func evaluators[S Board[S]]() map[string]Evaluator[S] {
	return map[string]Evaluator[S]{
		CenterEvaluator:         CenterScore[S],
		MobilityEvaluator:       MobilityScore[S],
		CornerAvoidingEvaluator: CornerAvoidanceScore[S],
		OpenMoveEvaluator:       OpenMoveScore[S],
		AggressiveEvaluator:     AggressiveScore[S],
		NullEvaluator:           NullScore[S],
	}
}

// EvaluatorNames lists the registered evaluators, sorted.
func EvaluatorNames() []string {
	names := []string{
		CenterEvaluator,
		MobilityEvaluator,
		CornerAvoidingEvaluator,
		OpenMoveEvaluator,
		AggressiveEvaluator,
		NullEvaluator,
	}
	sort.Strings(names)
	return names
}

func EvaluatorByName[S Board[S]](name string) (Evaluator[S], bool) {
	e, ok := evaluators[S]()[name]
	return e, ok
}
