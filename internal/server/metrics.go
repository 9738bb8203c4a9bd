package server

import (
	"github.com/aweeraman/AIND-Isolation/internal/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	movesSearched *prometheus.CounterVec
	nodesSearched *prometheus.CounterVec
	searchDepth   *prometheus.HistogramVec
	gamesPlayed   *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		movesSearched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isolation",
			Name:      "moves_searched_total",
			Help:      "Moves chosen by agents, by agent name.",
		}, []string{"agent"}),
		nodesSearched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isolation",
			Name:      "nodes_searched_total",
			Help:      "Game tree nodes visited by searching agents, by agent name.",
		}, []string{"agent"}),
		searchDepth: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "isolation",
			Name:      "search_depth",
			Help:      "Deepest completed search depth per move, by agent name.",
			Buckets:   prometheus.LinearBuckets(1, 1, 12),
		}, []string{"agent"}),
		gamesPlayed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isolation",
			Name:      "games_played_total",
			Help:      "Finished games, by how they ended.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveMove(agent string, e runner.MoveEvent) {
	m.movesSearched.WithLabelValues(agent).Inc()
	if e.Result.IsEmpty() {
		return
	}
	m.nodesSearched.WithLabelValues(agent).Add(float64(e.Result.Value().Nodes))
	if depth := e.Result.Value().Depth; depth > 0 {
		m.searchDepth.WithLabelValues(agent).Observe(float64(depth))
	}
}

func (m *Metrics) ObserveGame(result runner.MatchResult) {
	m.gamesPlayed.WithLabelValues(result.Outcome.String()).Inc()
}
