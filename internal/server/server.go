package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/aweeraman/AIND-Isolation/internal/game"
	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
	"github.com/aweeraman/AIND-Isolation/internal/runner"
	"github.com/aweeraman/AIND-Isolation/internal/search"
	"github.com/aweeraman/AIND-Isolation/internal/tournament"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// GameRequest asks the server to play one game between two of its agents.
// Zero fields fall back to the server's tournament config.
type GameRequest struct {
	Player1      string `json:"player1"`
	Player2      string `json:"player2"`
	TimeLimitMs  int    `json:"timeLimitMs"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	OpeningMoves int    `json:"openingMoves"`
	Seed         *int64 `json:"seed"`
}

const (
	minBoardSize = 3
	maxBoardSize = 15
)

const (
	messageMove   = "move"
	messageResult = "result"
	messageError  = "error"
)

type MoveToWeb struct {
	Type      string   `json:"type"`
	GameID    string   `json:"gameId"`
	Turn      int      `json:"turn"`
	Player    string   `json:"player"`
	Agent     string   `json:"agent"`
	LastMove  Move     `json:"lastMove"`
	Rows      []string `json:"rows"`
	Nodes     int      `json:"nodes"`
	Depth     int      `json:"depth"`
	ElapsedMs int64    `json:"elapsedMs"`
}

type ResultToWeb struct {
	Type         string         `json:"type"`
	GameID       string         `json:"gameId"`
	Winner       string         `json:"winner"`
	WinnerPlayer string         `json:"winnerPlayer"`
	Outcome      runner.Outcome `json:"outcome"`
	History      []Move         `json:"history"`
	Rows         []string       `json:"rows"`
}

type ErrorToWeb struct {
	Type   string `json:"type"`
	GameID string `json:"gameId,omitempty"`
	Error  string `json:"error"`
}

type Server struct {
	config   tournament.Config
	logger   zerolog.Logger
	metrics  *Metrics
	gatherer prometheus.Gatherer
	upgrader websocket.Upgrader
}

// New serves games between the agents of config. Metrics are registered with
// registry and served from it.
func New(config tournament.Config, logger zerolog.Logger, registry *prometheus.Registry) *Server {
	return &Server{
		config:   config,
		logger:   logger,
		metrics:  NewMetrics(registry),
		gatherer: registry,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ws", s.serveGames)
	router.HandleFunc("/evaluators", s.serveEvaluators).Methods(http.MethodGet)
	router.HandleFunc("/agents", s.serveAgents).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return router
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) serveEvaluators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, search.EvaluatorNames())
}

func (s *Server) serveAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.config.Agents)
}

// serveGames plays one game per request message, in the connection's
// goroutine, until the client hangs up.
func (s *Server) serveGames(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if !IsNil(err) {
		s.logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer c.Close()

	for {
		_, message, err := c.ReadMessage()
		if !IsNil(err) {
			s.logger.Debug().Err(err).Msg("websocket closed")
			return
		}

		var request GameRequest
		err = json.Unmarshal(message, &request)
		if !IsNil(err) {
			s.send(c, ErrorToWeb{Type: messageError, Error: "invalid request: " + err.Error()})
			continue
		}

		s.play(c, request)
	}
}

func (s *Server) send(c *websocket.Conn, v any) {
	err := c.WriteJSON(v)
	if !IsNil(err) {
		s.logger.Debug().Err(err).Msg("websocket write")
	}
}

func (s *Server) play(c *websocket.Conn, request GameRequest) {
	gameID := uuid.New().String()
	logger := s.logger.With().Str("gameId", gameID).Logger()

	names := [2]string{request.Player1, request.Player2}
	agents := [2]runner.Agent{}
	seed := time.Now().UnixNano()
	if request.Seed != nil {
		seed = *request.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	for i, name := range names {
		agentConfig := s.config.Agent(name)
		if agentConfig.IsEmpty() {
			s.send(c, ErrorToWeb{Type: messageError, GameID: gameID, Error: "unknown agent " + name})
			return
		}
		agent, err := tournament.NewAgent(agentConfig.Value(), rand.New(rand.NewSource(rng.Int63())),
			NewZerologLogger(logger.With().Str("agent", name).Logger(), zerolog.DebugLevel))
		if !IsNil(err) {
			s.send(c, ErrorToWeb{Type: messageError, GameID: gameID, Error: err.Error()})
			return
		}
		agents[i] = agent
	}

	timeLimit := s.config.TimeLimit
	if request.TimeLimitMs > 0 {
		timeLimit = time.Duration(request.TimeLimitMs) * time.Millisecond

		config := s.config
		config.TimeLimit = timeLimit
		if err := config.Validate(); !IsNil(err) {
			s.send(c, ErrorToWeb{Type: messageError, GameID: gameID, Error: "time limit too short for the configured agents"})
			return
		}
	}
	width, height := s.config.Board.Width, s.config.Board.Height
	if request.Width > 0 && request.Height > 0 {
		width, height = request.Width, request.Height
	}
	if width < minBoardSize || height < minBoardSize || width > maxBoardSize || height > maxBoardSize {
		s.send(c, ErrorToWeb{Type: messageError, GameID: gameID, Error: "board size out of range"})
		return
	}
	openingMoves := s.config.OpeningMoves
	if request.OpeningMoves > 0 {
		openingMoves = request.OpeningMoves
	}

	logger.Info().Str("player1", names[0]).Str("player2", names[1]).Dur("timeLimit", timeLimit).Msg("game started")

	result := runner.Play(game.NewBoard(width, height), agents,
		runner.WithTimeLimit{Limit: timeLimit},
		runner.WithOpeningMoves{Count: openingMoves, Rand: rng},
		runner.WithLogger{Logger: NewZerologLogger(logger, zerolog.DebugLevel)},
		runner.WithMoveListener{OnMove: func(e runner.MoveEvent) {
			s.metrics.ObserveMove(names[e.Player], e)

			update := MoveToWeb{
				Type:      messageMove,
				GameID:    gameID,
				Turn:      e.Turn,
				Player:    e.Player.String(),
				Agent:     names[e.Player],
				LastMove:  e.Move,
				Rows:      e.Board.Rows(),
				ElapsedMs: e.Elapsed.Milliseconds(),
			}
			if e.Result.HasValue() {
				update.Nodes = e.Result.Value().Nodes
				update.Depth = e.Result.Value().Depth
			}
			s.send(c, update)
		}},
	)
	s.metrics.ObserveGame(result)

	logger.Info().Str("winner", names[result.Winner]).Stringer("outcome", result.Outcome).Int("moves", len(result.History)).Msg("game finished")

	s.send(c, ResultToWeb{
		Type:         messageResult,
		GameID:       gameID,
		Winner:       names[result.Winner],
		WinnerPlayer: result.Winner.String(),
		Outcome:      result.Outcome,
		History:      result.History,
		Rows:         result.Board.Rows(),
	})
}
