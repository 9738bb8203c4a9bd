package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aweeraman/AIND-Isolation/internal/game"
	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
	"github.com/aweeraman/AIND-Isolation/internal/tournament"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	s := New(tournament.DefaultConfig(), zerolog.Nop(), prometheus.NewRegistry())
	server := httptest.NewServer(s.Router())
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func get(t *testing.T, server *httptest.Server, path string) string {
	response, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return string(body)
}

func TestStreamsAGame(t *testing.T) {
	server := newTestServer(t)
	c := dial(t, server)

	seed := int64(3)
	require.NoError(t, c.WriteJSON(GameRequest{
		Player1:      "random",
		Player2:      "mm_open",
		TimeLimitMs:  100,
		Width:        5,
		Height:       5,
		OpeningMoves: 2,
		Seed:         &seed,
	}))

	moves := []MoveToWeb{}
	var result ResultToWeb
	for {
		_, message, err := c.ReadMessage()
		require.NoError(t, err)

		var header struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(message, &header))

		if header.Type == messageMove {
			var move MoveToWeb
			require.NoError(t, json.Unmarshal(message, &move))
			moves = append(moves, move)
			continue
		}

		require.Equal(t, messageResult, header.Type, string(message))
		require.NoError(t, json.Unmarshal(message, &result))
		break
	}

	_, err := uuid.Parse(result.GameID)
	assert.NoError(t, err)
	assert.Len(t, moves, len(result.History)-2)
	assert.Contains(t, []string{"random", "mm_open"}, result.Winner)

	for i, move := range moves {
		assert.Equal(t, result.GameID, move.GameID)
		assert.Equal(t, i, move.Turn)
		assert.Equal(t, result.History[i+2], move.LastMove)
		assert.Len(t, move.Rows, 5)
		if move.Agent == "mm_open" {
			assert.Positive(t, move.Nodes)
			assert.Equal(t, 3, move.Depth)
		}
	}

	final, parseErr := game.ParseBoard(result.Rows, Player1)
	require.True(t, IsNil(parseErr), parseErr)
	assert.Equal(t, len(result.History), final.MoveCount())

	metrics := get(t, server, "/metrics")
	assert.Contains(t, metrics, `isolation_moves_searched_total{agent="mm_open"}`)
	assert.Contains(t, metrics, `isolation_games_played_total`)
	assert.Contains(t, metrics, `isolation_search_depth_bucket{agent="mm_open"`)
}

func TestUnknownAgent(t *testing.T) {
	server := newTestServer(t)
	c := dial(t, server)

	require.NoError(t, c.WriteJSON(GameRequest{Player1: "random", Player2: "stockfish"}))

	var response ErrorToWeb
	require.NoError(t, c.ReadJSON(&response))
	assert.Equal(t, messageError, response.Type)
	assert.Equal(t, "unknown agent stockfish", response.Error)
}

func TestInvalidRequest(t *testing.T) {
	server := newTestServer(t)
	c := dial(t, server)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("{")))

	var response ErrorToWeb
	require.NoError(t, c.ReadJSON(&response))
	assert.Equal(t, messageError, response.Type)
	assert.Contains(t, response.Error, "invalid request")

	require.NoError(t, c.WriteJSON(GameRequest{Player1: "random", Player2: "random", Width: 40, Height: 40}))
	require.NoError(t, c.ReadJSON(&response))
	assert.Equal(t, "board size out of range", response.Error)

	require.NoError(t, c.WriteJSON(GameRequest{Player1: "ab_open", Player2: "random", TimeLimitMs: 5}))
	require.NoError(t, c.ReadJSON(&response))
	assert.Equal(t, "time limit too short for the configured agents", response.Error)
}

func TestListings(t *testing.T) {
	server := newTestServer(t)

	evaluators := []string{}
	require.NoError(t, json.Unmarshal([]byte(get(t, server, "/evaluators")), &evaluators))
	assert.Contains(t, evaluators, "mobility")

	agents := []tournament.AgentConfig{}
	require.NoError(t, json.Unmarshal([]byte(get(t, server, "/agents")), &agents))
	assert.Equal(t, tournament.DefaultConfig().Agents, agents)
}
