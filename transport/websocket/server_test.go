package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

func newTestServer(t *testing.T) (*httptest.Server, usecase.SessionUseCase) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sessions := usecase.NewSessionUseCase(logger, repository.NewMemorySessionRepository())

	router := mux.NewRouter()
	New(logger, sessions).Register(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, sessions
}

func dial(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/games/" + gameID
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func readPayload(t *testing.T, conn *websocket.Conn) (string, ResponsePayload) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	var payload ResponsePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))

	return msg.Action, payload
}

func send(t *testing.T, conn *websocket.Conn, action, payload string) {
	t.Helper()

	msg := Message{Action: action}
	if payload != "" {
		msg.Payload = json.RawMessage(payload)
	}
	require.NoError(t, conn.WriteJSON(msg))
}

func TestServer_PlayBroadcasts(t *testing.T) {
	srv, sessions := newTestServer(t)
	game, err := sessions.NewGame(context.Background())
	require.NoError(t, err)

	// Given: two clients watching the same game
	first := dial(t, srv, game.ID)
	action, payload := readPayload(t, first)
	require.Equal(t, actionState, action)
	require.NotNil(t, payload.Game)

	second := dial(t, srv, game.ID)
	_, _ = readPayload(t, second)

	// When: the first client plays the center
	send(t, first, actionPlay, `{"cell": 4}`)

	// Then: both clients receive the new view
	for _, conn := range []*websocket.Conn{first, second} {
		action, payload = readPayload(t, conn)
		assert.Equal(t, actionPlay, action)
		require.NotNil(t, payload.Game)
		assert.Equal(t, "X", payload.Game.Board[4])
		assert.Equal(t, "O", payload.Game.NextPlayer)
	}
}

func TestServer_Rejections(t *testing.T) {
	srv, sessions := newTestServer(t)
	game, err := sessions.NewGame(context.Background())
	require.NoError(t, err)

	conn := dial(t, srv, game.ID)
	_, _ = readPayload(t, conn)

	tests := []struct {
		name    string
		action  string
		payload string
		errText string
	}{
		{name: "unknown action", action: "game:undo", errText: "unknown action"},
		{name: "missing cell", action: actionPlay, payload: `{}`, errText: "cell"},
		{name: "jump out of range", action: actionJump, payload: `{"move": 7}`, errText: "out of history range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send(t, conn, tt.action, tt.payload)

			action, payload := readPayload(t, conn)

			assert.Equal(t, actionError, action)
			assert.Contains(t, payload.Error, tt.errText)
		})
	}

	t.Run("state request answers only the caller", func(t *testing.T) {
		send(t, conn, actionOrder, "")
		action, payload := readPayload(t, conn)
		require.Equal(t, actionOrder, action)
		assert.False(t, payload.Game.Ascending)

		send(t, conn, actionState, "")
		action, payload = readPayload(t, conn)
		assert.Equal(t, actionState, action)
		assert.False(t, payload.Game.Ascending)
	})
}

func TestServer_UnknownGame(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ws/games/missing")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
