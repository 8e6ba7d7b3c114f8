package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

const writeTimeout = 10 * time.Second

var errUnknownAction = errors.New("unknown action")

type sessionUseCase interface {
	GetGame(ctx context.Context, id string) (*usecase.Game, error)

	Play(ctx context.Context, id string, cell int) (*usecase.Game, error)
	JumpTo(ctx context.Context, id string, move int) (*usecase.Game, error)
	ToggleOrder(ctx context.Context, id string) (*usecase.Game, error)
	Reset(ctx context.Context, id string) (*usecase.Game, error)
}

type handlerFunc func(ctx context.Context, gameID string, payload RequestPayload) (*usecase.Game, error)

// connection - websocket.Conn supports one concurrent writer, so writes are serialized.
type connection struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (that *connection) write(msg Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc

	mu    sync.Mutex
	rooms map[string]map[*connection]struct{}
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
		rooms:    make(map[string]map[*connection]struct{}),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionPlay] = server.handlePlay
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionOrder] = server.handleOrder
	server.handlers[actionReset] = server.handleReset

	return server
}

// Register - mounts the websocket endpoint on router.
func (that *Server) Register(router *mux.Router) {
	router.HandleFunc("/ws/games/{id}", that.ServeHTTP)
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")
	gameID := mux.Vars(r)["id"]

	game, err := that.sessions.GetGame(r.Context(), gameID)
	if err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "game_id", gameID, "error", err)
		return
	}

	client := &connection{conn: conn}
	that.join(gameID, client)

	defer func() {
		that.leave(gameID, client)
		_ = conn.Close()
	}()

	log.Info("websocket connection established", "game_id", gameID)

	if err = client.write(gameMessage(actionState, game)); err != nil {
		log.Error("failed to send initial state", "game_id", gameID, "error", err)
		return
	}

	that.handleMessages(r.Context(), gameID, client)
}

// handleMessages - processes messages from the client until the connection closes.
func (that *Server) handleMessages(ctx context.Context, gameID string, client *connection) {
	log := that.logger.With("method", "handleMessages", "game_id", gameID)

	for {
		var message Message
		if err := client.conn.ReadJSON(&message); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		game, err := that.dispatch(ctx, gameID, &message)
		if err != nil {
			log.Info("action rejected", "action", message.Action, "error", err)

			if err = client.write(Message{Action: actionError, Payload: mustMarshal(ResponsePayload{Error: err.Error()})}); err != nil {
				log.Error("failed to send error", "error", err)
				return
			}

			continue
		}

		if message.Action == actionState {
			if err = client.write(gameMessage(actionState, game)); err != nil {
				log.Error("failed to send state", "error", err)
				return
			}

			continue
		}

		that.broadcast(gameID, gameMessage(message.Action, game))
	}
}

func (that *Server) dispatch(ctx context.Context, gameID string, message *Message) (*usecase.Game, error) {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownAction, message.Action)
	}

	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	return handler(ctx, gameID, payload)
}

func (that *Server) join(gameID string, client *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.rooms[gameID] == nil {
		that.rooms[gameID] = make(map[*connection]struct{})
	}
	that.rooms[gameID][client] = struct{}{}
}

func (that *Server) leave(gameID string, client *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms[gameID], client)
	if len(that.rooms[gameID]) == 0 {
		delete(that.rooms, gameID)
	}
}

func (that *Server) broadcast(gameID string, msg Message) {
	that.mu.Lock()
	clients := make([]*connection, 0, len(that.rooms[gameID]))
	for client := range that.rooms[gameID] {
		clients = append(clients, client)
	}
	that.mu.Unlock()

	for _, client := range clients {
		if err := client.write(msg); err != nil {
			that.logger.Error("failed to broadcast", "game_id", gameID, "error", err)
		}
	}
}

func gameMessage(action string, game *usecase.Game) Message {
	return Message{
		Action:  action,
		Payload: mustMarshal(ResponsePayload{Game: view.New(game.ID, game.State)}),
	}
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
