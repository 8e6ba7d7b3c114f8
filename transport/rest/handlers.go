package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

type sessionUseCase interface {
	NewGame(ctx context.Context) (*usecase.Game, error)
	GetGame(ctx context.Context, id string) (*usecase.Game, error)
	DeleteGame(ctx context.Context, id string) error

	Play(ctx context.Context, id string, cell int) (*usecase.Game, error)
	JumpTo(ctx context.Context, id string, move int) (*usecase.Game, error)
	ToggleOrder(ctx context.Context, id string) (*usecase.Game, error)
	Reset(ctx context.Context, id string) (*usecase.Game, error)
}

type playRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Move *int `json:"move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger   *slog.Logger
	sessions sessionUseCase
}

// Register - mounts the game API on router.
func Register(router *mux.Router, logger *slog.Logger, sessions sessionUseCase) {
	that := &handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}

	router.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	router.HandleFunc("/games", that.createGame).Methods(http.MethodPost)
	router.HandleFunc("/games/{id}", that.getGame).Methods(http.MethodGet)
	router.HandleFunc("/games/{id}", that.deleteGame).Methods(http.MethodDelete)
	router.HandleFunc("/games/{id}/moves", that.play).Methods(http.MethodPost)
	router.HandleFunc("/games/{id}/jump", that.jump).Methods(http.MethodPost)
	router.HandleFunc("/games/{id}/order", that.toggleOrder).Methods(http.MethodPost)
	router.HandleFunc("/games/{id}/reset", that.reset).Methods(http.MethodPost)
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.sessions.NewGame(r.Context())
	if err != nil {
		that.writeError(w, "createGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, view.New(game.ID, game.State))
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.sessions.GetGame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "getGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.New(game.ID, game.State))
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.DeleteGame(r.Context(), mux.Vars(r)["id"]); err != nil {
		that.writeError(w, "deleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) play(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"cell\": <0-8>}"})
		return
	}

	game, err := that.sessions.Play(r.Context(), mux.Vars(r)["id"], *req.Cell)
	if err != nil {
		that.writeError(w, "play", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.New(game.ID, game.State))
}

func (that *handlers) jump(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Move == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"move\": <n>}"})
		return
	}

	game, err := that.sessions.JumpTo(r.Context(), mux.Vars(r)["id"], *req.Move)
	if err != nil {
		that.writeError(w, "jump", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.New(game.ID, game.State))
}

func (that *handlers) toggleOrder(w http.ResponseWriter, r *http.Request) {
	game, err := that.sessions.ToggleOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "toggleOrder", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.New(game.ID, game.State))
}

func (that *handlers) reset(w http.ResponseWriter, r *http.Request) {
	game, err := that.sessions.Reset(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "reset", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.New(game.ID, game.State))
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, status, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// StatusFromError - maps domain rejections to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrMoveOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
