package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

var (
	errMissingCell = errors.New("payload must contain cell")
	errMissingMove = errors.New("payload must contain move")
)

func (that *Server) handleState(ctx context.Context, gameID string, _ RequestPayload) (*usecase.Game, error) {
	return that.sessions.GetGame(ctx, gameID)
}

func (that *Server) handlePlay(ctx context.Context, gameID string, payload RequestPayload) (*usecase.Game, error) {
	if payload.Cell == nil {
		return nil, errMissingCell
	}

	return that.sessions.Play(ctx, gameID, *payload.Cell)
}

func (that *Server) handleJump(ctx context.Context, gameID string, payload RequestPayload) (*usecase.Game, error) {
	if payload.Move == nil {
		return nil, errMissingMove
	}

	return that.sessions.JumpTo(ctx, gameID, *payload.Move)
}

func (that *Server) handleOrder(ctx context.Context, gameID string, _ RequestPayload) (*usecase.Game, error) {
	return that.sessions.ToggleOrder(ctx, gameID)
}

func (that *Server) handleReset(ctx context.Context, gameID string, _ RequestPayload) (*usecase.Game, error) {
	return that.sessions.Reset(ctx, gameID)
}
