package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// Game - a stored session together with its restored state.
type Game struct {
	ID        string
	State     tictactoe.State
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SessionUseCase interface {
	NewGame(ctx context.Context) (*Game, error)
	GetGame(ctx context.Context, id string) (*Game, error)
	DeleteGame(ctx context.Context, id string) error

	Play(ctx context.Context, id string, cell int) (*Game, error)
	JumpTo(ctx context.Context, id string, move int) (*Game, error)
	ToggleOrder(ctx context.Context, id string) (*Game, error)
	Reset(ctx context.Context, id string) (*Game, error)
}

type sessionUseCase struct {
	logger *slog.Logger
	repo   sessionRepo
	now    func() time.Time

	// serializes load-transition-save so concurrent actions on one session never interleave
	mu sync.Mutex
}

func NewSessionUseCase(logger *slog.Logger, repo sessionRepo) SessionUseCase {
	return &sessionUseCase{
		logger: logger.With("component", "session_usecase"),
		repo:   repo,
		now:    time.Now,
	}
}

func (that *sessionUseCase) NewGame(ctx context.Context) (*Game, error) {
	now := that.now().UTC()
	state := tictactoe.NewState()

	session := &entity.Session{
		ID:          uuid.NewString(),
		History:     state.History(),
		CurrentMove: state.CurrentMove(),
		Ascending:   state.Ascending(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := that.repo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("game created", "session_id", session.ID)

	return &Game{ID: session.ID, State: state, CreatedAt: now, UpdatedAt: now}, nil
}

func (that *sessionUseCase) GetGame(ctx context.Context, id string) (*Game, error) {
	session, state, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Game{ID: session.ID, State: state, CreatedAt: session.CreatedAt, UpdatedAt: session.UpdatedAt}, nil
}

func (that *sessionUseCase) DeleteGame(ctx context.Context, id string) error {
	if err := that.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("game deleted", "session_id", id)

	return nil
}

func (that *sessionUseCase) Play(ctx context.Context, id string, cell int) (*Game, error) {
	game, err := that.update(ctx, id, func(state tictactoe.State) (tictactoe.State, error) {
		return state.Play(cell)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	that.logger.Debug("move played",
		"session_id", id,
		"cell", cell,
		"moves", game.State.Len(),
		"status", game.State.Outcome().Status(),
	)

	return game, nil
}

func (that *sessionUseCase) JumpTo(ctx context.Context, id string, move int) (*Game, error) {
	game, err := that.update(ctx, id, func(state tictactoe.State) (tictactoe.State, error) {
		return state.JumpTo(move)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to jump to move: %w", err)
	}

	return game, nil
}

func (that *sessionUseCase) ToggleOrder(ctx context.Context, id string) (*Game, error) {
	game, err := that.update(ctx, id, func(state tictactoe.State) (tictactoe.State, error) {
		return state.ToggleOrder(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle order: %w", err)
	}

	return game, nil
}

// Reset - starts over on the same session, keeping the chosen order.
func (that *sessionUseCase) Reset(ctx context.Context, id string) (*Game, error) {
	game, err := that.update(ctx, id, func(state tictactoe.State) (tictactoe.State, error) {
		fresh := tictactoe.NewState()
		if !state.Ascending() {
			fresh = fresh.ToggleOrder()
		}

		return fresh, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	return game, nil
}

func (that *sessionUseCase) update(
	ctx context.Context,
	id string,
	transition func(tictactoe.State) (tictactoe.State, error),
) (*Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, state, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := transition(state)
	if err != nil {
		return nil, err
	}

	session.History = next.History()
	session.CurrentMove = next.CurrentMove()
	session.Ascending = next.Ascending()
	session.UpdatedAt = that.now().UTC()

	if err = that.repo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return &Game{ID: session.ID, State: next, CreatedAt: session.CreatedAt, UpdatedAt: session.UpdatedAt}, nil
}

func (that *sessionUseCase) load(ctx context.Context, id string) (*entity.Session, tictactoe.State, error) {
	session, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return nil, tictactoe.State{}, fmt.Errorf("failed to get session: %w", err)
	}

	state, err := tictactoe.Restore(session.History, session.CurrentMove, session.Ascending)
	if err != nil {
		that.logger.Error("stored session is corrupted", "session_id", id, "error", err)
		return nil, tictactoe.State{}, fmt.Errorf("failed to restore session: %w", err)
	}

	return session, state, nil
}
