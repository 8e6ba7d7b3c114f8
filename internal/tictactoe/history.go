package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// NewHistory - history with the single game start entry.
func NewHistory() []entity.Move {
	return []entity.Move{{Board: entity.Board{}}}
}

// PlayAt - plays the next mark at index on the board of currentMove.
// Moves after currentMove are discarded. On rejection the input history is returned as is.
func PlayAt(history []entity.Move, currentMove, index int) ([]entity.Move, int, error) {
	if currentMove < 0 || currentMove >= len(history) {
		return history, currentMove, fmt.Errorf("%w: move %d", apperror.ErrMoveOutOfRange, currentMove)
	}

	board, err := ApplyMove(history[currentMove].Board, index, NextMark(currentMove))
	if err != nil {
		return history, currentMove, fmt.Errorf("invalid turn: %w", err)
	}

	// fresh backing array, so the caller's history is never overwritten by append
	next := make([]entity.Move, currentMove+1, currentMove+2)
	copy(next, history[:currentMove+1])

	lastMove := index
	next = append(next, entity.Move{Board: board, LastMove: &lastMove})

	return next, len(next) - 1, nil
}

// JumpTo - validates target against the history bounds and returns it as the new current move.
func JumpTo(history []entity.Move, target int) (int, error) {
	if target < 0 || target >= len(history) {
		return 0, fmt.Errorf("%w: move %d of %d", apperror.ErrMoveOutOfRange, target, len(history))
	}

	return target, nil
}

// ValidateHistory - checks that history starts with an empty board and that every
// entry differs from the previous one only in its last move cell, with the right mark.
func ValidateHistory(history []entity.Move) error {
	if len(history) == 0 {
		return fmt.Errorf("%w: empty history", apperror.ErrInvalidSession)
	}

	if history[0].Board != (entity.Board{}) || history[0].LastMove != nil {
		return fmt.Errorf("%w: history must start with an empty board", apperror.ErrInvalidSession)
	}

	for i := 1; i < len(history); i++ {
		move := history[i]
		if move.LastMove == nil {
			return fmt.Errorf("%w: move %d has no last move", apperror.ErrInvalidSession, i)
		}

		expected, err := ApplyMove(history[i-1].Board, *move.LastMove, NextMark(i-1))
		if err != nil {
			return fmt.Errorf("%w: move %d: %w", apperror.ErrInvalidSession, i, err)
		}

		if expected != move.Board {
			return fmt.Errorf("%w: move %d changes more than one cell", apperror.ErrInvalidSession, i)
		}
	}

	return nil
}
