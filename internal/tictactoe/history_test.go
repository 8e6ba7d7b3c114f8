package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

func playAll(t *testing.T, cells ...int) ([]entity.Move, int) {
	t.Helper()

	history, current := NewHistory(), 0
	for _, cell := range cells {
		var err error
		history, current, err = PlayAt(history, current, cell)
		require.NoError(t, err)
	}

	return history, current
}

func TestPlayAt(t *testing.T) {
	t.Run("Top row win", func(t *testing.T) {
		// Given: X plays 0, 1, 2 and O plays 4, 5
		history, current := playAll(t, 0, 4, 1, 5, 2)

		// When: evaluating the latest board
		outcome := Evaluate(history[current].Board)

		// Then: X wins on the top row
		assert.Equal(t, Won{Winner: x, Line: [3]int{0, 1, 2}}, outcome)
		assert.Equal(t, 5, current)
		assert.Len(t, history, 6)
	})

	t.Run("Draw after nine moves", func(t *testing.T) {
		// Given: nine moves without a triple
		history, current := playAll(t, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: evaluating the latest board
		outcome := Evaluate(history[current].Board)

		// Then: it is a draw
		assert.Equal(t, Draw{}, outcome)
		assert.Equal(t, "Draw!", StatusLine(outcome, NextMark(current)))
	})

	t.Run("Each entry differs from the previous in the last move cell", func(t *testing.T) {
		// Given: a few moves
		history, _ := playAll(t, 4, 0, 8)

		// Then: the history passes validation and records the played cells
		require.NoError(t, ValidateHistory(history))
		assert.Nil(t, history[0].LastMove)
		assert.Equal(t, 4, *history[1].LastMove)
		assert.Equal(t, o, history[2].Board[0])
		assert.Equal(t, 8, *history[3].LastMove)
	})

	t.Run("Playing after a jump discards the future moves", func(t *testing.T) {
		// Given: three moves and a jump back to move 1
		history, _ := playAll(t, 0, 4, 8)
		current, err := JumpTo(history, 1)
		require.NoError(t, err)

		// When: O plays a different cell
		next, nextCurrent, err := PlayAt(history, current, 2)

		// Then: the old move 2 and 3 are gone
		require.NoError(t, err)
		assert.Len(t, next, 3)
		assert.Equal(t, 2, nextCurrent)
		assert.Equal(t, 2, *next[2].LastMove)
		assert.Equal(t, o, next[2].Board[2])
		assert.Equal(t, e, next[2].Board[4])

		// And: the original history is intact
		assert.Len(t, history, 4)
		assert.Equal(t, 4, *history[2].LastMove)
	})

	t.Run("Rejected move keeps history", func(t *testing.T) {
		// Given: X in the center
		history, current := playAll(t, 4)

		// When: O plays the center
		next, nextCurrent, err := PlayAt(history, current, 4)

		// Then: nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, history, next)
		assert.Equal(t, current, nextCurrent)
	})

	t.Run("No moves after a win", func(t *testing.T) {
		// Given: X won on the top row
		history, current := playAll(t, 0, 4, 1, 5, 2)

		// When: O tries to play
		_, _, err := PlayAt(history, current, 8)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Replay after jump reproduces the live outcome", func(t *testing.T) {
		// Given: a won game
		history, current := playAll(t, 0, 4, 1, 5, 2)
		live := Evaluate(history[current].Board)

		// When: jumping away and back to the final move
		back, err := JumpTo(history, 2)
		require.NoError(t, err)
		assert.Equal(t, InProgress{}, Evaluate(history[back].Board))
		final, err := JumpTo(history, current)
		require.NoError(t, err)

		// Then: the same winner is computed
		assert.Equal(t, live, Evaluate(history[final].Board))
	})
}

func TestJumpTo(t *testing.T) {
	history, _ := playAll(t, 0, 1)

	for _, target := range []int{0, 1, 2} {
		current, err := JumpTo(history, target)
		require.NoError(t, err)
		assert.Equal(t, target, current)
	}

	for _, target := range []int{-1, 3} {
		_, err := JumpTo(history, target)
		assert.ErrorIs(t, err, apperror.ErrMoveOutOfRange)
	}
}

func TestValidateHistory(t *testing.T) {
	one, two := 1, 2

	t.Run("Empty history", func(t *testing.T) {
		assert.ErrorIs(t, ValidateHistory(nil), apperror.ErrInvalidSession)
	})

	t.Run("Start entry must be empty", func(t *testing.T) {
		history := []entity.Move{{Board: entity.Board{x}}}
		assert.ErrorIs(t, ValidateHistory(history), apperror.ErrInvalidSession)
	})

	t.Run("Entry changing two cells", func(t *testing.T) {
		history := []entity.Move{
			{},
			{Board: entity.Board{e, x, x}, LastMove: &one},
		}
		assert.ErrorIs(t, ValidateHistory(history), apperror.ErrInvalidSession)
	})

	t.Run("Entry with the wrong mark", func(t *testing.T) {
		history := []entity.Move{
			{},
			{Board: entity.Board{e, e, o}, LastMove: &two},
		}
		assert.ErrorIs(t, ValidateHistory(history), apperror.ErrInvalidSession)
	})
}
