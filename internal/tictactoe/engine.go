package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// Outcome - result of evaluating a board: Won, Draw or InProgress.
type Outcome interface {
	Status() string
}

type Won struct {
	Winner string
	Line   [3]int
}

type Draw struct{}

type InProgress struct{}

func (Won) Status() string        { return entity.StatusWon }
func (Draw) Status() string       { return entity.StatusDraw }
func (InProgress) Status() string { return entity.StatusPlaying }

// Evaluate - returns the first winning triple in WinCombos order, a draw for a full board, or InProgress.
func Evaluate(board entity.Board) Outcome {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return Won{Winner: a, Line: combo}
		}
	}

	if board.IsFull() {
		return Draw{}
	}

	return InProgress{}
}

// IsTerminal - reports whether no further move can be played on the board.
func IsTerminal(board entity.Board) bool {
	_, ongoing := Evaluate(board).(InProgress)
	return !ongoing
}

// ApplyMove - returns a copy of board with mark placed at index. The input board is never modified.
func ApplyMove(board entity.Board, index int, mark string) (entity.Board, error) {
	if index < 0 || index >= entity.BoardSize {
		return board, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	if mark != entity.PlayerX && mark != entity.PlayerO {
		return board, fmt.Errorf("%w: mark %q", apperror.ErrInvalidCell, mark)
	}

	if board[index] != entity.EmptyCell {
		return board, apperror.ErrCellOccupied
	}

	if _, won := Evaluate(board).(Won); won {
		return board, apperror.ErrGameFinished
	}

	next := board
	next[index] = mark

	return next, nil
}

// NextMark - X moves on even history positions, O on odd ones.
func NextMark(currentMove int) string {
	if currentMove%2 == 0 {
		return entity.PlayerX
	}

	return entity.PlayerO
}
