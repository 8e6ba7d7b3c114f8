package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// State - immutable game state: move history, the viewed move and the move list order.
// Every transition returns a new State and leaves the receiver untouched.
type State struct {
	history     []entity.Move
	currentMove int
	ascending   bool
}

func NewState() State {
	return State{
		history:   NewHistory(),
		ascending: true,
	}
}

// Restore - rebuilds a State from stored fields, rejecting histories that break the move invariants.
func Restore(history []entity.Move, currentMove int, ascending bool) (State, error) {
	if err := ValidateHistory(history); err != nil {
		return State{}, err
	}

	if currentMove < 0 || currentMove >= len(history) {
		return State{}, fmt.Errorf("%w: current move %d", apperror.ErrInvalidSession, currentMove)
	}

	return State{
		history:     cloneHistory(history),
		currentMove: currentMove,
		ascending:   ascending,
	}, nil
}

func (that State) Play(index int) (State, error) {
	history, currentMove, err := PlayAt(that.history, that.currentMove, index)
	if err != nil {
		return that, err
	}

	return State{history: history, currentMove: currentMove, ascending: that.ascending}, nil
}

func (that State) JumpTo(move int) (State, error) {
	currentMove, err := JumpTo(that.history, move)
	if err != nil {
		return that, err
	}

	return State{history: that.history, currentMove: currentMove, ascending: that.ascending}, nil
}

func (that State) ToggleOrder() State {
	return State{history: that.history, currentMove: that.currentMove, ascending: !that.ascending}
}

func (that State) Board() entity.Board {
	return that.history[that.currentMove].Board
}

func (that State) Outcome() Outcome {
	return Evaluate(that.Board())
}

// IsTerminal - reports whether the viewed board is won or drawn.
func (that State) IsTerminal() bool {
	return IsTerminal(that.Board())
}

func (that State) NextMark() string {
	return NextMark(that.currentMove)
}

func (that State) CurrentMove() int {
	return that.currentMove
}

func (that State) Ascending() bool {
	return that.ascending
}

func (that State) Len() int {
	return len(that.history)
}

// History - copy of the move log.
func (that State) History() []entity.Move {
	return cloneHistory(that.history)
}

func cloneHistory(history []entity.Move) []entity.Move {
	cloned := make([]entity.Move, len(history))
	copy(cloned, history)

	return cloned
}
