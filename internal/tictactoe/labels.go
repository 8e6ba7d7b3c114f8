package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// MoveEntry - one line of the move list as shown to the player.
type MoveEntry struct {
	Move    int    `json:"move"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
	Col     int    `json:"col,omitempty"`
	Row     int    `json:"row,omitempty"`
}

// Location - 1-indexed (col, row) of a board index.
func Location(index int) (int, int) {
	return index%3 + 1, index/3 + 1
}

func MoveLabel(move int, lastMove *int, current bool) string {
	switch {
	case current:
		return fmt.Sprintf("You are at move #%d", move)
	case lastMove == nil:
		return "Go to game start"
	default:
		col, row := Location(*lastMove)
		return fmt.Sprintf("Go to move #%d (%d, %d)", move, col, row)
	}
}

// MoveList - labelled history entries, reversed when the state is in descending order.
func MoveList(state State) []MoveEntry {
	entries := make([]MoveEntry, 0, len(state.history))

	for move, step := range state.history {
		entry := MoveEntry{
			Move:    move,
			Label:   MoveLabel(move, step.LastMove, move == state.currentMove),
			Current: move == state.currentMove,
		}

		if step.LastMove != nil {
			entry.Col, entry.Row = Location(*step.LastMove)
		}

		entries = append(entries, entry)
	}

	if !state.ascending {
		slices.Reverse(entries)
	}

	return entries
}

func StatusLine(outcome Outcome, next string) string {
	switch result := outcome.(type) {
	case Won:
		return "Winner: " + result.Winner
	case Draw:
		return "Draw!"
	default:
		return "Next player: " + next
	}
}

// OrderToggleLabel - caption of the control that flips the move list order.
func OrderToggleLabel(ascending bool) string {
	if ascending {
		return "Sort descending"
	}

	return "Sort ascending"
}

// WinningLine - indices to highlight, nil when nobody has won.
func WinningLine(outcome Outcome) []int {
	if won, ok := outcome.(Won); ok {
		return won.Line[:]
	}

	return nil
}

// Winner - winning mark or entity.EmptyCell.
func Winner(outcome Outcome) string {
	if won, ok := outcome.(Won); ok {
		return won.Winner
	}

	return entity.EmptyCell
}
