package view

import (
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

// Game - everything a front-end needs to draw the board, the status and the move list.
type Game struct {
	ID          string                `json:"id"`
	Board       entity.Board          `json:"board"`
	Status      string                `json:"status"`
	Winner      string                `json:"winner,omitempty"`
	Line        []int                 `json:"line,omitempty"`
	NextPlayer  string                `json:"next_player,omitempty"`
	StatusLine  string                `json:"status_line"`
	CurrentMove int                   `json:"current_move"`
	Ascending   bool                  `json:"ascending"`
	OrderLabel  string                `json:"order_label"`
	Moves       []tictactoe.MoveEntry `json:"moves"`
}

func New(id string, state tictactoe.State) *Game {
	outcome := state.Outcome()

	game := &Game{
		ID:          id,
		Board:       state.Board(),
		Status:      outcome.Status(),
		Winner:      tictactoe.Winner(outcome),
		Line:        tictactoe.WinningLine(outcome),
		StatusLine:  tictactoe.StatusLine(outcome, state.NextMark()),
		CurrentMove: state.CurrentMove(),
		Ascending:   state.Ascending(),
		OrderLabel:  tictactoe.OrderToggleLabel(state.Ascending()),
		Moves:       tictactoe.MoveList(state),
	}

	if !state.IsTerminal() {
		game.NextPlayer = state.NextMark()
	}

	return game
}
