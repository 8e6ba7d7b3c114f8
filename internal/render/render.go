package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const (
	highlightColor = "#ffff00"
	markXColor     = "#5fafff"
	markOColor     = "#ff875f"
)

// Renderer - draws game state for a terminal. Colors degrade to the profile of the output.
type Renderer struct {
	out *termenv.Output
}

func New(out *termenv.Output) *Renderer {
	return &Renderer{out: out}
}

// Board - 3x3 grid; empty cells show their index, winning cells are bracketed and highlighted.
func (that *Renderer) Board(board entity.Board, line []int) string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteString("|")
			}

			index := row*3 + col
			sb.WriteString(that.cell(board[index], index, slices.Contains(line, index)))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

func (that *Renderer) cell(mark string, index int, highlight bool) string {
	if mark == entity.EmptyCell {
		return that.out.String(fmt.Sprintf(" %d ", index)).Faint().String()
	}

	text := " " + mark + " "
	if highlight {
		text = "[" + mark + "]"
	}

	style := that.out.String(text).Bold()

	switch mark {
	case entity.PlayerX:
		style = style.Foreground(that.out.Color(markXColor))
	case entity.PlayerO:
		style = style.Foreground(that.out.Color(markOColor))
	}

	if highlight {
		style = style.Background(that.out.Color(highlightColor))
	}

	return style.String()
}

func (that *Renderer) Status(state tictactoe.State) string {
	status := that.out.String(tictactoe.StatusLine(state.Outcome(), state.NextMark()))

	if state.IsTerminal() {
		status = status.Bold()
	}

	return status.String()
}

// Moves - one line per history entry in display order, the current move marked with '>'.
func (that *Renderer) Moves(state tictactoe.State) string {
	var sb strings.Builder

	for _, entry := range tictactoe.MoveList(state) {
		if entry.Current {
			sb.WriteString("> ")
			sb.WriteString(that.out.String(entry.Label).Underline().String())
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s", entry.Move, entry.Label))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// Game - board, status line, order toggle caption and move list.
func (that *Renderer) Game(state tictactoe.State) string {
	var sb strings.Builder

	sb.WriteString(that.Board(state.Board(), tictactoe.WinningLine(state.Outcome())))
	sb.WriteString("\n")
	sb.WriteString(that.Status(state))
	sb.WriteString("\n\n")
	sb.WriteString("[order] " + tictactoe.OrderToggleLabel(state.Ascending()) + "\n")
	sb.WriteString(that.Moves(state))

	return sb.String()
}
