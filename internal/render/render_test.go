package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

func newASCIIRenderer() *Renderer {
	return New(termenv.NewOutput(&bytes.Buffer{}, termenv.WithProfile(termenv.Ascii)))
}

func TestRenderer_Board(t *testing.T) {
	t.Run("Empty cells show their index", func(t *testing.T) {
		out := newASCIIRenderer().Board(entity.Board{}, nil)

		assert.Equal(t, " 0 | 1 | 2 \n---+---+---\n 3 | 4 | 5 \n---+---+---\n 6 | 7 | 8 \n", out)
	})

	t.Run("Winning line is bracketed", func(t *testing.T) {
		// Given: X owns the top row, O has two cells
		board := entity.Board{
			entity.PlayerX, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		}

		// When: rendering with the winning line
		out := newASCIIRenderer().Board(board, []int{0, 1, 2})

		// Then: only the line cells are highlighted
		lines := strings.Split(out, "\n")
		assert.Equal(t, "[X]|[X]|[X]", lines[0])
		assert.Equal(t, " O | O | 5 ", lines[2])
	})

	t.Run("Colors are emitted for true color terminals", func(t *testing.T) {
		renderer := New(termenv.NewOutput(&bytes.Buffer{}, termenv.WithProfile(termenv.TrueColor)))

		out := renderer.Board(entity.Board{entity.PlayerX}, []int{0})

		assert.Contains(t, out, "\x1b[")
		assert.Contains(t, out, "[X]")
	})
}

func TestRenderer_Game(t *testing.T) {
	// Given: X won on the top row
	state := tictactoe.NewState()
	for _, cell := range []int{0, 4, 1, 5, 2} {
		var err error
		state, err = state.Play(cell)
		require.NoError(t, err)
	}

	// When: rendering the whole game in descending order
	out := newASCIIRenderer().Game(state.ToggleOrder())

	// Then: the status, the toggle caption and the reversed move list are shown
	assert.Contains(t, out, "Winner: X")
	assert.Contains(t, out, "[order] Sort ascending")
	assert.Less(t, strings.Index(out, "You are at move #5"), strings.Index(out, "0. Go to game start"))
	assert.Contains(t, out, "1. Go to move #1 (1, 1)")
}
