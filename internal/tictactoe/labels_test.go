package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveLabel(t *testing.T) {
	five := 5

	assert.Equal(t, "Go to game start", MoveLabel(0, nil, false))
	assert.Equal(t, "You are at move #0", MoveLabel(0, nil, true))
	assert.Equal(t, "Go to move #3 (3, 2)", MoveLabel(3, &five, false))
	assert.Equal(t, "You are at move #3", MoveLabel(3, &five, true))
}

func TestLocation(t *testing.T) {
	col, row := Location(5)
	assert.Equal(t, 3, col)
	assert.Equal(t, 2, row)

	col, row = Location(0)
	assert.Equal(t, 1, col)
	assert.Equal(t, 1, row)

	col, row = Location(7)
	assert.Equal(t, 2, col)
	assert.Equal(t, 3, row)
}

func TestMoveList(t *testing.T) {
	// Given: two moves, viewing move 1
	state, err := NewState().Play(5)
	require.NoError(t, err)
	state, err = state.Play(0)
	require.NoError(t, err)
	state, err = state.JumpTo(1)
	require.NoError(t, err)

	t.Run("Ascending order", func(t *testing.T) {
		entries := MoveList(state)

		assert.Equal(t, []MoveEntry{
			{Move: 0, Label: "Go to game start"},
			{Move: 1, Label: "You are at move #1", Current: true, Col: 3, Row: 2},
			{Move: 2, Label: "Go to move #2 (1, 1)", Col: 1, Row: 1},
		}, entries)
	})

	t.Run("Descending order reverses display only", func(t *testing.T) {
		descending := state.ToggleOrder()

		entries := MoveList(descending)

		require.Len(t, entries, 3)
		assert.Equal(t, 2, entries[0].Move)
		assert.Equal(t, 0, entries[2].Move)
		assert.Equal(t, state.History(), descending.History())
		assert.Equal(t, 1, descending.CurrentMove())
	})
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "Winner: O", StatusLine(Won{Winner: o, Line: [3]int{2, 4, 6}}, x))
	assert.Equal(t, "Draw!", StatusLine(Draw{}, x))
	assert.Equal(t, "Next player: O", StatusLine(InProgress{}, o))
}

func TestOrderToggleLabel(t *testing.T) {
	assert.Equal(t, "Sort descending", OrderToggleLabel(true))
	assert.Equal(t, "Sort ascending", OrderToggleLabel(false))
}

func TestWinningLine(t *testing.T) {
	assert.Equal(t, []int{2, 4, 6}, WinningLine(Won{Winner: o, Line: [3]int{2, 4, 6}}))
	assert.Nil(t, WinningLine(InProgress{}))
}
