package entity

import "time"

const (
	PlayerX   = "X"
	PlayerO   = "O"
	EmptyCell = ""
)

const (
	StatusPlaying = "playing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

const BoardSize = 9

// WinCombos - every triple checked for a win. The order is the evaluation priority:
// rows top to bottom, columns left to right, then both diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - 9 cells in row-major order, index = row*3 + col.
type Board [BoardSize]string

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Move - board snapshot after a turn. LastMove is nil for the game start entry.
type Move struct {
	Board    Board `json:"board"`
	LastMove *int  `json:"last_move"`
}

// Session - persisted game state: the history log, the viewed move and the display order.
type Session struct {
	ID          string    `json:"id"`
	History     []Move    `json:"history"`
	CurrentMove int       `json:"current_move"`
	Ascending   bool      `json:"ascending"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
