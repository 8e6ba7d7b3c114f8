package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

var errUnknownCommand = errors.New("unknown command")

const help = `commands:
  <cell>          play cell 0-8
  <col> <row>     play by 1-indexed column and row
  jump <n>        go to move n
  order           toggle move list order
  reset           start over
  help            show this text
  quit            exit
`

type sessionUseCase interface {
	NewGame(ctx context.Context) (*usecase.Game, error)

	Play(ctx context.Context, id string, cell int) (*usecase.Game, error)
	JumpTo(ctx context.Context, id string, move int) (*usecase.Game, error)
	ToggleOrder(ctx context.Context, id string) (*usecase.Game, error)
	Reset(ctx context.Context, id string) (*usecase.Game, error)
}

type renderer interface {
	Game(state tictactoe.State) string
}

// Console - line-oriented hot seat game on a reader/writer pair.
type Console struct {
	logger   *slog.Logger
	sessions sessionUseCase
	render   renderer
}

func New(logger *slog.Logger, sessions sessionUseCase, render renderer) *Console {
	return &Console{
		logger:   logger.With("component", "console"),
		sessions: sessions,
		render:   render,
	}
}

// Run - plays until quit, EOF or ctx cancellation.
func (that *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	game, err := that.sessions.NewGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	fmt.Fprint(out, help)
	fmt.Fprintln(out)
	fmt.Fprint(out, that.render.Game(game.State))

	done := make(chan struct{})
	defer close(done)

	lines, readErr := scanLines(in, done)

	for {
		fmt.Fprint(out, "> ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case next, ok := <-lines:
			if !ok {
				if err = <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				return nil
			}
			line = next
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		if fields[0] == "help" {
			fmt.Fprint(out, help)
			continue
		}

		next, err := that.execute(ctx, game.ID, fields)
		if err != nil {
			that.logger.Debug("command rejected", "command", fields, "error", err)
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		game = next
		fmt.Fprint(out, that.render.Game(game.State))
	}
}

// scanLines - reads in on its own goroutine so a blocked read never delays cancellation.
// lines is closed at EOF, after the scan error has been put on readErr.
// Closing done stops delivery; a Read already blocked in returns only when in does.
func scanLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}

		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func (that *Console) execute(ctx context.Context, id string, fields []string) (*usecase.Game, error) {
	switch {
	case fields[0] == "order" && len(fields) == 1:
		return that.sessions.ToggleOrder(ctx, id)
	case fields[0] == "reset" && len(fields) == 1:
		return that.sessions.Reset(ctx, id)
	case fields[0] == "jump" && len(fields) == 2:
		move, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: move must be a number", errUnknownCommand)
		}

		return that.sessions.JumpTo(ctx, id, move)
	}

	cell, err := ParseCell(fields)
	if err != nil {
		return nil, err
	}

	return that.sessions.Play(ctx, id, cell)
}

// ParseCell - accepts "<index>", "play <index>" or "<col> <row>" with 1-indexed col and row.
func ParseCell(fields []string) (int, error) {
	if len(fields) > 0 && fields[0] == "play" {
		fields = fields[1:]
	}

	numbers := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errUnknownCommand, strings.Join(fields, " "))
		}
		numbers = append(numbers, n)
	}

	switch len(numbers) {
	case 1:
		return numbers[0], nil
	case 2:
		col, row := numbers[0], numbers[1]
		if col < 1 || col > 3 || row < 1 || row > 3 {
			return 0, fmt.Errorf("%w: column and row must be within 1-3", errUnknownCommand)
		}

		return (row-1)*3 + (col - 1), nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownCommand, strings.Join(fields, " "))
	}
}
