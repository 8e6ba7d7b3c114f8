package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/console"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/render"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

// main - hot seat game in the terminal. Logs go to stderr so they do not mix with the board.
func main() {
	conf := config.MustLoadEnv()

	// the board owns stdout; below debug only warnings and errors are worth printing
	level := conf.SlogLevel()
	if level > slog.LevelDebug && level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sessions := usecase.NewSessionUseCase(logger, repository.NewMemorySessionRepository())
	renderer := render.New(termenv.NewOutput(os.Stdout))

	if err := console.New(logger, sessions, renderer).Run(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}
