package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"stream_finder/internal/config"
	"stream_finder/internal/presenter"
	"stream_finder/internal/prompt"
	"stream_finder/internal/service"
	"stream_finder/internal/source/helix"
)

// exitInterrupted is the status of a run stopped by SIGINT or SIGTERM.
const exitInterrupted = 130

func main() {
	ctx, stop := interruptContext()
	code := run(ctx, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// interruptContext is canceled by the first SIGINT or SIGTERM. Prompts and
// requests waiting on it return, so the run ends instead of ignoring the signal.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) int {
	// Setup logger
	logger := setupLogger(stderr, "warn")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	logger = setupLogger(stderr, cfg.LogLevel)

	source := helix.New(helix.Config{
		BaseURL:  cfg.API.BaseURL,
		ClientID: cfg.Twitch.ClientID,
		Token:    cfg.Twitch.Token,
		PageSize: cfg.API.PageSize,
		Timeout:  cfg.API.Timeout,
	}, logger)

	searchService := service.NewSearchService(
		source,
		prompt.NewSelector(stdin, stdout),
		presenter.New(stdout),
		stdout,
		cfg.BlockedNames,
		logger,
	)

	_, err = searchService.Run(ctx)
	return exitCode(logger, err)
}

// exitCode maps the outcome of a run to the process exit status. A listing
// without data ends the run quietly with status 0.
func exitCode(logger *slog.Logger, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, helix.ErrNoData):
		logger.Info("nothing found", "reason", err)
		return 0
	case errors.Is(err, context.Canceled):
		logger.Info("interrupted", "reason", err)
		return exitInterrupted
	default:
		logger.Error("search failed", "error", err)
		return 1
	}
}

func setupLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(w, opts)
	return slog.New(handler)
}
