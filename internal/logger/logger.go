package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/docent/internal/config"
)

// Setup configures the global slog logger based on environment.
func Setup(cfg *config.Config) *slog.Logger {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup with an explicit sink. TUI hosts use this
// to keep log lines off the terminal they are drawing on.
func SetupWithWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		// JSON format for production
		handler = slog.NewJSONHandler(w, opts)
	} else {
		// Text format for development
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
