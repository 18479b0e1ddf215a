package utils

import (
	"log/slog"
	"os"
)

// Logger wraps slog with env-selected output: JSON at info level in prod,
// text at debug level everywhere else.
type Logger struct {
	*slog.Logger
}

func NewLogger() *Logger {
	var handler slog.Handler
	if os.Getenv("APP_ENV") == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return &Logger{slog.New(handler)}
}
