package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON structured logger writing to stdout. The level defaults
// to info and can be lowered to debug via SUBGUARD_LOG_LEVEL.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("SUBGUARD_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
