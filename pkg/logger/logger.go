package logger

import (
	"log/slog"
	"os"
)

var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init replaces the package logger. Production runs at Info, everything else at Debug.
func Init(production bool) {
	level := slog.LevelDebug
	if production {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
