// Package logger holds the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is the shared logger. Packages log through it directly; main replaces
// it once the config is loaded.
var Log *slog.Logger

var level slog.LevelVar

func init() {
	Initialize("info", false)
}

// Initialize configures the global logger. Unknown level names fall back to
// info rather than failing startup.
func Initialize(levelName string, useJSON bool) {
	level.Set(parseLevel(levelName))

	opts := &slog.HandlerOptions{Level: &level, AddSource: true}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if useJSON {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
