package observability

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/couchcryptid/uranium-map/internal/config"
)

// NewLogger builds the run logger: colored text via tint for LOG_FORMAT=text,
// JSON otherwise. runID is attached to every record.
func NewLogger(w io.Writer, cfg *config.Config, runID string) *slog.Logger {
	level := ParseLevel(cfg.LogLevel)

	var h slog.Handler
	if cfg.LogFormat == "text" {
		h = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(h).With("app", config.AppName, "run_id", runID)
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
