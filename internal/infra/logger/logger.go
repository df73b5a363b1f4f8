package logger

import (
	"io"
	"log/slog"
)

// New returns the JSON slog logger the binaries share. env comes from
// APP_ENV: "dev" lowers the level to debug, anything else logs at info.
func New(w io.Writer, env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if env == "dev" {
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
