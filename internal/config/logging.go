package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger: JSON in production, text otherwise.
func NewLogger(a App, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: a.LogLevel}
	var h slog.Handler
	if a.Production() {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("env", a.Env)
}
