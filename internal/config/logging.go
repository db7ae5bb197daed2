package config

import (
	"io"
	"log/slog"
	"os"
)

// OpenLogger opens the data-dir log file and returns a logger writing to
// it. The TUI owns stdout, so diagnostics never go there.
func (c *Config) OpenLogger(level slog.Level) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), f, nil
}
