// Package logging builds the application's root hclog logger.
// The TUI owns the terminal, so logs go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/ramanasai/soldier/internal/config"
)

// New opens the log file for cfg and returns the root logger and its closer.
func New(cfg config.Config) (hclog.Logger, io.Closer, error) {
	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(cfg.Log, f), f, nil
}

// NewWriter builds a logger writing to w.
func NewWriter(cfg config.LogConfig, w io.Writer) hclog.Logger {
	level := hclog.LevelFromString(cfg.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "soldier",
		Level:      level,
		Output:     w,
		JSONFormat: cfg.JSON,
	})
}
