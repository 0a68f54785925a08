package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	"flowrpg/internal/platform/config"
)

// New builds the root logger writing to w.
func New(cfg config.Config, w io.Writer) hclog.Logger {
	level := hclog.LevelFromString(cfg.LogLevel)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "flowrpg",
		Level:      level,
		Output:     w,
		JSONFormat: cfg.LogJSON,
	})
}

// NewFile builds a logger appending to cfg.LogPath. The TUI owns the terminal,
// so it cannot log to stderr. The returned closer releases the file.
func NewFile(cfg config.Config) (hclog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(cfg, f), f, nil
}
