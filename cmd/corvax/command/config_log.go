package command

import (
	"fmt"
	"log/slog"
	"os"
)

// LogConfig routes structured logs to a file. The terminal owns stdout, so
// logs are discarded when no path is set.
type LogConfig struct {
	Path  string     `json:"path"`
	Level slog.Level `json:"level"`
}

func (c *LogConfig) Validate() error {
	return nil
}

func (c *LogConfig) buildHandler() (slog.Handler, error) {
	if c.Path == "" {
		return slog.DiscardHandler, nil
	}

	f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", c.Path, err)
	}

	return slog.NewJSONHandler(f, &slog.HandlerOptions{Level: c.Level}), nil
}
