package command

import (
	"fmt"

	"github.com/pixil98/corvax-lab/internal/terminal"
	"github.com/pixil98/go-errors"
)

type TerminalConfig struct {
	// HoldWindow is how long a movement key counts as held after its last
	// repeat.
	HoldWindow string `json:"hold_window"`
	LogRows    int    `json:"log_rows"`
	LogSize    int    `json:"log_size"`
}

func (c *TerminalConfig) Validate() error {
	el := errors.NewErrorList()

	if c.HoldWindow != "" {
		if _, err := parseInterval(c.HoldWindow, 0); err != nil {
			el.Add(fmt.Errorf("terminal: hold_window: %w", err))
		}
	}
	if c.LogRows < 0 {
		el.Add(fmt.Errorf("terminal: log_rows must not be negative"))
	}
	if c.LogSize < 0 {
		el.Add(fmt.Errorf("terminal: log_size must not be negative"))
	}

	return el.Err()
}

func (c *TerminalConfig) options() ([]terminal.TerminalOpt, error) {
	var opts []terminal.TerminalOpt
	if c.HoldWindow != "" {
		d, err := parseInterval(c.HoldWindow, 0)
		if err != nil {
			return nil, fmt.Errorf("parsing hold_window: %w", err)
		}
		opts = append(opts, terminal.WithHoldWindow(d))
	}
	if c.LogRows > 0 {
		opts = append(opts, terminal.WithLogRows(c.LogRows))
	}
	return opts, nil
}
