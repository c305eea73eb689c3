package command

import (
	"fmt"
	"time"

	"github.com/pixil98/corvax-lab/internal/driver"
	"github.com/pixil98/go-errors"
)

type Config struct {
	FrameInterval   string         `json:"frame_interval"`
	EffectsInterval string         `json:"effects_interval"`
	Server          ServerConfig   `json:"server"`
	Wallet          WalletConfig   `json:"wallet"`
	Nats            NatsConfig     `json:"nats"`
	Catalog         CatalogConfig  `json:"catalog"`
	Terminal        TerminalConfig `json:"terminal"`
	Log             LogConfig      `json:"log"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if _, err := parseInterval(c.FrameInterval, driver.DefaultFrameInterval); err != nil {
		el.Add(fmt.Errorf("frame_interval: %w", err))
	}
	if _, err := parseInterval(c.EffectsInterval, driver.DefaultEffectsInterval); err != nil {
		el.Add(fmt.Errorf("effects_interval: %w", err))
	}

	el.Add(c.Server.Validate())
	el.Add(c.Wallet.Validate())
	el.Add(c.Nats.Validate())
	el.Add(c.Catalog.Validate())
	el.Add(c.Terminal.Validate())
	el.Add(c.Log.Validate())

	return el.Err()
}

// parseInterval parses a positive duration, using def when s is empty.
func parseInterval(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parsing duration: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return d, nil
}
