package command

import (
	"fmt"
	"time"

	"github.com/pixil98/corvax-lab/internal/messaging"
	"github.com/pixil98/go-errors"
)

type NatsConfig struct {
	Enabled      bool   `json:"enabled"`
	InProcess    bool   `json:"in_process"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
}

func (n *NatsConfig) Validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		_, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			el.Add(fmt.Errorf("nats: parsing start_timeout: %w", err))
		}
	}

	if n.Port < 0 || n.Port > 65535 {
		el.Add(fmt.Errorf("nats: port %d is out of range", n.Port))
	}

	return el.Err()
}

func (n *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if n.StartTimeout != "" {
		d, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if n.Host != "" {
		opts = append(opts, messaging.WithHost(n.Host))
	}
	if n.Port != 0 {
		opts = append(opts, messaging.WithPort(n.Port))
	}
	if n.InProcess {
		opts = append(opts, messaging.WithInProcess())
	}

	return messaging.NewNatsServer(opts...)
}
