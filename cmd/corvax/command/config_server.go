package command

import (
	"fmt"
	"net/url"

	"github.com/pixil98/corvax-lab/internal/gameserver"
	"github.com/pixil98/go-errors"
)

type ServerConfig struct {
	BaseURL       string `json:"base_url"`
	SessionCookie string `json:"session_cookie"`
	SessionValue  string `json:"session_value"`
	Timeout       string `json:"timeout"`
}

func (c *ServerConfig) Validate() error {
	el := errors.NewErrorList()

	if c.BaseURL == "" {
		el.Add(fmt.Errorf("server: base_url is required"))
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		el.Add(fmt.Errorf("server: base_url %q must be an absolute url", c.BaseURL))
	}

	if c.SessionValue != "" && c.SessionCookie == "" {
		el.Add(fmt.Errorf("server: session_cookie is required with session_value"))
	}

	if c.Timeout != "" {
		if _, err := parseInterval(c.Timeout, 0); err != nil {
			el.Add(fmt.Errorf("server: timeout: %w", err))
		}
	}

	return el.Err()
}

func (c *ServerConfig) buildClient() (*gameserver.Client, error) {
	var opts []gameserver.ClientOpt
	if c.Timeout != "" {
		d, err := parseInterval(c.Timeout, 0)
		if err != nil {
			return nil, fmt.Errorf("parsing timeout: %w", err)
		}
		opts = append(opts, gameserver.WithTimeout(d))
	}
	if c.SessionCookie != "" {
		opts = append(opts, gameserver.WithSessionCookie(c.SessionCookie, c.SessionValue))
	}

	return gameserver.NewClient(c.BaseURL, opts...)
}
