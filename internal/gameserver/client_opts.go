package gameserver

import (
	"net/http"
	"time"
)

type ClientOpt func(*Client)

// WithHTTPClient replaces the underlying http client.
func WithHTTPClient(hc *http.Client) ClientOpt {
	return func(c *Client) {
		c.http = hc
	}
}

// WithSessionCookie attaches the login session cookie to every request.
func WithSessionCookie(name, value string) ClientOpt {
	return func(c *Client) {
		c.cookie = &http.Cookie{Name: name, Value: value}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) ClientOpt {
	return func(c *Client) {
		c.http.Timeout = d
	}
}
