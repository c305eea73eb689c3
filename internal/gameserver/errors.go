package gameserver

import (
	"errors"
	"time"
)

// ErrTransport marks network and decoding failures. The request may or may
// not have reached the server.
var ErrTransport = errors.New("game server unreachable")

// APIError is a structured rejection returned by the game server.
type APIError struct {
	Status      int
	Message     string
	RemainingMs int64
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "game server rejected request"
	}
	return e.Message
}

// CooldownActive reports whether the rejection carries a remaining cooldown hint.
func (e *APIError) CooldownActive() bool {
	return e.RemainingMs > 0
}

func (e *APIError) Remaining() time.Duration {
	return time.Duration(e.RemainingMs) * time.Millisecond
}
