package terminal

import (
	"time"

	"github.com/pixil98/corvax-lab/internal/sim"
)

// holdTracker turns key repeat into held keys. Terminals report presses
// only, so a key counts as held until no repeat arrives within the window.
type holdTracker struct {
	window time.Duration
	held   map[sim.Key]time.Time
}

func newHoldTracker(window time.Duration) *holdTracker {
	return &holdTracker{
		window: window,
		held:   map[sim.Key]time.Time{},
	}
}

// Press refreshes k and reports whether it was not already held.
func (h *holdTracker) Press(k sim.Key, now time.Time) bool {
	_, ok := h.held[k]
	h.held[k] = now
	return !ok
}

// Expired removes and returns every key whose window has lapsed.
func (h *holdTracker) Expired(now time.Time) []sim.Key {
	var out []sim.Key
	for k, at := range h.held {
		if now.Sub(at) >= h.window {
			out = append(out, k)
			delete(h.held, k)
		}
	}
	return out
}

// ReleaseAll forgets every held key.
func (h *holdTracker) ReleaseAll() []sim.Key {
	out := make([]sim.Key, 0, len(h.held))
	for k := range h.held {
		out = append(out, k)
	}
	clear(h.held)
	return out
}
