package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/corvax-lab/internal/messaging"
)

type TerminalOpt func(*Terminal)

// WithScreen draws on s instead of the controlling terminal.
func WithScreen(s tcell.Screen) TerminalOpt {
	return func(t *Terminal) {
		t.screen = s
	}
}

func WithFrameInterval(d time.Duration) TerminalOpt {
	return func(t *Terminal) {
		if d > 0 {
			t.frameInterval = d
		}
	}
}

// WithHoldWindow sets how long a movement key stays held without a repeat.
func WithHoldWindow(d time.Duration) TerminalOpt {
	return func(t *Terminal) {
		if d > 0 {
			t.hold = newHoldTracker(d)
		}
	}
}

func WithFeedbackLog(l *FeedbackLog) TerminalOpt {
	return func(t *Terminal) {
		t.log = l
	}
}

func WithLogRows(n int) TerminalOpt {
	return func(t *Terminal) {
		if n > 0 {
			t.logRows = n
		}
	}
}

// WithFeedbackBus fills the log from the message bus once ready closes.
func WithFeedbackBus(sub messaging.Subscriber, ready <-chan struct{}) TerminalOpt {
	return func(t *Terminal) {
		t.bus = sub
		t.busReady = ready
	}
}

func WithClock(now func() time.Time) TerminalOpt {
	return func(t *Terminal) {
		t.now = now
	}
}

// WithOnQuit calls fn instead of failing Start when the player quits.
func WithOnQuit(fn func()) TerminalOpt {
	return func(t *Terminal) {
		t.onQuit = fn
	}
}
