package terminal

import (
	"context"
	"sync"

	"github.com/pixil98/corvax-lab/internal/display"
	"github.com/pixil98/corvax-lab/internal/sim"
)

const DefaultLogSize = 50

// FeedbackLog keeps the most recent feedback texts. It can be fed directly
// as a simulation sink or from the message bus.
type FeedbackLog struct {
	mu      sync.Mutex
	size    int
	entries []sim.Feedback
}

func NewFeedbackLog(size int) *FeedbackLog {
	if size <= 0 {
		size = DefaultLogSize
	}
	return &FeedbackLog{size: size}
}

func (l *FeedbackLog) Add(f sim.Feedback) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, f)
	if over := len(l.entries) - l.size; over > 0 {
		l.entries = append(l.entries[:0], l.entries[over:]...)
	}
}

func (l *FeedbackLog) Publish(_ context.Context, f sim.Feedback) {
	l.Add(f)
}

type logLine struct {
	text  string
	color string
}

// Tail returns at most n wrapped lines ending with the newest entry.
func (l *FeedbackLog) Tail(width, n int) []logLine {
	l.mu.Lock()
	entries := append([]sim.Feedback(nil), l.entries...)
	l.mu.Unlock()

	var lines []logLine
	for i := len(entries) - 1; i >= 0 && len(lines) < n; i-- {
		wrapped := display.Wrap(entries[i].Text, width)
		for j := len(wrapped) - 1; j >= 0 && len(lines) < n; j-- {
			lines = append(lines, logLine{text: wrapped[j], color: entries[i].Color})
		}
	}

	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines
}
