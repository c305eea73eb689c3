package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/corvax-lab/internal/sim"
)

const FeedbackSubjectPrefix = "corvax.feedback"

type Publisher interface {
	Publish(subject string, data []byte) error
}

type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// FeedbackSubject is the subject feedback of kind is published on.
func FeedbackSubject(kind sim.FeedbackKind) string {
	return fmt.Sprintf("%s.%s", FeedbackSubjectPrefix, kind)
}

// FeedbackPublisher forwards simulation feedback onto the bus as JSON.
type FeedbackPublisher struct {
	pub Publisher
}

func NewFeedbackPublisher(pub Publisher) *FeedbackPublisher {
	return &FeedbackPublisher{pub: pub}
}

// Publish never fails the caller. Feedback produced before the bus is up
// is dropped.
func (p *FeedbackPublisher) Publish(ctx context.Context, f sim.Feedback) {
	data, err := json.Marshal(f)
	if err != nil {
		slog.WarnContext(ctx, "marshalling feedback", "kind", f.Kind, "error", err)
		return
	}

	if err := p.pub.Publish(FeedbackSubject(f.Kind), data); err != nil {
		slog.DebugContext(ctx, "dropping feedback", "kind", f.Kind, "error", err)
	}
}

// SubscribeFeedback delivers every feedback kind to fn. Malformed messages
// are logged and skipped.
func SubscribeFeedback(sub Subscriber, fn func(sim.Feedback)) (func(), error) {
	return sub.Subscribe(FeedbackSubjectPrefix+".>", func(data []byte) {
		var f sim.Feedback
		if err := json.Unmarshal(data, &f); err != nil {
			slog.Warn("decoding feedback", "error", err)
			return
		}
		fn(f)
	})
}
