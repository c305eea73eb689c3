package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/pixil98/corvax-lab/internal/sim"
	"github.com/pixil98/go-testutil"
)

func TestNatsServer_RoundTrip(t *testing.T) {
	s, err := NewNatsServer(WithInProcess(), WithStartTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	select {
	case <-s.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("nats server never became ready")
	}

	received := make(chan sim.Feedback, 1)
	unsub, err := SubscribeFeedback(s, func(f sim.Feedback) { received <- f })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unsub()

	NewFeedbackPublisher(s).Publish(ctx, sim.Feedback{Kind: sim.FeedbackLevelUp, Text: "Level Up => 2"})

	select {
	case f := <-received:
		testutil.AssertEqual(t, "text", f.Text, "Level Up => 2")
		testutil.AssertEqual(t, "kind", f.Kind, sim.FeedbackLevelUp)
	case <-time.After(5 * time.Second):
		t.Fatal("feedback was not delivered")
	}
}
