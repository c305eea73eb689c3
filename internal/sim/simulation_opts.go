package sim

import (
	"math/rand/v2"
	"time"
)

type Option func(*Simulation)

// WithCatalog replaces the built-in machine catalog.
func WithCatalog(c *Catalog) Option {
	return func(s *Simulation) {
		s.catalog = c
	}
}

// WithFeedbackSink forwards every feedback event to sink.
func WithFeedbackSink(sink FeedbackSink) Option {
	return func(s *Simulation) {
		s.sink = sink
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Simulation) {
		s.now = now
	}
}

// WithRand seeds particle randomness.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) {
		s.rng = rng
	}
}

func WithPlayer(p Player) Option {
	return func(s *Simulation) {
		s.player = p
	}
}
