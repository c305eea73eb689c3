package sim

import (
	"context"
	"sync"
)

// Mutation is a state change staged for the tick goroutine.
type Mutation func(ctx context.Context, s *Simulation)

// mutationQueue stages mutations from any goroutine. It is safe for
// concurrent producers and a single consumer. Unlike input, server
// responses must never be dropped, so the queue is unbounded.
type mutationQueue struct {
	mu      sync.Mutex
	pending []Mutation
}

func (q *mutationQueue) Push(m Mutation) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, m)
}

// Drain returns everything staged in FIFO order and empties the queue.
func (q *mutationQueue) Drain() []Mutation {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

func (q *mutationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
