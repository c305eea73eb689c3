package sim

import (
	"context"
	"sync"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestMutationQueue_FIFO(t *testing.T) {
	var q mutationQueue
	testutil.AssertEqual(t, "empty drain", q.Drain() == nil, true)

	var order []int
	for i := range 3 {
		q.Push(func(context.Context, *Simulation) { order = append(order, i) })
	}
	testutil.AssertEqual(t, "len", q.Len(), 3)

	for _, m := range q.Drain() {
		m(context.Background(), nil)
	}
	testutil.AssertEqual(t, "drained", q.Len(), 0)
	testutil.AssertEqual(t, "count", len(order), 3)
	for i, v := range order {
		testutil.AssertEqual(t, "order", v, i)
	}
}

func TestMutationQueue_ConcurrentPush(t *testing.T) {
	var q mutationQueue
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Push(func(context.Context, *Simulation) {})
		}()
	}
	wg.Wait()
	testutil.AssertEqual(t, "len", len(q.Drain()), 50)
}
