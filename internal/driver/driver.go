package driver

import (
	"context"
	"time"
)

const (
	DefaultFrameInterval   = time.Second / 60
	DefaultEffectsInterval = 50 * time.Millisecond
)

type Manager interface {
	Tick(context.Context) error
}

type schedule struct {
	interval time.Duration
	managers []Manager
	next     time.Time
}

// Driver runs every schedule from a single goroutine, so managers never
// observe each other mid-tick.
type Driver struct {
	schedules []*schedule
	now       func() time.Time
}

func NewDriver(opts ...DriverOpt) *Driver {
	d := &Driver{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	if len(d.schedules) == 0 {
		<-ctx.Done()
		return nil
	}

	now := d.now()
	for _, s := range d.schedules {
		s.next = now.Add(s.interval)
	}

	timer := time.NewTimer(d.untilNext(now))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		// A cancelled context wins over a timer that fired at the same time.
		if ctx.Err() != nil {
			return nil
		}

		now = d.now()
		for _, s := range d.schedules {
			if now.Before(s.next) {
				continue
			}
			// A manager may cancel mid-tick; later schedules must not run.
			if ctx.Err() != nil {
				return nil
			}
			if err := s.tick(ctx); err != nil {
				return err
			}
			s.next = s.next.Add(s.interval)
			if s.next.Before(now) {
				s.next = now.Add(s.interval)
			}
		}

		timer.Reset(d.untilNext(now))
	}
}

// Tick runs every schedule once regardless of its deadline.
func (d *Driver) Tick(ctx context.Context) error {
	for _, s := range d.schedules {
		if err := s.tick(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) untilNext(now time.Time) time.Duration {
	next := d.schedules[0].next
	for _, s := range d.schedules[1:] {
		if s.next.Before(next) {
			next = s.next
		}
	}
	wait := next.Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

func (s *schedule) tick(ctx context.Context) error {
	for _, m := range s.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
