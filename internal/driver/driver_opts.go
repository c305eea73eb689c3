package driver

import "time"

type DriverOpt func(*Driver)

// WithSchedule adds a cadence that ticks the given managers every interval.
// Intervals of zero or less are ignored.
func WithSchedule(interval time.Duration, managers ...Manager) DriverOpt {
	return func(d *Driver) {
		if interval <= 0 {
			return
		}
		d.schedules = append(d.schedules, &schedule{
			interval: interval,
			managers: managers,
		})
	}
}

// WithClock replaces the wall clock used to track deadlines.
func WithClock(now func() time.Time) DriverOpt {
	return func(d *Driver) {
		d.now = now
	}
}
