package notice

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Option applies a configuration option to the Flag.
type Option func(*Flag)

// WithDuration sets how long a raised flag stays set. Zero keeps it set until
// the next Close.
func WithDuration(d time.Duration) Option {
	return func(f *Flag) {
		if d >= 0 {
			f.duration = d
		}
	}
}

// WithClock sets the clock used for scheduling. Tests pass a fake clock.
func WithClock(clock clockwork.Clock) Option {
	return func(f *Flag) {
		if clock != nil {
			f.clock = clock
		}
	}
}

// WithOnClear registers a callback run after a timer clears the flag.
func WithOnClear(fn func()) Option {
	return func(f *Flag) {
		f.onClear = fn
	}
}
