// Package notice implements a transient boolean flag that clears itself after
// a fixed delay, such as a "saved" banner.
package notice

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultDuration is how long a raised flag stays visible.
const DefaultDuration = 3 * time.Second

// Flag is a self-clearing boolean. Each Raise schedules its own clear; a
// later Raise does not extend an earlier one. Close cancels every pending
// clear.
type Flag struct {
	mu       sync.Mutex
	set      bool
	closed   bool
	duration time.Duration
	clock    clockwork.Clock
	timers   map[uuid.UUID]clockwork.Timer
	done     chan struct{}
	wg       sync.WaitGroup
	onClear  func()
}

// New creates a Flag with configuration options.
func New(opts ...Option) *Flag {
	f := &Flag{
		duration: DefaultDuration,
		clock:    clockwork.NewRealClock(),
		timers:   make(map[uuid.UUID]clockwork.Timer),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Raise sets the flag and schedules it to clear after the configured duration.
// It is a no-op after Close.
func (f *Flag) Raise() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.set = true
	if f.duration <= 0 {
		return
	}

	id := uuid.New()
	t := f.clock.NewTimer(f.duration)
	f.timers[id] = t

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		select {
		case <-t.Chan():
			f.clear(id)
		case <-f.done:
		}
	}()
}

// IsSet reports whether the flag is currently raised.
func (f *Flag) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}

// Pending returns the number of scheduled clears.
func (f *Flag) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

// Close stops all pending timers and waits for their goroutines to exit.
func (f *Flag) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	for id, t := range f.timers {
		t.Stop()
		delete(f.timers, id)
	}
	close(f.done)
	f.mu.Unlock()

	f.wg.Wait()
}

func (f *Flag) clear(id uuid.UUID) {
	f.mu.Lock()
	if _, ok := f.timers[id]; !ok {
		f.mu.Unlock()
		return
	}
	delete(f.timers, id)
	f.set = false
	cb := f.onClear
	f.mu.Unlock()

	if cb != nil {
		cb()
	}
}
