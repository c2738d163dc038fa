// Package debounce collapses bursts of values into the last one.
//
// A Gate does not own a timer. The host schedules one wake-up per ticket
// (in the TUI a tea.Tick) and calls Fire when it expires; only the ticket of
// the most recent Push yields a value.
package debounce

import (
	"sync"
	"time"
)

type Gate[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	seq     uint64
	pending T
	armed   bool
}

func New[T any](delay time.Duration) *Gate[T] {
	if delay < 0 {
		delay = 0
	}
	return &Gate[T]{delay: delay}
}

// Delay is the quiet period the host should wait before calling Fire.
func (g *Gate[T]) Delay() time.Duration {
	return g.delay
}

// Push records v as the pending value and returns its ticket. Every earlier
// ticket is superseded.
func (g *Gate[T]) Push(v T) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	g.pending = v
	g.armed = true
	return g.seq
}

// Fire returns the pending value when ticket is still current. A value is
// released at most once.
func (g *Gate[T]) Fire(ticket uint64) (T, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var zero T
	if !g.armed || ticket != g.seq {
		return zero, false
	}
	v := g.pending
	g.pending = zero
	g.armed = false
	return v, true
}

// Cancel drops the pending value so that no outstanding ticket fires.
func (g *Gate[T]) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	var zero T
	g.seq++
	g.pending = zero
	g.armed = false
}

// Pending reports whether a pushed value is waiting to fire.
func (g *Gate[T]) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.armed
}
