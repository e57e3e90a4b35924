package quote

import (
	"context"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Gate spaces dispatches at least interval apart. Each caller reserves its
// slot under the lock, so concurrent callers get distinct, ordered slots
// rather than racing on a check-then-dispatch.
type Gate struct {
	interval time.Duration
	clock    Clock

	mu   sync.Mutex
	last time.Time
}

func NewGate(interval time.Duration, clock Clock) *Gate {
	if clock == nil {
		clock = systemClock{}
	}
	return &Gate{interval: interval, clock: clock}
}

func (g *Gate) reserve() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	slot := g.clock.Now()
	if !g.last.IsZero() {
		if next := g.last.Add(g.interval); next.After(slot) {
			slot = next
		}
	}
	g.last = slot
	return slot
}

// Wait blocks until the caller's reserved slot and returns it. A cancelled
// ctx still consumes the slot.
func (g *Gate) Wait(ctx context.Context) (time.Time, error) {
	slot := g.reserve()
	wait := slot.Sub(g.clock.Now())
	if wait <= 0 {
		return slot, nil
	}
	select {
	case <-g.clock.After(wait):
		return slot, nil
	case <-ctx.Done():
		return slot, ctx.Err()
	}
}
