// Package playback drives one live stream session: pacing, cooperative
// cancellation, and folding frames into the view model.
package playback

import (
	"context"
	"sync"
	"time"
)

// Gate is the pacing primitive. Before each ball is committed the session
// loop calls Wait, which resolves when the event should be delivered:
// immediately for a pending step or zero delay, after the configured delay
// otherwise, and not at all while paused. All controls take effect on the
// wait currently in progress, not just on future events.
//
// Waiters are woken through a broadcast channel that is closed and replaced
// on every control change, so pause blocks until resume or step without
// polling.
type Gate struct {
	mu      sync.Mutex
	wake    chan struct{}
	delay   time.Duration
	paused  bool
	step    bool // deliver exactly one event, then clear
	advance bool // cut the current delay short, then clear
}

// NewGate returns a gate with the given per-event delay.
func NewGate(delay time.Duration) *Gate {
	return &Gate{
		wake:  make(chan struct{}),
		delay: delay,
	}
}

// broadcast wakes every waiter. Callers must hold mu.
func (g *Gate) broadcast() {
	close(g.wake)
	g.wake = make(chan struct{})
}

// SetDelay updates the per-event delay. A wait already in progress
// re-evaluates against the new value, so dropping to zero releases it
// immediately.
func (g *Gate) SetDelay(d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if d < 0 {
		d = 0
	}
	g.delay = d
	g.broadcast()
}

// Delay returns the current per-event delay.
func (g *Gate) Delay() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.delay
}

// Pause blocks subsequent deliveries until Resume or Step.
func (g *Gate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = true
	g.broadcast()
}

// Resume releases a paused gate.
func (g *Gate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = false
	g.broadcast()
}

// Paused reports whether the gate is paused.
func (g *Gate) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

// Step requests that exactly one event be delivered immediately, regardless
// of the pause flag and skipping the delay. The request is consumed by the
// delivery and never carries over to a second event.
func (g *Gate) Step() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.step = true
	g.broadcast()
}

// Advance cuts the wait currently in progress short. A no-op when nothing
// is waiting in the delay phase.
func (g *Gate) Advance() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.advance = true
	g.broadcast()
}

// reset clears pause/step/advance between sessions. The delay is kept, it
// is a user preference rather than per-run state.
func (g *Gate) reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = false
	g.step = false
	g.advance = false
	g.broadcast()
}

// Wait blocks until the next event should be delivered. Returns ctx.Err()
// if the context is canceled first; any other return is a delivery.
func (g *Gate) Wait(ctx context.Context) error {
	// Pause phase: block until resumed or stepped.
	g.mu.Lock()
	for g.paused && !g.step {
		wake := g.wake
		g.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
		}
		g.mu.Lock()
	}

	// A pending step delivers immediately and is consumed here, so it
	// cannot also shorten the wait of the following event.
	if g.step {
		g.step = false
		g.advance = false
		g.mu.Unlock()
		return nil
	}

	if g.delay == 0 {
		g.advance = false
		g.mu.Unlock()
		return nil
	}

	// Delay phase. The deadline is recomputed from the live delay value on
	// every wakeup, so a speed change mid-wait takes effect right away.
	start := time.Now()
	for {
		if g.step || g.advance {
			g.step = false
			g.advance = false
			g.mu.Unlock()
			return nil
		}
		remain := g.delay - time.Since(start)
		if g.delay == 0 || remain <= 0 {
			g.mu.Unlock()
			return nil
		}
		wake := g.wake
		g.mu.Unlock()

		timer := time.NewTimer(remain)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		case <-wake:
			timer.Stop()
		}
		g.mu.Lock()
	}
}
