package playback

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theirongolddev/crease/internal/feed"
	"github.com/theirongolddev/crease/internal/series"
)

// StreamFunc opens the event stream for a session. The controller cancels
// ctx when the session is superseded so the transport can stop reading.
type StreamFunc func(ctx context.Context) (io.ReadCloser, error)

// Config describes one playback run.
type Config struct {
	TeamA   string
	TeamB   string
	Matches int // expected series length, 0 if unknown
}

// Controller owns the active playback session. Starting a run mints a
// strictly increasing generation token; every continuation re-checks the
// token after each suspension point and before each commit, so writes from
// a superseded session never land even while its transport is still
// draining. Exactly one session is active at a time.
type Controller struct {
	gen  atomic.Int64
	gate *Gate

	mu     sync.Mutex
	cancel context.CancelFunc
	view   viewState

	// OnChange, when set before the first Start, is called after every
	// committed state change. Must not call back into the controller.
	OnChange func()
}

// NewController returns a controller whose gate starts with the given
// per-ball delay.
func NewController(delay time.Duration) *Controller {
	return &Controller{gate: NewGate(delay)}
}

// Start begins a new session, invalidating the previous one. The token is
// bumped synchronously, so once Start returns no stale continuation can
// commit; the old transport is canceled best-effort and may keep delivering
// bytes for a short while, all of which are discarded by the token check.
func (c *Controller) Start(ctx context.Context, cfg Config, open StreamFunc) {
	token := c.gen.Add(1)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.view = viewState{
		status:       StatusRunning,
		teamA:        cfg.TeamA,
		teamB:        cfg.TeamB,
		totalMatches: cfg.Matches,
		summary:      series.Compute(nil, cfg.TeamA, cfg.TeamB, cfg.Matches),
	}
	c.mu.Unlock()

	// Controls do not carry over between runs; the delay does.
	c.gate.reset()

	go c.run(runCtx, token, open)
}

// Stop invalidates the session without starting a new one.
func (c *Controller) Stop() {
	c.gen.Add(1)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.view.status = StatusIdle
	c.mu.Unlock()

	c.changed()
}

// Gate control surface, forwarded so callers hold only the controller.

// Pause blocks ball delivery until Resume or Step.
func (c *Controller) Pause() { c.gate.Pause() }

// Resume releases a paused session.
func (c *Controller) Resume() { c.gate.Resume() }

// Paused reports whether playback is paused.
func (c *Controller) Paused() bool { return c.gate.Paused() }

// Step delivers exactly one ball immediately.
func (c *Controller) Step() { c.gate.Step() }

// Advance cuts the current inter-ball wait short.
func (c *Controller) Advance() { c.gate.Advance() }

// SetSpeed updates the per-ball delay, effective on the wait in progress.
func (c *Controller) SetSpeed(d time.Duration) { c.gate.SetDelay(d) }

// Speed returns the current per-ball delay.
func (c *Controller) Speed() time.Duration { return c.gate.Delay() }

// Snapshot returns a copy of the committed view model.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Status:  c.view.status,
		Err:     c.view.err,
		TeamA:   c.view.teamA,
		TeamB:   c.view.teamB,
		Summary: c.view.summary,
		Dropped: c.view.dropped,
	}
	if c.view.current != nil {
		ball := *c.view.current
		snap.Current = &ball
	}
	if len(c.view.overs) > 0 {
		snap.Overs = make([]OverGroup, len(c.view.overs))
		for i, g := range c.view.overs {
			g.Balls = append([]string(nil), g.Balls...)
			snap.Overs[i] = g
		}
	}
	if len(c.view.history) > 0 {
		snap.History = append([]feed.MatchResult(nil), c.view.history...)
	}
	if c.view.official != nil {
		official := *c.view.official
		snap.Official = &official
	}
	return snap
}

// run is the single consuming goroutine of one session: decode, classify,
// gate (balls only), commit, until the stream ends or the session goes
// stale.
func (c *Controller) run(ctx context.Context, token int64, open StreamFunc) {
	body, err := open(ctx)
	if err != nil {
		c.fail(token, err)
		return
	}
	defer func() { _ = body.Close() }()

	dec := feed.NewDecoder(body)

	for {
		frame, err := dec.Next()
		if errors.Is(err, io.EOF) {
			c.finish(token, dec.Dropped())
			return
		}
		if err != nil {
			// A canceled transport surfaces a read error; if we are stale
			// that is the normal shutdown path, not a failure.
			if !c.isCurrent(token) || ctx.Err() != nil {
				return
			}
			c.fail(token, err)
			return
		}
		if !c.isCurrent(token) {
			return
		}

		switch f := frame.(type) {
		case feed.BallFrame:
			if err := c.gate.Wait(ctx); err != nil {
				return
			}
			if !c.commit(token, func(v *viewState) {
				v.applyBall(f)
				v.dropped = dec.Dropped()
			}) {
				return
			}

		case feed.MatchUpdateFrame:
			if !c.commit(token, func(v *viewState) { v.applyResult(f.Result) }) {
				return
			}

		case feed.MatchCompleteFrame:
			if !c.commit(token, func(v *viewState) { v.applyComplete(f.Result) }) {
				return
			}

		case feed.SeriesCompleteFrame:
			if !c.commit(token, func(v *viewState) { v.applySeries(f.Summary) }) {
				return
			}
		}
	}
}

func (c *Controller) isCurrent(token int64) bool {
	return token == c.gen.Load()
}

// commit applies fn to the view model if and only if the token is still
// current. The check and the mutation share the mutex, closing the race
// against a concurrent Start resetting the state.
func (c *Controller) commit(token int64, fn func(*viewState)) bool {
	c.mu.Lock()
	if !c.isCurrent(token) {
		c.mu.Unlock()
		return false
	}
	fn(&c.view)
	c.mu.Unlock()

	c.changed()
	return true
}

func (c *Controller) finish(token int64, dropped int) {
	c.commit(token, func(v *viewState) {
		v.status = StatusComplete
		v.dropped = dropped
	})
}

// fail marks the session failed. Per-frame problems never reach here; only
// transport-level errors are fatal.
func (c *Controller) fail(token int64, err error) {
	c.commit(token, func(v *viewState) {
		v.status = StatusError
		v.err = err
	})
}

func (c *Controller) changed() {
	if c.OnChange != nil {
		c.OnChange()
	}
}
