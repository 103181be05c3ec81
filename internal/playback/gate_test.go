package playback

import (
	"context"
	"testing"
	"time"
)

// waitDone starts Wait in a goroutine and returns a channel carrying its
// result.
func waitDone(g *Gate) <-chan error {
	done := make(chan error, 1)
	go func() { done <- g.Wait(context.Background()) }()
	return done
}

func assertDelivered(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not deliver in time")
	}
}

func assertBlocked(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		t.Fatalf("Wait returned early (err=%v)", err)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGate_ZeroDelayDeliversImmediately(t *testing.T) {
	g := NewGate(0)
	start := time.Now()
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero-delay Wait took %v", elapsed)
	}
}

func TestGate_PauseBlocksUntilResume(t *testing.T) {
	g := NewGate(0)
	g.Pause()

	done := waitDone(g)
	assertBlocked(t, done)

	g.Resume()
	assertDelivered(t, done)
}

func TestGate_StepWhilePausedDeliversExactlyOne(t *testing.T) {
	g := NewGate(0)
	g.Pause()

	done := waitDone(g)
	assertBlocked(t, done)

	g.Step()
	assertDelivered(t, done)

	// Still paused: the next event re-blocks, the step was consumed.
	done = waitDone(g)
	assertBlocked(t, done)

	g.Resume()
	assertDelivered(t, done)
}

func TestGate_StepSkipsDelay(t *testing.T) {
	g := NewGate(10 * time.Second)
	g.Step()

	start := time.Now()
	done := waitDone(g)
	assertDelivered(t, done)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("stepped delivery took %v", elapsed)
	}
}

func TestGate_StepDoesNotDoubleApply(t *testing.T) {
	g := NewGate(10 * time.Second)
	g.Step()

	assertDelivered(t, waitDone(g))

	// The following event must wait the full delay again.
	done := waitDone(g)
	assertBlocked(t, done)

	g.Advance()
	assertDelivered(t, done)
}

func TestGate_AdvanceCutsWaitShort(t *testing.T) {
	g := NewGate(10 * time.Second)

	done := waitDone(g)
	assertBlocked(t, done)

	g.Advance()
	assertDelivered(t, done)
}

func TestGate_SetDelayZeroReleasesPendingWait(t *testing.T) {
	g := NewGate(10 * time.Second)

	done := waitDone(g)
	assertBlocked(t, done)

	// Going live must release the wait already in progress, not just
	// future ones.
	g.SetDelay(0)
	assertDelivered(t, done)
}

func TestGate_DelayElapses(t *testing.T) {
	g := NewGate(30 * time.Millisecond)
	start := time.Now()
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Wait returned after %v, want >= 30ms", elapsed)
	}
}

func TestGate_ContextCancelAbortsWait(t *testing.T) {
	g := NewGate(0)
	g.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Wait(ctx) }()

	assertBlocked(t, done)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Wait error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not observe cancellation")
	}
}
