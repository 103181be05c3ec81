package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
)

func ballLine(matchNo, over, ballNo, runs int) string {
	return fmt.Sprintf(
		`{"type":"ball","match_no":%d,"innings":1,"detail":{"over":%d,"ball":%d,"runs_scored":%d,"total_runs":%d,"bat_team":"India","bowler":{"name":"Starc"}}}`,
		matchNo, over, ballNo, runs, runs,
	)
}

func updateLine(matchNo int, winner, margin string) string {
	return fmt.Sprintf(`{"type":"match_update","match_no":%d,"winner":%q,"margin":%q}`, matchNo, winner, margin)
}

func completeLine(matchNo int, winner, margin string) string {
	return fmt.Sprintf(`{"type":"match_complete","match_no":%d,"winner":%q,"margin":%q}`, matchNo, winner, margin)
}

func seriesLine(summary string) string {
	return fmt.Sprintf(`{"type":"series_complete","summary":%q}`, summary)
}

// scriptedStream delivers one line per Read, optionally sleeping first, so
// a session's transport can be made arbitrarily slow.
type scriptedStream struct {
	lines   []string
	perLine time.Duration
	i       int
	buf     []byte
	readErr error // returned after the last line instead of EOF
}

func (s *scriptedStream) Read(p []byte) (int, error) {
	if len(s.buf) == 0 {
		if s.i >= len(s.lines) {
			if s.readErr != nil {
				return 0, s.readErr
			}
			return 0, io.EOF
		}
		if s.perLine > 0 {
			time.Sleep(s.perLine)
		}
		s.buf = []byte(s.lines[s.i] + "\n")
		s.i++
	}
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}

func (s *scriptedStream) Close() error { return nil }

func scripted(perLine time.Duration, lines ...string) StreamFunc {
	return func(ctx context.Context) (io.ReadCloser, error) {
		return &scriptedStream{lines: lines, perLine: perLine}, nil
	}
}

func testConfig() Config {
	return Config{TeamA: "India", TeamB: "Australia", Matches: 3}
}

// waitFor polls the controller's snapshot until cond holds.
func waitFor(t *testing.T, c *Controller, what string, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		snap := c.Snapshot()
		if cond(snap) {
			return snap
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s (status=%s)", what, c.Snapshot().Status)
	return Snapshot{}
}

func waitStatus(t *testing.T, c *Controller, status Status) Snapshot {
	t.Helper()
	return waitFor(t, c, "status "+status.String(), func(s Snapshot) bool { return s.Status == status })
}

func TestController_RunsStreamToCompletion(t *testing.T) {
	c := NewController(0)
	c.Start(context.Background(), testConfig(), scripted(0,
		ballLine(1, 0, 1, 4),
		ballLine(1, 0, 2, 6),
		updateLine(1, "India", "20 runs"),
		seriesLine("India win the series 1-0"),
	))

	snap := waitStatus(t, c, StatusComplete)

	if snap.Current == nil || snap.Current.Detail.Ball != 2 {
		t.Error("current ball is not the last delivery")
	}
	if len(snap.Overs) != 1 || len(snap.Overs[0].Balls) != 2 {
		t.Fatalf("overs = %+v, want one group of two balls", snap.Overs)
	}
	if len(snap.History) != 1 || snap.History[0].Winner != "India" {
		t.Errorf("history = %+v", snap.History)
	}
	if snap.Scoreline() != "India win the series 1-0" {
		t.Errorf("Scoreline() = %q, want the official summary", snap.Scoreline())
	}
}

func TestController_SessionIsolation(t *testing.T) {
	c := NewController(0)

	// Session A trickles in slowly and would eventually record an India
	// win.
	var aLines []string
	for i := 1; i <= 6; i++ {
		aLines = append(aLines, ballLine(1, 0, i, 1))
	}
	aLines = append(aLines, updateLine(1, "India", "30 runs"))
	c.Start(context.Background(), testConfig(), scripted(25*time.Millisecond, aLines...))

	// Let A commit at least one ball so the restart demonstrably discards
	// live state.
	waitFor(t, c, "first ball of session A", func(s Snapshot) bool { return s.Current != nil })

	// Session B delivers instantly.
	c.Start(context.Background(), testConfig(), scripted(0,
		ballLine(1, 0, 1, 6),
		updateLine(1, "Australia", "5 wickets"),
	))

	snap := waitStatus(t, c, StatusComplete)
	assertOnlyB := func(snap Snapshot) {
		t.Helper()
		if len(snap.History) != 1 || snap.History[0].Winner != "Australia" {
			t.Fatalf("history = %+v, want only session B's result", snap.History)
		}
		if snap.Current == nil || snap.Current.Detail.RunsScored.Runs != 6 {
			t.Fatalf("current = %+v, want session B's ball", snap.Current)
		}
		if len(snap.Overs) != 1 || len(snap.Overs[0].Balls) != 1 {
			t.Fatalf("overs = %+v, want only session B's over", snap.Overs)
		}
	}
	assertOnlyB(snap)

	// A's transport keeps draining for a while; none of it may land.
	time.Sleep(300 * time.Millisecond)
	assertOnlyB(c.Snapshot())
}

func TestController_OpenFailureSetsError(t *testing.T) {
	wantErr := errors.New("service unreachable")
	c := NewController(0)
	c.Start(context.Background(), testConfig(), func(ctx context.Context) (io.ReadCloser, error) {
		return nil, wantErr
	})

	snap := waitStatus(t, c, StatusError)
	if !errors.Is(snap.Err, wantErr) {
		t.Errorf("Err = %v, want %v", snap.Err, wantErr)
	}
}

func TestController_MidStreamReadErrorSetsError(t *testing.T) {
	wantErr := errors.New("connection reset")
	c := NewController(0)
	c.Start(context.Background(), testConfig(), func(ctx context.Context) (io.ReadCloser, error) {
		return &scriptedStream{lines: []string{ballLine(1, 0, 1, 4)}, readErr: wantErr}, nil
	})

	snap := waitStatus(t, c, StatusError)
	if !errors.Is(snap.Err, wantErr) {
		t.Errorf("Err = %v, want %v", snap.Err, wantErr)
	}
	// State committed before the failure is kept until the next start.
	if snap.Current == nil {
		t.Error("ball committed before the failure was lost")
	}
}

func TestController_StopReturnsToIdle(t *testing.T) {
	c := NewController(0)
	var lines []string
	for i := 1; i <= 20; i++ {
		lines = append(lines, ballLine(1, 0, i, 1))
	}
	c.Start(context.Background(), testConfig(), scripted(20*time.Millisecond, lines...))

	waitFor(t, c, "a committed ball", func(s Snapshot) bool { return s.Current != nil })
	c.Stop()

	if got := c.Snapshot().Status; got != StatusIdle {
		t.Fatalf("status = %s, want idle", got)
	}

	// The stopped session's remaining frames must not land.
	time.Sleep(100 * time.Millisecond)
	if got := c.Snapshot().Status; got != StatusIdle {
		t.Errorf("status after drain = %s, want idle", got)
	}
}

func TestController_PauseStepResume(t *testing.T) {
	pr, pw := io.Pipe()
	c := NewController(0)
	c.Start(context.Background(), testConfig(), func(ctx context.Context) (io.ReadCloser, error) {
		return pr, nil
	})

	mustWrite := func(line string) {
		t.Helper()
		if _, err := pw.Write([]byte(line + "\n")); err != nil {
			t.Fatal(err)
		}
	}

	mustWrite(ballLine(1, 0, 1, 4))
	waitFor(t, c, "ball 1", func(s Snapshot) bool {
		return s.Current != nil && s.Current.Detail.Ball == 1
	})

	c.Pause()
	mustWrite(ballLine(1, 0, 2, 1))
	mustWrite(ballLine(1, 0, 3, 2))

	time.Sleep(60 * time.Millisecond)
	if got := c.Snapshot().Current.Detail.Ball; got != 1 {
		t.Fatalf("ball %d committed while paused, want 1", got)
	}

	// Step delivers exactly one ball and re-blocks.
	c.Step()
	waitFor(t, c, "ball 2 after step", func(s Snapshot) bool {
		return s.Current.Detail.Ball == 2
	})
	time.Sleep(60 * time.Millisecond)
	if got := c.Snapshot().Current.Detail.Ball; got != 2 {
		t.Fatalf("ball %d committed after single step, want 2", got)
	}

	c.Resume()
	waitFor(t, c, "ball 3 after resume", func(s Snapshot) bool {
		return s.Current.Detail.Ball == 3
	})

	if err := pw.Close(); err != nil {
		t.Fatal(err)
	}
	waitStatus(t, c, StatusComplete)
}

func TestController_SpeedChangeAppliesToPendingWait(t *testing.T) {
	pr, pw := io.Pipe()
	c := NewController(10 * time.Second)
	c.Start(context.Background(), testConfig(), func(ctx context.Context) (io.ReadCloser, error) {
		return pr, nil
	})

	start := time.Now()
	if _, err := pw.Write([]byte(ballLine(1, 0, 1, 4) + "\n")); err != nil {
		t.Fatal(err)
	}

	// Give the loop time to enter the gate, then go live.
	time.Sleep(50 * time.Millisecond)
	c.SetSpeed(0)

	waitFor(t, c, "ball 1 at live speed", func(s Snapshot) bool { return s.Current != nil })
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("ball arrived after %v despite going live", elapsed)
	}

	_ = pw.Close()
	waitStatus(t, c, StatusComplete)
}

func TestController_RestartClearsPause(t *testing.T) {
	c := NewController(0)
	c.Start(context.Background(), testConfig(), scripted(0, ballLine(1, 0, 1, 4)))
	waitStatus(t, c, StatusComplete)

	c.Pause()
	c.Start(context.Background(), testConfig(), scripted(0,
		ballLine(1, 0, 1, 1),
		completeLine(1, "India", "6 wickets"),
	))

	// A restart must not inherit the previous session's pause.
	snap := waitStatus(t, c, StatusComplete)
	if snap.Scoreline() != "India won by 6 wickets" {
		t.Errorf("Scoreline() = %q, want synthesized single-match summary", snap.Scoreline())
	}
}

func TestController_BadLinesAreCountedNotFatal(t *testing.T) {
	stream := strings.Join([]string{
		ballLine(1, 0, 1, 4),
		"not json at all",
		`{"type":"toss_result"}`,
		ballLine(1, 0, 2, 6),
	}, "\n")

	c := NewController(0)
	c.Start(context.Background(), testConfig(), func(ctx context.Context) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(stream)), nil
	})

	snap := waitStatus(t, c, StatusComplete)
	if len(snap.Overs) != 1 || len(snap.Overs[0].Balls) != 2 {
		t.Fatalf("overs = %+v, want both balls despite bad lines", snap.Overs)
	}
	if snap.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", snap.Dropped)
	}
}
