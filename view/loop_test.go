package view

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gcodeview/hal"
)

type recordLogger struct {
	lines []string
}

func (l *recordLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *recordLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *recordLogger) contains(sub string) bool {
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestLoopRunsEveryFrame(t *testing.T) {
	q := hal.NewFrameQueue()
	n := 0
	l := StartLoop(context.Background(), q, nil, func() error { n++; return nil })
	for i := 0; i < 5; i++ {
		q.Flush()
	}
	if n != 5 || l.Frames() != 5 {
		t.Fatalf("frame ran %d times (Frames()=%d), want 5", n, l.Frames())
	}
	if l.State() != LoopRunning || !l.Alive() {
		t.Fatalf("State()=%v", l.State())
	}
}

func TestLoopErrorStopsPermanently(t *testing.T) {
	q := hal.NewFrameQueue()
	log := &recordLogger{}
	boom := errors.New("boom")
	n := 0
	l := StartLoop(context.Background(), q, log, func() error {
		n++
		if n == 2 {
			return boom
		}
		return nil
	})
	for i := 0; i < 5; i++ {
		q.Flush()
	}
	if n != 2 {
		t.Fatalf("frame ran %d times, want 2", n)
	}
	if l.State() != LoopStopped || !errors.Is(l.Err(), boom) {
		t.Fatalf("State()=%v Err()=%v", l.State(), l.Err())
	}
	if !log.contains("view: render failed: boom") {
		t.Fatalf("log=%q", log.lines)
	}
	if q.Pending() != 0 {
		t.Fatalf("stopped loop left %d frames pending", q.Pending())
	}
}

func TestLoopRecoversPanic(t *testing.T) {
	q := hal.NewFrameQueue()
	log := &recordLogger{}
	l := StartLoop(context.Background(), q, log, func() error { panic("kaboom") })
	q.Flush()
	q.Flush()

	var pe *PanicError
	if !errors.As(l.Err(), &pe) {
		t.Fatalf("Err()=%v, want *PanicError", l.Err())
	}
	if pe.Value != "kaboom" || len(pe.Stack) == 0 {
		t.Fatalf("PanicError=%+v", pe)
	}
	if l.Alive() {
		t.Fatalf("loop alive after panic")
	}
	if !log.contains("panic: kaboom") || len(log.lines) < 2 {
		t.Fatalf("log=%q", log.lines)
	}
}

func TestLoopStop(t *testing.T) {
	q := hal.NewFrameQueue()
	n := 0
	l := StartLoop(context.Background(), q, nil, func() error { n++; return nil })
	q.Flush()
	l.Stop()
	l.Stop()
	q.Flush()
	if n != 1 {
		t.Fatalf("frame ran %d times after Stop, want 1", n)
	}
	if l.Err() != nil {
		t.Fatalf("Err()=%v after Stop", l.Err())
	}
}

func TestLoopStopFromFrame(t *testing.T) {
	q := hal.NewFrameQueue()
	var l *RenderLoop
	n := 0
	l = StartLoop(context.Background(), q, nil, func() error {
		n++
		l.Stop()
		return nil
	})
	q.Flush()
	q.Flush()
	if n != 1 || q.Pending() != 0 {
		t.Fatalf("n=%d pending=%d", n, q.Pending())
	}
}

func TestLoopContextCancel(t *testing.T) {
	q := hal.NewFrameQueue()
	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	l := StartLoop(ctx, q, nil, func() error { n++; return nil })
	q.Flush()
	cancel()
	q.Flush()
	q.Flush()
	if n != 1 {
		t.Fatalf("frame ran %d times, want 1", n)
	}
	if l.Alive() || l.Err() != nil {
		t.Fatalf("Alive()=%v Err()=%v", l.Alive(), l.Err())
	}
}

func TestLoopWithoutScheduler(t *testing.T) {
	l := StartLoop(context.Background(), nil, nil, func() error { return nil })
	if l.Alive() || l.Err() == nil {
		t.Fatalf("Alive()=%v Err()=%v", l.Alive(), l.Err())
	}
	l.Stop()
}

func TestLoopStateString(t *testing.T) {
	if LoopRunning.String() != "running" || LoopStopped.String() != "stopped" {
		t.Fatalf("%q %q", LoopRunning, LoopStopped)
	}
}
