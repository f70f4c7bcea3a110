package hal

import (
	"sync"
	"testing"
)

func TestFrameQueueRunsOncePerFlush(t *testing.T) {
	q := NewFrameQueue()
	calls := 0
	id := q.RequestFrame(func() { calls++ })
	if id == 0 {
		t.Fatalf("RequestFrame returned the zero id")
	}
	if got := q.Flush(); got != 1 {
		t.Fatalf("Flush() ran %d callbacks, want 1", got)
	}
	if got := q.Flush(); got != 0 {
		t.Fatalf("second Flush() ran %d callbacks, want 0", got)
	}
	if calls != 1 {
		t.Fatalf("callback ran %d times, want 1", calls)
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	id := q.RequestFrame(func() { ran = true })
	q.CancelFrame(id)
	q.CancelFrame(0)
	q.CancelFrame(id + 100)
	if got := q.Flush(); got != 0 || ran {
		t.Fatalf("cancelled callback ran (flush=%d ran=%v)", got, ran)
	}
}

func TestFrameQueueRequestDuringFlushWaits(t *testing.T) {
	q := NewFrameQueue()
	frames := 0
	var tick func()
	tick = func() {
		frames++
		q.RequestFrame(tick)
	}
	q.RequestFrame(tick)
	for i := 0; i < 3; i++ {
		q.Flush()
	}
	if frames != 3 {
		t.Fatalf("frames=%d, want 3", frames)
	}
	if q.Pending() != 1 {
		t.Fatalf("Pending()=%d, want 1", q.Pending())
	}
}

func TestFrameQueuePostRunsFirst(t *testing.T) {
	q := NewFrameQueue()
	var order []string
	q.RequestFrame(func() { order = append(order, "frame") })
	q.Post(func() { order = append(order, "post") })
	q.Flush()
	if len(order) != 2 || order[0] != "post" || order[1] != "frame" {
		t.Fatalf("order=%v", order)
	}
}

func TestFrameQueuePostFromGoroutines(t *testing.T) {
	q := NewFrameQueue()
	var wg sync.WaitGroup
	n := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Post(func() { n++ })
		}()
	}
	wg.Wait()
	q.Flush()
	if n != 8 {
		t.Fatalf("posted calls ran %d times, want 8", n)
	}
}

func TestFrameQueueNilCallbacks(t *testing.T) {
	q := NewFrameQueue()
	if id := q.RequestFrame(nil); id != 0 {
		t.Fatalf("RequestFrame(nil)=%d, want 0", id)
	}
	q.Post(nil)
	if got := q.Flush(); got != 0 {
		t.Fatalf("Flush()=%d, want 0", got)
	}
}
