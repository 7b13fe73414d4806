package reactive

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// testListener counts MarkDirty calls.
type testListener struct {
	id         uint64
	dirtyCount int
}

func newTestListener() *testListener {
	return &testListener{id: nextID()}
}

func (l *testListener) MarkDirty() {
	l.dirtyCount++
}

func (l *testListener) ID() uint64 {
	return l.id
}

func TestNonreactiveSuppressesTracking(t *testing.T) {
	rt := NewRuntime()
	count := NewCell(rt, 0)
	listener := newTestListener()

	rt.WithListener(listener, func() {
		rt.Nonreactive(func() {
			_ = count.Get()
		})
		if !rt.Active() {
			t.Error("listener should be restored after Nonreactive")
		}
	})

	count.Set(1)
	if listener.dirtyCount != 0 {
		t.Errorf("Nonreactive read should not subscribe, got %d notifications", listener.dirtyCount)
	}
}

func TestActiveAndCurrentComputation(t *testing.T) {
	rt := NewRuntime()
	if rt.Active() {
		t.Error("runtime should be inactive outside computations")
	}
	if rt.CurrentComputation() != nil {
		t.Error("CurrentComputation should be nil outside computations")
	}

	var seen *Computation
	c := rt.Autorun(func(c *Computation) {
		seen = rt.CurrentComputation()
	})
	if seen != c {
		t.Error("CurrentComputation should be the running computation")
	}
}

func TestBatchSingleNotification(t *testing.T) {
	rt := NewRuntime()
	a := NewCell(rt, 0)
	b := NewCell(rt, 0)
	c := NewCell(rt, 0)

	listener := newTestListener()
	rt.WithListener(listener, func() {
		_ = a.Get()
		_ = b.Get()
		_ = c.Get()
	})

	rt.Batch(func() {
		a.Set(1)
		b.Set(2)
		c.Set(3)
		if listener.dirtyCount != 0 {
			t.Errorf("notifications should wait for the batch to end, got %d", listener.dirtyCount)
		}
	})

	if listener.dirtyCount != 1 {
		t.Errorf("expected 1 notification (batched), got %d", listener.dirtyCount)
	}
}

func TestBatchNested(t *testing.T) {
	rt := NewRuntime()
	count := NewCell(rt, 0)
	listener := newTestListener()
	rt.WithListener(listener, func() {
		_ = count.Get()
	})

	rt.Batch(func() {
		count.Set(1)
		rt.Batch(func() {
			count.Set(2)
		})
		if listener.dirtyCount != 0 {
			t.Errorf("inner batch should not notify, got %d", listener.dirtyCount)
		}
	})

	if listener.dirtyCount != 1 {
		t.Errorf("expected 1 notification after outer batch, got %d", listener.dirtyCount)
	}
}

func TestFlushRunsEachComputationOnce(t *testing.T) {
	rt := NewRuntime()
	a := NewCell(rt, 0)
	b := NewCell(rt, 0)

	runs := 0
	rt.Autorun(func(c *Computation) {
		runs++
		_ = a.Get() + b.Get()
	})

	a.Set(1)
	b.Set(1)
	a.Set(2)
	if runs != 1 {
		t.Errorf("computation should wait for Flush, ran %d times", runs)
	}
	if !rt.Pending() {
		t.Error("runtime should report pending computations")
	}

	rt.Flush()
	if runs != 2 {
		t.Errorf("expected exactly one re-run per flush, got %d runs", runs)
	}
	if rt.Pending() {
		t.Error("queue should be empty after Flush")
	}
}

func TestFlushPassLimit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rt := NewRuntime(WithMaxFlushPasses(5), WithLogger(logger))
	count := NewCell(rt, 0)

	runs := 0
	rt.Autorun(func(c *Computation) {
		runs++
		// Reads and writes the same cell: invalidates itself on every run.
		count.Set(count.Get() + 1)
	})

	rt.Flush()

	if runs != 6 {
		t.Errorf("expected initial run plus 5 passes, got %d runs", runs)
	}
	if rt.Pending() {
		t.Error("queue should be dropped after the pass limit")
	}
	if !strings.Contains(buf.String(), "flush pass limit exceeded") {
		t.Errorf("expected warning to be logged, got %q", buf.String())
	}
}

func TestAutoFlush(t *testing.T) {
	rt := NewRuntime(WithAutoFlush())
	count := NewCell(rt, 0)

	runs := 0
	var last int
	rt.Autorun(func(c *Computation) {
		runs++
		last = count.Get()
	})

	count.Set(3)
	if runs != 2 || last != 3 {
		t.Errorf("auto flush should re-run synchronously: runs=%d last=%d", runs, last)
	}

	rt.Batch(func() {
		count.Set(4)
		count.Set(5)
	})
	if runs != 3 || last != 5 {
		t.Errorf("batch should produce one re-run: runs=%d last=%d", runs, last)
	}
}

func TestFlushIsReentrantSafe(t *testing.T) {
	rt := NewRuntime()
	count := NewCell(rt, 0)

	runs := 0
	rt.Autorun(func(c *Computation) {
		runs++
		_ = count.Get()
		rt.Flush()
	})

	count.Set(1)
	rt.Flush()
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
}
