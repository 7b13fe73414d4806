package reactive

import (
	"log/slog"
)

// DefaultMaxFlushPasses bounds how many invalidation waves a single Flush
// processes before giving up.
const DefaultMaxFlushPasses = 100

// Runtime holds the reactive state shared by cells, dependencies and
// computations: the running computation, the batch depth and the queue of
// computations waiting for the next flush.
type Runtime struct {
	// listener is what's currently tracking dependencies.
	// nil means no tracking (reads don't create subscriptions).
	listener Listener

	// running counts computations currently executing (nested runs included).
	running int

	// batchDepth tracks nested Batch() calls.
	batchDepth int

	// pendingUpdates accumulates listeners to notify when a batch completes.
	pendingUpdates []Listener

	// queue holds invalidated computations waiting for Flush.
	queue []*Computation

	flushing  bool
	autoFlush bool
	maxPasses int
	logger    *slog.Logger
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithAutoFlush makes the runtime flush synchronously after the outermost
// write (or batch) completes, instead of waiting for an explicit Flush.
func WithAutoFlush() Option {
	return func(rt *Runtime) {
		rt.autoFlush = true
	}
}

// WithMaxFlushPasses sets the flush pass limit. Values below 1 are ignored.
func WithMaxFlushPasses(n int) Option {
	return func(rt *Runtime) {
		if n > 0 {
			rt.maxPasses = n
		}
	}
}

// WithLogger sets the logger used for runtime warnings.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// NewRuntime creates a Runtime.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		maxPasses: DefaultMaxFlushPasses,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// setListener sets the current listener and returns the previous one.
func (rt *Runtime) setListener(l Listener) Listener {
	old := rt.listener
	rt.listener = l
	return old
}

// Active reports whether a listener is currently tracking reads.
func (rt *Runtime) Active() bool {
	return rt.listener != nil
}

// CurrentComputation returns the running computation, or nil when reads
// are untracked or the current listener is not a Computation.
func (rt *Runtime) CurrentComputation() *Computation {
	c, _ := rt.listener.(*Computation)
	return c
}

// WithListener runs fn with l as the current listener.
func (rt *Runtime) WithListener(l Listener, fn func()) {
	old := rt.setListener(l)
	defer rt.setListener(old)
	fn()
}

// Nonreactive runs fn without tracking reads as dependencies.
//
// Example:
//
//	rt.Nonreactive(func() {
//	    // Reading count here won't subscribe the running computation
//	    value := count.Get()
//	})
func (rt *Runtime) Nonreactive(fn func()) {
	old := rt.setListener(nil)
	defer rt.setListener(old)
	fn()
}

// Batch groups multiple writes into a single notification phase.
// Batches can be nested; notifications fire when the outermost batch
// completes.
func (rt *Runtime) Batch(fn func()) {
	rt.batchDepth++

	defer func() {
		rt.batchDepth--
		if rt.batchDepth == 0 {
			rt.processPendingUpdates()
			rt.maybeFlush()
		}
	}()

	fn()
}

// notify marks subs dirty, or queues them while a batch is open.
func (rt *Runtime) notify(subs []Listener) {
	if rt.batchDepth > 0 {
		rt.pendingUpdates = append(rt.pendingUpdates, subs...)
		return
	}
	for _, sub := range subs {
		sub.MarkDirty()
	}
	rt.maybeFlush()
}

// processPendingUpdates deduplicates and notifies all pending listeners.
func (rt *Runtime) processPendingUpdates() {
	updates := rt.pendingUpdates
	rt.pendingUpdates = nil
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, l := range updates {
		id := l.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		l.MarkDirty()
	}
}

// schedule queues an invalidated computation for the next flush.
func (rt *Runtime) schedule(c *Computation) {
	rt.queue = append(rt.queue, c)
}

// Pending reports whether any computation is waiting for a flush.
func (rt *Runtime) Pending() bool {
	return len(rt.queue) > 0
}

func (rt *Runtime) maybeFlush() {
	if rt.autoFlush && !rt.flushing && rt.running == 0 && rt.batchDepth == 0 {
		rt.Flush()
	}
}

// Flush re-runs every invalidated computation. A computation invalidated
// several times before the flush runs once. Computations invalidated while
// the flush is running are handled in a further pass, up to the configured
// pass limit; past it the remaining queue is dropped and a warning logged.
// Flush is a no-op when called from inside a flush.
func (rt *Runtime) Flush() {
	if rt.flushing {
		return
	}
	rt.flushing = true
	defer func() { rt.flushing = false }()

	for pass := 0; len(rt.queue) > 0; pass++ {
		if pass >= rt.maxPasses {
			rt.logger.Warn("reactive: flush pass limit exceeded",
				"code", "S201",
				"passes", pass,
				"dropped", len(rt.queue))
			for _, c := range rt.queue {
				c.pending = false
			}
			rt.queue = nil
			return
		}

		queue := rt.queue
		rt.queue = nil
		for _, c := range queue {
			if c.pending && !c.stopped {
				c.run()
			}
		}
	}
}
