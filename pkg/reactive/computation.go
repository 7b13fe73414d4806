package reactive

// Computation is a function that re-runs whenever a dependency it read
// during its last run changes. Re-runs happen on Flush, at most once per
// invalidation wave.
type Computation struct {
	rt *Runtime
	id uint64

	fn func(c *Computation)

	// sources are the dependencies read during the last run.
	sources []*Dependency

	pending  bool
	stopped  bool
	firstRun bool
	runs     int
}

// Autorun creates a computation and runs it immediately.
//
// Example:
//
//	c := rt.Autorun(func(c *reactive.Computation) {
//	    fmt.Println("Count is:", count.Get())
//	})
//	defer c.Stop()
func (rt *Runtime) Autorun(fn func(c *Computation)) *Computation {
	c := &Computation{
		rt:       rt,
		id:       nextID(),
		fn:       fn,
		firstRun: true,
	}
	c.run()
	rt.maybeFlush()
	return c
}

// ID returns the unique identifier for this computation.
// Implements the Listener interface.
func (c *Computation) ID() uint64 {
	return c.id
}

// MarkDirty schedules the computation for the next flush.
// Implements the Listener interface.
func (c *Computation) MarkDirty() {
	if c.stopped || c.pending {
		return
	}
	c.pending = true
	c.rt.schedule(c)
}

// Invalidate schedules a re-run as if a dependency had changed.
func (c *Computation) Invalidate() {
	c.MarkDirty()
	c.rt.maybeFlush()
}

// FirstRun reports whether the computation is executing for the first time.
func (c *Computation) FirstRun() bool {
	return c.firstRun
}

// Runs returns how many times the computation has executed.
func (c *Computation) Runs() int {
	return c.runs
}

// Stopped reports whether Stop has been called.
func (c *Computation) Stopped() bool {
	return c.stopped
}

// Stop unsubscribes the computation from all sources. It never runs again.
func (c *Computation) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	c.pending = false
	c.clearSources()
}

func (c *Computation) addSource(d *Dependency) {
	for _, s := range c.sources {
		if s == d {
			return
		}
	}
	c.sources = append(c.sources, d)
}

func (c *Computation) clearSources() {
	for _, s := range c.sources {
		s.unsubscribe(c)
	}
	c.sources = c.sources[:0]
}

// run executes the computation with itself as the current listener.
func (c *Computation) run() {
	if c.stopped {
		return
	}
	c.pending = false

	// Dependencies are re-collected on every run.
	c.clearSources()

	old := c.rt.setListener(c)
	c.rt.running++
	defer func() {
		c.rt.running--
		c.rt.setListener(old)
		c.firstRun = false
		c.runs++
	}()

	c.fn(c)
}
