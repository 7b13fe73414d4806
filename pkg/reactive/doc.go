// Package reactive provides the fine-grained dependency tracking that
// shadow values are built on.
//
// Dependencies are tracked automatically at runtime: reading a Cell or
// calling Dependency.Depend while a Computation runs subscribes that
// computation. Writing invalidates the subscribers, which re-run on the
// next Flush.
//
// # Core Types
//
// Cell[T] is a reactive value container:
//
//	rt := reactive.NewRuntime()
//	count := reactive.NewCell(rt, 0)
//	value := count.Get()  // Read (subscribes the running computation)
//	count.Set(5)          // Write (invalidates subscribers)
//
// Dependency is a bare invalidation signal with no value of its own:
//
//	shape := reactive.NewDependency(rt)
//	shape.Depend()   // subscribe
//	shape.Changed()  // invalidate subscribers
//
// Computation re-runs its function when anything it read changes:
//
//	rt.Autorun(func(c *reactive.Computation) {
//	    fmt.Println("Count is:", count.Get())
//	})
//	count.Set(6)
//	rt.Flush() // prints "Count is: 6"
//
// # Untracked reads
//
// Nonreactive runs a function with no current computation, so nothing it
// reads becomes a dependency:
//
//	rt.Nonreactive(func() {
//	    snapshot = count.Get()
//	})
//
// # Batching
//
// Batch defers invalidations until the outermost batch completes. Each
// subscriber is notified once.
//
// # Thread Safety
//
// A Runtime and everything created from it is single-threaded. Each
// goroutine that needs reactivity should own its own Runtime.
package reactive
