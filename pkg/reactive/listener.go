package reactive

// Listener is anything that can be notified when a dependency changes.
// Computation implements it; tests and hosts may supply their own.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// sourceTracker is implemented by listeners that want to know which
// dependencies they subscribed to, so they can unsubscribe before re-running.
type sourceTracker interface {
	addSource(d *Dependency)
}
