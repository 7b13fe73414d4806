package reactive

// Dependency is a reactive invalidation signal without a value.
// Depend subscribes the running computation; Changed invalidates every
// subscriber. Cell embeds one to share subscription logic.
type Dependency struct {
	rt *Runtime
	id uint64

	// subs are the listeners subscribed to this dependency.
	subs []Listener
}

// NewDependency creates a Dependency bound to rt.
func NewDependency(rt *Runtime) *Dependency {
	return &Dependency{
		rt: rt,
		id: nextID(),
	}
}

// ID returns the unique identifier for this dependency.
func (d *Dependency) ID() uint64 {
	return d.id
}

// Runtime returns the runtime this dependency belongs to.
func (d *Dependency) Runtime() *Runtime {
	return d.rt
}

// Depend subscribes the current listener. It reports whether a listener
// was subscribed; outside a tracked context it does nothing.
func (d *Dependency) Depend() bool {
	l := d.rt.listener
	if l == nil {
		return false
	}
	d.subscribe(l)
	if t, ok := l.(sourceTracker); ok {
		t.addSource(d)
	}
	return true
}

// Changed invalidates every current subscriber.
func (d *Dependency) Changed() {
	if len(d.subs) == 0 {
		return
	}
	// Copy: subscribers unsubscribe themselves when they re-run.
	subs := make([]Listener, len(d.subs))
	copy(subs, d.subs)
	d.rt.notify(subs)
}

// HasDependents reports whether anything is subscribed.
func (d *Dependency) HasDependents() bool {
	return len(d.subs) > 0
}

// subscribe adds a listener, deduplicated by listener ID.
func (d *Dependency) subscribe(l Listener) {
	lid := l.ID()
	for _, existing := range d.subs {
		if existing.ID() == lid {
			return
		}
	}
	d.subs = append(d.subs, l)
}

// unsubscribe removes a listener.
func (d *Dependency) unsubscribe(l Listener) {
	lid := l.ID()
	for i, existing := range d.subs {
		if existing.ID() == lid {
			// Remove by swapping with last element (order doesn't matter)
			d.subs[i] = d.subs[len(d.subs)-1]
			d.subs = d.subs[:len(d.subs)-1]
			return
		}
	}
}
