package reactive

import "testing"

func TestDependencyDependOutsideComputation(t *testing.T) {
	rt := NewRuntime()
	dep := NewDependency(rt)

	if dep.Depend() {
		t.Error("Depend should report false without a listener")
	}
	if dep.HasDependents() {
		t.Error("no dependents expected")
	}
	if dep.Runtime() != rt {
		t.Error("Runtime() should return the owning runtime")
	}
}

func TestDependencyChangedInvalidatesOnce(t *testing.T) {
	rt := NewRuntime()
	dep := NewDependency(rt)
	listener := newTestListener()

	rt.WithListener(listener, func() {
		if !dep.Depend() {
			t.Error("Depend should report true inside a tracked context")
		}
		dep.Depend()
	})

	dep.Changed()
	if listener.dirtyCount != 1 {
		t.Errorf("expected 1 notification (deduplicated subscription), got %d", listener.dirtyCount)
	}
}

func TestDependencyComputationResubscribes(t *testing.T) {
	rt := NewRuntime()
	dep := NewDependency(rt)
	other := NewDependency(rt)

	useOther := false
	runs := 0
	rt.Autorun(func(c *Computation) {
		runs++
		if useOther {
			other.Depend()
		} else {
			dep.Depend()
		}
	})

	useOther = true
	dep.Changed()
	rt.Flush()
	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}

	// The second run only read other: dep no longer triggers.
	dep.Changed()
	rt.Flush()
	if runs != 2 {
		t.Errorf("stale dependency should not re-run computation, got %d runs", runs)
	}
	if dep.HasDependents() {
		t.Error("stale dependency should have been unsubscribed")
	}

	other.Changed()
	rt.Flush()
	if runs != 3 {
		t.Errorf("expected 3 runs, got %d", runs)
	}
}
