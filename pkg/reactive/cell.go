package reactive

import "reflect"

// Cell is a reactive value container.
// Reading a Cell's value while a computation runs subscribes that
// computation to receive invalidations when the value changes.
type Cell[T any] struct {
	dep *Dependency

	// value is the current cell value.
	value T

	// equal is the equality function used to determine if the value changed.
	// If nil, uses default equality checking.
	equal func(T, T) bool
}

// NewCell creates a new cell with the given initial value.
func NewCell[T any](rt *Runtime, initial T) *Cell[T] {
	return &Cell[T]{
		dep:   NewDependency(rt),
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener.
func (c *Cell[T]) Get() T {
	c.dep.Depend()
	return c.value
}

// Peek returns the current value without subscribing.
func (c *Cell[T]) Peek() T {
	return c.value
}

// Set updates the value and invalidates subscribers if it changed
// according to the cell's equality function. It reports whether the
// value changed.
func (c *Cell[T]) Set(value T) bool {
	if c.equals(c.value, value) {
		return false
	}
	c.value = value
	c.dep.Changed()
	return true
}

// Update reads and replaces the value in one step.
func (c *Cell[T]) Update(fn func(T) T) bool {
	return c.Set(fn(c.value))
}

// WithEquals configures a custom equality function and returns the cell.
func (c *Cell[T]) WithEquals(fn func(T, T) bool) *Cell[T] {
	c.equal = fn
	return c
}

// ID returns the unique identifier for this cell.
func (c *Cell[T]) ID() uint64 {
	return c.dep.id
}

// Dependency exposes the cell's underlying dependency.
func (c *Cell[T]) Dependency() *Dependency {
	return c.dep
}

func (c *Cell[T]) equals(a, b T) bool {
	if c.equal != nil {
		return c.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for basic comparable kinds and reflect.DeepEqual
// for everything else.
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	switch av.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, string, bool:
		return av == bv
	default:
		return reflect.DeepEqual(a, b)
	}
}
