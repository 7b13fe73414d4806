package shadow

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/vango-dev/shadow/pkg/reactive"
	"github.com/vango-dev/shadow/pkg/schema"
)

// Array is the visible value of an array schema node. Element identity
// is stable: the node at an index survives whole-array replacement and
// only trailing nodes are dropped when the array shrinks.
type Array struct {
	node      *ArrayNode
	accessors []accessor
}

// Node returns the control node.
func (a *Array) Node() Node { return a.node }

// Len returns the element count and depends on the array's shape.
func (a *Array) Len() int {
	a.node.shape.Depend()
	return len(a.accessors)
}

// At returns element i: a scalar for scalar items, the visible element
// otherwise. Out of range indexes return nil and depend on the shape so
// the reader sees the element once it appears; in range reads rerun when
// the element is dropped.
func (a *Array) At(i int) any {
	if i < 0 || i >= len(a.accessors) {
		a.node.shape.Depend()
		return nil
	}
	return a.accessors[i].get()
}

// SetAt writes element i. Writing past the end grows the array, filling
// the gap with nil elements.
func (a *Array) SetAt(i int, v any) {
	if i < 0 {
		panic(fmt.Sprintf("shadow: negative array index %d", i))
	}
	if i < len(a.accessors) {
		a.accessors[i].set(v)
		return
	}
	a.mutate("set", func(items []any) ([]any, any) {
		for len(items) <= i {
			items = append(items, nil)
		}
		items[i] = v
		return items, nil
	})
}

// Items returns every element as At would.
func (a *Array) Items() []any {
	a.node.shape.Depend()
	out := make([]any, len(a.accessors))
	for i, acc := range a.accessors {
		out[i] = acc.get()
	}
	return out
}

// Field returns the child node at index i.
func (a *Array) Field(i int) Node {
	if i < 0 || i >= len(a.node.children) {
		return nil
	}
	return a.node.children[i]
}

// Pop removes and returns the last element.
func (a *Array) Pop() any {
	return a.mutate("pop", func(items []any) ([]any, any) {
		if len(items) == 0 {
			return items, nil
		}
		last := items[len(items)-1]
		return items[:len(items)-1], last
	})
}

// Push appends items and returns the new length.
func (a *Array) Push(items ...any) int {
	return a.mutate("push", func(cur []any) ([]any, any) {
		cur = append(cur, items...)
		return cur, len(cur)
	}).(int)
}

// Shift removes and returns the first element.
func (a *Array) Shift() any {
	return a.mutate("shift", func(items []any) ([]any, any) {
		if len(items) == 0 {
			return items, nil
		}
		return items[1:], items[0]
	})
}

// Unshift prepends items and returns the new length.
func (a *Array) Unshift(items ...any) int {
	return a.mutate("unshift", func(cur []any) ([]any, any) {
		next := make([]any, 0, len(items)+len(cur))
		next = append(next, items...)
		next = append(next, cur...)
		return next, len(next)
	}).(int)
}

// Reverse reverses the elements in place and returns the reversed values.
func (a *Array) Reverse() []any {
	return a.mutate("reverse", func(items []any) ([]any, any) {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
		return items, items
	}).([]any)
}

// Sort sorts the elements with less and returns the sorted values. A nil
// less compares the elements' string forms.
func (a *Array) Sort(less func(x, y any) bool) []any {
	if less == nil {
		less = func(x, y any) bool { return fmt.Sprint(x) < fmt.Sprint(y) }
	}
	return a.mutate("sort", func(items []any) ([]any, any) {
		sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
		return items, items
	}).([]any)
}

// Splice removes deleteCount elements starting at start, inserts items in
// their place and returns the removed elements. A negative start counts
// from the end.
func (a *Array) Splice(start, deleteCount int, items ...any) []any {
	return a.mutate("splice", func(cur []any) ([]any, any) {
		n := len(cur)
		if start < 0 {
			start = max(n+start, 0)
		}
		start = min(start, n)
		deleteCount = min(max(deleteCount, 0), n-start)

		removed := append([]any{}, cur[start:start+deleteCount]...)
		next := make([]any, 0, n-deleteCount+len(items))
		next = append(next, cur[:start]...)
		next = append(next, items...)
		next = append(next, cur[start+deleteCount:]...)
		return next, removed
	}).([]any)
}

// mutate applies op to an untracked snapshot of the elements and writes
// the result back through SetValue.
func (a *Array) mutate(op string, fn func(items []any) ([]any, any)) any {
	n := a.node
	var snapshot []any
	n.env.rt.Nonreactive(func() {
		snapshot = n.Clone().([]any)
	})
	next, result := fn(snapshot)
	n.SetValue(next)
	n.env.metrics.mutation(op)
	return result
}

// ArrayNode backs an Array.
type ArrayNode struct {
	base
	shape    *reactive.Dependency
	item     *schema.Schema
	children []Node
	self     *Array
}

func newArrayNode(b base) *ArrayNode {
	n := &ArrayNode{
		base:  b,
		shape: reactive.NewDependency(b.env.rt),
		item:  b.schema.ItemSchema(),
	}
	n.node = n
	n.self = &Array{node: n}
	return n
}

func (n *ArrayNode) Kind() Kind  { return ArrayKind }
func (n *ArrayNode) Self() Value { return n.self }

func (n *ArrayNode) Value() any {
	n.shape.Depend()
	return n.self
}

func (n *ArrayNode) addElement() {
	i := len(n.children)
	child := build(n.env, n.item, index(n.original, i), n).Node()
	n.children = append(n.children, child)
	n.self.accessors = append(n.self.accessors, newSlot(child))
}

func (n *ArrayNode) dropLast() {
	last := len(n.children) - 1
	n.children[last] = nil
	n.children = n.children[:last]
	n.self.accessors[last].release()
	n.self.accessors = n.self.accessors[:last]
}

// SetValue reconciles the element count with v, then assigns each
// element. The shape changes at most once per call.
func (n *ArrayNode) SetValue(v any) {
	items, ok := n.env.list(v)
	if !ok && v != nil {
		n.env.metrics.coerced(ArrayKind)
		n.env.logger.Debug("shadow: coerced non-array value", "kind", ArrayKind.String(), "type", typeName(v))
	}
	n.env.rt.Batch(func() {
		before := len(n.children)
		for len(n.children) > len(items) {
			n.dropLast()
		}
		for len(n.children) < len(items) {
			n.addElement()
		}
		for i, it := range items {
			n.children[i].SetValue(it)
		}
		if len(n.children) != before {
			n.shape.Changed()
			n.env.metrics.shapeChanged(ArrayKind)
		}
	})
}

func (n *ArrayNode) Clone() any {
	n.shape.Depend()
	out := make([]any, len(n.children))
	for i, c := range n.children {
		out[i] = c.Clone()
	}
	return out
}

func (n *ArrayNode) HasChanges() bool {
	n.shape.Depend()
	orig, _ := asList(n.original)
	if len(orig) != len(n.children) {
		return true
	}
	for _, c := range n.children {
		if c.HasChanges() {
			return true
		}
	}
	return false
}

// Changes maps changed indexes to their clones. Indexes present in the
// original but removed since map to nil.
func (n *ArrayNode) Changes() any {
	n.shape.Depend()
	out := make(map[int]any)
	for i, c := range n.children {
		if c.HasChanges() {
			out[i] = c.Clone()
		}
	}
	orig, _ := asList(n.original)
	for i := len(n.children); i < len(orig); i++ {
		out[i] = nil
	}
	return out
}

func (n *ArrayNode) Reset() {
	n.ResetOriginal(n.original)
}

func (n *ArrayNode) ResetOriginal(original any) {
	original = n.env.plain(original)
	n.original = original
	l, _ := asList(original)
	n.env.rt.Batch(func() {
		for i, c := range n.children {
			var o any
			if i < len(l) {
				o = l[i]
			}
			c.ResetOriginal(o)
		}
		n.SetValue(original)
	})
	if n.isRoot() {
		n.env.metrics.reset()
		n.env.logger.Debug("shadow: reset original", "kind", ArrayKind.String())
	}
}

func (n *ArrayNode) Child(key any) (Node, bool) {
	var i int
	switch k := key.(type) {
	case int:
		i = k
	case string:
		parsed, err := strconv.Atoi(k)
		if err != nil {
			return nil, false
		}
		i = parsed
	default:
		return nil, false
	}
	if i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}
