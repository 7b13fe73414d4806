package shadow

import (
	"github.com/vango-dev/shadow/pkg/reactive"
)

// Property is the visible value of a scalar schema node.
type Property struct {
	node *PropertyNode
}

// Node returns the control node.
func (p *Property) Node() Node { return p.node }

// Get returns the current value, tracked.
func (p *Property) Get() any { return p.node.Value() }

// Set writes v.
func (p *Property) Set(v any) { p.node.SetValue(v) }

// PropertyNode holds a scalar in a reactive cell.
type PropertyNode struct {
	base
	cell *reactive.Cell[any]
	self *Property
}

func newPropertyNode(b base) *PropertyNode {
	n := &PropertyNode{base: b}
	n.node = n
	n.self = &Property{node: n}
	n.cell = reactive.NewCell[any](b.env.rt, nil).WithEquals(b.env.equal)
	return n
}

func (n *PropertyNode) Kind() Kind  { return PropertyKind }
func (n *PropertyNode) Self() Value { return n.self }
func (n *PropertyNode) Value() any  { return n.cell.Get() }
func (n *PropertyNode) Clone() any  { return n.cell.Get() }

// SetValue stores v. Writes equal to the current value do not notify.
func (n *PropertyNode) SetValue(v any) {
	n.cell.Set(n.env.plain(v))
}

func (n *PropertyNode) HasChanges() bool {
	return !n.env.equal(n.cell.Get(), n.original)
}

func (n *PropertyNode) Changes() any {
	if !n.HasChanges() {
		return nil
	}
	return n.Clone()
}

func (n *PropertyNode) Reset() {
	n.ResetOriginal(n.original)
}

func (n *PropertyNode) ResetOriginal(original any) {
	original = n.env.plain(original)
	n.original = original
	n.SetValue(original)
	if n.isRoot() {
		n.env.metrics.reset()
		n.env.logger.Debug("shadow: reset original", "kind", PropertyKind.String())
	}
}

func (n *PropertyNode) Child(any) (Node, bool) {
	return nil, false
}
