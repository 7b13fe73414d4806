package shadow

import (
	"github.com/vango-dev/shadow/pkg/schema"
)

// Object is the visible value of an object schema node. Its field set is
// fixed by the schema; every field is read and written through an
// accessor bound to the field's child node.
type Object struct {
	node      *ObjectNode
	accessors map[string]accessor
}

// Node returns the control node.
func (o *Object) Node() Node { return o.node }

// Get returns a field's current value: a scalar for scalar fields, the
// visible child value otherwise. Undeclared fields read as nil.
func (o *Object) Get(field string) any {
	a, ok := o.accessors[field]
	if !ok {
		return nil
	}
	return a.get()
}

// Set writes a declared field. Writes to undeclared fields are ignored.
func (o *Object) Set(field string, v any) {
	if a, ok := o.accessors[field]; ok {
		a.set(v)
	}
}

// Has reports whether field is declared.
func (o *Object) Has(field string) bool {
	_, ok := o.accessors[field]
	return ok
}

// Keys returns the declared fields in schema order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.node.keys...)
}

// Field returns a declared field's child node.
func (o *Object) Field(field string) Node {
	return o.node.children[field]
}

// ObjectNode backs an Object.
type ObjectNode struct {
	base
	keys     []string
	children map[string]Node
	self     *Object
}

func newObjectNode(b base) *ObjectNode {
	n := &ObjectNode{
		base:     b,
		children: make(map[string]Node, len(b.schema.Fields)),
	}
	n.node = n
	n.self = &Object{node: n, accessors: make(map[string]accessor, len(b.schema.Fields))}
	for _, f := range b.schema.Fields {
		n.addProperty(f.Name, f.Schema, nil)
	}
	return n
}

// addProperty builds the child for field, seeding its original from
// fieldOriginal or else from the parent's original, and installs the
// accessor on the visible object.
func (n *ObjectNode) addProperty(name string, s *schema.Schema, fieldOriginal any) {
	if fieldOriginal == nil {
		fieldOriginal = field(n.original, name)
	}
	child := build(n.env, s, fieldOriginal, n).Node()
	if _, exists := n.children[name]; !exists {
		n.keys = append(n.keys, name)
	}
	n.children[name] = child
	n.self.accessors[name] = newAccessor(child)
}

func (n *ObjectNode) Kind() Kind  { return ObjectKind }
func (n *ObjectNode) Self() Value { return n.self }
func (n *ObjectNode) Value() any  { return n.self }

// SetValue assigns every declared field from v. Undeclared fields in v
// are ignored and missing ones are set to nil.
func (n *ObjectNode) SetValue(v any) {
	m, ok := n.env.object(v)
	if !ok && v != nil {
		n.env.metrics.coerced(ObjectKind)
		n.env.logger.Debug("shadow: coerced non-object value", "kind", ObjectKind.String(), "type", typeName(v))
	}
	n.env.rt.Batch(func() {
		for _, k := range n.keys {
			n.self.Set(k, m[k])
		}
	})
}

func (n *ObjectNode) Clone() any {
	out := make(map[string]any, len(n.keys))
	for _, k := range n.keys {
		out[k] = n.children[k].Clone()
	}
	return out
}

func (n *ObjectNode) HasChanges() bool {
	for _, k := range n.keys {
		if n.children[k].HasChanges() {
			return true
		}
	}
	return false
}

func (n *ObjectNode) Changes() any {
	out := make(map[string]any)
	for _, k := range n.keys {
		if c := n.children[k]; c.HasChanges() {
			out[k] = c.Clone()
		}
	}
	return out
}

func (n *ObjectNode) Reset() {
	n.ResetOriginal(n.original)
}

func (n *ObjectNode) ResetOriginal(original any) {
	original = n.env.plain(original)
	n.original = original
	m, _ := asObject(original)
	n.env.rt.Batch(func() {
		for _, k := range n.keys {
			n.children[k].ResetOriginal(m[k])
		}
		n.SetValue(original)
	})
	if n.isRoot() {
		n.env.metrics.reset()
		n.env.logger.Debug("shadow: reset original", "kind", ObjectKind.String())
	}
}

func (n *ObjectNode) Child(key any) (Node, bool) {
	c, ok := n.children[keyString(key)]
	return c, ok
}
