package shadow

import (
	"slices"
	"sort"

	"github.com/vango-dev/shadow/pkg/reactive"
	"github.com/vango-dev/shadow/pkg/schema"
)

// Dict is the visible value of a dict schema node: a string-keyed map
// whose values all share the item schema.
type Dict struct {
	node      *DictNode
	accessors map[string]accessor
}

// Node returns the control node.
func (d *Dict) Node() Node { return d.node }

// Get returns the value under key, or nil. A missing key depends on the
// shape so the reader sees the key once it is added.
func (d *Dict) Get(key string) any {
	a, ok := d.accessors[key]
	if !ok {
		d.node.shape.Depend()
		return nil
	}
	return a.get()
}

// Set writes key, adding it when missing.
func (d *Dict) Set(key string, v any) {
	if a, ok := d.accessors[key]; ok {
		a.set(v)
		return
	}
	n := d.node
	n.env.rt.Batch(func() {
		n.addKey(key).SetValue(v)
		n.shapeChanged()
	})
}

// Delete removes key and reports whether it was present.
func (d *Dict) Delete(key string) bool {
	n := d.node
	if _, ok := n.children[key]; !ok {
		return false
	}
	n.removeKey(key)
	n.shapeChanged()
	return true
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool {
	d.node.shape.Depend()
	_, ok := d.accessors[key]
	return ok
}

// Keys returns the present keys in insertion order.
func (d *Dict) Keys() []string {
	d.node.shape.Depend()
	return append([]string(nil), d.node.keys...)
}

// Len returns the number of keys.
func (d *Dict) Len() int {
	d.node.shape.Depend()
	return len(d.node.keys)
}

// Field returns the child node under key.
func (d *Dict) Field(key string) Node {
	return d.node.children[key]
}

// DictNode backs a Dict.
type DictNode struct {
	base
	shape    *reactive.Dependency
	item     *schema.Schema
	keys     []string
	children map[string]Node
	self     *Dict
}

func newDictNode(b base) *DictNode {
	n := &DictNode{
		base:     b,
		shape:    reactive.NewDependency(b.env.rt),
		item:     b.schema.ItemSchema(),
		children: make(map[string]Node),
	}
	n.node = n
	n.self = &Dict{node: n, accessors: make(map[string]accessor)}
	return n
}

func (n *DictNode) Kind() Kind  { return DictKind }
func (n *DictNode) Self() Value { return n.self }

func (n *DictNode) Value() any {
	n.shape.Depend()
	return n.self
}

func (n *DictNode) addKey(key string) Node {
	child := build(n.env, n.item, field(n.original, key), n).Node()
	n.keys = append(n.keys, key)
	n.children[key] = child
	n.self.accessors[key] = newSlot(child)
	return child
}

func (n *DictNode) removeKey(key string) {
	if a, ok := n.self.accessors[key]; ok {
		a.release()
	}
	delete(n.children, key)
	delete(n.self.accessors, key)
	if i := slices.Index(n.keys, key); i >= 0 {
		n.keys = slices.Delete(n.keys, i, i+1)
	}
}

func (n *DictNode) shapeChanged() {
	n.shape.Changed()
	n.env.metrics.shapeChanged(DictKind)
}

// SetValue makes the key set equal to v's, adding new keys in sorted
// order, then assigns every value. The shape changes at most once.
func (n *DictNode) SetValue(v any) {
	m, ok := n.env.object(v)
	if !ok && v != nil {
		n.env.metrics.coerced(DictKind)
		n.env.logger.Debug("shadow: coerced non-object value", "kind", DictKind.String(), "type", typeName(v))
	}
	n.env.rt.Batch(func() {
		changed := false
		for _, k := range append([]string(nil), n.keys...) {
			if _, keep := m[k]; !keep {
				n.removeKey(k)
				changed = true
			}
		}
		for _, k := range sortedKeys(m) {
			if _, exists := n.children[k]; !exists {
				n.addKey(k)
				changed = true
			}
		}
		for _, k := range n.keys {
			n.children[k].SetValue(m[k])
		}
		if changed {
			n.shapeChanged()
		}
	})
}

func (n *DictNode) Clone() any {
	n.shape.Depend()
	out := make(map[string]any, len(n.keys))
	for _, k := range n.keys {
		out[k] = n.children[k].Clone()
	}
	return out
}

func (n *DictNode) HasChanges() bool {
	n.shape.Depend()
	orig, _ := asObject(n.original)
	if len(orig) != len(n.keys) {
		return true
	}
	for _, k := range n.keys {
		if _, ok := orig[k]; !ok {
			return true
		}
		if n.children[k].HasChanges() {
			return true
		}
	}
	return false
}

// Changes maps changed keys to their clones. Keys present in the
// original but deleted since map to nil.
func (n *DictNode) Changes() any {
	n.shape.Depend()
	out := make(map[string]any)
	orig, _ := asObject(n.original)
	for _, k := range n.keys {
		c := n.children[k]
		if _, ok := orig[k]; !ok || c.HasChanges() {
			out[k] = c.Clone()
		}
	}
	for k := range orig {
		if _, ok := n.children[k]; !ok {
			out[k] = nil
		}
	}
	return out
}

func (n *DictNode) Reset() {
	n.ResetOriginal(n.original)
}

func (n *DictNode) ResetOriginal(original any) {
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
		n.env.logger.Debug("shadow: reset original", "kind", DictKind.String())
	}
}

func (n *DictNode) Child(key any) (Node, bool) {
	c, ok := n.children[keyString(key)]
	return c, ok
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
