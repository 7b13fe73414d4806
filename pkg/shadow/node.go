package shadow

import (
	"fmt"

	"github.com/vango-dev/shadow/pkg/reactive"
	"github.com/vango-dev/shadow/pkg/schema"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

// Kind identifies a node variant.
type Kind int

const (
	// AnyKind matches every node kind when registering helpers.
	AnyKind Kind = iota
	PropertyKind
	ObjectKind
	ArrayKind
	DictKind
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case AnyKind:
		return "any"
	case PropertyKind:
		return "property"
	case ObjectKind:
		return "object"
	case ArrayKind:
		return "array"
	case DictKind:
		return "dict"
	default:
		return "unknown"
	}
}

func kindOf(s *schema.Schema) Kind {
	switch s.Kind {
	case schema.Object:
		return ObjectKind
	case schema.Array:
		return ArrayKind
	case schema.Dict:
		return DictKind
	default:
		return PropertyKind
	}
}

// Value is a visible shadow value. Node is the reserved accessor to the
// control node behind it.
type Value interface {
	Node() Node
}

// Node is the control surface behind a shadow value.
type Node interface {
	// Kind returns the node variant.
	Kind() Kind

	// Schema returns the schema the node was built from.
	Schema() *schema.Schema

	// Runtime returns the reactive runtime the node tracks reads on.
	Runtime() *reactive.Runtime

	// Original returns the current baseline.
	Original() any

	// Parent returns the parent node, or nil at the root.
	Parent() Node

	// Self returns the visible value this node backs.
	Self() Value

	// Value returns the live value: the scalar for properties, the
	// visible *Object, *Array or *Dict otherwise. Reads are tracked.
	Value() any

	// SetValue replaces the whole subtree's value. Non-object input to an
	// object or dict node, and non-list input to an array node, coerce to
	// the empty value.
	SetValue(v any)

	// Clone returns a plain copy of the current value: scalars,
	// map[string]any and []any. Reads are tracked.
	Clone() any

	// HasChanges reports whether the value differs from the baseline.
	HasChanges() bool

	// Changes returns only what differs from the baseline: the clone for
	// a changed property (nil otherwise), a sparse map[string]any for
	// objects and dicts, a sparse map[int]any for arrays.
	Changes() any

	// Reset reverts the live value to the current baseline.
	Reset()

	// ResetOriginal replaces the baseline of the whole subtree and
	// overwrites the live value with it.
	ResetOriginal(original any)

	// Root returns the visible value at the top of the tree.
	Root() Value

	// Check validates the current value; it returns a
	// *schema.ValidationError when invalid.
	Check() error

	// Errors lists every failing rule for the current value.
	Errors() []schema.ErrorDescriptor

	// Match reports whether the current value satisfies the schema.
	Match() bool

	// Child returns the child node for a field name, dict key or index.
	Child(key any) (Node, bool)

	// Call invokes a helper registered with WithHelper.
	Call(name string, args ...any) (any, error)

	core() *base
}

// Helper is an extra node operation registered at construction time.
type Helper func(n Node, args ...any) (any, error)

// base holds what every node variant shares.
type base struct {
	env      *env
	schema   *schema.Schema
	original any
	parent   Node

	// node is the variant embedding this base.
	node Node
}

func (b *base) core() *base                { return b }
func (b *base) Schema() *schema.Schema     { return b.schema }
func (b *base) Runtime() *reactive.Runtime { return b.env.rt }
func (b *base) Original() any              { return b.original }
func (b *base) Parent() Node               { return b.parent }

// Root walks parent links to the top-level node.
func (b *base) Root() Value {
	n := b.node
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n.Self()
}

func (b *base) rootClone() any {
	return b.Root().Node().Clone()
}

func (b *base) Check() error {
	return b.env.evaluator.Check(b.schema, b.node.Clone(), b.rootClone())
}

func (b *base) Errors() []schema.ErrorDescriptor {
	return b.env.evaluator.Errors(b.schema, b.node.Clone(), b.rootClone(), []schema.ErrorDescriptor{})
}

func (b *base) Match() bool {
	return b.env.evaluator.Match(b.schema, b.node.Clone(), b.rootClone())
}

func (b *base) Call(name string, args ...any) (any, error) {
	h, ok := b.env.helper(b.node.Kind(), name)
	if !ok {
		return nil, serrors.New("S200").WithDetailf("no helper %q for %s nodes", name, b.node.Kind())
	}
	return h(b.node, args...)
}

func (b *base) isRoot() bool {
	return b.parent == nil
}

// accessor is a get/set pair bound to one child node. Container
// elements also carry a slot dependency that changes when the element is
// removed, so readers of a dropped element rerun.
type accessor struct {
	node Node
	slot *reactive.Dependency
}

func (a accessor) get() any {
	if a.slot != nil {
		a.slot.Depend()
	}
	return a.node.Value()
}

func (a accessor) set(v any) { a.node.SetValue(v) }

func (a accessor) release() {
	if a.slot != nil {
		a.slot.Changed()
	}
}

func newAccessor(n Node) accessor {
	return accessor{node: n}
}

func newSlot(n Node) accessor {
	return accessor{node: n, slot: reactive.NewDependency(n.Runtime())}
}

func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}

var (
	_ Node = (*PropertyNode)(nil)
	_ Node = (*ObjectNode)(nil)
	_ Node = (*ArrayNode)(nil)
	_ Node = (*DictNode)(nil)
)
