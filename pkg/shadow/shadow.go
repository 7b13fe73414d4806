package shadow

import (
	"github.com/mitchellh/mapstructure"

	"github.com/vango-dev/shadow/pkg/schema"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

// New normalizes raw into a schema and builds a shadow value seeded with
// original. raw may be anything schema.Normalize accepts, including an
// already normalized *schema.Schema.
func New(raw any, original any, opts ...Option) (Value, error) {
	s, err := schema.Normalize(raw)
	if err != nil {
		return nil, err
	}
	e := newEnv(opts)
	return build(e, s, e.plain(original), nil), nil
}

// MustNew is like New but panics on a schema error.
func MustNew(raw any, original any, opts ...Option) Value {
	v, err := New(raw, original, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// build creates the node for s, links it to parent and populates it from
// original without tracking.
func build(e *env, s *schema.Schema, original any, parent Node) Value {
	b := base{
		env:      e,
		schema:   s,
		original: original,
		parent:   parent,
	}

	var n Node
	switch kindOf(s) {
	case ObjectKind:
		n = newObjectNode(b)
	case ArrayKind:
		n = newArrayNode(b)
	case DictKind:
		n = newDictNode(b)
	default:
		n = newPropertyNode(b)
	}
	e.metrics.nodeCreated(n.Kind())

	e.rt.Nonreactive(func() {
		n.SetValue(original)
	})
	return n.Self()
}

// Decode copies the current value of v into out, which must be a pointer
// to a struct, map or slice. Struct fields are matched by their json tag.
func Decode(v Value, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return serrors.FromError(err, "S202")
	}
	if err := dec.Decode(v.Node().Clone()); err != nil {
		return serrors.FromError(err, "S202")
	}
	return nil
}
