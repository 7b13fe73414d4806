package schema

// Kind identifies the shape a schema node describes.
type Kind int

const (
	Scalar Kind = iota
	Object
	Array
	Dict
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Object:
		return "object"
	case Array:
		return "array"
	case Dict:
		return "dict"
	default:
		return "unknown"
	}
}

// Field is a named member of an object schema.
type Field struct {
	Name   string
	Schema *Schema
}

// Fields is an ordered list of object fields. It may be used as the
// "schema" entry of a description to fix field order.
type Fields []Field

// Schema is a normalized schema node. It is immutable after Normalize
// returns it.
type Schema struct {
	// Name labels the schema in error descriptors.
	Name string

	// Kind is the shape this node describes.
	Kind Kind

	// Fields are the declared fields of an Object schema, in order.
	Fields []Field

	// Item is the schema shared by every element of an Array or Dict.
	Item *Schema

	// Rules constrain the node's own value.
	Rules []Rule
}

// Field returns the schema of the named field.
func (s *Schema) Field(name string) (*Schema, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Schema, true
		}
	}
	return nil, false
}

// FieldNames returns the declared field names in order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// ItemSchema returns the schema shared by collection elements. A
// collection without an explicit item schema holds plain scalars.
func (s *Schema) ItemSchema() *Schema {
	if s.Item != nil {
		return s.Item
	}
	return &Schema{Name: s.Name, Kind: Scalar}
}

// IsArray reports whether the schema describes an array.
func (s *Schema) IsArray() bool { return s.Kind == Array }

// IsDict reports whether the schema describes a dict.
func (s *Schema) IsDict() bool { return s.Kind == Dict }

// IsObject reports whether the schema describes an object.
func (s *Schema) IsObject() bool { return s.Kind == Object }
