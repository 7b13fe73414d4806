package schema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

// Description is the structured form of a loose schema description.
// Maps carrying any of its keys are decoded into it.
type Description struct {
	// Name labels the schema.
	Name string `mapstructure:"name"`

	// Schema holds the fields of an object (or of array/dict items): a
	// mapping from field name to description, a Fields list, or an object
	// *Schema.
	Schema any `mapstructure:"schema"`

	// IsArray marks an array whose items follow Item or Schema.
	IsArray bool `mapstructure:"isArray"`

	// IsDict marks a dict whose values follow Item or Schema.
	IsDict bool `mapstructure:"isDict"`

	// Item describes collection elements explicitly.
	Item any `mapstructure:"item"`

	// Rules constrain the node's own value: a single rule or a list.
	Rules any `mapstructure:"rules"`
}

var reservedKeys = map[string]bool{
	"name":    true,
	"schema":  true,
	"isArray": true,
	"isDict":  true,
	"item":    true,
	"rules":   true,
}

// entry is one key/value pair of a mapping, in document order.
type entry struct {
	key   string
	value any
}

// Normalize turns a loose description into a Schema. It has no side
// effects and keeps no state between calls.
//
// Accepted descriptions:
//
//   - nil: a scalar without rules
//   - *Schema or Schema: returned as is
//   - a rule (Rule, expression string, predicate func): a scalar with that rule
//   - a list: a scalar whose rules are the list entries
//   - Description, or a mapping with any of the keys name, schema,
//     isArray, isDict, item, rules
//   - any other mapping: an object whose fields are the mapping entries
//
// Go maps are read in sorted key order; yaml.MapSlice keeps document order.
func Normalize(raw any) (*Schema, error) {
	return normalize(raw, "")
}

// MustNormalize is like Normalize but panics on error.
func MustNormalize(raw any) *Schema {
	s, err := Normalize(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func normalize(raw any, path string) (*Schema, error) {
	switch d := raw.(type) {
	case nil:
		return &Schema{Kind: Scalar}, nil
	case *Schema:
		if d == nil {
			return &Schema{Kind: Scalar}, nil
		}
		return d, nil
	case Schema:
		return &d, nil
	case Description:
		return fromDescription(d, path)
	case *Description:
		if d == nil {
			return &Schema{Kind: Scalar}, nil
		}
		return fromDescription(*d, path)
	case Fields:
		return &Schema{Kind: Object, Fields: []Field(d)}, nil
	case []Field:
		return &Schema{Kind: Object, Fields: d}, nil
	case Rule, *Rule, string, func(value, root any) bool, func(value any) bool:
		rule, err := toRule(d, path)
		if err != nil {
			return nil, err
		}
		return &Schema{Kind: Scalar, Rules: []Rule{rule}}, nil
	}

	if entries, ok := asEntries(raw); ok {
		for _, e := range entries {
			if reservedKeys[e.key] {
				return fromMapping(entries, path)
			}
		}
		fields, err := toFields(entries, path)
		if err != nil {
			return nil, err
		}
		return &Schema{Kind: Object, Fields: fields}, nil
	}

	if list, ok := asList(raw); ok {
		rules, err := toRules(list, path)
		if err != nil {
			return nil, err
		}
		return &Schema{Kind: Scalar, Rules: rules}, nil
	}

	return nil, serrors.New("S001").WithPath(pathOrRoot(path)).Wrap(fmt.Errorf("unsupported description type %T", raw))
}

// fromMapping decodes a mapping with reserved keys into a Description.
func fromMapping(entries []entry, path string) (*Schema, error) {
	m := make(map[string]any, len(entries))
	for _, e := range entries {
		m[e.key] = e.value
	}

	var d Description
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &d,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, serrors.New("S001").WithPath(pathOrRoot(path)).Wrap(err)
	}
	return fromDescription(d, path)
}

func fromDescription(d Description, path string) (*Schema, error) {
	if d.IsArray && d.IsDict {
		return nil, serrors.New("S002").WithPath(pathOrRoot(path))
	}

	s := &Schema{Name: d.Name, Kind: Scalar}

	if d.Rules != nil {
		rules, err := rulesOf(d.Rules, path)
		if err != nil {
			return nil, err
		}
		s.Rules = rules
	}

	if d.IsArray || d.IsDict {
		s.Kind = Array
		if d.IsDict {
			s.Kind = Dict
		}
		item, err := itemOf(d, path)
		if err != nil {
			return nil, err
		}
		s.Item = item
		return s, nil
	}

	if d.Schema != nil {
		fields, err := fieldsOf(d.Schema, path)
		if err != nil {
			return nil, err
		}
		s.Kind = Object
		s.Fields = fields
	}
	return s, nil
}

// itemOf derives the shared element schema of a collection: the explicit
// item description, else an object over the collection's fields, else a
// bare scalar.
func itemOf(d Description, path string) (*Schema, error) {
	itemPath := path + "[]"
	if d.Item != nil {
		item, err := normalize(d.Item, itemPath)
		if err != nil {
			return nil, err
		}
		if item.Name == "" {
			cp := *item
			cp.Name = d.Name
			item = &cp
		}
		return item, nil
	}
	if d.Schema != nil {
		fields, err := fieldsOf(d.Schema, itemPath)
		if err != nil {
			return nil, err
		}
		return &Schema{Name: d.Name, Kind: Object, Fields: fields}, nil
	}
	return &Schema{Name: d.Name, Kind: Scalar}, nil
}

// fieldsOf reads the "schema" entry of a description.
func fieldsOf(raw any, path string) ([]Field, error) {
	switch v := raw.(type) {
	case Fields:
		return []Field(v), nil
	case []Field:
		return v, nil
	case *Schema:
		if v.Kind != Object {
			return nil, serrors.New("S001").WithPath(pathOrRoot(path)).Wrap(fmt.Errorf("schema entry is a %s schema, want object", v.Kind))
		}
		return v.Fields, nil
	}
	entries, ok := asEntries(raw)
	if !ok {
		return nil, serrors.New("S001").WithPath(pathOrRoot(path)).Wrap(fmt.Errorf("schema entry must be a mapping, got %T", raw))
	}
	return toFields(entries, path)
}

func toFields(entries []entry, path string) ([]Field, error) {
	fields := make([]Field, 0, len(entries))
	for _, e := range entries {
		fs, err := normalize(e.value, joinPath(path, e.key))
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: e.key, Schema: fs})
	}
	return fields, nil
}

// rulesOf reads the "rules" entry: a single rule or a list.
func rulesOf(raw any, path string) ([]Rule, error) {
	if list, ok := asList(raw); ok {
		return toRules(list, path)
	}
	rule, err := toRule(raw, path)
	if err != nil {
		return nil, err
	}
	return []Rule{rule}, nil
}

func toRules(list []any, path string) ([]Rule, error) {
	rules := make([]Rule, 0, len(list))
	for _, raw := range list {
		rule, err := toRule(raw, path)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// asEntries reads a mapping: yaml.MapSlice in order, other maps with
// string-convertible keys in sorted key order.
func asEntries(raw any) ([]entry, bool) {
	switch m := raw.(type) {
	case yaml.MapSlice:
		entries := make([]entry, 0, len(m))
		for _, item := range m {
			entries = append(entries, entry{key: fmt.Sprint(item.Key), value: item.Value})
		}
		return entries, true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]entry, len(keys))
		for i, k := range keys {
			entries[i] = entry{key: k, value: m[k]}
		}
		return entries, true
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: fmt.Sprint(iter.Key().Interface()), value: iter.Value().Interface()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return entries, true
}

// asList reads any slice or array except byte slices.
func asList(raw any) ([]any, bool) {
	switch l := raw.(type) {
	case []any:
		return l, true
	case []Rule:
		out := make([]any, len(l))
		for i, r := range l {
			out[i] = r
		}
		return out, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func pathOrRoot(path string) string {
	if path == "" {
		return "$"
	}
	return path
}
