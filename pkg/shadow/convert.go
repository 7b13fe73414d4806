package shadow

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

var timeType = reflect.TypeOf(time.Time{})

// plain turns a visible shadow value into its clone. The clone is read
// untracked so a write never subscribes the writer to its own input.
func (e *env) plain(v any) any {
	sv, ok := v.(Value)
	if !ok {
		return v
	}
	var out any
	e.rt.Nonreactive(func() {
		out = sv.Node().Clone()
	})
	return out
}

// object converts v to a field map. ok is false when v is not
// object-shaped; a nil v is not object-shaped either.
func (e *env) object(v any) (map[string]any, bool) {
	return asObject(e.plain(v))
}

// list converts v to a slice of elements, ok is false when v is not
// list-shaped.
func (e *env) list(v any) ([]any, bool) {
	return asList(e.plain(v))
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return m, true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		if rv.Type() == timeType {
			return nil, false
		}
		out := make(map[string]any)
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName: "json",
			Result:  &out,
		})
		if err != nil {
			return nil, false
		}
		if err := dec.Decode(rv.Interface()); err != nil {
			return nil, false
		}
		return out, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case nil:
		return nil, false
	case []any:
		return l, true
	case []byte:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

// field returns the named field of an object-shaped value, or nil.
func field(v any, name string) any {
	m, ok := asObject(v)
	if !ok {
		return nil
	}
	return m[name]
}

// index returns element i of a list-shaped value, or nil.
func index(v any, i int) any {
	l, ok := asList(v)
	if !ok || i < 0 || i >= len(l) {
		return nil
	}
	return l[i]
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
