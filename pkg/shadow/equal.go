package shadow

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var equalOpts = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmp.FilterValues(bothNumbers, cmp.Comparer(sameNumber)),
}

// Equal is the default change comparator. It compares structurally and
// honors Equal methods, so two time.Time values at the same instant are
// equal even when their locations differ. Numbers compare by value
// across Go numeric types, so int(3) equals a JSON-decoded float64(3).
func Equal(a, b any) bool {
	return cmp.Equal(a, b, equalOpts...)
}

func bothNumbers(a, b any) bool {
	return numberKind(a) != notNumber && numberKind(b) != notNumber
}

func sameNumber(a, b any) bool {
	ka, kb := numberKind(a), numberKind(b)
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case ka == signed && kb == signed:
		return va.Int() == vb.Int()
	case ka == unsigned && kb == unsigned:
		return va.Uint() == vb.Uint()
	}
	return asFloat(va, ka) == asFloat(vb, kb)
}

type numKind int

const (
	notNumber numKind = iota
	signed
	unsigned
	floating
)

func numberKind(v any) numKind {
	if v == nil {
		return notNumber
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signed
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsigned
	case reflect.Float32, reflect.Float64:
		return floating
	}
	return notNumber
}

func asFloat(v reflect.Value, k numKind) float64 {
	switch k {
	case signed:
		return float64(v.Int())
	case unsigned:
		return float64(v.Uint())
	}
	return v.Float()
}
