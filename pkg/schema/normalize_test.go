package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

var personDescription = map[string]any{
	"name": "person",
	"schema": map[string]any{
		"name": []any{isString},
		"age":  []any{},
		"zip":  []any{},
	},
}

func TestNormalizeScalar(t *testing.T) {
	s, err := Normalize(nil)
	require.NoError(t, err)
	assert.Equal(t, Scalar, s.Kind)
	assert.Empty(t, s.Rules)

	s, err = Normalize(map[string]any{"name": "item"})
	require.NoError(t, err)
	assert.Equal(t, Scalar, s.Kind)
	assert.Equal(t, "item", s.Name)

	s, err = Normalize([]any{"value != nil", isString})
	require.NoError(t, err)
	assert.Equal(t, Scalar, s.Kind)
	assert.Len(t, s.Rules, 2)
}

func TestNormalizeObject(t *testing.T) {
	s, err := Normalize(personDescription)
	require.NoError(t, err)

	assert.Equal(t, Object, s.Kind)
	assert.Equal(t, "person", s.Name)
	// Go maps are read in sorted key order.
	assert.Equal(t, []string{"age", "name", "zip"}, s.FieldNames())

	name, ok := s.Field("name")
	require.True(t, ok)
	assert.Equal(t, Scalar, name.Kind)
	assert.Len(t, name.Rules, 1)

	_, ok = s.Field("missing")
	assert.False(t, ok)
}

func TestNormalizeObjectShorthand(t *testing.T) {
	s, err := Normalize(map[string]any{
		"safe": map[string]any{"combination": []any{}},
	})
	require.NoError(t, err)

	safe, ok := s.Field("safe")
	require.True(t, ok)
	assert.Equal(t, Object, safe.Kind)
	assert.Equal(t, []string{"combination"}, safe.FieldNames())
}

func TestNormalizeArray(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		itemKind Kind
		fields   []string
	}{
		{
			name:     "scalar items",
			raw:      map[string]any{"name": "names", "isArray": true},
			itemKind: Scalar,
		},
		{
			name:     "object items from schema",
			raw:      map[string]any{"isArray": true, "schema": personDescription["schema"]},
			itemKind: Object,
			fields:   []string{"age", "name", "zip"},
		},
		{
			name:     "explicit item",
			raw:      map[string]any{"isArray": true, "item": map[string]any{"isArray": true}},
			itemKind: Array,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.True(t, s.IsArray())
			item := s.ItemSchema()
			assert.Equal(t, tt.itemKind, item.Kind)
			if tt.fields != nil {
				assert.Equal(t, tt.fields, item.FieldNames())
			}
		})
	}
}

func TestNormalizeDict(t *testing.T) {
	s, err := Normalize(map[string]any{
		"name":   "labels",
		"isDict": true,
		"item":   []any{"value != nil"},
	})
	require.NoError(t, err)
	assert.True(t, s.IsDict())
	assert.Equal(t, Scalar, s.ItemSchema().Kind)
	assert.Len(t, s.ItemSchema().Rules, 1)
	assert.Equal(t, "labels", s.ItemSchema().Name)
}

func TestNormalizeRulesKey(t *testing.T) {
	s, err := Normalize(map[string]any{
		"isArray": true,
		"rules":   "len(value) < 3",
	})
	require.NoError(t, err)
	require.Len(t, s.Rules, 1)
	assert.Equal(t, "len(value) < 3", s.Rules[0].Name)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	s := MustNormalize(personDescription)
	again, err := Normalize(s)
	require.NoError(t, err)
	assert.Same(t, s, again)

	fromFields, err := Normalize(Fields{{Name: "a", Schema: &Schema{}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, fromFields.FieldNames())
}

func TestNormalizeDescriptionStruct(t *testing.T) {
	s, err := Normalize(Description{
		Name:    "people",
		IsArray: true,
		Schema: Fields{
			{Name: "zeta", Schema: &Schema{}},
			{Name: "alpha", Schema: &Schema{}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, Array, s.Kind)
	assert.Equal(t, []string{"zeta", "alpha"}, s.ItemSchema().FieldNames())
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		code string
	}{
		{"array and dict", map[string]any{"isArray": true, "isDict": true}, "S002"},
		{"bad rule", []any{42}, "S003"},
		{"bad expression", []any{"value +"}, "S004"},
		{"unknown key beside reserved", map[string]any{"name": "x", "extra": 1}, "S001"},
		{"unsupported type", 3.14, "S001"},
		{"schema entry not a mapping", map[string]any{"schema": "nope"}, "S001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			require.Error(t, err)
			assert.True(t, serrors.HasCode(err, tt.code), "got %v, want code %s", err, tt.code)
		})
	}
}

func TestMustNormalizePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNormalize(map[string]any{"isArray": true, "isDict": true})
	})
}
