package shadow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/vango-dev/shadow/internal/errors"
	"github.com/vango-dev/shadow/pkg/shadow"
)

type employee struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type bank struct {
	RoutingNumber string     `json:"routingNumber"`
	Employees     []employee `json:"employees"`
	Safe          struct {
		Combination string `json:"combination"`
	} `json:"safe"`
}

func TestDecode(t *testing.T) {
	item := newValue(t, bankSchema, map[string]any{
		"routingNumber": "042",
		"employees": []any{
			map[string]any{"name": "Joe", "age": "41"},
		},
		"safe": map[string]any{"combination": "1234"},
	})

	var out bank
	require.NoError(t, shadow.Decode(item, &out))

	assert.Equal(t, "042", out.RoutingNumber)
	assert.Equal(t, []employee{{Name: "Joe", Age: 41}}, out.Employees)
	assert.Equal(t, "1234", out.Safe.Combination)
}

func TestDecodeError(t *testing.T) {
	item := newValue(t, personSchema, map[string]any{"name": "joe"})

	err := shadow.Decode(item, bank{})
	require.Error(t, err)
	assert.True(t, serrors.HasCode(err, "S202"))
}
