package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

const bankYAML = `
name: bank
schema:
  routingNumber: []
  employees:
    isArray: true
    schema:
      name: ["value != nil"]
      age: []
      zip: []
  items:
    isArray: true
  safe:
    combination: []
`

func TestLoadPreservesFieldOrder(t *testing.T) {
	s, err := Load([]byte(bankYAML))
	require.NoError(t, err)

	assert.Equal(t, "bank", s.Name)
	assert.Equal(t, []string{"routingNumber", "employees", "items", "safe"}, s.FieldNames())

	employees, ok := s.Field("employees")
	require.True(t, ok)
	assert.True(t, employees.IsArray())
	assert.Equal(t, []string{"name", "age", "zip"}, employees.ItemSchema().FieldNames())

	items, _ := s.Field("items")
	assert.Equal(t, Scalar, items.ItemSchema().Kind)

	safe, _ := s.Field("safe")
	assert.True(t, safe.IsObject())
}

func TestLoadJSON(t *testing.T) {
	s, err := Load([]byte(`{"name": "names", "isArray": true}`))
	require.NoError(t, err)
	assert.True(t, s.IsArray())
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load([]byte("name: [unterminated"))
	require.Error(t, err)
	assert.True(t, serrors.HasCode(err, "S005"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "person.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema:\n  name: []\n"), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Name)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, serrors.HasCode(err, "S005"))
}
