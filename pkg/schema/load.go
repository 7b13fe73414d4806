package schema

import (
	"os"

	"github.com/goccy/go-yaml"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

// Load parses a YAML (or JSON) schema document and normalizes it.
// Mapping order in the document becomes field order.
func Load(data []byte) (*Schema, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, serrors.New("S005").Wrap(err)
	}
	return Normalize(raw)
}

// LoadFile reads and loads a schema file.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.New("S005").WithPath(path).Wrap(err)
	}
	s, err := Load(data)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		cp := *s
		cp.Name = path
		s = &cp
	}
	return s, nil
}
