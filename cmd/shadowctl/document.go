package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	serrors "github.com/vango-dev/shadow/internal/errors"
)

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, serrors.New("S401").Wrap(err).WithPath(path)
	}
	return data, nil
}

// toJSON normalizes a JSON or YAML document to JSON.
func toJSON(data []byte, path string) ([]byte, error) {
	j, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, serrors.New("S401").Wrap(err).WithPath(path)
	}
	return j, nil
}

// decodeJSON turns JSON into plain Go values.
func decodeJSON(data []byte, path string) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, serrors.New("S401").Wrap(err).WithPath(path)
	}
	return v, nil
}

// readDocument reads and decodes a JSON or YAML document.
func readDocument(stdin io.Reader, path string) (any, error) {
	data, err := readInput(stdin, path)
	if err != nil {
		return nil, err
	}
	j, err := toJSON(data, path)
	if err != nil {
		return nil, err
	}
	return decodeJSON(j, path)
}

// encode renders v in the given format with a trailing newline.
func encode(v any, format string) ([]byte, error) {
	if format == "yaml" {
		return yaml.Marshal(v)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
