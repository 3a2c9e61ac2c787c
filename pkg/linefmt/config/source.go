package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is a decoded settings file: a flat mapping from key to scalar
// value, with the line each key appeared on when the format reports it.
type Source struct {
	name   string
	values map[string]any
	lines  map[string]int
}

// NewSource wraps values as a Source named name. A nil map yields an empty
// Source.
func NewSource(name string, values map[string]any) Source {
	src := Source{
		name:   name,
		values: make(map[string]any, len(values)),
		lines:  make(map[string]int),
	}
	for k, v := range values {
		src.values[k] = v
	}
	return src
}

// ReadFile reads and decodes the settings file at path.
func ReadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes data, picking the format from the extension of name.
// Supported extensions: .yaml, .yml, .json
func Parse(name string, data []byte) (Source, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		return parseYAML(name, data)
	case ".json":
		return parseJSON(name, data)
	default:
		return Source{}, fmt.Errorf("unsupported config file extension: %q", ext)
	}
}

func parseYAML(name string, data []byte) (Source, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Source{}, fmt.Errorf("parse yaml %s: %w", name, err)
	}

	src := NewSource(name, nil)
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return src, nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return src, nil
	}
	if root.Kind != yaml.MappingNode {
		return Source{}, fmt.Errorf("%w: %s:%d: top level must be a mapping", ErrInvalidValue, name, root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return Source{}, fmt.Errorf("%w: %s:%d: %s must be a scalar", ErrInvalidValue, name, key.Line, key.Value)
		}
		var v any
		if err := val.Decode(&v); err != nil {
			return Source{}, fmt.Errorf("parse yaml %s:%d: %w", name, key.Line, err)
		}
		src.values[key.Value] = v
		src.lines[key.Value] = key.Line
	}
	return src, nil
}

func parseJSON(name string, data []byte) (Source, error) {
	src := NewSource(name, nil)
	if len(bytes.TrimSpace(data)) == 0 {
		return src, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return Source{}, fmt.Errorf("parse json %s: %w", name, err)
	}
	for k, v := range m {
		switch v.(type) {
		case map[string]any, []any:
			return Source{}, fmt.Errorf("%w: %s: %s must be a scalar", ErrInvalidValue, name, k)
		}
		src.values[k] = v
	}
	return src, nil
}

// Name returns the file the Source was read from.
func (s Source) Name() string {
	return s.name
}

// Has reports whether key is present.
func (s Source) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Len returns the number of keys.
func (s Source) Len() int {
	return len(s.values)
}

// Keys returns every key in sorted order.
func (s Source) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Position describes where key was set, "file:line" when the line is known.
func (s Source) Position(key string) string {
	if line := s.lines[key]; line > 0 {
		return fmt.Sprintf("%s:%d", s.name, line)
	}
	return s.name
}

// String returns the string at key. ok is false when the key is absent; a
// present value of another type is an ErrInvalidValue.
func (s Source) String(key string) (string, bool, error) {
	v, ok := s.values[key]
	if !ok {
		return "", false, nil
	}
	str, isString := v.(string)
	if !isString {
		return "", true, fmt.Errorf("%w: %s: %s must be a string", ErrInvalidValue, s.Position(key), key)
	}
	return str, true, nil
}

// Int returns the integer at key. Whole floats are accepted; fractional
// values and other types are an ErrInvalidValue.
func (s Source) Int(key string) (int, bool, error) {
	v, ok := s.values[key]
	if !ok {
		return 0, false, nil
	}

	bad := fmt.Errorf("%w: %s: %s must be an integer", ErrInvalidValue, s.Position(key), key)
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case uint64:
		if n > math.MaxInt {
			return 0, true, bad
		}
		return int(n), true, nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, true, bad
		}
		return int(n), true, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, true, bad
		}
		return int(i), true, nil
	default:
		return 0, true, bad
	}
}
