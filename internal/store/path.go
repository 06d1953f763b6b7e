package store

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePath splits a dotted key path. The language key is not editable
// because it is the document's identity.
func parsePath(keyPath string) ([]string, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	parts := strings.Split(keyPath, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, keyPath)
		}
	}
	if parts[0] == "language" {
		return nil, fmt.Errorf("%w: language cannot be edited", ErrInvalidPath)
	}
	return parts, nil
}

// setPath returns node with the value at path replaced by v. Objects
// gain missing keys; arrays accept an index one past the end, which
// appends.
func setPath(node any, path []string, v any) (any, error) {
	if len(path) == 0 {
		return v, nil
	}
	key := path[0]
	switch n := node.(type) {
	case map[string]any:
		child, err := setPath(n[key], path[1:], v)
		if err != nil {
			return nil, err
		}
		n[key] = child
		return n, nil
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i > len(n) {
			return nil, fmt.Errorf("%w: index %q out of range [0, %d]", ErrInvalidPath, key, len(n))
		}
		if i == len(n) {
			n = append(n, nil)
		}
		child, err := setPath(n[i], path[1:], v)
		if err != nil {
			return nil, err
		}
		n[i] = child
		return n, nil
	case nil:
		// A missing intermediate becomes an object; numeric keys are
		// not guessed into arrays.
		child, err := setPath(nil, path[1:], v)
		if err != nil {
			return nil, err
		}
		return map[string]any{key: child}, nil
	default:
		return nil, fmt.Errorf("%w: %q addresses inside a scalar", ErrInvalidPath, key)
	}
}
