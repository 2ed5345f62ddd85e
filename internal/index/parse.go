package index

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/ndview/internal/tensor"
)

// Parse reads a textual expression such as "1, ::-1, newaxis, ...".
//
// Items are separated by commas. Accepted items: integers, slices written
// start:stop[:step] with optional parts, "newaxis" or "None", and "...".
// Surrounding brackets or parentheses are ignored; an empty expression
// selects the whole array.
func Parse(s string) (Expr, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimSuffix(s, "]"), "[")
	s = strings.TrimPrefix(strings.TrimSuffix(s, ")"), "(")
	s = strings.TrimSpace(s)
	if s == "" {
		return Expr{}, nil
	}

	parts := strings.Split(s, ",")
	// A trailing comma makes a one-element tuple, as in "1,".
	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	expr := make(Expr, 0, len(parts))
	for _, raw := range parts {
		item, err := parseItem(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s, err)
		}
		expr = append(expr, item)
	}
	return expr, nil
}

func parseItem(s string) (any, error) {
	switch s {
	case "":
		return nil, fmt.Errorf("empty index item: %w", tensor.ErrValue)
	case "...", "Ellipsis":
		return Ellipsis, nil
	case "newaxis", "None", "np.newaxis":
		return NewAxis, nil
	}

	if !strings.Contains(s, ":") {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid integer index %q: %w", s, tensor.ErrValue)
		}
		return v, nil
	}

	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return nil, fmt.Errorf("invalid slice %q: %w", s, tensor.ErrValue)
	}

	bounds := make([]*int, 3)
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid slice bound %q: %w", f, tensor.ErrValue)
		}
		bounds[i] = &v
	}
	return Slice{Start: bounds[0], Stop: bounds[1], Step: bounds[2]}, nil
}
