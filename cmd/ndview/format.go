package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/ndview/internal/tensor"
)

// parseInts parses a comma separated list such as "2,3,4". Surrounding
// brackets or parentheses are ignored; an empty list yields nil.
func parseInts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "("), "[")
	s = strings.TrimSuffix(strings.TrimSuffix(s, ")"), "]")
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" && i == len(parts)-1 {
			break
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q in %q: %w", p, s, tensor.ErrValue)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseShape parses a shape such as "2,3". "" and "()" are the scalar shape.
func parseShape(s string) (tensor.Shape, error) {
	dims, err := parseInts(s)
	if err != nil {
		return nil, err
	}
	shape := tensor.Shape(dims)
	if shape == nil {
		shape = tensor.Shape{}
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return shape, nil
}

// formatShape prints a shape as a tuple: (), (3,), (2, 3).
func formatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// formatValues prints row-major values nested by shape: [[0 1] [2 3]].
func formatValues(shape tensor.Shape, vals []float64) string {
	var sb strings.Builder
	var walk func(axis, base int)
	walk = func(axis, base int) {
		if axis == len(shape) {
			sb.WriteString(strconv.FormatFloat(vals[base], 'g', -1, 64))
			return
		}
		inner := 1
		for _, d := range shape[axis+1:] {
			inner *= d
		}
		sb.WriteByte('[')
		for i := 0; i < shape[axis]; i++ {
			if i > 0 {
				sb.WriteByte(' ')
			}
			walk(axis+1, base+i*inner)
		}
		sb.WriteByte(']')
	}
	walk(0, 0)
	return sb.String()
}
