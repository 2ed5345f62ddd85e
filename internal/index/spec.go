// Package index turns Python-style indexing expressions into zero-copy views.
//
// An expression is a single item or an Expr of items. Items are Go integers of
// any width, Slice values, or the NewAxis and Ellipsis markers. Normalize
// converts an expression into a closed list of Spec values and Resolve folds
// that list against an array's shape, byte strides and offset.
package index

import (
	"fmt"
	"strconv"
	"strings"
)

// Marker is a special index item.
type Marker int

const (
	// NewAxis inserts a size-1 axis without consuming a source axis.
	NewAxis Marker = iota + 1

	// Ellipsis expands to as many full slices as needed to cover the source
	// axes not consumed by other items. At most one may appear.
	Ellipsis
)

// String returns the marker's spelling in an expression.
func (m Marker) String() string {
	switch m {
	case NewAxis:
		return "newaxis"
	case Ellipsis:
		return "..."
	default:
		return "Marker(" + strconv.Itoa(int(m)) + ")"
	}
}

// Expr is a tuple of index items, the equivalent of a[i, j:k, ...].
type Expr []any

// Slice is a start:stop:step triple with optional bounds. A nil Start or Stop
// takes the default for the step direction; a nil Step means 1.
type Slice struct {
	Start *int
	Stop  *int
	Step  *int
}

// S builds a Slice the way Python's slice() does: S(stop), S(start, stop) or
// S(start, stop, step). Each argument is an int or nil. S() is the full slice.
// Panics on other argument types.
func S(args ...any) Slice {
	bound := func(v any) *int {
		switch x := v.(type) {
		case nil:
			return nil
		case int:
			return &x
		default:
			panic(fmt.Sprintf("index.S: argument must be int or nil, got %T", v))
		}
	}

	switch len(args) {
	case 0:
		return Slice{}
	case 1:
		return Slice{Stop: bound(args[0])}
	case 2:
		return Slice{Start: bound(args[0]), Stop: bound(args[1])}
	case 3:
		return Slice{Start: bound(args[0]), Stop: bound(args[1]), Step: bound(args[2])}
	default:
		panic(fmt.Sprintf("index.S: expected at most 3 arguments, got %d", len(args)))
	}
}

// String formats the slice as start:stop:step, omitting unset parts.
func (s Slice) String() string {
	part := func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}
	out := part(s.Start) + ":" + part(s.Stop)
	if s.Step != nil {
		out += ":" + part(s.Step)
	}
	return out
}

// Kind tags the variant held by a Spec.
type Kind int

// Spec kinds.
const (
	KindInteger Kind = iota
	KindSlice
	KindNewAxis
)

// Spec is one normalized per-axis index: an integer that collapses an axis,
// a slice that keeps it, or a new size-1 axis.
type Spec struct {
	Kind  Kind
	Index int
	Slice Slice
}

// Integer returns an integer spec.
func Integer(v int) Spec {
	return Spec{Kind: KindInteger, Index: v}
}

// SliceSpec returns a slice spec.
func SliceSpec(s Slice) Spec {
	return Spec{Kind: KindSlice, Slice: s}
}

// NewAxisSpec returns a new-axis spec.
func NewAxisSpec() Spec {
	return Spec{Kind: KindNewAxis}
}

// String formats the spec as it would appear in an expression.
func (s Spec) String() string {
	switch s.Kind {
	case KindInteger:
		return strconv.Itoa(s.Index)
	case KindSlice:
		return s.Slice.String()
	case KindNewAxis:
		return NewAxis.String()
	default:
		return "?"
	}
}

// FormatSpecs formats a spec list as a bracketed expression.
func FormatSpecs(specs []Spec) string {
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
