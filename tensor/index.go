// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ndview/internal/index"
)

// Expr is a tuple of index items, the equivalent of a[i, j:k, ...].
// Items are Go integers, Slice values, NewAxis or Ellipsis.
type Expr = index.Expr

// Slice is a start:stop:step index item. Build one with S.
type Slice = index.Slice

// IndexSpec is one normalized index item.
type IndexSpec = index.Spec

// Index markers.
const (
	NewAxis  = index.NewAxis
	Ellipsis = index.Ellipsis
)

// S builds a Slice like Python's slice(): S(stop), S(start, stop) or
// S(start, stop, step). Arguments are ints or nil.
func S(args ...any) Slice {
	return index.S(args...)
}

// Get returns the view x[items...] without copying data.
//
// Example:
//
//	v, err := tensor.Get(x, 1, tensor.S(nil, nil, -1), tensor.NewAxis) // x[1, ::-1, None]
func Get(x *RawTensor, items ...any) (*RawTensor, error) {
	return index.Get(x, items...)
}

// Normalize converts an expression into index specs for an array of the
// given rank, expanding any Ellipsis.
func Normalize(rank int, expr any) ([]IndexSpec, error) {
	return index.Normalize(rank, expr)
}

// Resolve applies normalized specs to x and returns the resulting view.
func Resolve(x *RawTensor, specs []IndexSpec) (*RawTensor, error) {
	return index.Resolve(x, specs)
}

// ParseIndex parses a textual expression such as "1, ::-1, newaxis, ...".
func ParseIndex(s string) (Expr, error) {
	return index.Parse(s)
}
