// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries folds benchmark records into a series model
// that maps operation -> variant -> size -> value, and combines
// models from different cases.
package benchseries

import (
	"fmt"
	"sort"
)

// A Series maps an operand size (in bits) to a measured value (in ns).
type Series map[int]float64

// An Operation maps a variant name to its series.
type Operation map[string]Series

// A Model maps an operation name to its variants.
//
// Models are treated as values: the functions in this package never
// modify the Models passed to them.
type Model map[string]Operation

// A Point is one (size, value) pair of a Series.
type Point struct {
	Size  int
	Value float64
}

// A MissingVariantError reports a lookup of an operation or variant
// that a Model does not contain.
type MissingVariantError struct {
	Operation string // empty if the variant was looked for in every operation
	Variant   string // empty if the operation itself is missing
}

func (e *MissingVariantError) Error() string {
	switch {
	case e.Variant == "":
		return fmt.Sprintf("operation %q not found", e.Operation)
	case e.Operation == "":
		return fmt.Sprintf("variant %q not found in any operation", e.Variant)
	}
	return fmt.Sprintf("variant %q not found for operation %q", e.Variant, e.Operation)
}

// set stores v at m[op][variant][size] and reports whether a value
// was already there.
func (m Model) set(op, variant string, size int, v float64) (replaced bool) {
	o := m[op]
	if o == nil {
		o = make(Operation)
		m[op] = o
	}
	s := o[variant]
	if s == nil {
		s = make(Series)
		o[variant] = s
	}
	_, replaced = s[size]
	s[size] = v
	return replaced
}

// Operations returns the operation names of m, sorted.
func (m Model) Operations() []string {
	return sortedKeys(m)
}

// Lookup returns the series of variant in operation op.
func (m Model) Lookup(op, variant string) (Series, error) {
	o, ok := m[op]
	if !ok {
		return nil, &MissingVariantError{Operation: op}
	}
	s, ok := o[variant]
	if !ok {
		return nil, &MissingVariantError{Operation: op, Variant: variant}
	}
	return s, nil
}

// Len returns the number of points in m.
func (m Model) Len() int {
	n := 0
	for _, o := range m {
		for _, s := range o {
			n += len(s)
		}
	}
	return n
}

// Clone returns a deep copy of m.
func (m Model) Clone() Model {
	out := make(Model, len(m))
	for op, o := range m {
		out[op] = o.Clone()
	}
	return out
}

// Variants returns the variant names of o, sorted.
func (o Operation) Variants() []string {
	return sortedKeys(o)
}

// Clone returns a deep copy of o.
func (o Operation) Clone() Operation {
	out := make(Operation, len(o))
	for v, s := range o {
		out[v] = s.Clone()
	}
	return out
}

// Sizes returns the sizes of s in increasing order.
func (s Series) Sizes() []int {
	sizes := make([]int, 0, len(s))
	for size := range s {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

// Points returns the points of s in increasing size order.
func (s Series) Points() []Point {
	pts := make([]Point, 0, len(s))
	for _, size := range s.Sizes() {
		pts = append(pts, Point{size, s[size]})
	}
	return pts
}

// Clone returns a copy of s.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
