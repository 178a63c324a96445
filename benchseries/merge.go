// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// Merge returns a new Model holding every operation of a and b.
//
// Within an operation the variant set is the union of both inputs.
// Variants of b are first renamed through rename (variants not in
// rename keep their name). Where a and b have the same final variant,
// b's series replaces a's. Merge is therefore not symmetric in values:
// Merge(a, b) and Merge(b, a) have the same keys but may differ at
// colliding variants.
//
// Every key of rename must name a variant of some operation of b;
// otherwise Merge returns a *MissingVariantError. Two variants of one
// operation of b may not end up with the same name; that is a
// *RenameConflictError.
func Merge(a, b Model, rename map[string]string) (Model, error) {
	used := make(map[string]bool, len(rename))
	out := a.Clone()
	for _, op := range b.Operations() {
		o := b[op]
		dst := out[op]
		if dst == nil {
			dst = make(Operation, len(o))
			out[op] = dst
		}
		source := make(map[string]string, len(o))
		for _, variant := range o.Variants() {
			name := variant
			if to, ok := rename[variant]; ok {
				name = to
				used[variant] = true
			}
			if prev, ok := source[name]; ok {
				return nil, &RenameConflictError{Operation: op, Name: name, Variants: [2]string{prev, variant}}
			}
			source[name] = variant
			dst[name] = o[variant].Clone()
		}
	}
	for _, from := range sortedKeys(rename) {
		if !used[from] {
			return nil, &MissingVariantError{Variant: from}
		}
	}
	return out, nil
}

// A RenameConflictError reports two variants of one operation that
// take the same name in a merge.
type RenameConflictError struct {
	Operation string
	Name      string
	Variants  [2]string // in name order
}

func (e *RenameConflictError) Error() string {
	return fmt.Sprintf("%s: variants %s and %s are both merged as %s", e.Operation, e.Variants[0], e.Variants[1], e.Name)
}

// Select returns the named variants of operation op. With no
// variants, it returns every variant of op.
func Select(m Model, op string, variants ...string) (Operation, error) {
	o, ok := m[op]
	if !ok {
		return nil, &MissingVariantError{Operation: op}
	}
	if len(variants) == 0 {
		return o.Clone(), nil
	}
	out := make(Operation, len(variants))
	for _, v := range variants {
		s, err := m.Lookup(op, v)
		if err != nil {
			return nil, err
		}
		out[v] = s.Clone()
	}
	return out, nil
}

// A Speedup compares one variant against a baseline variant.
type Speedup struct {
	Variant string

	// Ratios maps each size measured for both variants to
	// baseline time / variant time. Values above 1 mean the variant
	// is faster.
	Ratios Series

	// GeoMean is the geometric mean of Ratios, or NaN if Ratios is
	// empty.
	GeoMean float64
}

// Speedups compares every variant of op (including the baseline
// itself) against baseline. The result is sorted by variant name.
func Speedups(m Model, op, baseline string) ([]Speedup, error) {
	base, err := m.Lookup(op, baseline)
	if err != nil {
		return nil, err
	}
	var out []Speedup
	for _, variant := range m[op].Variants() {
		s := m[op][variant]
		sp := Speedup{Variant: variant, Ratios: make(Series), GeoMean: math.NaN()}
		var xs []float64
		for _, size := range s.Sizes() {
			b, ok := base[size]
			if !ok || s[size] <= 0 || b <= 0 {
				continue
			}
			r := b / s[size]
			sp.Ratios[size] = r
			xs = append(xs, r)
		}
		if len(xs) > 0 {
			sp.GeoMean = stats.GeoMean(xs)
		}
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Variant < out[j].Variant })
	return out, nil
}
