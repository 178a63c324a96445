// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit converts between prefixed forms of benchmark
// units and formats numbers in those units.
package benchunit

import (
	"fmt"
	"math"
	"strings"
)

// A Class specifies what class of unit prefixes are in use.
type Class int

const (
	// Decimal indicates values of a given unit should be scaled
	// by powers of 1000, using SI prefixes such as "k" and "M".
	Decimal Class = iota
	// Binary indicates values of a given unit should be scaled by
	// powers of 1024, using IEC prefixes such as "Ki" and "Mi".
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Base units understood by Split. "sec" is accepted as a spelling
// of "s".
var bases = map[string]string{
	"s":    "s",
	"sec":  "s",
	"bit":  "bit",
	"bits": "bit",
	"B":    "B",
	"op":   "op",
}

// A prefix scales a base unit by radix**exp.
type prefix struct {
	radix float64
	exp   int
}

func (p prefix) factor() float64 {
	return pow(p.radix, p.exp)
}

func pow(radix float64, exp int) float64 {
	if radix == 2 {
		return math.Ldexp(1, exp)
	}
	return math.Pow10(exp)
}

var prefixes = map[string]prefix{
	"n":  {10, -9},
	"u":  {10, -6},
	"µ":  {10, -6},
	"m":  {10, -3},
	"k":  {10, 3},
	"M":  {10, 6},
	"G":  {10, 9},
	"T":  {10, 12},
	"Ki": {2, 10},
	"Mi": {2, 20},
	"Gi": {2, 30},
	"Ti": {2, 40},
}

// Split splits unit into a prefix and a base unit, and returns the
// number of base units in one unit. For example, Split("us") returns
// "u", "s", 1e-6 and Split("KiB") returns "Ki", "B", 1024.
func Split(unit string) (prefix, base string, factor float64, err error) {
	p, base, pf, err := split(unit)
	return p, base, pf.factor(), err
}

func split(unit string) (string, string, prefix, error) {
	if b, ok := bases[unit]; ok {
		return "", b, prefix{10, 0}, nil
	}
	for p, pf := range prefixes {
		if !strings.HasPrefix(unit, p) {
			continue
		}
		if b, ok := bases[unit[len(p):]]; ok {
			return p, b, pf, nil
		}
	}
	return "", "", prefix{}, fmt.Errorf("unknown unit %q", unit)
}

// Divisor returns the number that values in unit from must be divided
// by to express them in unit to. Both units must share a base unit.
// For example, Divisor("ns", "us") is 1000 and Divisor("bit", "kbit")
// is 1000.
func Divisor(from, to string) (float64, error) {
	_, fb, fp, err := split(from)
	if err != nil {
		return 0, err
	}
	_, tb, tp, err := split(to)
	if err != nil {
		return 0, err
	}
	if fb != tb {
		return 0, fmt.Errorf("cannot convert unit %s to %s", from, to)
	}
	if fp.exp == 0 {
		fp.radix = tp.radix
	}
	if tp.exp == 0 {
		tp.radix = fp.radix
	}
	if fp.radix == tp.radix {
		return pow(tp.radix, tp.exp-fp.exp), nil
	}
	return tp.factor() / fp.factor(), nil
}

// ClassOf returns the Class of unit: Binary for byte units and
// Decimal for everything else.
func ClassOf(unit string) Class {
	if _, base, _, err := Split(unit); err == nil && base == "B" {
		return Binary
	}
	return Decimal
}
