// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"testing"
)

func TestDivisor(t *testing.T) {
	for _, test := range []struct {
		from, to string
		want     float64
	}{
		{"ns", "ns", 1},
		{"ns", "us", 1e3},
		{"ns", "µs", 1e3},
		{"ns", "ms", 1e6},
		{"ns", "s", 1e9},
		{"ns", "sec", 1e9},
		{"us", "ns", 1e-3},
		{"bit", "kbit", 1e3},
		{"bits", "kbits", 1e3},
		{"bit", "Kibit", 1024},
		{"B", "KiB", 1024},
		{"KiB", "MiB", 1024},
	} {
		got, err := Divisor(test.from, test.to)
		if err != nil {
			t.Errorf("Divisor(%s, %s): %v", test.from, test.to, err)
			continue
		}
		if rel := got/test.want - 1; rel > 1e-12 || rel < -1e-12 {
			t.Errorf("Divisor(%s, %s) = %v, want %v", test.from, test.to, got, test.want)
		}
	}
}

func TestDivisorErrors(t *testing.T) {
	for _, test := range [][2]string{
		{"ns", "bit"},
		{"ns", "fortnight"},
		{"", "ns"},
		{"xs", "s"},
	} {
		if _, err := Divisor(test[0], test[1]); err == nil {
			t.Errorf("Divisor(%s, %s): want error", test[0], test[1])
		}
	}
}

func TestSplit(t *testing.T) {
	for _, test := range []struct {
		unit, prefix, base string
	}{
		{"s", "", "s"},
		{"ms", "m", "s"},
		{"MiB", "Mi", "B"},
		{"MB", "M", "B"},
		{"kbit", "k", "bit"},
	} {
		prefix, base, _, err := Split(test.unit)
		if err != nil || prefix != test.prefix || base != test.base {
			t.Errorf("Split(%s) = %q, %q, %v; want %q, %q", test.unit, prefix, base, err, test.prefix, test.base)
		}
	}
}

func TestClassOf(t *testing.T) {
	for unit, want := range map[string]Class{
		"ns":   Decimal,
		"kbit": Decimal,
		"B":    Binary,
		"KiB":  Binary,
		"MB":   Binary,
		"??":   Decimal,
	} {
		if got := ClassOf(unit); got != want {
			t.Errorf("ClassOf(%s) = %v, want %v", unit, got, want)
		}
	}
}
