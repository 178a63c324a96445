// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yabil/benchviz/benchseries"
	"github.com/yabil/benchviz/benchunit"
	"github.com/yabil/benchviz/internal/texttab"
	"github.com/yabil/benchviz/report"
)

func newTableCmd(flags *caseFlags) *cobra.Command {
	var op, baseline, unit string
	cmd := &cobra.Command{
		Use:   "table <data-dir> <case>",
		Short: "Print the mean times of a case, or speedups against a baseline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.load(args[0], args[1])
			if err != nil {
				return err
			}
			ops := m.Operations()
			if op != "" {
				if _, ok := m[op]; !ok {
					return &benchseries.MissingVariantError{Operation: op}
				}
				ops = []string{op}
			}
			out := cmd.OutOrStdout()
			for i, op := range ops {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if baseline == "" {
					err = timeTable(out, op, m[op], unit)
				} else {
					err = speedupTable(out, m, op, baseline)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&op, "op", "", "only show this operation")
	cmd.Flags().StringVar(&baseline, "baseline", "", "show speedups against this variant")
	cmd.Flags().StringVar(&unit, "unit", report.TimeUnit, "time unit of the table (ns, us, ms, s)")
	return cmd
}

// sizes returns the union of the sizes of every series of o.
func sizes(o benchseries.Operation) []int {
	seen := make(map[int]bool)
	var out []int
	for _, s := range o {
		for size := range s {
			if !seen[size] {
				seen[size] = true
				out = append(out, size)
			}
		}
	}
	sort.Ints(out)
	return out
}

// timeTable prints the series of o converted from nanoseconds to unit.
func timeTable(w io.Writer, op string, o benchseries.Operation, unit string) error {
	div, err := benchunit.Divisor(report.TimeUnit, unit)
	if err != nil {
		return err
	}
	cols := sizes(o)
	var vals []float64
	for _, s := range o {
		for _, v := range s {
			vals = append(vals, v/div)
		}
	}
	scale := benchunit.CommonScale(vals, benchunit.ClassOf(unit))

	var tab texttab.Table
	tab.Row().Cell(op + " (" + unit + ")")
	for _, size := range cols {
		tab.Cell(strconv.Itoa(size), texttab.Right)
	}
	tab.Rule()
	for _, v := range o.Variants() {
		tab.Row().Cell(v)
		for _, size := range cols {
			x, ok := o[v][size]
			if !ok {
				tab.Cell("~", texttab.Right)
				continue
			}
			tab.Cell(scale.Format(x/div), texttab.Right)
		}
	}
	return tab.Format(w)
}

func speedupTable(w io.Writer, m benchseries.Model, op, baseline string) error {
	sps, err := benchseries.Speedups(m, op, baseline)
	if err != nil {
		return err
	}
	cols := sizes(m[op])

	var tab texttab.Table
	tab.Row().Cell(op + " vs " + baseline).Cell("geomean", texttab.Right)
	for _, size := range cols {
		tab.Cell(strconv.Itoa(size), texttab.Right)
	}
	tab.Rule()
	for _, sp := range sps {
		tab.Row().Cell(sp.Variant).Cell(ratio(sp.GeoMean), texttab.Right)
		for _, size := range cols {
			r, ok := sp.Ratios[size]
			if !ok {
				r = math.NaN()
			}
			tab.Cell(ratio(r), texttab.Right)
		}
	}
	return tab.Format(w)
}

func ratio(r float64) string {
	if math.IsNaN(r) {
		return "~"
	}
	return fmt.Sprintf("%.2fx", r)
}
