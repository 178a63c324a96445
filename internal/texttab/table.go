// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out aligned plain-text tables.
package texttab

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// Table collects rows of cells and formats them in aligned columns.
// Methods return the Table so calls can be chained.
type Table struct {
	rows [][]cell

	// Gap separates adjacent columns. The default is two spaces.
	Gap string
}

type cell struct {
	value string
	align Align
	rule  bool
}

// Align is the alignment of a cell within its column.
type Align int

const (
	Left Align = iota
	Center
	Right
)

func (a Align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case Right:
		return strings.Repeat(" ", n) + s
	case Center:
		return strings.Repeat(" ", n/2) + s + strings.Repeat(" ", n-n/2)
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell appends a cell to the current row, starting one if needed.
func (t *Table) Cell(value string, a ...Align) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	if len(a) > 0 {
		c.align = a[0]
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], c)
	return t
}

// Rule adds a row of dashes as wide as each column.
func (t *Table) Rule() *Table {
	t.rows = append(t.rows, []cell{{rule: true}})
	return t
}

func (t *Table) widths() []int {
	var ws []int
	for _, row := range t.rows {
		for i, c := range row {
			if c.rule {
				continue
			}
			if i >= len(ws) {
				ws = append(ws, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > ws[i] {
				ws[i] = n
			}
		}
	}
	return ws
}

// Format writes the table to w. Lines carry no trailing spaces.
func (t *Table) Format(w io.Writer) error {
	gap := t.Gap
	if gap == "" {
		gap = "  "
	}
	ws := t.widths()
	bw := bufio.NewWriter(w)
	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		if len(row) == 1 && row[0].rule {
			for i, w := range ws {
				if i > 0 {
					line.WriteString(gap)
				}
				line.WriteString(strings.Repeat("-", w))
			}
		} else {
			for i, c := range row {
				if i > 0 {
					line.WriteString(gap)
				}
				line.WriteString(c.align.pad(c.value, ws[i]))
			}
		}
		bw.WriteString(strings.TrimRight(line.String(), " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
