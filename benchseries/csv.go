// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes m to out in long form, one row per point, with
// columns operation, variant, size, value. Rows are sorted by
// operation, variant and size.
func WriteCSV(out io.Writer, m Model) error {
	csvw := csv.NewWriter(out)
	csvw.Write([]string{"operation", "variant", "size", "value"})
	for _, op := range m.Operations() {
		for _, variant := range m[op].Variants() {
			for _, p := range m[op][variant].Points() {
				csvw.Write([]string{op, variant, strconv.Itoa(p.Size), strof(p.Value)})
			}
		}
	}
	csvw.Flush()
	return csvw.Error()
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
