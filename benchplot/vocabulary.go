// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

// Text is the displayed text of one chart.
type Text struct {
	Title  string `yaml:"title"`
	XLabel string `yaml:"x_label"`
	YLabel string `yaml:"y_label"`
}

// A Vocabulary translates operation names into chart text.
type Vocabulary struct {
	// XLabel and YLabel are the axis labels of operations that do
	// not set their own.
	XLabel string `yaml:"x_label"`
	YLabel string `yaml:"y_label"`

	Operations map[string]Text `yaml:"operations"`
}

// Lookup returns the text for operation op. The title falls back to
// op itself and the axis labels to the vocabulary defaults.
func (v Vocabulary) Lookup(op string) Text {
	t := v.Operations[op]
	if t.Title == "" {
		t.Title = op
	}
	if t.XLabel == "" {
		t.XLabel = v.XLabel
	}
	if t.YLabel == "" {
		t.YLabel = v.YLabel
	}
	return t
}
