// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchplot draws one comparison chart per operation from a
// benchseries model.
//
// Axis scales and limits come from the caller, never from the data,
// so that the same operation drawn for different reports shares a
// frame and can be compared side by side.
package benchplot

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/yabil/benchviz/benchseries"
	"github.com/yabil/benchviz/benchstyle"
)

// A Scale is an axis scale.
type Scale string

const (
	Linear Scale = "linear"
	Log    Scale = "log"
)

// ParseScale parses s as a Scale. The empty string is Linear.
func ParseScale(s string) (Scale, error) {
	switch Scale(s) {
	case "", Linear:
		return Linear, nil
	case Log:
		return Log, nil
	}
	return "", fmt.Errorf("unknown scale %q (want %q or %q)", s, Linear, Log)
}

// An Axis describes one chart axis.
type Axis struct {
	Scale Scale

	// Min and Max fix the axis range when Max > Min. They are in
	// display units, after division by Divisor.
	Min, Max float64

	// Divisor converts measured values to display units. Zero
	// means 1.
	Divisor float64
}

// check reports axis settings that cannot be drawn.
func (a Axis) check() error {
	if _, err := ParseScale(string(a.Scale)); err != nil {
		return err
	}
	if a.Divisor < 0 || math.IsNaN(a.Divisor) || math.IsInf(a.Divisor, 0) {
		return fmt.Errorf("bad divisor %v", a.Divisor)
	}
	if a.Scale == Log && a.Max > a.Min && a.Min <= 0 {
		return fmt.Errorf("log scale needs a positive min, have %v", a.Min)
	}
	return nil
}

func (a Axis) divisor() float64 {
	if a.Divisor == 0 {
		return 1
	}
	return a.Divisor
}

// Options controls a single Render call.
type Options struct {
	// Exclude drops every variant whose name contains any of these
	// substrings.
	Exclude []string

	// Order lists variants to draw first, in this order. Every
	// listed variant must exist. The remaining variants follow in
	// name order.
	Order []string

	X, Y Axis
}

// A Renderer draws charts using one vocabulary.
type Renderer struct {
	// Registry styles the variants. If nil, every variant gets a
	// fallback style from an empty registry.
	Registry   *benchstyle.Registry
	Vocabulary Vocabulary

	// Warn, if non-nil, is called for points dropped from a chart.
	Warn func(format string, args ...interface{})
}

// A Chart is a rendered operation.
type Chart struct {
	Operation string
	Text      Text
	Plot      *plot.Plot
	Lines     []Line // in legend order
}

// A Line is one drawn variant.
type Line struct {
	Variant string
	Style   benchstyle.Style
	Points  plotter.XYs // in display units
}

const pointRad = 2.5

// Render draws the variants of operation op.
//
// An empty series, or one whose variants are all excluded, yields a
// chart with no lines and an empty legend.
func (r *Renderer) Render(op string, series benchseries.Operation, opts Options) (*Chart, error) {
	if err := opts.X.check(); err != nil {
		return nil, fmt.Errorf("%s: x axis: %v", op, err)
	}
	if err := opts.Y.check(); err != nil {
		return nil, fmt.Errorf("%s: y axis: %v", op, err)
	}
	variants, err := order(op, series, opts.Order)
	if err != nil {
		return nil, err
	}
	reg := r.Registry
	if reg == nil {
		if reg, err = benchstyle.NewRegistry(benchstyle.Config{}); err != nil {
			return nil, err
		}
	}

	text := r.Vocabulary.Lookup(op)
	pl := plot.New()
	pl.Title.Text = text.Title
	pl.X.Label.Text = text.XLabel
	pl.Y.Label.Text = text.YLabel
	pl.Legend.Top = true
	pl.Legend.Left = true
	pl.Legend.Padding = 1 * vg.Millimeter
	pl.Add(plotter.NewGrid())

	ch := &Chart{Operation: op, Text: text, Plot: pl}
	for _, v := range variants {
		if excluded(v, opts.Exclude) {
			continue
		}
		pts := r.points(op, v, series[v], opts)
		if len(pts) == 0 {
			r.warn("%s/%s: no points to draw\n", op, v)
			continue
		}
		style := reg.Resolve(v)
		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %v", op, v, err)
		}
		line.Color = style.Color
		line.Width = vg.Points(1.5)
		scatter.Color = style.Color
		scatter.Shape = draw.CircleGlyph{}
		scatter.Radius = vg.Points(pointRad)

		pl.Add(line, scatter)
		pl.Legend.Add(style.Label, line, scatter)
		ch.Lines = append(ch.Lines, Line{Variant: v, Style: style, Points: pts})
	}

	// Fixed limits go in last: Add widens the axes to the data.
	setAxis(&pl.X, opts.X)
	setAxis(&pl.Y, opts.Y)
	return ch, nil
}

// points converts s to display units. Points that a log axis cannot
// show are dropped.
func (r *Renderer) points(op, variant string, s benchseries.Series, opts Options) plotter.XYs {
	xd, yd := opts.X.divisor(), opts.Y.divisor()
	pts := make(plotter.XYs, 0, len(s))
	for _, p := range s.Points() {
		x, y := float64(p.Size)/xd, p.Value/yd
		if math.IsNaN(y) || math.IsInf(y, 0) ||
			(opts.X.Scale == Log && x <= 0) ||
			(opts.Y.Scale == Log && y <= 0) {
			r.warn("%s/%s: dropping point (%v, %v)\n", op, variant, x, y)
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts
}

func (r *Renderer) warn(format string, args ...interface{}) {
	if r.Warn != nil {
		r.Warn(format, args...)
	}
}

func setAxis(a *plot.Axis, ax Axis) {
	if ax.Scale == Log {
		a.Scale = plot.LogScale{}
		a.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	switch {
	case ax.Max > ax.Min:
		a.Min, a.Max = ax.Min, ax.Max
	case ax.Scale == Log && !(a.Min > 0 && a.Max >= a.Min):
		// No data and no limits: give the log axis a valid range.
		a.Min, a.Max = 1, 10
	}
}

// order returns the variants of series to draw: opts order first,
// then the rest by name.
func order(op string, series benchseries.Operation, first []string) ([]string, error) {
	seen := make(map[string]bool, len(first))
	out := make([]string, 0, len(series))
	for _, v := range first {
		if _, ok := series[v]; !ok {
			return nil, &benchseries.MissingVariantError{Operation: op, Variant: v}
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range series.Variants() {
		if !seen[v] {
			out = append(out, v)
		}
	}
	return out, nil
}

func excluded(variant string, exclude []string) bool {
	for _, e := range exclude {
		if e != "" && strings.Contains(variant, e) {
			return true
		}
	}
	return false
}
