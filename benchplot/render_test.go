// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/plot/plotter"

	"github.com/yabil/benchviz/benchjson"
	"github.com/yabil/benchviz/benchseries"
	"github.com/yabil/benchviz/benchstyle"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	reg, err := benchstyle.NewRegistry(benchstyle.Config{
		Variants: map[string]benchstyle.Entry{
			"YABIL": {Label: "YABIL", Color: "#1f77b4"},
			"GMP":   {Label: "GNU MP", Color: "#d62728"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return &Renderer{
		Registry: reg,
		Vocabulary: Vocabulary{
			XLabel: "Operand size (bits)",
			YLabel: "Time (ns)",
			Operations: map[string]Text{
				"Addition": {Title: "Addition of two integers"},
			},
		},
		Warn: func(format string, args ...interface{}) { t.Logf(format, args...) },
	}
}

func TestRenderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "normal"), 0o777); err != nil {
		t.Fatal(err)
	}
	data := `{"benchmarks": [{"name": "Addition/YABIL/16_mean", "run_type": "aggregate", "aggregate_name": "mean", "cpu_time": 100, "real_time": 100, "time_unit": "ns"}]}`
	if err := os.WriteFile(filepath.Join(dir, "normal", "yabil.json"), []byte(data), 0o666); err != nil {
		t.Fatal(err)
	}
	c, err := benchjson.LoadCase(dir, "normal")
	if err != nil {
		t.Fatal(err)
	}
	m, err := benchseries.Aggregate(c.Records(), nil)
	if err != nil {
		t.Fatal(err)
	}

	r := testRenderer(t)
	ch, err := r.Render("Addition", m["Addition"], Options{X: Axis{Divisor: 1}, Y: Axis{Divisor: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if len(ch.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(ch.Lines))
	}
	l := ch.Lines[0]
	if l.Variant != "YABIL" || l.Style.Label != r.Registry.Resolve("YABIL").Label {
		t.Errorf("line %s labeled %q", l.Variant, l.Style.Label)
	}
	if diff := cmp.Diff(plotter.XYs{{X: 16, Y: 100}}, l.Points); diff != "" {
		t.Errorf("points (-want +got):\n%s", diff)
	}
}

func TestRenderText(t *testing.T) {
	r := testRenderer(t)
	ch, err := r.Render("Addition", nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := Text{Title: "Addition of two integers", XLabel: "Operand size (bits)", YLabel: "Time (ns)"}
	if ch.Text != want || ch.Plot.Title.Text != want.Title || ch.Plot.Y.Label.Text != want.YLabel {
		t.Errorf("text %+v, want %+v", ch.Text, want)
	}
	// Untranslated operations use their own name.
	ch, err = r.Render("Shift", nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if ch.Text.Title != "Shift" {
		t.Errorf("title %q, want Shift", ch.Text.Title)
	}
}

func testSeries() benchseries.Operation {
	return benchseries.Operation{
		"YABIL":                    {16: 100, 1024: 2400},
		"GMP":                      {16: 40, 1024: 880},
		"YABIL_parallel_4_threads": {1024: 1000, 4096: 3000},
	}
}

func TestRenderDivisors(t *testing.T) {
	r := testRenderer(t)
	ch, err := r.Render("Addition", testSeries(), Options{
		Exclude: []string{"parallel"},
		X:       Axis{Divisor: 1000},
		Y:       Axis{Divisor: 1000},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]plotter.XYs{}
	for _, l := range ch.Lines {
		got[l.Variant] = l.Points
	}
	want := map[string]plotter.XYs{
		"GMP":   {{X: 0.016, Y: 0.04}, {X: 1.024, Y: 0.88}},
		"YABIL": {{X: 0.016, Y: 0.1}, {X: 1.024, Y: 2.4}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("points (-want +got):\n%s", diff)
	}
}

func TestRenderOrder(t *testing.T) {
	r := testRenderer(t)
	ch, err := r.Render("Addition", testSeries(), Options{Order: []string{"YABIL"}})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, l := range ch.Lines {
		got = append(got, l.Variant)
	}
	want := []string{"YABIL", "GMP", "YABIL_parallel_4_threads"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}

	_, err = r.Render("Addition", testSeries(), Options{Order: []string{"MPIR"}})
	var mv *benchseries.MissingVariantError
	if !errors.As(err, &mv) || mv.Variant != "MPIR" {
		t.Errorf("got %v, want MissingVariantError for MPIR", err)
	}
}

func TestRenderEmpty(t *testing.T) {
	r := testRenderer(t)
	for name, test := range map[string]struct {
		series  benchseries.Operation
		exclude []string
	}{
		"nil":      {nil, nil},
		"excluded": {testSeries(), []string{"YABIL", "GMP"}},
	} {
		ch, err := r.Render("Addition", test.series, Options{Exclude: test.exclude, Y: Axis{Scale: Log}})
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if len(ch.Lines) != 0 {
			t.Errorf("%s: got %d lines, want 0", name, len(ch.Lines))
		}
		// An empty log chart must still draw.
		var buf bytes.Buffer
		if err := ch.WriteTo(&buf, "svg", Size{}); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestRenderLogAxis(t *testing.T) {
	r := testRenderer(t)
	s := benchseries.Operation{"YABIL": {0: 5, 16: 100, 32: 0}}
	ch, err := r.Render("Addition", s, Options{
		X: Axis{Scale: Log},
		Y: Axis{Scale: Log, Min: 1, Max: 1000},
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(plotter.XYs{{X: 16, Y: 100}}, ch.Lines[0].Points); diff != "" {
		t.Errorf("points (-want +got):\n%s", diff)
	}
	if ch.Plot.Y.Min != 1 || ch.Plot.Y.Max != 1000 {
		t.Errorf("y range [%v, %v], want [1, 1000]", ch.Plot.Y.Min, ch.Plot.Y.Max)
	}
}

func TestParseScale(t *testing.T) {
	for in, want := range map[string]Scale{"": Linear, "linear": Linear, "log": Log} {
		if got, err := ParseScale(in); err != nil || got != want {
			t.Errorf("ParseScale(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseScale("exp"); err == nil {
		t.Errorf("ParseScale(exp): want error")
	}
}

func TestSave(t *testing.T) {
	r := testRenderer(t)
	ch, err := r.Render("Addition", testSeries(), Options{X: Axis{Scale: Log}, Y: Axis{Scale: Log}})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	paths, err := ch.Save(dir, "Addition/normal", Size{}, Formats...)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "Addition_normal.png"),
		filepath.Join(dir, "Addition_normal.svg"),
		filepath.Join(dir, "Addition_normal.pdf"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			t.Error(err)
		} else if fi.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
	png, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("%s is not a PNG file", want[0])
	}

	if _, err := ch.Save(dir, "x", Size{}, "bmp"); err == nil {
		t.Errorf("Save bmp: want error")
	}
}

func TestFileName(t *testing.T) {
	for in, want := range map[string]string{
		"Addition":          "Addition",
		"Addition/normal":   "Addition_normal",
		"digit width (u16)": "digit_width__u16_",
		"..":                "_",
		"":                  "_",
	} {
		if got := FileName(in); got != want {
			t.Errorf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteIndex(t *testing.T) {
	r := testRenderer(t)
	ch, err := r.Render("Addition", testSeries(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	e := ch.Entry([]string{"out/Addition.pdf", "out/Addition.png"})
	if e.Image != "Addition.png" {
		t.Errorf("image %q, want Addition.png", e.Image)
	}
	var buf bytes.Buffer
	idx := Index{Title: "normal <1>", Entries: []IndexEntry{e}}
	if err := WriteIndex(&buf, idx); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>normal &lt;1&gt;</title>",
		`<img src="Addition.png"`,
		`<a href="Addition.pdf">`,
		"GNU MP, YABIL",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("index missing %q:\n%s", want, out)
		}
	}
}

func TestRenderBadAxis(t *testing.T) {
	r := testRenderer(t)
	s := benchseries.Operation{"YABIL": {16: 100}}
	for name, opts := range map[string]Options{
		"log zero min":     {Y: Axis{Scale: Log, Min: 0, Max: 1000}},
		"log negative min": {X: Axis{Scale: Log, Min: -1, Max: 10}},
		"scale":            {X: Axis{Scale: "exp"}},
		"divisor":          {Y: Axis{Divisor: -1}},
	} {
		if ch, err := r.Render("Addition", s, opts); err == nil {
			t.Errorf("%s: got chart %v, want error", name, ch.Lines)
		}
	}

	// Limits that are not in effect do not need a positive min.
	ch, err := r.Render("Addition", s, Options{Y: Axis{Scale: Log, Min: 0, Max: 0}})
	if err != nil {
		t.Fatal(err)
	}
	if err := ch.WriteTo(io.Discard, "png", Size{}); err != nil {
		t.Error(err)
	}
}

func TestRenderNoRegistry(t *testing.T) {
	r := &Renderer{}
	ch, err := r.Render("Addition", testSeries(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	want, err := benchstyle.NewRegistry(benchstyle.Config{})
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range ch.Lines {
		if diff := cmp.Diff(want.Resolve(l.Variant).Label, l.Style.Label); diff != "" {
			t.Errorf("%s label (-want +got):\n%s", l.Variant, diff)
		}
	}
	if len(ch.Lines) != 3 {
		t.Errorf("got %d lines, want 3", len(ch.Lines))
	}
}
