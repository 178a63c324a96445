// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yabil/benchviz/benchjson"
	"github.com/yabil/benchviz/benchplot"
	"github.com/yabil/benchviz/benchseries"
	"github.com/yabil/benchviz/benchstyle"
)

// IndexFile is the name of the HTML overview written to every output
// directory.
const IndexFile = "index.html"

type Options struct {
	// OutputDir, if set, replaces the configured output directory.
	OutputDir string

	// Warn is called for recoverable anomalies such as duplicate
	// measurements. The default prints to standard error.
	Warn func(format string, args ...interface{})
}

// A Summary lists what Run wrote.
type Summary struct {
	Dirs []DirSummary // reports in order, then comparisons
}

// A DirSummary describes one output directory.
type DirSummary struct {
	Name   string
	Dir    string
	Charts []ChartSummary
}

type ChartSummary struct {
	Name     string   // operation or comparison name
	Variants []string // drawn variants, in legend order
	Files    []string
}

// Files returns every file written, index files included.
func (s *Summary) Files() []string {
	var files []string
	for _, d := range s.Dirs {
		for _, c := range d.Charts {
			files = append(files, c.Files...)
		}
		files = append(files, filepath.Join(d.Dir, IndexFile))
	}
	return files
}

type runner struct {
	cfg    *Config
	warn   func(format string, args ...interface{})
	out    string
	models map[string]benchseries.Model
	render *benchplot.Renderer
}

// Run loads every case cfg refers to, then writes each report and
// comparison. cfg must come from Load or Parse.
//
// Every case is loaded before anything is written, and each output
// directory is written only after all of its charts rendered, so a
// bad input stops the run without leaving a partial report.
func Run(cfg *Config, opts *Options) (*Summary, error) {
	if opts == nil {
		opts = &Options{}
	}
	r := &runner{cfg: cfg, warn: opts.Warn, out: cfg.OutputDir}
	if r.warn == nil {
		r.warn = func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format, args...)
		}
	}
	if opts.OutputDir != "" {
		r.out = opts.OutputDir
	}

	reg, err := benchstyle.NewRegistry(cfg.Style)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	r.render = &benchplot.Renderer{Registry: reg, Vocabulary: cfg.Vocabulary, Warn: r.warn}

	if err := r.loadCases(); err != nil {
		return nil, err
	}

	sum := new(Summary)
	for i := range cfg.Reports {
		d, err := r.report(&cfg.Reports[i])
		if err != nil {
			return sum, fmt.Errorf("report %s: %w", cfg.Reports[i].Name, err)
		}
		sum.Dirs = append(sum.Dirs, *d)
	}
	if len(cfg.Comparisons) > 0 {
		d, err := r.comparisons()
		if err != nil {
			return sum, err
		}
		sum.Dirs = append(sum.Dirs, *d)
	}
	return sum, nil
}

// loadCases aggregates every case that a report or comparison uses.
func (r *runner) loadCases() error {
	used := make(map[string]bool)
	for _, rep := range r.cfg.Reports {
		for _, c := range rep.Cases {
			used[c] = true
		}
	}
	for _, cmp := range r.cfg.Comparisons {
		for _, s := range cmp.Series {
			used[s.Case] = true
		}
	}
	field, err := benchjson.ParseTimeField(r.cfg.TimeField)
	if err != nil {
		return &ConfigError{Err: err}
	}
	r.models = make(map[string]benchseries.Model)
	for i := range r.cfg.Cases {
		c := &r.cfg.Cases[i]
		if !used[c.Name] {
			continue
		}
		m, err := r.loadCase(c, field)
		if err != nil {
			return err
		}
		r.models[c.Name] = m
	}
	return nil
}

func (r *runner) loadCase(c *Case, field benchjson.TimeField) (benchseries.Model, error) {
	bc, err := benchjson.LoadCase(r.cfg.DataDir, c.dir())
	if err != nil {
		return nil, err
	}
	stems := c.Files
	if len(stems) == 0 {
		stems = bc.Stems()
	}
	b := benchseries.NewBuilder(&benchseries.BuilderOptions{
		TimeField:        field,
		StrictDuplicates: r.cfg.StrictDuplicates,
		Warn:             r.warn,
	})
	for _, stem := range stems {
		f, ok := bc.Files[stem]
		if !ok {
			return nil, fmt.Errorf("case %s: no result file %s%s in %s", c.Name, stem, benchjson.Ext, bc.Dir)
		}
		if err := b.AddFile(f); err != nil {
			return nil, fmt.Errorf("case %s: %w", c.Name, err)
		}
	}
	return b.Model(), nil
}

func (r *runner) findCase(name string) *Case {
	for i := range r.cfg.Cases {
		if r.cfg.Cases[i].Name == name {
			return &r.cfg.Cases[i]
		}
	}
	return nil
}

// merged merges the models of names in order, applying each case's
// renames.
func (r *runner) merged(names []string) (benchseries.Model, error) {
	m := make(benchseries.Model)
	for _, name := range names {
		var err error
		m, err = benchseries.Merge(m, r.models[name], r.findCase(name).Rename)
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", name, err)
		}
	}
	return m, nil
}

type pending struct {
	name  string
	chart *benchplot.Chart
}

func (r *runner) report(rep *Report) (*DirSummary, error) {
	m, err := r.merged(rep.Cases)
	if err != nil {
		return nil, err
	}
	ops := rep.Operations
	if len(ops) == 0 {
		ops = m.Operations()
	}
	var charts []pending
	for _, op := range ops {
		series, ok := m[op]
		if !ok {
			return nil, &benchseries.MissingVariantError{Operation: op}
		}
		ch, err := r.render.Render(op, series, benchplot.Options{
			Exclude: rep.Exclude,
			Order:   rep.Order,
			X:       rep.X.axis(SizeUnit, op),
			Y:       rep.Y.axis(TimeUnit, op),
		})
		if err != nil {
			return nil, err
		}
		charts = append(charts, pending{op, ch})
	}
	return r.write(rep.Name, filepath.Join(r.out, rep.Name), charts)
}

func (r *runner) comparisons() (*DirSummary, error) {
	var charts []pending
	for i := range r.cfg.Comparisons {
		c := &r.cfg.Comparisons[i]
		ch, err := r.comparison(c)
		if err != nil {
			return nil, fmt.Errorf("comparison %s: %w", c.Name, err)
		}
		charts = append(charts, pending{c.Name, ch})
	}
	return r.write(ComparisonsDir, filepath.Join(r.out, ComparisonsDir), charts)
}

func (r *runner) comparison(c *Comparison) (*benchplot.Chart, error) {
	series := make(benchseries.Operation)
	var order []string
	for _, ref := range c.Series {
		m := r.models[ref.Case]
		if ref.Variant == "" {
			o, err := benchseries.Select(m, c.Operation)
			if err != nil {
				return nil, fmt.Errorf("case %s: %w", ref.Case, err)
			}
			for _, v := range o.Variants() {
				series[v] = o[v]
			}
			continue
		}
		s, err := m.Lookup(c.Operation, ref.Variant)
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", ref.Case, err)
		}
		name := ref.Variant
		if ref.As != "" {
			name = ref.As
		}
		series[name] = s.Clone()
		order = append(order, name)
	}
	ch, err := r.render.Render(c.Operation, series, benchplot.Options{
		Exclude: c.Exclude,
		Order:   order,
		X:       c.X.axis(SizeUnit, c.Operation),
		Y:       c.Y.axis(TimeUnit, c.Operation),
	})
	if err != nil {
		return nil, err
	}
	if c.Title != "" {
		ch.Text.Title = c.Title
		ch.Plot.Title.Text = c.Title
	}
	return ch, nil
}

// write saves charts into dir and writes its index.
func (r *runner) write(name, dir string, charts []pending) (*DirSummary, error) {
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return nil, err
	}
	d := &DirSummary{Name: name, Dir: dir}
	idx := benchplot.Index{Title: name}
	for _, p := range charts {
		files, err := p.chart.Save(dir, p.name, r.cfg.Size.chartSize(), r.cfg.Formats...)
		if err != nil {
			return nil, err
		}
		cs := ChartSummary{Name: p.name, Files: files}
		for _, l := range p.chart.Lines {
			cs.Variants = append(cs.Variants, l.Variant)
		}
		d.Charts = append(d.Charts, cs)
		idx.Entries = append(idx.Entries, p.chart.Entry(files))
	}
	f, err := os.Create(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, err
	}
	if err := benchplot.WriteIndex(f, idx); err != nil {
		f.Close()
		return nil, err
	}
	return d, f.Close()
}
