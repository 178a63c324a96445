// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report turns a YAML report description into chart files.
//
// A report draws one chart per operation from the merge of one or
// more run cases. A comparison draws one chart from series picked out
// of several cases.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/yabil/benchviz/benchjson"
	"github.com/yabil/benchviz/benchplot"
	"github.com/yabil/benchviz/benchstyle"
	"github.com/yabil/benchviz/benchunit"
)

// Units of the measured values, before axis conversion.
const (
	SizeUnit = "bit"
	TimeUnit = "ns"
)

// ComparisonsDir is the output subdirectory of comparison charts.
const ComparisonsDir = "comparisons"

type Config struct {
	DataDir          string   `yaml:"data_dir"`
	OutputDir        string   `yaml:"output_dir"`
	TimeField        string   `yaml:"time_field"`
	Formats          []string `yaml:"formats"`
	Size             Size     `yaml:"size"`
	StrictDuplicates bool     `yaml:"strict_duplicates"`

	Style      benchstyle.Config    `yaml:",inline"`
	Vocabulary benchplot.Vocabulary `yaml:"vocabulary"`

	Cases       []Case       `yaml:"cases"`
	Reports     []Report     `yaml:"reports"`
	Comparisons []Comparison `yaml:"comparisons"`
}

type Size struct {
	WidthCM  float64 `yaml:"width_cm"`
	HeightCM float64 `yaml:"height_cm"`
	DPI      int     `yaml:"dpi"`
}

// A Case is one directory of result files.
type Case struct {
	Name string `yaml:"name"`

	// Dir is the directory under the data directory. The default is
	// Name, so several cases can read different files of one
	// directory.
	Dir string `yaml:"dir"`

	// Files restricts the case to these file stems. Empty means
	// every result file.
	Files []string `yaml:"files"`

	// Rename maps variant names of this case to the names they take
	// when merged into a report.
	Rename map[string]string `yaml:"rename"`
}

func (c *Case) dir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return c.Name
}

type Report struct {
	Name string `yaml:"name"`

	// Cases are merged in order; a later case replaces variants of
	// the same name from earlier cases.
	Cases []string `yaml:"cases"`

	// Operations to draw. Empty means every operation.
	Operations []string `yaml:"operations"`

	Exclude []string `yaml:"exclude"`
	Order   []string `yaml:"order"`
	X       Axis     `yaml:"x"`
	Y       Axis     `yaml:"y"`
}

type Axis struct {
	Scale string  `yaml:"scale"`
	Unit  string  `yaml:"unit"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`

	// Limits overrides Min and Max for single operations.
	Limits map[string]Limit `yaml:"limits"`
}

type Limit struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type Comparison struct {
	Name      string      `yaml:"name"`
	Operation string      `yaml:"operation"`
	Title     string      `yaml:"title"`
	Exclude   []string    `yaml:"exclude"`
	X         Axis        `yaml:"x"`
	Y         Axis        `yaml:"y"`
	Series    []SeriesRef `yaml:"series"`
}

// A SeriesRef picks series of a comparison's operation from a case.
type SeriesRef struct {
	Case string `yaml:"case"`

	// Variant names one variant. Empty means every variant of the
	// operation in the case.
	Variant string `yaml:"variant"`

	// As renames Variant in the comparison.
	As string `yaml:"as"`
}

// A ConfigError reports an unusable configuration.
type ConfigError struct {
	Path string // empty if the configuration was not read from a file
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "invalid config: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads and validates the configuration in path. Relative data
// and output directories are taken relative to the directory of path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		var cerr *ConfigError
		if errors.As(err, &cerr) {
			cerr.Path = path
		}
		return nil, err
	}
	base := filepath.Dir(path)
	for _, p := range []*string{&cfg.DataDir, &cfg.OutputDir} {
		if !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	return cfg, nil
}

// Parse decodes and validates a YAML configuration and fills in
// defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Err: err}
	}
	if err := cfg.validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "charts"
	}
	if _, err := benchjson.ParseTimeField(cfg.TimeField); err != nil {
		return err
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = []string{"png"}
	}
	for _, f := range cfg.Formats {
		if !isFormat(f) {
			return fmt.Errorf("unsupported format %q (want one of %v)", f, benchplot.Formats)
		}
	}
	if cfg.Size.WidthCM < 0 || cfg.Size.HeightCM < 0 || cfg.Size.DPI < 0 {
		return fmt.Errorf("negative chart size")
	}
	if _, err := benchstyle.NewRegistry(cfg.Style); err != nil {
		return err
	}

	cases := make(map[string]bool)
	for i, c := range cfg.Cases {
		if c.Name == "" {
			return fmt.Errorf("case %d: name is required", i)
		}
		if cases[c.Name] {
			return fmt.Errorf("case %q defined twice", c.Name)
		}
		cases[c.Name] = true
	}

	if len(cfg.Reports) == 0 && len(cfg.Comparisons) == 0 {
		return fmt.Errorf("no reports or comparisons defined")
	}
	names := make(map[string]bool)
	for i, r := range cfg.Reports {
		if r.Name == "" {
			return fmt.Errorf("report %d: name is required", i)
		}
		if r.Name == ComparisonsDir {
			return fmt.Errorf("report name %q is reserved", r.Name)
		}
		if names[r.Name] {
			return fmt.Errorf("report %q defined twice", r.Name)
		}
		names[r.Name] = true
		if len(r.Cases) == 0 {
			return fmt.Errorf("report %q: no cases", r.Name)
		}
		for _, c := range r.Cases {
			if !cases[c] {
				return fmt.Errorf("report %q: unknown case %q", r.Name, c)
			}
		}
		if err := r.X.validate(SizeUnit); err != nil {
			return fmt.Errorf("report %q: x: %v", r.Name, err)
		}
		if err := r.Y.validate(TimeUnit); err != nil {
			return fmt.Errorf("report %q: y: %v", r.Name, err)
		}
	}

	names = make(map[string]bool)
	for i, c := range cfg.Comparisons {
		if c.Name == "" {
			return fmt.Errorf("comparison %d: name is required", i)
		}
		if names[c.Name] {
			return fmt.Errorf("comparison %q defined twice", c.Name)
		}
		names[c.Name] = true
		if c.Operation == "" {
			return fmt.Errorf("comparison %q: operation is required", c.Name)
		}
		if len(c.Series) == 0 {
			return fmt.Errorf("comparison %q: no series", c.Name)
		}
		for _, s := range c.Series {
			if !cases[s.Case] {
				return fmt.Errorf("comparison %q: unknown case %q", c.Name, s.Case)
			}
			if s.As != "" && s.Variant == "" {
				return fmt.Errorf("comparison %q: %q renames no variant", c.Name, s.As)
			}
		}
		if err := c.X.validate(SizeUnit); err != nil {
			return fmt.Errorf("comparison %q: x: %v", c.Name, err)
		}
		if err := c.Y.validate(TimeUnit); err != nil {
			return fmt.Errorf("comparison %q: y: %v", c.Name, err)
		}
	}
	return nil
}

func (a *Axis) validate(native string) error {
	scale, err := benchplot.ParseScale(a.Scale)
	if err != nil {
		return err
	}
	if a.Unit != "" {
		if _, err := benchunit.Divisor(native, a.Unit); err != nil {
			return err
		}
	}
	check := func(what string, l Limit) error {
		if l.Max == 0 && l.Min == 0 {
			return nil
		}
		if l.Max <= l.Min {
			return fmt.Errorf("%s: max %v not above min %v", what, l.Max, l.Min)
		}
		if scale == benchplot.Log && l.Min <= 0 {
			return fmt.Errorf("%s: log scale needs a positive min", what)
		}
		return nil
	}
	if err := check("limits", Limit{a.Min, a.Max}); err != nil {
		return err
	}
	for op, l := range a.Limits {
		if err := check(op, l); err != nil {
			return err
		}
	}
	return nil
}

// axis returns the renderer axis for operation op. The configuration
// must be valid.
func (a *Axis) axis(native, op string) benchplot.Axis {
	scale, _ := benchplot.ParseScale(a.Scale)
	ax := benchplot.Axis{Scale: scale, Min: a.Min, Max: a.Max, Divisor: 1}
	if l, ok := a.Limits[op]; ok {
		ax.Min, ax.Max = l.Min, l.Max
	}
	if a.Unit != "" {
		ax.Divisor, _ = benchunit.Divisor(native, a.Unit)
	}
	return ax
}

func isFormat(f string) bool {
	for _, g := range benchplot.Formats {
		if f == g {
			return true
		}
	}
	return false
}

func (s Size) chartSize() benchplot.Size {
	return benchplot.Size{
		Width:  vg.Length(s.WidthCM) * vg.Centimeter,
		Height: vg.Length(s.HeightCM) * vg.Centimeter,
		DPI:    s.DPI,
	}
}
