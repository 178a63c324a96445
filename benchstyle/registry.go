// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchstyle assigns legend labels and line colors to
// benchmark variants.
package benchstyle

import (
	"fmt"
	"hash/fnv"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotutil"
)

// A Style is how one variant is drawn.
type Style struct {
	Label string
	Color color.Color
}

// An Entry is a configured style for one variant. Color is a hex
// color ("#rrggbb" or "#rgb"); if empty, the variant gets the
// fallback color.
type Entry struct {
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// Config is the vocabulary of a Registry.
type Config struct {
	// Variants maps exact variant names to their style.
	Variants map[string]Entry `yaml:"variants"`

	// PaletteSize is the number of colors generated for thread
	// families. Values below MinPaletteSize are raised to it.
	PaletteSize int `yaml:"palette_size"`

	// ThreadLabel formats the label of a thread-family variant from
	// the family label and the thread count.
	// The default is DefaultThreadLabel.
	ThreadLabel string `yaml:"thread_label"`

	// Strip lists substrings removed from a variant name before it
	// is resolved, so "YABIL_big" can share the style of "YABIL".
	Strip []string `yaml:"strip"`
}

const (
	MinPaletteSize     = 12
	DefaultPaletteSize = 16
	DefaultThreadLabel = "%s (%d threads)"
)

// A Registry resolves variant names to Styles. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	exact       map[string]Style
	labels      map[string]string // configured labels, including those without colors
	palette     []color.Color
	threadLabel string
	strip       *strings.Replacer
}

// NewRegistry builds a Registry from cfg.
func NewRegistry(cfg Config) (*Registry, error) {
	r := &Registry{
		exact:       make(map[string]Style, len(cfg.Variants)),
		labels:      make(map[string]string, len(cfg.Variants)),
		threadLabel: cfg.ThreadLabel,
	}
	if r.threadLabel == "" {
		r.threadLabel = DefaultThreadLabel
	}
	var pairs []string
	for _, s := range cfg.Strip {
		if s != "" {
			pairs = append(pairs, s, "")
		}
	}
	if len(pairs) > 0 {
		r.strip = strings.NewReplacer(pairs...)
	}
	for name, e := range cfg.Variants {
		label := e.Label
		if label == "" {
			label = name
		}
		r.labels[name] = label
		if e.Color == "" {
			continue
		}
		c, err := ParseColor(e.Color)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %v", name, err)
		}
		r.exact[name] = Style{label, c}
	}
	n := cfg.PaletteSize
	if n == 0 {
		n = DefaultPaletteSize
	}
	if n < MinPaletteSize {
		n = MinPaletteSize
	}
	r.palette = threadPalette(n)
	return r, nil
}

// threadPalette generates n evenly spaced hues. The result depends
// only on n.
func threadPalette(n int) []color.Color {
	return palette.Rainbow(n, palette.Red, palette.Magenta, 1, 0.85, 1).Colors()
}

// PaletteSize returns the number of thread-family colors.
func (r *Registry) PaletteSize() int {
	return len(r.palette)
}

// Resolve returns the Style for variant.
//
// A variant configured with a color uses it. Otherwise, a variant
// named <family>_<N>_threads or <family>_thread_<N>_threads gets
// palette color N and a label built from the family's label. Any
// other variant is labeled with its own name.
func (r *Registry) Resolve(variant string) Style {
	if r.strip != nil {
		variant = r.strip.Replace(variant)
	}
	if s, ok := r.exact[variant]; ok {
		return s
	}
	if family, n, ok := SplitThreads(variant); ok {
		label, ok := r.labels[variant]
		if !ok {
			label = fmt.Sprintf(r.threadLabel, r.label(family), n)
		}
		return Style{label, r.palette[(n-1)%len(r.palette)]}
	}
	return Style{Label: r.label(variant), Color: fallbackColor(variant)}
}

func (r *Registry) label(name string) string {
	if l, ok := r.labels[name]; ok {
		return l
	}
	return name
}

// SplitThreads splits a thread-family variant name into the family
// and the thread count. The name must end in "_<N>_threads", where N
// is a positive decimal number; an additional "_thread" before the
// count is part of the suffix, not the family.
func SplitThreads(variant string) (family string, n int, ok bool) {
	rest, ok := strings.CutSuffix(variant, "_threads")
	if !ok {
		return "", 0, false
	}
	i := strings.LastIndexByte(rest, '_')
	if i < 0 {
		return "", 0, false
	}
	digits := rest[i+1:]
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return "", 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return "", 0, false
	}
	family = strings.TrimSuffix(rest[:i], "_thread")
	if family == "" {
		return "", 0, false
	}
	return family, n, true
}

func fallbackColor(variant string) color.Color {
	h := fnv.New32a()
	h.Write([]byte(variant))
	return plotutil.Color(int(h.Sum32() % uint32(len(plotutil.DefaultColors))))
}

// ParseColor parses a "#rrggbb" or "#rgb" hex color.
func ParseColor(s string) (color.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return nil, fmt.Errorf("bad color %q: want #rrggbb", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("bad color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad color %q: want #rrggbb", s)
	}
	return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}
