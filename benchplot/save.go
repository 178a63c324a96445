// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Size is the physical size of a saved chart.
type Size struct {
	Width, Height vg.Length

	// DPI is the resolution of raster formats.
	DPI int
}

// DefaultSize is a 16cm by 10cm chart at 150 dpi.
var DefaultSize = Size{16 * vg.Centimeter, 10 * vg.Centimeter, 150}

// Formats lists the supported output formats.
var Formats = []string{"png", "svg", "pdf"}

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		s.Width, s.Height = DefaultSize.Width, DefaultSize.Height
	}
	if s.DPI <= 0 {
		s.DPI = DefaultSize.DPI
	}
	return s
}

func newCanvas(format string, s Size) (vg.CanvasWriterTo, error) {
	switch format {
	case "png":
		c := vgimg.NewWith(
			vgimg.UseWH(s.Width, s.Height),
			vgimg.UseDPI(s.DPI),
			vgimg.UseBackgroundColor(color.White),
		)
		return vgimg.PngCanvas{Canvas: c}, nil
	case "svg":
		return vgsvg.New(s.Width, s.Height), nil
	case "pdf":
		return vgpdf.New(s.Width, s.Height), nil
	}
	return nil, fmt.Errorf("unsupported chart format %q", format)
}

// WriteTo draws c in the given format to w.
func (c *Chart) WriteTo(w io.Writer, format string, s Size) error {
	cv, err := newCanvas(format, s.orDefault())
	if err != nil {
		return err
	}
	c.Plot.Draw(draw.New(cv))
	_, err = cv.WriteTo(w)
	return err
}

// Save writes c into dir once per format, as FileName(name) plus the
// format extension. It returns the paths of the written files.
func (c *Chart) Save(dir, name string, s Size, formats ...string) ([]string, error) {
	if len(formats) == 0 {
		formats = Formats[:1]
	}
	var paths []string
	for _, format := range formats {
		path := filepath.Join(dir, FileName(name)+"."+format)
		if err := c.save(path, format, s); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (c *Chart) save(path, format string, s Size) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = e
		}
	}()
	if err := c.WriteTo(f, format, s); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// FileName maps a chart name to a file name, replacing every
// character outside [A-Za-z0-9._-] with '_'.
func FileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9',
			r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || strings.Trim(name, ".") == "" {
		return "_"
	}
	return name
}
