// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"io"
	"path/filepath"

	"github.com/google/safehtml/template"
)

// An Index is an HTML overview of the charts in one directory.
type Index struct {
	Title   string
	Entries []IndexEntry
}

// An IndexEntry is one chart in an Index. Image and Files are
// relative to the index file.
type IndexEntry struct {
	Title    string
	Image    string
	Files    []string
	Variants []string // legend labels, in legend order
}

// Entry returns the index entry for c, saved to files.
func (c *Chart) Entry(files []string) IndexEntry {
	e := IndexEntry{Title: c.Text.Title}
	for _, f := range files {
		e.Files = append(e.Files, filepath.Base(f))
	}
	for _, f := range e.Files {
		// Browsers can show png and svg inline but not pdf.
		if ext := filepath.Ext(f); ext == ".png" || ext == ".svg" {
			e.Image = f
			break
		}
	}
	for _, l := range c.Lines {
		e.Variants = append(e.Variants, l.Style.Label)
	}
	return e
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
.chart { display: inline-block; margin: 1em; vertical-align: top; }
.chart img { max-width: 640px; }
.variants { color: #555; font-size: small; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Entries}}
<div class="chart">
<h2>{{.Title}}</h2>
{{- if .Image}}
<img src="{{.Image}}" alt="{{.Title}}">
{{- end}}
<div class="variants">{{range $i, $v := .Variants}}{{if $i}}, {{end}}{{$v}}{{else}}no data{{end}}</div>
<div>{{range .Files}}<a href="{{.}}">{{.}}</a> {{end}}</div>
</div>
{{- end}}
</body>
</html>
`))

// WriteIndex writes idx to w as an HTML page.
func WriteIndex(w io.Writer, idx Index) error {
	return indexTemplate.Execute(w, idx)
}
