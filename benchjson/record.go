// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchjson reads the JSON result files written by the
// benchmark binary (the Google Benchmark "--benchmark_out_format=json"
// format).
//
// Results are grouped into cases. A case is a directory of result
// files, one per run sub-configuration, all produced by the same
// build. Each case is loaded completely or not at all: a single bad
// file fails the whole case.
package benchjson

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// A Record is a single entry of a result file's "benchmarks" array.
type Record struct {
	// Name is the slash-separated benchmark name, including the
	// aggregate suffix, e.g. "Addition/YABIL/16_mean".
	// It is decoded by package benchkey.
	Name string `json:"name"`

	RunName       string `json:"run_name,omitempty"`
	RunType       string `json:"run_type,omitempty"` // "iteration" or "aggregate"
	AggregateName string `json:"aggregate_name,omitempty"`
	Repetitions   int    `json:"repetitions,omitempty"`
	Threads       int    `json:"threads,omitempty"`

	// A result file may carry either time or both. Decode rejects
	// records that carry neither.
	Iterations int64    `json:"iterations"`
	RealTime   *float64 `json:"real_time,omitempty"`
	CPUTime    *float64 `json:"cpu_time,omitempty"`
	TimeUnit   string   `json:"time_unit,omitempty"`
}

// A TimeField selects which measured time is used as a Record's value.
type TimeField string

const (
	CPUTime  TimeField = "cpu_time"
	RealTime TimeField = "real_time"
)

// ParseTimeField parses s as a TimeField. The empty string selects
// RealTime, the wall-clock time.
func ParseTimeField(s string) (TimeField, error) {
	switch TimeField(s) {
	case CPUTime:
		return CPUTime, nil
	case "", RealTime:
		return RealTime, nil
	}
	return "", fmt.Errorf("unknown time field %q (want %q or %q)", s, CPUTime, RealTime)
}

var unitNanos = map[string]float64{
	"":   1,
	"ns": 1,
	"us": 1e3,
	"ms": 1e6,
	"s":  1e9,
}

// Time returns the time selected by field, in nanoseconds. If r lacks
// that field, Time returns the other one. An unknown TimeUnit leaves
// the value unscaled.
func (r *Record) Time(field TimeField) float64 {
	p, alt := r.CPUTime, r.RealTime
	if field == RealTime {
		p, alt = alt, p
	}
	if p == nil {
		p = alt
	}
	if p == nil {
		return math.NaN()
	}
	v := *p
	if f, ok := unitNanos[r.TimeUnit]; ok {
		v *= f
	}
	return v
}

// HasTime reports whether r carries a cpu_time or real_time.
func (r *Record) HasTime() bool {
	return r.CPUTime != nil || r.RealTime != nil
}

// IsIteration reports whether r is a single repetition rather than an
// aggregate over repetitions.
func (r *Record) IsIteration() bool {
	return r.RunType == "iteration"
}

// Context is the "context" header of a result file. Only the fields
// shown on reports are kept.
type Context struct {
	Date             string `json:"date,omitempty"`
	HostName         string `json:"host_name,omitempty"`
	Executable       string `json:"executable,omitempty"`
	NumCPUs          int    `json:"num_cpus,omitempty"`
	MHzPerCPU        int    `json:"mhz_per_cpu,omitempty"`
	LibraryBuildType string `json:"library_build_type,omitempty"`
}

// A File is one decoded result file.
type File struct {
	Path    string // as opened
	Stem    string // base name without extension
	Context Context
	Records []Record
}

type fileJSON struct {
	Context    Context   `json:"context"`
	Benchmarks *[]Record `json:"benchmarks"`
}

// Decode decodes a result file from r. path is used in errors and
// to derive the File's Stem; it is not opened.
//
// Decode requires the whole input to be a single JSON object with a
// "benchmarks" array whose entries all carry a name.
func Decode(r io.Reader, path string) (*File, error) {
	var raw fileJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, &MalformedResultFileError{Path: path, Err: err}
	}
	if dec.More() {
		return nil, &MalformedResultFileError{Path: path, Err: fmt.Errorf("trailing data after result object")}
	}
	if raw.Benchmarks == nil {
		return nil, &MalformedResultFileError{Path: path, Err: fmt.Errorf("missing \"benchmarks\" array")}
	}
	for i, rec := range *raw.Benchmarks {
		if rec.Name == "" {
			return nil, &MalformedResultFileError{Path: path, Err: fmt.Errorf("benchmarks[%d] has no name", i)}
		}
		if !rec.HasTime() {
			return nil, &MalformedResultFileError{Path: path, Err: fmt.Errorf("%s has no %s or %s", rec.Name, CPUTime, RealTime)}
		}
	}
	return &File{
		Path:    path,
		Stem:    stem(path),
		Context: raw.Context,
		Records: *raw.Benchmarks,
	}, nil
}
