// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"os"

	"github.com/yabil/benchviz/benchjson"
	"github.com/yabil/benchviz/benchkey"
)

// KeptAggregate is the statistic kept by a Builder. Records carrying
// any other aggregate kind are dropped.
const KeptAggregate = "mean"

// A DuplicateError reports two mean records for the same operation,
// variant and size.
type DuplicateError struct {
	Operation, Variant string
	Size               int
	Where              string // file of the second record
}

func (e *DuplicateError) Error() string {
	msg := fmt.Sprintf("duplicate result for %s/%s/%d", e.Operation, e.Variant, e.Size)
	if e.Where == "" {
		return msg
	}
	return e.Where + ": " + msg
}

type BuilderOptions struct {
	TimeField benchjson.TimeField // which record time becomes the value

	// StrictDuplicates makes a repeated (operation, variant, size)
	// a *DuplicateError. Otherwise the later record replaces the
	// earlier one and Warn is called.
	StrictDuplicates bool

	Warn func(format string, args ...interface{})
}

func DefaultBuilderOptions() *BuilderOptions {
	return &BuilderOptions{
		TimeField: benchjson.RealTime,
		Warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format, args...)
		},
	}
}

// A Builder collects benchmark records into a Model.
type Builder struct {
	opts  BuilderOptions
	model Model
	where string // file currently being added, for messages
}

// NewBuilder returns a Builder with an empty model. A nil opts
// selects DefaultBuilderOptions.
func NewBuilder(opts *BuilderOptions) *Builder {
	if opts == nil {
		opts = DefaultBuilderOptions()
	}
	b := &Builder{opts: *opts, model: make(Model)}
	if b.opts.TimeField == "" {
		b.opts.TimeField = benchjson.RealTime
	}
	if b.opts.Warn == nil {
		b.opts.Warn = func(string, ...interface{}) {}
	}
	return b
}

// Add adds rec to the model.
//
// Every record name must parse, even if the record is later dropped
// because it is not a mean. Iteration records (single repetitions)
// carry no aggregate suffix; their names are checked and the records
// dropped.
func (b *Builder) Add(rec *benchjson.Record) error {
	if rec.IsIteration() {
		_, err := benchkey.ParseRun(rec.Name)
		return err
	}
	k, err := benchkey.Parse(rec.Name)
	if err != nil {
		return err
	}
	if k.Aggregate != KeptAggregate {
		return nil
	}
	if !rec.HasTime() {
		return fmt.Errorf("%s has no %s or %s", rec.Name, benchjson.CPUTime, benchjson.RealTime)
	}
	if b.model.set(k.Operation, k.Variant, k.Size, rec.Time(b.opts.TimeField)) {
		dup := &DuplicateError{k.Operation, k.Variant, k.Size, b.where}
		if b.opts.StrictDuplicates {
			return dup
		}
		b.opts.Warn("%v; keeping the later value\n", dup)
	}
	return nil
}

// AddFile adds every record of f.
func (b *Builder) AddFile(f *benchjson.File) error {
	b.where = f.Path
	defer func() { b.where = "" }()
	for i := range f.Records {
		if err := b.Add(&f.Records[i]); err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
	}
	return nil
}

// AddCase adds every file of c, in stem order.
func (b *Builder) AddCase(c *benchjson.Case) error {
	for _, stem := range c.Stems() {
		if err := b.AddFile(c.Files[stem]); err != nil {
			return fmt.Errorf("case %s: %w", c.Name, err)
		}
	}
	return nil
}

// Model returns a copy of the model built so far.
func (b *Builder) Model() Model {
	return b.model.Clone()
}

// Aggregate folds records into a new Model.
func Aggregate(records []benchjson.Record, opts *BuilderOptions) (Model, error) {
	b := NewBuilder(opts)
	for i := range records {
		if err := b.Add(&records[i]); err != nil {
			return nil, err
		}
	}
	return b.model, nil
}
