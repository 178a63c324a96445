// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchviz turns Google Benchmark JSON results into comparison charts.
//
// Usage:
//
//	benchviz render -c report.yaml [--out dir]
//	benchviz cases <data-dir>
//	benchviz table <data-dir> <case> [--op name] [--baseline variant] [--unit us]
//	benchviz csv <data-dir> <case>
//	benchviz export <data-dir> <case> --driver sqlite3 --dsn results.db
//	benchviz stored [case] [--op name] --driver sqlite3 --dsn results.db
//
// Result files are read from <data-dir>/<case>/*.json. Each benchmark
// name must have the form operation/variant/size_aggregate or
// operation/variant/size/threadindex_aggregate; only mean aggregates
// are kept.
//
// The render command reads a YAML description of reports and
// comparisons and writes one chart per operation plus an index.html
// per output directory.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/yabil/benchviz/benchjson"
	"github.com/yabil/benchviz/benchseries"
)

// flags shared by the commands that aggregate a case directly.
type caseFlags struct {
	timeField string
	strict    bool
}

func (f *caseFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.timeField, "time-field", string(benchjson.RealTime), "measured time to use (cpu_time or real_time)")
	cmd.PersistentFlags().BoolVar(&f.strict, "strict", false, "fail on duplicate measurements instead of keeping the last")
}

// load aggregates case name under dataDir.
func (f *caseFlags) load(dataDir, name string) (benchseries.Model, error) {
	field, err := benchjson.ParseTimeField(f.timeField)
	if err != nil {
		return nil, err
	}
	c, err := benchjson.LoadCase(dataDir, name)
	if err != nil {
		return nil, err
	}
	b := benchseries.NewBuilder(&benchseries.BuilderOptions{
		TimeField:        field,
		StrictDuplicates: f.strict,
		Warn:             log.Printf,
	})
	if err := b.AddCase(c); err != nil {
		return nil, err
	}
	return b.Model(), nil
}

func newRootCmd() *cobra.Command {
	var flags caseFlags
	root := &cobra.Command{
		Use:           "benchviz",
		Short:         "Aggregate benchmark results and draw comparison charts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.register(root)
	root.AddCommand(
		newRenderCmd(),
		newCasesCmd(),
		newTableCmd(&flags),
		newCSVCmd(&flags),
		newExportCmd(&flags),
		newStoredCmd(),
	)
	return root
}

func main() {
	log.SetPrefix("benchviz: ")
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
