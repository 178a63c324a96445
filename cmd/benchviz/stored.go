// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yabil/benchviz/benchseries"
	"github.com/yabil/benchviz/internal/seriesdb"
	"github.com/yabil/benchviz/report"
)

func newStoredCmd() *cobra.Command {
	var driver, dsn, op string
	cmd := &cobra.Command{
		Use:   "stored [case]",
		Short: "List exported cases, or print the mean times stored for one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := seriesdb.OpenSQL(driver, dsn)
			if err != nil {
				return err
			}
			defer db.Close()
			ctx, out := cmd.Context(), cmd.OutOrStdout()

			if len(args) == 0 {
				names, err := db.Cases(ctx)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			var m benchseries.Model
			if op != "" {
				o, err := db.Points(ctx, args[0], op)
				if err != nil {
					return err
				}
				if len(o) == 0 {
					return &benchseries.MissingVariantError{Operation: op}
				}
				m = benchseries.Model{op: o}
			} else if m, err = db.Model(ctx, args[0]); err != nil {
				return err
			}
			if len(m) == 0 {
				return fmt.Errorf("no stored case %s in %s", args[0], dsn)
			}
			for i, op := range m.Operations() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if err := timeTable(out, op, m[op], report.TimeUnit); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "sqlite3", "database driver (sqlite3 or mysql)")
	cmd.Flags().StringVar(&dsn, "dsn", "benchviz.db", "data source name")
	cmd.Flags().StringVar(&op, "op", "", "only show this operation")
	return cmd
}
