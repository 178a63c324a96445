// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yabil/benchviz/internal/seriesdb"
)

func newExportCmd(flags *caseFlags) *cobra.Command {
	var driver, dsn, as string
	cmd := &cobra.Command{
		Use:   "export <data-dir> <case>",
		Short: "Store the mean times of a case in a SQL database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.load(args[0], args[1])
			if err != nil {
				return err
			}
			db, err := seriesdb.OpenSQL(driver, dsn)
			if err != nil {
				return err
			}
			defer db.Close()
			name := as
			if name == "" {
				name = args[1]
			}
			n, err := db.InsertModel(cmd.Context(), name, m)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d points\n", name, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "sqlite3", "database driver (sqlite3 or mysql)")
	cmd.Flags().StringVar(&dsn, "dsn", "benchviz.db", "data source name")
	cmd.Flags().StringVar(&as, "as", "", "store under this case name instead")
	return cmd
}
