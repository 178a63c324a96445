// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yabil/benchviz/benchjson"
	"github.com/yabil/benchviz/internal/texttab"
)

func newCasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cases <data-dir>",
		Short: "List the cases and result files under a data directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := benchjson.ListCases(args[0])
			if err != nil {
				return err
			}
			var tab texttab.Table
			tab.Row().Cell("case").Cell("file").Cell("records", texttab.Right).Cell("host").Cell("date")
			tab.Rule()
			for _, name := range names {
				c, err := benchjson.LoadCase(args[0], name)
				if err != nil {
					return err
				}
				for i, stem := range c.Stems() {
					f := c.Files[stem]
					if i == 0 {
						tab.Row().Cell(name)
					} else {
						tab.Row().Cell("")
					}
					tab.Cell(stem + benchjson.Ext).
						Cell(strconv.Itoa(len(f.Records)), texttab.Right).
						Cell(f.Context.HostName).
						Cell(f.Context.Date)
				}
			}
			if len(names) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no cases in %s\n", args[0])
				return nil
			}
			return tab.Format(cmd.OutOrStdout())
		},
	}
}
