// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/yabil/benchviz/benchseries"
)

func newCSVCmd(flags *caseFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "csv <data-dir> <case>",
		Short: "Write the mean times of a case as CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.load(args[0], args[1])
			if err != nil {
				return err
			}
			return benchseries.WriteCSV(cmd.OutOrStdout(), m)
		},
	}
}
