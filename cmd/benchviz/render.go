// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/yabil/benchviz/report"
)

func newRenderCmd() *cobra.Command {
	var (
		cfgFile string
		outDir  string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the charts described by a report configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := report.Load(cfgFile)
			if err != nil {
				return err
			}
			sum, err := report.Run(cfg, &report.Options{OutputDir: outDir, Warn: log.Printf})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range sum.Dirs {
				fmt.Fprintf(out, "%s: %d charts in %s\n", d.Name, len(d.Charts), d.Dir)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "benchviz.yaml", "report configuration file")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides output_dir)")
	return cmd
}
