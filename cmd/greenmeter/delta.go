package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ja7ad/greenmeter/pkg/report"
)

func newDeltaCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "delta BASELINE_SUMMARY OPTIMIZED_SUMMARY",
		Short: "Compare two run summaries and write the delta",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := report.CompareFiles(args[0], args[1])
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(filepath.Dir(args[1]), report.DeltaFile)
			}
			if err := report.WriteDelta(out, d); err != nil {
				return err
			}
			printDelta(os.Stdout, d)
			fmt.Printf("\nwritten: %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "delta file (default: "+report.DeltaFile+" next to the optimized summary)")
	return cmd
}
