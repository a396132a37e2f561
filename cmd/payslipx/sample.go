package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/extract"
)

func sampleCmd() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a synthetic statement for trying the extractor",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(extract.SampleStatement(seed))
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed; same seed, same statement")
	return cmd
}
