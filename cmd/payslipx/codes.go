package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/catalog"
)

func codesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Inspect the pay-code registry",
	}

	cmd.AddCommand(listCodesCmd())
	cmd.AddCommand(searchCodesCmd())
	cmd.AddCommand(resolveCodeCmd())

	return cmd
}

func listCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered pay code",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.New()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "CODE\tNAME\tTIER")
			for _, code := range cat.AllCodes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", code.Symbol, code.Name, code.Tier)
			}
			return nil
		},
	}
}

func searchCodesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over code symbols and names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.New()
			index, err := catalog.NewReferenceIndex(cat)
			if err != nil {
				return fmt.Errorf("build reference index: %w", err)
			}
			defer index.Close()

			results, err := index.Search(args[0], limit)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			if len(results) == 0 {
				fmt.Println("no matches")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "CODE\tNAME\tTIER\tSCORE")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\n", r.Document.Symbol, r.Document.Name, r.Document.Tier, r.Score)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum results")
	return cmd
}

func resolveCodeCmd() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "resolve <symbol>",
		Short: "Resolve a possibly garbled symbol against the registry",
		Long: `Rank registry codes against an OCR-mangled symbol using the same
fuzzy scoring the extraction pipeline applies.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.New()

			matches := cat.RankPartial(args[0], threshold)
			if len(matches) == 0 {
				fmt.Println("no candidate reaches the threshold")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "CODE\tNAME\tSCORE")
			for _, m := range matches {
				fmt.Fprintf(w, "%s\t%s\t%d\n", m.Code.Symbol, m.Code.Name, m.Score)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 70, "minimum similarity score (0-100)")
	return cmd
}
