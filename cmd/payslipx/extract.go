package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/export"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/extract"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/search"
	"github.com/sunilpawar-git/payslipmax-extract/pkg/config"
)

func extractCmd() *cobra.Command {
	var (
		format       string
		outputPath   string
		strategy     string
		workers      int
		showProgress bool
	)

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract a structured ledger from a statement text file",
		Long: `Read OCR text from a file (or stdin when the argument is "-") and
print the extracted ledger. Formats: json, csv, xlsx.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if strategy != "" {
				cfg.Search.Strategy = strategy
			}
			if workers > 0 {
				cfg.Search.Workers = workers
			}

			svc, err := extract.NewService(cfg, slog.Default())
			if err != nil {
				return fmt.Errorf("build pipeline: %w", err)
			}

			opts := extract.Options{}
			var events chan search.ProgressEvent
			var progressDone chan struct{}
			if showProgress {
				events = make(chan search.ProgressEvent, 256)
				progressDone = make(chan struct{})
				opts.Progress = events
				go func() {
					defer close(progressDone)
					for ev := range events {
						fmt.Fprintf(os.Stderr, "\r%s %d/%d %s", ev.Stage, ev.Completed, ev.Total, ev.Code)
					}
					fmt.Fprintln(os.Stderr)
				}()
			}

			result, err := svc.Process(cmd.Context(), text, opts)
			if events != nil {
				close(events)
				<-progressDone
			}
			if err != nil {
				return err
			}

			if !result.Report.Passed {
				slog.Warn("validation failed",
					slog.Float64("score", result.Report.Score),
					slog.Int("issues", len(result.Report.Issues)))
			}

			out := io.Writer(os.Stdout)
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outputPath, err)
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Ledger interface{} `json:"ledger"`
					Report interface{} `json:"report"`
				}{result.Ledger, result.Report})
			case "csv":
				return export.WriteCSV(out, result.Ledger)
			case "xlsx":
				return export.WriteXLSX(out, result.Ledger)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, csv, xlsx)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "search strategy (sequential, parallel, streaming, adaptive)")
	cmd.Flags().IntVar(&workers, "workers", 0, "search worker count (0 = per CPU core)")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "print per-code progress to stderr")

	return cmd
}

func readInput(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", arg, err)
	}
	return string(data), nil
}
