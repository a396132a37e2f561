// Package extract wires the full pipeline: pay-code search, section
// classification, ledger assembly, identity extraction and validation.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/assemble"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/catalog"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/classify"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/identity"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/search"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/validate"
	"github.com/sunilpawar-git/payslipmax-extract/pkg/config"
)

// PositionedText is one OCR fragment with page coordinates. The text
// pipeline currently consumes only the flattened text; coordinates are
// accepted so callers with layout-aware OCR do not need a second API.
type PositionedText struct {
	Text   string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Options carries per-document inputs beyond the raw text.
type Options struct {
	// ExplicitTotals overrides figures the label-line pass would find in
	// the text. Keys are the assemble package's explicit-total keys.
	ExplicitTotals map[string]decimal.Decimal
	// Positions is optional layout metadata from the OCR stage.
	Positions []PositionedText
	// Progress receives advisory per-code events when set.
	Progress chan<- search.ProgressEvent
}

// Result is everything produced for one document.
type Result struct {
	Ledger assemble.Ledger
	Report validate.Report
	Items  map[string]search.FinancialItem
}

// Service is the long-lived pipeline. Safe for concurrent use.
type Service struct {
	catalog      *catalog.Catalog
	engine       *classify.Engine
	searchCfg    search.Config
	orchestrator *search.Orchestrator
	assembler    *assemble.Assembler
	checker      *validate.Checker
	logger       *slog.Logger
}

// NewService builds the pipeline from application configuration.
func NewService(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	strategy, err := search.ParseStrategy(cfg.Search.Strategy)
	if err != nil {
		return nil, fmt.Errorf("search strategy: %w", err)
	}

	cat := catalog.New()
	engine := classify.NewEngine(cat, classify.Config{
		ContextWindow:       cfg.Extraction.ContextWindowChars,
		EarningsValueCutoff: decimal.NewFromFloat(cfg.Extraction.EarningsValueCutoff),
		FuzzyThreshold:      cfg.Extraction.FuzzyThreshold,
	})

	searchCfg := search.Config{
		Workers:  cfg.Search.Workers,
		Strategy: strategy,
	}

	return &Service{
		catalog:      cat,
		engine:       engine,
		searchCfg:    searchCfg,
		orchestrator: search.NewOrchestrator(cat, engine, searchCfg, logger),
		assembler: assemble.NewAssembler(assemble.Config{
			DeductionCeiling: decimal.NewFromFloat(cfg.Extraction.EarningsValueCutoff),
		}),
		checker: validate.NewChecker(validate.Config{
			ContentWeight:      cfg.Validation.ContentWeight,
			CompletenessWeight: cfg.Validation.CompletenessWeight,
			ErrorRateWeight:    cfg.Validation.ErrorRateWeight,
			PerformanceWeight:  cfg.Validation.PerformanceWeight,
			FormatWeight:       cfg.Validation.FormatWeight,
			MinScore:           cfg.Validation.MinScore,
			MinTextLength:      cfg.Validation.MinTextLength,
			ArtifactCeiling:    cfg.Validation.ArtifactCeiling,
		}),
		logger: logger,
	}, nil
}

// Process runs the full pipeline over one document's text. The returned
// Result always carries a validation report; callers check Report.Passed
// before trusting the ledger.
func (s *Service) Process(ctx context.Context, text string, opts Options) (Result, error) {
	start := time.Now()

	// The shared orchestrator has no progress sink; a per-call instance is
	// built only when the caller wants events.
	orchestrator := s.orchestrator
	if opts.Progress != nil {
		orchestrator = search.NewOrchestrator(s.catalog, s.engine, s.searchCfg, s.logger,
			search.WithProgress(opts.Progress))
	}

	items := orchestrator.SearchAllPayCodes(ctx, text)
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("search canceled: %w", err)
	}

	explicit := assemble.ExtractExplicitTotals(text)
	for key, v := range opts.ExplicitTotals {
		explicit[key] = v
	}

	id := identity.Extract(text)
	ledger := s.assembler.Assemble(items, explicit, id)

	elapsed := time.Since(start)
	report := s.checker.Check(validate.Input{
		Text:      text,
		Ledger:    ledger,
		ItemCount: len(items),
		Duration:  elapsed,
	})

	documentsTotal.Inc()
	itemsTotal.Add(float64(len(items)))
	extractionSeconds.Observe(elapsed.Seconds())
	if !report.Passed {
		validationFailuresTotal.Inc()
	}

	s.logger.InfoContext(ctx, "document processed",
		slog.Int("items", len(items)),
		slog.Float64("score", report.Score),
		slog.Bool("passed", report.Passed),
		slog.Duration("elapsed", elapsed),
	)

	return Result{Ledger: ledger, Report: report, Items: items}, nil
}
