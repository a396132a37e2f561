// Package validate scores extraction results and flags suspect documents
// before their ledgers are handed to callers.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/assemble"
)

// IssueCode identifies a class of validation finding.
type IssueCode string

const (
	IssueEmptyDocument       IssueCode = "empty_document"
	IssueInsufficientData    IssueCode = "insufficient_data"
	IssueExcessiveArtifacts  IssueCode = "excessive_artifacts"
	IssueNoFinancialData     IssueCode = "no_financial_data"
	IssueImplausibleTotals   IssueCode = "implausible_totals"
	IssueMissingPeriod       IssueCode = "missing_statement_period"
	IssueInvalidYear         IssueCode = "invalid_year"
	IssueSlowExtraction      IssueCode = "slow_extraction"
)

// Issue is one finding with a human-readable message.
type Issue struct {
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

// Report carries the weighted quality score and every finding. A failed
// report still includes the ledger built upstream; callers decide whether
// to surface it.
type Report struct {
	Score  float64 `json:"score"`
	Passed bool    `json:"passed"`
	Issues []Issue `json:"issues,omitempty"`
}

// Config tunes the weighted scoring. Weights are relative; the score is
// normalized to 0-100.
type Config struct {
	ContentWeight      float64
	CompletenessWeight float64
	ErrorRateWeight    float64
	PerformanceWeight  float64
	FormatWeight       float64

	MinScore        float64
	MinTextLength   int
	ArtifactCeiling float64
	SlowThreshold   time.Duration
}

// DefaultConfig returns the stock weighting.
func DefaultConfig() Config {
	return Config{
		ContentWeight:      30,
		CompletenessWeight: 20,
		ErrorRateWeight:    10,
		PerformanceWeight:  20,
		FormatWeight:       20,
		MinScore:           50,
		MinTextLength:      50,
		ArtifactCeiling:    0.4,
		SlowThreshold:      2 * time.Second,
	}
}

// Input is everything the checker needs about one extraction run.
type Input struct {
	Text      string
	Ledger    assemble.Ledger
	ItemCount int
	Duration  time.Duration
}

// Checker applies the weighted quality checks.
type Checker struct {
	cfg Config
}

// NewChecker builds a checker, substituting defaults for a zero config.
func NewChecker(cfg Config) *Checker {
	if cfg.ContentWeight == 0 && cfg.CompletenessWeight == 0 &&
		cfg.ErrorRateWeight == 0 && cfg.PerformanceWeight == 0 && cfg.FormatWeight == 0 {
		def := DefaultConfig()
		def.MinScore = cfg.MinScore
		if def.MinScore == 0 {
			def.MinScore = DefaultConfig().MinScore
		}
		cfg = def
	}
	if cfg.MinTextLength == 0 {
		cfg.MinTextLength = DefaultConfig().MinTextLength
	}
	if cfg.ArtifactCeiling == 0 {
		cfg.ArtifactCeiling = DefaultConfig().ArtifactCeiling
	}
	if cfg.SlowThreshold == 0 {
		cfg.SlowThreshold = DefaultConfig().SlowThreshold
	}
	return &Checker{cfg: cfg}
}

// Check scores the run. An empty document short-circuits to a zero score.
func (c *Checker) Check(in Input) Report {
	var report Report

	trimmed := strings.TrimSpace(in.Text)
	if trimmed == "" {
		report.Issues = append(report.Issues, Issue{
			Code:    IssueEmptyDocument,
			Message: "document contains no text",
		})
		return report
	}

	content := c.contentScore(trimmed, &report)
	completeness := c.completenessScore(in, &report)
	errorRate := c.errorRateScore(trimmed, &report)
	performance := c.performanceScore(in.Duration, &report)
	format := c.formatScore(in.Ledger, &report)

	totalWeight := c.cfg.ContentWeight + c.cfg.CompletenessWeight +
		c.cfg.ErrorRateWeight + c.cfg.PerformanceWeight + c.cfg.FormatWeight

	weighted := content*c.cfg.ContentWeight +
		completeness*c.cfg.CompletenessWeight +
		errorRate*c.cfg.ErrorRateWeight +
		performance*c.cfg.PerformanceWeight +
		format*c.cfg.FormatWeight

	report.Score = weighted / totalWeight * 100

	// A ledger with no credits is unusable whatever the weighted score says.
	hasCredits := in.Ledger.CreditsTotal.IsPositive()
	if !hasCredits {
		report.Issues = append(report.Issues, Issue{
			Code:    IssueInsufficientData,
			Message: "no credits total could be established",
		})
	}
	report.Passed = hasCredits && report.Score >= c.cfg.MinScore
	return report
}

func (c *Checker) contentScore(text string, report *Report) float64 {
	n := len(text)
	if n >= c.cfg.MinTextLength {
		return 1
	}
	report.Issues = append(report.Issues, Issue{
		Code:    IssueInsufficientData,
		Message: fmt.Sprintf("text length %d below minimum %d", n, c.cfg.MinTextLength),
	})
	return float64(n) / float64(c.cfg.MinTextLength)
}

func (c *Checker) completenessScore(in Input, report *Report) float64 {
	checks := 0
	passed := 0

	mark := func(ok bool) {
		checks++
		if ok {
			passed++
		}
	}

	mark(in.ItemCount > 0)
	mark(len(in.Ledger.Earnings) > 0)
	mark(in.Ledger.CreditsTotal.IsPositive())
	mark(in.Ledger.Month != "" && in.Ledger.Year != 0)

	if in.ItemCount == 0 {
		report.Issues = append(report.Issues, Issue{
			Code:    IssueNoFinancialData,
			Message: "no pay codes recognized in document",
		})
	}
	return float64(passed) / float64(checks)
}

// errorRateScore penalizes OCR artifact density: replacement runes and
// non-printable characters relative to total length.
func (c *Checker) errorRateScore(text string, report *Report) float64 {
	var artifacts, total int
	for _, r := range text {
		total++
		if r == unicode.ReplacementChar || (!unicode.IsPrint(r) && !unicode.IsSpace(r)) {
			artifacts++
		}
	}
	if total == 0 {
		return 0
	}
	ratio := float64(artifacts) / float64(total)
	if ratio > c.cfg.ArtifactCeiling {
		report.Issues = append(report.Issues, Issue{
			Code:    IssueExcessiveArtifacts,
			Message: fmt.Sprintf("artifact ratio %.2f exceeds ceiling %.2f", ratio, c.cfg.ArtifactCeiling),
		})
		return 0
	}
	return 1 - ratio/c.cfg.ArtifactCeiling
}

func (c *Checker) performanceScore(d time.Duration, report *Report) float64 {
	if d <= c.cfg.SlowThreshold {
		return 1
	}
	report.Issues = append(report.Issues, Issue{
		Code:    IssueSlowExtraction,
		Message: fmt.Sprintf("extraction took %s, threshold %s", d, c.cfg.SlowThreshold),
	})
	// Halve the score for every threshold multiple past the first.
	over := float64(d) / float64(c.cfg.SlowThreshold)
	return 1 / over
}

func (c *Checker) formatScore(ledger assemble.Ledger, report *Report) float64 {
	checks := 0
	passed := 0

	mark := func(ok bool) {
		checks++
		if ok {
			passed++
		}
	}

	// Debits more than double the credits is flagged, never fatal: some
	// statements legitimately carry large recoveries.
	plausible := ledger.CreditsTotal.IsZero() ||
		ledger.DebitsTotal.LessThanOrEqual(ledger.CreditsTotal.Mul(decimal.NewFromInt(2)))
	mark(plausible)
	if !plausible {
		report.Issues = append(report.Issues, Issue{
			Code:    IssueImplausibleTotals,
			Message: "total deductions exceed twice the total credits",
		})
	}

	hasPeriod := ledger.Month != "" || ledger.Year != 0
	mark(hasPeriod)
	if !hasPeriod {
		report.Issues = append(report.Issues, Issue{
			Code:    IssueMissingPeriod,
			Message: "no statement month or year found",
		})
	}

	yearOK := ledger.Year == 0 || (ledger.Year >= 1900 && ledger.Year <= time.Now().Year()+1)
	mark(yearOK)
	if !yearOK {
		report.Issues = append(report.Issues, Issue{
			Code:    IssueInvalidYear,
			Message: fmt.Sprintf("statement year %d outside plausible range", ledger.Year),
		})
	}

	return float64(passed) / float64(checks)
}
