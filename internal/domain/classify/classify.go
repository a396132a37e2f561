// Package classify decides which side of the payslip a matched pay-code
// occurrence belongs to. Guaranteed-tier codes resolve in constant time from
// the catalog; universal dual-section codes go through contextual keyword
// scoring with a value-magnitude fallback.
package classify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cloudflare/ahocorasick"
	"github.com/shopspring/decimal"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/catalog"
)

// Section is the classified side of the document for one occurrence.
type Section int

const (
	// SectionUnknown means no confident determination was possible.
	SectionUnknown Section = iota
	// SectionEarnings marks a credit-side occurrence.
	SectionEarnings
	// SectionDeductions marks a debit-side occurrence.
	SectionDeductions
)

func (s Section) String() string {
	switch s {
	case SectionEarnings:
		return "earnings"
	case SectionDeductions:
		return "deductions"
	default:
		return "unknown"
	}
}

// Result is the outcome of classifying a single candidate match.
type Result struct {
	Section       Section
	Confidence    float64
	IsDualSection bool
	Reasoning     string
}

// Config carries the tunable classification parameters. The value cutoff is
// a deliberate approximation used only when context yields nothing; it must
// come from configuration, never a buried constant.
type Config struct {
	// ContextWindow is how many characters around a match are inspected.
	ContextWindow int
	// EarningsValueCutoff: with no contextual evidence, values at or above
	// the cutoff skew earnings, below skew deductions.
	EarningsValueCutoff decimal.Decimal
	// FuzzyThreshold (0-100) gates partial code resolution for mangled
	// symbols.
	FuzzyThreshold int
}

// DefaultConfig mirrors the tuning the pipeline ships with.
func DefaultConfig() Config {
	return Config{
		ContextWindow:       200,
		EarningsValueCutoff: decimal.NewFromInt(15000),
		FuzzyThreshold:      70,
	}
}

var earningsContextKeywords = []string{
	"EARNINGS", "CREDIT", "PAY AND ALLOWANCES", "ALLOWANCES", "आय", "जमा",
}

var deductionsContextKeywords = []string{
	"DEDUCTIONS", "DEBIT", "RECOVERY", "RECOVERIES", "SUBSCRIPTION", "कटौती",
}

// Engine classifies matched occurrences. Pure over the catalog; safe for
// concurrent use across codes.
type Engine struct {
	catalog    *catalog.Catalog
	cfg        Config
	earnMatch  *ahocorasick.Matcher
	deducMatch *ahocorasick.Matcher
}

// NewEngine builds the keyword matchers once.
func NewEngine(cat *catalog.Catalog, cfg Config) *Engine {
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = DefaultConfig().ContextWindow
	}
	if cfg.EarningsValueCutoff.IsZero() {
		cfg.EarningsValueCutoff = DefaultConfig().EarningsValueCutoff
	}
	if cfg.FuzzyThreshold <= 0 {
		cfg.FuzzyThreshold = DefaultConfig().FuzzyThreshold
	}
	return &Engine{
		catalog:    cat,
		cfg:        cfg,
		earnMatch:  buildMatcher(earningsContextKeywords),
		deducMatch: buildMatcher(deductionsContextKeywords),
	}
}

func buildMatcher(keywords []string) *ahocorasick.Matcher {
	patterns := make([][]byte, len(keywords))
	for i, kw := range keywords {
		patterns[i] = []byte(kw)
	}
	return ahocorasick.NewMatcher(patterns)
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// ClassifyComponent returns the catalog tier for a symbol without any
// context inspection. TierUnknown means the caller needs the full pipeline.
func (e *Engine) ClassifyComponent(symbol string) catalog.Tier {
	return e.catalog.TierOf(symbol)
}

// ClassifyIntelligently determines the section for one occurrence of a
// symbol using, in order: guaranteed-tier lookup, context keyword scan,
// value-magnitude fallback. It never fails; unclassifiable input yields
// SectionUnknown with confidence zero.
func (e *Engine) ClassifyIntelligently(symbol string, value decimal.Decimal, context string) Result {
	resolved := symbol
	tier := e.catalog.TierOf(symbol)
	if tier == catalog.TierUnknown {
		// Exact lookup failed; try word-boundary-aware partial matching to
		// tolerate OCR-mangled symbols.
		if match, ok := e.catalog.ResolvePartial(symbol, e.cfg.FuzzyThreshold); ok {
			resolved = match.Code.Symbol
			tier = match.Code.Tier
		}
	}

	// Guaranteed tiers cannot be overridden by context. This is both a
	// correctness guarantee and what lets the orchestrator skip the
	// contextual pass entirely for those codes.
	switch tier {
	case catalog.TierGuaranteedEarnings:
		return Result{
			Section:    SectionEarnings,
			Confidence: 1.0,
			Reasoning:  fmt.Sprintf("%s is guaranteed-earnings in the catalog", resolved),
		}
	case catalog.TierGuaranteedDeductions:
		return Result{
			Section:    SectionDeductions,
			Confidence: 1.0,
			Reasoning:  fmt.Sprintf("%s is guaranteed-deductions in the catalog", resolved),
		}
	}

	if section, reason, ok := e.scanContext(context); ok {
		return Result{
			Section:       section,
			Confidence:    0.85,
			IsDualSection: tier == catalog.TierUniversalDualSection,
			Reasoning:     reason,
		}
	}

	if tier == catalog.TierUnknown && resolved == symbol {
		return Result{
			Section:    SectionUnknown,
			Confidence: 0,
			Reasoning:  fmt.Sprintf("%s is not a known code and context carried no section cue", symbol),
		}
	}

	// Value-magnitude fallback, a documented approximation used only when
	// context yields nothing.
	if value.GreaterThanOrEqual(e.cfg.EarningsValueCutoff) {
		return Result{
			Section:       SectionEarnings,
			Confidence:    0.5,
			IsDualSection: tier == catalog.TierUniversalDualSection,
			Reasoning:     fmt.Sprintf("no section cue near %s; value %s at or above cutoff %s skews earnings", resolved, value, e.cfg.EarningsValueCutoff),
		}
	}
	return Result{
		Section:       SectionDeductions,
		Confidence:    0.5,
		IsDualSection: tier == catalog.TierUniversalDualSection,
		Reasoning:     fmt.Sprintf("no section cue near %s; value %s below cutoff %s skews deductions", resolved, value, e.cfg.EarningsValueCutoff),
	}
}

// ContextWindow extracts the bounded text window around a match span, used
// by callers to build the context passed into ClassifyIntelligently. The
// window edges are clamped to rune boundaries so multi-byte keywords near
// the edge are never truncated into garbage bytes.
func (e *Engine) ContextWindow(text string, start, end int) string {
	lo := start - e.cfg.ContextWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + e.cfg.ContextWindow
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}

// scanContext looks for section-header keywords in the context window. Both
// sides present means the window straddles a section boundary and the count
// decides; an exact tie is no evidence at all.
func (e *Engine) scanContext(context string) (Section, string, bool) {
	if context == "" {
		return SectionUnknown, "", false
	}
	// MatchThreadSafe: the engine is shared across search workers and the
	// plain Match mutates matcher-internal counters.
	upper := []byte(strings.ToUpper(context))
	earnHits := len(e.earnMatch.MatchThreadSafe(upper))
	deducHits := len(e.deducMatch.MatchThreadSafe(upper))

	switch {
	case earnHits > deducHits:
		return SectionEarnings, fmt.Sprintf("context window carries %d earnings cue(s) vs %d deduction cue(s)", earnHits, deducHits), true
	case deducHits > earnHits:
		return SectionDeductions, fmt.Sprintf("context window carries %d deduction cue(s) vs %d earnings cue(s)", deducHits, earnHits), true
	default:
		return SectionUnknown, "", false
	}
}
