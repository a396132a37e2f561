// Package search orchestrates the universal pay-code search: it partitions
// the catalog by classification tier, fans pattern matching out across a
// worker pool, classifies dual-section occurrences contextually and merges
// everything into one deterministic result map.
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/catalog"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/classify"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/normalizer"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/patterns"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/sections"
)

// Config tunes the orchestrator.
type Config struct {
	// Workers bounds the search pool; zero means one per CPU core.
	Workers int
	// Strategy selects the scheduling model.
	Strategy Strategy
}

// ProgressEvent reports per-code completion during a streaming search.
// Events are advisory; slow consumers never block the search.
type ProgressEvent struct {
	Stage     string
	Code      string
	Completed int
	Total     int
}

// Orchestrator runs the search phase. All referenced state is read-only, so
// one Orchestrator serves concurrent documents.
type Orchestrator struct {
	catalog    *catalog.Catalog
	generator  *patterns.Generator
	engine     *classify.Engine
	identifier *sections.Identifier
	arrears    []patterns.Pattern
	cfg        Config
	logger     *slog.Logger
	progress   chan<- ProgressEvent
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithProgress attaches a progress channel. Sends are non-blocking.
func WithProgress(ch chan<- ProgressEvent) Option {
	return func(o *Orchestrator) { o.progress = ch }
}

// NewOrchestrator wires the search phase together. Pattern variants that
// failed to compile are logged and skipped; they never abort other codes.
func NewOrchestrator(cat *catalog.Catalog, engine *classify.Engine, cfg Config, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers()
	}

	gen, errs := patterns.NewGenerator(cat)
	for _, err := range errs {
		logger.Warn("skipping pattern variant", slog.Any("error", err))
	}

	o := &Orchestrator{
		catalog:    cat,
		generator:  gen,
		engine:     engine,
		identifier: sections.NewIdentifier(),
		arrears:    patterns.GenerateArrears(),
		cfg:        cfg,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SearchAllPayCodes locates every occurrence of every known code in the
// text and returns the classified result map. Keys are unique; dual-section
// occurrences are disambiguated with a section suffix. The same input always
// produces the same map regardless of internal scheduling.
func (o *Orchestrator) SearchAllPayCodes(ctx context.Context, text string) map[string]FinancialItem {
	zones := o.identifier.Identify(text)

	guaranteed := append(
		o.catalog.CodesByTier(catalog.TierGuaranteedEarnings),
		o.catalog.CodesByTier(catalog.TierGuaranteedDeductions)...,
	)
	dual := o.catalog.CodesByTier(catalog.TierUniversalDualSection)

	strategy := resolveStrategy(o.cfg.Strategy, len(text), len(guaranteed)+len(dual), o.cfg.Workers, o.progress != nil)
	o.logger.Debug("search strategy resolved",
		slog.String("strategy", strategy.String()),
		slog.Int("codes", len(guaranteed)+len(dual)),
		slog.Int("text_len", len(text)))

	jobs := make([]searchJob, 0, len(guaranteed)+len(dual))
	for _, code := range guaranteed {
		jobs = append(jobs, searchJob{code: code, guaranteed: true})
	}
	for _, code := range dual {
		jobs = append(jobs, searchJob{code: code})
	}

	var batches [][]FinancialItem
	if strategy == StrategySequential {
		for i, job := range jobs {
			batches = append(batches, o.runJob(job, text, zones))
			o.emit("codes", job.code.Symbol, i+1, len(jobs))
		}
	} else {
		batches = o.runPool(ctx, jobs, text, zones)
	}

	// The arrears pass covers any code, known or not, and runs once over
	// the whole document.
	batches = append(batches, o.searchArrears(text))

	result := make(map[string]FinancialItem)
	for _, batch := range batches {
		for _, item := range batch {
			mergeItem(result, item)
		}
	}
	o.emit("done", "", len(jobs), len(jobs))
	return result
}

type searchJob struct {
	code       catalog.PayCode
	guaranteed bool
}

// runPool is a classic fork-join: each worker accumulates its own batch and
// the single merge happens after all workers finish, so the hot path takes
// no locks.
func (o *Orchestrator) runPool(ctx context.Context, jobs []searchJob, text string, zones map[sections.Kind]sections.Section) [][]FinancialItem {
	jobCh := make(chan searchJob)
	resultCh := make(chan []FinancialItem, len(jobs))
	var done sync.WaitGroup

	workers := o.cfg.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	for i := 0; i < workers; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			for job := range jobCh {
				select {
				case <-ctx.Done():
					return
				default:
				}
				resultCh <- o.runJob(job, text, zones)
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobCh <- job:
			}
		}
	}()

	done.Wait()
	close(resultCh)

	batches := make([][]FinancialItem, 0, len(jobs))
	n := 0
	for batch := range resultCh {
		batches = append(batches, batch)
		n++
		o.emit("codes", "", n, len(jobs))
	}
	return batches
}

func (o *Orchestrator) runJob(job searchJob, text string, zones map[sections.Kind]sections.Section) []FinancialItem {
	if job.guaranteed {
		return o.searchGuaranteed(job.code, text)
	}
	return o.searchDualSection(job.code, text, zones)
}

// searchGuaranteed assigns the section straight from the catalog tier with
// confidence 1.0; context can never override a guaranteed tier. The first
// successful pattern variant wins.
func (o *Orchestrator) searchGuaranteed(code catalog.PayCode, text string) []FinancialItem {
	section := classify.SectionEarnings
	if code.Tier == catalog.TierGuaranteedDeductions {
		section = classify.SectionDeductions
	}

	for _, pat := range o.generator.Generate(code) {
		locs := pat.Re.FindAllStringSubmatchIndex(text, -1)
		for _, loc := range locs {
			if precededByArrearsMarker(text, codeStart(loc, pat)) {
				continue
			}
			raw := captureAt(text, loc, pat.AmountGroup())
			if !normalizer.IsPlausibleAmountToken(raw) {
				continue
			}
			amount, ok := normalizer.NormalizeAmount(raw)
			if !ok {
				continue
			}
			return []FinancialItem{{
				ID:          uuid.New(),
				Code:        code.Symbol,
				Name:        code.Name,
				Amount:      amount,
				Section:     section,
				Confidence:  1.0,
				Context:     o.engine.ContextWindow(text, loc[0], loc[1]),
				variantRank: pat.Priority,
			}}
		}
	}
	return nil
}

// searchDualSection aggregates every occurrence of a universal code. When
// the document yielded labeled zones, search is zone-scoped and the zone is
// the default attribution, with per-occurrence contextual reclassification
// as the tie-breaker. Occurrences classified into both sections all survive
// under distinct keys; dropping either side would silently lose real data.
func (o *Orchestrator) searchDualSection(code catalog.PayCode, text string, zones map[sections.Kind]sections.Section) []FinancialItem {
	earnZone, hasEarn := zones[sections.KindEarnings]
	deducZone, hasDeduc := zones[sections.KindDeductions]

	if hasEarn || hasDeduc {
		var items []FinancialItem
		if hasEarn {
			items = append(items, o.scanDualScope(code, earnZone.Text, classify.SectionEarnings)...)
		}
		if hasDeduc {
			items = append(items, o.scanDualScope(code, deducZone.Text, classify.SectionDeductions)...)
		}
		return items
	}
	return o.scanDualScope(code, text, classify.SectionUnknown)
}

// scanDualScope collects all matches of all pattern variants in one text
// scope. Dedup is keyed on the code token's position, not the full-match
// start: variants anchor their matches differently (amount-first forms start
// at the amount), so only the code span identifies an occurrence reliably.
// Variants run in priority order, so the first variant to claim a code span
// wins it.
func (o *Orchestrator) scanDualScope(code catalog.PayCode, scope string, zoneDefault classify.Section) []FinancialItem {
	var items []FinancialItem
	seen := make(map[int]bool)

	for _, pat := range o.generator.Generate(code) {
		for _, loc := range pat.Re.FindAllStringSubmatchIndex(scope, -1) {
			at := codeStart(loc, pat)
			if seen[at] || precededByArrearsMarker(scope, at) {
				continue
			}
			raw := captureAt(scope, loc, pat.AmountGroup())
			if !normalizer.IsPlausibleAmountToken(raw) {
				continue
			}
			amount, ok := normalizer.NormalizeAmount(raw)
			if !ok {
				continue
			}
			seen[at] = true

			ctx := o.engine.ContextWindow(scope, loc[0], loc[1])
			result := o.engine.ClassifyIntelligently(code.Symbol, amount, ctx)

			section, confidence := result.Section, result.Confidence
			if zoneDefault != classify.SectionUnknown && confidence < 0.8 {
				// Zone attribution beats the value-magnitude guess.
				section, confidence = zoneDefault, 0.9
			}

			items = append(items, FinancialItem{
				ID:          uuid.New(),
				Code:        code.Symbol,
				Name:        code.Name,
				Amount:      amount,
				Section:     section,
				Confidence:  confidence,
				Context:     ctx,
				DualSection: true,
				variantRank: pat.Priority,
			})
		}
	}
	return items
}

// searchArrears runs the generic arrears pass. The base component must pass
// the validity check: registered codes (exact or fuzzy-rescued) always
// qualify, novel codes qualify on shape alone, anything else is rejected
// rather than assumed valid.
func (o *Orchestrator) searchArrears(text string) []FinancialItem {
	var items []FinancialItem
	seen := make(map[int]bool)

	for _, pat := range o.arrears {
		for _, loc := range pat.Re.FindAllStringSubmatchIndex(text, -1) {
			if seen[loc[0]] {
				continue
			}
			base := strings.ToUpper(captureAt(text, loc, 1))
			raw := captureAt(text, loc, 2)
			if !normalizer.IsPlausibleAmountToken(raw) {
				continue
			}
			amount, ok := normalizer.NormalizeAmount(raw)
			if !ok {
				continue
			}

			known, name, tier := o.resolveArrearsBase(&base)
			if !known && !isValidComponentShape(base) {
				o.logger.Debug("rejecting arrears base component", slog.String("base", base))
				continue
			}
			seen[loc[0]] = true

			ctx := o.engine.ContextWindow(text, loc[0], loc[1])
			result := o.engine.ClassifyIntelligently(base, amount, ctx)

			items = append(items, FinancialItem{
				ID:         uuid.New(),
				Code:       catalog.ArrearsPrefix + "-" + base,
				Name:       name,
				Amount:     amount,
				Section:    result.Section,
				Confidence: result.Confidence,
				IsArrears:  true,
				BaseCode:   base,
				Context:    ctx,
				// Dual-section arrears are always split by section, never
				// merged, no matter how low the confidence.
				DualSection: tier == catalog.TierUniversalDualSection,
			})
		}
	}
	return items
}

func (o *Orchestrator) resolveArrearsBase(base *string) (known bool, name string, tier catalog.Tier) {
	if code, _, ok := o.catalog.Lookup(*base); ok {
		*base = code.Symbol
		return true, code.Name, code.Tier
	}
	if match, ok := o.catalog.ResolvePartial(*base, o.engine.Config().FuzzyThreshold); ok {
		*base = match.Code.Symbol
		return true, match.Code.Name, match.Code.Tier
	}
	return false, "", catalog.TierUnknown
}

// mergeItem folds one candidate into the result map. Exact key collisions
// only ever come from redundant pattern variants of the same occurrence;
// genuinely distinct occurrences carry distinct keys by construction.
func mergeItem(result map[string]FinancialItem, item FinancialItem) {
	key := item.Key()
	existing, ok := result[key]
	if !ok || item.betterThan(existing) {
		result[key] = item
	}
}

// emit sends a progress event without ever blocking the search.
func (o *Orchestrator) emit(stage, code string, completed, total int) {
	if o.progress == nil {
		return
	}
	select {
	case o.progress <- ProgressEvent{Stage: stage, Code: code, Completed: completed, Total: total}:
	default:
	}
}

// codeStart returns the start of the code token within a match, falling back
// to the full-match start for patterns without a named code group.
func codeStart(loc []int, pat patterns.Pattern) int {
	if g := pat.CodeGroup(); g >= 0 {
		return loc[2*g]
	}
	return loc[0]
}

// captureAt extracts capture group n from a FindAllStringSubmatchIndex loc.
func captureAt(text string, loc []int, n int) string {
	start, end := loc[2*n], loc[2*n+1]
	if start < 0 || end < 0 {
		return ""
	}
	return text[start:end]
}

// precededByArrearsMarker reports whether the match start sits right after
// an arrears marker; such spans belong to the dedicated arrears pass.
func precededByArrearsMarker(text string, idx int) bool {
	lo := idx - 12
	if lo < 0 {
		lo = 0
	}
	prefix := strings.ToUpper(text[lo:idx])
	for _, marker := range []string{"ARR-", "ARR ", "ARR–", "ARREARS ", "ARREARS-"} {
		if strings.HasSuffix(prefix, marker) {
			return true
		}
	}
	return false
}

// isValidComponentShape is the validity check for novel arrears components:
// 2-10 characters, leading letter, uppercase alphanumerics only, and not a
// totals keyword that merely looks like a code.
func isValidComponentShape(base string) bool {
	if len(base) < 2 || len(base) > 10 {
		return false
	}
	if base[0] < 'A' || base[0] > 'Z' {
		return false
	}
	for _, r := range base {
		if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	switch base {
	case "TOTAL", "NET", "GROSS", "OF", "FOR":
		return false
	}
	return true
}
