// Package patterns builds the ordered regex variants used to locate pay-code
// amounts in OCR output. Every code gets the same family of layout variants;
// arrears recognition uses one generic pattern set that works for codes the
// registry has never seen.
package patterns

import (
	"fmt"
	"regexp"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/catalog"
)

// amountGroup captures a monetary token, tolerating currency markers, comma
// grouping, Devanagari digits, parenthesized negatives and the usual OCR
// digit confusions. Normalization of the capture happens downstream.
const amountGroup = `(?P<amount>(?:\()?[0-9०-९OIlS][0-9०-९OIlS,.]*(?:\))?)`

const currencyMarker = `(?:₹|Rs\.?|INR)?`

// Pattern is one compiled layout variant for a code. Name identifies the
// variant in diagnostics and logs; Priority is its rank in the variant list,
// lower ranks first. Code variants name their groups ("code", "amount") so
// callers locate captures by name, not position.
type Pattern struct {
	Name     string
	Priority int
	Re       *regexp.Regexp
}

// AmountGroup returns the index of the amount capture group, -1 if absent.
func (p Pattern) AmountGroup() int {
	return p.Re.SubexpIndex("amount")
}

// CodeGroup returns the index of the code capture group, -1 if absent.
func (p Pattern) CodeGroup() int {
	return p.Re.SubexpIndex("code")
}

// Generator produces per-code pattern lists. It is pure over the catalog and
// safe for concurrent use.
type Generator struct {
	cache map[string][]Pattern
}

// NewGenerator pre-compiles patterns for every registered code. A variant
// that fails to compile is skipped for that code only; the error list
// reports what was dropped.
func NewGenerator(c *catalog.Catalog) (*Generator, []error) {
	g := &Generator{cache: make(map[string][]Pattern, len(c.AllCodes()))}
	var errs []error
	for _, code := range c.AllCodes() {
		compiled, codeErrs := compileVariants(code)
		g.cache[code.Symbol] = compiled
		errs = append(errs, codeErrs...)
	}
	return g, errs
}

// Generate returns the ordered (priority-descending) pattern list for a
// code. Order is fixed per code: callers must try patterns in this order.
func (g *Generator) Generate(code catalog.PayCode) []Pattern {
	if cached, ok := g.cache[code.Symbol]; ok {
		return cached
	}
	compiled, _ := compileVariants(code)
	return compiled
}

// variantSpecs lists the layout variants in priority order. The verb is the
// raw pattern with %s placeholders for the quoted symbol.
func variantSpecs(symbol string) []struct{ name, expr string } {
	code := `(?P<code>` + regexp.QuoteMeta(symbol) + `)`
	return []struct{ name, expr string }{
		{"code_colon_amount", `(?i)\b` + code + `\s*[:=]\s*` + currencyMarker + `\s*` + amountGroup},
		{"code_sep_amount", `(?i)\b` + code + `[\s.\-]+` + currencyMarker + `\s*` + amountGroup},
		{"code_currency_amount", `(?i)\b` + code + `\b.{0,12}?(?:₹|Rs\.?|INR)\s*` + amountGroup},
		// The separator stays intra-line: an amount on the previous line
		// belongs to that line's code, not this one.
		{"amount_code", `(?i)` + currencyMarker + `[ \t]*` + amountGroup + `[ \t]+` + code + `\b`},
		{"label_expanded", `(?i)RISK\s+AND\s+HARDSHIP\W{0,8}` + code + `\W{0,8}` + amountGroup},
	}
}

func compileVariants(code catalog.PayCode) ([]Pattern, []error) {
	specs := variantSpecs(code.Symbol)
	compiled := make([]Pattern, 0, len(specs))
	var errs []error
	for i, spec := range specs {
		re, err := regexp.Compile(spec.expr)
		if err != nil {
			errs = append(errs, fmt.Errorf("pattern %s for %s: %w", spec.name, code.Symbol, err))
			continue
		}
		compiled = append(compiled, Pattern{Name: spec.name, Priority: i, Re: re})
	}
	return compiled, errs
}

// arrearsSpecs capture an uppercase alphanumeric base component plus amount
// after an arrears marker. They are independent of any specific code, which
// is what lets novel codes surface under the arrears prefix without
// per-code pattern authoring.
var arrearsSpecs = []struct{ name, expr string }{
	{"arr_dash", `(?i)\bARR[-–]\s*([A-Z][A-Z0-9]{1,9})\s*[:=]?\s*` + currencyMarker + `\s*` + amountGroup},
	{"arrears_word", `(?i)\bARREARS\s+(?:OF\s+)?([A-Z][A-Z0-9]{1,9})\s*[:=]?\s*` + currencyMarker + `\s*` + amountGroup},
	{"arr_space", `(?i)\bARR\s+([A-Z][A-Z0-9]{1,9})\s*[:=]?\s*` + currencyMarker + `\s*` + amountGroup},
}

// GenerateArrears returns the generic arrears patterns. Group 1 is the base
// component, group 2 the amount.
func GenerateArrears() []Pattern {
	compiled := make([]Pattern, 0, len(arrearsSpecs))
	for i, spec := range arrearsSpecs {
		re, err := regexp.Compile(spec.expr)
		if err != nil {
			continue
		}
		compiled = append(compiled, Pattern{Name: spec.name, Priority: i, Re: re})
	}
	return compiled
}
