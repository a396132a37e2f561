// Package assemble converts the classified match map into the final payslip
// ledger: earnings/deductions buckets, reconciled totals and the DSOP/tax
// priority chains. The transformation is pure.
package assemble

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/classify"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/identity"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/search"
)

// Explicit-total map keys. The totals themselves come from the simpler
// label-line pass (ExtractExplicitTotals) or from the caller.
const (
	KeyGrossPay        = "gross_pay"
	KeyTotalDeductions = "total_deductions"
	KeyDSOP            = "dsop"
	KeyIncomeTax       = "itax"
)

// Config tunes assembly behavior.
type Config struct {
	// DeductionCeiling is the plausible-deduction ceiling: an occurrence
	// with unknown section is bucketed as earnings only when its value
	// exceeds the ceiling, else dropped.
	DeductionCeiling decimal.Decimal
}

// DefaultConfig matches the classifier's default value cutoff.
func DefaultConfig() Config {
	return Config{DeductionCeiling: decimal.NewFromInt(15000)}
}

// Assembler builds ledgers from search results.
type Assembler struct {
	cfg Config
}

// NewAssembler returns an assembler with the given tuning.
func NewAssembler(cfg Config) *Assembler {
	if cfg.DeductionCeiling.IsZero() {
		cfg = DefaultConfig()
	}
	return &Assembler{cfg: cfg}
}

// Assemble buckets the classified items, reconciles totals against any
// explicit figures and merges identity fields into the final ledger.
func (a *Assembler) Assemble(items map[string]search.FinancialItem, explicit map[string]decimal.Decimal, id identity.Identity) Ledger {
	ledger := Ledger{
		Earnings:      make(map[string]decimal.Decimal),
		Deductions:    make(map[string]decimal.Decimal),
		Name:          id.Name,
		AccountNumber: id.AccountNumber,
		PANNumber:     id.PANNumber,
		Month:         id.Month,
		Year:          id.Year,
	}

	// Deterministic iteration keeps repeated runs byte-identical even for
	// pathological duplicate labels.
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		item := items[key]
		label := item.Code
		amount := item.Amount.Abs()

		switch item.Section {
		case classify.SectionEarnings:
			ledger.Earnings[label] = amount
		case classify.SectionDeductions:
			ledger.Deductions[label] = amount
		default:
			// Documented default for unclassifiable items: bucket as
			// earnings only above the plausible-deduction ceiling, else
			// drop.
			if amount.GreaterThan(a.cfg.DeductionCeiling) {
				ledger.Earnings[label] = amount
			}
		}
	}

	ledger.DSOPValue = a.priorityChain(&ledger, explicit, KeyDSOP, "DSOP")
	ledger.TaxValue = a.priorityChain(&ledger, explicit, KeyIncomeTax, "ITAX")

	ledger.CreditsTotal = reconcile(explicit, KeyGrossPay, ledger.Earnings)
	ledger.DebitsTotal = reconcile(explicit, KeyTotalDeductions, ledger.Deductions)

	return ledger
}

// priorityChain resolves a named deduction scalar deterministically:
// explicit labeled field, then the deductions bucket, then a misclassified
// occurrence rescued from the earnings bucket, then zero.
func (a *Assembler) priorityChain(ledger *Ledger, explicit map[string]decimal.Decimal, explicitKey, code string) decimal.Decimal {
	if v, ok := explicit[explicitKey]; ok && !v.IsZero() {
		return v
	}
	if v, ok := ledger.Deductions[code]; ok {
		return v
	}
	if v, ok := ledger.Earnings[code]; ok {
		// Rescued, not dropped: the entry moves to the side it belongs on
		// before totals are computed.
		delete(ledger.Earnings, code)
		ledger.Deductions[code] = v
		return v
	}
	return decimal.Zero
}

// reconcile applies the precedence rule: an explicitly-reported figure wins
// over the itemized sum.
func reconcile(explicit map[string]decimal.Decimal, key string, bucket map[string]decimal.Decimal) decimal.Decimal {
	if v, ok := explicit[key]; ok && !v.IsZero() {
		return v
	}
	total := decimal.Zero
	for _, amount := range bucket {
		total = total.Add(amount)
	}
	return total
}

// Explicit total-line patterns. These are deliberately simpler than the
// pay-code machinery: one label, one amount, first hit wins.
var explicitTotalPatterns = []struct {
	key string
	re  *regexp.Regexp
}{
	{KeyGrossPay, regexp.MustCompile(`(?i)(?:gross\s+pay|total\s+earnings|total\s+credits|कुल\s*आय)\s*[:\-]?\s*(?:₹|Rs\.?|INR)?\s*([0-9०-९][0-9०-९,.]*)`)},
	{KeyTotalDeductions, regexp.MustCompile(`(?i)(?:total\s+deductions?|total\s+debits|कुल\s*कटौती)\s*[:\-]?\s*(?:₹|Rs\.?|INR)?\s*([0-9०-९][0-9०-९,.]*)`)},
	{KeyDSOP, regexp.MustCompile(`(?i)dsop\s+(?:fund|subscription|total)\s*[:\-]?\s*(?:₹|Rs\.?|INR)?\s*([0-9०-९][0-9०-९,.]*)`)},
	{KeyIncomeTax, regexp.MustCompile(`(?i)income\s+tax\s*(?:deducted|payable)?\s*[:\-]?\s*(?:₹|Rs\.?|INR)?\s*([0-9०-९][0-9०-९,.]*)`)},
}

// ExtractExplicitTotals runs the label-line pass over the raw text and
// returns any explicitly reported figures found.
func ExtractExplicitTotals(text string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, pat := range explicitTotalPatterns {
		if m := pat.re.FindStringSubmatch(text); m != nil {
			if v, err := decimal.NewFromString(normalizeTotalToken(m[1])); err == nil {
				out[pat.key] = v
			}
		}
	}
	return out
}

var totalSeparators = regexp.MustCompile(`[,\s]`)

func normalizeTotalToken(raw string) string {
	cleaned := strings.TrimRight(totalSeparators.ReplaceAllString(raw, ""), ".")
	mapped := make([]rune, 0, len(cleaned))
	for _, r := range cleaned {
		if r >= '०' && r <= '९' {
			mapped = append(mapped, '0'+(r-'०'))
		} else {
			mapped = append(mapped, r)
		}
	}
	return string(mapped)
}
