package search

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/classify"
)

// FinancialItem is one classified occurrence of a pay code in the document.
// Immutable after creation; deduplication produces a new filtered set rather
// than mutating existing items.
type FinancialItem struct {
	ID         uuid.UUID
	Code       string
	Name       string
	Amount     decimal.Decimal
	Section    classify.Section
	Confidence float64
	IsArrears  bool
	// BaseCode is the component the arrears adjustment applies to; set only
	// when IsArrears.
	BaseCode string
	// Context is the bounded text snippet the classification was based on.
	Context string
	// DualSection marks items whose code belongs to the universal
	// dual-section tier; their keys carry a section suffix.
	DualSection bool
	// variantRank is the priority of the pattern variant that produced the
	// match; lower ranks are more specific forms.
	variantRank int
}

// Key returns the result-map key for the item. Dual-section occurrences are
// disambiguated by a section suffix so one side never overwrites the other;
// arrears items carry the ARR_ prefix.
func (fi FinancialItem) Key() string {
	key := fi.Code
	if fi.IsArrears {
		key = "ARR_" + fi.BaseCode
	}
	if fi.DualSection {
		switch fi.Section {
		case classify.SectionEarnings:
			key += "_EARNINGS"
		case classify.SectionDeductions:
			key += "_DEDUCTIONS"
		}
	}
	return key
}

// betterThan imposes a deterministic total order used when two candidates
// collide on the same key, so merge results never depend on goroutine
// scheduling. Ties prefer the more specific pattern variant; the amounts
// themselves carry no evidence about which reading is right.
func (fi FinancialItem) betterThan(other FinancialItem) bool {
	if fi.Confidence != other.Confidence {
		return fi.Confidence > other.Confidence
	}
	if fi.variantRank != other.variantRank {
		return fi.variantRank < other.variantRank
	}
	return fi.Context < other.Context
}
