// Package catalog holds the static registry of known pay codes and their
// classification tiers. The registry is built once at startup and is safe to
// share across concurrent extraction runs without synchronization.
package catalog

import (
	"strings"
)

// Tier partitions pay codes by how their section is determined.
type Tier int

const (
	// TierUnknown marks codes absent from the registry.
	TierUnknown Tier = iota
	// TierGuaranteedEarnings codes are structurally never recovered.
	TierGuaranteedEarnings
	// TierGuaranteedDeductions codes are structurally always subtractive.
	TierGuaranteedDeductions
	// TierUniversalDualSection codes legitimately appear in either section
	// depending on document context (paid or recovered).
	TierUniversalDualSection
)

func (t Tier) String() string {
	switch t {
	case TierGuaranteedEarnings:
		return "guaranteed_earnings"
	case TierGuaranteedDeductions:
		return "guaranteed_deductions"
	case TierUniversalDualSection:
		return "universal_dual_section"
	default:
		return "unknown"
	}
}

// PayCode is an immutable registry entry for one payslip line-item code.
type PayCode struct {
	Symbol string
	Name   string
	Tier   Tier
}

// Catalog is the process-wide, read-only pay-code table.
type Catalog struct {
	codes map[string]PayCode
}

// ArrearsPrefix marks retroactive adjustments for a base pay code.
const ArrearsPrefix = "ARR"

var guaranteedEarnings = []PayCode{
	{Symbol: "BPAY", Name: "Basic Pay", Tier: TierGuaranteedEarnings},
	{Symbol: "MSP", Name: "Military Service Pay", Tier: TierGuaranteedEarnings},
	{Symbol: "DA", Name: "Dearness Allowance", Tier: TierGuaranteedEarnings},
	{Symbol: "NPA", Name: "Non-Practicing Allowance", Tier: TierGuaranteedEarnings},
	{Symbol: "HRA", Name: "House Rent Allowance", Tier: TierGuaranteedEarnings},
	{Symbol: "CEA", Name: "Children Education Allowance", Tier: TierGuaranteedEarnings},
	{Symbol: "GSPAY", Name: "Good Service Pay", Tier: TierGuaranteedEarnings},
	{Symbol: "DRESALW", Name: "Dress Allowance", Tier: TierGuaranteedEarnings},
}

var guaranteedDeductions = []PayCode{
	{Symbol: "DSOP", Name: "Defence Services Officers Provident Fund", Tier: TierGuaranteedDeductions},
	{Symbol: "AGIF", Name: "Army Group Insurance Fund", Tier: TierGuaranteedDeductions},
	{Symbol: "ITAX", Name: "Income Tax", Tier: TierGuaranteedDeductions},
	{Symbol: "EHCESS", Name: "Education and Health Cess", Tier: TierGuaranteedDeductions},
	{Symbol: "CGHS", Name: "Central Government Health Scheme", Tier: TierGuaranteedDeductions},
	{Symbol: "CGEIS", Name: "Central Government Employees Insurance Scheme", Tier: TierGuaranteedDeductions},
	{Symbol: "LF", Name: "License Fee", Tier: TierGuaranteedDeductions},
	{Symbol: "FUR", Name: "Furniture Charges", Tier: TierGuaranteedDeductions},
	{Symbol: "WATER", Name: "Water Charges", Tier: TierGuaranteedDeductions},
	{Symbol: "ELEC", Name: "Electricity Charges", Tier: TierGuaranteedDeductions},
	{Symbol: "MESS", Name: "Mess Subscription", Tier: TierGuaranteedDeductions},
	{Symbol: "CLUB", Name: "Club Subscription", Tier: TierGuaranteedDeductions},
	{Symbol: "LOAN", Name: "Loan Recovery", Tier: TierGuaranteedDeductions},
}

var universalDualSection = []PayCode{
	{Symbol: "RH11", Name: "Risk and Hardship Allowance (R1H1)", Tier: TierUniversalDualSection},
	{Symbol: "RH12", Name: "Risk and Hardship Allowance (R1H2)", Tier: TierUniversalDualSection},
	{Symbol: "RH13", Name: "Risk and Hardship Allowance (R1H3)", Tier: TierUniversalDualSection},
	{Symbol: "RH21", Name: "Risk and Hardship Allowance (R2H1)", Tier: TierUniversalDualSection},
	{Symbol: "RH22", Name: "Risk and Hardship Allowance (R2H2)", Tier: TierUniversalDualSection},
	{Symbol: "RH23", Name: "Risk and Hardship Allowance (R2H3)", Tier: TierUniversalDualSection},
	{Symbol: "RH31", Name: "Risk and Hardship Allowance (R3H1)", Tier: TierUniversalDualSection},
	{Symbol: "RH32", Name: "Risk and Hardship Allowance (R3H2)", Tier: TierUniversalDualSection},
	{Symbol: "RH33", Name: "Risk and Hardship Allowance (R3H3)", Tier: TierUniversalDualSection},
	{Symbol: "TPTA", Name: "Transport Allowance", Tier: TierUniversalDualSection},
	{Symbol: "TPTADA", Name: "Transport Allowance DA", Tier: TierUniversalDualSection},
	{Symbol: "HAUTA", Name: "High Altitude Uncongenial Climate Allowance", Tier: TierUniversalDualSection},
	{Symbol: "SICHA", Name: "Siachen Allowance", Tier: TierUniversalDualSection},
}

// New builds the immutable catalog from the static tables.
func New() *Catalog {
	codes := make(map[string]PayCode, len(guaranteedEarnings)+len(guaranteedDeductions)+len(universalDualSection))
	for _, set := range [][]PayCode{guaranteedEarnings, guaranteedDeductions, universalDualSection} {
		for _, code := range set {
			codes[code.Symbol] = code
		}
	}
	return &Catalog{codes: codes}
}

// AllCodes returns every registered pay code. The returned slice is a copy.
func (c *Catalog) AllCodes() []PayCode {
	out := make([]PayCode, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, code)
	}
	return out
}

// CodesByTier returns the registered codes belonging to the given tier.
func (c *Catalog) CodesByTier(tier Tier) []PayCode {
	var out []PayCode
	for _, code := range c.codes {
		if code.Tier == tier {
			out = append(out, code)
		}
	}
	return out
}

// Lookup resolves a symbol to its catalog entry. Input is uppercased and
// trimmed first; arrears prefixes are stripped before the lookup and the
// arrears flag reported separately.
func (c *Catalog) Lookup(symbol string) (code PayCode, isArrears bool, ok bool) {
	normalized, isArrears := NormalizeSymbol(symbol)
	code, ok = c.codes[normalized]
	return code, isArrears, ok
}

// TierOf returns the classification tier for a symbol, TierUnknown when the
// symbol is not registered.
func (c *Catalog) TierOf(symbol string) Tier {
	code, _, ok := c.Lookup(symbol)
	if !ok {
		return TierUnknown
	}
	return code.Tier
}

// IsKnownCode reports whether the symbol (arrears-prefixed or not) is
// registered.
func (c *Catalog) IsKnownCode(symbol string) bool {
	_, _, ok := c.Lookup(symbol)
	return ok
}

// NormalizeSymbol uppercases and trims a raw symbol and strips a leading
// arrears marker ("ARR-CODE", "Arr CODE", "ARRCODE" is left alone because a
// bare concatenation is ambiguous with real symbols).
func NormalizeSymbol(symbol string) (normalized string, isArrears bool) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	for _, sep := range []string{"-", " ", ":"} {
		prefix := ArrearsPrefix + sep
		if strings.HasPrefix(s, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(s, prefix)), true
		}
	}
	if strings.HasPrefix(s, "ARREARS") {
		rest := strings.TrimLeft(strings.TrimPrefix(s, "ARREARS"), " -:")
		if rest != "" {
			return rest, true
		}
	}
	return s, false
}
