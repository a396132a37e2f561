package assemble

import (
	"github.com/shopspring/decimal"

	"github.com/sunilpawar-git/payslipmax-extract/pkg/money"
)

// Ledger is the final structured record for one document. Immutable once
// returned.
type Ledger struct {
	Earnings   map[string]decimal.Decimal `json:"earnings"`
	Deductions map[string]decimal.Decimal `json:"deductions"`

	CreditsTotal decimal.Decimal `json:"credits_total"`
	DebitsTotal  decimal.Decimal `json:"debits_total"`
	DSOPValue    decimal.Decimal `json:"dsop_value"`
	TaxValue     decimal.Decimal `json:"tax_value"`

	Name          string `json:"name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	PANNumber     string `json:"pan_number,omitempty"`
	Month         string `json:"month,omitempty"`
	Year          int    `json:"year,omitempty"`
}

// NetRemittance is credits minus debits.
func (l Ledger) NetRemittance() decimal.Decimal {
	return l.CreditsTotal.Sub(l.DebitsTotal)
}

// DisplayCredits formats the credits total as Indian rupees.
func (l Ledger) DisplayCredits() string {
	return money.Display(l.CreditsTotal)
}

// DisplayDebits formats the debits total as Indian rupees.
func (l Ledger) DisplayDebits() string {
	return money.Display(l.DebitsTotal)
}
