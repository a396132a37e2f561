// Package money provides currency-aware amount handling for payslip
// statements. Amounts are carried as arbitrary-precision decimals and
// only converted to minor units at display or comparison boundaries.
package money

import (
	"fmt"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency code used for all statement amounts
// unless a caller overrides it.
const DefaultCurrency = "INR"

// Amount wraps a decimal value with its currency code.
type Amount struct {
	Value    decimal.Decimal
	Currency string
}

// New builds an Amount in the default currency.
func New(value decimal.Decimal) Amount {
	return Amount{Value: value, Currency: DefaultCurrency}
}

// NewInCurrency builds an Amount in an explicit currency.
func NewInCurrency(value decimal.Decimal, currency string) Amount {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Amount{Value: value, Currency: currency}
}

// Zero returns a zero Amount in the default currency.
func Zero() Amount {
	return New(decimal.Zero)
}

// Add returns a + b. Currencies must match.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, fmt.Errorf("currency mismatch: %s vs %s", a.Currency, b.Currency)
	}
	return Amount{Value: a.Value.Add(b.Value), Currency: a.Currency}, nil
}

// Sub returns a - b. Currencies must match.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, fmt.Errorf("currency mismatch: %s vs %s", a.Currency, b.Currency)
	}
	return Amount{Value: a.Value.Sub(b.Value), Currency: a.Currency}, nil
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool {
	return a.Value.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.Value.IsZero()
}

// toMinorUnits converts a decimal major-unit value into minor units for
// the given currency, rounding half away from zero.
func toMinorUnits(value decimal.Decimal, currency string) int64 {
	cur := gomoney.GetCurrency(currency)
	fraction := 2
	if cur != nil {
		fraction = cur.Fraction
	}
	scaled := value.Shift(int32(fraction))
	return scaled.Round(0).IntPart()
}

// ToGoMoney converts the amount into a go-money value for formatting
// and locale-aware arithmetic.
func (a Amount) ToGoMoney() *gomoney.Money {
	return gomoney.New(toMinorUnits(a.Value, a.Currency), a.Currency)
}

// Display renders a decimal value as a localized currency string in the
// default currency, e.g. "₹1,234.00".
func Display(value decimal.Decimal) string {
	return gomoney.New(toMinorUnits(value, DefaultCurrency), DefaultCurrency).Display()
}

// DisplayIn renders a decimal value as a localized currency string in
// the given currency.
func DisplayIn(value decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return gomoney.New(toMinorUnits(value, currency), currency).Display()
}

// String implements fmt.Stringer.
func (a Amount) String() string {
	return DisplayIn(a.Value, a.Currency)
}

// Sum adds a slice of decimals. Used when totalling itemized sections.
func Sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
