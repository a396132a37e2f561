package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountArithmetic(t *testing.T) {
	a := New(decimal.NewFromInt(50000))
	b := New(decimal.NewFromInt(15000))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Value.Equal(decimal.NewFromInt(65000)))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Value.Equal(decimal.NewFromInt(35000)))
}

func TestAmountCurrencyMismatch(t *testing.T) {
	a := New(decimal.NewFromInt(100))
	b := NewInCurrency(decimal.NewFromInt(100), "USD")

	_, err := a.Add(b)
	assert.Error(t, err)

	_, err = a.Sub(b)
	assert.Error(t, err)
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name  string
		value decimal.Decimal
		want  string
	}{
		{"whole rupees", decimal.NewFromInt(1234), "₹1,234.00"},
		{"with paise", decimal.RequireFromString("1234.56"), "₹1,234.56"},
		{"zero", decimal.Zero, "₹0.00"},
		{"negative", decimal.NewFromInt(-500), "-₹500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.value))
		})
	}
}

func TestDisplayInFallsBackToDefault(t *testing.T) {
	got := DisplayIn(decimal.NewFromInt(10), "")
	assert.Equal(t, "₹10.00", got)
}

func TestToGoMoneyMinorUnits(t *testing.T) {
	a := New(decimal.RequireFromString("123.45"))
	m := a.ToGoMoney()
	assert.Equal(t, int64(12345), m.Amount())
	assert.Equal(t, "INR", m.Currency().Code)
}

func TestSum(t *testing.T) {
	values := []decimal.Decimal{
		decimal.NewFromInt(50000),
		decimal.NewFromInt(15000),
		decimal.RequireFromString("-5000.50"),
	}
	assert.True(t, Sum(values).Equal(decimal.RequireFromString("59999.50")))

	assert.True(t, Sum(nil).IsZero())
}

func TestZeroAndPredicates(t *testing.T) {
	z := Zero()
	assert.True(t, z.IsZero())
	assert.False(t, z.IsNegative())

	n := New(decimal.NewFromInt(-1))
	assert.True(t, n.IsNegative())
}
