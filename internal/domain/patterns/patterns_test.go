package patterns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/catalog"
)

func findFirst(pats []Pattern, text string) (Pattern, []string) {
	for _, p := range pats {
		if m := p.Re.FindStringSubmatch(text); m != nil {
			return p, m
		}
	}
	return Pattern{}, nil
}

func TestGenerator_Variants(t *testing.T) {
	cat := catalog.New()
	gen, errs := NewGenerator(cat)
	require.Empty(t, errs)

	bpay, _, ok := cat.Lookup("BPAY")
	require.True(t, ok)
	pats := gen.Generate(bpay)
	require.NotEmpty(t, pats)

	tests := []struct {
		name   string
		text   string
		amount string
	}{
		{"code space amount", "BPAY 50000", "50000"},
		{"code colon amount", "BPAY: 50,000.00", "50,000.00"},
		{"currency led amount", "BPAY ₹50000", "50000"},
		{"rupee abbreviation", "BPAY Rs. 50000", "50000"},
		{"amount then code", "50000 BPAY", "50000"},
		{"lowercase ocr output", "bpay 50000", "50000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, m := findFirst(pats, tt.text)
			require.NotNil(t, m, "no variant matched %q", tt.text)
			require.GreaterOrEqual(t, p.AmountGroup(), 0, "variant %s has no amount group", p.Name)
			assert.Equal(t, tt.amount, m[p.AmountGroup()], "variant %s", p.Name)
			require.GreaterOrEqual(t, p.CodeGroup(), 0, "variant %s has no code group", p.Name)
			assert.Equal(t, "BPAY", strings.ToUpper(m[p.CodeGroup()]))
		})
	}
}

func TestGenerator_OrderIsStable(t *testing.T) {
	cat := catalog.New()
	gen, _ := NewGenerator(cat)
	da, _, _ := cat.Lookup("DA")

	first := gen.Generate(da)
	second := gen.Generate(da)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, i, first[i].Priority)
	}
	// Priority order puts the explicit colon form ahead of looser variants.
	assert.Equal(t, "code_colon_amount", first[0].Name)
}

func TestGenerator_ShortCodeDoesNotMatchInsideWords(t *testing.T) {
	cat := catalog.New()
	gen, _ := NewGenerator(cat)
	da, _, _ := cat.Lookup("DA")

	_, m := findFirst(gen.Generate(da), "HOLIDAY 100")
	assert.Nil(t, m)
}

func TestGenerator_AmountCodeVariantStaysOnOneLine(t *testing.T) {
	cat := catalog.New()
	gen, _ := NewGenerator(cat)
	rh12, _, _ := cat.Lookup("RH12")

	// The previous line's amount must never bind to this line's code.
	for _, p := range gen.Generate(rh12) {
		m := p.Re.FindStringSubmatch("DA 15000\nRH12")
		assert.Nil(t, m, "variant %s bound a cross-line amount", p.Name)
	}

	// Same-line amount-before-code still works.
	p, m := findFirst(gen.Generate(rh12), "9700 RH12")
	require.NotNil(t, m)
	assert.Equal(t, "amount_code", p.Name)
	assert.Equal(t, "9700", m[p.AmountGroup()])
}

func TestGenerator_LabelExpandedVariant(t *testing.T) {
	cat := catalog.New()
	gen, _ := NewGenerator(cat)
	rh12, _, _ := cat.Lookup("RH12")

	p, m := findFirst(gen.Generate(rh12), "RISK AND HARDSHIP RH12 9700")
	require.NotNil(t, m)
	assert.Equal(t, "9700", m[p.AmountGroup()])
}

func TestGenerateArrears(t *testing.T) {
	pats := GenerateArrears()
	require.NotEmpty(t, pats)

	tests := []struct {
		text   string
		base   string
		amount string
	}{
		{"ARR-RH12 2400", "RH12", "2400"},
		{"ARR-DA: 3,500", "DA", "3,500"},
		{"ARREARS TPTA 1200", "TPTA", "1200"},
		{"ARR NEWCODE 999", "NEWCODE", "999"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var matched []string
			for _, p := range pats {
				if m := p.Re.FindStringSubmatch(tt.text); m != nil {
					matched = m
					break
				}
			}
			require.NotNil(t, matched, "no arrears pattern matched %q", tt.text)
			assert.Equal(t, tt.base, matched[1])
			assert.Equal(t, tt.amount, matched[2])
		})
	}
}

func TestGenerator_DevanagariAmountCapture(t *testing.T) {
	cat := catalog.New()
	gen, _ := NewGenerator(cat)
	bpay, _, _ := cat.Lookup("BPAY")

	p, m := findFirst(gen.Generate(bpay), "BPAY १२३४")
	require.NotNil(t, m)
	assert.Equal(t, "१२३४", m[p.AmountGroup()])
}
