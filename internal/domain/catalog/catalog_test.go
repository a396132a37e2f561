package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Lookup(t *testing.T) {
	c := New()

	t.Run("exact symbol", func(t *testing.T) {
		code, isArrears, ok := c.Lookup("BPAY")
		require.True(t, ok)
		assert.False(t, isArrears)
		assert.Equal(t, TierGuaranteedEarnings, code.Tier)
	})

	t.Run("case insensitive with whitespace", func(t *testing.T) {
		code, _, ok := c.Lookup("  dsop ")
		require.True(t, ok)
		assert.Equal(t, "DSOP", code.Symbol)
		assert.Equal(t, TierGuaranteedDeductions, code.Tier)
	})

	t.Run("arrears prefix stripped", func(t *testing.T) {
		code, isArrears, ok := c.Lookup("ARR-RH12")
		require.True(t, ok)
		assert.True(t, isArrears)
		assert.Equal(t, "RH12", code.Symbol)
		assert.Equal(t, TierUniversalDualSection, code.Tier)
	})

	t.Run("mixed case arrears", func(t *testing.T) {
		code, isArrears, ok := c.Lookup("Arr-DA")
		require.True(t, ok)
		assert.True(t, isArrears)
		assert.Equal(t, "DA", code.Symbol)
	})

	t.Run("unknown symbol", func(t *testing.T) {
		_, _, ok := c.Lookup("XYZZY")
		assert.False(t, ok)
		assert.Equal(t, TierUnknown, c.TierOf("XYZZY"))
	})
}

func TestCatalog_TiersAreDisjoint(t *testing.T) {
	c := New()
	seen := map[string]Tier{}
	for _, code := range c.AllCodes() {
		prev, dup := seen[code.Symbol]
		require.False(t, dup, "symbol %s registered in both %s and %s", code.Symbol, prev, code.Tier)
		seen[code.Symbol] = code.Tier
	}
}

func TestCatalog_CodesByTier(t *testing.T) {
	c := New()
	assert.NotEmpty(t, c.CodesByTier(TierGuaranteedEarnings))
	assert.NotEmpty(t, c.CodesByTier(TierGuaranteedDeductions))
	assert.NotEmpty(t, c.CodesByTier(TierUniversalDualSection))
	for _, code := range c.CodesByTier(TierUniversalDualSection) {
		assert.Equal(t, TierUniversalDualSection, code.Tier)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		in        string
		want      string
		isArrears bool
	}{
		{"BPAY", "BPAY", false},
		{"arr-rh12", "RH12", true},
		{"ARR DA", "DA", true},
		{"ARREARS-TPTA", "TPTA", true},
		{"ARREARS", "ARREARS", false},
		{" msp ", "MSP", false},
	}
	for _, tt := range tests {
		got, isArrears := NormalizeSymbol(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, tt.isArrears, isArrears, "input %q", tt.in)
	}
}

func TestCatalog_ResolvePartial(t *testing.T) {
	c := New()

	t.Run("exact scores highest", func(t *testing.T) {
		match, ok := c.ResolvePartial("RH12", 60)
		require.True(t, ok)
		assert.Equal(t, "RH12", match.Code.Symbol)
		assert.Equal(t, 100, match.Score)
	})

	t.Run("one character mangled", func(t *testing.T) {
		match, ok := c.ResolvePartial("DSOPX", 60)
		require.True(t, ok)
		assert.Equal(t, "DSOP", match.Code.Symbol)
	})

	t.Run("boundary containment", func(t *testing.T) {
		match, ok := c.ResolvePartial("BPAY.", 60)
		require.True(t, ok)
		assert.Equal(t, "BPAY", match.Code.Symbol)
	})

	t.Run("short code must not match inside longer word", func(t *testing.T) {
		_, ok := c.ResolvePartial("HOLIDAY", 60)
		assert.False(t, ok)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, ok := c.ResolvePartial("QQQQQQQ", 60)
		assert.False(t, ok)
	})
}

func TestReferenceIndex(t *testing.T) {
	idx, err := NewReferenceIndex(New())
	require.NoError(t, err)
	defer func() { _ = idx.Close() }()

	t.Run("match by name", func(t *testing.T) {
		results, err := idx.Search("hardship", 5)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Contains(t, results[0].Document.Name, "Risk and Hardship")
	})

	t.Run("prefix lookup", func(t *testing.T) {
		results, err := idx.SearchWithPrefix("ris", 20)
		require.NoError(t, err)
		assert.NotEmpty(t, results)
	})

	t.Run("fuzzy typo tolerance", func(t *testing.T) {
		results, err := idx.SearchFuzzy("insurence", 2, 5)
		require.NoError(t, err)
		assert.NotEmpty(t, results)
	})
}
