package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatement = `STATEMENT OF ACCOUNT FOR 03/2024
Name: Sample Officer
A/C No: 12345678901

EARNINGS
BPAY 50000
DA 15000
RH12 9700

DEDUCTIONS
DSOP 5000
AGIF 1200
RH12 9700

TRANSACTION DETAILS
01/03 SALARY CREDIT 68500`

func TestIdentifier_Identify(t *testing.T) {
	id := NewIdentifier()
	zones := id.Identify(sampleStatement)

	t.Run("all four zones found", func(t *testing.T) {
		for _, kind := range []Kind{KindMetadata, KindEarnings, KindDeductions, KindTransactions} {
			_, ok := zones[kind]
			assert.True(t, ok, "missing zone %s", kind)
		}
	})

	t.Run("codes land in the right zone", func(t *testing.T) {
		earnings := zones[KindEarnings]
		require.Contains(t, earnings.Text, "BPAY 50000")
		require.Contains(t, earnings.Text, "RH12 9700")
		assert.NotContains(t, earnings.Text, "DSOP")

		deductions := zones[KindDeductions]
		require.Contains(t, deductions.Text, "DSOP 5000")
		assert.NotContains(t, deductions.Text, "BPAY")
	})

	t.Run("metadata holds identity lines", func(t *testing.T) {
		meta := zones[KindMetadata]
		assert.Contains(t, meta.Text, "A/C No")
	})

	t.Run("line ranges are ordered", func(t *testing.T) {
		for kind, section := range zones {
			assert.LessOrEqual(t, section.StartLine, section.EndLine, "zone %s", kind)
		}
	})
}

func TestIdentifier_NoHeaders(t *testing.T) {
	id := NewIdentifier()
	zones := id.Identify("BPAY 50000\nDSOP 5000")
	assert.Empty(t, zones)
}

func TestIdentifier_HindiHeaders(t *testing.T) {
	id := NewIdentifier()
	zones := id.Identify("आय\nBPAY 50000\nकटौती\nDSOP 5000")
	require.Contains(t, zones, KindEarnings)
	require.Contains(t, zones, KindDeductions)
	assert.Contains(t, zones[KindEarnings].Text, "BPAY")
	assert.Contains(t, zones[KindDeductions].Text, "DSOP")
}

func TestIdentifier_LongLineIsNotAHeader(t *testing.T) {
	id := NewIdentifier()
	long := "this transaction narrative happens to mention earnings somewhere in a very long body line that is clearly not a header"
	zones := id.Identify("EARNINGS\nBPAY 50000\n" + long)
	require.Contains(t, zones, KindEarnings)
	assert.Contains(t, zones[KindEarnings].Text, long)
}

func TestIdentifier_RepeatedZoneConcatenates(t *testing.T) {
	id := NewIdentifier()
	zones := id.Identify("EARNINGS\nBPAY 50000\nDEDUCTIONS\nDSOP 5000\nEARNINGS\nMSP 15500")
	require.Contains(t, zones, KindEarnings)
	assert.Contains(t, zones[KindEarnings].Text, "BPAY 50000")
	assert.Contains(t, zones[KindEarnings].Text, "MSP 15500")
}
