package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/assemble"
)

func sampleLedger() assemble.Ledger {
	return assemble.Ledger{
		Earnings: map[string]decimal.Decimal{
			"BPAY": decimal.NewFromInt(50000),
			"DA":   decimal.NewFromInt(15000),
		},
		Deductions: map[string]decimal.Decimal{
			"DSOP": decimal.NewFromInt(5000),
		},
		CreditsTotal: decimal.NewFromInt(65000),
		DebitsTotal:  decimal.NewFromInt(5000),
		Name:         "Sunil Pawar",
		Month:        "March",
		Year:         2024,
	}
}

func TestRowsDeterministicOrder(t *testing.T) {
	ledger := sampleLedger()

	first := Rows(ledger)
	require.Len(t, first, 6)

	// Earnings alphabetical, then deductions, then the three totals.
	assert.Equal(t, "BPAY", first[0].Code)
	assert.Equal(t, "DA", first[1].Code)
	assert.Equal(t, "DSOP", first[2].Code)
	assert.Equal(t, "NET", first[5].Code)
	assert.Equal(t, "60000.00", first[5].Amount)

	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Rows(ledger))
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleLedger()))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "section,code,amount", lines[0])
	assert.Contains(t, out, "earnings,BPAY,50000.00")
	assert.Contains(t, out, "deductions,DSOP,5000.00")
	assert.Contains(t, out, "totals,NET,60000.00")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleLedger()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payslip")
	require.NoError(t, err)

	flat := make([]string, 0, len(rows))
	for _, row := range rows {
		flat = append(flat, strings.Join(row, "|"))
	}
	joined := strings.Join(flat, "\n")

	assert.Contains(t, joined, "Name|Sunil Pawar")
	assert.Contains(t, joined, "Period|March 2024")
	assert.Contains(t, joined, "Section|Code|Amount")
	assert.Contains(t, joined, "earnings|BPAY|50000")
	assert.Contains(t, joined, "totals|NET|60000")
}

func TestWriteXLSXEmptyLedgerOmitsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, assemble.Ledger{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payslip")
	require.NoError(t, err)

	var sawIdentity bool
	for _, row := range rows {
		if len(row) > 0 && (row[0] == "Name" || row[0] == "Period") {
			sawIdentity = true
		}
	}
	assert.False(t, sawIdentity)
}
