package extract

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/assemble"
	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/search"
	"github.com/sunilpawar-git/payslipmax-extract/pkg/config"
)

const statementText = `STATEMENT OF ACCOUNT FOR MARCH 2024
Name: Sunil Pawar
A/C No: XXXXXX4521
PAN: ABCDE1234F

EARNINGS
BPAY: 50,000
MSP: 15,500
DA: 19,000
RH12 8,000

DEDUCTIONS
DSOP: 5,000
AGIF: 5,000
ITAX: 8,500
RH12 2,000
Total Deductions: 20,500
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)

	svc, err := NewService(cfg, slog.Default())
	require.NoError(t, err)
	return svc
}

func TestProcessFullStatement(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Process(context.Background(), statementText, Options{})
	require.NoError(t, err)

	assert.True(t, result.Ledger.Earnings["BPAY"].Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.Ledger.Earnings["MSP"].Equal(decimal.NewFromInt(15500)))
	assert.True(t, result.Ledger.Deductions["DSOP"].Equal(decimal.NewFromInt(5000)))
	assert.True(t, result.Ledger.DSOPValue.Equal(decimal.NewFromInt(5000)))
	assert.True(t, result.Ledger.TaxValue.Equal(decimal.NewFromInt(8500)))

	// The labelled figure wins over the itemized sum.
	assert.True(t, result.Ledger.DebitsTotal.Equal(decimal.NewFromInt(20500)))

	// RH12 appears in both sections and must survive as two entries.
	assert.Contains(t, result.Items, "RH12_EARNINGS")
	assert.Contains(t, result.Items, "RH12_DEDUCTIONS")

	assert.Equal(t, "Sunil Pawar", result.Ledger.Name)
	assert.Equal(t, "ABCDE1234F", result.Ledger.PANNumber)
	assert.Equal(t, 2024, result.Ledger.Year)

	assert.True(t, result.Report.Passed, "issues: %v", result.Report.Issues)
}

func TestProcessExplicitTotalOverride(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Process(context.Background(), statementText, Options{
		ExplicitTotals: map[string]decimal.Decimal{
			assemble.KeyGrossPay: decimal.NewFromInt(99000),
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Ledger.CreditsTotal.Equal(decimal.NewFromInt(99000)))
}

func TestProcessEmptyDocumentFailsValidation(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Process(context.Background(), "", Options{})
	require.NoError(t, err)
	assert.False(t, result.Report.Passed)
	assert.Empty(t, result.Items)
}

func TestProcessCanceledContext(t *testing.T) {
	svc := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Process(ctx, statementText, Options{})
	assert.Error(t, err)
}

func TestProcessProgressEvents(t *testing.T) {
	svc := newTestService(t)

	events := make(chan search.ProgressEvent, 256)
	_, err := svc.Process(context.Background(), statementText, Options{Progress: events})
	require.NoError(t, err)
	close(events)

	var last search.ProgressEvent
	count := 0
	for ev := range events {
		last = ev
		count++
	}
	assert.Greater(t, count, 0)
	assert.Equal(t, "done", last.Stage)
}

func TestProcessDeterministicAcrossRuns(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Process(context.Background(), statementText, Options{})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := svc.Process(context.Background(), statementText, Options{})
		require.NoError(t, err)
		assert.Equal(t, len(first.Items), len(again.Items))
		assert.True(t, first.Ledger.CreditsTotal.Equal(again.Ledger.CreditsTotal))
		assert.True(t, first.Ledger.DebitsTotal.Equal(again.Ledger.DebitsTotal))
	}
}

func TestProcessSampleStatement(t *testing.T) {
	svc := newTestService(t)

	text := SampleStatement(42)
	result, err := svc.Process(context.Background(), text, Options{})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Items)
	assert.Contains(t, result.Ledger.Earnings, "BPAY")
	assert.True(t, result.Ledger.DSOPValue.IsPositive())
	assert.True(t, result.Report.Passed, "issues: %v", result.Report.Issues)
}

func TestSampleStatementReproducible(t *testing.T) {
	assert.Equal(t, SampleStatement(7), SampleStatement(7))
	assert.NotEqual(t, SampleStatement(7), SampleStatement(8))
}
