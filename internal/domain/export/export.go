// Package export renders assembled ledgers as CSV and XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sunilpawar-git/payslipmax-extract/internal/domain/assemble"
)

// Row is one exported ledger line.
type Row struct {
	Section string `csv:"section"`
	Code    string `csv:"code"`
	Amount  string `csv:"amount"`
}

// Rows flattens a ledger into export rows: itemized entries first, then
// the derived totals. Order is deterministic.
func Rows(ledger assemble.Ledger) []Row {
	rows := make([]Row, 0, len(ledger.Earnings)+len(ledger.Deductions)+3)

	for _, code := range sortedKeys(ledger.Earnings) {
		rows = append(rows, Row{Section: "earnings", Code: code, Amount: ledger.Earnings[code].StringFixed(2)})
	}
	for _, code := range sortedKeys(ledger.Deductions) {
		rows = append(rows, Row{Section: "deductions", Code: code, Amount: ledger.Deductions[code].StringFixed(2)})
	}

	rows = append(rows,
		Row{Section: "totals", Code: "CREDITS", Amount: ledger.CreditsTotal.StringFixed(2)},
		Row{Section: "totals", Code: "DEBITS", Amount: ledger.DebitsTotal.StringFixed(2)},
		Row{Section: "totals", Code: "NET", Amount: ledger.NetRemittance().StringFixed(2)},
	)
	return rows
}

// WriteCSV writes the ledger as CSV.
func WriteCSV(w io.Writer, ledger assemble.Ledger) error {
	rows := Rows(ledger)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("marshal ledger csv: %w", err)
	}
	return nil
}

const sheetName = "Payslip"

// WriteXLSX writes the ledger as a single-sheet workbook with a small
// identity header above the itemized rows.
func WriteXLSX(w io.Writer, ledger assemble.Ledger) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	line := 1
	set := func(values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
		line++
		return nil
	}

	period := ""
	if ledger.Month != "" || ledger.Year != 0 {
		period = fmt.Sprintf("%s %d", ledger.Month, ledger.Year)
	}
	header := []struct {
		label string
		value string
	}{
		{"Name", ledger.Name},
		{"Account", ledger.AccountNumber},
		{"PAN", ledger.PANNumber},
		{"Period", period},
	}
	for _, h := range header {
		if h.value == "" {
			continue
		}
		if err := set(h.label, h.value); err != nil {
			return fmt.Errorf("write header row: %w", err)
		}
	}
	line++

	if err := set("Section", "Code", "Amount"); err != nil {
		return fmt.Errorf("write column header: %w", err)
	}
	for _, row := range Rows(ledger) {
		amount, _ := decimal.NewFromString(row.Amount)
		v, _ := amount.Float64()
		if err := set(row.Section, row.Code, v); err != nil {
			return fmt.Errorf("write row %s/%s: %w", row.Section, row.Code, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
