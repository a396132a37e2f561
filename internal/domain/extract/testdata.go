package extract

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// SampleStatement generates a synthetic statement for demos and tests.
// A fixed seed yields a reproducible document.
func SampleStatement(seed int64) string {
	faker := gofakeit.New(seed)

	basicPay := faker.Number(30000, 90000)
	msp := 15500
	da := basicPay * 38 / 100
	dsop := basicPay / 10
	agif := faker.Number(3000, 8000)
	itax := faker.Number(2000, 20000)
	rhEarn := faker.Number(4000, 12000)
	rhRecover := faker.Number(1000, 4000)

	gross := basicPay + msp + da + rhEarn
	deductions := dsop + agif + itax + rhRecover

	month := faker.MonthString()
	year := faker.Number(2020, 2025)

	var b strings.Builder
	fmt.Fprintf(&b, "STATEMENT OF ACCOUNT FOR %s %d\n", strings.ToUpper(month), year)
	fmt.Fprintf(&b, "Name: %s %s\n", faker.FirstName(), faker.LastName())
	fmt.Fprintf(&b, "A/C No: %d\n", faker.Number(100000, 999999))
	fmt.Fprintf(&b, "PAN: %s%04dF\n\n", strings.ToUpper(faker.LetterN(5)), faker.Number(1000, 9999))

	b.WriteString("EARNINGS\n")
	fmt.Fprintf(&b, "BPAY: %d\n", basicPay)
	fmt.Fprintf(&b, "MSP: %d\n", msp)
	fmt.Fprintf(&b, "DA: %d\n", da)
	fmt.Fprintf(&b, "RH12 %d\n", rhEarn)
	fmt.Fprintf(&b, "Gross Pay: %d\n\n", gross)

	b.WriteString("DEDUCTIONS\n")
	fmt.Fprintf(&b, "DSOP: %d\n", dsop)
	fmt.Fprintf(&b, "AGIF: %d\n", agif)
	fmt.Fprintf(&b, "ITAX: %d\n", itax)
	fmt.Fprintf(&b, "RH12 %d\n", rhRecover)
	fmt.Fprintf(&b, "Total Deductions: %d\n", deductions)

	return b.String()
}
