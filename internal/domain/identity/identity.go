// Package identity pulls the statement's identity fields (name, account
// number, PAN, month, year) out of OCR text. Extraction is label-first:
// explicit labels beat positional fallbacks.
package identity

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Identity holds the non-financial fields of one statement.
type Identity struct {
	Name          string
	AccountNumber string
	PANNumber     string
	Month         string
	Year          int
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var (
	nameRe = regexp.MustCompile(`(?i)name\s*[:\-]\s*([A-Za-z][A-Za-z .]{2,40})`)

	// Explicit account labels first, masked formats second.
	accountLabelRe  = regexp.MustCompile(`(?i)(?:a/c|ac|acc(?:ount)?)\s*no\.?\s*[:\-]?\s*([0-9]{9,18})`)
	accountMaskedRe = regexp.MustCompile(`(?i)[x*]{4,}([0-9]{3,6})`)

	panRe = regexp.MustCompile(`\b([A-Z]{5}[0-9]{4}[A-Z])\b`)

	numericPeriodRe = regexp.MustCompile(`\b(0?[1-9]|1[0-2])\s*[/-]\s*((?:19|20)\d{2})\b`)
	yearRe          = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
)

// Extract parses identity fields out of the given text, typically the
// metadata zone but tolerant of whole-document input. Missing fields stay
// zero-valued; extraction never fails.
func Extract(text string) Identity {
	id := Identity{}

	if m := nameRe.FindStringSubmatch(text); m != nil {
		id.Name = strings.TrimSpace(m[1])
	}
	if m := accountLabelRe.FindStringSubmatch(text); m != nil {
		id.AccountNumber = m[1]
	} else if m := accountMaskedRe.FindStringSubmatch(text); m != nil {
		id.AccountNumber = m[1]
	}
	if m := panRe.FindStringSubmatch(text); m != nil {
		id.PANNumber = m[1]
	}

	id.Month, id.Year = extractPeriod(text)
	return id
}

// extractPeriod finds the statement month and year, preferring a spelled
// month with adjacent year, then the numeric MM/YYYY form.
func extractPeriod(text string) (string, int) {
	for _, month := range monthNames {
		re := regexp.MustCompile(`(?i)\b` + month + `[\s\-,]*((?:19|20)\d{2})?`)
		if m := re.FindStringSubmatch(text); m != nil {
			year := 0
			if m[1] != "" {
				year, _ = strconv.Atoi(m[1])
			} else if ym := yearRe.FindStringSubmatch(text); ym != nil {
				year, _ = strconv.Atoi(ym[1])
			}
			if year >= 1900 && year <= time.Now().Year()+1 {
				return month, year
			}
			return month, 0
		}
	}

	if m := numericPeriodRe.FindStringSubmatch(text); m != nil {
		idx, _ := strconv.Atoi(strings.TrimPrefix(m[1], "0"))
		year, _ := strconv.Atoi(m[2])
		if idx >= 1 && idx <= 12 {
			return monthNames[idx-1], year
		}
	}
	return "", 0
}
