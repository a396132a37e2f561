// Package normalizer repairs OCR-corrupted monetary tokens into reliable
// decimal values. It handles Devanagari numerals, common OCR character
// confusions, parenthesized negatives and Indian-style digit grouping.
package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencyMarkers are stripped before any digit repair so that the "S" in
// "Rs." is never mistaken for a corrupted 5.
var currencyMarkers = []string{"₹", "Rs.", "RS.", "Rs", "RS", "rs.", "rs", "INR", "inr", "$"}

// ocrDigitConfusions maps characters OCR engines commonly emit in place of
// digits. Applied only to tokens that already contain at least one real digit.
var ocrDigitConfusions = map[rune]rune{
	'O': '0', 'o': '0',
	'I': '1', 'l': '1', '|': '1',
	'S': '5', 's': '5',
	'B': '8',
}

// NormalizeAmount cleans a raw token suspected to encode a monetary amount
// and parses it into a decimal value. The second return value is false when
// the token cannot be interpreted as an amount; this is an expected outcome
// for noisy input, not an error.
func NormalizeAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}

	for _, marker := range currencyMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.Join(strings.Fields(s), "")

	// Accounting notation: (1234) means -1234.
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) > 2 {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}

	s = mapIndicDigits(s)
	s = repairDigitConfusions(s)

	// Thousands separators, Indian grouping included: 1,23,456 -> 123456.
	s = strings.ReplaceAll(s, ",", "")
	s = keepFirstDecimalPoint(s)

	if s == "" || !containsDigit(s) || containsAlpha(s) {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// IsPlausibleAmountToken is a cheap pre-filter used before full
// normalization to avoid wasted regex work downstream. It rejects tokens
// with more than two non-numeric characters and no digits at all.
func IsPlausibleAmountToken(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	for _, marker := range currencyMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = mapIndicDigits(s)

	digits := 0
	other := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ',' || r == '.' || r == '(' || r == ')' || r == '-' || r == ' ':
			// Separators and sign notation are always acceptable.
		default:
			if _, ok := ocrDigitConfusions[r]; !ok {
				other++
			}
		}
	}
	if digits == 0 && other > 2 {
		return false
	}
	return digits > 0
}

// mapIndicDigits converts Devanagari numerals (०-९) to Western digits.
func mapIndicDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '०' && r <= '९' {
			b.WriteRune('0' + (r - '०'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// repairDigitConfusions replaces OCR look-alike characters with the digits
// they usually stand for. The replacement is attempted only when the token
// already carries at least one genuine digit, so alphabetic labels such as
// pay-code symbols pass through untouched.
func repairDigitConfusions(s string) string {
	if !containsDigit(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := ocrDigitConfusions[r]; ok {
			b.WriteRune(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// keepFirstDecimalPoint drops every dot after the first one. OCR output for
// "1234.00" occasionally arrives as "12.34.00"; keeping the first dot is the
// documented tie-break for such malformed tokens.
func keepFirstDecimalPoint(s string) string {
	first := strings.Index(s, ".")
	if first == -1 {
		return s
	}
	return s[:first+1] + strings.ReplaceAll(s[first+1:], ".", "")
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func containsAlpha(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
