// Package sections segments raw payslip text into labeled zones using
// header keyword detection. The zones bound the classifier's context window
// and let section-scoped search attribute the same code string to the right
// side of the document.
package sections

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Kind labels one zone of the source document.
type Kind int

const (
	// KindEarnings covers the credit side of the statement.
	KindEarnings Kind = iota
	// KindDeductions covers the debit side of the statement.
	KindDeductions
	// KindTransactions covers itemized transaction detail blocks.
	KindTransactions
	// KindMetadata covers identity and statement header blocks.
	KindMetadata
)

func (k Kind) String() string {
	switch k {
	case KindEarnings:
		return "earnings"
	case KindDeductions:
		return "deductions"
	case KindTransactions:
		return "transactions"
	case KindMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

// Section is a labeled span of the source text, read-only once produced.
type Section struct {
	Kind      Kind
	Text      string
	StartLine int
	EndLine   int
}

// Header keyword lists per zone. Matching is case-insensitive substring
// matching over individual lines, the same heuristic PCDA statements respond
// to in practice.
var headerKeywords = map[Kind][]string{
	KindEarnings:     {"EARNINGS", "CREDITS", "CREDIT SIDE", "PAY AND ALLOWANCES", "आय"},
	KindDeductions:   {"DEDUCTIONS", "DEBITS", "DEBIT SIDE", "RECOVERIES", "RECOVERY", "कटौती"},
	KindTransactions: {"TRANSACTION DETAILS", "TXN DETAILS", "TRANSACTIONS"},
	KindMetadata:     {"STATEMENT OF ACCOUNT", "PERSONAL DETAILS", "PAY SLIP FOR", "PAYSLIP FOR"},
}

// maxHeaderLineLen guards against body lines that merely mention a keyword;
// genuine headers are short.
const maxHeaderLineLen = 80

// Identifier detects section headers with one Aho-Corasick matcher per zone.
// Build it once; it is safe for concurrent use.
type Identifier struct {
	matchers []kindMatcher
}

type kindMatcher struct {
	kind    Kind
	matcher *ahocorasick.Matcher
}

// NewIdentifier compiles the header keyword matchers.
func NewIdentifier() *Identifier {
	// Deduction keywords are checked before earnings ones: several layouts
	// title the debit column "CREDIT/DEBIT" and the more specific side must
	// win.
	order := []Kind{KindMetadata, KindTransactions, KindDeductions, KindEarnings}

	matchers := make([]kindMatcher, 0, len(order))
	for _, kind := range order {
		patterns := make([][]byte, len(headerKeywords[kind]))
		for i, kw := range headerKeywords[kind] {
			patterns[i] = []byte(kw)
		}
		matchers = append(matchers, kindMatcher{kind: kind, matcher: ahocorasick.NewMatcher(patterns)})
	}
	return &Identifier{matchers: matchers}
}

// Identify scans the document line by line. A line matching a zone's header
// keywords starts that zone and closes the previous one; subsequent lines
// accumulate into the current zone until the next header or end of input.
// Lines before the first recognized header belong to no zone.
func (id *Identifier) Identify(text string) map[Kind]Section {
	lines := strings.Split(text, "\n")
	result := make(map[Kind]Section)

	current := Kind(-1)
	var buf strings.Builder
	startLine := 0

	flush := func(endLine int) {
		if current < 0 {
			return
		}
		section := Section{
			Kind:      current,
			Text:      buf.String(),
			StartLine: startLine,
			EndLine:   endLine,
		}
		// A document can legitimately restart a zone (multi-page layouts);
		// concatenate rather than overwrite.
		if existing, ok := result[current]; ok {
			existing.Text += "\n" + section.Text
			existing.EndLine = section.EndLine
			result[current] = existing
		} else {
			result[current] = section
		}
		buf.Reset()
	}

	for i, line := range lines {
		if kind, ok := id.headerKind(line); ok {
			flush(i - 1)
			current = kind
			startLine = i
			buf.WriteString(line)
			buf.WriteString("\n")
			continue
		}
		if current >= 0 {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	flush(len(lines) - 1)

	return result
}

// headerKind reports which zone, if any, a line opens.
func (id *Identifier) headerKind(line string) (Kind, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > maxHeaderLineLen {
		return 0, false
	}
	// MatchThreadSafe: one Identifier serves concurrent documents and the
	// plain Match mutates matcher-internal counters.
	upper := []byte(strings.ToUpper(trimmed))
	for _, km := range id.matchers {
		if len(km.matcher.MatchThreadSafe(upper)) > 0 {
			return km.kind, true
		}
	}
	return 0, false
}
