package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FuzzyMatch is a candidate catalog entry for an OCR-mangled symbol.
type FuzzyMatch struct {
	Code  PayCode
	Score int // 0-100, 100 is a perfect match
}

// ResolvePartial attempts to map an OCR-mangled symbol onto a registered
// code when exact lookup fails. Matching is word-boundary aware so a short
// code never matches inside an unrelated longer word ("DA" must not match
// "HOLIDAY"). Returns ok=false when no candidate reaches the threshold.
func (c *Catalog) ResolvePartial(raw string, threshold int) (FuzzyMatch, bool) {
	matches := c.RankPartial(raw, threshold)
	if len(matches) == 0 {
		return FuzzyMatch{}, false
	}
	return matches[0], true
}

// RankPartial returns every registered code scoring at or above the
// threshold against the mangled input, best first. Ordering is
// deterministic: score descending, then symbol ascending.
func (c *Catalog) RankPartial(raw string, threshold int) []FuzzyMatch {
	normalized, _ := NormalizeSymbol(raw)
	if normalized == "" {
		return nil
	}

	var out []FuzzyMatch
	for _, code := range c.codes {
		score := symbolScore(normalized, code.Symbol)
		if score >= threshold {
			out = append(out, FuzzyMatch{Code: code, Score: score})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Code.Symbol < out[j].Code.Symbol
	})
	return out
}

// symbolScore scores a mangled token against a catalog symbol (0-100).
func symbolScore(input, symbol string) int {
	if input == symbol {
		return 100
	}

	// Containment only counts when the symbol sits on a word boundary of
	// the input, which keeps two-letter codes from colliding with
	// substrings of longer words.
	if containsOnBoundary(input, symbol) {
		return 75 + 25*len(symbol)/len(input)
	}

	distance := fuzzy.LevenshteinDistance(input, symbol)
	maxLen := len(input)
	if len(symbol) > maxLen {
		maxLen = len(symbol)
	}
	if maxLen == 0 {
		return 0
	}
	score := 100 * (maxLen - distance) / maxLen

	// Short symbols earn high Levenshtein scores too easily; demand near
	// equality for anything under four characters.
	if len(symbol) < 4 && distance > 1 {
		return 0
	}
	return score
}

// containsOnBoundary reports whether needle appears in haystack delimited by
// non-alphanumeric characters or string edges.
func containsOnBoundary(haystack, needle string) bool {
	if needle == "" || len(needle) > len(haystack) {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(needle)
		leftOK := idx == 0 || !isAlnum(rune(haystack[idx-1]))
		rightOK := end == len(haystack) || !isAlnum(rune(haystack[end]))
		if leftOK && rightOK {
			return true
		}
		start = idx + 1
		if start >= len(haystack) {
			return false
		}
	}
}

func isAlnum(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
