package dataprocessing

import (
	"strings"
	"unicode"
)

// tickerSeparators are the characters that end the canonical prefix of a raw
// instrument label. Everything from the earliest separator onward is vendor
// decoration (exchange suffix, share class, asset-class tag).
const tickerSeparators = " -/._"

// NormalizeTicker maps a raw instrument label to its canonical identifier:
// uppercase, truncated at the earliest separator, with every remaining
// non-alphanumeric rune removed. It is total and deterministic; an empty
// result is valid and still usable as a key component.
func NormalizeTicker(raw string) string {
	s := strings.ToUpper(raw)
	if i := strings.IndexAny(s, tickerSeparators); i >= 0 {
		s = s[:i]
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
