// Package segment splits raw text into sentences.
package segment

import (
	"strings"
	"unicode"
)

// abbreviations that end with a period but do not terminate a sentence.
var abbreviations = map[string]bool{
	"dr":    true,
	"mr":    true,
	"mrs":   true,
	"ms":    true,
	"prof":  true,
	"sr":    true,
	"jr":    true,
	"st":    true,
	"vs":    true,
	"etc":   true,
	"inc":   true,
	"ltd":   true,
	"co":    true,
	"e.g":   true,
	"i.e":   true,
	"u.s":   true,
	"u.k":   true,
	"u.n":   true,
	"approx": true,
	"no":    true,
}

// Split divides text into sentences on terminal punctuation followed by
// whitespace. Periods after known abbreviations and inside decimal numbers
// do not split. Empty or whitespace-only input yields nil.
func Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for i, r := range runes {
		current.WriteRune(r)

		if r != '.' && r != '!' && r != '?' {
			continue
		}

		// Terminal punctuation must be followed by whitespace or end of text.
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}

		if r == '.' {
			if isAbbreviation(current.String()) {
				continue
			}
			// A digit on both sides of the period means a decimal number.
			if i+1 < len(runes) && i > 0 && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
				continue
			}
		}

		flush()
	}

	flush()
	return sentences
}

// isAbbreviation reports whether the sentence-so-far ends in a known
// abbreviation (the trailing period is part of s).
func isAbbreviation(s string) bool {
	s = strings.TrimSuffix(s, ".")
	idx := strings.LastIndexFunc(s, unicode.IsSpace)
	word := strings.ToLower(s[idx+1:])
	return abbreviations[word]
}
