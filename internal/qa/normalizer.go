package qa

import (
	"strings"
	"unicode"
)

// minTokenLen is the shortest token Normalize keeps. Two-letter acronyms are
// dropped along with everything shorter.
const minTokenLen = 3

// Normalize lowercases text, removes everything but ASCII letters and
// whitespace, and drops stopwords and short tokens. The result is matcher
// input only and is never shown to users.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(tokens(text), " ")
}

func tokens(text string) []string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	kept := fields[:0]
	for _, tok := range fields {
		if len(tok) < minTokenLen {
			continue
		}
		if _, stop := englishStopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}
