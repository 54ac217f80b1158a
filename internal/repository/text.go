package repository

import (
	"strings"
	"unicode/utf8"

	"college-qa/internal/models"
)

// sanitizeUTF8 drops invalid UTF-8 bytes, which Postgres rejects in TEXT
// columns.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}
	return result.String()
}

// storedText returns the text columns of faq ready for insertion.
func storedText(faq *models.FAQEntry) (question, answer string, keywords []string, category string) {
	keywords = make([]string, 0, len(faq.Keywords))
	for _, kw := range faq.Keywords {
		keywords = append(keywords, sanitizeUTF8(kw))
	}
	return sanitizeUTF8(faq.Question), sanitizeUTF8(faq.Answer), keywords, sanitizeUTF8(faq.Category)
}
