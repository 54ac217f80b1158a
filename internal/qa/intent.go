package qa

import "strings"

// Intent is a coarse topical category of a raw question.
type Intent string

const (
	IntentDeadline     Intent = "deadline"
	IntentDocuments    Intent = "documents"
	IntentFees         Intent = "fees"
	IntentPrograms     Intent = "programs"
	IntentContact      Intent = "contact"
	IntentRequirements Intent = "requirements"
	IntentGeneral      Intent = "general"
)

type intentKeywords struct {
	intent   Intent
	keywords []string
}

// intentTable is scanned in order; earlier rows win ties.
var intentTable = []intentKeywords{
	{IntentDeadline, []string{"deadline", "when", "date", "last date", "apply by"}},
	{IntentDocuments, []string{"document", "required", "submit", "paper", "transcript"}},
	{IntentFees, []string{"fee", "tuition", "cost", "price", "scholarship"}},
	{IntentPrograms, []string{"program", "course", "major", "degree", "study"}},
	{IntentContact, []string{"contact", "email", "phone", "call", "reach"}},
	{IntentRequirements, []string{"requirement", "eligibility", "gpa", "score", "need"}},
}

// Classify scores every intent by how many of its keywords occur anywhere in
// the lowercased text, substrings of longer words included.
func Classify(text string) Intent {
	lowered := strings.ToLower(text)

	best, bestScore := IntentGeneral, 0
	for _, row := range intentTable {
		score := 0
		for _, kw := range row.keywords {
			if strings.Contains(lowered, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = row.intent, score
		}
	}
	return best
}
