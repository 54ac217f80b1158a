package qa

const defaultSuggestionCategory = "general"

var relatedSuggestions = map[string][]string{
	"deadlines": {"What documents are required?", "What is the application process?", "Can I get an extension?"},
	"documents": {"What is the application deadline?", "How to submit documents?", "Document format requirements"},
	"fees":      {"Scholarship opportunities", "Payment plans", "Additional fees"},
	"programs":  {"Admission requirements", "Program duration", "Career opportunities"},
	"general":   {"Application deadlines", "Required documents", "Tuition fees", "Program offerings"},
}

var generalSuggestions = []string{
	"What are the application deadlines?",
	"What documents do I need to submit?",
	"How much is the tuition fee?",
	"What programs do you offer?",
	"What are the admission requirements?",
}

var popularQuestions = []string{
	"What are the application deadlines?",
	"What documents are required for admission?",
	"What is the tuition fee structure?",
	"Are scholarships available?",
	"What programs do you offer?",
	"What are the English language requirements?",
}

// RelatedSuggestions returns follow-up questions for an FAQ category. Unknown
// categories get the general list.
func RelatedSuggestions(category string) []string {
	list, ok := relatedSuggestions[category]
	if !ok {
		list = relatedSuggestions[defaultSuggestionCategory]
	}
	return clone(list)
}

// GeneralSuggestions returns the list offered alongside fallback answers.
func GeneralSuggestions() []string {
	return clone(generalSuggestions)
}

// PopularQuestions returns the static list served independently of matching.
func PopularQuestions() []string {
	return clone(popularQuestions)
}

func clone(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
