package dto

import "college-qa/internal/qa"

type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the answer payload plus the classified intent and the
// question it answers. Intent never influences the payload.
type AskResponse struct {
	qa.Response
	Intent           qa.Intent `json:"intent"`
	OriginalQuestion string    `json:"original_question"`
}

// ErrorAnswerResponse is returned with a 500 when a question could not be
// answered at all.
type ErrorAnswerResponse struct {
	Error      string    `json:"error"`
	Answer     string    `json:"answer"`
	Confidence float64   `json:"confidence"`
	Source     qa.Source `json:"source"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	FAQs     int    `json:"faqs"`
	LoadedAt string `json:"loaded_at,omitempty"`
}
