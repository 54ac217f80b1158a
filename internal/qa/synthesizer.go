package qa

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Source tells the caller which tier produced an answer.
type Source string

const (
	SourceKnowledgeBase              Source = "knowledge_base"
	SourceKnowledgeBaseLowConfidence Source = "knowledge_base_low_confidence"
	SourceFallback                   Source = "fallback"
	SourceError                      Source = "error"
)

const unknownCategory = "unknown"

// ContactInfo is the knowledge base's contact mapping as shown to users.
type ContactInfo map[string]string

// Response is the answer payload for one question.
type Response struct {
	Answer      string       `json:"answer"`
	Confidence  float64      `json:"confidence"`
	Category    string       `json:"category"`
	Source      Source       `json:"source"`
	Suggestions []string     `json:"suggestions"`
	ContactInfo *ContactInfo `json:"contact_info,omitempty"`
}

var defaultFallbackAnswers = []string{
	"I'm not sure I understand. Could you rephrase your question?",
	"I don't have information about that specific topic. Try asking about admission deadlines, requirements, or programs.",
	"That's a good question! Currently, I don't have enough information to answer it. Please contact our admission office for detailed assistance.",
	"I'm still learning about college admissions. Could you ask about application processes, fees, or programs?",
	"I don't have the answer to that yet. You might find this information on our website or by contacting admissions.",
}

// FallbackAnswers returns the answers a fallback response is drawn from.
func FallbackAnswers() []string {
	return clone(defaultFallbackAnswers)
}

// Synthesizer turns a MatchResult into a Response. It holds no mutable state
// and is safe for concurrent use as long as its random source is.
type Synthesizer struct {
	intN func(n int) int
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithRandom replaces the source used to pick a fallback answer. intN must
// return a value in [0, n).
func WithRandom(intN func(n int) int) SynthesizerOption {
	return func(s *Synthesizer) {
		if intN != nil {
			s.intN = intN
		}
	}
}

// NewSynthesizer returns a Synthesizer drawing fallbacks from math/rand/v2.
func NewSynthesizer(opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{intN: rand.IntN}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize builds the response for query. contact is only attached to
// fallback responses.
func (s *Synthesizer) Synthesize(query string, match MatchResult, contact map[string]string) Response {
	switch {
	case match.Matched() && match.Score > HighConfidenceThreshold:
		return Response{
			Answer:      match.Entry.Answer,
			Confidence:  roundScore(match.Score),
			Category:    entryCategory(match),
			Source:      SourceKnowledgeBase,
			Suggestions: RelatedSuggestions(match.Entry.Category),
		}
	case match.Matched() && match.Score > MatchThreshold:
		return Response{
			Answer: fmt.Sprintf("I think you're asking about %s?\n\n%s",
				strings.ToLower(match.Entry.Question), match.Entry.Answer),
			Confidence:  roundScore(match.Score),
			Category:    entryCategory(match),
			Source:      SourceKnowledgeBaseLowConfidence,
			Suggestions: RelatedSuggestions(match.Entry.Category),
		}
	default:
		info := ContactInfo{}
		for k, v := range contact {
			info[k] = v
		}
		return Response{
			Answer:      s.pickFallback(),
			Confidence:  0,
			Category:    unknownCategory,
			Source:      SourceFallback,
			Suggestions: GeneralSuggestions(),
			ContactInfo: &info,
		}
	}
}

func (s *Synthesizer) pickFallback() string {
	i := s.intN(len(defaultFallbackAnswers))
	if i < 0 || i >= len(defaultFallbackAnswers) {
		i = 0
	}
	return defaultFallbackAnswers[i]
}

func entryCategory(match MatchResult) string {
	if match.Entry.Category == "" {
		return defaultSuggestionCategory
	}
	return match.Entry.Category
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
