package qa

import (
	"testing"

	"college-qa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRandom(i int) SynthesizerOption {
	return WithRandom(func(int) int { return i })
}

func TestSynthesize_HighConfidence(t *testing.T) {
	entry := &models.FAQEntry{
		Question: "What is the application deadline?",
		Answer:   "March 1.",
		Category: "deadlines",
	}
	s := NewSynthesizer()

	resp := s.Synthesize("deadline?", MatchResult{Entry: entry, Score: 0.5}, nil)

	assert.Equal(t, SourceKnowledgeBase, resp.Source)
	assert.Equal(t, 0.5, resp.Confidence)
	assert.Equal(t, "March 1.", resp.Answer)
	assert.Equal(t, "deadlines", resp.Category)
	assert.Equal(t, RelatedSuggestions("deadlines"), resp.Suggestions)
	assert.Nil(t, resp.ContactInfo)
}

func TestSynthesize_LowConfidence(t *testing.T) {
	entry := &models.FAQEntry{
		Question: "How Much Is The Tuition Fee?",
		Answer:   "It depends on the program.",
		Category: "fees",
	}
	s := NewSynthesizer()

	resp := s.Synthesize("cost", MatchResult{Entry: entry, Score: 0.2345}, nil)

	assert.Equal(t, SourceKnowledgeBaseLowConfidence, resp.Source)
	assert.Equal(t, 0.23, resp.Confidence)
	assert.Equal(t, "I think you're asking about how much is the tuition fee??\n\nIt depends on the program.", resp.Answer)
	assert.Equal(t, "fees", resp.Category)
	assert.Equal(t, RelatedSuggestions("fees"), resp.Suggestions)
}

func TestSynthesize_ThresholdBoundary(t *testing.T) {
	entry := &models.FAQEntry{Question: "Q", Answer: "A", Category: "programs"}
	s := NewSynthesizer()

	resp := s.Synthesize("q", MatchResult{Entry: entry, Score: HighConfidenceThreshold}, nil)
	assert.Equal(t, SourceKnowledgeBaseLowConfidence, resp.Source)
}

func TestSynthesize_Fallback(t *testing.T) {
	contact := map[string]string{"email": "admissions@example.edu"}

	tests := []struct {
		name  string
		match MatchResult
	}{
		{"below threshold", MatchResult{Score: 0.05}},
		{"no match", MatchResult{}},
		{"entry with too low score", MatchResult{Entry: &models.FAQEntry{Answer: "x"}, Score: 0.05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSynthesizer(fixedRandom(2))
			resp := s.Synthesize("???", tt.match, contact)

			assert.Equal(t, SourceFallback, resp.Source)
			assert.Zero(t, resp.Confidence)
			assert.Equal(t, "unknown", resp.Category)
			assert.Equal(t, FallbackAnswers()[2], resp.Answer)
			assert.Equal(t, GeneralSuggestions(), resp.Suggestions)
			require.NotNil(t, resp.ContactInfo)
			assert.Equal(t, ContactInfo(contact), *resp.ContactInfo)
		})
	}
}

func TestSynthesize_FallbackDrawsFromFixedSet(t *testing.T) {
	s := NewSynthesizer()
	answers := FallbackAnswers()
	require.Len(t, answers, 5)

	for range 50 {
		resp := s.Synthesize("", MatchResult{}, nil)
		assert.Contains(t, answers, resp.Answer)
		require.NotNil(t, resp.ContactInfo)
		assert.Empty(t, *resp.ContactInfo)
	}
}

func TestSynthesize_OutOfRangeRandomFallsBackToFirst(t *testing.T) {
	s := NewSynthesizer(fixedRandom(99))
	resp := s.Synthesize("", MatchResult{}, nil)
	assert.Equal(t, FallbackAnswers()[0], resp.Answer)
}

func TestSynthesize_EmptyCategory(t *testing.T) {
	entry := &models.FAQEntry{Question: "Q", Answer: "A"}
	resp := NewSynthesizer().Synthesize("q", MatchResult{Entry: entry, Score: 0.9}, nil)

	assert.Equal(t, "general", resp.Category)
	assert.Equal(t, RelatedSuggestions("general"), resp.Suggestions)
}

func TestRelatedSuggestions(t *testing.T) {
	general := RelatedSuggestions("general")
	require.NotEmpty(t, general)

	for _, category := range []string{"", "unknown", "deadline", "contact", "requirements"} {
		assert.NotPanics(t, func() {
			assert.Equal(t, general, RelatedSuggestions(category), "category %q", category)
		})
	}

	assert.NotEqual(t, general, RelatedSuggestions("fees"))
	assert.NotEqual(t, general, GeneralSuggestions())
}

func TestRelatedSuggestions_ReturnsCopy(t *testing.T) {
	list := RelatedSuggestions("fees")
	list[0] = "mutated"
	assert.NotEqual(t, "mutated", RelatedSuggestions("fees")[0])
}
