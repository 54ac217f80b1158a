package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"deadline", "What is the deadline for applying?", IntentDeadline},
		{"no keywords", "hello there", IntentGeneral},
		{"empty", "", IntentGeneral},
		{"fees", "How much does tuition cost?", IntentFees},
		{"substring inside word", "Can I reschedule?", IntentGeneral},
		{"substring counts", "Tell me about your programming major", IntentPrograms},
		{"keyword counted once", "fee fee fee tuition and a transcript", IntentFees},
		// deadline and documents both score 1, deadline is declared first
		{"tie goes to first declared", "deadline for the transcript", IntentDeadline},
		{"case insensitive", "PHONE NUMBER AND EMAIL", IntentContact},
		{"requirements", "What GPA score do I need?", IntentRequirements},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}
