package models

import (
	"time"

	"github.com/google/uuid"
)

// FAQEntry is one curated question/answer record.
type FAQEntry struct {
	ID        uuid.UUID `db:"id" json:"-"`
	Question  string    `db:"question" json:"question" validate:"required"`
	Answer    string    `db:"answer" json:"answer" validate:"required"`
	Keywords  []string  `db:"keywords" json:"keywords"`
	Category  string    `db:"category" json:"category"`
	Position  int       `db:"position" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// KnowledgeBase is an immutable snapshot of the FAQ set. Entry order is the
// ranking tie-break and must be preserved by every loader.
type KnowledgeBase struct {
	FAQs        []FAQEntry        `json:"faqs" validate:"dive"`
	ContactInfo map[string]string `json:"contact_info,omitempty"`
	LoadedAt    time.Time         `json:"-"`
}

// Len returns the number of FAQ entries, tolerating a nil snapshot.
func (kb *KnowledgeBase) Len() int {
	if kb == nil {
		return 0
	}
	return len(kb.FAQs)
}
