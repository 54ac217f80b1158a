package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"college-qa/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validKnowledgeBase = `{
  "faqs": [
    {"question": "What is the application deadline?", "answer": "March 1.", "keywords": ["deadline"], "category": "deadlines"},
    {"question": "How much is tuition?", "answer": "It varies.", "category": "fees"}
  ],
  "contact_info": {"email": "admissions@example.edu"}
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileKnowledgeLoader_Load(t *testing.T) {
	loader := NewFileKnowledgeLoader(writeFile(t, validKnowledgeBase), zap.NewNop())

	kb, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, kb.FAQs, 2)
	assert.Equal(t, "What is the application deadline?", kb.FAQs[0].Question)
	assert.Equal(t, []string{"deadline"}, kb.FAQs[0].Keywords)
	assert.Equal(t, 1, kb.FAQs[1].Position)
	assert.Equal(t, "admissions@example.edu", kb.ContactInfo["email"])
	assert.False(t, kb.LoadedAt.IsZero())
}

func TestFileKnowledgeLoader_MissingFile(t *testing.T) {
	loader := NewFileKnowledgeLoader(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())

	kb, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, kb.FAQs)
	assert.NotNil(t, kb.ContactInfo)
}

func TestParseKnowledgeBase_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"malformed json", `{"faqs": [`, ""},
		{"missing answer", `{"faqs": [{"question": "Q"}]}`, "Answer is required"},
		{"missing question", `{"faqs": [{"answer": "A"}]}`, "Question is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKnowledgeBase([]byte(tt.content))
			require.ErrorIs(t, err, ErrInvalidKnowledgeBase)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestParseKnowledgeBase_EmptyDocument(t *testing.T) {
	kb, err := ParseKnowledgeBase([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, kb.FAQs)
	assert.NotNil(t, kb.ContactInfo)
}

func TestListFAQsQuery(t *testing.T) {
	sql, args, err := listFAQsQuery().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, position, question, answer, keywords, category, created_at FROM faqs ORDER BY position ASC, created_at ASC", sql)
	assert.Empty(t, args)
}

func TestAppendFAQQuery(t *testing.T) {
	faq := &models.FAQEntry{ID: uuid.New(), Question: "Q", Answer: "A", CreatedAt: time.Now()}

	sql, args, err := appendFAQQuery(faq).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "(SELECT COALESCE(MAX(position), -1) + 1 FROM faqs)")
	assert.Contains(t, sql, "RETURNING position")
	assert.Contains(t, sql, "$6")
	require.Len(t, args, 6)
	assert.Equal(t, []string{}, args[3])
}

func TestInsertFAQsQuery_KeepsOrder(t *testing.T) {
	faqs := []models.FAQEntry{{Question: "first", Answer: "1"}, {Question: "second", Answer: "2"}}

	_, args, err := insertFAQsQuery(faqs, time.Now()).ToSql()
	require.NoError(t, err)
	require.Len(t, args, 14)
	assert.Equal(t, 0, args[1])
	assert.Equal(t, "first", args[2])
	assert.Equal(t, 1, args[8])
	assert.Equal(t, "second", args[9])
}

func TestInsertContactQuery_SortedKeys(t *testing.T) {
	_, args, err := insertContactQuery(map[string]string{"phone": "1", "email": "e"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, []any{"email", "e", "phone", "1"}, args)
}

func TestInsertFAQsQuery_StripsInvalidUTF8(t *testing.T) {
	faqs := []models.FAQEntry{{Question: "Fees\xff?", Answer: "caf\xc3\xa9", Keywords: []string{"t\xfeuition"}}}

	_, args, err := insertFAQsQuery(faqs, time.Now()).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "Fees?", args[2])
	assert.Equal(t, "café", args[3])
	assert.Equal(t, []string{"tuition"}, args[4])
}
