package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"college-qa/internal/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

var validate = validator.New()

// FileKnowledgeLoader reads the knowledge base from a JSON document of the
// form {"faqs": [...], "contact_info": {...}}.
type FileKnowledgeLoader struct {
	path   string
	logger *zap.Logger
}

func NewFileKnowledgeLoader(path string, logger *zap.Logger) *FileKnowledgeLoader {
	return &FileKnowledgeLoader{
		path:   path,
		logger: logger,
	}
}

// Path returns the file being loaded.
func (l *FileKnowledgeLoader) Path() string {
	return l.path
}

// Load parses and validates the file. A missing file yields an empty
// knowledge base so the service still answers with fallbacks.
func (l *FileKnowledgeLoader) Load(_ context.Context) (*models.KnowledgeBase, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Knowledge base file not found, using empty knowledge base", zap.String("path", l.path))
		return &models.KnowledgeBase{ContactInfo: map[string]string{}, LoadedAt: time.Now()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	kb, err := ParseKnowledgeBase(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}

	l.logger.Info("Knowledge base loaded from file",
		zap.String("path", l.path),
		zap.Int("faqs", len(kb.FAQs)),
	)
	return kb, nil
}

// ParseKnowledgeBase decodes and validates a knowledge base document.
func ParseKnowledgeBase(data []byte) (*models.KnowledgeBase, error) {
	var kb models.KnowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKnowledgeBase, err)
	}
	if err := ValidateKnowledgeBase(&kb); err != nil {
		return nil, err
	}

	for i := range kb.FAQs {
		kb.FAQs[i].Position = i
	}
	if kb.ContactInfo == nil {
		kb.ContactInfo = map[string]string{}
	}
	kb.LoadedAt = time.Now()
	return &kb, nil
}

// ValidateKnowledgeBase checks that every entry has a question and an answer.
func ValidateKnowledgeBase(kb *models.KnowledgeBase) error {
	err := validate.Struct(kb)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidKnowledgeBase, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidKnowledgeBase, strings.Join(messages, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	default:
		return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
}
