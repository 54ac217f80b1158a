package service

import (
	"context"
	"errors"
	"strings"

	"college-qa/internal/dto"
	"college-qa/internal/models"
	"college-qa/internal/qa"

	"go.uber.org/zap"
)

var ErrEmptyQuestion = errors.New("question is empty")

const errorAnswer = "Sorry, I encountered an error. Please try again."

// QAService hosts the matching pipeline over the current knowledge snapshot.
type QAService struct {
	knowledge   *KnowledgeService
	synthesizer *qa.Synthesizer
	useIndex    bool
	logger      *zap.Logger
}

func NewQAService(knowledge *KnowledgeService, synthesizer *qa.Synthesizer, useIndex bool, logger *zap.Logger) *QAService {
	return &QAService{
		knowledge:   knowledge,
		synthesizer: synthesizer,
		useIndex:    useIndex,
		logger:      logger,
	}
}

// Ask answers a single question. Only blank questions are rejected; every
// other input produces a response, a fallback in the worst case.
func (s *QAService) Ask(_ context.Context, question string) (*dto.AskResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	// one snapshot for the whole request
	snap := s.knowledge.Snapshot()

	var match qa.MatchResult
	if s.useIndex {
		match = snap.Index.Match(question)
	} else {
		match = qa.FindBestMatch(question, snap.KB.FAQs)
	}
	intent := qa.Classify(question)

	resp := s.synthesizer.Synthesize(question, match, snap.KB.ContactInfo)

	s.logger.Info("Question answered",
		zap.String("source", string(resp.Source)),
		zap.Float64("confidence", resp.Confidence),
		zap.Float64("score", match.Score),
		zap.String("intent", string(intent)),
		zap.String("category", resp.Category),
	)

	return &dto.AskResponse{
		Response:         resp,
		Intent:           intent,
		OriginalQuestion: question,
	}, nil
}

// ErrorResponse is the payload sent when answering failed unexpectedly.
func (s *QAService) ErrorResponse(err error) *dto.ErrorAnswerResponse {
	return &dto.ErrorAnswerResponse{
		Error:      "An error occurred: " + err.Error(),
		Answer:     errorAnswer,
		Confidence: 0,
		Source:     qa.SourceError,
	}
}

func (s *QAService) Suggestions() []string {
	return qa.PopularQuestions()
}

func (s *QAService) FAQs() []models.FAQEntry {
	return s.knowledge.Snapshot().KB.FAQs
}
