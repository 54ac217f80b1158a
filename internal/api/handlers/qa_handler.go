package handlers

import (
	"errors"
	"fmt"
	"time"

	"college-qa/internal/dto"
	"college-qa/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QAHandler struct {
	qaService *service.QAService
	knowledge *service.KnowledgeService
	logger    *zap.Logger
}

func NewQAHandler(qaService *service.QAService, knowledge *service.KnowledgeService, logger *zap.Logger) *QAHandler {
	return &QAHandler{
		qaService: qaService,
		knowledge: knowledge,
		logger:    logger,
	}
}

// Ask godoc
// @Summary Ask a question
// @Description Match a free-text question against the FAQ knowledge base
// @Tags qa
// @Accept json
// @Produce json
// @Param request body dto.AskRequest true "Question"
// @Success 200 {object} dto.AskResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} dto.ErrorAnswerResponse
// @Router /ask [post]
func (h *QAHandler) Ask(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Answering question panicked", zap.Any("panic", r))
			err = c.Status(fiber.StatusInternalServerError).JSON(h.qaService.ErrorResponse(fmt.Errorf("%v", r)))
		}
	}()

	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.qaService.Ask(c.Context(), req.Question)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuestion) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please provide a question",
			})
		}
		h.logger.Error("Failed to answer question", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(h.qaService.ErrorResponse(err))
	}

	return c.JSON(resp)
}

// Suggestions godoc
// @Summary Popular questions
// @Tags qa
// @Produce json
// @Success 200 {object} dto.SuggestionsResponse
// @Router /suggestions [get]
func (h *QAHandler) Suggestions(c *fiber.Ctx) error {
	return c.JSON(dto.SuggestionsResponse{Suggestions: h.qaService.Suggestions()})
}

// ListFAQs godoc
// @Summary List FAQ entries
// @Tags qa
// @Produce json
// @Success 200 {array} dto.FAQResponse
// @Router /api/faqs [get]
func (h *QAHandler) ListFAQs(c *fiber.Ctx) error {
	faqs := h.qaService.FAQs()
	resp := make([]dto.FAQResponse, 0, len(faqs))
	for _, faq := range faqs {
		resp = append(resp, dto.NewFAQResponse(faq))
	}
	return c.JSON(resp)
}

// Health godoc
// @Summary Service health
// @Tags qa
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *QAHandler) Health(c *fiber.Ctx) error {
	kb := h.knowledge.Snapshot().KB
	resp := dto.HealthResponse{Status: "ok", FAQs: kb.Len()}
	if !kb.LoadedAt.IsZero() {
		resp.LoadedAt = kb.LoadedAt.UTC().Format(time.RFC3339)
	}
	return c.JSON(resp)
}
