package handlers

import (
	"errors"
	"strings"

	"college-qa/internal/dto"
	"college-qa/internal/models"
	"college-qa/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

type AdminHandler struct {
	authService *service.AuthService
	knowledge   *service.KnowledgeService
	logger      *zap.Logger
}

func NewAdminHandler(authService *service.AuthService, knowledge *service.KnowledgeService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		knowledge:   knowledge,
		logger:      logger,
	}
}

// Enabled reports whether admin routes should be served at all.
func (h *AdminHandler) Enabled() bool {
	return h.authService.Enabled()
}

// Login godoc
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/admin/auth/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		h.logger.Error("Login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Login failed",
		})
	}

	return c.JSON(resp)
}

// RefreshToken godoc
// @Summary Refresh admin access token
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/admin/auth/refresh [post]
func (h *AdminHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid refresh token",
			})
		}
		h.logger.Error("Token refresh failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Token refresh failed",
		})
	}

	return c.JSON(resp)
}

// Reload godoc
// @Summary Reload the knowledge base
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/reload [post]
func (h *AdminHandler) Reload(c *fiber.Ctx) error {
	if err := h.knowledge.Reload(c.Context()); err != nil {
		h.logger.Error("Knowledge base reload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Reload failed: " + err.Error(),
		})
	}

	h.logger.Info("Knowledge base reloaded by admin", zap.Any("username", c.Locals("username")))
	return c.JSON(dto.HealthResponse{Status: "reloaded", FAQs: h.knowledge.Snapshot().KB.Len()})
}

// CreateFAQ godoc
// @Summary Append an FAQ entry
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateFAQRequest true "FAQ entry"
// @Success 201 {object} dto.FAQResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/admin/faqs [post]
func (h *AdminHandler) CreateFAQ(c *fiber.Ctx) error {
	var req dto.CreateFAQRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	faq := &models.FAQEntry{
		Question: req.Question,
		Answer:   req.Answer,
		Keywords: req.Keywords,
		Category: req.Category,
	}
	if err := h.knowledge.AddFAQ(c.Context(), faq); err != nil {
		if errors.Is(err, service.ErrReadOnlyKnowledgeBase) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Knowledge base is read-only with the current source",
			})
		}
		h.logger.Error("Failed to create FAQ", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create FAQ",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewFAQResponse(*faq))
}

// parseAndValidate returns a *fiber.Error that the app's error handler
// renders as a 400.
func parseAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return fiber.NewError(fiber.StatusBadRequest, "Invalid fields: "+strings.Join(fields, ", "))
	}
	return nil
}
