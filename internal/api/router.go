package api

import (
	"errors"

	"college-qa/docs"
	"college-qa/internal/api/handlers"
	"college-qa/pkg/auth"
	"college-qa/pkg/config"
	"college-qa/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	qaHandler *handlers.QAHandler,
	adminHandler *handlers.AdminHandler,
	jwtManager *auth.JWTManager,
	cfg *config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				appLogger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // registers the OpenAPI document through init()
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Public routes
	app.Post("/ask", qaHandler.Ask)
	app.Get("/suggestions", qaHandler.Suggestions)
	app.Get("/health", qaHandler.Health)
	app.Get("/api/faqs", qaHandler.ListFAQs)

	// Admin routes exist only when an admin account is configured
	if !adminHandler.Enabled() {
		appLogger.Warn("Admin routes are not registered")
		return app
	}

	admin := app.Group("/api/v1/admin")
	admin.Post("/auth/login", adminHandler.Login)
	admin.Post("/auth/refresh", adminHandler.RefreshToken)

	adminOnly := middleware.AdminOnly(jwtManager, appLogger)
	admin.Post("/reload", adminOnly, adminHandler.Reload)
	admin.Post("/faqs", adminOnly, adminHandler.CreateFAQ)

	return app
}
