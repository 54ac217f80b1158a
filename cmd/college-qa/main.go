package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"college-qa/internal/api"
	"college-qa/internal/api/handlers"
	"college-qa/internal/qa"
	"college-qa/internal/repository"
	"college-qa/internal/service"
	"college-qa/pkg/auth"
	"college-qa/pkg/config"
	"college-qa/pkg/logger"
	"college-qa/pkg/postgres"

	"go.uber.org/zap"
)

// @title College Admission Q&A API
// @version 1.0
// @description Answers admission questions from a curated FAQ knowledge base
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@college-qa.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting college Q&A service",
		zap.String("knowledge_source", string(cfg.Knowledge.Source)),
		zap.Bool("use_index", cfg.QA.UseIndex),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize knowledge base source
	var (
		loader     service.KnowledgeLoader
		writer     service.FAQWriter
		fileLoader *repository.FileKnowledgeLoader
	)
	switch cfg.Knowledge.Source {
	case config.KnowledgeSourcePostgres:
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		faqRepo := repository.NewFAQRepository(db, appLogger)
		if err := faqRepo.Migrate(ctx); err != nil {
			appLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
		loader, writer = faqRepo, faqRepo
	default:
		fileLoader = repository.NewFileKnowledgeLoader(cfg.Knowledge.Path, appLogger)
		loader = fileLoader
	}

	knowledge := service.NewKnowledgeService(loader, writer, appLogger)
	if err := knowledge.Reload(ctx); err != nil {
		appLogger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	if fileLoader != nil && cfg.Knowledge.Watch {
		go func() {
			if err := knowledge.Watch(ctx, fileLoader.Path()); err != nil {
				appLogger.Error("Knowledge base watcher stopped", zap.Error(err))
			}
		}()
	}

	// Initialize JWT manager
	if cfg.JWT.SecretGenerated {
		appLogger.Warn("JWT_SECRET_KEY is not set, using a random secret; tokens will not survive a restart")
	}
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	qaService := service.NewQAService(knowledge, qa.NewSynthesizer(), cfg.QA.UseIndex, appLogger)
	authService := service.NewAuthService(cfg.Admin, jwtManager, appLogger)

	// Initialize handlers
	qaHandler := handlers.NewQAHandler(qaService, knowledge, appLogger)
	adminHandler := handlers.NewAdminHandler(authService, knowledge, appLogger)

	// Setup router
	app := api.SetupRouter(qaHandler, adminHandler, jwtManager, &cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	cancel()
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
