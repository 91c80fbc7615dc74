package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chatdesk/internal/api"
	"chatdesk/internal/api/handlers"
	"chatdesk/internal/repository"
	"chatdesk/internal/service"
	"chatdesk/pkg/anthropic"
	"chatdesk/pkg/auth"
	"chatdesk/pkg/cohere"
	"chatdesk/pkg/config"
	"chatdesk/pkg/logger"
	"chatdesk/pkg/pinecone"
	"chatdesk/pkg/postgres"
	"chatdesk/pkg/slack"

	"go.uber.org/zap"
)

// @title ChatDesk API
// @version 1.0
// @description Support-chatbot backend: knowledge ingestion, retrieval and escalation

// @contact.name API Support
// @contact.email support@chatdesk.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

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
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting ChatDesk service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	chatbotRepo := repository.NewChatbotRepository(db, appLogger)
	conversationRepo := repository.NewConversationRepository(db, appLogger)
	messageRepo := repository.NewMessageRepository(db, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)

	// External service clients: constructed once, shared read-only
	embedClient := cohere.NewClient(&cfg.Cohere)
	indexClient := pinecone.NewClient(&cfg.Pinecone)
	generationClient := anthropic.NewClient(&cfg.Anthropic)
	notifyClient := slack.NewClient(cfg.Slack.Timeout)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)

	// Initialize services
	retrievalService := service.NewRetrievalService(embedClient, indexClient, &cfg.RAG, appLogger)

	ingestionService, err := service.NewIngestionService(knowledgeRepo, embedClient, indexClient, &cfg.RAG, 0, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ingestion service", zap.Error(err))
	}
	defer ingestionService.Close()

	chatService := service.NewChatService(chatbotRepo, conversationRepo, messageRepo, retrievalService, generationClient, notifyClient, &cfg.RAG, appLogger)
	chatbotService := service.NewChatbotService(chatbotRepo, knowledgeRepo, appLogger)

	// Initialize handlers
	chatbotHandler := handlers.NewChatbotHandler(chatbotService, appLogger)
	knowledgeHandler := handlers.NewKnowledgeHandler(ingestionService, chatbotService, cfg.Upload.MaxFileSize, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)

	// Setup router
	app := api.SetupRouter(chatbotHandler, knowledgeHandler, chatHandler, jwtManager, cfg, appLogger)

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
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
