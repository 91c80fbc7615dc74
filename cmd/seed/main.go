package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"chatdesk/internal/models"
	"chatdesk/internal/repository"
	"chatdesk/internal/service"
	"chatdesk/pkg/auth"
	"chatdesk/pkg/cohere"
	"chatdesk/pkg/config"
	"chatdesk/pkg/logger"
	"chatdesk/pkg/pinecone"
	"chatdesk/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeds a demo chatbot and ingests every supported file from the data
// directory through the real pipeline. Useful for local development and for
// exercising retrieval against a live index.
func main() {
	dataDir := flag.String("data", filepath.Join("cmd", "seed", "data"), "directory with knowledge files to ingest")
	botName := flag.String("name", "Demo Support Bot", "name of the seeded chatbot")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	chatbotRepo := repository.NewChatbotRepository(db, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)

	embedClient := cohere.NewClient(&cfg.Cohere)
	indexClient := pinecone.NewClient(&cfg.Pinecone)

	ingestionService, err := service.NewIngestionService(knowledgeRepo, embedClient, indexClient, &cfg.RAG, 0, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ingestion service", zap.Error(err))
	}
	defer ingestionService.Close()

	userID := uuid.New()
	if raw := os.Getenv("SEED_USER_ID"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			appLogger.Fatal("Invalid SEED_USER_ID", zap.Error(err))
		}
		userID = parsed
	}

	now := time.Now()
	bot := &models.Chatbot{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      *botName,
		Status:    models.ChatbotStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := chatbotRepo.Create(ctx, bot); err != nil {
		appLogger.Fatal("Failed to create chatbot", zap.Error(err))
	}
	appLogger.Info("Chatbot created",
		zap.String("bot_id", bot.ID.String()),
		zap.String("user_id", userID.String()),
	)

	entries, err := os.ReadDir(*dataDir)
	if err != nil {
		appLogger.Fatal("Failed to read data directory", zap.String("dir", *dataDir), zap.Error(err))
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(*dataDir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			appLogger.Error("Failed to read file", zap.String("path", path), zap.Error(err))
			continue
		}

		resp, err := ingestionService.IngestFile(ctx, bot.ID, entry.Name(), content)
		if err != nil {
			appLogger.Error("Failed to ingest file", zap.String("path", path), zap.Error(err))
			continue
		}
		appLogger.Info("File ingested",
			zap.String("file", entry.Name()),
			zap.Int("items", resp.Stats.TotalItems),
			zap.Int("chunks", resp.Stats.ChunksCreated),
			zap.Int("errors", resp.Stats.Errors),
		)
	}

	// A ready-to-use dashboard token makes manual testing less painful.
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)
	token, err := jwtManager.Generate(userID.String(), "seed@chatdesk.local")
	if err != nil {
		appLogger.Fatal("Failed to generate token", zap.Error(err))
	}

	fmt.Printf("\nSeeding complete.\n  bot id: %s\n  token:  %s\n", bot.ID, token)
}
