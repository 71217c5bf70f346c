package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"
	"trivia-api/internal/repository"

	"go.uber.org/zap"
)

const defaultSeedFilePath = "configs/seed_data/trivia.json"

func main() {
	seedFilePath := flag.String("file", defaultSeedFilePath, "path to the JSON seed file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// logger is not initialized yet
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", *seedFilePath))
	f, err := os.Open(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to open seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}
	data, err := loadSeedFile(f)
	f.Close()
	if err != nil {
		log.Fatal("Failed to read seed data", zap.Error(err))
	}
	log.Info("Successfully loaded seed data", zap.Int("categories_loaded", len(data.Categories)))

	s := &seeder{
		tx:         repository.NewTransactionManagerAdapter(db),
		categories: repository.NewCategoryDatabaseAdapter(db),
		questions:  repository.NewQuestionDatabaseAdapter(db),
	}
	result, err := s.Seed(ctx, data)
	if err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}

	log.Info("Initial data seeding process completed.",
		zap.Int("categories_created", result.CategoriesCreated),
		zap.Int("categories_skipped", result.CategoriesSkipped),
		zap.Int("questions_created", result.QuestionsCreated),
	)
}
