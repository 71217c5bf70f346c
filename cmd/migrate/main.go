package main

import (
	"database/sql"
	"fmt"
	"os"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	open := func() (database.Migrator, error) {
		db, err := sql.Open(cfg.SQLDriverName(), cfg.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open %s database: %w", cfg.DB.Driver, err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DB.Driver, err)
		}
		m, err := database.NewMigrator(db, cfg.DB.Driver)
		if err != nil {
			db.Close()
			return nil, err
		}
		return m, nil
	}

	if err := newRootCommand(open).Execute(); err != nil {
		os.Exit(1)
	}
}
