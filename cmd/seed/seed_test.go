package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteSeeder(t *testing.T) (*seeder, *sqlx.DB) {
	t.Helper()
	cfg := &config.Config{DB: config.DBConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "trivia.db")}}

	migrateDB, err := sql.Open(cfg.SQLDriverName(), cfg.GetDSN())
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(migrateDB, cfg.DB.Driver))

	db, err := database.NewSQLXDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &seeder{
		tx:         repository.NewTransactionManagerAdapter(db),
		categories: repository.NewCategoryDatabaseAdapter(db),
		questions:  repository.NewQuestionDatabaseAdapter(db),
	}, db
}

func TestSeed_BundledFileIsIdempotent(t *testing.T) {
	f, err := os.Open("../../configs/seed_data/trivia.json")
	require.NoError(t, err)
	defer f.Close()
	data, err := loadSeedFile(f)
	require.NoError(t, err)
	require.Len(t, data.Categories, 6)

	s, db := newSQLiteSeeder(t)
	ctx := context.Background()

	first, err := s.Seed(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 6, first.CategoriesCreated)
	assert.Positive(t, first.QuestionsCreated)

	second, err := s.Seed(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 0, second.CategoriesCreated)
	assert.Equal(t, 6, second.CategoriesSkipped)
	assert.Equal(t, 0, second.QuestionsCreated)

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM questions"))
	assert.Equal(t, first.QuestionsCreated, count)
}

func TestSeed_InvalidQuestionRollsBack(t *testing.T) {
	data, err := loadSeedFile(strings.NewReader(`{"categories":[
		{"type":"Science","questions":[{"question":"Q","answer":"A","difficulty":2}]},
		{"type":"Art","questions":[{"question":"Q","answer":"A","difficulty":9}]}
	]}`))
	require.NoError(t, err)

	s, db := newSQLiteSeeder(t)
	_, err = s.Seed(context.Background(), data)
	assert.ErrorContains(t, err, "invalid question")

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM categories"))
	assert.Equal(t, 0, count, "nothing is stored when one question is invalid")
}

func TestLoadSeedFile_Malformed(t *testing.T) {
	_, err := loadSeedFile(strings.NewReader(`{"categories":`))
	assert.Error(t, err)
}
