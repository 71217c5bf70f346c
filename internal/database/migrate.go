package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"trivia-api/internal/config"
	"trivia-api/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// ErrNoVersion is returned by Migrator.Version when no migration has been applied.
var ErrNoVersion = migrate.ErrNilVersion

// Migrator applies the embedded schema migrations for one dialect.
type Migrator interface {
	// Up applies every pending migration.
	Up() error
	// Down rolls back steps migrations; steps <= 0 rolls back all of them.
	Down(steps int) error
	// Version returns the current version and whether the last migration failed half way.
	Version() (version uint, dirty bool, err error)
	// Close releases the migrator and the database handle it was given.
	Close() error
}

// NewMigrator returns the migrator for driver. db must have been opened with that driver.
func NewMigrator(db *sql.DB, driver string) (Migrator, error) {
	switch driver {
	case config.DriverOracle:
		scripts, err := fs.Sub(migrationsFS, "migrations/oracle")
		if err != nil {
			return nil, fmt.Errorf("failed to open oracle migrations: %w", err)
		}
		return newScriptMigrator(db, scripts), nil
	case config.DriverPostgres, config.DriverSQLite:
		return newGolangMigrator(db, driver)
	default:
		return nil, fmt.Errorf("unsupported migration driver %q", driver)
	}
}

// RunMigrations applies every pending migration and closes the migrator.
func RunMigrations(db *sql.DB, driver string) error {
	m, err := NewMigrator(db, driver)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	logger.Get().Info("Migrations completed successfully", zap.String("driver", driver))
	return nil
}

type golangMigrator struct {
	m *migrate.Migrate
}

func newGolangMigrator(db *sql.DB, driver string) (*golangMigrator, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migrations: %w", driver, err)
	}

	var m *migrate.Migrate
	switch driver {
	case config.DriverPostgres:
		instance, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "pgx5", instance)
		if err != nil {
			return nil, fmt.Errorf("failed to create migrator: %w", err)
		}
	case config.DriverSQLite:
		instance, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite3 migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite3", instance)
		if err != nil {
			return nil, fmt.Errorf("failed to create migrator: %w", err)
		}
	}
	return &golangMigrator{m: m}, nil
}

func (g *golangMigrator) Up() error {
	if err := g.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (g *golangMigrator) Down(steps int) error {
	var err error
	if steps <= 0 {
		err = g.m.Down()
	} else {
		err = g.m.Steps(-steps)
	}
	var short migrate.ErrShortLimit
	if err != nil && !errors.Is(err, migrate.ErrNoChange) && !errors.As(err, &short) {
		return err
	}
	return nil
}

func (g *golangMigrator) Version() (uint, bool, error) {
	return g.m.Version()
}

func (g *golangMigrator) Close() error {
	srcErr, dbErr := g.m.Close()
	return errors.Join(srcErr, dbErr)
}
