package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

// scriptMigrator runs NNNNNN_name.{up,down}.sql scripts statement by statement and
// records progress in schema_migrations, using the same table layout as golang-migrate.
type scriptMigrator struct {
	db      *sql.DB
	scripts fs.FS
}

type migrationScript struct {
	version uint
	name    string
	up      string
	down    string
}

func newScriptMigrator(db *sql.DB, scripts fs.FS) *scriptMigrator {
	return &scriptMigrator{db: db, scripts: scripts}
}

func (s *scriptMigrator) Up() error {
	ctx := context.Background()
	current, err := s.checkedVersion()
	if err != nil {
		return err
	}
	migrations, err := s.load()
	if err != nil {
		return err
	}

	for _, mig := range migrations {
		if mig.version <= current {
			continue
		}
		if err := s.apply(ctx, mig.version, mig.up, mig.version); err != nil {
			return fmt.Errorf("could not execute migration %s: %w", mig.up, err)
		}
		logger.Get().Info("Executed migration", zap.String("file", mig.up))
	}
	return nil
}

func (s *scriptMigrator) Down(steps int) error {
	ctx := context.Background()
	current, err := s.checkedVersion()
	if err != nil {
		return err
	}
	migrations, err := s.load()
	if err != nil {
		return err
	}

	rolledBack := 0
	for i := len(migrations) - 1; i >= 0; i-- {
		if steps > 0 && rolledBack == steps {
			break
		}
		mig := migrations[i]
		if mig.version > current {
			continue
		}
		var previous uint
		if i > 0 {
			previous = migrations[i-1].version
		}
		if err := s.apply(ctx, mig.version, mig.down, previous); err != nil {
			return fmt.Errorf("could not execute migration %s: %w", mig.down, err)
		}
		logger.Get().Info("Rolled back migration", zap.String("file", mig.down))
		rolledBack++
	}
	return nil
}

func (s *scriptMigrator) Version() (uint, bool, error) {
	ctx := context.Background()
	if err := s.ensureVersionTable(ctx); err != nil {
		return 0, false, err
	}
	var version int64
	var dirty int
	err := s.db.QueryRowContext(ctx, "SELECT version, dirty FROM schema_migrations").Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, ErrNoVersion
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	return uint(version), dirty != 0, nil
}

func (s *scriptMigrator) Close() error {
	return s.db.Close()
}

// checkedVersion returns the applied version, 0 when none, and refuses a dirty schema.
func (s *scriptMigrator) checkedVersion() (uint, error) {
	version, dirty, err := s.Version()
	if errors.Is(err, ErrNoVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, fmt.Errorf("database is dirty at version %d; fix it manually", version)
	}
	return version, nil
}

// apply marks version dirty, runs the script and then records target as clean.
// A target of 0 clears the table.
func (s *scriptMigrator) apply(ctx context.Context, version uint, file string, target uint) error {
	content, err := fs.ReadFile(s.scripts, file)
	if err != nil {
		return err
	}
	if err := s.setVersion(ctx, version, true); err != nil {
		return err
	}
	for _, stmt := range splitStatements(string(content)) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if target == 0 {
		_, err = s.db.ExecContext(ctx, "DELETE FROM schema_migrations")
		return err
	}
	return s.setVersion(ctx, target, false)
}

func (s *scriptMigrator) setVersion(ctx context.Context, version uint, dirty bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations"); err != nil {
		_ = tx.Rollback()
		return err
	}
	flag := 0
	if dirty {
		flag = 1
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, dirty) VALUES (:1, :2)", int64(version), flag); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *scriptMigrator) ensureVersionTable(ctx context.Context) error {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'").Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to look up schema_migrations: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "CREATE TABLE schema_migrations (version NUMBER(19) NOT NULL, dirty NUMBER(1) NOT NULL)"); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

// load pairs up/down scripts by version, ordered ascending.
func (s *scriptMigrator) load() ([]migrationScript, error) {
	entries, err := fs.ReadDir(s.scripts, ".")
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	byVersion := make(map[uint]*migrationScript)
	for _, entry := range entries {
		name := entry.Name()
		var direction string
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			direction = "up"
		case strings.HasSuffix(name, ".down.sql"):
			direction = "down"
		default:
			continue
		}
		prefix, rest, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("malformed migration file name %s", name)
		}
		version, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed migration version in %s: %w", name, err)
		}
		mig, ok := byVersion[uint(version)]
		if !ok {
			mig = &migrationScript{version: uint(version), name: strings.SplitN(rest, ".", 2)[0]}
			byVersion[uint(version)] = mig
		}
		if direction == "up" {
			mig.up = name
		} else {
			mig.down = name
		}
	}

	migrations := make([]migrationScript, 0, len(byVersion))
	for _, mig := range byVersion {
		if mig.up == "" || mig.down == "" {
			return nil, fmt.Errorf("migration %d (%s) needs both up and down scripts", mig.version, mig.name)
		}
		migrations = append(migrations, *mig)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].version < migrations[j].version })
	return migrations, nil
}

// splitStatements splits a script on semicolons that end a line and drops "--" comment lines.
// Oracle rejects a trailing semicolon in a single statement.
func splitStatements(script string) []string {
	var statements []string
	var current strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(trimmed, ";"))
			statements = append(statements, current.String())
			current.Reset()
			continue
		}
		current.WriteString(trimmed)
		current.WriteString(" ")
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements
}
