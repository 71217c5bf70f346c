package repository

import (
	"context"
	"database/sql"
	"strings"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
}

// insertReturningID runs an INSERT written with "?" placeholders and returns the generated id.
// Oracle has no RETURNING result set, so the id comes back through an out bind.
func insertReturningID(ctx context.Context, exec DBTX, driverName, query string, args ...interface{}) (int64, error) {
	var id int64
	if driverName == "oracle" {
		args = append(args, sql.Out{Dest: &id})
		if _, err := exec.ExecContext(ctx, exec.Rebind(query+" RETURNING id INTO ?"), args...); err != nil {
			return 0, err
		}
		return id, nil
	}
	if err := exec.GetContext(ctx, &id, exec.Rebind(query+" RETURNING id"), args...); err != nil {
		return 0, err
	}
	return id, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern matching term anywhere.
// Used together with ESCAPE '\'. asciiOnly folds A-Z only, matching SQLite's LOWER(),
// which leaves non-ASCII letters untouched.
func containsPattern(term string, asciiOnly bool) string {
	if asciiOnly {
		term = strings.Map(func(r rune) rune {
			if r >= 'A' && r <= 'Z' {
				return r + ('a' - 'A')
			}
			return r
		}, term)
	} else {
		term = strings.ToLower(term)
	}
	return "%" + likeEscaper.Replace(term) + "%"
}
