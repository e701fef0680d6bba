// Package sqlite implementa los repositorios sobre SQLite (modernc, sin cgo) con sqlx.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// tsLayout ancho fijo en UTC para que el orden lexicográfico coincida con el cronológico.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Open abre la base SQLite. path ":memory:" crea una base en memoria.
// Una sola conexión: SQLite serializa escrituras y la base en memoria vive en esa conexión.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	}
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

// querier es lo común entre *sqlx.DB y *sqlx.Tx.
type querier interface {
	sqlx.ExtContext
}

func formatTime(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t, nil
}

// isUniqueViolation detecta violaciones de UNIQUE o PRIMARY KEY.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
