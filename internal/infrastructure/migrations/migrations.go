// Package migrations aplica el esquema con goose a partir de SQL embebido por dialecto.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/jhoicas/stock-ledger/pkg/logger"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Dialectos soportados.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Up aplica las migraciones pendientes del dialecto sobre db.
func Up(ctx context.Context, db *sql.DB, dialect string, log *logger.Logger) error {
	var gooseDialect goose.Dialect
	switch dialect {
	case Postgres:
		gooseDialect = goose.DialectPostgres
	case SQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return fmt.Errorf("migraciones: dialecto desconocido %q", dialect)
	}

	fsys, err := fs.Sub(embedded, dialect)
	if err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return fmt.Errorf("migraciones: crear provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migraciones: up: %w", err)
	}
	if log != nil {
		for _, r := range results {
			log.Info().
				Str("dialect", dialect).
				Int64("version", r.Source.Version).
				Dur("duration", r.Duration).
				Msg("migración aplicada")
		}
	}
	return nil
}
