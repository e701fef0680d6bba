package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// En modo serializado toma pg_advisory_xact_lock por producto antes de llamar a fn;
// los locks se liberan con el Commit o Rollback.
type TxRunner struct {
	pool       *pgxpool.Pool
	serialized bool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, serialized bool) *TxRunner {
	return &TxRunner{pool: pool, serialized: serialized}
}

// Run inicia una transacción, bloquea los productos, ejecuta fn con el ledger atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, productIDs []string, fn func(ledger repository.MovementRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.serialized {
		// Orden fijo para que dos transacciones con los mismos productos no se bloqueen mutuamente
		for _, id := range sortedUnique(productIDs) {
			if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, id); err != nil {
				return fmt.Errorf("lock producto %s: %w", id, err)
			}
		}
	}

	if err := fn(NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func sortedUnique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
