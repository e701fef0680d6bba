package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `movement_id, product_id, from_location, to_location, qty, moved_at`

// MovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// El orden de inserción lo da la columna seq (BIGSERIAL).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append inserta el movimiento. ErrDuplicate si movement_id ya existe.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (movement_id, product_id, from_location, to_location, qty, moved_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, nullable(m.FromLocation), nullable(m.ToLocation), m.Quantity, m.Timestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// All devuelve el ledger completo en orden de inserción.
func (r *MovementRepo) All(ctx context.Context) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements ORDER BY seq`)
}

// ListByProduct devuelve los movimientos de un producto en orden de inserción.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements WHERE product_id = $1 ORDER BY seq`, productID)
}

// ListRecent del más reciente al más antiguo.
func (r *MovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error) {
	if limit <= 0 {
		return r.list(ctx, `SELECT `+movementColumns+` FROM movements ORDER BY moved_at DESC, seq DESC`)
	}
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements ORDER BY moved_at DESC, seq DESC LIMIT $1`, limit)
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	row := r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE movement_id = $1`, id)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	query := `
		UPDATE movements
		SET product_id = $2, from_location = $3, to_location = $4, qty = $5, moved_at = $6
		WHERE movement_id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, nullable(m.FromLocation), nullable(m.ToLocation), m.Quantity, m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movements WHERE movement_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovementRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m        entity.Movement
		from, to *string
	)
	if err := row.Scan(&m.ID, &m.ProductID, &from, &to, &m.Quantity, &m.Timestamp); err != nil {
		return nil, err
	}
	m.FromLocation = deref(from)
	m.ToLocation = deref(to)
	return &m, nil
}
