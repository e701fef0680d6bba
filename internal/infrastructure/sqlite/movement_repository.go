package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `movement_id, product_id, from_location, to_location, qty, moved_at`

type movementRow struct {
	MovementID   string         `db:"movement_id"`
	ProductID    string         `db:"product_id"`
	FromLocation sql.NullString `db:"from_location"`
	ToLocation   sql.NullString `db:"to_location"`
	Qty          int64          `db:"qty"`
	MovedAt      string         `db:"moved_at"`
}

func (r movementRow) toEntity() (*entity.Movement, error) {
	ts, err := parseTime(r.MovedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Movement{
		ID:           r.MovementID,
		ProductID:    r.ProductID,
		FromLocation: r.FromLocation.String,
		ToLocation:   r.ToLocation.String,
		Quantity:     r.Qty,
		Timestamp:    ts,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// MovementRepo implementación del ledger sobre SQLite (usable con db o tx).
type MovementRepo struct {
	q querier
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(q querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO movements (`+movementColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProductID, nullString(m.FromLocation), nullString(m.ToLocation), m.Quantity, formatTime(m.Timestamp),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) All(ctx context.Context) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements ORDER BY seq`)
}

func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements WHERE product_id = ? ORDER BY seq`, productID)
}

func (r *MovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = -1 // sin límite en SQLite
	}
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements ORDER BY moved_at DESC, seq DESC LIMIT ?`, limit)
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var row movementRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+movementColumns+` FROM movements WHERE movement_id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return row.toEntity()
}

func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE movements SET product_id = ?, from_location = ?, to_location = ?, qty = ?, moved_at = ? WHERE movement_id = ?`,
		m.ProductID, nullString(m.FromLocation), nullString(m.ToLocation), m.Quantity, formatTime(m.Timestamp), m.ID,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	return requireAffected(res)
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM movements WHERE movement_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return requireAffected(res)
}

func (r *MovementRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM movements`); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	var rows []movementRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	out := make([]*entity.Movement, 0, len(rows))
	for _, row := range rows {
		m, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
