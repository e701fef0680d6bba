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

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
)

type productRow struct {
	ProductID string `db:"product_id"`
	Name      string `db:"name"`
	Category  string `db:"category"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (r productRow) toEntity() (*entity.Product, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Product{ID: r.ProductID, Name: r.Name, Category: r.Category, CreatedAt: created, UpdatedAt: updated}, nil
}

// ProductRepo implementación del puerto ProductRepository sobre SQLite.
type ProductRepo struct {
	q querier
}

// NewProductRepository construye el adaptador. Pasar db o tx.
func NewProductRepository(q querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO products (product_id, name, category, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Category, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT product_id, name, category, created_at, updated_at FROM products WHERE product_id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity()
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET name = ?, category = ?, updated_at = ? WHERE product_id = ?`,
		p.Name, p.Category, formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireAffected(res)
}

// List lista productos ordenados por ID.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, `SELECT product_id, name, category, created_at, updated_at FROM products ORDER BY product_id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Delete elimina un producto. Los movimientos que lo referencian se conservan.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE product_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireAffected(res)
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

type locationRow struct {
	LocationID string `db:"location_id"`
	Name       string `db:"name"`
	CreatedAt  string `db:"created_at"`
	UpdatedAt  string `db:"updated_at"`
}

func (r locationRow) toEntity() (*entity.Location, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Location{ID: r.LocationID, Name: r.Name, CreatedAt: created, UpdatedAt: updated}, nil
}

// LocationRepo implementación del puerto LocationRepository sobre SQLite.
type LocationRepo struct {
	q querier
}

func NewLocationRepository(q querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO locations (location_id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		l.ID, l.Name, formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	var row locationRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT location_id, name, created_at, updated_at FROM locations WHERE location_id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return row.toEntity()
}

func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	res, err := r.q.ExecContext(ctx, `UPDATE locations SET name = ?, updated_at = ? WHERE location_id = ?`,
		l.Name, formatTime(l.UpdatedAt), l.ID)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return requireAffected(res)
}

func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	var rows []locationRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, `SELECT location_id, name, created_at, updated_at FROM locations ORDER BY location_id`); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	out := make([]*entity.Location, 0, len(rows))
	for _, row := range rows {
		l, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM locations WHERE location_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return requireAffected(res)
}

func (r *LocationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM locations`); err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}
