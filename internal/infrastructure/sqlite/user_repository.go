package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type userRow struct {
	ID           string `db:"id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	CreatedAt    string `db:"created_at"`
}

// UserRepo implementación del puerto UserRepository sobre SQLite.
type UserRepo struct {
	q querier
}

func NewUserRepository(q querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario. SQLite nombra la columna en el mensaje de la violación.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, formatTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			msg := err.Error()
			switch {
			case strings.Contains(msg, "users.username"):
				return domain.ErrUsernameTaken
			case strings.Contains(msg, "users.email"):
				return domain.ErrEmailAlreadyExists
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE username = ?`, username)
}

// GetByEmail compara sin distinguir mayúsculas (columna COLLATE NOCASE).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE email = ?`, email)
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT id, username, email, password_hash, role, created_at FROM users `+where, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	created, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		CreatedAt:    created,
	}, nil
}
