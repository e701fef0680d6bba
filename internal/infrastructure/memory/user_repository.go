package memory

import (
	"context"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// UserRepository implementa repository.UserRepository en memoria.
// El email se indexa en minúsculas.
type UserRepository struct {
	s *Store
}

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

var _ repository.UserRepository = (*UserRepository)(nil)

// Create inserta el usuario. memdb no rechaza claves únicas repetidas, por eso se consultan antes.
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.s.write(func(txn *memdb.Txn) error {
		checks := []struct {
			index string
			arg   string
			err   error
		}{
			{"id", u.ID, domain.ErrDuplicate},
			{"username", u.Username, domain.ErrUsernameTaken},
			{"email", u.Email, domain.ErrEmailAlreadyExists},
		}
		for _, c := range checks {
			existing, err := txn.First(tableUsers, c.index, c.arg)
			if err != nil {
				return err
			}
			if existing != nil {
				return c.err
			}
		}
		cp := *u
		return txn.Insert(tableUsers, &cp)
	})
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	return getOne[entity.User](r.s, tableUsers, "id", id)
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return getOne[entity.User](r.s, tableUsers, "username", username)
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return getOne[entity.User](r.s, tableUsers, "email", email)
}
