package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/migrations"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

var t0 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

type SQLiteSuite struct {
	suite.Suite
	ctx context.Context
	db  *sqlx.DB
}

func TestSQLiteSuite(t *testing.T) {
	suite.Run(t, new(SQLiteSuite))
}

func (s *SQLiteSuite) SetupTest() {
	s.ctx = context.Background()
	db, err := sqlite.Open(s.ctx, ":memory:")
	s.Require().NoError(err)
	s.Require().NoError(migrations.Up(s.ctx, db.DB, migrations.SQLite, logger.Nop()))
	s.db = db
}

func (s *SQLiteSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func (s *SQLiteSuite) TestMovimientos_AppendYLectura() {
	repo := sqlite.NewMovementRepository(s.db)
	s.Require().NoError(repo.Append(s.ctx, &entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "A", Quantity: 10, Timestamp: t0}))
	s.Require().NoError(repo.Append(s.ctx, &entity.Movement{ID: "M2", ProductID: "P1", FromLocation: "A", ToLocation: "B", Quantity: 4, Timestamp: t0.Add(time.Minute)}))

	got, err := repo.GetByID(s.ctx, "M2")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("A", got.FromLocation)
	s.Equal("B", got.ToLocation)
	s.Equal(int64(4), got.Quantity)
	s.True(got.Timestamp.Equal(t0.Add(time.Minute)))

	first, err := repo.GetByID(s.ctx, "M1")
	s.Require().NoError(err)
	s.Empty(first.FromLocation)

	missing, err := repo.GetByID(s.ctx, "NOPE")
	s.NoError(err)
	s.Nil(missing)

	n, err := repo.Count(s.ctx)
	s.NoError(err)
	s.Equal(2, n)
}

func (s *SQLiteSuite) TestMovimientos_DuplicadoDevuelveErrDuplicate() {
	repo := sqlite.NewMovementRepository(s.db)
	m := &entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "A", Quantity: 1, Timestamp: t0}
	s.Require().NoError(repo.Append(s.ctx, m))
	s.ErrorIs(repo.Append(s.ctx, m), domain.ErrDuplicate)
}

func (s *SQLiteSuite) TestMovimientos_OrdenDeInsercionYRecientes() {
	repo := sqlite.NewMovementRepository(s.db)
	s.Require().NoError(repo.Append(s.ctx, &entity.Movement{ID: "M3", ProductID: "P1", ToLocation: "A", Quantity: 1, Timestamp: t0}))
	s.Require().NoError(repo.Append(s.ctx, &entity.Movement{ID: "M1", ProductID: "P2", ToLocation: "A", Quantity: 1, Timestamp: t0.Add(time.Hour)}))
	s.Require().NoError(repo.Append(s.ctx, &entity.Movement{ID: "M2", ProductID: "P1", ToLocation: "A", Quantity: 1, Timestamp: t0.Add(500 * time.Millisecond)}))

	all, err := repo.All(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"M3", "M1", "M2"}, ids(all))

	p1, err := repo.ListByProduct(s.ctx, "P1")
	s.Require().NoError(err)
	s.Equal([]string{"M3", "M2"}, ids(p1))

	recent, err := repo.ListRecent(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal([]string{"M1", "M2"}, ids(recent))

	everything, err := repo.ListRecent(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(everything, 3)
}

func (s *SQLiteSuite) TestMovimientos_UpdateYDelete() {
	repo := sqlite.NewMovementRepository(s.db)
	s.Require().NoError(repo.Append(s.ctx, &entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "A", Quantity: 1, Timestamp: t0}))

	s.Require().NoError(repo.Update(s.ctx, &entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "B", Quantity: 7, Timestamp: t0}))
	got, err := repo.GetByID(s.ctx, "M1")
	s.Require().NoError(err)
	s.Equal("B", got.ToLocation)
	s.Equal(int64(7), got.Quantity)

	s.Require().NoError(repo.Delete(s.ctx, "M1"))
	s.ErrorIs(repo.Delete(s.ctx, "M1"), domain.ErrNotFound)
	s.ErrorIs(repo.Update(s.ctx, &entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "B", Quantity: 1, Timestamp: t0}), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func (s *SQLiteSuite) TestTxRunner_ErrorHaceRollback() {
	runner := sqlite.NewTxRunner(s.db)
	boom := errors.New("boom")
	err := runner.Run(s.ctx, []string{"P1"}, func(ledger repository.MovementRepository) error {
		if err := ledger.Append(s.ctx, &entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "A", Quantity: 1, Timestamp: t0}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	n, err := sqlite.NewMovementRepository(s.db).Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *SQLiteSuite) TestTxRunner_CommitPersiste() {
	runner := sqlite.NewTxRunner(s.db)
	err := runner.Run(s.ctx, []string{"P1"}, func(ledger repository.MovementRepository) error {
		return ledger.Append(s.ctx, &entity.Movement{ID: "M1", ProductID: "P1", ToLocation: "A", Quantity: 1, Timestamp: t0})
	})
	s.Require().NoError(err)

	got, err := sqlite.NewMovementRepository(s.db).GetByID(s.ctx, "M1")
	s.Require().NoError(err)
	s.NotNil(got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo y usuarios
// ──────────────────────────────────────────────────────────────────────────────

func (s *SQLiteSuite) TestProductos_CRUD() {
	repo := sqlite.NewProductRepository(s.db)
	s.Require().NoError(repo.Create(s.ctx, &entity.Product{ID: "P2", Name: "Silla", Category: "Muebles", CreatedAt: t0, UpdatedAt: t0}))
	s.Require().NoError(repo.Create(s.ctx, &entity.Product{ID: "P1", Name: "Laptop", CreatedAt: t0, UpdatedAt: t0}))
	s.ErrorIs(repo.Create(s.ctx, &entity.Product{ID: "P1", Name: "Otra", CreatedAt: t0, UpdatedAt: t0}), domain.ErrDuplicate)

	list, err := repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("P1", list[0].ID)

	s.Require().NoError(repo.Update(s.ctx, &entity.Product{ID: "P1", Name: "Portátil", UpdatedAt: t0.Add(time.Hour)}))
	got, err := repo.GetByID(s.ctx, "P1")
	s.Require().NoError(err)
	s.Equal("Portátil", got.Name)

	s.Require().NoError(repo.Delete(s.ctx, "P1"))
	got, err = repo.GetByID(s.ctx, "P1")
	s.NoError(err)
	s.Nil(got)
}

func (s *SQLiteSuite) TestUbicaciones_CRUD() {
	repo := sqlite.NewLocationRepository(s.db)
	s.Require().NoError(repo.Create(s.ctx, &entity.Location{ID: "L1", Name: "Bodega", CreatedAt: t0, UpdatedAt: t0}))
	s.ErrorIs(repo.Create(s.ctx, &entity.Location{ID: "L1", Name: "Otra", CreatedAt: t0, UpdatedAt: t0}), domain.ErrDuplicate)

	n, err := repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	s.ErrorIs(repo.Delete(s.ctx, "L9"), domain.ErrNotFound)
}

func (s *SQLiteSuite) TestUsuarios_Unicidad() {
	repo := sqlite.NewUserRepository(s.db)
	u := &entity.User{ID: "u1", Username: "ana", Email: "ana@example.com", PasswordHash: "x", Role: entity.RoleAdmin, CreatedAt: t0}
	s.Require().NoError(repo.Create(s.ctx, u))

	s.ErrorIs(repo.Create(s.ctx, &entity.User{ID: "u2", Username: "ana", Email: "otra@example.com", PasswordHash: "x", Role: entity.RoleOperator, CreatedAt: t0}), domain.ErrUsernameTaken)
	s.ErrorIs(repo.Create(s.ctx, &entity.User{ID: "u3", Username: "bea", Email: "ANA@example.com", PasswordHash: "x", Role: entity.RoleOperator, CreatedAt: t0}), domain.ErrEmailAlreadyExists)

	got, err := repo.GetByEmail(s.ctx, "Ana@Example.com")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("u1", got.ID)
}

func ids(ms []*entity.Movement) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}
