package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

var t0 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func mov(id string, qty int64, at time.Time) *entity.Movement {
	return &entity.Movement{ID: id, ProductID: "P1", ToLocation: "A", Quantity: qty, Timestamp: at}
}

// ──────────────────────────────────────────────────────────────────────────────
// MovementRepository
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementRepository_AppendDuplicadoNoCambiaLedger(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMovementRepository(memory.NewStore())

	require.NoError(t, repo.Append(ctx, mov("M1", 5, t0)))
	err := repo.Append(ctx, mov("M1", 99, t0))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(5), all[0].Quantity)
}

func TestMovementRepository_AllConservaOrdenDeInsercion(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMovementRepository(memory.NewStore())
	for _, id := range []string{"M3", "M1", "M2"} {
		require.NoError(t, repo.Append(ctx, mov(id, 1, t0)))
	}
	all, err := repo.All(ctx)
	require.NoError(t, err)
	ids := []string{all[0].ID, all[1].ID, all[2].ID}
	assert.Equal(t, []string{"M3", "M1", "M2"}, ids)
}

func TestMovementRepository_ListRecentMasNuevoPrimero(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMovementRepository(memory.NewStore())
	require.NoError(t, repo.Append(ctx, mov("M1", 1, t0)))
	require.NoError(t, repo.Append(ctx, mov("M2", 1, t0.Add(time.Hour))))
	require.NoError(t, repo.Append(ctx, mov("M3", 1, t0.Add(30*time.Minute))))

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "M2", recent[0].ID)
	assert.Equal(t, "M3", recent[1].ID)
}

func TestMovementRepository_UpdateYDeleteInexistente(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMovementRepository(memory.NewStore())
	assert.ErrorIs(t, repo.Update(ctx, mov("X", 1, t0)), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "X"), domain.ErrNotFound)
}

func TestMovementRepository_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMovementRepository(memory.NewStore())
	require.NoError(t, repo.Append(ctx, mov("M1", 5, t0)))

	got, err := repo.GetByID(ctx, "M1")
	require.NoError(t, err)
	got.Quantity = 1000

	again, err := repo.GetByID(ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), again.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_ErrorDeshaceEscrituras(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewMovementRepository(store)
	require.NoError(t, repo.Append(ctx, mov("M1", 5, t0)))
	require.NoError(t, repo.Append(ctx, mov("M2", 7, t0)))

	runner := memory.NewTxRunner(store, true)
	boom := errors.New("boom")
	err := runner.Run(ctx, []string{"P1"}, func(ledger repository.MovementRepository) error {
		require.NoError(t, ledger.Append(ctx, mov("M3", 1, t0)))
		require.NoError(t, ledger.Update(ctx, mov("M1", 50, t0)))
		require.NoError(t, ledger.Delete(ctx, "M2"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "M1", all[0].ID)
	assert.Equal(t, int64(5), all[0].Quantity)
	assert.Equal(t, "M2", all[1].ID)
}

func TestTxRunner_ExitoConserva(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store, true)
	err := runner.Run(ctx, []string{"P1", "P1"}, func(ledger repository.MovementRepository) error {
		return ledger.Append(ctx, mov("M1", 1, t0))
	})
	require.NoError(t, err)
	n, err := memory.NewMovementRepository(store).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo y usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(memory.NewStore())

	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "P2", Name: "Chair"}))
	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "P1", Name: "Laptop"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Product{ID: "P1"}), domain.ErrDuplicate)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "P1", list[0].ID)

	require.NoError(t, repo.Update(ctx, &entity.Product{ID: "P1", Name: "Notebook PC"}))
	p, err := repo.GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "Notebook PC", p.Name)

	require.NoError(t, repo.Delete(ctx, "P1"))
	p, err = repo.GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.ErrorIs(t, repo.Delete(ctx, "P1"), domain.ErrNotFound)
}

func TestUserRepository_Unicidad(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository(memory.NewStore())
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Username: "ana", Email: "ana@x.com"}))

	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "u2", Username: "ana", Email: "otra@x.com"}), domain.ErrUsernameTaken)
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "u3", Username: "bob", Email: "ANA@x.com"}), domain.ErrEmailAlreadyExists)

	u, err := repo.GetByEmail(ctx, "Ana@X.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}

func TestMovementRepository_ListByProductSigueAlProductoTrasUpdate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewMovementRepository(memory.NewStore())
	require.NoError(t, repo.Append(ctx, mov("M1", 1, t0)))
	require.NoError(t, repo.Append(ctx, mov("M2", 2, t0)))
	require.NoError(t, repo.Append(ctx, &entity.Movement{ID: "M3", ProductID: "P10", ToLocation: "A", Quantity: 3, Timestamp: t0}))

	moved := mov("M1", 1, t0)
	moved.ProductID = "P10"
	require.NoError(t, repo.Update(ctx, moved))

	p1, err := repo.ListByProduct(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, p1, 1)
	assert.Equal(t, "M2", p1[0].ID)

	p10, err := repo.ListByProduct(ctx, "P10")
	require.NoError(t, err)
	require.Len(t, p10, 2)
	assert.Equal(t, "M1", p10[0].ID, "conserva la posición original en el ledger")
	assert.Equal(t, "M3", p10[1].ID)
}

func TestTxRunner_SinGuardTambienDeshace(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store, false)
	boom := errors.New("boom")

	err := runner.Run(ctx, []string{"P1"}, func(ledger repository.MovementRepository) error {
		require.NoError(t, ledger.Append(ctx, mov("M1", 1, t0)))
		got, err := ledger.GetByID(ctx, "M1")
		require.NoError(t, err)
		require.NotNil(t, got, "la transacción ve sus propias escrituras")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := memory.NewMovementRepository(store).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := memory.NewTxRunner(memory.NewStore(), true).Run(ctx, []string{"P1"}, func(repository.MovementRepository) error {
		t.Fatal("no debe ejecutarse")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
