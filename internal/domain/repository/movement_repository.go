package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MovementRepository es el ledger de movimientos (append-only para el flujo normal).
// Update y Delete existen solo como escape administrativo.
type MovementRepository interface {
	// Append agrega el movimiento al final del ledger. domain.ErrDuplicate si el ID ya existe;
	// en ese caso el ledger no cambia.
	Append(ctx context.Context, movement *entity.Movement) error
	// All devuelve todos los movimientos en orden de inserción.
	All(ctx context.Context) ([]*entity.Movement, error)
	// ListByProduct devuelve los movimientos de un producto en orden de inserción.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// Update reemplaza producto, ubicaciones, cantidad y fecha. domain.ErrNotFound si no existe.
	Update(ctx context.Context, movement *entity.Movement) error
	// Delete elimina el movimiento. domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
	// ListRecent devuelve hasta limit movimientos, del más reciente al más antiguo. limit <= 0 = todos.
	ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error)
	Count(ctx context.Context) (int, error)
}
