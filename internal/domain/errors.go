package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya existe")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrSourceHasNoStock   = errors.New("la ubicación de origen no tiene stock del producto")
	ErrNegativeBalance    = errors.New("el cambio dejaría un saldo negativo")
	ErrConflict           = errors.New("el recurso cambió durante la operación")
)

// ErrBalanceOverflow el movimiento llevaría un saldo por encima de math.MaxInt64.
// errors.Is(err, ErrInvalidInput) es verdadero.
var ErrBalanceOverflow = fmt.Errorf("%w: la cantidad excede el saldo máximo representable", ErrInvalidInput)

// InsufficientStockError detalla un rechazo por stock insuficiente en la ubicación de origen.
// errors.Is(err, ErrInsufficientStock) es verdadero para este tipo.
type InsufficientStockError struct {
	ProductID  string
	LocationID string
	Available  int64
	Requested  int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %s: disponible %d, solicitado %d", e.LocationID, e.Available, e.Requested)
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
