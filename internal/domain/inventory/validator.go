package inventory

import (
	"math"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Validate decide si el movimiento candidato puede agregarse al ledger existente.
// El candidato no se incluye en el cálculo. Movimientos sin origen solo se rechazan
// si desbordarían el saldo (domain.ErrBalanceOverflow).
// Devuelve domain.ErrSourceHasNoStock o *domain.InsufficientStockError.
func Validate(candidate *entity.Movement, movements []*entity.Movement) error {
	if candidate == nil {
		return nil
	}
	return CheckAvailability(candidate, Fold(movements))
}

// CheckAvailability aplica la regla de stock sobre un Ledger ya calculado.
func CheckAvailability(candidate *entity.Movement, ledger Ledger) error {
	if candidate == nil {
		return nil
	}
	if err := ledger.CheckHeadroom(candidate); err != nil {
		return err
	}
	if !candidate.HasSource() {
		return nil
	}
	key := StockKey{ProductID: candidate.ProductID, LocationID: candidate.FromLocation}
	available := ledger.Available(key)
	if available == 0 {
		return domain.ErrSourceHasNoStock
	}
	if candidate.Quantity > available {
		return &domain.InsufficientStockError{
			ProductID:  candidate.ProductID,
			LocationID: candidate.FromLocation,
			Available:  available,
			Requested:  candidate.Quantity,
		}
	}
	return nil
}

// CheckReplacement verifica que reemplazar old por updated (cualquiera puede ser nil, p.ej. borrado)
// no deje en negativo ningún saldo tocado por ambos. movements es el ledger actual, que incluye old.
func CheckReplacement(old, updated *entity.Movement, movements []*entity.Movement) error {
	ledger := Fold(movements)
	ledger.Revert(old)
	if updated != nil {
		if err := ledger.CheckHeadroom(updated); err != nil {
			return err
		}
	}
	ledger.Apply(updated)
	for _, k := range touchedKeys(old, updated) {
		if ledger[k] < 0 {
			return domain.ErrNegativeBalance
		}
	}
	return nil
}

// CheckHeadroom verifica que aplicar m no lleve por encima de math.MaxInt64 el saldo del
// destino ni, en una entrada, el total del producto.
func (l Ledger) CheckHeadroom(m *entity.Movement) error {
	if m == nil || m.ToLocation == "" {
		return nil
	}
	if current := l[StockKey{m.ProductID, m.ToLocation}]; current > 0 && m.Quantity > math.MaxInt64-current {
		return domain.ErrBalanceOverflow
	}
	if !m.HasSource() {
		if total := l.ProductTotal(m.ProductID); total > 0 && m.Quantity > math.MaxInt64-total {
			return domain.ErrBalanceOverflow
		}
	}
	return nil
}

func touchedKeys(movs ...*entity.Movement) []StockKey {
	var keys []StockKey
	for _, m := range movs {
		if m == nil {
			continue
		}
		if m.FromLocation != "" {
			keys = append(keys, StockKey{m.ProductID, m.FromLocation})
		}
		if m.ToLocation != "" {
			keys = append(keys, StockKey{m.ProductID, m.ToLocation})
		}
	}
	return keys
}
