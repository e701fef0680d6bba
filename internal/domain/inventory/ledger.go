package inventory

import "github.com/jhoicas/stock-ledger/internal/domain/entity"

// StockKey identifica un saldo: producto en ubicación.
type StockKey struct {
	ProductID  string
	LocationID string
}

// Ledger acumula el stock neto por (producto, ubicación) sin recortar negativos.
type Ledger map[StockKey]int64

// NewLedger construye un Ledger vacío.
func NewLedger() Ledger { return make(Ledger) }

// Fold construye el Ledger aplicando todos los movimientos. El orden no importa.
func Fold(movements []*entity.Movement) Ledger {
	l := NewLedger()
	for _, m := range movements {
		l.Apply(m)
	}
	return l
}

// Apply suma la cantidad en el destino y la resta en el origen.
func (l Ledger) Apply(m *entity.Movement) {
	if m == nil {
		return
	}
	if m.ToLocation != "" {
		l[StockKey{m.ProductID, m.ToLocation}] += m.Quantity
	}
	if m.FromLocation != "" {
		l[StockKey{m.ProductID, m.FromLocation}] -= m.Quantity
	}
}

// Revert deshace el efecto de Apply.
func (l Ledger) Revert(m *entity.Movement) {
	if m == nil {
		return
	}
	if m.ToLocation != "" {
		l[StockKey{m.ProductID, m.ToLocation}] -= m.Quantity
	}
	if m.FromLocation != "" {
		l[StockKey{m.ProductID, m.FromLocation}] += m.Quantity
	}
}

// ProductTotal suma los saldos sin recortar de todas las ubicaciones del producto.
func (l Ledger) ProductTotal(productID string) int64 {
	var total int64
	for k, q := range l {
		if k.ProductID == productID {
			total += q
		}
	}
	return total
}

// Available devuelve el saldo recortado a cero para la clave.
func (l Ledger) Available(key StockKey) int64 {
	if q := l[key]; q > 0 {
		return q
	}
	return 0
}

// Positive devuelve solo las entradas con saldo > 0.
func (l Ledger) Positive() map[StockKey]int64 {
	out := make(map[StockKey]int64, len(l))
	for k, q := range l {
		if q > 0 {
			out[k] = q
		}
	}
	return out
}

// ComputeBalances pliega el ledger y devuelve los saldos positivos por (producto, ubicación).
// Las entradas <= 0 se descartan.
func ComputeBalances(movements []*entity.Movement) map[StockKey]int64 {
	return Fold(movements).Positive()
}

// ProductTotals devuelve, por producto, entradas menos salidas sin recortar.
// Coincide con la suma de los saldos sin recortar de todas sus ubicaciones.
func ProductTotals(movements []*entity.Movement) map[string]int64 {
	out := make(map[string]int64)
	for _, m := range movements {
		if _, ok := out[m.ProductID]; !ok {
			out[m.ProductID] = 0
		}
		switch m.Kind() {
		case entity.MovementKindReceipt:
			out[m.ProductID] += m.Quantity
		case entity.MovementKindIssue:
			out[m.ProductID] -= m.Quantity
		}
	}
	return out
}
