package entity

import "time"

// Tipos de movimiento, derivados de las ubicaciones presentes.
const (
	MovementKindReceipt  = "RECEIPT"  // solo destino: entra stock
	MovementKindIssue    = "ISSUE"    // solo origen: sale stock
	MovementKindTransfer = "TRANSFER" // origen y destino
)

// Movement es un registro del ledger: una cantidad de un producto que entra, sale
// o se traslada entre ubicaciones. FromLocation/ToLocation vacíos significan "fuera del sistema".
type Movement struct {
	ID           string
	ProductID    string
	FromLocation string
	ToLocation   string
	Quantity     int64
	Timestamp    time.Time
}

// Kind devuelve RECEIPT, ISSUE o TRANSFER. Vacío si el movimiento no tiene ubicaciones.
func (m *Movement) Kind() string {
	switch {
	case m.FromLocation != "" && m.ToLocation != "":
		return MovementKindTransfer
	case m.ToLocation != "":
		return MovementKindReceipt
	case m.FromLocation != "":
		return MovementKindIssue
	}
	return ""
}

// HasSource indica si el movimiento descuenta stock de alguna ubicación.
func (m *Movement) HasSource() bool { return m.FromLocation != "" }

// WellFormed verifica la forma del movimiento: ID y producto presentes, cantidad positiva,
// al menos una ubicación y origen distinto de destino.
func (m *Movement) WellFormed() bool {
	if m.ID == "" || m.ProductID == "" || m.Quantity <= 0 {
		return false
	}
	if m.FromLocation == "" && m.ToLocation == "" {
		return false
	}
	return m.FromLocation != m.ToLocation
}
