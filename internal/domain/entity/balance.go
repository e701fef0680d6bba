package entity

// Balance es una fila del reporte de saldos: stock neto positivo de un producto en una ubicación.
// Nunca se persiste; se recalcula desde el ledger.
type Balance struct {
	ProductID    string
	ProductName  string
	LocationID   string
	LocationName string
	Quantity     int64
}
