package dto

import "time"

// BalanceRowDTO una fila del reporte de saldos.
type BalanceRowDTO struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Balance      int64  `json:"balance"`
}

// DanglingReferenceDTO saldo positivo cuyo producto o ubicación ya no existe.
type DanglingReferenceDTO struct {
	ProductID       string `json:"product_id"`
	LocationID      string `json:"location_id"`
	Balance         int64  `json:"balance"`
	MissingProduct  bool   `json:"missing_product"`
	MissingLocation bool   `json:"missing_location"`
}

// BalanceReportResponse reporte de saldos por producto y ubicación.
type BalanceReportResponse struct {
	Items       []BalanceRowDTO        `json:"items"`
	Dangling    []DanglingReferenceDTO `json:"dangling"`
	Total       int                    `json:"total"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// LocationStockDTO saldo de un producto en una ubicación.
type LocationStockDTO struct {
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Balance      int64  `json:"balance"`
}

// LocationsWithStockResponse ubicaciones con stock positivo de un producto.
type LocationsWithStockResponse struct {
	ProductID string             `json:"product_id"`
	Items     []LocationStockDTO `json:"items"`
}
