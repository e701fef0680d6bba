package dto

// DashboardSummaryDTO resumen del dashboard: conteos y últimos movimientos.
type DashboardSummaryDTO struct {
	TotalProducts   int                `json:"total_products"`
	TotalLocations  int                `json:"total_locations"`
	TotalMovements  int                `json:"total_movements"`
	RecentMovements []MovementResponse `json:"recent_movements"`
}
