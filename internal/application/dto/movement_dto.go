package dto

import "time"

// CreateMovementRequest entrada para registrar un movimiento.
// Solo to_location = entrada; solo from_location = salida; ambas = traslado.
// Si id viene vacío se genera uno.
type CreateMovementRequest struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id" validate:"required"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
	Quantity     int64  `json:"quantity" validate:"required,gt=0"`
}

// UpdateMovementRequest reemplazo administrativo de un movimiento existente.
// Timestamp nil conserva la fecha original.
type UpdateMovementRequest struct {
	ProductID    string     `json:"product_id" validate:"required"`
	FromLocation string     `json:"from_location"`
	ToLocation   string     `json:"to_location"`
	Quantity     int64      `json:"quantity" validate:"required,gt=0"`
	Timestamp    *time.Time `json:"timestamp"`
}

// MovementResponse salida de un movimiento con nombres resueltos.
// Si un producto o ubicación ya no existe, el nombre es el ID crudo.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name"`
	FromLocation     string    `json:"from_location,omitempty"`
	FromLocationName string    `json:"from_location_name,omitempty"`
	ToLocation       string    `json:"to_location,omitempty"`
	ToLocationName   string    `json:"to_location_name,omitempty"`
	Quantity         int64     `json:"quantity"`
	Kind             string    `json:"kind"`
	Timestamp        time.Time `json:"timestamp"`
}

// MovementListResponse lista de movimientos, del más reciente al más antiguo.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
