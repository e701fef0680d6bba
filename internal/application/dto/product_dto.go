package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// InitialLocationID + InitialQty > 0 registran una entrada de stock inicial.
type CreateProductRequest struct {
	ID                string `json:"id" validate:"required,max=64"`
	Name              string `json:"name" validate:"required,min=1,max=200"`
	Category          string `json:"category" validate:"omitempty,max=100"`
	InitialLocationID string `json:"initial_location_id"`
	InitialQty        int64  `json:"initial_qty" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (solo nombre y categoría).
type UpdateProductRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string `json:"category" validate:"omitempty,max=100"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
