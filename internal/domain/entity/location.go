package entity

import "time"

// Location representa una bodega, tienda o cualquier ubicación donde se guarda stock.
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
