package entity

import "time"

// Product representa un producto del catálogo. El ID lo asigna quien lo crea y no cambia;
// solo Name y Category son editables.
type Product struct {
	ID        string
	Name      string
	Category  string // opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}
