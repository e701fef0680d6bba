package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// loadCatalog construye el catálogo de nombres desde los repositorios.
func loadCatalog(ctx context.Context, products repository.ProductRepository, locations repository.LocationRepository) (inventory.Catalog, error) {
	ps, err := products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	ls, err := locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar ubicaciones: %w", err)
	}
	return inventory.NewCatalog(ps, ls), nil
}

func toMovementResponse(m *entity.Movement, catalog inventory.Catalog) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductID,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		Quantity:     m.Quantity,
		Kind:         m.Kind(),
		Timestamp:    m.Timestamp,
	}
	if catalog == nil {
		return out
	}
	if n, ok := catalog.ProductName(m.ProductID); ok {
		out.ProductName = n
	}
	if m.FromLocation != "" {
		out.FromLocationName = m.FromLocation
		if n, ok := catalog.LocationName(m.FromLocation); ok {
			out.FromLocationName = n
		}
	}
	if m.ToLocation != "" {
		out.ToLocationName = m.ToLocation
		if n, ok := catalog.LocationName(m.ToLocation); ok {
			out.ToLocationName = n
		}
	}
	return out
}
