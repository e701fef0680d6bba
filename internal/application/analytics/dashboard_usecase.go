// Package analytics contiene el resumen del dashboard de inventario.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

const dashboardRecentMovements = 5 // movimientos en el widget del dashboard

// RecentMovements lista los últimos movimientos con nombres resueltos.
type RecentMovements interface {
	Recent(ctx context.Context, limit int) ([]dto.MovementResponse, error)
}

// DashboardUseCase genera el resumen: conteos de catálogo y ledger más los últimos movimientos.
type DashboardUseCase struct {
	products  repository.ProductRepository
	locations repository.LocationRepository
	movements repository.MovementRepository
	recent    RecentMovements
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	products repository.ProductRepository,
	locations repository.LocationRepository,
	movements repository.MovementRepository,
	recent RecentMovements,
) *DashboardUseCase {
	return &DashboardUseCase{products: products, locations: locations, movements: movements, recent: recent}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro consultas en paralelo:
//  1. productos.Count
//  2. ubicaciones.Count
//  3. movimientos.Count
//  4. Recent(5)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countResult struct {
		n   int
		err error
	}
	type recentResult struct {
		items []dto.MovementResponse
		err   error
	}

	productsCh := make(chan countResult, 1)
	locationsCh := make(chan countResult, 1)
	movementsCh := make(chan countResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		n, err := uc.products.Count(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.locations.Count(ctx)
		locationsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.movements.Count(ctx)
		movementsCh <- countResult{n, err}
	}()
	go func() {
		items, err := uc.recent.Recent(ctx, dashboardRecentMovements)
		recentCh <- recentResult{items, err}
	}()

	products := <-productsCh
	locations := <-locationsCh
	movements := <-movementsCh
	recent := <-recentCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de productos: %w", products.err)
	}
	if locations.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de ubicaciones: %w", locations.err)
	}
	if movements.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de movimientos: %w", movements.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", recent.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	return &dto.DashboardSummaryDTO{
		TotalProducts:   products.n,
		TotalLocations:  locations.n,
		TotalMovements:  movements.n,
		RecentMovements: recent.items,
	}, nil
}
