package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// BalanceUseCase calcula saldos desde el ledger en cada consulta; no hay caché.
type BalanceUseCase struct {
	movements repository.MovementRepository
	products  repository.ProductRepository
	locations repository.LocationRepository
	metrics   Metrics
	log       *logger.Logger
	now       func() time.Time
}

// NewBalanceUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewBalanceUseCase(
	movements repository.MovementRepository,
	products repository.ProductRepository,
	locations repository.LocationRepository,
	metrics Metrics,
	log *logger.Logger,
) *BalanceUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BalanceUseCase{
		movements: movements,
		products:  products,
		locations: locations,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// Report devuelve los saldos positivos por producto y ubicación, ordenados por producto y ubicación.
// Los saldos cuyo producto o ubicación ya no existe se reportan en Dangling y se registran en el log.
func (uc *BalanceUseCase) Report(ctx context.Context) (*dto.BalanceReportResponse, error) {
	start := time.Now()
	movs, err := uc.movements.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer ledger: %w", err)
	}
	catalog, err := loadCatalog(ctx, uc.products, uc.locations)
	if err != nil {
		return nil, err
	}

	rows, dangling := inventory.Present(inventory.ComputeBalances(movs), catalog)
	uc.metrics.BalanceComputed(time.Since(start))

	out := &dto.BalanceReportResponse{
		Items:       make([]dto.BalanceRowDTO, 0, len(rows)),
		Dangling:    make([]dto.DanglingReferenceDTO, 0, len(dangling)),
		Total:       len(rows),
		GeneratedAt: uc.now(),
	}
	for _, r := range rows {
		out.Items = append(out.Items, dto.BalanceRowDTO{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			LocationID:   r.LocationID,
			LocationName: r.LocationName,
			Balance:      r.Quantity,
		})
	}
	for _, d := range dangling {
		uc.log.Warn().
			Str("product_id", d.ProductID).
			Str("location_id", d.LocationID).
			Int64("balance", d.Quantity).
			Bool("missing_product", d.MissingProduct).
			Bool("missing_location", d.MissingLocation).
			Msg("saldo con referencia huérfana omitido del reporte")
		out.Dangling = append(out.Dangling, dto.DanglingReferenceDTO{
			ProductID:       d.ProductID,
			LocationID:      d.LocationID,
			Balance:         d.Quantity,
			MissingProduct:  d.MissingProduct,
			MissingLocation: d.MissingLocation,
		})
	}
	return out, nil
}

// LocationsWithStock devuelve las ubicaciones con saldo positivo del producto, aunque el
// producto ya no esté en el catálogo. Sin historia devuelve una lista vacía.
// Las ubicaciones que ya no existen se muestran con su ID como nombre.
func (uc *BalanceUseCase) LocationsWithStock(ctx context.Context, productID string) (*dto.LocationsWithStockResponse, error) {
	movs, err := uc.movements.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("leer ledger: %w", err)
	}
	locs, err := uc.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar ubicaciones: %w", err)
	}
	names := make(map[string]string, len(locs))
	for _, l := range locs {
		names[l.ID] = l.Name
	}

	items := make([]dto.LocationStockDTO, 0)
	for key, qty := range inventory.ComputeBalances(movs) {
		if key.ProductID != productID {
			continue
		}
		name, ok := names[key.LocationID]
		if !ok {
			name = key.LocationID
		}
		items = append(items, dto.LocationStockDTO{LocationID: key.LocationID, LocationName: name, Balance: qty})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].LocationID < items[j].LocationID })
	return &dto.LocationsWithStockResponse{ProductID: productID, Items: items}, nil
}
