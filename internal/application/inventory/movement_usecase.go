package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// MovementUseCase registra movimientos de inventario. Validación de stock y escritura
// ocurren dentro de TxRunner.Run, en exclusión por producto.
type MovementUseCase struct {
	txRunner  TxRunner
	movements repository.MovementRepository
	products  repository.ProductRepository
	locations repository.LocationRepository
	metrics   Metrics
	log       *logger.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewMovementUseCase construye el caso de uso. metrics, log y loc pueden ser nil.
func NewMovementUseCase(
	txRunner TxRunner,
	movements repository.MovementRepository,
	products repository.ProductRepository,
	locations repository.LocationRepository,
	metrics Metrics,
	log *logger.Logger,
	loc *time.Location,
) *MovementUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &MovementUseCase{
		txRunner:  txRunner,
		movements: movements,
		products:  products,
		locations: locations,
		metrics:   metrics,
		log:       log,
		loc:       loc,
		now:       time.Now,
	}
}

// NewMovementID genera un ID de movimiento cuando el cliente no envía uno.
func NewMovementID() string {
	return "MOV-" + uuid.New().String()
}

// Register valida y agrega un movimiento al ledger.
//
// Retorna:
//   - domain.ErrInvalidInput     si el movimiento está mal formado o desbordaría un saldo.
//   - domain.ErrNotFound         si el producto o alguna ubicación no existe.
//   - domain.ErrDuplicate        si el ID ya existe.
//   - domain.ErrSourceHasNoStock si el origen no tiene stock del producto.
//   - *domain.InsufficientStockError si la cantidad supera el saldo del origen.
func (uc *MovementUseCase) Register(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	m := &entity.Movement{
		ID:           strings.TrimSpace(in.ID),
		ProductID:    strings.TrimSpace(in.ProductID),
		FromLocation: strings.TrimSpace(in.FromLocation),
		ToLocation:   strings.TrimSpace(in.ToLocation),
		Quantity:     in.Quantity,
		Timestamp:    uc.now().In(uc.loc),
	}
	if m.ID == "" {
		m.ID = NewMovementID()
	}
	if !m.WellFormed() {
		uc.metrics.MovementRejected(rejectReason(domain.ErrInvalidInput))
		return nil, domain.ErrInvalidInput
	}
	catalog, err := uc.resolveReferences(ctx, m)
	if err != nil {
		uc.metrics.MovementRejected(rejectReason(err))
		return nil, err
	}

	err = uc.txRunner.Run(ctx, []string{m.ProductID}, func(ledger repository.MovementRepository) error {
		existing, err := ledger.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		history, err := ledger.ListByProduct(ctx, m.ProductID)
		if err != nil {
			return err
		}
		if err := inventory.Validate(m, history); err != nil {
			return err
		}
		return ledger.Append(ctx, m)
	})
	if err != nil {
		uc.metrics.MovementRejected(rejectReason(err))
		return nil, err
	}

	uc.metrics.MovementRecorded(m.Kind())
	uc.log.Info().
		Str("movement_id", m.ID).
		Str("product_id", m.ProductID).
		Str("kind", m.Kind()).
		Int64("quantity", m.Quantity).
		Msg("movimiento registrado")
	out := toMovementResponse(m, catalog)
	return &out, nil
}

// RecordReceipt registra una entrada de stock (sin origen) con ID generado.
func (uc *MovementUseCase) RecordReceipt(ctx context.Context, productID, locationID string, qty int64) error {
	_, err := uc.Register(ctx, dto.CreateMovementRequest{
		ProductID:  productID,
		ToLocation: locationID,
		Quantity:   qty,
	})
	return err
}

// GetByID obtiene un movimiento con nombres resueltos. (nil, nil) si no existe.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	catalog, err := loadCatalog(ctx, uc.products, uc.locations)
	if err != nil {
		return nil, err
	}
	out := toMovementResponse(m, catalog)
	return &out, nil
}

// List lista movimientos del más reciente al más antiguo. limit <= 0 devuelve todos.
func (uc *MovementUseCase) List(ctx context.Context, limit int) (*dto.MovementListResponse, error) {
	items, err := uc.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	total, err := uc.movements.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{Items: items, Total: total}, nil
}

// Recent devuelve los últimos movimientos con nombres resueltos.
func (uc *MovementUseCase) Recent(ctx context.Context, limit int) ([]dto.MovementResponse, error) {
	list, err := uc.movements.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	catalog, err := loadCatalog(ctx, uc.products, uc.locations)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m, catalog))
	}
	return items, nil
}

// Update reemplaza un movimiento existente (operación administrativa).
// Se rechaza con domain.ErrNegativeBalance si algún saldo afectado quedaría negativo.
func (uc *MovementUseCase) Update(ctx context.Context, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	current, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	updated := &entity.Movement{
		ID:           current.ID,
		ProductID:    strings.TrimSpace(in.ProductID),
		FromLocation: strings.TrimSpace(in.FromLocation),
		ToLocation:   strings.TrimSpace(in.ToLocation),
		Quantity:     in.Quantity,
		Timestamp:    current.Timestamp,
	}
	if in.Timestamp != nil {
		updated.Timestamp = in.Timestamp.In(uc.loc)
	}
	if !updated.WellFormed() {
		return nil, domain.ErrInvalidInput
	}
	catalog, err := uc.resolveReferences(ctx, updated)
	if err != nil {
		return nil, err
	}

	if err := uc.replace(ctx, current, updated); err != nil {
		return nil, err
	}
	uc.log.Warn().
		Str("movement_id", id).
		Str("product_id", updated.ProductID).
		Int64("old_quantity", current.Quantity).
		Int64("new_quantity", updated.Quantity).
		Msg("movimiento histórico modificado")
	out := toMovementResponse(updated, catalog)
	return &out, nil
}

// Delete elimina un movimiento (operación administrativa) con la misma verificación que Update.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	current, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	if err := uc.replace(ctx, current, nil); err != nil {
		return err
	}
	uc.log.Warn().Str("movement_id", id).Str("product_id", current.ProductID).Msg("movimiento histórico eliminado")
	return nil
}

// replace aplica Update (updated != nil) o Delete (updated == nil) bajo exclusión
// de todos los productos involucrados.
func (uc *MovementUseCase) replace(ctx context.Context, current, updated *entity.Movement) error {
	productIDs := []string{current.ProductID}
	if updated != nil && updated.ProductID != current.ProductID {
		productIDs = append(productIDs, updated.ProductID)
	}
	return uc.txRunner.Run(ctx, productIDs, func(ledger repository.MovementRepository) error {
		old, err := ledger.GetByID(ctx, current.ID)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if old.ProductID != current.ProductID {
			return domain.ErrConflict
		}
		var history []*entity.Movement
		for _, pid := range productIDs {
			movs, err := ledger.ListByProduct(ctx, pid)
			if err != nil {
				return err
			}
			history = append(history, movs...)
		}
		if err := inventory.CheckReplacement(old, updated, history); err != nil {
			return err
		}
		if updated == nil {
			return ledger.Delete(ctx, old.ID)
		}
		return ledger.Update(ctx, updated)
	})
}

// resolveReferences verifica que producto y ubicaciones existan y devuelve sus nombres.
func (uc *MovementUseCase) resolveReferences(ctx context.Context, m *entity.Movement) (inventory.Catalog, error) {
	product, err := uc.products.GetByID(ctx, m.ProductID)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	var locs []*entity.Location
	for _, id := range []string{m.FromLocation, m.ToLocation} {
		if id == "" {
			continue
		}
		l, err := uc.locations.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("buscar ubicación: %w", err)
		}
		if l == nil {
			return nil, domain.ErrNotFound
		}
		locs = append(locs, l)
	}
	return inventory.NewCatalog([]*entity.Product{product}, locs), nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, domain.ErrSourceHasNoStock):
		return "source_has_no_stock"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "error"
	}
}
