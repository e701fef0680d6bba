package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// InitialStockRecorder registra la entrada inicial de stock al crear un producto.
type InitialStockRecorder interface {
	RecordReceipt(ctx context.Context, productID, locationID string, qty int64) error
}

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	locations repository.LocationRepository
	stock     InitialStockRecorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, locations repository.LocationRepository, stock InitialStockRecorder) *ProductUseCase {
	return &ProductUseCase{repo: repo, locations: locations, stock: stock}
}

// Create crea un nuevo producto. Si trae ubicación y cantidad inicial registra una entrada.
// domain.ErrNotFound si la ubicación inicial no existe; domain.ErrDuplicate si el ID ya existe.
// Si la entrada inicial falla, el producto se elimina y se devuelve el error de la entrada.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	in.InitialLocationID = strings.TrimSpace(in.InitialLocationID)
	if in.ID == "" || in.Name == "" || in.InitialQty < 0 {
		return nil, domain.ErrInvalidInput
	}
	withStock := in.InitialLocationID != "" && in.InitialQty > 0
	if withStock {
		loc, err := uc.locations.GetByID(ctx, in.InitialLocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:        in.ID,
		Name:      in.Name,
		Category:  strings.TrimSpace(in.Category),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	if withStock {
		if err := uc.stock.RecordReceipt(ctx, product.ID, in.InitialLocationID, in.InitialQty); err != nil {
			// Sin la entrada el producto no queda creado.
			if delErr := uc.repo.Delete(context.WithoutCancel(ctx), product.ID); delErr != nil {
				return nil, errors.Join(err, fmt.Errorf("deshacer producto %s: %w", product.ID, delErr))
			}
			return nil, err
		}
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre y/o categoría. El ID no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista todos los productos ordenados por ID.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Delete elimina un producto por ID. Los movimientos que lo referencian se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
