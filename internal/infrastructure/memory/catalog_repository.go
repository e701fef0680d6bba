package memory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ProductRepository implementa repository.ProductRepository en memoria.
type ProductRepository struct {
	s *Store
}

// NewProductRepository construye el repositorio.
func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{s: s}
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	return create(r.s, tableProducts, p.ID, p)
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return getOne[entity.Product](r.s, tableProducts, "id", id)
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	return replace(r.s, tableProducts, p.ID, p)
}

// List devuelve los productos ordenados por ID.
func (r *ProductRepository) List(_ context.Context) ([]*entity.Product, error) {
	return listAll[entity.Product](r.s, tableProducts)
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	return remove(r.s, tableProducts, id)
}

func (r *ProductRepository) Count(_ context.Context) (int, error) {
	return count(r.s, tableProducts)
}

// LocationRepository implementa repository.LocationRepository en memoria.
type LocationRepository struct {
	s *Store
}

// NewLocationRepository construye el repositorio.
func NewLocationRepository(s *Store) *LocationRepository {
	return &LocationRepository{s: s}
}

var _ repository.LocationRepository = (*LocationRepository)(nil)

func (r *LocationRepository) Create(_ context.Context, l *entity.Location) error {
	return create(r.s, tableLocations, l.ID, l)
}

func (r *LocationRepository) GetByID(_ context.Context, id string) (*entity.Location, error) {
	return getOne[entity.Location](r.s, tableLocations, "id", id)
}

func (r *LocationRepository) Update(_ context.Context, l *entity.Location) error {
	return replace(r.s, tableLocations, l.ID, l)
}

// List devuelve las ubicaciones ordenadas por ID.
func (r *LocationRepository) List(_ context.Context) ([]*entity.Location, error) {
	return listAll[entity.Location](r.s, tableLocations)
}

func (r *LocationRepository) Delete(_ context.Context, id string) error {
	return remove(r.s, tableLocations, id)
}

func (r *LocationRepository) Count(_ context.Context) (int, error) {
	return count(r.s, tableLocations)
}
