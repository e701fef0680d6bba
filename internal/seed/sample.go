// Package seed carga datos de ejemplo y catálogos de productos desde CSV.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/bootstrap"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Credenciales del administrador de ejemplo.
const (
	AdminUsername = "admin"
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin123"
)

var (
	sampleLocations = []dto.CreateLocationRequest{
		{ID: "L001", Name: "Warehouse A"},
		{ID: "L002", Name: "Warehouse B"},
		{ID: "L003", Name: "Store"},
	}
	sampleProducts = []dto.CreateProductRequest{
		{ID: "P001", Name: "Laptop", Category: "Electronics"},
		{ID: "P002", Name: "Chair", Category: "Furniture"},
		{ID: "P003", Name: "Notebook", Category: "Stationery"},
	}
	sampleMovements = []dto.CreateMovementRequest{
		{ID: "M001", ProductID: "P001", ToLocation: "L001", Quantity: 50},
		{ID: "M002", ProductID: "P002", ToLocation: "L001", Quantity: 30},
		{ID: "M003", ProductID: "P001", FromLocation: "L001", ToLocation: "L003", Quantity: 10},
	}
)

// Result cuántos registros se crearon y cuántos ya existían.
type Result struct {
	Created int
	Skipped int
}

// SampleData crea el admin, 3 ubicaciones, 3 productos y 3 movimientos.
// Es idempotente: lo que ya existe se omite.
func SampleData(ctx context.Context, svc *bootstrap.Services, log *logger.Logger) (Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	var res Result
	count := func(err error, what string) error {
		switch {
		case err == nil:
			res.Created++
			return nil
		case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrEmailAlreadyExists):
			res.Skipped++
			return nil
		}
		return fmt.Errorf("seed %s: %w", what, err)
	}

	_, err := svc.Auth.CreateUser(ctx, AdminUsername, AdminEmail, AdminPassword, entity.RoleAdmin)
	if err := count(err, "admin"); err != nil {
		return res, err
	}
	for _, l := range sampleLocations {
		_, err := svc.Locations.Create(ctx, l)
		if err := count(err, "ubicación "+l.ID); err != nil {
			return res, err
		}
	}
	for _, p := range sampleProducts {
		_, err := svc.Products.Create(ctx, p)
		if err := count(err, "producto "+p.ID); err != nil {
			return res, err
		}
	}
	for _, m := range sampleMovements {
		_, err := svc.Movements.Register(ctx, m)
		if err := count(err, "movimiento "+m.ID); err != nil {
			return res, err
		}
	}
	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("datos de ejemplo cargados")
	return res, nil
}
