// Package bootstrap arma el store configurado y los casos de uso que lo consumen.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/migrations"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Store agrupa los repositorios y el TxRunner de un mismo backend.
type Store struct {
	Driver    string
	Movements repository.MovementRepository
	Products  repository.ProductRepository
	Locations repository.LocationRepository
	Users     repository.UserRepository
	TxRunner  inventory.TxRunner

	closeFn func() error
}

// Close libera las conexiones del backend.
func (s *Store) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// NewMemoryStore construye un store en memoria. serialized=false desactiva la exclusión por producto.
func NewMemoryStore(serialized bool) *Store {
	ms := memory.NewStore()
	return &Store{
		Driver:    config.DriverMemory,
		Movements: memory.NewMovementRepository(ms),
		Products:  memory.NewProductRepository(ms),
		Locations: memory.NewLocationRepository(ms),
		Users:     memory.NewUserRepository(ms),
		TxRunner:  memory.NewTxRunner(ms, serialized),
	}
}

// OpenStore abre el backend de cfg.DB.Driver y aplica las migraciones pendientes.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		return NewMemoryStore(cfg.Inventory.Serialized()), nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		sqlDB := postgres.SQLDB(pool)
		if err := migrations.Up(ctx, sqlDB, migrations.Postgres, log); err != nil {
			_ = sqlDB.Close()
			pool.Close()
			return nil, err
		}
		return &Store{
			Driver:    config.DriverPostgres,
			Movements: postgres.NewMovementRepository(pool),
			Products:  postgres.NewProductRepository(pool),
			Locations: postgres.NewLocationRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool, cfg.Inventory.Serialized()),
			closeFn: func() error {
				err := sqlDB.Close()
				pool.Close()
				return err
			},
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := migrations.Up(ctx, db.DB, migrations.SQLite, log); err != nil {
			_ = db.Close()
			return nil, err
		}
		if !cfg.Inventory.Serialized() {
			log.Warn().Msg("INVENTORY_GUARD=none no aplica a SQLite: la conexión única serializa las transacciones")
		}
		return &Store{
			Driver:    config.DriverSQLite,
			Movements: sqlite.NewMovementRepository(db),
			Products:  sqlite.NewProductRepository(db),
			Locations: sqlite.NewLocationRepository(db),
			Users:     sqlite.NewUserRepository(db),
			TxRunner:  sqlite.NewTxRunner(db),
			closeFn:   db.Close,
		}, nil
	}
	return nil, fmt.Errorf("DB_DRIVER desconocido %q", cfg.DB.Driver)
}
