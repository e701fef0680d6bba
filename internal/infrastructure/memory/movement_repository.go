package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// MovementRepository implementa repository.MovementRepository en memoria.
// Dentro de TxRunner.Run opera sobre la transacción abierta; fuera, cada llamada es su propia transacción.
type MovementRepository struct {
	s   *Store
	txn *memdb.Txn
}

// NewMovementRepository construye el repositorio.
func NewMovementRepository(s *Store) *MovementRepository {
	return &MovementRepository{s: s}
}

var _ repository.MovementRepository = (*MovementRepository)(nil)

func (r *MovementRepository) view(ctx context.Context, fn func(txn *memdb.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.txn != nil {
		return fn(r.txn)
	}
	return r.s.read(fn)
}

func (r *MovementRepository) update(ctx context.Context, fn func(txn *memdb.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.txn != nil {
		return fn(r.txn)
	}
	return r.s.write(fn)
}

func (r *MovementRepository) Append(ctx context.Context, m *entity.Movement) error {
	return r.update(ctx, func(txn *memdb.Txn) error {
		existing, err := txn.First(tableMovements, "id", m.ID)
		if err != nil {
			return fmt.Errorf("buscar movimiento: %w", err)
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		r.s.seq++
		return txn.Insert(tableMovements, newMovementRecord(r.s.seq, m))
	})
}

// All devuelve el ledger completo en orden de inserción.
func (r *MovementRepository) All(ctx context.Context) ([]*entity.Movement, error) {
	return r.collect(ctx, "seq")
}

func (r *MovementRepository) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.collect(ctx, "product_prefix", productPrefix(productID))
}

func (r *MovementRepository) collect(ctx context.Context, index string, args ...any) ([]*entity.Movement, error) {
	out := []*entity.Movement{}
	err := r.view(ctx, func(txn *memdb.Txn) error {
		it, err := txn.Get(tableMovements, index, args...)
		if err != nil {
			return fmt.Errorf("listar movimientos: %w", err)
		}
		for raw := it.Next(); raw != nil; raw = it.Next() {
			m := raw.(*movementRecord).Movement
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

func (r *MovementRepository) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.view(ctx, func(txn *memdb.Txn) error {
		raw, err := txn.First(tableMovements, "id", id)
		if err != nil {
			return fmt.Errorf("buscar movimiento: %w", err)
		}
		if raw != nil {
			m := raw.(*movementRecord).Movement
			out = &m
		}
		return nil
	})
	return out, err
}

// Update reemplaza el movimiento conservando su posición en el ledger.
func (r *MovementRepository) Update(ctx context.Context, m *entity.Movement) error {
	return r.update(ctx, func(txn *memdb.Txn) error {
		raw, err := txn.First(tableMovements, "id", m.ID)
		if err != nil {
			return fmt.Errorf("buscar movimiento: %w", err)
		}
		if raw == nil {
			return domain.ErrNotFound
		}
		rec := *raw.(*movementRecord)
		rec.Movement = *m
		rec.ProductSeq = productPrefix(m.ProductID) + rec.Seq
		return txn.Insert(tableMovements, &rec)
	})
}

func (r *MovementRepository) Delete(ctx context.Context, id string) error {
	return r.update(ctx, func(txn *memdb.Txn) error {
		raw, err := txn.First(tableMovements, "id", id)
		if err != nil {
			return fmt.Errorf("buscar movimiento: %w", err)
		}
		if raw == nil {
			return domain.ErrNotFound
		}
		return txn.Delete(tableMovements, raw)
	})
}

// ListRecent ordena por timestamp descendente; a igual timestamp, el último insertado primero.
func (r *MovementRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error) {
	var recs []*movementRecord
	err := r.view(ctx, func(txn *memdb.Txn) error {
		it, err := txn.Get(tableMovements, "seq")
		if err != nil {
			return fmt.Errorf("listar movimientos: %w", err)
		}
		for raw := it.Next(); raw != nil; raw = it.Next() {
			recs = append(recs, raw.(*movementRecord))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i].Movement.Timestamp, recs[j].Movement.Timestamp
		if !a.Equal(b) {
			return a.After(b)
		}
		return recs[i].Seq > recs[j].Seq
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]*entity.Movement, 0, len(recs))
	for _, rec := range recs {
		m := rec.Movement
		out = append(out, &m)
	}
	return out, nil
}

func (r *MovementRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.view(ctx, func(txn *memdb.Txn) error {
		var err error
		n, err = countRows(txn, tableMovements)
		return err
	})
	return n, err
}
