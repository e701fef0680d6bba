package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta cada unidad de trabajo en una transacción de escritura de memdb:
// si fn falla se descarta con Abort, si no se confirma con Commit.
// memdb admite un solo escritor a la vez, así que guard=none no abre carreras en este backend;
// el mutex por producto se conserva para INVENTORY_GUARD=serialized.
type TxRunner struct {
	s          *Store
	serialized bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTxRunner construye el runner. serialized=false omite la exclusión por producto.
func NewTxRunner(s *Store, serialized bool) *TxRunner {
	return &TxRunner{s: s, serialized: serialized, locks: make(map[string]*sync.Mutex)}
}

// Run implementa inventory.TxRunner.
func (t *TxRunner) Run(ctx context.Context, productIDs []string, fn func(ledger repository.MovementRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.serialized {
		unlock := t.lock(productIDs)
		defer unlock()
	}
	txn := t.s.db.Txn(true)
	defer txn.Abort()
	if err := fn(&MovementRepository{s: t.s, txn: txn}); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// lock adquiere los mutex de los productos en orden para evitar interbloqueos.
func (t *TxRunner) lock(productIDs []string) func() {
	ids := uniqueSorted(productIDs)
	held := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		t.mu.Lock()
		m, ok := t.locks[id]
		if !ok {
			m = &sync.Mutex{}
			t.locks[id] = m
		}
		t.mu.Unlock()
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
