package inventory_test

import (
	"sync"
	"time"

	appinv "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

// testEnv arma los casos de uso sobre el store en memoria.
type testEnv struct {
	store      *memory.Store
	movements  *memory.MovementRepository
	products   *memory.ProductRepository
	locations  *memory.LocationRepository
	metrics    *recordingMetrics
	movementUC *appinv.MovementUseCase
	balanceUC  *appinv.BalanceUseCase
}

func newTestEnv(serialized bool) *testEnv {
	store := memory.NewStore()
	env := &testEnv{
		store:     store,
		movements: memory.NewMovementRepository(store),
		products:  memory.NewProductRepository(store),
		locations: memory.NewLocationRepository(store),
		metrics:   &recordingMetrics{recorded: map[string]int{}, rejected: map[string]int{}},
	}
	env.movementUC = appinv.NewMovementUseCase(
		memory.NewTxRunner(store, serialized),
		env.movements, env.products, env.locations,
		env.metrics, nil, time.UTC,
	)
	env.balanceUC = appinv.NewBalanceUseCase(env.movements, env.products, env.locations, env.metrics, nil)
	return env
}

// recordingMetrics cuenta lo que registra el caso de uso.
type recordingMetrics struct {
	mu       sync.Mutex
	recorded map[string]int
	rejected map[string]int
	computed int
}

func (m *recordingMetrics) MovementRecorded(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded[kind]++
}

func (m *recordingMetrics) MovementRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[reason]++
}

func (m *recordingMetrics) BalanceComputed(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.computed++
}
