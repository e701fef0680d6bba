package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

func TestPresent_OrdenaYResuelveNombres(t *testing.T) {
	catalog := inventory.NewCatalog(
		[]*entity.Product{{ID: "P002", Name: "Chair"}, {ID: "P001", Name: "Laptop"}},
		[]*entity.Location{{ID: "L001", Name: "Warehouse A"}, {ID: "L003", Name: "Store"}},
	)
	balances := map[inventory.StockKey]int64{
		key("P002", "L001"): 30,
		key("P001", "L003"): 10,
		key("P001", "L001"): 40,
	}
	rows, dangling := inventory.Present(balances, catalog)
	assert.Empty(t, dangling)
	require.Len(t, rows, 3)
	assert.Equal(t, entity.Balance{ProductID: "P001", ProductName: "Laptop", LocationID: "L001", LocationName: "Warehouse A", Quantity: 40}, rows[0])
	assert.Equal(t, "L003", rows[1].LocationID)
	assert.Equal(t, "P002", rows[2].ProductID)
}

func TestPresent_ReferenciasHuerfanasSeOmiten(t *testing.T) {
	catalog := inventory.NewCatalog(
		[]*entity.Product{{ID: "P001", Name: "Laptop"}},
		[]*entity.Location{{ID: "L001", Name: "Warehouse A"}},
	)
	balances := map[inventory.StockKey]int64{
		key("P001", "L001"): 40,
		key("P009", "L001"): 5,
		key("P001", "L009"): 2,
	}
	rows, dangling := inventory.Present(balances, catalog)
	require.Len(t, rows, 1)
	assert.Equal(t, "P001", rows[0].ProductID)
	require.Len(t, dangling, 2)
	assert.Equal(t, inventory.DanglingReference{ProductID: "P001", LocationID: "L009", Quantity: 2, MissingLocation: true}, dangling[0])
	assert.Equal(t, inventory.DanglingReference{ProductID: "P009", LocationID: "L001", Quantity: 5, MissingProduct: true}, dangling[1])
}
