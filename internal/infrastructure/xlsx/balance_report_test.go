package xlsx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/xlsx"
)

func TestRender_HojaDeSaldos(t *testing.T) {
	report := &dto.BalanceReportResponse{
		Items: []dto.BalanceRowDTO{
			{ProductID: "P001", ProductName: "Laptop", LocationID: "L001", LocationName: "Warehouse A", Balance: 40},
			{ProductID: "P002", ProductName: "Chair", LocationID: "L001", LocationName: "Warehouse A", Balance: 30},
		},
		Total:       2,
		GeneratedAt: time.Now(),
	}
	data, err := xlsx.NewBalanceReportRenderer().Render(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Saldos")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"product_id", "product_name", "location_id", "location_name", "balance"}, rows[0])
	assert.Equal(t, []string{"P001", "Laptop", "L001", "Warehouse A", "40"}, rows[1])
	assert.Equal(t, -1, indexOf(f.GetSheetList(), "Huerfanos"))
}

func TestRender_HojaDeHuerfanos(t *testing.T) {
	report := &dto.BalanceReportResponse{
		Items:    []dto.BalanceRowDTO{},
		Dangling: []dto.DanglingReferenceDTO{{ProductID: "P404", LocationID: "L001", Balance: 3, MissingProduct: true}},
	}
	data, err := xlsx.NewBalanceReportRenderer().Render(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Huerfanos")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "P404", rows[1][0])
	assert.Equal(t, "3", rows[1][2])
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
