package inventory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	appinv "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func TestReport_FilasOrdenadasYNombres(t *testing.T) {
	env := seededEnv(t, true)
	register(t, env, "M001", "P001", "", "L001", 50)
	register(t, env, "M002", "P002", "", "L001", 30)
	register(t, env, "M003", "P001", "L001", "L003", 10)

	report, err := env.balanceUC.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.BalanceRowDTO{
		{ProductID: "P001", ProductName: "Laptop", LocationID: "L001", LocationName: "Warehouse A", Balance: 40},
		{ProductID: "P001", ProductName: "Laptop", LocationID: "L003", LocationName: "Store", Balance: 10},
		{ProductID: "P002", ProductName: "Chair", LocationID: "L001", LocationName: "Warehouse A", Balance: 30},
	}, report.Items)
	assert.Equal(t, 3, report.Total)
	assert.Empty(t, report.Dangling)
	assert.Equal(t, 1, env.metrics.computed)
}

func TestReport_ReferenciaHuerfanaSeRegistraEnLog(t *testing.T) {
	env := seededEnv(t, true)
	register(t, env, "M001", "P001", "", "L002", 7)
	require.NoError(t, env.locations.Delete(context.Background(), "L002"))

	var buf bytes.Buffer
	uc := appinv.NewBalanceUseCase(env.movements, env.products, env.locations, nil, logger.NewWithWriter(&buf, "warn"))
	report, err := uc.Report(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Items)
	require.Len(t, report.Dangling, 1)
	assert.True(t, report.Dangling[0].MissingLocation)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "L002", entry["location_id"])
}

func TestLocationsWithStock(t *testing.T) {
	env := seededEnv(t, true)
	register(t, env, "M001", "P001", "", "L003", 5)
	register(t, env, "M002", "P001", "", "L001", 9)
	register(t, env, "M003", "P001", "L003", "", 5)
	register(t, env, "M004", "P002", "", "L002", 1)

	out, err := env.balanceUC.LocationsWithStock(context.Background(), "P001")
	require.NoError(t, err)
	assert.Equal(t, []dto.LocationStockDTO{{LocationID: "L001", LocationName: "Warehouse A", Balance: 9}}, out.Items)

	out, err = env.balanceUC.LocationsWithStock(context.Background(), "P404")
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestLocationsWithStock_ProductoBorradoConservaSaldos(t *testing.T) {
	env := seededEnv(t, true)
	register(t, env, "M001", "P002", "", "L002", 4)
	require.NoError(t, env.products.Delete(context.Background(), "P002"))

	out, err := env.balanceUC.LocationsWithStock(context.Background(), "P002")
	require.NoError(t, err)
	assert.Equal(t, []dto.LocationStockDTO{{LocationID: "L002", LocationName: "Warehouse B", Balance: 4}}, out.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Export
// ──────────────────────────────────────────────────────────────────────────────

type fakeRenderer struct{ format string }

func (f fakeRenderer) Format() string      { return f.format }
func (f fakeRenderer) ContentType() string { return "text/plain" }
func (f fakeRenderer) Render(r *dto.BalanceReportResponse) ([]byte, error) {
	return json.Marshal(r.Items)
}

func TestExport_FormatoDesconocido(t *testing.T) {
	env := seededEnv(t, true)
	uc := appinv.NewReportExportUseCase(env.balanceUC, fakeRenderer{"txt"})
	_, _, _, err := uc.Export(context.Background(), "doc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []string{"txt"}, uc.Formats())
}

func TestExport_GeneraDocumento(t *testing.T) {
	env := seededEnv(t, true)
	register(t, env, "M001", "P001", "", "L001", 50)
	uc := appinv.NewReportExportUseCase(env.balanceUC, fakeRenderer{"txt"})

	data, filename, contentType, err := uc.Export(context.Background(), "txt")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"P001"`)
	assert.Regexp(t, `^balance-report-\d{8}-\d{6}\.txt$`, filename)
	assert.Equal(t, "text/plain", contentType)
}
