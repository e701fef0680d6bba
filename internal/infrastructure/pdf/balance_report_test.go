package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

func TestFormatThousands(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		25000:    "25.000",
		1000000:  "1.000.000",
		-1000000: "-1.000.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatThousands(in))
	}
}

func TestLabelWithID(t *testing.T) {
	assert.Equal(t, "Laptop (P001)", labelWithID("Laptop", "P001"))
	assert.Equal(t, "P001", labelWithID("", "P001"))
	assert.Equal(t, "P001", labelWithID("P001", "P001"))
}

func TestRender_GeneraPDF(t *testing.T) {
	r := NewBalanceReportRenderer("")
	assert.Equal(t, "pdf", r.Format())
	assert.Equal(t, "application/pdf", r.ContentType())

	report := &dto.BalanceReportResponse{
		Items: []dto.BalanceRowDTO{
			{ProductID: "P001", ProductName: "Laptop", LocationID: "L001", LocationName: "Warehouse A", Balance: 40},
			{ProductID: "P001", ProductName: "Laptop", LocationID: "L003", LocationName: "Store", Balance: 10},
		},
		Dangling:    []dto.DanglingReferenceDTO{{ProductID: "P404", LocationID: "L001", Balance: 3, MissingProduct: true}},
		Total:       2,
		GeneratedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	out, err := r.Render(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_ReporteNil(t *testing.T) {
	_, err := NewBalanceReportRenderer("x").Render(nil)
	assert.Error(t, err)
}
