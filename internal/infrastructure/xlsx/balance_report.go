// Package xlsx exporta el reporte de saldos como libro de Excel con excelize.
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

const (
	sheetBalances = "Saldos"
	sheetDangling = "Huerfanos"
)

var _ inventory.ReportRenderer = (*BalanceReportRenderer)(nil)

// BalanceReportRenderer implementa inventory.ReportRenderer.
type BalanceReportRenderer struct{}

func NewBalanceReportRenderer() *BalanceReportRenderer { return &BalanceReportRenderer{} }

func (BalanceReportRenderer) Format() string { return "xlsx" }

func (BalanceReportRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render escribe una hoja con los saldos y, si hay referencias huérfanas, otra hoja con ellas.
func (BalanceReportRenderer) Render(report *dto.BalanceReportResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("xlsx: reporte nil")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetBalances); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	header := []interface{}{"product_id", "product_name", "location_id", "location_name", "balance"}
	if err := f.SetSheetRow(sheetBalances, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheetBalances, "A1", "E1", style)
	}

	for i, it := range report.Items {
		values := []interface{}{it.ProductID, it.ProductName, it.LocationID, it.LocationName, it.Balance}
		if err := writeRow(f, sheetBalances, i+2, values); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheetBalances, "A", "D", 20)

	if len(report.Dangling) > 0 {
		if _, err := f.NewSheet(sheetDangling); err != nil {
			return nil, fmt.Errorf("xlsx: hoja huérfanos: %w", err)
		}
		header := []interface{}{"product_id", "location_id", "balance", "missing_product", "missing_location"}
		if err := f.SetSheetRow(sheetDangling, "A1", &header); err != nil {
			return nil, fmt.Errorf("xlsx: encabezado huérfanos: %w", err)
		}
		for i, d := range report.Dangling {
			values := []interface{}{d.ProductID, d.LocationID, d.Balance, d.MissingProduct, d.MissingLocation}
			if err := writeRow(f, sheetDangling, i+2, values); err != nil {
				return nil, err
			}
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", row, err)
	}
	return nil
}
