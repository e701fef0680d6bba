package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

// ReportExportUseCase genera el reporte de saldos como documento descargable (PDF, XLSX).
type ReportExportUseCase struct {
	balances  *BalanceUseCase
	renderers map[string]ReportRenderer
}

// NewReportExportUseCase construye el caso de uso con los renderizadores disponibles.
func NewReportExportUseCase(balances *BalanceUseCase, renderers ...ReportRenderer) *ReportExportUseCase {
	m := make(map[string]ReportRenderer, len(renderers))
	for _, r := range renderers {
		m[r.Format()] = r
	}
	return &ReportExportUseCase{balances: balances, renderers: m}
}

// Formats lista los formatos soportados, en orden alfabético.
func (uc *ReportExportUseCase) Formats() []string {
	out := make([]string, 0, len(uc.renderers))
	for f := range uc.renderers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Export genera el documento en el formato indicado.
//
// Retorna:
//   - (bytes, filename, contentType, nil) si todo sale bien.
//   - domain.ErrInvalidInput si el formato no está soportado.
func (uc *ReportExportUseCase) Export(ctx context.Context, format string) (data []byte, filename, contentType string, err error) {
	r, ok := uc.renderers[format]
	if !ok {
		return nil, "", "", domain.ErrInvalidInput
	}
	report, err := uc.balances.Report(ctx)
	if err != nil {
		return nil, "", "", err
	}
	data, err = r.Render(report)
	if err != nil {
		return nil, "", "", fmt.Errorf("generar reporte %s: %w", format, err)
	}
	filename = fmt.Sprintf("balance-report-%s.%s", report.GeneratedAt.Format("20060102-150405"), format)
	return data, filename, r.ContentType(), nil
}
