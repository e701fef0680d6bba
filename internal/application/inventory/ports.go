package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una unidad de trabajo sobre el ledger con exclusión por producto.
// Mientras fn corre ninguna otra unidad de trabajo sobre los mismos productos puede validar ni escribir.
// Si fn retorna error, nada de lo escrito se conserva.
type TxRunner interface {
	Run(ctx context.Context, productIDs []string, fn func(ledger repository.MovementRepository) error) error
}

// Metrics registra contadores del motor de inventario.
type Metrics interface {
	MovementRecorded(kind string)
	MovementRejected(reason string)
	BalanceComputed(d time.Duration)
}

// NopMetrics descarta todas las métricas.
type NopMetrics struct{}

func (NopMetrics) MovementRecorded(string)       {}
func (NopMetrics) MovementRejected(string)       {}
func (NopMetrics) BalanceComputed(time.Duration) {}

// ReportRenderer genera un documento descargable a partir del reporte de saldos.
type ReportRenderer interface {
	Format() string      // "pdf", "xlsx"
	ContentType() string // MIME del documento
	Render(report *dto.BalanceReportResponse) ([]byte, error)
}
