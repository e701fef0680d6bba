package bootstrap

import (
	"time"

	appanalytics "github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/xlsx"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ServiceOptions piezas transversales de los casos de uso. Todos los campos son opcionales.
type ServiceOptions struct {
	JWT      auth.JWTConfig
	Metrics  inventory.Metrics
	Log      *logger.Logger
	Location *time.Location // zona horaria de los movimientos
	AppName  string         // título de los reportes
}

// Services casos de uso listos para los handlers y el seed.
type Services struct {
	Auth      *auth.AuthUseCase
	Products  *usecase.ProductUseCase
	Locations *usecase.LocationUseCase
	Movements *inventory.MovementUseCase
	Balances  *inventory.BalanceUseCase
	Export    *inventory.ReportExportUseCase
	Dashboard *appanalytics.DashboardUseCase
}

// NewServices construye los casos de uso sobre st.
func NewServices(st *Store, opts ServiceOptions) *Services {
	movements := inventory.NewMovementUseCase(
		st.TxRunner, st.Movements, st.Products, st.Locations,
		opts.Metrics, opts.Log.Component("movements"), opts.Location,
	)
	balances := inventory.NewBalanceUseCase(st.Movements, st.Products, st.Locations, opts.Metrics, opts.Log.Component("balances"))

	title := "Reporte de saldos"
	if opts.AppName != "" {
		title = opts.AppName + " · " + title
	}
	export := inventory.NewReportExportUseCase(balances,
		pdf.NewBalanceReportRenderer(title),
		xlsx.NewBalanceReportRenderer(),
	)

	return &Services{
		Auth:      auth.NewAuthUseCase(st.Users, opts.JWT),
		Products:  usecase.NewProductUseCase(st.Products, st.Locations, movements),
		Locations: usecase.NewLocationUseCase(st.Locations),
		Movements: movements,
		Balances:  balances,
		Export:    export,
		Dashboard: appanalytics.NewDashboardUseCase(st.Products, st.Locations, st.Movements, movements),
	}
}
