package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	LocationUC  *usecase.LocationUseCase
	MovementUC  *inventory.MovementUseCase
	BalanceUC   *inventory.BalanceUseCase
	ExportUC    *inventory.ReportExportUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
	Session     SessionCookie
}

// ServerOptions piezas transversales de la app Fiber.
type ServerOptions struct {
	AppName        string
	Log            *logger.Logger
	Observer       HTTPObserver    // nil = sin métricas HTTP
	MetricsHandler nethttp.Handler // nil = sin /metrics
	DocsFilePath   string          // vacío = sin /docs
}

// NewApp construye la app Fiber con middlewares, /health, /metrics, /docs y las rutas de la API.
func NewApp(opts ServerOptions, deps RouterDeps) *fiber.App {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(opts.Log, opts.Observer))

	if opts.DocsFilePath != "" {
		// Swagger UI: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: opts.DocsFilePath,
			Path:     "docs",
			Title:    "Stock Ledger API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.AppName})
	})
	if opts.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.MetricsHandler))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret, deps.Session.Name)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Session)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Rutas protegidas (Bearer Token o cookie de sesión)
	protected := api.Group("/", authMW)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", locationHandler.Create)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Movements: edición y borrado de históricos solo admin
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", adminOnly, movementHandler.Update)
	movements.Delete("/:id", adminOnly, movementHandler.Delete)

	inventoryHandler := NewInventoryHandler(deps.BalanceUC, deps.ExportUC)
	protected.Get("/inventory/locations-with-stock/:product_id", inventoryHandler.LocationsWithStock)
	protected.Get("/reports/balance", inventoryHandler.BalanceReport)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
