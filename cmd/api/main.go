package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/bootstrap"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/metrics"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/internal/seed"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Str("guard", cfg.Inventory.Guard).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()

	var prom *metrics.Prometheus
	opts := bootstrap.ServiceOptions{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		Log:      log,
		Location: loc,
		AppName:  cfg.App.Name,
	}
	if cfg.Metrics.Enabled {
		prom = metrics.New()
		opts.Metrics = prom
	}
	svc := bootstrap.NewServices(store, opts)

	if cfg.Seed.SampleData {
		if _, err := seed.SampleData(ctx, svc, log); err != nil {
			log.Fatal().Err(err).Msg("cargar datos de ejemplo")
		}
	}

	serverOpts := httpRouter.ServerOptions{AppName: cfg.App.Name, Log: log.Component("http")}
	if prom != nil {
		serverOpts.Observer = prom
		serverOpts.MetricsHandler = prom.Handler()
	}
	if cfg.Docs.Enabled {
		if _, err := os.Stat(cfg.Docs.FilePath); err == nil {
			serverOpts.DocsFilePath = cfg.Docs.FilePath
		} else {
			log.Warn().Str("file", cfg.Docs.FilePath).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	app := httpRouter.NewApp(serverOpts, httpRouter.RouterDeps{
		AuthUC:      svc.Auth,
		ProductUC:   svc.Products,
		LocationUC:  svc.Locations,
		MovementUC:  svc.Movements,
		BalanceUC:   svc.Balances,
		ExportUC:    svc.Export,
		DashboardUC: svc.Dashboard,
		JWTSecret:   cfg.JWT.Secret,
		Session: httpRouter.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
