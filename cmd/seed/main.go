// seed aplica las migraciones y carga datos de ejemplo y/o un catálogo de productos en CSV.
//
// Uso:
//
//	go run ./cmd/seed                       # datos de ejemplo (admin, P001-P003, L001-L003, M001-M003)
//	go run ./cmd/seed -catalog productos.csv -sample=false
//
// El CSV tiene columnas id,name,category; puede venir en UTF-8 o ISO-8859-1.
// Usa la misma configuración que la API (DB_DRIVER, DATABASE_URL, SQLITE_PATH...).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/stock-ledger/internal/application/auth"
	"github.com/jhoicas/stock-ledger/internal/bootstrap"
	"github.com/jhoicas/stock-ledger/internal/seed"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func main() {
	sample := flag.Bool("sample", true, "cargar los datos de ejemplo")
	catalog := flag.String("catalog", "", "ruta de un CSV id,name,category a importar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := bootstrap.NewServices(store, bootstrap.ServiceOptions{
		JWT: auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		Log: log,
	})

	if *sample {
		res, err := seed.SampleData(ctx, svc, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Datos de ejemplo: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Datos de ejemplo: %d creados, %d ya existían\n", res.Created, res.Skipped)
	}

	if *catalog != "" {
		f, err := os.Open(*catalog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		res, err := seed.ImportProductsCSV(ctx, f, svc.Products, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Importar CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Catálogo: %d productos creados, %d omitidos\n", res.Created, res.Skipped)
	}
}
