// seed carga el dataset de ejemplo (empresas, préstamos con su cronograma,
// consorcios y perfiles) en la base de datos del modo conectado, dentro de una
// sola transacción. Los registros se insertan o actualizan por ID, así que se
// puede ejecutar más de una vez.
//
// Uso: go run ./cmd/seed [-migrate]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Creditos-api/internal/domain/repository"
	"github.com/jhoicas/Creditos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Creditos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Creditos-api/pkg/config"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

func main() {
	migrate := flag.Bool("migrate", false, "aplicar migraciones antes de cargar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.DB.Configured() {
		fmt.Fprintln(os.Stderr, "Definir DATABASE_URL o DB_HOST")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *migrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
			os.Exit(1)
		}
	}

	data := memory.SampleData()
	err = postgres.NewTxRunner(pool).Run(ctx, func(b repository.Backend) error {
		if err := upsertAll(ctx, b.Companies(), data.Companies); err != nil {
			return fmt.Errorf("empresas: %w", err)
		}
		if err := upsertAll(ctx, b.Loans(), data.Loans); err != nil {
			return fmt.Errorf("préstamos: %w", err)
		}
		if err := upsertAll(ctx, b.Installments(), data.Installments); err != nil {
			return fmt.Errorf("cuotas: %w", err)
		}
		if err := upsertAll(ctx, b.Consortiums(), data.Consortiums); err != nil {
			return fmt.Errorf("consorcios: %w", err)
		}
		if err := upsertAll(ctx, b.Users(), data.Users); err != nil {
			return fmt.Errorf("usuarios: %w", err)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Carga: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Int("companies", len(data.Companies)).
		Int("loans", len(data.Loans)).
		Int("installments", len(data.Installments)).
		Int("consortiums", len(data.Consortiums)).
		Int("users", len(data.Users)).
		Msg("dataset de ejemplo cargado")
}

func upsertAll[T any](ctx context.Context, c repository.Collection[T], records []T) error {
	for _, r := range records {
		if _, err := c.Upsert(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
