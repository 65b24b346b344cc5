package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Creditos-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con un Backend atado a la tx y hace
// Commit, o Rollback si fn devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(b repository.Backend) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return backendError("iniciar transacción", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBackend(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", backendError("confirmar transacción", err))
	}
	return nil
}
