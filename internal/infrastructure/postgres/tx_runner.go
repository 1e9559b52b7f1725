package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pagos-api/internal/application/settlement"
	"github.com/jhoicas/pagos-api/internal/domain/repository"
)

// Ensure TxRunner implements settlement.TxRunner.
var _ settlement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSettlement inicia una transacción, ejecuta fn con los repos del motor de
// liquidación atados a la tx y hace Commit o Rollback. Un error dentro de fn
// revierte todas las escrituras del callback.
func (r *TxRunner) RunSettlement(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	saldoRepo repository.SaldoFavorRepository,
	pagoRepo repository.PagoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	saldoRepo := NewSaldoFavorRepository(tx)
	pagoRepo := NewPagoRepository(tx)

	if err := fn(invoiceRepo, saldoRepo, pagoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
