package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/facturapp-api/internal/application/billing"
	"github.com/jhoicas/facturapp-api/internal/application/inventory"
	"github.com/jhoicas/facturapp-api/internal/domain/repository"
)

var _ billing.InvoiceTxRunner = (*TxRunner)(nil)
var _ inventory.StockTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInvoice ejecuta fn con el repositorio de facturas atado a la tx (pagos, guardado con líneas).
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewInvoiceRepository(tx))
	})
}

// RunStock ejecuta fn con productos y movimientos atados a la tx (lote de movimientos).
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewStockMovementRepository(tx))
	})
}

// run inicia una transacción, ejecuta fn y hace Commit; cualquier error hace Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
