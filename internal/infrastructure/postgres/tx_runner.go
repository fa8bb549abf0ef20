package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner runs use-case closures inside one PostgreSQL transaction, with
// every repository bound to that transaction. Lock contention surfaces as
// domain.ErrConflict so callers know to retry the whole operation.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner from the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repositories and
// commits, or rolls back on any error.
func (t *TxRunner) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := repository.Repos{
		Goods:          NewGoodRepository(tx),
		ImportVouchers: NewImportVoucherRepository(tx),
		ExportVouchers: NewExportVoucherRepository(tx),
		Invoices:       NewInvoiceRepository(tx),
		Payments:       NewPaymentRepository(tx),
		Shipments:      NewShipmentRepository(tx),
	}

	if err := fn(repos); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
