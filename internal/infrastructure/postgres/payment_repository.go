package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository over PostgreSQL. The unique
// index on invoice_code enforces one payment per invoice even if the
// application-level lock is ever bypassed.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the adapter. Pass a pool or a tx.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create inserts the payment record.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	const query = `
		INSERT INTO payments (id, invoice_code, method, amount, note, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, p.ID, p.InvoiceCode, p.Method, p.Amount, nullIfEmpty(p.Note), p.Timestamp)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice %s: %w", p.InvoiceCode, domain.ErrAlreadyPaid)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByInvoice returns the payment for an invoice.
func (r *PaymentRepo) GetByInvoice(ctx context.Context, invoiceCode string) (*entity.Payment, error) {
	const query = `
		SELECT id, invoice_code, method, amount, COALESCE(note, ''), timestamp
		FROM payments WHERE invoice_code = $1`
	var p entity.Payment
	err := r.q.QueryRow(ctx, query, invoiceCode).Scan(
		&p.ID, &p.InvoiceCode, &p.Method, &p.Amount, &p.Note, &p.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment for invoice %s: %w", invoiceCode, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}
