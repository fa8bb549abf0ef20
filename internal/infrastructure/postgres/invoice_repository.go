package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository over PostgreSQL. The voucher
// reference is stored flattened (source_kind, source_code); a partial unique
// index on the pair backs the one-invoice-per-voucher invariant at the
// storage layer as well.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or a tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	code, issue_date, customer_code, source_kind, source_code, total, status,
	delivery_method, payment_method, recipient_address, employee_code, created_at, updated_at`

// Create persists the invoice.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	const query = `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	var customer sql.NullString
	if inv.CustomerCode != nil {
		customer = sql.NullString{String: *inv.CustomerCode, Valid: true}
	}
	_, err := r.q.Exec(ctx, query,
		inv.Code, inv.IssueDate, customer,
		inv.Source.Kind, nullIfEmpty(inv.Source.Code),
		inv.Total, inv.Status,
		nullIfEmpty(inv.DeliveryMethod), nullIfEmpty(inv.PaymentMethod), nullIfEmpty(inv.RecipientAddress),
		inv.EmployeeCode, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice %s: %w", inv.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var customer, sourceCode, delivery, payment, address sql.NullString
	err := row.Scan(
		&inv.Code, &inv.IssueDate, &customer, &inv.Source.Kind, &sourceCode,
		&inv.Total, &inv.Status, &delivery, &payment, &address,
		&inv.EmployeeCode, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if customer.Valid {
		inv.CustomerCode = &customer.String
	}
	inv.Source.Code = sourceCode.String
	inv.DeliveryMethod = delivery.String
	inv.PaymentMethod = payment.String
	inv.RecipientAddress = address.String
	return &inv, nil
}

// GetByCode returns one invoice.
func (r *InvoiceRepo) GetByCode(ctx context.Context, code string) (*entity.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE code = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s: %w", code, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetForUpdate loads the invoice under a row lock so concurrent payment
// attempts serialize.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, code string) (*entity.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE code = $1 FOR UPDATE`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s: %w", code, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get invoice for update: %w", err)
	}
	return inv, nil
}

// List returns all invoices, newest first.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// UpdateStatus writes the new status.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, code, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE invoices SET status = $2, updated_at = now() WHERE code = $1`, code, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", code, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the invoice.
func (r *InvoiceRepo) Delete(ctx context.Context, code string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", code, domain.ErrNotFound)
	}
	return nil
}

// ListCodes returns all codes with the prefix, for sequence generation.
func (r *InvoiceRepo) ListCodes(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT code FROM invoices WHERE code LIKE $1 || '%'`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list invoice codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan invoice code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// FindBySource returns the invoice backed by the given voucher.
func (r *InvoiceRepo) FindBySource(ctx context.Context, source entity.VoucherRef) (*entity.Invoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM invoices WHERE source_kind = $1 AND source_code = $2`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, source.Kind, source.Code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice for %s %s: %w", source.Kind, source.Code, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find invoice by source: %w", err)
	}
	return inv, nil
}
