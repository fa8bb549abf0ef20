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

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implements ShipmentRepository over PostgreSQL.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository builds the adapter. Pass a pool or a tx.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// CreateIfAbsent inserts the shipment unless its invoice already has one;
// ON CONFLICT DO NOTHING on the invoice_code unique index makes dispatch
// idempotent without a separate existence check.
func (r *ShipmentRepo) CreateIfAbsent(ctx context.Context, s *entity.Shipment) (*entity.Shipment, bool, error) {
	const query = `
		INSERT INTO shipments (code, invoice_code, delivery_date, recipient_address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (invoice_code) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		s.Code, s.InvoiceCode, s.DeliveryDate, s.RecipientAddress, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert shipment: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return s, true, nil
	}
	existing, err := r.GetByInvoice(ctx, s.InvoiceCode)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *ShipmentRepo) scanOne(row pgx.Row) (*entity.Shipment, error) {
	var s entity.Shipment
	err := row.Scan(&s.Code, &s.InvoiceCode, &s.DeliveryDate, &s.RecipientAddress, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const shipmentColumns = `code, invoice_code, delivery_date, recipient_address, status, created_at, updated_at`

// GetByCode returns one shipment.
func (r *ShipmentRepo) GetByCode(ctx context.Context, code string) (*entity.Shipment, error) {
	const query = `SELECT ` + shipmentColumns + ` FROM shipments WHERE code = $1`
	s, err := r.scanOne(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("shipment %s: %w", code, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return s, nil
}

// GetByInvoice returns the shipment for an invoice.
func (r *ShipmentRepo) GetByInvoice(ctx context.Context, invoiceCode string) (*entity.Shipment, error) {
	const query = `SELECT ` + shipmentColumns + ` FROM shipments WHERE invoice_code = $1`
	s, err := r.scanOne(r.q.QueryRow(ctx, query, invoiceCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("shipment for invoice %s: %w", invoiceCode, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get shipment by invoice: %w", err)
	}
	return s, nil
}

// UpdateStatus writes the new tracking status.
func (r *ShipmentRepo) UpdateStatus(ctx context.Context, code, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE shipments SET status = $2, updated_at = now() WHERE code = $1`, code, status)
	if err != nil {
		return fmt.Errorf("update shipment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shipment %s: %w", code, domain.ErrNotFound)
	}
	return nil
}

// ListCodes returns all codes with the prefix, for sequence generation.
func (r *ShipmentRepo) ListCodes(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT code FROM shipments WHERE code LIKE $1 || '%'`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list shipment codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan shipment code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
