package repository

import (
	"context"

	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
)

// InvoiceRepository is the persistence port for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByCode(ctx context.Context, code string) (*entity.Invoice, error)
	// GetForUpdate loads the invoice under a row lock; the payment pipeline
	// uses it so two concurrent pay() calls serialize on the invoice row.
	GetForUpdate(ctx context.Context, code string) (*entity.Invoice, error)
	List(ctx context.Context) ([]*entity.Invoice, error)
	// UpdateStatus writes the new status unconditionally (callers hold the
	// row lock or are the privileged override path).
	UpdateStatus(ctx context.Context, code, status string) error
	Delete(ctx context.Context, code string) error
	ListCodes(ctx context.Context, prefix string) ([]string, error)
	// FindBySource returns the invoice backed by the given voucher, or
	// ErrNotFound.
	FindBySource(ctx context.Context, source entity.VoucherRef) (*entity.Invoice, error)
}

// PaymentRepository is the persistence port for payment records. At most one
// payment row exists per invoice (unique invoice code).
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByInvoice(ctx context.Context, invoiceCode string) (*entity.Payment, error)
}

// ShipmentRepository is the persistence port for shipments. CreateIfAbsent
// makes dispatch idempotent: the insert is a no-op when a shipment already
// exists for the invoice.
type ShipmentRepository interface {
	// CreateIfAbsent inserts the shipment unless one already exists for its
	// invoice; it returns the stored shipment and whether it was created now.
	CreateIfAbsent(ctx context.Context, shipment *entity.Shipment) (*entity.Shipment, bool, error)
	GetByCode(ctx context.Context, code string) (*entity.Shipment, error)
	GetByInvoice(ctx context.Context, invoiceCode string) (*entity.Shipment, error)
	UpdateStatus(ctx context.Context, code, status string) error
	ListCodes(ctx context.Context, prefix string) ([]string, error)
}
