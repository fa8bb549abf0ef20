package repository

import (
	"context"

	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
)

// ImportVoucherRepository is the persistence port for import vouchers and
// their lines. Claim/Release implement the voucher → invoice link guard as a
// conditional flip of the invoiced flag, so two concurrent invoice creations
// against the same voucher cannot both succeed.
type ImportVoucherRepository interface {
	Create(ctx context.Context, voucher *entity.ImportVoucher) error
	GetByCode(ctx context.Context, code string) (*entity.ImportVoucher, error)
	List(ctx context.Context) ([]*entity.ImportVoucher, error)
	// ReplaceLines swaps the voucher's lines and updates the stored totals.
	ReplaceLines(ctx context.Context, voucher *entity.ImportVoucher) error
	Delete(ctx context.Context, code string) error
	// ListCodes returns all codes starting with prefix, for sequential
	// code generation.
	ListCodes(ctx context.Context, prefix string) ([]string, error)
	// Claim atomically marks the voucher as invoiced. Returns
	// ErrVoucherAlreadyInvoiced when it already backs an invoice.
	Claim(ctx context.Context, code string) error
	// Release clears the invoiced flag when the backing invoice is deleted.
	Release(ctx context.Context, code string) error
}

// ExportVoucherRepository mirrors ImportVoucherRepository for export
// vouchers.
type ExportVoucherRepository interface {
	Create(ctx context.Context, voucher *entity.ExportVoucher) error
	GetByCode(ctx context.Context, code string) (*entity.ExportVoucher, error)
	List(ctx context.Context) ([]*entity.ExportVoucher, error)
	ReplaceLines(ctx context.Context, voucher *entity.ExportVoucher) error
	Delete(ctx context.Context, code string) error
	ListCodes(ctx context.Context, prefix string) ([]string, error)
	Claim(ctx context.Context, code string) error
	Release(ctx context.Context, code string) error
}
