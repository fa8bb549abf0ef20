package repository

import "context"

// Repos bundles every repository bound to one database transaction.
type Repos struct {
	Goods          GoodRepository
	ImportVouchers ImportVoucherRepository
	ExportVouchers ExportVoucherRepository
	Invoices       InvoiceRepository
	Payments       PaymentRepository
	Shipments      ShipmentRepository
}

// TxRunner runs fn inside a single transaction, committing on nil and
// rolling back on error. Every public engine operation is one Run call, so a
// request either commits whole or leaves prior state unchanged. Lock
// contention surfaces as domain.ErrConflict.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
