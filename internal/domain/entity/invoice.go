package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quanpham-dev/warehouse-api/internal/domain"
)

// Invoice code prefix: HD = hóa đơn.
const InvoiceCodePrefix = "HD"

// PaymentDeadline is the hard window after issue within which an invoice can
// be settled. It is a data comparison, never a scheduled timer.
const PaymentDeadline = 30 * 24 * time.Hour

// Invoice statuses. Status only moves forward; Paid is terminal except for
// the privileged manual override.
const (
	InvoiceStatusUnpaid     = "UNPAID"
	InvoiceStatusProcessing = "PROCESSING"
	InvoiceStatusPaid       = "PAID"
)

// Delivery methods.
const (
	DeliveryMethodDelivery = "DELIVERY"
	DeliveryMethodCounter  = "COUNTER"
)

// Payment methods. COD is a voucher-time delivery/payment combination and is
// not a valid explicit method at pay() time.
const (
	PaymentMethodCash         = "CASH"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodVNPay        = "VNPAY"
	PaymentMethodMoMo         = "MOMO"
	PaymentMethodZaloPay      = "ZALOPAY"
	PaymentMethodCOD          = "COD"
)

// Source kinds for an invoice's backing voucher.
const (
	SourceNone   = "NONE"
	SourceImport = "IMPORT"
	SourceExport = "EXPORT"
)

// VoucherRef is the tagged reference from an invoice to its backing voucher.
// Exactly one shape is legal: {NONE, ""} or {IMPORT|EXPORT, code}.
type VoucherRef struct {
	Kind string
	Code string
}

// NoVoucher returns the empty reference for a standalone invoice.
func NoVoucher() VoucherRef { return VoucherRef{Kind: SourceNone} }

// ImportVoucherRef references an import voucher.
func ImportVoucherRef(code string) VoucherRef {
	return VoucherRef{Kind: SourceImport, Code: code}
}

// ExportVoucherRef references an export voucher.
func ExportVoucherRef(code string) VoucherRef {
	return VoucherRef{Kind: SourceExport, Code: code}
}

// IsNone reports whether the invoice stands alone.
func (r VoucherRef) IsNone() bool { return r.Kind == SourceNone || r.Kind == "" }

// Validate rejects malformed references.
func (r VoucherRef) Validate() error {
	switch r.Kind {
	case SourceNone, "":
		if r.Code != "" {
			return &domain.ValidationError{Field: "source.code", Reason: "must be empty when no voucher is referenced"}
		}
	case SourceImport, SourceExport:
		if r.Code == "" {
			return &domain.ValidationError{Field: "source.code", Reason: "required"}
		}
	default:
		return &domain.ValidationError{Field: "source.kind", Reason: "unknown kind " + r.Kind}
	}
	return nil
}

// Invoice is a billing document. Import-sourced invoices have no customer
// and no delivery fields; export-sourced and standalone invoices bill a
// customer. A voucher backs at most one invoice.
type Invoice struct {
	Code             string
	IssueDate        time.Time
	CustomerCode     *string
	Source           VoucherRef
	Total            decimal.Decimal
	Status           string
	DeliveryMethod   string
	PaymentMethod    string
	RecipientAddress string
	EmployeeCode     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Deadline is the last instant a payment is accepted.
func (i *Invoice) Deadline() time.Time {
	return i.IssueDate.Add(PaymentDeadline)
}

// IsExpired reports whether now is past the payment deadline. An expired
// invoice stays Unpaid and visibly overdue; nothing auto-transitions it.
func (i *Invoice) IsExpired(now time.Time) bool {
	return now.After(i.Deadline())
}

// ValidStatus reports whether s is one of the known invoice statuses.
func ValidStatus(s string) bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusProcessing, InvoiceStatusPaid:
		return true
	}
	return false
}

// ValidDeliveryMethod reports whether m is a known delivery method.
func ValidDeliveryMethod(m string) bool {
	return m == DeliveryMethodDelivery || m == DeliveryMethodCounter
}

// ValidPaymentMethod reports whether m is a known payment method, COD
// included (legal at invoice creation, not at pay time).
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodVNPay,
		PaymentMethodMoMo, PaymentMethodZaloPay, PaymentMethodCOD:
		return true
	}
	return false
}

// ValidSettlementMethod reports whether m may be presented to pay().
func ValidSettlementMethod(m string) bool {
	return ValidPaymentMethod(m) && m != PaymentMethodCOD
}
