package dto

import "github.com/shopspring/decimal"

// PayRequest settles an invoice. COD is not accepted here; it is a
// voucher-time delivery/payment combination handled at invoice creation.
type PayRequest struct {
	Method string          `json:"method" validate:"required,oneof=CASH BANK_TRANSFER VNPAY MOMO ZALOPAY"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

// PaymentResponse is the receipt returned on a successful settlement.
type PaymentResponse struct {
	ID          string          `json:"id"`
	InvoiceCode string          `json:"invoiceCode"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
	Timestamp   string          `json:"timestamp"`
}
