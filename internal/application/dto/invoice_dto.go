package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest creates an invoice. Exactly one source shape is
// legal:
//
//   - sourceKind NONE: customerCode and total required;
//   - sourceKind IMPORT: sourceCode required, no customer/delivery fields;
//   - sourceKind EXPORT: sourceCode, customerCode, deliveryMethod and
//     paymentMethod required.
//
// Totals of voucher-backed invoices are always copied from the voucher;
// a caller-supplied total is only honored for standalone invoices.
type CreateInvoiceRequest struct {
	SourceKind       string          `json:"sourceKind" validate:"required,oneof=NONE IMPORT EXPORT"`
	SourceCode       string          `json:"sourceCode"`
	CustomerCode     string          `json:"customerCode"`
	DeliveryMethod   string          `json:"deliveryMethod"`
	PaymentMethod    string          `json:"paymentMethod"`
	RecipientAddress string          `json:"recipientAddress"`
	Total            decimal.Decimal `json:"total"`
}

// OverrideStatusRequest is the privileged manual status correction.
type OverrideStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=UNPAID PROCESSING PAID"`
}

// InvoiceResponse mirrors entity.Invoice on the wire.
type InvoiceResponse struct {
	Code             string          `json:"code"`
	IssueDate        string          `json:"issueDate"`
	CustomerCode     *string         `json:"customerCode"`
	SourceKind       string          `json:"sourceKind"`
	SourceCode       string          `json:"sourceCode,omitempty"`
	Total            decimal.Decimal `json:"total"`
	Status           string          `json:"status"`
	DeliveryMethod   string          `json:"deliveryMethod,omitempty"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	RecipientAddress string          `json:"recipientAddress,omitempty"`
	EmployeeCode     string          `json:"employeeCode"`
	Deadline         string          `json:"deadline"`
}
