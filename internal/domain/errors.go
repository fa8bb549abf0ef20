package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel errors of the engine. Handlers match these with errors.Is to pick
// the HTTP status; the typed errors below carry the payload for the response
// body and satisfy errors.Is against their sentinel.
var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrDuplicate              = errors.New("duplicate resource")
	ErrForbidden              = errors.New("access denied")
	ErrConflict               = errors.New("conflict with current state, retry the operation")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrVoucherAlreadyInvoiced = errors.New("voucher already backs an invoice")
	ErrVoucherLocked          = errors.New("voucher is locked by an invoice")
	ErrAlreadyPaid            = errors.New("invoice already paid")
	ErrDeadlineExpired        = errors.New("payment deadline expired")
	ErrInsufficientAmount     = errors.New("payment amount below invoice total")
)

// InsufficientStockError reports an export line that would drive a good's
// on-hand quantity negative.
type InsufficientStockError struct {
	GoodCode  string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.GoodCode, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InsufficientAmountError reports a payment below the invoice total.
type InsufficientAmountError struct {
	Required decimal.Decimal
	Given    decimal.Decimal
}

func (e *InsufficientAmountError) Error() string {
	return fmt.Sprintf("payment amount %s below invoice total %s",
		e.Given.String(), e.Required.String())
}

func (e *InsufficientAmountError) Is(target error) bool {
	return target == ErrInsufficientAmount
}

// DeadlineExpiredError reports a payment attempted after the 30-day window.
// The invoice stays Unpaid; the UI is expected to surface this distinctly
// from ordinary validation failures.
type DeadlineExpiredError struct {
	Deadline time.Time
}

func (e *DeadlineExpiredError) Error() string {
	return fmt.Sprintf("payment deadline expired at %s", e.Deadline.Format(time.RFC3339))
}

func (e *DeadlineExpiredError) Is(target error) bool {
	return target == ErrDeadlineExpired
}

// ValidationError wraps ErrInvalidInput with a field-level reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
