package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the immutable record of a successful settlement. Exactly one
// exists per invoice, created on the Unpaid → Paid transition.
type Payment struct {
	ID          string
	InvoiceCode string
	Method      string
	Amount      decimal.Decimal
	Note        string
	Timestamp   time.Time
}
