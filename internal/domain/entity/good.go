package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Good represents a stock-keeping unit. OnHandQty is the single source of
// truth for availability and is mutated only through voucher operations;
// it never goes below zero.
type Good struct {
	Code      string
	Name      string
	Unit      string // đơn vị tính: cái, hộp, kg, ...
	UnitPrice decimal.Decimal
	OnHandQty int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
