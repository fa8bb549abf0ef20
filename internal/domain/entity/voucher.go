package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quanpham-dev/warehouse-api/internal/domain"
)

// Voucher code prefixes: PN = phiếu nhập (import), PX = phiếu xuất (export).
const (
	ImportCodePrefix = "PN"
	ExportCodePrefix = "PX"
)

// ImportLine is one received good on an import voucher.
// LineTotal = QtyIn * UnitCostIn, computed once at creation.
type ImportLine struct {
	GoodCode   string
	QtyIn      int64
	UnitCostIn decimal.Decimal
	LineTotal  decimal.Decimal
}

// ExportLine is one shipped good on an export voucher.
type ExportLine struct {
	GoodCode     string
	QtyOut       int64
	UnitPriceOut decimal.Decimal
	LineTotal    decimal.Decimal
}

// ImportVoucher records goods received from a supplier. Created atomically
// with its lines; each line increments the referenced good's on-hand
// quantity. Invoiced flips to true when an invoice claims the voucher and
// freezes it against edit and delete.
type ImportVoucher struct {
	Code         string
	Date         time.Time
	EmployeeCode string
	SupplierCode string
	Lines        []ImportLine
	Total        decimal.Decimal
	Invoiced     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ExportVoucher mirrors ImportVoucher for goods shipped out. Each line
// decrements on-hand quantity; creation fails if any line would drive it
// negative.
type ExportVoucher struct {
	Code         string
	Date         time.Time
	EmployeeCode string
	Lines        []ExportLine
	Total        decimal.Decimal
	Invoiced     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ComputeTotals fills LineTotal on every line and the voucher Total.
func (v *ImportVoucher) ComputeTotals() {
	total := decimal.Zero
	for i := range v.Lines {
		line := &v.Lines[i]
		line.LineTotal = line.UnitCostIn.Mul(decimal.NewFromInt(line.QtyIn))
		total = total.Add(line.LineTotal)
	}
	v.Total = total
}

// ComputeTotals fills LineTotal on every line and the voucher Total.
func (v *ExportVoucher) ComputeTotals() {
	total := decimal.Zero
	for i := range v.Lines {
		line := &v.Lines[i]
		line.LineTotal = line.UnitPriceOut.Mul(decimal.NewFromInt(line.QtyOut))
		total = total.Add(line.LineTotal)
	}
	v.Total = total
}

// Validate checks line shape before any mutation: at least one line,
// positive quantity, non-negative unit cost.
func (v *ImportVoucher) Validate() error {
	if len(v.Lines) == 0 {
		return &domain.ValidationError{Field: "lines", Reason: "at least one line required"}
	}
	for _, line := range v.Lines {
		if line.GoodCode == "" {
			return &domain.ValidationError{Field: "lines.goodCode", Reason: "required"}
		}
		if line.QtyIn <= 0 {
			return &domain.ValidationError{Field: "lines.qtyIn", Reason: "must be positive"}
		}
		if line.UnitCostIn.IsNegative() {
			return &domain.ValidationError{Field: "lines.unitCostIn", Reason: "must not be negative"}
		}
	}
	return nil
}

// Validate checks line shape before any mutation.
func (v *ExportVoucher) Validate() error {
	if len(v.Lines) == 0 {
		return &domain.ValidationError{Field: "lines", Reason: "at least one line required"}
	}
	for _, line := range v.Lines {
		if line.GoodCode == "" {
			return &domain.ValidationError{Field: "lines.goodCode", Reason: "required"}
		}
		if line.QtyOut <= 0 {
			return &domain.ValidationError{Field: "lines.qtyOut", Reason: "must be positive"}
		}
		if line.UnitPriceOut.IsNegative() {
			return &domain.ValidationError{Field: "lines.unitPriceOut", Reason: "must not be negative"}
		}
	}
	return nil
}

// StockDeltas returns the net on-hand effect per good code: +QtyIn for every
// line. Used for creation (as is) and deletion (negated).
func (v *ImportVoucher) StockDeltas() map[string]int64 {
	deltas := make(map[string]int64, len(v.Lines))
	for _, line := range v.Lines {
		deltas[line.GoodCode] += line.QtyIn
	}
	return deltas
}

// StockDeltas returns the net on-hand effect per good code: -QtyOut for
// every line.
func (v *ExportVoucher) StockDeltas() map[string]int64 {
	deltas := make(map[string]int64, len(v.Lines))
	for _, line := range v.Lines {
		deltas[line.GoodCode] -= line.QtyOut
	}
	return deltas
}

// DiffDeltas computes the net per-good stock delta that turns the effect of
// prev into the effect of next. Applying it alongside a line replacement
// keeps on-hand quantities consistent with the edited voucher.
func DiffDeltas(prev, next map[string]int64) map[string]int64 {
	diff := make(map[string]int64, len(next))
	for code, qty := range next {
		diff[code] = qty - prev[code]
	}
	for code, qty := range prev {
		if _, seen := next[code]; !seen {
			diff[code] = -qty
		}
	}
	for code, qty := range diff {
		if qty == 0 {
			delete(diff, code)
		}
	}
	return diff
}
