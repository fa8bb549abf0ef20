package dto

import "github.com/shopspring/decimal"

// ImportLineRequest is one received line on an import voucher request.
type ImportLineRequest struct {
	GoodCode   string          `json:"goodCode" validate:"required"`
	QtyIn      int64           `json:"qtyIn" validate:"gt=0"`
	UnitCostIn decimal.Decimal `json:"unitCostIn"`
}

// ExportLineRequest is one shipped line on an export voucher request.
type ExportLineRequest struct {
	GoodCode     string          `json:"goodCode" validate:"required"`
	QtyOut       int64           `json:"qtyOut" validate:"gt=0"`
	UnitPriceOut decimal.Decimal `json:"unitPriceOut"`
}

// CreateImportVoucherRequest creates an import voucher. Code is optional;
// when omitted the next PN sequence number is generated. Date defaults to
// today.
type CreateImportVoucherRequest struct {
	Code         string              `json:"code"`
	Date         string              `json:"date"`
	SupplierCode string              `json:"supplierCode" validate:"required"`
	Lines        []ImportLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CreateExportVoucherRequest creates an export voucher.
type CreateExportVoucherRequest struct {
	Code  string              `json:"code"`
	Date  string              `json:"date"`
	Lines []ExportLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// EditImportVoucherRequest replaces the voucher's lines; the stock effect is
// the net per-good diff against the old lines.
type EditImportVoucherRequest struct {
	Lines []ImportLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// EditExportVoucherRequest replaces the voucher's lines.
type EditExportVoucherRequest struct {
	Lines []ExportLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ImportLineResponse is one line of an import voucher on the wire.
type ImportLineResponse struct {
	GoodCode   string          `json:"goodCode"`
	QtyIn      int64           `json:"qtyIn"`
	UnitCostIn decimal.Decimal `json:"unitCostIn"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
}

// ExportLineResponse is one line of an export voucher on the wire.
type ExportLineResponse struct {
	GoodCode     string          `json:"goodCode"`
	QtyOut       int64           `json:"qtyOut"`
	UnitPriceOut decimal.Decimal `json:"unitPriceOut"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

// ImportVoucherResponse mirrors entity.ImportVoucher on the wire.
type ImportVoucherResponse struct {
	Code         string               `json:"code"`
	Date         string               `json:"date"`
	EmployeeCode string               `json:"employeeCode"`
	SupplierCode string               `json:"supplierCode"`
	Lines        []ImportLineResponse `json:"lines"`
	Total        decimal.Decimal      `json:"total"`
	Invoiced     bool                 `json:"invoiced"`
}

// ExportVoucherResponse mirrors entity.ExportVoucher on the wire.
type ExportVoucherResponse struct {
	Code         string               `json:"code"`
	Date         string               `json:"date"`
	EmployeeCode string               `json:"employeeCode"`
	Lines        []ExportLineResponse `json:"lines"`
	Total        decimal.Decimal      `json:"total"`
	Invoiced     bool                 `json:"invoiced"`
}
