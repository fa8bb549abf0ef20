package dto

import "github.com/shopspring/decimal"

// CreateGoodRequest registers a new stocked good. OnHandQty always starts at
// zero; stock only enters through import vouchers.
type CreateGoodRequest struct {
	Code      string          `json:"code" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Unit      string          `json:"unit" validate:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// UpdateGoodRequest updates descriptive fields. Quantity is not editable
// here.
type UpdateGoodRequest struct {
	Name      string          `json:"name" validate:"required"`
	Unit      string          `json:"unit" validate:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// GoodResponse mirrors entity.Good on the wire.
type GoodResponse struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	OnHandQty int64           `json:"onHandQty"`
}
