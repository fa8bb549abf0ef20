package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/quanpham-dev/warehouse-api/internal/application/dto"
	"github.com/quanpham-dev/warehouse-api/internal/application/payment"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
)

// PaymentHandler serves invoice settlement (protected).
type PaymentHandler struct {
	uc *payment.UseCase
}

func NewPaymentHandler(uc *payment.UseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:          p.ID,
		InvoiceCode: p.InvoiceCode,
		Method:      p.Method,
		Amount:      p.Amount,
		Note:        p.Note,
		Timestamp:   p.Timestamp.Format(time.RFC3339),
	}
}

// Pay godoc
// @Summary      Settle an invoice
// @Description  Flips the invoice to PAID and records the payment in one
//
//	transaction. Rejected when the invoice is already paid, the 30-day
//	deadline has passed, or the amount falls short of the total.
//
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Invoice code (HD...)"
// @Param        body  body  dto.PayRequest  true  "method, amount, optional note"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/{code}/payments [post]
func (h *PaymentHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	p, err := h.uc.Pay(c.Context(), GetEmployeeCode(c), c.Params("code"), in.Method, in.Amount, in.Note, time.Now())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(p))
}

// GetByInvoice godoc
// @Summary      Get the payment recorded for an invoice
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Invoice code (HD...)"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{code}/payments [get]
func (h *PaymentHandler) GetByInvoice(c *fiber.Ctx) error {
	p, err := h.uc.GetByInvoice(c.Context(), c.Params("code"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toPaymentResponse(p))
}
