package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quanpham-dev/warehouse-api/internal/application/dto"
	"github.com/quanpham-dev/warehouse-api/internal/application/invoicing"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
)

// InvoiceHandler serves invoices (protected; override and paid-delete need
// the admin role).
type InvoiceHandler struct {
	uc *invoicing.UseCase
}

func NewInvoiceHandler(uc *invoicing.UseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

func toInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		Code:             inv.Code,
		IssueDate:        inv.IssueDate.Format(dto.DateLayout),
		CustomerCode:     inv.CustomerCode,
		SourceKind:       inv.Source.Kind,
		SourceCode:       inv.Source.Code,
		Total:            inv.Total,
		Status:           inv.Status,
		DeliveryMethod:   inv.DeliveryMethod,
		PaymentMethod:    inv.PaymentMethod,
		RecipientAddress: inv.RecipientAddress,
		EmployeeCode:     inv.EmployeeCode,
		Deadline:         inv.Deadline().Format(dto.DateLayout),
	}
}

// Create godoc
// @Summary      Create an invoice
// @Description  Standalone, import-sourced, or export-sourced. A voucher can
//
//	back at most one invoice; the claim and the creation commit together.
//
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "sourceKind plus the fields its shape requires"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	inv, err := h.uc.Create(c.Context(), GetEmployeeCode(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(inv))
}

// GetByCode godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Invoice code (HD...)"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{code} [get]
func (h *InvoiceHandler) GetByCode(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.Context(), c.Params("code"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toInvoiceResponse(inv))
}

// List godoc
// @Summary      List invoices
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invs, err := h.uc.List(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.InvoiceResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvoiceResponse(inv))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete an invoice, releasing its backing voucher
// @Description  Deleting a paid invoice requires the admin role.
// @Tags         invoices
// @Security     Bearer
// @Param        code  path  string  true  "Invoice code (HD...)"
// @Success      204
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{code} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.Context(), GetEmployeeCode(c), IsPrivileged(c), c.Params("code"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// OverrideStatus godoc
// @Summary      Manually set an invoice's status (admin only)
// @Description  Bypasses the normal settlement flow. Emits an audit event
//
//	with the before and after values. Never creates a payment record and
//	never dispatches a shipment.
//
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Invoice code (HD...)"
// @Param        body  body  dto.OverrideStatusRequest  true  "target status"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{code}/status [put]
func (h *InvoiceHandler) OverrideStatus(c *fiber.Ctx) error {
	var in dto.OverrideStatusRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	inv, err := h.uc.OverrideStatus(c.Context(), GetEmployeeCode(c), IsPrivileged(c), c.Params("code"), in.Status)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toInvoiceResponse(inv))
}
