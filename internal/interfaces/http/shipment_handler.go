package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quanpham-dev/warehouse-api/internal/application/dto"
	"github.com/quanpham-dev/warehouse-api/internal/application/shipping"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
)

// ShipmentHandler serves delivery tracking (protected). Shipments are never
// created here; they are derived from invoices by the dispatcher.
type ShipmentHandler struct {
	dispatcher *shipping.Dispatcher
}

func NewShipmentHandler(dispatcher *shipping.Dispatcher) *ShipmentHandler {
	return &ShipmentHandler{dispatcher: dispatcher}
}

func toShipmentResponse(s *entity.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		Code:             s.Code,
		InvoiceCode:      s.InvoiceCode,
		DeliveryDate:     s.DeliveryDate.Format(dto.DateLayout),
		RecipientAddress: s.RecipientAddress,
		Status:           s.Status,
	}
}

// GetByCode godoc
// @Summary      Get a shipment
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Shipment code (GH...)"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments/{code} [get]
func (h *ShipmentHandler) GetByCode(c *fiber.Ctx) error {
	s, err := h.dispatcher.Get(c.Context(), c.Params("code"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toShipmentResponse(s))
}

// GetByInvoice godoc
// @Summary      Get the shipment dispatched for an invoice
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Invoice code (HD...)"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{code}/shipment [get]
func (h *ShipmentHandler) GetByInvoice(c *fiber.Ctx) error {
	s, err := h.dispatcher.GetByInvoice(c.Context(), c.Params("code"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toShipmentResponse(s))
}

// UpdateStatus godoc
// @Summary      Advance a shipment's tracking status
// @Description  Forward only: AWAITING_PICKUP, IN_TRANSIT, DELIVERED.
//
//	CANCELLED is reachable from any non-terminal state.
//
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Shipment code (GH...)"
// @Param        body  body  dto.UpdateShipmentStatusRequest  true  "next status"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments/{code}/status [put]
func (h *ShipmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateShipmentStatusRequest
	if err := parseAndValidate(c, &in); err != nil {
		return err
	}
	s, err := h.dispatcher.AdvanceStatus(c.Context(), GetEmployeeCode(c), c.Params("code"), in.Status)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toShipmentResponse(s))
}
