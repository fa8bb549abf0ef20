package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/quanpham-dev/warehouse-api/internal/application/dto"
	"github.com/quanpham-dev/warehouse-api/internal/domain"
)

// writeDomainError maps the engine's error taxonomy to HTTP. Typed errors
// carry their payload into the details field so clients see requested vs
// available quantities, the missed deadline, and so on.
func writeDomainError(c *fiber.Ctx, err error) error {
	var (
		stockErr    *domain.InsufficientStockError
		amountErr   *domain.InsufficientAmountError
		deadlineErr *domain.DeadlineExpiredError
		validErr    *domain.ValidationError
	)
	switch {
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: stockErr.Error(),
			Details: fiber.Map{"goodCode": stockErr.GoodCode, "requested": stockErr.Requested, "available": stockErr.Available},
		})
	case errors.As(err, &amountErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_AMOUNT", Message: amountErr.Error(),
			Details: fiber.Map{"required": amountErr.Required, "given": amountErr.Given},
		})
	case errors.As(err, &deadlineErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "DEADLINE_EXPIRED", Message: deadlineErr.Error(),
			Details: fiber.Map{"deadline": deadlineErr.Deadline},
		})
	case errors.As(err, &validErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: validErr.Error(),
			Details: fiber.Map{"field": validErr.Field},
		})
	case errors.Is(err, domain.ErrAlreadyPaid):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: "invoice is already paid"})
	case errors.Is(err, domain.ErrVoucherAlreadyInvoiced):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VOUCHER_ALREADY_INVOICED", Message: "voucher is already claimed by an invoice"})
	case errors.Is(err, domain.ErrVoucherLocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VOUCHER_LOCKED", Message: "voucher is linked to an invoice and frozen"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "insufficient stock"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operation requires admin privileges"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "concurrent modification, retry the request"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
