package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/quanpham-dev/warehouse-api/internal/application/dto"
)

var validate = validator.New()

// parseAndValidate decodes the JSON body into out and runs struct tag
// validation. A non-nil return has already written the 400 response.
func parseAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	if err := validate.Struct(out); err != nil {
		var ve validator.ValidationErrors
		details := make([]fiber.Map, 0, 4)
		if errors.As(err, &ve) {
			for _, fe := range ve {
				details = append(details, fiber.Map{"field": fe.Field(), "rule": fe.Tag()})
			}
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "request failed validation", Details: details})
	}
	return nil
}
