package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/quanpham-dev/warehouse-api/internal/application/dto"
	"github.com/quanpham-dev/warehouse-api/pkg/jwt"
)

// Locals keys for the authenticated employee in Fiber.
const (
	LocalEmployeeCode = "employee_code"
	LocalRole         = "role"
)

// AuthMiddleware validates the Bearer JWT and loads employee code and role
// into c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "expected format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		employeeCode, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		c.Locals(LocalEmployeeCode, employeeCode)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole authorizes only the listed roles. Runs after AuthMiddleware.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "insufficient role"})
	}
}

// GetEmployeeCode returns the authenticated employee code from the context.
func GetEmployeeCode(c *fiber.Ctx) string {
	v := c.Locals(LocalEmployeeCode)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole returns the authenticated role from the context.
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// IsPrivileged reports whether the caller may use the admin-only operations
// (status override, deleting paid invoices).
func IsPrivileged(c *fiber.Ctx) bool {
	return GetRole(c) == jwt.RoleAdmin
}
