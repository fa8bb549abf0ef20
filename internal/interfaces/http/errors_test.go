package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanpham-dev/warehouse-api/internal/domain"
)

// statusAndCodeFor routes a request through writeDomainError and returns
// the HTTP status plus the body's error code.
func statusAndCodeFor(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return writeDomainError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body.Code
}

func TestWriteDomainError_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"insufficient stock payload", &domain.InsufficientStockError{GoodCode: "HH01", Requested: 5, Available: 3}, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"insufficient amount payload", &domain.InsufficientAmountError{Required: decimal.NewFromInt(150), Given: decimal.NewFromInt(100)}, http.StatusUnprocessableEntity, "INSUFFICIENT_AMOUNT"},
		{"deadline expired payload", &domain.DeadlineExpiredError{Deadline: time.Now()}, http.StatusUnprocessableEntity, "DEADLINE_EXPIRED"},
		{"field validation", &domain.ValidationError{Field: "customerCode", Reason: "required"}, http.StatusBadRequest, "VALIDATION"},
		{"already paid", domain.ErrAlreadyPaid, http.StatusConflict, "ALREADY_PAID"},
		{"voucher already invoiced", domain.ErrVoucherAlreadyInvoiced, http.StatusConflict, "VOUCHER_ALREADY_INVOICED"},
		{"voucher locked", domain.ErrVoucherLocked, http.StatusConflict, "VOUCHER_LOCKED"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("invoice HD42: %w", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate", domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"tx conflict", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := statusAndCodeFor(t, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, code)
		})
	}
}

func TestWriteDomainError_StockDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return writeDomainError(c, &domain.InsufficientStockError{GoodCode: "HH01", Requested: 5, Available: 3})
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Details map[string]interface{} `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "HH01", body.Details["goodCode"])
	assert.EqualValues(t, 5, body.Details["requested"])
	assert.EqualValues(t, 3, body.Details["available"])
}
