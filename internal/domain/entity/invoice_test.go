package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quanpham-dev/warehouse-api/internal/domain"
)

func TestInvoice_DeadlineIs30DaysAfterIssue(t *testing.T) {
	issued := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	inv := &Invoice{IssueDate: issued}

	assert.Equal(t, issued.AddDate(0, 0, 30), inv.Deadline())
}

func TestInvoice_IsExpired(t *testing.T) {
	issued := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	inv := &Invoice{IssueDate: issued}

	assert.False(t, inv.IsExpired(issued.AddDate(0, 0, 29)))
	assert.False(t, inv.IsExpired(inv.Deadline()), "deadline instant itself is still payable")
	assert.True(t, inv.IsExpired(issued.AddDate(0, 0, 31)))
}

func TestVoucherRef_Validate(t *testing.T) {
	assert.NoError(t, NoVoucher().Validate())
	assert.NoError(t, ImportVoucherRef("PN01").Validate())
	assert.NoError(t, ExportVoucherRef("PX01").Validate())

	// Code without kind and kind without code are both malformed.
	assert.ErrorIs(t, VoucherRef{Kind: SourceNone, Code: "PN01"}.Validate(), domain.ErrInvalidInput)
	assert.ErrorIs(t, VoucherRef{Kind: SourceImport}.Validate(), domain.ErrInvalidInput)
	assert.ErrorIs(t, VoucherRef{Kind: "BOGUS", Code: "X"}.Validate(), domain.ErrInvalidInput)
}

func TestVoucherRef_IsNone(t *testing.T) {
	assert.True(t, NoVoucher().IsNone())
	assert.True(t, VoucherRef{}.IsNone())
	assert.False(t, ImportVoucherRef("PN01").IsNone())
}

func TestValidSettlementMethod_ExcludesCOD(t *testing.T) {
	for _, m := range []string{PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodVNPay, PaymentMethodMoMo, PaymentMethodZaloPay} {
		assert.True(t, ValidSettlementMethod(m), m)
	}
	assert.False(t, ValidSettlementMethod(PaymentMethodCOD), "COD is not an explicit settlement method")
	assert.False(t, ValidSettlementMethod("CHECK"))
}

func TestValidPaymentMethod_IncludesCOD(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentMethodCOD))
}
