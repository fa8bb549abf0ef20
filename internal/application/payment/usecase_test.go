package payment_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanpham-dev/warehouse-api/internal/application/audit"
	"github.com/quanpham-dev/warehouse-api/internal/application/dto"
	"github.com/quanpham-dev/warehouse-api/internal/application/invoicing"
	"github.com/quanpham-dev/warehouse-api/internal/application/payment"
	"github.com/quanpham-dev/warehouse-api/internal/application/shipping"
	"github.com/quanpham-dev/warehouse-api/internal/application/voucher"
	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/infrastructure/memory"
)

const testEmployee = "EMP01"

// fixture wires the whole engine over the in-memory store, the same way
// main wires it over PostgreSQL.
type fixture struct {
	payments   *payment.UseCase
	invoices   *invoicing.UseCase
	vouchers   *voucher.UseCase
	dispatcher *shipping.Dispatcher
	mem        *memory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := memory.NewStore()
	repos := mem.Repos()
	txRunner := memory.NewTxRunner(mem)
	sink := audit.NopSink{}
	dispatcher := shipping.NewDispatcher(txRunner, repos.Shipments, sink)
	return &fixture{
		payments:   payment.NewUseCase(txRunner, repos.Payments, dispatcher, sink),
		invoices:   invoicing.NewUseCase(txRunner, repos.Invoices, dispatcher, sink),
		vouchers:   voucher.NewUseCase(txRunner, repos.ImportVouchers, repos.ExportVouchers, sink),
		dispatcher: dispatcher,
		mem:        mem,
	}
}

// seedInvoice creates an unpaid standalone invoice and returns its code.
func (f *fixture) seedInvoice(t *testing.T, total string, deliveryMethod, paymentMethod string) *entity.Invoice {
	t.Helper()
	in := dto.CreateInvoiceRequest{
		SourceKind:     entity.SourceNone,
		CustomerCode:   "KH01",
		Total:          decimal.RequireFromString(total),
		DeliveryMethod: deliveryMethod,
		PaymentMethod:  paymentMethod,
	}
	if deliveryMethod == entity.DeliveryMethodDelivery {
		in.RecipientAddress = "35 Tran Phu, Da Nang"
	}
	inv, err := f.invoices.Create(context.Background(), testEmployee, in)
	require.NoError(t, err)
	return inv
}

func (f *fixture) status(t *testing.T, code string) string {
	t.Helper()
	inv, err := f.invoices.Get(context.Background(), code)
	require.NoError(t, err)
	return inv.Status
}

func pay(f *fixture, code, method, amount string, at time.Time) (*entity.Payment, error) {
	return f.payments.Pay(context.Background(), testEmployee, code, method,
		decimal.RequireFromString(amount), "", at)
}

func TestPay_FlipsInvoiceToPaidAndRecordsPayment(t *testing.T) {
	f := newFixture(t)
	inv := f.seedInvoice(t, "150", entity.DeliveryMethodCounter, entity.PaymentMethodCash)
	now := time.Now()

	p, err := pay(f, inv.Code, entity.PaymentMethodCash, "150", now)
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, inv.Code, p.InvoiceCode)
	assert.True(t, decimal.RequireFromString("150").Equal(p.Amount))
	assert.Equal(t, entity.InvoiceStatusPaid, f.status(t, inv.Code))

	stored, err := f.payments.GetByInvoice(context.Background(), inv.Code)
	require.NoError(t, err)
	assert.Equal(t, p.ID, stored.ID)
}

func TestPay_OverpaymentIsAccepted(t *testing.T) {
	f := newFixture(t)
	inv := f.seedInvoice(t, "150", entity.DeliveryMethodCounter, entity.PaymentMethodCash)

	p, err := pay(f, inv.Code, entity.PaymentMethodCash, "200", time.Now())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("200").Equal(p.Amount), "the full tendered amount is recorded")
}

func TestPay_UnknownInvoice(t *testing.T) {
	f := newFixture(t)
	_, err := pay(f, "HD99", entity.PaymentMethodCash, "10", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPay_AlreadyPaid(t *testing.T) {
	f := newFixture(t)
	inv := f.seedInvoice(t, "150", entity.DeliveryMethodCounter, entity.PaymentMethodCash)
	now := time.Now()

	_, err := pay(f, inv.Code, entity.PaymentMethodCash, "150", now)
	require.NoError(t, err)

	_, err = pay(f, inv.Code, entity.PaymentMethodBankTransfer, "150", now)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

	p, err := f.payments.GetByInvoice(context.Background(), inv.Code)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodCash, p.Method, "the first settlement stands")
}

func TestPay_DeadlineExpired(t *testing.T) {
	f := newFixture(t)
	inv := f.seedInvoice(t, "150", entity.DeliveryMethodCounter, entity.PaymentMethodCash)

	late := inv.IssueDate.AddDate(0, 0, 31)
	_, err := pay(f, inv.Code, entity.PaymentMethodCash, "150", late)
	require.ErrorIs(t, err, domain.ErrDeadlineExpired)

	var deadlineErr *domain.DeadlineExpiredError
	require.ErrorAs(t, err, &deadlineErr)
	assert.Equal(t, inv.Deadline(), deadlineErr.Deadline)

	assert.Equal(t, entity.InvoiceStatusUnpaid, f.status(t, inv.Code),
		"an expired invoice stays visibly unpaid, nothing auto-transitions it")
	_, err = f.payments.GetByInvoice(context.Background(), inv.Code)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPay_JustBeforeDeadlineSucceeds(t *testing.T) {
	f := newFixture(t)
	inv := f.seedInvoice(t, "150", entity.DeliveryMethodCounter, entity.PaymentMethodCash)

	almostLate := inv.Deadline().Add(-time.Minute)
	_, err := pay(f, inv.Code, entity.PaymentMethodCash, "150", almostLate)
	assert.NoError(t, err)
}

func TestPay_InsufficientAmount(t *testing.T) {
	f := newFixture(t)
	inv := f.seedInvoice(t, "150", entity.DeliveryMethodCounter, entity.PaymentMethodCash)

	_, err := pay(f, inv.Code, entity.PaymentMethodCash, "149.99", time.Now())
	require.ErrorIs(t, err, domain.ErrInsufficientAmount)

	var amountErr *domain.InsufficientAmountError
	require.ErrorAs(t, err, &amountErr)
	assert.True(t, decimal.RequireFromString("150").Equal(amountErr.Required))
	assert.True(t, decimal.RequireFromString("149.99").Equal(amountErr.Given))

	assert.Equal(t, entity.InvoiceStatusUnpaid, f.status(t, inv.Code))
}

func TestPay_RejectsCODAsSettlementMethod(t *testing.T) {
	f := newFixture(t)
	inv := f.seedInvoice(t, "150", entity.DeliveryMethodCounter, entity.PaymentMethodCash)

	_, err := pay(f, inv.Code, entity.PaymentMethodCOD, "150", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPay_DeliveryInvoiceShipsOnPaid(t *testing.T) {
	f := newFixture(t)
	inv := f.seedInvoice(t, "150", entity.DeliveryMethodDelivery, entity.PaymentMethodVNPay)
	ctx := context.Background()

	_, err := f.dispatcher.GetByInvoice(ctx, inv.Code)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = pay(f, inv.Code, entity.PaymentMethodVNPay, "150", time.Now())
	require.NoError(t, err)

	s, err := f.dispatcher.GetByInvoice(ctx, inv.Code)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusAwaitingPickup, s.Status)
	assert.Equal(t, inv.RecipientAddress, s.RecipientAddress)
}

func TestPay_CounterInvoiceNeverShips(t *testing.T) {
	f := newFixture(t)
	inv := f.seedInvoice(t, "150", entity.DeliveryMethodCounter, entity.PaymentMethodCash)

	_, err := pay(f, inv.Code, entity.PaymentMethodCash, "150", time.Now())
	require.NoError(t, err)

	_, err = f.dispatcher.GetByInvoice(context.Background(), inv.Code)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestSettlementFlow walks the full lifecycle: goods arrive on an import
// voucher, ship out on an export voucher, the export backs an invoice for a
// customer, the customer pays by bank transfer, and the paid delivery
// invoice dispatches a shipment.
func TestSettlementFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	goods := f.mem.Repos().Goods
	require.NoError(t, goods.Create(ctx, &entity.Good{Code: "HH01", Name: "Ceramic vase", Unit: "pcs"}))

	imp, err := f.vouchers.CreateImport(ctx, testEmployee, dto.CreateImportVoucherRequest{
		SupplierCode: "NCC01",
		Lines:        []dto.ImportLineRequest{{GoodCode: "HH01", QtyIn: 20, UnitCostIn: decimal.RequireFromString("50")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "PN01", imp.Code)

	exp, err := f.vouchers.CreateExport(ctx, testEmployee, dto.CreateExportVoucherRequest{
		Lines: []dto.ExportLineRequest{{GoodCode: "HH01", QtyOut: 8, UnitPriceOut: decimal.RequireFromString("90")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "PX01", exp.Code)

	g, err := goods.GetByCode(ctx, "HH01")
	require.NoError(t, err)
	assert.Equal(t, int64(12), g.OnHandQty)

	inv, err := f.invoices.Create(ctx, testEmployee, dto.CreateInvoiceRequest{
		SourceKind:       entity.SourceExport,
		SourceCode:       exp.Code,
		CustomerCode:     "KH01",
		DeliveryMethod:   entity.DeliveryMethodDelivery,
		PaymentMethod:    entity.PaymentMethodBankTransfer,
		RecipientAddress: "35 Tran Phu, Da Nang",
	})
	require.NoError(t, err)
	assert.Equal(t, "HD01", inv.Code)
	assert.True(t, decimal.RequireFromString("720").Equal(inv.Total))

	// The claimed voucher is frozen while the invoice exists.
	_, err = f.vouchers.EditExport(ctx, testEmployee, exp.Code, dto.EditExportVoucherRequest{
		Lines: []dto.ExportLineRequest{{GoodCode: "HH01", QtyOut: 1, UnitPriceOut: decimal.RequireFromString("90")}},
	})
	require.ErrorIs(t, err, domain.ErrVoucherLocked)

	p, err := pay(f, inv.Code, entity.PaymentMethodBankTransfer, "720", time.Now())
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodBankTransfer, p.Method)
	assert.Equal(t, entity.InvoiceStatusPaid, f.status(t, inv.Code))

	s, err := f.dispatcher.GetByInvoice(ctx, inv.Code)
	require.NoError(t, err)
	assert.Equal(t, "GH01", s.Code)
	assert.Equal(t, "35 Tran Phu, Da Nang", s.RecipientAddress)

	// Tracking advances forward only.
	s, err = f.dispatcher.AdvanceStatus(ctx, testEmployee, s.Code, entity.ShipmentStatusInTransit)
	require.NoError(t, err)
	s, err = f.dispatcher.AdvanceStatus(ctx, testEmployee, s.Code, entity.ShipmentStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusDelivered, s.Status)
}
