package shipping_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanpham-dev/warehouse-api/internal/application/audit"
	"github.com/quanpham-dev/warehouse-api/internal/application/shipping"
	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
	"github.com/quanpham-dev/warehouse-api/internal/infrastructure/memory"
)

func newDispatcher(t *testing.T) (*shipping.Dispatcher, *memory.Store) {
	t.Helper()
	mem := memory.NewStore()
	return shipping.NewDispatcher(memory.NewTxRunner(mem), mem.Repos().Shipments, audit.NopSink{}), mem
}

func deliveryInvoice(code, paymentMethod string) *entity.Invoice {
	return &entity.Invoice{
		Code:             code,
		DeliveryMethod:   entity.DeliveryMethodDelivery,
		PaymentMethod:    paymentMethod,
		RecipientAddress: "12 Ly Thuong Kiet, Hanoi",
		EmployeeCode:     "EMP01",
	}
}

func dispatch(t *testing.T, d *shipping.Dispatcher, mem *memory.Store, inv *entity.Invoice) *entity.Shipment {
	t.Helper()
	var shipment *entity.Shipment
	err := memory.NewTxRunner(mem).Run(context.Background(), func(r repository.Repos) error {
		var err error
		shipment, err = d.DispatchInTx(context.Background(), r, inv, time.Now())
		return err
	})
	require.NoError(t, err)
	return shipment
}

func TestDispatchTiming(t *testing.T) {
	cases := []struct {
		name           string
		delivery       string
		payment        string
		onCreate       bool
		onPaid         bool
	}{
		{"delivery plus COD ships at creation", entity.DeliveryMethodDelivery, entity.PaymentMethodCOD, true, false},
		{"delivery plus cash ships after payment", entity.DeliveryMethodDelivery, entity.PaymentMethodCash, false, true},
		{"delivery plus bank transfer ships after payment", entity.DeliveryMethodDelivery, entity.PaymentMethodBankTransfer, false, true},
		{"delivery plus momo ships after payment", entity.DeliveryMethodDelivery, entity.PaymentMethodMoMo, false, true},
		{"counter pickup never ships", entity.DeliveryMethodCounter, entity.PaymentMethodCash, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := &entity.Invoice{DeliveryMethod: tc.delivery, PaymentMethod: tc.payment}
			assert.Equal(t, tc.onCreate, shipping.DispatchOnCreate(inv))
			assert.Equal(t, tc.onPaid, shipping.DispatchOnPaid(inv))
		})
	}
}

func TestDispatchInTx_CreatesShipment(t *testing.T) {
	d, mem := newDispatcher(t)

	s := dispatch(t, d, mem, deliveryInvoice("HD01", entity.PaymentMethodCOD))
	require.NotNil(t, s)
	assert.Equal(t, "GH01", s.Code)
	assert.Equal(t, "HD01", s.InvoiceCode)
	assert.Equal(t, "12 Ly Thuong Kiet, Hanoi", s.RecipientAddress)
	assert.Equal(t, entity.ShipmentStatusAwaitingPickup, s.Status)
}

func TestDispatchInTx_CounterInvoiceIsNoop(t *testing.T) {
	d, mem := newDispatcher(t)

	inv := &entity.Invoice{Code: "HD01", DeliveryMethod: entity.DeliveryMethodCounter}
	s := dispatch(t, d, mem, inv)
	assert.Nil(t, s)

	_, err := d.GetByInvoice(context.Background(), "HD01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDispatchInTx_SecondDispatchReturnsExisting(t *testing.T) {
	d, mem := newDispatcher(t)
	inv := deliveryInvoice("HD01", entity.PaymentMethodCOD)

	first := dispatch(t, d, mem, inv)
	second := dispatch(t, d, mem, inv)

	assert.Equal(t, first.Code, second.Code)

	codes := 0
	for _, prefix := range []string{"GH01", "GH02"} {
		if _, err := d.Get(context.Background(), prefix); err == nil {
			codes++
		}
	}
	assert.Equal(t, 1, codes, "dispatching twice must not mint a second shipment")
}

func TestDispatchInTx_CodesAreSequential(t *testing.T) {
	d, mem := newDispatcher(t)

	s1 := dispatch(t, d, mem, deliveryInvoice("HD01", entity.PaymentMethodCOD))
	s2 := dispatch(t, d, mem, deliveryInvoice("HD02", entity.PaymentMethodCOD))
	s3 := dispatch(t, d, mem, deliveryInvoice("HD03", entity.PaymentMethodCOD))

	assert.Equal(t, "GH01", s1.Code)
	assert.Equal(t, "GH02", s2.Code)
	assert.Equal(t, "GH03", s3.Code)
}

func TestAdvanceStatus_ForwardPath(t *testing.T) {
	d, mem := newDispatcher(t)
	s := dispatch(t, d, mem, deliveryInvoice("HD01", entity.PaymentMethodCOD))
	ctx := context.Background()

	s, err := d.AdvanceStatus(ctx, "EMP01", s.Code, entity.ShipmentStatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusInTransit, s.Status)

	s, err = d.AdvanceStatus(ctx, "EMP01", s.Code, entity.ShipmentStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusDelivered, s.Status)
}

func TestAdvanceStatus_RejectsBackwardAndSkips(t *testing.T) {
	d, mem := newDispatcher(t)
	s := dispatch(t, d, mem, deliveryInvoice("HD01", entity.PaymentMethodCOD))
	ctx := context.Background()

	// Cannot jump straight to delivered.
	_, err := d.AdvanceStatus(ctx, "EMP01", s.Code, entity.ShipmentStatusDelivered)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = d.AdvanceStatus(ctx, "EMP01", s.Code, entity.ShipmentStatusInTransit)
	require.NoError(t, err)

	// Cannot go back.
	_, err = d.AdvanceStatus(ctx, "EMP01", s.Code, entity.ShipmentStatusAwaitingPickup)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdvanceStatus_TerminalStatesAreFinal(t *testing.T) {
	d, mem := newDispatcher(t)
	s := dispatch(t, d, mem, deliveryInvoice("HD01", entity.PaymentMethodCOD))
	ctx := context.Background()

	_, err := d.AdvanceStatus(ctx, "EMP01", s.Code, entity.ShipmentStatusCancelled)
	require.NoError(t, err)

	_, err = d.AdvanceStatus(ctx, "EMP01", s.Code, entity.ShipmentStatusInTransit)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdvanceStatus_UnknownShipment(t *testing.T) {
	d, _ := newDispatcher(t)
	_, err := d.AdvanceStatus(context.Background(), "EMP01", "GH42", entity.ShipmentStatusInTransit)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
