package shipping

import (
	"context"
	"time"

	"github.com/quanpham-dev/warehouse-api/internal/application/audit"
	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

// Dispatcher derives shipment records from invoices:
//
//   - counter delivery never ships;
//   - delivery + COD ships immediately at invoice creation, before payment;
//   - delivery + any other method ships only after the invoice turns Paid.
//
// At most one shipment exists per invoice; a second dispatch returns the
// existing record.
type Dispatcher struct {
	txRunner  repository.TxRunner
	shipments repository.ShipmentRepository
	sink      audit.Sink
}

// NewDispatcher builds the dispatcher.
func NewDispatcher(txRunner repository.TxRunner, shipments repository.ShipmentRepository, sink audit.Sink) *Dispatcher {
	return &Dispatcher{txRunner: txRunner, shipments: shipments, sink: sink}
}

// DispatchOnCreate reports whether the invoice ships the moment it is
// created (COD is settled on delivery, so payment is not awaited).
func DispatchOnCreate(inv *entity.Invoice) bool {
	return inv.DeliveryMethod == entity.DeliveryMethodDelivery &&
		inv.PaymentMethod == entity.PaymentMethodCOD
}

// DispatchOnPaid reports whether the invoice ships once the payment
// processor reports the Paid transition.
func DispatchOnPaid(inv *entity.Invoice) bool {
	return inv.DeliveryMethod == entity.DeliveryMethodDelivery &&
		inv.PaymentMethod != entity.PaymentMethodCOD
}

// DispatchInTx creates the shipment for inv using the caller's
// transaction-bound repositories. It is a no-op returning the existing
// shipment when one is already present, and a no-op returning nil when the
// invoice does not ship at all.
func (d *Dispatcher) DispatchInTx(ctx context.Context, r repository.Repos, inv *entity.Invoice, now time.Time) (*entity.Shipment, error) {
	if inv.DeliveryMethod != entity.DeliveryMethodDelivery {
		return nil, nil
	}
	codes, err := r.Shipments.ListCodes(ctx, entity.ShipmentCodePrefix)
	if err != nil {
		return nil, err
	}
	shipment := &entity.Shipment{
		Code:             entity.NextCode(entity.ShipmentCodePrefix, codes),
		InvoiceCode:      inv.Code,
		DeliveryDate:     now,
		RecipientAddress: inv.RecipientAddress,
		Status:           entity.ShipmentStatusAwaitingPickup,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	stored, created, err := r.Shipments.CreateIfAbsent(ctx, shipment)
	if err != nil {
		return nil, err
	}
	if created {
		event := audit.New(audit.TypeShipmentCreated, inv.EmployeeCode, "shipment", stored.Code)
		event.After = stored
		d.sink.Emit(ctx, event)
	}
	return stored, nil
}

// Get returns one shipment.
func (d *Dispatcher) Get(ctx context.Context, code string) (*entity.Shipment, error) {
	return d.shipments.GetByCode(ctx, code)
}

// GetByInvoice returns the shipment backing an invoice, or ErrNotFound.
func (d *Dispatcher) GetByInvoice(ctx context.Context, invoiceCode string) (*entity.Shipment, error) {
	return d.shipments.GetByInvoice(ctx, invoiceCode)
}

// AdvanceStatus moves a shipment through its tracking states. The engine
// only guards the transition shape; scheduling pickups and recording actual
// delivery is the carrier's concern.
func (d *Dispatcher) AdvanceStatus(ctx context.Context, actor, code, next string) (*entity.Shipment, error) {
	var updated *entity.Shipment
	var previous string
	err := d.txRunner.Run(ctx, func(r repository.Repos) error {
		shipment, err := r.Shipments.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if !entity.CanTransition(shipment.Status, next) {
			return domain.ErrConflict
		}
		if err := r.Shipments.UpdateStatus(ctx, code, next); err != nil {
			return err
		}
		previous = shipment.Status
		shipment.Status = next
		updated = shipment
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := audit.New(audit.TypeShipmentStatusChanged, actor, "shipment", code)
	event.Before = previous
	event.After = next
	d.sink.Emit(ctx, event)
	return updated, nil
}
