package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the engine.
const (
	TypeVoucherCreated          = "VoucherCreated"
	TypeVoucherEdited           = "VoucherEdited"
	TypeVoucherDeleted          = "VoucherDeleted"
	TypeInvoiceCreated          = "InvoiceCreated"
	TypeInvoiceDeleted          = "InvoiceDeleted"
	TypeInvoiceStatusOverridden = "InvoiceStatusOverridden"
	TypePaymentRecorded         = "PaymentRecorded"
	TypeShipmentCreated         = "ShipmentCreated"
	TypeShipmentStatusChanged   = "ShipmentStatusChanged"
	TypeOperationFailed         = "OperationFailed"
)

// Event is one audit record. Before/After carry value pairs for mutations
// (notably the admin status override) so the external sink never has to
// re-fetch old state. The engine never depends on the sink succeeding.
type Event struct {
	ID     string
	Type   string
	Actor  string // employee code
	Entity string // good, import_voucher, export_voucher, invoice, payment, shipment
	Code   string
	Before any
	After  any
	Err    string
	At     time.Time
}

// Sink receives audit events. Implementations must not block the mutation
// path and must swallow their own failures.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// New builds an event with a fresh ID and timestamp.
func New(eventType, actor, entity, code string) Event {
	return Event{
		ID:     uuid.New().String(),
		Type:   eventType,
		Actor:  actor,
		Entity: entity,
		Code:   code,
		At:     time.Now(),
	}
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Emit(context.Context, Event) {}
