package entity

import "time"

// Shipment code prefix: GH = giao hàng.
const ShipmentCodePrefix = "GH"

// Shipment statuses. AwaitingPickup is the initial state; advancement is
// operational tracking driven from outside the engine.
const (
	ShipmentStatusAwaitingPickup = "AWAITING_PICKUP"
	ShipmentStatusInTransit      = "IN_TRANSIT"
	ShipmentStatusDelivered      = "DELIVERED"
	ShipmentStatusCancelled      = "CANCELLED"
)

// Shipment is the delivery-tracking record derived from an invoice. At most
// one exists per invoice; never created for counter delivery.
type Shipment struct {
	Code             string
	InvoiceCode      string
	DeliveryDate     time.Time
	RecipientAddress string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanTransition reports whether a shipment may move from to next. Forward
// only: AwaitingPickup → InTransit → Delivered; Cancelled is reachable from
// any non-terminal state.
func CanTransition(from, next string) bool {
	switch from {
	case ShipmentStatusAwaitingPickup:
		return next == ShipmentStatusInTransit || next == ShipmentStatusCancelled
	case ShipmentStatusInTransit:
		return next == ShipmentStatusDelivered || next == ShipmentStatusCancelled
	}
	return false
}
