package dto

// UpdateShipmentStatusRequest advances a shipment's tracking state.
type UpdateShipmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=IN_TRANSIT DELIVERED CANCELLED"`
}

// ShipmentResponse mirrors entity.Shipment on the wire.
type ShipmentResponse struct {
	Code             string `json:"code"`
	InvoiceCode      string `json:"invoiceCode"`
	DeliveryDate     string `json:"deliveryDate"`
	RecipientAddress string `json:"recipientAddress"`
	Status           string `json:"status"`
}
