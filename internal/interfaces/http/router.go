package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quanpham-dev/warehouse-api/internal/application/invoicing"
	"github.com/quanpham-dev/warehouse-api/internal/application/payment"
	"github.com/quanpham-dev/warehouse-api/internal/application/shipping"
	"github.com/quanpham-dev/warehouse-api/internal/application/stock"
	"github.com/quanpham-dev/warehouse-api/internal/application/voucher"
)

// RouterDeps wires the use cases into the HTTP layer.
type RouterDeps struct {
	Stock      *stock.Store
	Vouchers   *voucher.UseCase
	Invoices   *invoicing.UseCase
	Payments   *payment.UseCase
	Dispatcher *shipping.Dispatcher
	JWTSecret  string
}

// Router registers the API routes. Everything under /api requires a Bearer
// token; the invoice status override additionally requires the admin role.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	goods := api.Group("/goods")
	goodHandler := NewGoodHandler(deps.Stock)
	goods.Post("/", goodHandler.Create)
	goods.Get("/", goodHandler.List)
	goods.Get("/:code", goodHandler.GetByCode)
	goods.Put("/:code", goodHandler.Update)

	vouchers := api.Group("/vouchers")
	voucherHandler := NewVoucherHandler(deps.Vouchers)
	vouchers.Post("/import", voucherHandler.CreateImport)
	vouchers.Get("/import", voucherHandler.ListImports)
	vouchers.Get("/import/:code", voucherHandler.GetImport)
	vouchers.Put("/import/:code", voucherHandler.EditImport)
	vouchers.Delete("/import/:code", voucherHandler.DeleteImport)
	vouchers.Post("/export", voucherHandler.CreateExport)
	vouchers.Get("/export", voucherHandler.ListExports)
	vouchers.Get("/export/:code", voucherHandler.GetExport)
	vouchers.Put("/export/:code", voucherHandler.EditExport)
	vouchers.Delete("/export/:code", voucherHandler.DeleteExport)

	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Invoices)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:code", invoiceHandler.GetByCode)
	invoices.Delete("/:code", invoiceHandler.Delete)
	invoices.Put("/:code/status", invoiceHandler.OverrideStatus)

	paymentHandler := NewPaymentHandler(deps.Payments)
	invoices.Post("/:code/payments", paymentHandler.Pay)
	invoices.Get("/:code/payments", paymentHandler.GetByInvoice)

	shipmentHandler := NewShipmentHandler(deps.Dispatcher)
	invoices.Get("/:code/shipment", shipmentHandler.GetByInvoice)

	shipments := api.Group("/shipments")
	shipments.Get("/:code", shipmentHandler.GetByCode)
	shipments.Put("/:code/status", shipmentHandler.UpdateStatus)
}
