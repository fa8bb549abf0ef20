package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/quanpham-dev/warehouse-api/internal/application/invoicing"
	"github.com/quanpham-dev/warehouse-api/internal/application/payment"
	"github.com/quanpham-dev/warehouse-api/internal/application/shipping"
	"github.com/quanpham-dev/warehouse-api/internal/application/stock"
	"github.com/quanpham-dev/warehouse-api/internal/application/voucher"
	infraaudit "github.com/quanpham-dev/warehouse-api/internal/infrastructure/audit"
	"github.com/quanpham-dev/warehouse-api/internal/infrastructure/postgres"
	httpRouter "github.com/quanpham-dev/warehouse-api/internal/interfaces/http"
	"github.com/quanpham-dev/warehouse-api/pkg/config"
	"github.com/quanpham-dev/warehouse-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	goodRepo := postgres.NewGoodRepository(pool)
	importRepo := postgres.NewImportVoucherRepository(pool)
	exportRepo := postgres.NewExportVoucherRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	sink := infraaudit.NewZerologSink(log.Zerolog())

	stockStore := stock.NewStore(txRunner, goodRepo)
	voucherUC := voucher.NewUseCase(txRunner, importRepo, exportRepo, sink)
	dispatcher := shipping.NewDispatcher(txRunner, shipmentRepo, sink)
	invoiceUC := invoicing.NewUseCase(txRunner, invoiceRepo, dispatcher, sink)
	paymentUC := payment.NewUseCase(txRunner, paymentRepo, dispatcher, sink)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI at http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Warehouse API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Stock:      stockStore,
		Vouchers:   voucherUC,
		Invoices:   invoiceUC,
		Payments:   paymentUC,
		Dispatcher: dispatcher,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
