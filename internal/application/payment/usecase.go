package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanpham-dev/warehouse-api/internal/application/audit"
	"github.com/quanpham-dev/warehouse-api/internal/application/shipping"
	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

// Dispatcher creates the shipment for an invoice inside the caller's
// transaction. The processor invokes it on the Unpaid → Paid transition for
// delivery invoices not paying COD.
type Dispatcher interface {
	DispatchInTx(ctx context.Context, r repository.Repos, inv *entity.Invoice, now time.Time) (*entity.Shipment, error)
}

// UseCase is the payment processor. Pay validates the attempt, records the
// payment and flips the invoice to Paid as one atomic unit: the invoice row
// is locked for the duration, so of two concurrent attempts exactly one
// succeeds and the loser observes AlreadyPaid.
type UseCase struct {
	txRunner   repository.TxRunner
	payments   repository.PaymentRepository
	dispatcher Dispatcher
	sink       audit.Sink
}

// NewUseCase builds the processor.
func NewUseCase(
	txRunner repository.TxRunner,
	payments repository.PaymentRepository,
	dispatcher Dispatcher,
	sink audit.Sink,
) *UseCase {
	return &UseCase{txRunner: txRunner, payments: payments, dispatcher: dispatcher, sink: sink}
}

// Pay settles an invoice. now is the payment instant used for the deadline
// comparison; the deadline is evaluated lazily here, never by a timer. An
// expired or rejected attempt leaves the invoice Unpaid and untouched.
func (uc *UseCase) Pay(ctx context.Context, employeeCode, invoiceCode, method string, amount decimal.Decimal, note string, now time.Time) (*entity.Payment, error) {
	if !entity.ValidSettlementMethod(method) {
		return nil, &domain.ValidationError{Field: "method", Reason: "unknown settlement method " + method}
	}

	var payment *entity.Payment
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		invoice, err := r.Invoices.GetForUpdate(ctx, invoiceCode)
		if err != nil {
			return err
		}
		if invoice.Status == entity.InvoiceStatusPaid {
			return domain.ErrAlreadyPaid
		}
		if invoice.IsExpired(now) {
			return &domain.DeadlineExpiredError{Deadline: invoice.Deadline()}
		}
		if amount.LessThan(invoice.Total) {
			return &domain.InsufficientAmountError{Required: invoice.Total, Given: amount}
		}

		payment = &entity.Payment{
			ID:          uuid.New().String(),
			InvoiceCode: invoiceCode,
			Method:      method,
			Amount:      amount,
			Note:        note,
			Timestamp:   now,
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}
		if err := r.Invoices.UpdateStatus(ctx, invoiceCode, entity.InvoiceStatusPaid); err != nil {
			return err
		}

		invoice.Status = entity.InvoiceStatusPaid
		if shipping.DispatchOnPaid(invoice) {
			if _, err := uc.dispatcher.DispatchInTx(ctx, r, invoice, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		event := audit.New(audit.TypeOperationFailed, employeeCode, "payment", invoiceCode)
		event.Err = err.Error()
		uc.sink.Emit(ctx, event)
		return nil, err
	}

	event := audit.New(audit.TypePaymentRecorded, employeeCode, "payment", invoiceCode)
	event.After = payment
	uc.sink.Emit(ctx, event)
	return payment, nil
}

// GetByInvoice returns the payment recorded for an invoice, or ErrNotFound.
func (uc *UseCase) GetByInvoice(ctx context.Context, invoiceCode string) (*entity.Payment, error) {
	return uc.payments.GetByInvoice(ctx, invoiceCode)
}
