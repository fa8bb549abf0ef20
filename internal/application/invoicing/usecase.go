package invoicing

import (
	"context"
	"time"

	"github.com/quanpham-dev/warehouse-api/internal/application/audit"
	"github.com/quanpham-dev/warehouse-api/internal/application/dto"
	"github.com/quanpham-dev/warehouse-api/internal/application/shipping"
	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

// UseCase is the invoice manager: it owns invoice creation against a
// voucher (or standalone), the status state machine with its 30-day payment
// deadline, deletion, and the privileged manual override.
type UseCase struct {
	txRunner   repository.TxRunner
	invoices   repository.InvoiceRepository
	dispatcher Dispatcher
	sink       audit.Sink
}

// NewUseCase builds the manager.
func NewUseCase(
	txRunner repository.TxRunner,
	invoices repository.InvoiceRepository,
	dispatcher Dispatcher,
	sink audit.Sink,
) *UseCase {
	return &UseCase{txRunner: txRunner, invoices: invoices, dispatcher: dispatcher, sink: sink}
}

// Create issues an invoice. The voucher claim is a conditional flip of the
// invoiced flag inside the transaction, so the same voucher can never back
// two invoices. Delivery invoices paying COD ship immediately.
func (uc *UseCase) Create(ctx context.Context, employeeCode string, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	source := entity.VoucherRef{Kind: in.SourceKind, Code: in.SourceCode}
	if err := validateShape(source, in); err != nil {
		return nil, err
	}

	now := time.Now()
	invoice := &entity.Invoice{
		IssueDate:        now,
		Source:           source,
		Status:           entity.InvoiceStatusUnpaid,
		DeliveryMethod:   in.DeliveryMethod,
		PaymentMethod:    in.PaymentMethod,
		RecipientAddress: in.RecipientAddress,
		EmployeeCode:     employeeCode,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if source.Kind != entity.SourceImport {
		customer := in.CustomerCode
		invoice.CustomerCode = &customer
	}

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		switch source.Kind {
		case entity.SourceImport:
			if err := r.ImportVouchers.Claim(ctx, source.Code); err != nil {
				return err
			}
			voucher, err := r.ImportVouchers.GetByCode(ctx, source.Code)
			if err != nil {
				return err
			}
			invoice.Total = voucher.Total
		case entity.SourceExport:
			if err := r.ExportVouchers.Claim(ctx, source.Code); err != nil {
				return err
			}
			voucher, err := r.ExportVouchers.GetByCode(ctx, source.Code)
			if err != nil {
				return err
			}
			invoice.Total = voucher.Total
		default:
			invoice.Total = in.Total
		}

		codes, err := r.Invoices.ListCodes(ctx, entity.InvoiceCodePrefix)
		if err != nil {
			return err
		}
		invoice.Code = entity.NextCode(entity.InvoiceCodePrefix, codes)
		if err := r.Invoices.Create(ctx, invoice); err != nil {
			return err
		}

		if shipping.DispatchOnCreate(invoice) {
			if _, err := uc.dispatcher.DispatchInTx(ctx, r, invoice, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.emitFailure(ctx, employeeCode, invoice.Code, err)
		return nil, err
	}

	event := audit.New(audit.TypeInvoiceCreated, employeeCode, "invoice", invoice.Code)
	event.After = invoice
	uc.sink.Emit(ctx, event)
	return invoice, nil
}

// Get returns one invoice.
func (uc *UseCase) Get(ctx context.Context, code string) (*entity.Invoice, error) {
	return uc.invoices.GetByCode(ctx, code)
}

// List returns all invoices.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Invoice, error) {
	return uc.invoices.List(ctx)
}

// Delete removes an invoice and releases its source voucher. A Paid invoice
// can only be deleted by a privileged caller.
func (uc *UseCase) Delete(ctx context.Context, employeeCode string, privileged bool, code string) error {
	var before *entity.Invoice
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		invoice, err := r.Invoices.GetForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if invoice.Status == entity.InvoiceStatusPaid && !privileged {
			return domain.ErrForbidden
		}
		if err := r.Invoices.Delete(ctx, code); err != nil {
			return err
		}
		switch invoice.Source.Kind {
		case entity.SourceImport:
			if err := r.ImportVouchers.Release(ctx, invoice.Source.Code); err != nil {
				return err
			}
		case entity.SourceExport:
			if err := r.ExportVouchers.Release(ctx, invoice.Source.Code); err != nil {
				return err
			}
		}
		before = invoice
		return nil
	})
	if err != nil {
		uc.emitFailure(ctx, employeeCode, code, err)
		return err
	}

	event := audit.New(audit.TypeInvoiceDeleted, employeeCode, "invoice", code)
	event.Before = before
	uc.sink.Emit(ctx, event)
	return nil
}

// OverrideStatus is the privileged administrative correction. It sets the
// status directly, bypassing the payment processor and the deadline check,
// and creates no payment record, but it always leaves a before/after audit
// trail. It never dispatches a shipment; only a real payment does.
func (uc *UseCase) OverrideStatus(ctx context.Context, employeeCode string, privileged bool, code, status string) (*entity.Invoice, error) {
	if !privileged {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidStatus(status) {
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status " + status}
	}

	var updated *entity.Invoice
	var previous string
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		invoice, err := r.Invoices.GetForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if err := r.Invoices.UpdateStatus(ctx, code, status); err != nil {
			return err
		}
		previous = invoice.Status
		invoice.Status = status
		updated = invoice
		return nil
	})
	if err != nil {
		uc.emitFailure(ctx, employeeCode, code, err)
		return nil, err
	}

	event := audit.New(audit.TypeInvoiceStatusOverridden, employeeCode, "invoice", code)
	event.Before = previous
	event.After = status
	uc.sink.Emit(ctx, event)
	return updated, nil
}

// validateShape enforces the exactly-one-source rule of invoice creation:
// standalone and export invoices bill a customer, import invoices have no
// customer and no delivery fields.
func validateShape(source entity.VoucherRef, in dto.CreateInvoiceRequest) error {
	if err := source.Validate(); err != nil {
		return err
	}
	switch source.Kind {
	case entity.SourceImport:
		if in.CustomerCode != "" {
			return &domain.ValidationError{Field: "customerCode", Reason: "not allowed for import-sourced invoices"}
		}
		if in.DeliveryMethod != "" || in.PaymentMethod != "" {
			return &domain.ValidationError{Field: "deliveryMethod", Reason: "not allowed for import-sourced invoices"}
		}
		return nil
	case entity.SourceExport, entity.SourceNone:
		if in.CustomerCode == "" {
			return &domain.ValidationError{Field: "customerCode", Reason: "required"}
		}
	}
	if source.IsNone() && !in.Total.IsPositive() {
		return &domain.ValidationError{Field: "total", Reason: "must be positive for standalone invoices"}
	}
	if !entity.ValidDeliveryMethod(in.DeliveryMethod) {
		return &domain.ValidationError{Field: "deliveryMethod", Reason: "must be DELIVERY or COUNTER"}
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return &domain.ValidationError{Field: "paymentMethod", Reason: "unknown method " + in.PaymentMethod}
	}
	if in.DeliveryMethod == entity.DeliveryMethodDelivery && in.RecipientAddress == "" {
		return &domain.ValidationError{Field: "recipientAddress", Reason: "required for delivery"}
	}
	return nil
}

func (uc *UseCase) emitFailure(ctx context.Context, actor, code string, err error) {
	event := audit.New(audit.TypeOperationFailed, actor, "invoice", code)
	event.Err = err.Error()
	uc.sink.Emit(ctx, event)
}
