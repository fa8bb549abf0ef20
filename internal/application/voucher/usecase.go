package voucher

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quanpham-dev/warehouse-api/internal/application/audit"
	"github.com/quanpham-dev/warehouse-api/internal/application/dto"
	"github.com/quanpham-dev/warehouse-api/internal/application/stock"
	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

// UseCase is the voucher ledger: it creates, edits and deletes import and
// export vouchers, keeping every good's on-hand quantity consistent with the
// committed vouchers. Every mutation runs as one transaction; a failed line
// rolls back the whole voucher.
type UseCase struct {
	txRunner repository.TxRunner
	imports  repository.ImportVoucherRepository
	exports  repository.ExportVoucherRepository
	sink     audit.Sink
}

// NewUseCase builds the ledger. The imports/exports repositories serve
// reads; mutations always go through txRunner-bound repositories.
func NewUseCase(
	txRunner repository.TxRunner,
	imports repository.ImportVoucherRepository,
	exports repository.ExportVoucherRepository,
	sink audit.Sink,
) *UseCase {
	return &UseCase{txRunner: txRunner, imports: imports, exports: exports, sink: sink}
}

// CreateImport validates, generates the PN code when omitted, computes
// totals, persists the voucher and increments stock per line.
func (uc *UseCase) CreateImport(ctx context.Context, employeeCode string, in dto.CreateImportVoucherRequest) (*entity.ImportVoucher, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	voucher := &entity.ImportVoucher{
		Code:         in.Code,
		Date:         date,
		EmployeeCode: employeeCode,
		SupplierCode: in.SupplierCode,
		Lines:        toImportLines(in.Lines),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := voucher.Validate(); err != nil {
		return nil, err
	}
	voucher.ComputeTotals()

	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if voucher.Code == "" {
			codes, err := r.ImportVouchers.ListCodes(ctx, entity.ImportCodePrefix)
			if err != nil {
				return err
			}
			voucher.Code = entity.NextCode(entity.ImportCodePrefix, codes)
		}
		if err := r.ImportVouchers.Create(ctx, voucher); err != nil {
			return err
		}
		return stock.ApplyDeltas(ctx, r.Goods, voucher.StockDeltas())
	})
	if err != nil {
		uc.emitFailure(ctx, employeeCode, "import_voucher", voucher.Code, err)
		return nil, err
	}

	event := audit.New(audit.TypeVoucherCreated, employeeCode, "import_voucher", voucher.Code)
	event.After = voucher
	uc.sink.Emit(ctx, event)
	return voucher, nil
}

// CreateExport mirrors CreateImport for stock decreases. If any line would
// drive a good negative the whole voucher is rejected before any stock
// survives mutation: the guarded per-good decrement fails the transaction
// and the rollback undoes the earlier lines.
func (uc *UseCase) CreateExport(ctx context.Context, employeeCode string, in dto.CreateExportVoucherRequest) (*entity.ExportVoucher, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	voucher := &entity.ExportVoucher{
		Code:         in.Code,
		Date:         date,
		EmployeeCode: employeeCode,
		Lines:        toExportLines(in.Lines),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := voucher.Validate(); err != nil {
		return nil, err
	}
	voucher.ComputeTotals()

	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if voucher.Code == "" {
			codes, err := r.ExportVouchers.ListCodes(ctx, entity.ExportCodePrefix)
			if err != nil {
				return err
			}
			voucher.Code = entity.NextCode(entity.ExportCodePrefix, codes)
		}
		if err := r.ExportVouchers.Create(ctx, voucher); err != nil {
			return err
		}
		return stock.ApplyDeltas(ctx, r.Goods, voucher.StockDeltas())
	})
	if err != nil {
		uc.emitFailure(ctx, employeeCode, "export_voucher", voucher.Code, err)
		return nil, err
	}

	event := audit.New(audit.TypeVoucherCreated, employeeCode, "export_voucher", voucher.Code)
	event.After = voucher
	uc.sink.Emit(ctx, event)
	return voucher, nil
}

// EditImport replaces the voucher's lines and applies the net per-good
// stock delta. A voucher that backs an invoice is frozen.
func (uc *UseCase) EditImport(ctx context.Context, employeeCode, code string, in dto.EditImportVoucherRequest) (*entity.ImportVoucher, error) {
	var before, after *entity.ImportVoucher
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		existing, err := r.ImportVouchers.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if existing.Invoiced {
			return domain.ErrVoucherLocked
		}
		updated := *existing
		updated.Lines = toImportLines(in.Lines)
		updated.UpdatedAt = time.Now()
		if err := updated.Validate(); err != nil {
			return err
		}
		updated.ComputeTotals()

		deltas := entity.DiffDeltas(existing.StockDeltas(), updated.StockDeltas())
		if err := stock.ApplyDeltas(ctx, r.Goods, deltas); err != nil {
			return err
		}
		if err := r.ImportVouchers.ReplaceLines(ctx, &updated); err != nil {
			return err
		}
		before, after = existing, &updated
		return nil
	})
	if err != nil {
		uc.emitFailure(ctx, employeeCode, "import_voucher", code, err)
		return nil, err
	}

	event := audit.New(audit.TypeVoucherEdited, employeeCode, "import_voucher", code)
	event.Before, event.After = before, after
	uc.sink.Emit(ctx, event)
	return after, nil
}

// EditExport replaces the voucher's lines and applies the net stock delta.
func (uc *UseCase) EditExport(ctx context.Context, employeeCode, code string, in dto.EditExportVoucherRequest) (*entity.ExportVoucher, error) {
	var before, after *entity.ExportVoucher
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		existing, err := r.ExportVouchers.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if existing.Invoiced {
			return domain.ErrVoucherLocked
		}
		updated := *existing
		updated.Lines = toExportLines(in.Lines)
		updated.UpdatedAt = time.Now()
		if err := updated.Validate(); err != nil {
			return err
		}
		updated.ComputeTotals()

		deltas := entity.DiffDeltas(existing.StockDeltas(), updated.StockDeltas())
		if err := stock.ApplyDeltas(ctx, r.Goods, deltas); err != nil {
			return err
		}
		if err := r.ExportVouchers.ReplaceLines(ctx, &updated); err != nil {
			return err
		}
		before, after = existing, &updated
		return nil
	})
	if err != nil {
		uc.emitFailure(ctx, employeeCode, "export_voucher", code, err)
		return nil, err
	}

	event := audit.New(audit.TypeVoucherEdited, employeeCode, "export_voucher", code)
	event.Before, event.After = before, after
	uc.sink.Emit(ctx, event)
	return after, nil
}

// DeleteImport removes the voucher and reverses its stock effect in full.
func (uc *UseCase) DeleteImport(ctx context.Context, employeeCode, code string) error {
	var before *entity.ImportVoucher
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		existing, err := r.ImportVouchers.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if existing.Invoiced {
			return domain.ErrVoucherLocked
		}
		if err := stock.ApplyDeltas(ctx, r.Goods, negate(existing.StockDeltas())); err != nil {
			return err
		}
		if err := r.ImportVouchers.Delete(ctx, code); err != nil {
			return err
		}
		before = existing
		return nil
	})
	if err != nil {
		uc.emitFailure(ctx, employeeCode, "import_voucher", code, err)
		return err
	}

	event := audit.New(audit.TypeVoucherDeleted, employeeCode, "import_voucher", code)
	event.Before = before
	uc.sink.Emit(ctx, event)
	return nil
}

// DeleteExport removes the voucher and restores the exported quantities.
func (uc *UseCase) DeleteExport(ctx context.Context, employeeCode, code string) error {
	var before *entity.ExportVoucher
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		existing, err := r.ExportVouchers.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if existing.Invoiced {
			return domain.ErrVoucherLocked
		}
		if err := stock.ApplyDeltas(ctx, r.Goods, negate(existing.StockDeltas())); err != nil {
			return err
		}
		if err := r.ExportVouchers.Delete(ctx, code); err != nil {
			return err
		}
		before = existing
		return nil
	})
	if err != nil {
		uc.emitFailure(ctx, employeeCode, "export_voucher", code, err)
		return err
	}

	event := audit.New(audit.TypeVoucherDeleted, employeeCode, "export_voucher", code)
	event.Before = before
	uc.sink.Emit(ctx, event)
	return nil
}

// GetImport returns one import voucher with its lines.
func (uc *UseCase) GetImport(ctx context.Context, code string) (*entity.ImportVoucher, error) {
	return uc.imports.GetByCode(ctx, code)
}

// GetExport returns one export voucher with its lines.
func (uc *UseCase) GetExport(ctx context.Context, code string) (*entity.ExportVoucher, error) {
	return uc.exports.GetByCode(ctx, code)
}

// ListImports returns all import vouchers.
func (uc *UseCase) ListImports(ctx context.Context) ([]*entity.ImportVoucher, error) {
	return uc.imports.List(ctx)
}

// ListExports returns all export vouchers.
func (uc *UseCase) ListExports(ctx context.Context) ([]*entity.ExportVoucher, error) {
	return uc.exports.List(ctx)
}

// TotalFor returns the persisted voucher total. The stored total is
// authoritative; it is never recomputed from lines at invoice time.
func (uc *UseCase) TotalFor(ctx context.Context, ref entity.VoucherRef) (decimal.Decimal, error) {
	switch ref.Kind {
	case entity.SourceImport:
		v, err := uc.imports.GetByCode(ctx, ref.Code)
		if err != nil {
			return decimal.Zero, err
		}
		return v.Total, nil
	case entity.SourceExport:
		v, err := uc.exports.GetByCode(ctx, ref.Code)
		if err != nil {
			return decimal.Zero, err
		}
		return v.Total, nil
	}
	return decimal.Zero, fmt.Errorf("%w: no voucher referenced", domain.ErrInvalidInput)
}

func (uc *UseCase) emitFailure(ctx context.Context, actor, entityName, code string, err error) {
	event := audit.New(audit.TypeOperationFailed, actor, entityName, code)
	event.Err = err.Error()
	uc.sink.Emit(ctx, event)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	date, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "date", Reason: "expected format " + dto.DateLayout}
	}
	return date, nil
}

func toImportLines(in []dto.ImportLineRequest) []entity.ImportLine {
	lines := make([]entity.ImportLine, len(in))
	for i, l := range in {
		lines[i] = entity.ImportLine{GoodCode: l.GoodCode, QtyIn: l.QtyIn, UnitCostIn: l.UnitCostIn}
	}
	return lines
}

func toExportLines(in []dto.ExportLineRequest) []entity.ExportLine {
	lines := make([]entity.ExportLine, len(in))
	for i, l := range in {
		lines[i] = entity.ExportLine{GoodCode: l.GoodCode, QtyOut: l.QtyOut, UnitPriceOut: l.UnitPriceOut}
	}
	return lines
}

func negate(deltas map[string]int64) map[string]int64 {
	inverse := make(map[string]int64, len(deltas))
	for code, qty := range deltas {
		inverse[code] = -qty
	}
	return inverse
}
