package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

var _ repository.ExportVoucherRepository = (*ExportVoucherRepo)(nil)

// ExportVoucherRepo implements ExportVoucherRepository over PostgreSQL.
type ExportVoucherRepo struct {
	q Querier
}

// NewExportVoucherRepository builds the adapter. Pass a pool or a tx.
func NewExportVoucherRepository(q Querier) *ExportVoucherRepo {
	return &ExportVoucherRepo{q: q}
}

// Create persists the voucher header and its lines.
func (r *ExportVoucherRepo) Create(ctx context.Context, v *entity.ExportVoucher) error {
	const header = `
		INSERT INTO export_vouchers (code, date, employee_code, total, invoiced, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6)`
	_, err := r.q.Exec(ctx, header, v.Code, v.Date, v.EmployeeCode, v.Total, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("export voucher %s: %w", v.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert export voucher: %w", err)
	}
	return r.insertLines(ctx, v.Code, v.Lines)
}

func (r *ExportVoucherRepo) insertLines(ctx context.Context, code string, lines []entity.ExportLine) error {
	const line = `
		INSERT INTO export_voucher_lines (voucher_code, good_code, qty_out, unit_price_out, line_total)
		VALUES ($1, $2, $3, $4, $5)`
	for _, l := range lines {
		if _, err := r.q.Exec(ctx, line, code, l.GoodCode, l.QtyOut, l.UnitPriceOut, l.LineTotal); err != nil {
			return fmt.Errorf("insert export voucher line: %w", err)
		}
	}
	return nil
}

// GetByCode returns the voucher with its lines.
func (r *ExportVoucherRepo) GetByCode(ctx context.Context, code string) (*entity.ExportVoucher, error) {
	const query = `
		SELECT code, date, employee_code, total, invoiced, created_at, updated_at
		FROM export_vouchers WHERE code = $1`
	var v entity.ExportVoucher
	err := r.q.QueryRow(ctx, query, code).Scan(
		&v.Code, &v.Date, &v.EmployeeCode, &v.Total, &v.Invoiced, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("export voucher %s: %w", code, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get export voucher: %w", err)
	}
	lines, err := r.linesFor(ctx, code)
	if err != nil {
		return nil, err
	}
	v.Lines = lines
	return &v, nil
}

func (r *ExportVoucherRepo) linesFor(ctx context.Context, code string) ([]entity.ExportLine, error) {
	const query = `
		SELECT good_code, qty_out, unit_price_out, line_total
		FROM export_voucher_lines WHERE voucher_code = $1 ORDER BY good_code`
	rows, err := r.q.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("list export voucher lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.ExportLine
	for rows.Next() {
		var l entity.ExportLine
		if err := rows.Scan(&l.GoodCode, &l.QtyOut, &l.UnitPriceOut, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan export voucher line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// List returns all vouchers with their lines, newest first.
func (r *ExportVoucherRepo) List(ctx context.Context) ([]*entity.ExportVoucher, error) {
	const query = `
		SELECT code, date, employee_code, total, invoiced, created_at, updated_at
		FROM export_vouchers ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list export vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []*entity.ExportVoucher
	for rows.Next() {
		var v entity.ExportVoucher
		if err := rows.Scan(&v.Code, &v.Date, &v.EmployeeCode, &v.Total, &v.Invoiced, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan export voucher: %w", err)
		}
		vouchers = append(vouchers, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, v := range vouchers {
		lines, err := r.linesFor(ctx, v.Code)
		if err != nil {
			return nil, err
		}
		v.Lines = lines
	}
	return vouchers, nil
}

// ReplaceLines swaps the lines and updates the stored totals.
func (r *ExportVoucherRepo) ReplaceLines(ctx context.Context, v *entity.ExportVoucher) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM export_voucher_lines WHERE voucher_code = $1`, v.Code); err != nil {
		return fmt.Errorf("delete export voucher lines: %w", err)
	}
	if err := r.insertLines(ctx, v.Code, v.Lines); err != nil {
		return err
	}
	const update = `
		UPDATE export_vouchers SET total = $2, updated_at = $3 WHERE code = $1`
	tag, err := r.q.Exec(ctx, update, v.Code, v.Total, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update export voucher total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("export voucher %s: %w", v.Code, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the voucher; lines cascade.
func (r *ExportVoucherRepo) Delete(ctx context.Context, code string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM export_vouchers WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete export voucher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("export voucher %s: %w", code, domain.ErrNotFound)
	}
	return nil
}

// ListCodes returns all codes with the prefix, for sequence generation.
func (r *ExportVoucherRepo) ListCodes(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT code FROM export_vouchers WHERE code LIKE $1 || '%'`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list export voucher codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan voucher code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// Claim flips the invoiced flag under the WHERE NOT invoiced guard.
func (r *ExportVoucherRepo) Claim(ctx context.Context, code string) error {
	const query = `
		UPDATE export_vouchers SET invoiced = TRUE, updated_at = now()
		WHERE code = $1 AND NOT invoiced`
	tag, err := r.q.Exec(ctx, query, code)
	if err != nil {
		return fmt.Errorf("claim export voucher: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.GetByCode(ctx, code); err != nil {
		return err
	}
	return fmt.Errorf("export voucher %s: %w", code, domain.ErrVoucherAlreadyInvoiced)
}

// Release clears the invoiced flag after the backing invoice is deleted.
func (r *ExportVoucherRepo) Release(ctx context.Context, code string) error {
	_, err := r.q.Exec(ctx, `UPDATE export_vouchers SET invoiced = FALSE, updated_at = now() WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("release export voucher: %w", err)
	}
	return nil
}
