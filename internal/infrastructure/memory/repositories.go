package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

var (
	_ repository.GoodRepository          = (*GoodRepo)(nil)
	_ repository.ImportVoucherRepository = (*ImportVoucherRepo)(nil)
	_ repository.ExportVoucherRepository = (*ExportVoucherRepo)(nil)
	_ repository.InvoiceRepository       = (*InvoiceRepo)(nil)
	_ repository.PaymentRepository       = (*PaymentRepo)(nil)
	_ repository.ShipmentRepository      = (*ShipmentRepo)(nil)
)

// GoodRepo implements GoodRepository over the store.
type GoodRepo struct {
	store *Store
}

func (r *GoodRepo) Create(_ context.Context, g *entity.Good) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.goods[g.Code]; exists {
		return fmt.Errorf("good %s: %w", g.Code, domain.ErrDuplicate)
	}
	r.store.goods[g.Code] = *g
	return nil
}

func (r *GoodRepo) Update(_ context.Context, g *entity.Good) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, exists := r.store.goods[g.Code]
	if !exists {
		return fmt.Errorf("good %s: %w", g.Code, domain.ErrNotFound)
	}
	stored.Name = g.Name
	stored.Unit = g.Unit
	stored.UnitPrice = g.UnitPrice
	r.store.goods[g.Code] = stored
	return nil
}

func (r *GoodRepo) GetByCode(_ context.Context, code string) (*entity.Good, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	g, exists := r.store.goods[code]
	if !exists {
		return nil, fmt.Errorf("good %s: %w", code, domain.ErrNotFound)
	}
	return &g, nil
}

func (r *GoodRepo) List(_ context.Context) ([]*entity.Good, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Good, 0, len(r.store.goods))
	for _, g := range r.store.goods {
		g := g
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *GoodRepo) AdjustQty(_ context.Context, code string, delta int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	g, exists := r.store.goods[code]
	if !exists {
		return 0, fmt.Errorf("good %s: %w", code, domain.ErrNotFound)
	}
	if g.OnHandQty+delta < 0 {
		return 0, &domain.InsufficientStockError{GoodCode: code, Requested: -delta, Available: g.OnHandQty}
	}
	g.OnHandQty += delta
	r.store.goods[code] = g
	return g.OnHandQty, nil
}

// ImportVoucherRepo implements ImportVoucherRepository over the store.
type ImportVoucherRepo struct {
	store *Store
}

func (r *ImportVoucherRepo) Create(_ context.Context, v *entity.ImportVoucher) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.imports[v.Code]; exists {
		return fmt.Errorf("import voucher %s: %w", v.Code, domain.ErrDuplicate)
	}
	r.store.imports[v.Code] = copyImport(*v)
	return nil
}

func (r *ImportVoucherRepo) GetByCode(_ context.Context, code string) (*entity.ImportVoucher, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, exists := r.store.imports[code]
	if !exists {
		return nil, fmt.Errorf("import voucher %s: %w", code, domain.ErrNotFound)
	}
	out := copyImport(v)
	return &out, nil
}

func (r *ImportVoucherRepo) List(_ context.Context) ([]*entity.ImportVoucher, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.ImportVoucher, 0, len(r.store.imports))
	for _, v := range r.store.imports {
		c := copyImport(v)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *ImportVoucherRepo) ReplaceLines(_ context.Context, v *entity.ImportVoucher) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.imports[v.Code]; !exists {
		return fmt.Errorf("import voucher %s: %w", v.Code, domain.ErrNotFound)
	}
	r.store.imports[v.Code] = copyImport(*v)
	return nil
}

func (r *ImportVoucherRepo) Delete(_ context.Context, code string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.imports[code]; !exists {
		return fmt.Errorf("import voucher %s: %w", code, domain.ErrNotFound)
	}
	delete(r.store.imports, code)
	return nil
}

func (r *ImportVoucherRepo) ListCodes(_ context.Context, prefix string) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var codes []string
	for code := range r.store.imports {
		if strings.HasPrefix(code, prefix) {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

func (r *ImportVoucherRepo) Claim(_ context.Context, code string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, exists := r.store.imports[code]
	if !exists {
		return fmt.Errorf("import voucher %s: %w", code, domain.ErrNotFound)
	}
	if v.Invoiced {
		return fmt.Errorf("import voucher %s: %w", code, domain.ErrVoucherAlreadyInvoiced)
	}
	v.Invoiced = true
	r.store.imports[code] = v
	return nil
}

func (r *ImportVoucherRepo) Release(_ context.Context, code string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, exists := r.store.imports[code]
	if !exists {
		return nil
	}
	v.Invoiced = false
	r.store.imports[code] = v
	return nil
}

// ExportVoucherRepo implements ExportVoucherRepository over the store.
type ExportVoucherRepo struct {
	store *Store
}

func (r *ExportVoucherRepo) Create(_ context.Context, v *entity.ExportVoucher) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.exports[v.Code]; exists {
		return fmt.Errorf("export voucher %s: %w", v.Code, domain.ErrDuplicate)
	}
	r.store.exports[v.Code] = copyExport(*v)
	return nil
}

func (r *ExportVoucherRepo) GetByCode(_ context.Context, code string) (*entity.ExportVoucher, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, exists := r.store.exports[code]
	if !exists {
		return nil, fmt.Errorf("export voucher %s: %w", code, domain.ErrNotFound)
	}
	out := copyExport(v)
	return &out, nil
}

func (r *ExportVoucherRepo) List(_ context.Context) ([]*entity.ExportVoucher, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.ExportVoucher, 0, len(r.store.exports))
	for _, v := range r.store.exports {
		c := copyExport(v)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *ExportVoucherRepo) ReplaceLines(_ context.Context, v *entity.ExportVoucher) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.exports[v.Code]; !exists {
		return fmt.Errorf("export voucher %s: %w", v.Code, domain.ErrNotFound)
	}
	r.store.exports[v.Code] = copyExport(*v)
	return nil
}

func (r *ExportVoucherRepo) Delete(_ context.Context, code string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.exports[code]; !exists {
		return fmt.Errorf("export voucher %s: %w", code, domain.ErrNotFound)
	}
	delete(r.store.exports, code)
	return nil
}

func (r *ExportVoucherRepo) ListCodes(_ context.Context, prefix string) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var codes []string
	for code := range r.store.exports {
		if strings.HasPrefix(code, prefix) {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

func (r *ExportVoucherRepo) Claim(_ context.Context, code string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, exists := r.store.exports[code]
	if !exists {
		return fmt.Errorf("export voucher %s: %w", code, domain.ErrNotFound)
	}
	if v.Invoiced {
		return fmt.Errorf("export voucher %s: %w", code, domain.ErrVoucherAlreadyInvoiced)
	}
	v.Invoiced = true
	r.store.exports[code] = v
	return nil
}

func (r *ExportVoucherRepo) Release(_ context.Context, code string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, exists := r.store.exports[code]
	if !exists {
		return nil
	}
	v.Invoiced = false
	r.store.exports[code] = v
	return nil
}

// InvoiceRepo implements InvoiceRepository over the store.
type InvoiceRepo struct {
	store *Store
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.invoices[inv.Code]; exists {
		return fmt.Errorf("invoice %s: %w", inv.Code, domain.ErrDuplicate)
	}
	r.store.invoices[inv.Code] = *inv
	return nil
}

func (r *InvoiceRepo) GetByCode(_ context.Context, code string) (*entity.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	inv, exists := r.store.invoices[code]
	if !exists {
		return nil, fmt.Errorf("invoice %s: %w", code, domain.ErrNotFound)
	}
	return &inv, nil
}

func (r *InvoiceRepo) GetForUpdate(ctx context.Context, code string) (*entity.Invoice, error) {
	return r.GetByCode(ctx, code)
}

func (r *InvoiceRepo) List(_ context.Context) ([]*entity.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Invoice, 0, len(r.store.invoices))
	for _, inv := range r.store.invoices {
		inv := inv
		out = append(out, &inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *InvoiceRepo) UpdateStatus(_ context.Context, code, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	inv, exists := r.store.invoices[code]
	if !exists {
		return fmt.Errorf("invoice %s: %w", code, domain.ErrNotFound)
	}
	inv.Status = status
	r.store.invoices[code] = inv
	return nil
}

func (r *InvoiceRepo) Delete(_ context.Context, code string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.invoices[code]; !exists {
		return fmt.Errorf("invoice %s: %w", code, domain.ErrNotFound)
	}
	delete(r.store.invoices, code)
	return nil
}

func (r *InvoiceRepo) ListCodes(_ context.Context, prefix string) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var codes []string
	for code := range r.store.invoices {
		if strings.HasPrefix(code, prefix) {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

func (r *InvoiceRepo) FindBySource(_ context.Context, source entity.VoucherRef) (*entity.Invoice, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, inv := range r.store.invoices {
		if inv.Source == source {
			inv := inv
			return &inv, nil
		}
	}
	return nil, fmt.Errorf("invoice for %s %s: %w", source.Kind, source.Code, domain.ErrNotFound)
}

// PaymentRepo implements PaymentRepository over the store. Payments are
// keyed by invoice code, so a second insert for the same invoice fails the
// way the unique index does.
type PaymentRepo struct {
	store *Store
}

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.payments[p.InvoiceCode]; exists {
		return fmt.Errorf("invoice %s: %w", p.InvoiceCode, domain.ErrAlreadyPaid)
	}
	r.store.payments[p.InvoiceCode] = *p
	return nil
}

func (r *PaymentRepo) GetByInvoice(_ context.Context, invoiceCode string) (*entity.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, exists := r.store.payments[invoiceCode]
	if !exists {
		return nil, fmt.Errorf("payment for invoice %s: %w", invoiceCode, domain.ErrNotFound)
	}
	return &p, nil
}

// ShipmentRepo implements ShipmentRepository over the store.
type ShipmentRepo struct {
	store *Store
}

func (r *ShipmentRepo) CreateIfAbsent(_ context.Context, s *entity.Shipment) (*entity.Shipment, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.shipments {
		if existing.InvoiceCode == s.InvoiceCode {
			existing := existing
			return &existing, false, nil
		}
	}
	r.store.shipments[s.Code] = *s
	out := *s
	return &out, true, nil
}

func (r *ShipmentRepo) GetByCode(_ context.Context, code string) (*entity.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, exists := r.store.shipments[code]
	if !exists {
		return nil, fmt.Errorf("shipment %s: %w", code, domain.ErrNotFound)
	}
	return &s, nil
}

func (r *ShipmentRepo) GetByInvoice(_ context.Context, invoiceCode string) (*entity.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.shipments {
		if s.InvoiceCode == invoiceCode {
			s := s
			return &s, nil
		}
	}
	return nil, fmt.Errorf("shipment for invoice %s: %w", invoiceCode, domain.ErrNotFound)
}

func (r *ShipmentRepo) UpdateStatus(_ context.Context, code, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, exists := r.store.shipments[code]
	if !exists {
		return fmt.Errorf("shipment %s: %w", code, domain.ErrNotFound)
	}
	s.Status = status
	r.store.shipments[code] = s
	return nil
}

func (r *ShipmentRepo) ListCodes(_ context.Context, prefix string) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var codes []string
	for code := range r.store.shipments {
		if strings.HasPrefix(code, prefix) {
			codes = append(codes, code)
		}
	}
	return codes, nil
}
