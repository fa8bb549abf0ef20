package stock

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

// Store is the stock service: goods catalog CRUD plus the quantity
// mutations consulted by the voucher ledger. Adjustments run against
// repositories already bound to the caller's transaction, so a failed
// adjustment rolls back with everything else.
type Store struct {
	txRunner repository.TxRunner
	goods    repository.GoodRepository
}

// NewStore builds the store. goods is a pool-bound repository for reads and
// catalog writes outside voucher transactions.
func NewStore(txRunner repository.TxRunner, goods repository.GoodRepository) *Store {
	return &Store{txRunner: txRunner, goods: goods}
}

// Register adds a good to the catalog. Stock starts at zero; quantity only
// ever changes through vouchers.
func (s *Store) Register(ctx context.Context, g *entity.Good) error {
	g.Code = strings.TrimSpace(g.Code)
	if g.Code == "" || strings.TrimSpace(g.Name) == "" {
		return &domain.ValidationError{Field: "code", Reason: "code and name are required"}
	}
	g.OnHandQty = 0
	return s.goods.Create(ctx, g)
}

// UpdateInfo changes descriptive fields of a good. OnHandQty is preserved.
func (s *Store) UpdateInfo(ctx context.Context, code string, name, unit string, unitPrice decimal.Decimal) (*entity.Good, error) {
	g, err := s.goods.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	g.Name = name
	g.Unit = unit
	g.UnitPrice = unitPrice
	if err := s.goods.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Get returns one good.
func (s *Store) Get(ctx context.Context, code string) (*entity.Good, error) {
	return s.goods.GetByCode(ctx, code)
}

// List returns the goods catalog.
func (s *Store) List(ctx context.Context) ([]*entity.Good, error) {
	return s.goods.List(ctx)
}

// Adjust applies a single delta to a good inside its own transaction.
// Positive for receipts, negative for shipments; an adjustment that would
// leave on-hand below zero is rejected with *domain.InsufficientStockError.
func (s *Store) Adjust(ctx context.Context, goodCode string, delta int64) (int64, error) {
	var newQty int64
	err := s.txRunner.Run(ctx, func(r repository.Repos) error {
		qty, err := r.Goods.AdjustQty(ctx, goodCode, delta)
		if err != nil {
			return err
		}
		newQty = qty
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

// ApplyDeltas applies a set of per-good deltas with the caller's repository.
// Goods are touched in code order so concurrent multi-line vouchers acquire
// row locks in the same sequence. The first failing adjustment aborts; the
// caller's transaction rollback undoes the earlier ones.
func ApplyDeltas(ctx context.Context, goods repository.GoodRepository, deltas map[string]int64) error {
	codes := make([]string, 0, len(deltas))
	for code := range deltas {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if deltas[code] == 0 {
			continue
		}
		if _, err := goods.AdjustQty(ctx, code, deltas[code]); err != nil {
			return err
		}
	}
	return nil
}
