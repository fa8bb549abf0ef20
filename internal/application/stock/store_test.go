package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanpham-dev/warehouse-api/internal/application/stock"
	"github.com/quanpham-dev/warehouse-api/internal/domain"
	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
	"github.com/quanpham-dev/warehouse-api/internal/infrastructure/memory"
)

func newStore(t *testing.T) (*stock.Store, *memory.Store) {
	t.Helper()
	mem := memory.NewStore()
	return stock.NewStore(memory.NewTxRunner(mem), mem.Repos().Goods), mem
}

func seedGood(t *testing.T, s *stock.Store, code string, qty int64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Register(ctx, &entity.Good{Code: code, Name: code, Unit: "pcs"}))
	if qty != 0 {
		_, err := s.Adjust(ctx, code, qty)
		require.NoError(t, err)
	}
}

func TestRegister_StockAlwaysStartsAtZero(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	g := &entity.Good{Code: "G1", Name: "Widget", Unit: "pcs", OnHandQty: 99}
	require.NoError(t, s.Register(ctx, g))

	stored, err := s.Get(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.OnHandQty, "quantity only enters through vouchers")
}

func TestRegister_RejectsBlankCodeOrName(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Register(ctx, &entity.Good{Name: "x", Unit: "pcs"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.Register(ctx, &entity.Good{Code: "G1", Unit: "pcs"}), domain.ErrInvalidInput)
}

func TestRegister_DuplicateCode(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	seedGood(t, s, "G1", 0)
	assert.ErrorIs(t, s.Register(ctx, &entity.Good{Code: "G1", Name: "again", Unit: "pcs"}), domain.ErrDuplicate)
}

func TestAdjust_PositiveAndNegativeDeltas(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	seedGood(t, s, "G1", 10)

	qty, err := s.Adjust(ctx, "G1", -4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), qty)

	qty, err = s.Adjust(ctx, "G1", 14)
	require.NoError(t, err)
	assert.Equal(t, int64(20), qty)
}

func TestAdjust_NeverGoesNegative(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	seedGood(t, s, "G1", 3)

	_, err := s.Adjust(ctx, "G1", -5)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(5), stockErr.Requested)
	assert.Equal(t, int64(3), stockErr.Available)

	g, err := s.Get(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), g.OnHandQty, "rejected adjustment leaves quantity intact")
}

func TestAdjust_ToExactlyZeroIsAllowed(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	seedGood(t, s, "G1", 7)

	qty, err := s.Adjust(ctx, "G1", -7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestAdjust_UnknownGood(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Adjust(context.Background(), "NOPE", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyDeltas_FirstFailureAborts(t *testing.T) {
	s, mem := newStore(t)
	ctx := context.Background()
	seedGood(t, s, "A", 10)
	seedGood(t, s, "B", 1)

	runner := memory.NewTxRunner(mem)
	err := runner.Run(ctx, func(r repository.Repos) error {
		return stock.ApplyDeltas(ctx, r.Goods, map[string]int64{"A": -2, "B": -5})
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// The rollback undoes the decrement of A applied before B failed.
	a, err := s.Get(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, int64(10), a.OnHandQty)
}

func TestUpdateInfo_PreservesQuantity(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	seedGood(t, s, "G1", 12)

	g, err := s.UpdateInfo(ctx, "G1", "Renamed", "box", decimal.NewFromInt(99))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", g.Name)
	assert.Equal(t, int64(12), g.OnHandQty)
}
