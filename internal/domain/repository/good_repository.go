package repository

import (
	"context"

	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
)

// GoodRepository is the persistence port for goods. AdjustQty is the stock
// store contract: the guard and the mutation are one atomic operation on the
// good's row, so two concurrent exports can never both pass the
// non-negative check.
type GoodRepository interface {
	Create(ctx context.Context, good *entity.Good) error
	Update(ctx context.Context, good *entity.Good) error
	GetByCode(ctx context.Context, code string) (*entity.Good, error)
	List(ctx context.Context) ([]*entity.Good, error)
	// AdjustQty applies delta to on_hand_qty iff the result stays >= 0 and
	// returns the new quantity. A rejected adjustment returns
	// *domain.InsufficientStockError; a missing good returns ErrNotFound.
	AdjustQty(ctx context.Context, code string, delta int64) (int64, error)
}
