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

var _ repository.GoodRepository = (*GoodRepo)(nil)

// GoodRepo implements GoodRepository over PostgreSQL. Pass a pool or a tx
// (Querier).
type GoodRepo struct {
	q Querier
}

// NewGoodRepository builds the adapter.
func NewGoodRepository(q Querier) *GoodRepo {
	return &GoodRepo{q: q}
}

// Create inserts a good with zero on-hand quantity.
func (r *GoodRepo) Create(ctx context.Context, good *entity.Good) error {
	const query = `
		INSERT INTO goods (code, name, unit, unit_price, on_hand_qty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, now(), now())`
	_, err := r.q.Exec(ctx, query, good.Code, good.Name, good.Unit, good.UnitPrice)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("good %s: %w", good.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert good: %w", err)
	}
	return nil
}

// Update writes the descriptive fields. Quantity is only touched by
// AdjustQty.
func (r *GoodRepo) Update(ctx context.Context, good *entity.Good) error {
	const query = `
		UPDATE goods SET name = $2, unit = $3, unit_price = $4, updated_at = now()
		WHERE code = $1`
	tag, err := r.q.Exec(ctx, query, good.Code, good.Name, good.Unit, good.UnitPrice)
	if err != nil {
		return fmt.Errorf("update good: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("good %s: %w", good.Code, domain.ErrNotFound)
	}
	return nil
}

// GetByCode returns one good.
func (r *GoodRepo) GetByCode(ctx context.Context, code string) (*entity.Good, error) {
	const query = `
		SELECT code, name, unit, unit_price, on_hand_qty, created_at, updated_at
		FROM goods WHERE code = $1`
	var g entity.Good
	err := r.q.QueryRow(ctx, query, code).Scan(
		&g.Code, &g.Name, &g.Unit, &g.UnitPrice, &g.OnHandQty, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("good %s: %w", code, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get good: %w", err)
	}
	return &g, nil
}

// List returns all goods ordered by code.
func (r *GoodRepo) List(ctx context.Context) ([]*entity.Good, error) {
	const query = `
		SELECT code, name, unit, unit_price, on_hand_qty, created_at, updated_at
		FROM goods ORDER BY code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list goods: %w", err)
	}
	defer rows.Close()

	var goods []*entity.Good
	for rows.Next() {
		var g entity.Good
		if err := rows.Scan(&g.Code, &g.Name, &g.Unit, &g.UnitPrice, &g.OnHandQty, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan good: %w", err)
		}
		goods = append(goods, &g)
	}
	return goods, rows.Err()
}

// AdjustQty applies delta with the non-negative guard in the UPDATE itself,
// so the check and the decrement are one atomic statement. When the guard
// rejects the row, the current quantity is re-read to build the error.
func (r *GoodRepo) AdjustQty(ctx context.Context, code string, delta int64) (int64, error) {
	const query = `
		UPDATE goods
		SET on_hand_qty = on_hand_qty + $2, updated_at = now()
		WHERE code = $1 AND on_hand_qty + $2 >= 0
		RETURNING on_hand_qty`
	var newQty int64
	err := r.q.QueryRow(ctx, query, code, delta).Scan(&newQty)
	if err == nil {
		return newQty, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("adjust good qty: %w", err)
	}

	good, getErr := r.GetByCode(ctx, code)
	if getErr != nil {
		return 0, getErr
	}
	return 0, &domain.InsufficientStockError{
		GoodCode:  code,
		Requested: -delta,
		Available: good.OnHandQty,
	}
}
