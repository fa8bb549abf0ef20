package invoicing

import (
	"context"
	"time"

	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

// Dispatcher creates the shipment derived from an invoice inside the
// caller's transaction. Invoice creation uses it for the COD-at-creation
// rule; implementations must be idempotent per invoice.
type Dispatcher interface {
	DispatchInTx(ctx context.Context, r repository.Repos, inv *entity.Invoice, now time.Time) (*entity.Shipment, error)
}
