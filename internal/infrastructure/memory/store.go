// Package memory provides in-memory implementations of the repository ports
// with the same error semantics as the PostgreSQL adapters. It backs the
// use-case test suites and is suitable for local experimentation; it is not
// a production store.
package memory

import (
	"context"
	"sync"

	"github.com/quanpham-dev/warehouse-api/internal/domain/entity"
	"github.com/quanpham-dev/warehouse-api/internal/domain/repository"
)

// Store holds all engine state in maps guarded by one mutex. Payments are
// keyed by invoice code to mirror the unique index on the payments table.
type Store struct {
	mu        sync.Mutex
	goods     map[string]entity.Good
	imports   map[string]entity.ImportVoucher
	exports   map[string]entity.ExportVoucher
	invoices  map[string]entity.Invoice
	payments  map[string]entity.Payment
	shipments map[string]entity.Shipment
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		goods:     make(map[string]entity.Good),
		imports:   make(map[string]entity.ImportVoucher),
		exports:   make(map[string]entity.ExportVoucher),
		invoices:  make(map[string]entity.Invoice),
		payments:  make(map[string]entity.Payment),
		shipments: make(map[string]entity.Shipment),
	}
}

// Repos returns repository adapters bound to this store.
func (s *Store) Repos() repository.Repos {
	return repository.Repos{
		Goods:          &GoodRepo{store: s},
		ImportVouchers: &ImportVoucherRepo{store: s},
		ExportVouchers: &ExportVoucherRepo{store: s},
		Invoices:       &InvoiceRepo{store: s},
		Payments:       &PaymentRepo{store: s},
		Shipments:      &ShipmentRepo{store: s},
	}
}

// snapshot deep-copies the whole store state.
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := NewStore()
	for k, v := range s.goods {
		snap.goods[k] = v
	}
	for k, v := range s.imports {
		snap.imports[k] = copyImport(v)
	}
	for k, v := range s.exports {
		snap.exports[k] = copyExport(v)
	}
	for k, v := range s.invoices {
		snap.invoices[k] = v
	}
	for k, v := range s.payments {
		snap.payments[k] = v
	}
	for k, v := range s.shipments {
		snap.shipments[k] = v
	}
	return snap
}

// restore replaces the store state with a snapshot.
func (s *Store) restore(snap *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goods = snap.goods
	s.imports = snap.imports
	s.exports = snap.exports
	s.invoices = snap.invoices
	s.payments = snap.payments
	s.shipments = snap.shipments
}

func copyImport(v entity.ImportVoucher) entity.ImportVoucher {
	out := v
	out.Lines = append([]entity.ImportLine(nil), v.Lines...)
	return out
}

func copyExport(v entity.ExportVoucher) entity.ExportVoucher {
	out := v
	out.Lines = append([]entity.ExportLine(nil), v.Lines...)
	return out
}

// TxRunner mimics transactional semantics over the store: a failed closure
// restores the pre-transaction snapshot, so partial mutations never survive.
type TxRunner struct {
	store *Store
}

var _ repository.TxRunner = (*TxRunner)(nil)

// NewTxRunner builds the runner over the store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run executes fn against store-bound repositories, rolling the store back
// to its prior state when fn fails.
func (t *TxRunner) Run(_ context.Context, fn func(r repository.Repos) error) error {
	snap := t.store.snapshot()
	if err := fn(t.store.Repos()); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}
