// Package backup implements whole-dataset export/import and the
// referential integrity report.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cjovignot/orderNow/internal/domain"
	"github.com/cjovignot/orderNow/internal/store"
)

// ErrImportFailed reports unusable import data; the user is asked to retry
// and nothing is changed.
var ErrImportFailed = errors.New("backup: import data unusable")

// Reloader refreshes a service's working copy from the store.
type Reloader interface {
	Reload(ctx context.Context)
}

// Snapshot is the export document: all four collections plus the export
// timestamp. Round-tripping it reproduces an equivalent state, the
// timestamp aside.
type Snapshot struct {
	Suppliers   []domain.Supplier  `json:"suppliers"`
	Products    []domain.Product   `json:"products"`
	Orders      []domain.Order     `json:"orders"`
	Preferences domain.Preferences `json:"preferences"`
	ExportedAt  time.Time          `json:"exportDate"`
}

// Service reads and writes the persisted collections as one unit.
type Service struct {
	store     *store.Store
	reloaders []Reloader
	now       func() time.Time
}

// NewService constructs the backup service; reloaders are notified after a
// successful import or clear.
func NewService(st *store.Store, reloaders ...Reloader) *Service {
	return &Service{store: st, reloaders: reloaders, now: time.Now}
}

// Export captures the persisted state. The store is canonical because
// every service writes through on mutation.
func (s *Service) Export(ctx context.Context) Snapshot {
	return Snapshot{
		Suppliers:   s.store.Suppliers(ctx),
		Products:    s.store.Products(ctx),
		Orders:      s.store.Orders(ctx),
		Preferences: s.store.Preferences(ctx),
		ExportedAt:  s.now().UTC(),
	}
}

// ExportJSON renders the snapshot as an indented document, matching the
// hand-inspectable export format.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := json.MarshalIndent(s.Export(ctx), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// importDocument detects which collections the document carries; absent
// collections keep their current state.
type importDocument struct {
	Suppliers   *[]domain.Supplier  `json:"suppliers"`
	Products    *[]domain.Product   `json:"products"`
	Orders      *[]domain.Order     `json:"orders"`
	Preferences *domain.Preferences `json:"preferences"`
}

// Import restores the collections present in the document and reloads the
// services. Malformed data fails before anything is written.
func (s *Service) Import(ctx context.Context, data []byte) error {
	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrImportFailed, err)
	}
	if doc.Suppliers != nil {
		s.store.SaveSuppliers(ctx, *doc.Suppliers)
	}
	if doc.Products != nil {
		s.store.SaveProducts(ctx, *doc.Products)
	}
	if doc.Orders != nil {
		s.store.SaveOrders(ctx, *doc.Orders)
	}
	if doc.Preferences != nil {
		s.store.SavePreferences(ctx, *doc.Preferences)
	}
	s.reload(ctx)
	return nil
}

// Clear wipes every collection and resets the working copies.
func (s *Service) Clear(ctx context.Context) {
	s.store.Clear(ctx)
	s.reload(ctx)
}

func (s *Service) reload(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range s.reloaders {
		r := r
		g.Go(func() error {
			r.Reload(ctx)
			return nil
		})
	}
	_ = g.Wait()
}
