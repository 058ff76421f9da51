// Package catalog manages the product catalog and barcode lookup.
package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cjovignot/orderNow/internal/domain"
	"github.com/cjovignot/orderNow/internal/store"
)

var (
	// ErrNotFound reports an unknown product ID.
	ErrNotFound = errors.New("catalog: not found")
)

// SupplierDirectory is the slice of the supplier service the catalog needs.
type SupplierDirectory interface {
	Exists(id string) bool
}

// Service owns the in-memory product collection and writes it through the
// store on every mutation.
type Service struct {
	mu        sync.RWMutex
	store     *store.Store
	suppliers SupplierDirectory
	items     []domain.Product
}

// NewService loads the persisted catalog into memory.
func NewService(ctx context.Context, st *store.Store, suppliers SupplierDirectory) *Service {
	return &Service{store: st, suppliers: suppliers, items: st.Products(ctx)}
}

// Reload replaces the working copy from the store, after an import.
func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.store.Products(ctx)
}

// List returns a copy of the whole catalog.
func (s *Service) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns one product by ID.
func (s *Service) Get(id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.items {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrNotFound
}

// FindByBarcode returns the first product whose barcode equals code.
// Absence is an expected outcome, not a failure.
func (s *Service) FindByBarcode(code string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.items {
		if p.Barcode == code {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Create validates the form and appends a new product. Used both by the
// manual form and by the scan-completion flow, where the scanned code
// arrives as the prefilled barcode.
func (s *Service) Create(ctx context.Context, form Form) (domain.Product, error) {
	form = form.normalized()
	s.mu.Lock()
	defer s.mu.Unlock()
	if errs := s.validateForm(form, ""); len(errs) > 0 {
		return domain.Product{}, errs
	}
	now := time.Now().UTC()
	p := domain.Product{
		ID:         domain.NewID(),
		Name:       form.Name,
		Barcode:    form.Barcode,
		SupplierID: form.SupplierID,
		Quantity:   form.Quantity,
		Price:      normalizePrice(form.Price),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.items = append(s.items, p)
	s.store.SaveProducts(ctx, s.items)
	return p, nil
}

// Update replaces the record fields in place and refreshes UpdatedAt.
func (s *Service) Update(ctx context.Context, id string, form Form) (domain.Product, error) {
	form = form.normalized()
	s.mu.Lock()
	defer s.mu.Unlock()
	if errs := s.validateForm(form, id); len(errs) > 0 {
		return domain.Product{}, errs
	}
	for i, p := range s.items {
		if p.ID != id {
			continue
		}
		p.Name = form.Name
		p.Barcode = form.Barcode
		p.SupplierID = form.SupplierID
		p.Quantity = form.Quantity
		p.Price = normalizePrice(form.Price)
		p.UpdatedAt = time.Now().UTC()
		s.items[i] = p
		s.store.SaveProducts(ctx, s.items)
		return p, nil
	}
	return domain.Product{}, ErrNotFound
}

// Delete removes the product. Order lines that reference it are left in
// place; document generation skips them and the integrity report lists
// them.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.items {
		if p.ID != id {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.store.SaveProducts(ctx, s.items)
		return nil
	}
	return ErrNotFound
}

// normalizePrice stores a blank or non-positive price as absent, never as
// zero.
func normalizePrice(price *float64) *float64 {
	if price == nil || *price <= 0 {
		return nil
	}
	v := *price
	return &v
}
