package suppliers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cjovignot/orderNow/internal/domain"
	"github.com/cjovignot/orderNow/internal/store"
)

var (
	// ErrNotFound reports an unknown supplier ID.
	ErrNotFound = errors.New("suppliers: not found")
)

// Service owns the in-memory supplier collection and writes it through the
// store on every mutation.
type Service struct {
	mu    sync.RWMutex
	store *store.Store
	items []domain.Supplier
}

// NewService loads the persisted collection into memory.
func NewService(ctx context.Context, st *store.Store) *Service {
	return &Service{store: st, items: st.Suppliers(ctx)}
}

// Reload replaces the working copy from the store, after an import.
func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.store.Suppliers(ctx)
}

// List returns a copy of every supplier.
func (s *Service) List() []domain.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Supplier, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns one supplier by ID.
func (s *Service) Get(id string) (domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sup := range s.items {
		if sup.ID == id {
			return sup, nil
		}
	}
	return domain.Supplier{}, ErrNotFound
}

// Exists reports whether a supplier with the given ID is present.
func (s *Service) Exists(id string) bool {
	_, err := s.Get(id)
	return err == nil
}

// Create validates the form and appends a new supplier. Validation
// failures come back as domain.FieldErrors and nothing is saved.
func (s *Service) Create(ctx context.Context, form Form) (domain.Supplier, error) {
	form = form.normalized()
	if errs := form.validate(); len(errs) > 0 {
		return domain.Supplier{}, errs
	}
	now := time.Now().UTC()
	sup := domain.Supplier{
		ID:        domain.NewID(),
		Name:      form.Name,
		Address:   form.Address,
		Email:     form.Email,
		Phone:     form.Phone,
		TaxID:     form.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, sup)
	s.store.SaveSuppliers(ctx, s.items)
	return sup, nil
}

// Update replaces the record fields and refreshes UpdatedAt. The ID is
// immutable.
func (s *Service) Update(ctx context.Context, id string, form Form) (domain.Supplier, error) {
	form = form.normalized()
	if errs := form.validate(); len(errs) > 0 {
		return domain.Supplier{}, errs
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sup := range s.items {
		if sup.ID != id {
			continue
		}
		sup.Name = form.Name
		sup.Address = form.Address
		sup.Email = form.Email
		sup.Phone = form.Phone
		sup.TaxID = form.TaxID
		sup.UpdatedAt = time.Now().UTC()
		s.items[i] = sup
		s.store.SaveSuppliers(ctx, s.items)
		return sup, nil
	}
	return domain.Supplier{}, ErrNotFound
}

// Delete removes the supplier. Products and orders that reference it are
// left in place; the integrity report makes them visible.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sup := range s.items {
		if sup.ID != id {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.store.SaveSuppliers(ctx, s.items)
		return nil
	}
	return ErrNotFound
}
