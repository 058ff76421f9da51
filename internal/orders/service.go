// Package orders implements the order-building workflow: draft orders,
// scan-driven line reconciliation, and order lifecycle.
package orders

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cjovignot/orderNow/internal/domain"
	"github.com/cjovignot/orderNow/internal/store"
)

var (
	// ErrNotFound reports an unknown order ID.
	ErrNotFound = errors.New("orders: not found")
	// ErrNotEditable reports a line mutation on a non-draft order.
	ErrNotEditable = errors.New("orders: only draft orders can be edited")
	// ErrSupplierRequired reports a missing or unknown supplier reference.
	ErrSupplierRequired = errors.New("orders: select a supplier first")
	// ErrEmptyOrder reports an order submitted without line items.
	ErrEmptyOrder = errors.New("orders: at least one line item required")
	// ErrUnknownProduct reports a scan whose code matches nothing in the
	// catalog; the caller should open the completion form.
	ErrUnknownProduct = errors.New("orders: product not in catalog")
	// ErrInvalidStatus reports a status outside draft/sent/received.
	ErrInvalidStatus = errors.New("orders: invalid status")
)

// CatalogPort is the slice of the catalog service the order workflow needs.
type CatalogPort interface {
	Get(id string) (domain.Product, error)
	FindByBarcode(code string) (domain.Product, bool)
}

// SupplierDirectory reports supplier existence for relation checks.
type SupplierDirectory interface {
	Exists(id string) bool
}

// Service owns the in-memory order collection and writes it through the
// store on every mutation. Totals are recomputed on every change.
type Service struct {
	mu        sync.RWMutex
	store     *store.Store
	catalog   CatalogPort
	suppliers SupplierDirectory
	items     []domain.Order
}

// NewService loads the persisted orders into memory.
func NewService(ctx context.Context, st *store.Store, catalog CatalogPort, suppliers SupplierDirectory) *Service {
	return &Service{store: st, catalog: catalog, suppliers: suppliers, items: st.Orders(ctx)}
}

// Reload replaces the working copy from the store, after an import.
func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.store.Orders(ctx)
}

// List returns a copy of every order.
func (s *Service) List() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns one order by ID.
func (s *Service) Get(id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(id)
}

func (s *Service) find(id string) (domain.Order, error) {
	for _, o := range s.items {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, ErrNotFound
}

// LineInput is one manually composed line. A nil price falls back to the
// product's catalog price, then zero.
type LineInput struct {
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     *float64 `json:"price,omitempty"`
}

// CreateInput describes a new draft order.
type CreateInput struct {
	SupplierID string      `json:"supplierId"`
	Lines      []LineInput `json:"products"`
}

// Create opens a draft order for one supplier with at least one line.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Order, error) {
	if input.SupplierID == "" || !s.suppliers.Exists(input.SupplierID) {
		return domain.Order{}, ErrSupplierRequired
	}
	if len(input.Lines) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}
	lines := s.buildLines(input.Lines)
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}
	now := time.Now().UTC()
	order := domain.Order{
		ID:         domain.NewID(),
		SupplierID: input.SupplierID,
		Lines:      lines,
		Total:      Total(lines),
		Status:     domain.OrderStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, order)
	s.store.SaveOrders(ctx, s.items)
	return order, nil
}

// buildLines folds manual inputs through the reconciler so duplicates
// merge and prices resolve the same way scans do.
func (s *Service) buildLines(inputs []LineInput) []domain.OrderLine {
	var lines []domain.OrderLine
	for _, in := range inputs {
		if in.Quantity <= 0 {
			continue
		}
		incoming := Incoming{ProductID: in.ProductID, Quantity: in.Quantity}
		var catalogPrice *float64
		if in.Price != nil {
			incoming.Price = *in.Price
		} else if product, err := s.catalog.Get(in.ProductID); err == nil {
			catalogPrice = product.Price
		}
		lines = Reconcile(lines, incoming, catalogPrice)
	}
	return lines
}

// UpdateStatus moves the order to another status. The lifecycle is linear
// by convention only; no transition is rejected.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return domain.Order{}, ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.items {
		if o.ID != id {
			continue
		}
		o.Status = status
		o.UpdatedAt = time.Now().UTC()
		s.items[i] = o
		s.store.SaveOrders(ctx, s.items)
		return o, nil
	}
	return domain.Order{}, ErrNotFound
}

// UpdateLines replaces the whole line list of a draft order, reconciling
// the inputs and recomputing the total.
func (s *Service) UpdateLines(ctx context.Context, id string, inputs []LineInput) (domain.Order, error) {
	lines := s.buildLines(inputs)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateDraft(ctx, id, func(o *domain.Order) error {
		o.Lines = lines
		return nil
	})
}

// MergeScan reconciles one scan event into a draft order. The code is
// resolved through the catalog: barcode first, then product ID. Quantity
// defaults to 1 when non-positive; the price prefers the catalog, then the
// scan's own price, then zero.
func (s *Service) MergeScan(ctx context.Context, orderID, code string, quantity int, price float64) (domain.Order, error) {
	product, ok := s.catalog.FindByBarcode(code)
	if !ok {
		var err error
		product, err = s.catalog.Get(code)
		if err != nil {
			return domain.Order{}, ErrUnknownProduct
		}
	}
	incoming := Incoming{ProductID: product.ID, Quantity: quantity, Price: price}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateDraft(ctx, orderID, func(o *domain.Order) error {
		o.Lines = Reconcile(o.Lines, incoming, product.Price)
		return nil
	})
}

// SetLineQuantity edits one line's quantity on a draft order; zero or
// below removes the line.
func (s *Service) SetLineQuantity(ctx context.Context, orderID, productID string, quantity int) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateDraft(ctx, orderID, func(o *domain.Order) error {
		o.Lines = SetQuantity(o.Lines, productID, quantity)
		return nil
	})
}

// SetLinePrice edits one line's price on a draft order.
func (s *Service) SetLinePrice(ctx context.Context, orderID, productID string, price float64) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateDraft(ctx, orderID, func(o *domain.Order) error {
		o.Lines = SetPrice(o.Lines, productID, price)
		return nil
	})
}

// mutateDraft applies an edit to a draft order, recomputes the total, and
// writes through. Caller holds the lock.
func (s *Service) mutateDraft(ctx context.Context, id string, edit func(*domain.Order) error) (domain.Order, error) {
	for i, o := range s.items {
		if o.ID != id {
			continue
		}
		if o.Status != domain.OrderStatusDraft {
			return domain.Order{}, ErrNotEditable
		}
		if err := edit(&o); err != nil {
			return domain.Order{}, err
		}
		o.Total = Total(o.Lines)
		o.UpdatedAt = time.Now().UTC()
		s.items[i] = o
		s.store.SaveOrders(ctx, s.items)
		return o, nil
	}
	return domain.Order{}, ErrNotFound
}

// Delete removes the order.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.items {
		if o.ID != id {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.store.SaveOrders(ctx, s.items)
		return nil
	}
	return ErrNotFound
}

// ResolvedLine joins an order line with its catalog product for document
// and mail generation.
type ResolvedLine struct {
	Product  domain.Product
	Quantity int
	Price    float64
}

// Subtotal is quantity times captured price.
func (l ResolvedLine) Subtotal() float64 {
	return float64(l.Quantity) * l.Price
}

// Resolve joins the order's lines with the catalog, skipping lines whose
// product no longer exists.
func (s *Service) Resolve(order domain.Order) []ResolvedLine {
	out := make([]ResolvedLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		product, err := s.catalog.Get(line.ProductID)
		if err != nil {
			continue
		}
		out = append(out, ResolvedLine{Product: product, Quantity: line.Quantity, Price: line.Price})
	}
	return out
}
