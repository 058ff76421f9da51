package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cjovignot/orderNow/internal/domain"
)

// Collection names understood by every driver.
const (
	CollectionSuppliers   = "suppliers"
	CollectionProducts    = "products"
	CollectionOrders      = "orders"
	CollectionPreferences = "preferences"
)

// Collections lists every collection in persisted order.
var Collections = []string{
	CollectionSuppliers,
	CollectionProducts,
	CollectionOrders,
	CollectionPreferences,
}

// KV is the persistence port: one JSON document per collection, replaced
// whole on every write. Drivers: file (afero), redis, postgres.
type KV interface {
	Load(ctx context.Context, collection string) (data []byte, ok bool, err error)
	Save(ctx context.Context, collection string, data []byte) error
	Reset(ctx context.Context, collections ...string) error
}

// Store wraps a KV with typed collection accessors and the storage error
// policy: a failed or empty read yields an empty collection (or default
// preferences), a failed write is logged and otherwise treated as applied.
type Store struct {
	kv     KV
	logger *slog.Logger
}

// New constructs a Store over the given driver.
func New(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Suppliers loads the supplier collection.
func (s *Store) Suppliers(ctx context.Context) []domain.Supplier {
	var out []domain.Supplier
	s.load(ctx, CollectionSuppliers, &out)
	return out
}

// SaveSuppliers replaces the supplier collection.
func (s *Store) SaveSuppliers(ctx context.Context, suppliers []domain.Supplier) {
	s.save(ctx, CollectionSuppliers, suppliers)
}

// Products loads the product collection.
func (s *Store) Products(ctx context.Context) []domain.Product {
	var out []domain.Product
	s.load(ctx, CollectionProducts, &out)
	return out
}

// SaveProducts replaces the product collection.
func (s *Store) SaveProducts(ctx context.Context, products []domain.Product) {
	s.save(ctx, CollectionProducts, products)
}

// Orders loads the order collection.
func (s *Store) Orders(ctx context.Context) []domain.Order {
	var out []domain.Order
	s.load(ctx, CollectionOrders, &out)
	return out
}

// SaveOrders replaces the order collection.
func (s *Store) SaveOrders(ctx context.Context, orders []domain.Order) {
	s.save(ctx, CollectionOrders, orders)
}

// Preferences loads the preference record, falling back to defaults.
func (s *Store) Preferences(ctx context.Context) domain.Preferences {
	prefs := domain.DefaultPreferences()
	data, ok, err := s.kv.Load(ctx, CollectionPreferences)
	if err != nil {
		s.logger.Warn("load collection", "collection", CollectionPreferences, "error", err)
		return domain.DefaultPreferences()
	}
	if !ok {
		return prefs
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		s.logger.Warn("decode collection", "collection", CollectionPreferences, "error", err)
		return domain.DefaultPreferences()
	}
	return prefs
}

// SavePreferences replaces the preference record.
func (s *Store) SavePreferences(ctx context.Context, prefs domain.Preferences) {
	s.save(ctx, CollectionPreferences, prefs)
}

// Clear removes every collection.
func (s *Store) Clear(ctx context.Context) {
	if err := s.kv.Reset(ctx, Collections...); err != nil {
		s.logger.Error("clear collections", "error", err)
	}
}

func (s *Store) load(ctx context.Context, collection string, out any) {
	data, ok, err := s.kv.Load(ctx, collection)
	if err != nil {
		s.logger.Warn("load collection", "collection", collection, "error", err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("decode collection", "collection", collection, "error", err)
	}
}

func (s *Store) save(ctx context.Context, collection string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode collection", "collection", collection, "error", err)
		return
	}
	if err := s.kv.Save(ctx, collection, data); err != nil {
		s.logger.Error("save collection", "collection", collection, "error", err)
	}
}
