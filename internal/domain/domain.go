package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order lifecycle statuses.
type OrderStatus string

const (
	OrderStatusDraft    OrderStatus = "draft"
	OrderStatusSent     OrderStatus = "sent"
	OrderStatusReceived OrderStatus = "received"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusDraft, OrderStatusSent, OrderStatusReceived:
		return true
	}
	return false
}

// Theme selector values.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ValidTheme reports whether t is one of the known themes.
func ValidTheme(t Theme) bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Supplier is a vendor the user orders from. ID is immutable once created.
type Supplier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	TaxID     string    `json:"taxId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product is a catalog entry owned by a supplier. Price is nil when the
// user left it blank; it is never stored as zero.
type Product struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Barcode    string    `json:"barcode"`
	SupplierID string    `json:"supplierId"`
	Quantity   int       `json:"quantity"`
	Price      *float64  `json:"price,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// OrderLine is one (product, quantity, price) tuple inside an order. The
// price is captured at order time and is not refreshed when the catalog
// price changes later.
type OrderLine struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a purchase order addressed to one supplier.
type Order struct {
	ID         string      `json:"id"`
	SupplierID string      `json:"supplierId"`
	Lines      []OrderLine `json:"products"`
	Total      float64     `json:"total"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// ShortID returns the first eight characters of the order ID, used on
// documents and mail subjects.
func (o Order) ShortID() string {
	if len(o.ID) <= 8 {
		return o.ID
	}
	return o.ID[:8]
}

// Preferences is the process-wide user preference record.
type Preferences struct {
	Theme         Theme  `json:"theme"`
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
}

// DefaultPreferences returns the preferences used when none are stored.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeSystem, Language: "fr", Notifications: true}
}

// NewID mints a record identifier.
func NewID() string {
	return uuid.NewString()
}

// FieldErrors maps form field names to a single failure message each. It is
// returned by service create/update paths so callers can surface failures
// per field instead of as one aggregate error.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	for field, msg := range e {
		return field + ": " + msg
	}
	return "validation failed"
}
