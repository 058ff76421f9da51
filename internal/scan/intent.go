// Package scan integrates the external barcode-decoding capability:
// intent decoding, duplicate suppression, and the camera feed lifecycle.
package scan

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Scan modes. The payload shape differs per mode, so the variant is
// resolved once here instead of branching on a mode flag downstream.
const (
	ModeOrder   = "order"
	ModeCatalog = "catalog"
)

// ErrUnknownMode reports a scan envelope with an unsupported mode.
var ErrUnknownMode = errors.New("scan: unknown mode")

// Intent is the tagged variant produced from one scan event: exactly one
// of Order or Catalog is set.
type Intent struct {
	Order   *OrderScan
	Catalog *CatalogScan
}

// OrderScan targets an in-progress order: merge the code into its lines.
type OrderScan struct {
	OrderID  string  `json:"orderId"`
	Code     string  `json:"code"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CatalogScan looks a code up in the catalog, prompting the completion
// form when nothing matches.
type CatalogScan struct {
	Code string `json:"code"`
}

type envelope struct {
	Mode     string  `json:"mode"`
	OrderID  string  `json:"orderId"`
	Code     string  `json:"code"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ParseIntent decodes a scan envelope into its variant.
func ParseIntent(data []byte) (Intent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Intent{}, fmt.Errorf("scan: decode envelope: %w", err)
	}
	if env.Code == "" {
		return Intent{}, errors.New("scan: code required")
	}
	switch env.Mode {
	case ModeOrder:
		if env.OrderID == "" {
			return Intent{}, errors.New("scan: orderId required in order mode")
		}
		return Intent{Order: &OrderScan{OrderID: env.OrderID, Code: env.Code, Quantity: env.Quantity, Price: env.Price}}, nil
	case ModeCatalog:
		return Intent{Catalog: &CatalogScan{Code: env.Code}}, nil
	default:
		return Intent{}, fmt.Errorf("%w: %q", ErrUnknownMode, env.Mode)
	}
}
