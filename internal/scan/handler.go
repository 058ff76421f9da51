package scan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cjovignot/orderNow/internal/domain"
	"github.com/cjovignot/orderNow/internal/orders"
	"github.com/cjovignot/orderNow/internal/platform/httpx"
)

// CatalogPort is the catalog slice the scan endpoint needs.
type CatalogPort interface {
	FindByBarcode(code string) (domain.Product, bool)
}

// OrderPort merges scans into draft orders.
type OrderPort interface {
	MergeScan(ctx context.Context, orderID, code string, quantity int, price float64) (domain.Order, error)
}

// Handler receives scan events from the client-side decoder.
type Handler struct {
	logger   *slog.Logger
	catalog  CatalogPort
	orders   OrderPort
	debounce *Debouncer
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, catalog CatalogPort, orderSvc OrderPort) *Handler {
	return &Handler{
		logger:   logger,
		catalog:  catalog,
		orders:   orderSvc,
		debounce: NewDebouncer(0),
	}
}

// MountRoutes registers the scan routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Receive)
	r.Post("/hold", h.Hold)
	r.Post("/release", h.Release)
}

// Receive processes one scan event. Duplicate reads inside the debounce
// window, and any read while a confirmation is pending, are acknowledged
// but ignored.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unreadable payload")
		return
	}
	intent, err := ParseIntent(body)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	switch {
	case intent.Order != nil:
		if !h.debounce.Accept(intent.Order.Code) {
			httpx.JSON(w, http.StatusOK, map[string]any{"status": "suppressed"})
			return
		}
		order, err := h.orders.MergeScan(r.Context(), intent.Order.OrderID, intent.Order.Code, intent.Order.Quantity, intent.Order.Price)
		if err != nil {
			if errors.Is(err, orders.ErrUnknownProduct) {
				httpx.JSON(w, http.StatusOK, map[string]any{
					"status":  "completion_required",
					"barcode": intent.Order.Code,
				})
				return
			}
			h.respondOrderError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"status": "merged", "order": order})

	case intent.Catalog != nil:
		if !h.debounce.Accept(intent.Catalog.Code) {
			httpx.JSON(w, http.StatusOK, map[string]any{"status": "suppressed"})
			return
		}
		if product, ok := h.catalog.FindByBarcode(intent.Catalog.Code); ok {
			httpx.JSON(w, http.StatusOK, map[string]any{"status": "found", "product": product})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{
			"status":  "completion_required",
			"barcode": intent.Catalog.Code,
		})
	}
}

// Hold pauses scan acceptance while a confirmation dialog is open.
func (h *Handler) Hold(w http.ResponseWriter, r *http.Request) {
	h.debounce.Hold()
	w.WriteHeader(http.StatusNoContent)
}

// Release resumes scan acceptance after the dialog closes.
func (h *Handler) Release(w http.ResponseWriter, r *http.Request) {
	h.debounce.Release()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orders.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
	case errors.Is(err, orders.ErrNotEditable):
		httpx.Problem(w, http.StatusConflict, "Not Editable", "only draft orders can be edited")
	default:
		httpx.RespondError(w, err)
	}
}
