package orders

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cjovignot/orderNow/internal/domain"
	"github.com/cjovignot/orderNow/internal/export"
	"github.com/cjovignot/orderNow/internal/platform/httpx"
)

// SupplierSource resolves the supplier block for documents and mail.
type SupplierSource interface {
	Get(id string) (domain.Supplier, error)
}

// DocumentRenderer turns an order document into PDF bytes.
type DocumentRenderer interface {
	RenderOrder(ctx context.Context, doc export.OrderDocument) ([]byte, error)
}

// Handler wires order endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	suppliers SupplierSource
	renderer  DocumentRenderer
}

// NewHandler constructs a Handler instance. renderer may be nil when no
// conversion endpoint is configured; document requests then fail with a
// generic notice.
func NewHandler(logger *slog.Logger, service *Service, suppliers SupplierSource, renderer DocumentRenderer) *Handler {
	return &Handler{logger: logger, service: service, suppliers: suppliers, renderer: renderer}
}

// MountRoutes registers order routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Delete("/{id}", h.Delete)
	r.Put("/{id}/status", h.UpdateStatus)
	r.Put("/{id}/lines", h.UpdateLines)
	r.Patch("/{id}/lines/{productID}", h.EditLine)
	r.Get("/{id}/document", h.Document)
	r.Get("/{id}/message", h.Message)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.List())
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	order, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.respondOrderError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	order, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		h.respondOrderError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) UpdateLines(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Lines []LineInput `json:"products"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	order, err := h.service.UpdateLines(r.Context(), chi.URLParam(r, "id"), body.Lines)
	if err != nil {
		h.respondOrderError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// EditLine changes quantity and/or price of one line. Setting quantity to
// zero or below removes the line.
func (h *Handler) EditLine(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity *int     `json:"quantity,omitempty"`
		Price    *float64 `json:"price,omitempty"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	orderID := chi.URLParam(r, "id")
	productID := chi.URLParam(r, "productID")

	var (
		order domain.Order
		err   error
	)
	if body.Quantity != nil {
		order, err = h.service.SetLineQuantity(r.Context(), orderID, productID, *body.Quantity)
		if err != nil {
			h.respondOrderError(w, err)
			return
		}
	}
	if body.Price != nil {
		order, err = h.service.SetLinePrice(r.Context(), orderID, productID, *body.Price)
		if err != nil {
			h.respondOrderError(w, err)
			return
		}
	}
	if body.Quantity == nil && body.Price == nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "quantity or price required")
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// Document renders the order PDF through the configured converter.
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
		return
	}
	supplier, err := h.suppliers.Get(order.SupplierID)
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "supplier not found")
		return
	}
	if h.renderer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Document Generation Failed", "document rendering is not configured")
		return
	}

	doc := export.OrderDocument{Order: order, Supplier: supplier}
	for _, line := range h.service.Resolve(order) {
		doc.Lines = append(doc.Lines, export.DocumentLine{
			Name:     line.Product.Name,
			Barcode:  line.Product.Barcode,
			Quantity: line.Quantity,
			Price:    line.Price,
			Subtotal: line.Subtotal(),
		})
	}

	pdf, err := h.renderer.RenderOrder(r.Context(), doc)
	if err != nil {
		h.logger.Error("render order document", "error", err, "order", order.ID)
		httpx.Problem(w, http.StatusBadGateway, "Document Generation Failed", "could not generate the order document")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(order)+`"`)
	_, _ = w.Write(pdf)
}

// Message returns the pre-filled mail draft for the order.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
		return
	}
	supplier, err := h.suppliers.Get(order.SupplierID)
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "supplier not found")
		return
	}
	msg := export.ComposeOrderMessage(order, supplier)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
		"body":    msg.Body,
		"mailto":  msg.MailtoURI(),
	})
}

func (h *Handler) respondOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
	case errors.Is(err, ErrNotEditable):
		httpx.Problem(w, http.StatusConflict, "Not Editable", "only draft orders can be edited")
	case errors.Is(err, ErrSupplierRequired):
		httpx.Problem(w, http.StatusBadRequest, "Supplier Required", "please select a supplier and at least one product")
	case errors.Is(err, ErrEmptyOrder):
		httpx.Problem(w, http.StatusBadRequest, "Empty Order", "please select a supplier and at least one product")
	case errors.Is(err, ErrUnknownProduct):
		httpx.Problem(w, http.StatusNotFound, "Unknown Product", "scanned code matches no catalog product")
	case errors.Is(err, ErrInvalidStatus):
		httpx.Problem(w, http.StatusBadRequest, "Invalid Status", "status must be draft, sent or received")
	default:
		httpx.RespondError(w, err)
	}
}
