package prefs

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cjovignot/orderNow/internal/platform/httpx"
)

// Handler wires preference endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers preference routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Show)
	r.Patch("/", h.Update)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Get())
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch Patch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payload")
		return
	}
	prefs, err := h.service.Update(r.Context(), patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTheme):
			httpx.Problem(w, http.StatusBadRequest, "Invalid Theme", "theme must be light, dark or system")
		case errors.Is(err, ErrInvalidLanguage):
			httpx.Problem(w, http.StatusBadRequest, "Invalid Language", "language must be a valid tag")
		default:
			httpx.RespondError(w, err)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, prefs)
}
