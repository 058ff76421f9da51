package backup

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cjovignot/orderNow/internal/platform/httpx"
)

// Handler wires backup and integrity endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers backup routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/export", h.Export)
	r.Post("/import", h.Import)
	r.Post("/clear", h.Clear)
}

// Export downloads the full dataset as one JSON document.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportJSON(r.Context())
	if err != nil {
		h.logger.Error("export data", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed", "could not export data")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="ordernow-export.json"`)
	_, _ = w.Write(data)
}

// Import restores a previously exported document. A bad document asks the
// user to retry and changes nothing.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 16<<20))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unreadable payload")
		return
	}
	if err := h.service.Import(r.Context(), data); err != nil {
		if errors.Is(err, ErrImportFailed) {
			httpx.Problem(w, http.StatusBadRequest, "Import Failed", "import failed, please check the file and retry")
			return
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": "imported"})
}

// Clear wipes all collections.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.service.Clear(r.Context())
	h.logger.Info("data cleared")
	w.WriteHeader(http.StatusNoContent)
}

// Integrity reports orphaned references; mounted at /api/integrity.
func (h *Handler) Integrity(w http.ResponseWriter, r *http.Request) {
	report := h.service.Integrity(r.Context())
	httpx.JSON(w, http.StatusOK, map[string]any{
		"clean":  report.Clean(),
		"report": report,
	})
}
