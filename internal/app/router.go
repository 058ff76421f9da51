package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cjovignot/orderNow/internal/backup"
	"github.com/cjovignot/orderNow/internal/catalog"
	"github.com/cjovignot/orderNow/internal/orders"
	"github.com/cjovignot/orderNow/internal/prefs"
	"github.com/cjovignot/orderNow/internal/scan"
	"github.com/cjovignot/orderNow/internal/suppliers"
	"github.com/cjovignot/orderNow/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	SuppliersHandler *suppliers.Handler
	CatalogHandler   *catalog.Handler
	OrdersHandler    *orders.Handler
	PrefsHandler     *prefs.Handler
	ScanHandler      *scan.Handler
	BackupHandler    *backup.Handler
	JobsHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/suppliers", params.SuppliersHandler.MountRoutes)
		api.Route("/products", params.CatalogHandler.MountRoutes)
		api.Route("/orders", params.OrdersHandler.MountRoutes)
		api.Route("/preferences", params.PrefsHandler.MountRoutes)
		if params.ScanHandler != nil {
			api.Route("/scan", params.ScanHandler.MountRoutes)
		}
		api.Route("/backup", params.BackupHandler.MountRoutes)
		api.Get("/integrity", params.BackupHandler.Integrity)
		if params.JobsHandler != nil {
			api.Route("/jobs", params.JobsHandler.MountRoutes)
		}
	})

	return r
}
