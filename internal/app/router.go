package app

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/decora-erp/decora-erp/internal/catalog"
	"github.com/decora-erp/decora-erp/internal/masterdata/contacts"
	"github.com/decora-erp/decora-erp/internal/masterdata/stores"
	"github.com/decora-erp/decora-erp/internal/observability"
	"github.com/decora-erp/decora-erp/internal/pricing"
	"github.com/decora-erp/decora-erp/internal/quotes"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	Metrics         *observability.Metrics
	StoresHandler   *stores.Handler
	ContactsHandler *contacts.Handler
	CatalogHandler  *catalog.Handler
	PricingHandler  *pricing.Handler
	QuotesHandler   *quotes.Handler
}

// NewRouter constructs the chi.Router with Decora defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Handle("/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if params.StoresHandler != nil {
			params.StoresHandler.MountRoutes(r)
		}
		if params.ContactsHandler != nil {
			params.ContactsHandler.MountRoutes(r)
		}
		if params.CatalogHandler != nil {
			params.CatalogHandler.MountRoutes(r)
		}
		if params.PricingHandler != nil {
			params.PricingHandler.MountRoutes(r)
		}
		if params.QuotesHandler != nil {
			params.QuotesHandler.MountRoutes(r)
		}
	})

	return r
}
