package billing

import (
	"github.com/go-chi/chi/v5"
)

// Router mounts the billing endpoints.
//
// Example:
//
//	var cfg billing.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	svc := billing.NewService(cfg, provider, repo, catalog)
//	h := billing.NewHandler(svc, catalog, logger)
//
//	r := chi.NewRouter()
//	r.Mount("/billing", billing.Router(h))
//
// The webhook endpoint authenticates deliveries by signature; every other
// endpoint expects an upstream middleware to have placed the actor in the
// request context.
func Router(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/plans", h.listPlans)
	r.Get("/entitlement", h.getEntitlement)
	r.Post("/checkout", h.createCheckout)
	r.Post("/portal", h.createPortal)
	r.Put("/seats", h.updateSeats)
	r.Post("/webhook", h.handleWebhook)

	return r
}
