package subscription

import (
	"log/slog"
)

// Service coordinates the billing provider, the persistence layer, and the
// plan catalog. It is the single entry point for checkout, portal, seat, and
// webhook operations.
type Service struct {
	provider PaymentProvider
	store    Store
	catalog  *Catalog
	log      *slog.Logger

	sink  EntitlementSink
	cache EntitlementCache

	successURL      string
	cancelURL       string
	portalReturnURL string
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithEntitlementSink registers a sink that mirrors entitlement changes onto
// application records after webhook processing.
func WithEntitlementSink(sink EntitlementSink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithEntitlementCache enables entitlement caching. The cache is consulted on
// reads and invalidated whenever webhook processing changes an owner's state.
func WithEntitlementCache(cache EntitlementCache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithCheckoutURLs sets the redirect targets for completed and abandoned
// checkout sessions.
func WithCheckoutURLs(successURL, cancelURL string) Option {
	return func(s *Service) {
		s.successURL = successURL
		s.cancelURL = cancelURL
	}
}

// WithPortalReturnURL sets where the billing portal sends customers back to.
func WithPortalReturnURL(url string) Option {
	return func(s *Service) { s.portalReturnURL = url }
}

// NewService creates a billing service. Panics when provider, store, or
// catalog is nil since the service cannot operate without them.
func NewService(provider PaymentProvider, store Store, catalog *Catalog, opts ...Option) *Service {
	if provider == nil {
		panic("subscription: provider is required")
	}
	if store == nil {
		panic("subscription: store is required")
	}
	if catalog == nil {
		panic("subscription: catalog is required")
	}

	s := &Service{
		provider: provider,
		store:    store,
		catalog:  catalog,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
