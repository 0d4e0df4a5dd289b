package billing

import (
	"github.com/ferosa45/listlab-backend-sub000/pkg/subscription"
)

// Store is the persistence surface the billing module needs: subscription
// state plus the entitlement mirror. *Repository satisfies it.
type Store interface {
	subscription.Store
	subscription.EntitlementSink
}

// NewService assembles a subscription service from module configuration.
// Checkout and portal URLs come from cfg, the store doubles as the
// entitlement sink, and entitlement reads go through an in-process cache.
// Extra options are applied last and may override any of these defaults.
func NewService(cfg Config, provider subscription.PaymentProvider, store Store, catalog *subscription.Catalog, opts ...subscription.Option) *subscription.Service {
	base := []subscription.Option{
		subscription.WithCheckoutURLs(cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL),
		subscription.WithEntitlementSink(store),
		subscription.WithEntitlementCache(subscription.NewMemoryEntitlementCache(cfg.EntitlementCacheTTL)),
	}
	if cfg.PortalReturnURL != "" {
		base = append(base, subscription.WithPortalReturnURL(cfg.PortalReturnURL))
	}
	return subscription.NewService(provider, store, catalog, append(base, opts...)...)
}
