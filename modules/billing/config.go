package billing

import "time"

// Config holds the billing module settings loaded from the environment.
type Config struct {
	CheckoutSuccessURL  string        `env:"BILLING_CHECKOUT_SUCCESS_URL,required"`
	CheckoutCancelURL   string        `env:"BILLING_CHECKOUT_CANCEL_URL,required"`
	PortalReturnURL     string        `env:"BILLING_PORTAL_RETURN_URL"`
	EntitlementCacheTTL time.Duration `env:"BILLING_ENTITLEMENT_CACHE_TTL" envDefault:"5m"`
}
