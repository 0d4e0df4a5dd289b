// Package subscription keeps application billing state synchronized with an
// external payment provider.
//
// The provider is the source of truth for subscription lifecycle state. This
// package initiates checkout and portal sessions, consumes the provider's
// webhook events, and mirrors the resulting state into local storage so the
// rest of the application can answer entitlement questions without calling
// the provider.
//
// Billing state attaches to an Owner, which is either an individual user or
// a school. School subscriptions are seat-based; seat changes go through the
// service so the licensed quantity can never drop below the number of active
// members.
//
// Webhook processing is idempotent and order-insensitive. Each applied event
// carries a provider-side freshness signal, and the store only accepts
// writes that are at least as fresh as what it already holds, so replayed or
// reordered deliveries converge on the provider's latest state.
//
// Usage:
//
//	catalog, err := subscription.NewCatalog(subscription.DefaultPlans()...)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	provider := subscription.NewStripeProvider(stripeCfg, catalog)
//	svc := subscription.NewService(provider, store, catalog,
//		subscription.WithLogger(logger),
//		subscription.WithCheckoutURLs(successURL, cancelURL),
//		subscription.WithPortalReturnURL(accountURL),
//	)
package subscription
