// Package billing wires the subscription service to PostgreSQL and exposes
// it over HTTP.
//
// It provides the pgx-backed repository (subscription store, customer links,
// seat updates, entitlement mirror, and the invoice counter), the chi router
// with the checkout, portal, seat, plan, entitlement, and webhook endpoints,
// and the goose migrations for the billing schema.
package billing
