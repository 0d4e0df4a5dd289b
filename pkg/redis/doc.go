// Package redis provides Redis bootstrap utilities: a retrying connection
// constructor driven by an env-tagged Config and a health-check closure.
//
// The billing module uses Redis for the entitlement projection cache; the
// cache degrades to in-memory storage when no client is supplied, so Redis is
// an optional dependency of the core.
package redis
