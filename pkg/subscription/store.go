package subscription

import "context"

// SubscriptionStore persists provider subscription state keyed by the
// provider's subscription identifier.
//
// Upsert must be idempotent and order-insensitive: an implementation applies
// the write only when the incoming record's ProviderUpdatedAt is at or after
// the stored one, so replayed or out-of-order events never regress state.
type SubscriptionStore interface {
	Upsert(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, providerSubscriptionID string) (*Subscription, error)
	LatestActiveFor(ctx context.Context, owner Owner) (*Subscription, error)
}

// CustomerLinkStore maintains the one-to-one mapping between owners and
// provider customer identifiers.
type CustomerLinkStore interface {
	// CustomerID returns the provider customer id linked to the owner, or
	// ErrCustomerLinkNotFound when no link exists.
	CustomerID(ctx context.Context, owner Owner) (string, error)

	// EnsureCustomer returns the owner's provider customer id, invoking
	// create to provision one when no link exists yet. Implementations
	// serialize concurrent calls for the same owner so create runs at most
	// once per owner.
	EnsureCustomer(ctx context.Context, owner Owner, create func(ctx context.Context) (string, error)) (string, error)
}

// SeatUpdateFunc runs inside the seat update critical section. It receives
// the owner's latest active subscription and the current count of active
// members, and returns the seat limit to persist. Returning an error aborts
// the update without persisting anything.
type SeatUpdateFunc func(sub *Subscription, activeMembers int64) (int64, error)

// SeatStore applies seat limit changes atomically with respect to member
// admission. Implementations lock the owner's subscription row for the
// duration of fn so the occupancy check and the write cannot interleave with
// concurrent joins.
type SeatStore interface {
	// ApplySeatUpdate runs fn under the owner's subscription lock and
	// persists the returned seat limit. Returns ErrNoActiveSubscription when
	// the owner has no active subscription to update.
	ApplySeatUpdate(ctx context.Context, owner Owner, fn SeatUpdateFunc) error
}

// Store is the full persistence surface the billing service requires.
type Store interface {
	SubscriptionStore
	CustomerLinkStore
	SeatStore
}

// EntitlementSink receives entitlement changes derived from subscription
// state so the application can mirror them onto its own records. Sinks must
// tolerate repeated delivery of the same state.
type EntitlementSink interface {
	SetEntitlement(ctx context.Context, owner Owner, ent Entitlement) error
}
