package subscription

import "time"

// Subscription is the authoritative local record of a provider subscription,
// keyed by the provider's subscription id. Multiple historical rows may exist
// per owner after cancel and resubscribe; only the most recently active one
// governs entitlement. Rows are never hard-deleted, cancellation is a status
// transition.
type Subscription struct {
	ProviderSubscriptionID string
	Owner                  Owner
	PlanCode               string
	BillingPeriod          BillingPeriod
	ProviderCustomerID     string
	ProviderPriceID        string
	Status                 Status
	CancelAtPeriodEnd      bool
	CurrentPeriodStart     time.Time
	CurrentPeriodEnd       time.Time

	// SeatLimit is the purchased seat count; set only for school owners.
	SeatLimit *int64

	// ProviderUpdatedAt is the freshness signal taken from the provider event
	// (or fetch time for re-fetched detail). The store discards snapshots that
	// are strictly older than what it already holds, since provider delivery
	// order is not guaranteed.
	ProviderUpdatedAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entitles reports whether this subscription currently grants its plan.
func (s *Subscription) Entitles() bool {
	return s.Status.Entitles()
}

// IsCanceled reports whether the subscription reached its terminal state.
func (s *Subscription) IsCanceled() bool {
	return s.Status.Terminal()
}

// Seats returns the seat limit, or 0 when none is set.
func (s *Subscription) Seats() int64 {
	if s.SeatLimit == nil {
		return 0
	}
	return *s.SeatLimit
}
