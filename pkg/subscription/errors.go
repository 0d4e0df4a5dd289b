package subscription

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationFailed is returned when a webhook delivery carries an
	// invalid signature. The payload must not be processed.
	ErrAuthenticationFailed = errors.New("webhook signature verification failed")
	// ErrMalformedEvent is returned when a verified payload cannot be decoded.
	ErrMalformedEvent = errors.New("malformed webhook event payload")

	ErrPermissionDenied = errors.New("actor is not allowed to manage this billing owner")

	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrPlanNotBillable      = errors.New("plan has no billable price")
	ErrInvalidBillingPeriod = errors.New("invalid billing period")
	ErrInvalidQuantity      = errors.New("seat quantity must be at least 1")

	ErrCustomerLinkNotFound = errors.New("no billing customer linked to owner")
	ErrNoBillingAccount     = errors.New("owner has no billing account to manage")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNoActiveSubscription = errors.New("owner has no active subscription")
	ErrSeatBelowOccupancy   = errors.New("seat quantity is below current member count")

	// ErrProvider wraps transient failures of the external payment provider.
	// No local state is written before the provider confirms, so these are
	// always safe to retry.
	ErrProvider = errors.New("payment provider request failed")

	ErrInvalidPlanConfiguration = errors.New("invalid subscription plan configuration")
)

// SeatBelowOccupancyError reports a rejected seat reduction together with the
// live occupancy so the caller can resolve the conflict (remove members
// first). It matches ErrSeatBelowOccupancy under errors.Is.
type SeatBelowOccupancyError struct {
	Requested int64
	Occupancy int64
}

func (e *SeatBelowOccupancyError) Error() string {
	return fmt.Sprintf("requested %d seats but school has %d active members", e.Requested, e.Occupancy)
}

func (e *SeatBelowOccupancyError) Is(target error) bool {
	return target == ErrSeatBelowOccupancy
}
