package subscription

import (
	"fmt"

	"github.com/google/uuid"
)

// OwnerKind discriminates the two kinds of billing owners.
type OwnerKind string

const (
	// OwnerKindUser is an individual teacher account.
	OwnerKindUser OwnerKind = "user"
	// OwnerKindSchool is an organization account holding seat-based licenses.
	OwnerKindSchool OwnerKind = "school"
)

// Valid reports whether the kind is one of the known owner kinds.
func (k OwnerKind) Valid() bool {
	return k == OwnerKindUser || k == OwnerKindSchool
}

// Owner identifies the billing-relevant entity a subscription belongs to.
// Owners are resolved from caller identity, never created by this package.
type Owner struct {
	Kind OwnerKind
	ID   uuid.UUID
}

// UserOwner returns the individual owner for a user.
func UserOwner(userID uuid.UUID) Owner {
	return Owner{Kind: OwnerKindUser, ID: userID}
}

// SchoolOwner returns the organization owner for a school.
func SchoolOwner(schoolID uuid.UUID) Owner {
	return Owner{Kind: OwnerKindSchool, ID: schoolID}
}

// IsSchool reports whether the owner is an organization.
func (o Owner) IsSchool() bool {
	return o.Kind == OwnerKindSchool
}

// IsZero reports whether the owner is unset.
func (o Owner) IsZero() bool {
	return o.Kind == "" && o.ID == uuid.Nil
}

// String renders the owner as "kind:id" for logs and cache keys.
func (o Owner) String() string {
	return fmt.Sprintf("%s:%s", o.Kind, o.ID)
}

// BillingPeriod represents the billing frequency of a paid plan.
type BillingPeriod string

const (
	BillingPeriodMonthly BillingPeriod = "monthly"
	BillingPeriodYearly  BillingPeriod = "yearly"
)

// Valid reports whether the period is one of the known billing periods.
func (p BillingPeriod) Valid() bool {
	return p == BillingPeriodMonthly || p == BillingPeriodYearly
}

// Status represents the provider-assigned state of a subscription.
// The provider is authoritative; this package mirrors its closed set.
type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusTrialing   Status = "trialing"
	StatusActive     Status = "active"
	StatusPastDue    Status = "past_due"
	StatusCanceled   Status = "canceled"
	StatusUnpaid     Status = "unpaid"
)

// Valid reports whether the status belongs to the known closed set.
func (s Status) Valid() bool {
	switch s {
	case StatusIncomplete, StatusTrialing, StatusActive, StatusPastDue, StatusCanceled, StatusUnpaid:
		return true
	}
	return false
}

// Entitles reports whether the status grants access to the paid plan.
func (s Status) Entitles() bool {
	return s == StatusActive || s == StatusTrialing
}

// Terminal reports whether the status ends the subscription's lifecycle.
// A canceled subscription only returns to active through a brand-new
// provider subscription, never by reopening the canceled one.
func (s Status) Terminal() bool {
	return s == StatusCanceled
}

// CanTransition reports whether moving from one status to another matches the
// documented subscription lifecycle. The provider remains authoritative, so
// the store never rejects a verified event on this basis; callers use it to
// flag suspicious sequences for reconciliation.
func CanTransition(from, to Status) bool {
	if from == to {
		return true // redelivery of the same state
	}
	if to == StatusCanceled {
		return !from.Terminal()
	}
	switch from {
	case StatusIncomplete, StatusTrialing:
		return to == StatusActive || to == StatusPastDue
	case StatusActive:
		return to == StatusPastDue
	case StatusPastDue:
		return to == StatusActive || to == StatusUnpaid
	case StatusUnpaid:
		return to == StatusActive
	}
	return false
}
