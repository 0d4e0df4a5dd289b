package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/ferosa45/listlab-backend-sub000/pkg/logger"
)

// Entitlement is the answer to "what does this owner have access to right
// now". It is derived from the owner's latest subscription state and the
// plan catalog.
type Entitlement struct {
	PlanCode  string
	Status    Status
	Active    bool
	SeatLimit *int64
	PeriodEnd time.Time
}

// FreeEntitlement is what owners without any subscription history get.
func FreeEntitlement() Entitlement {
	return Entitlement{PlanCode: FreePlanCode, Active: true}
}

func entitlementFrom(sub *Subscription) Entitlement {
	if sub == nil || !sub.Entitles() {
		return FreeEntitlement()
	}
	return Entitlement{
		PlanCode:  sub.PlanCode,
		Status:    sub.Status,
		Active:    true,
		SeatLimit: sub.SeatLimit,
		PeriodEnd: sub.CurrentPeriodEnd,
	}
}

// Entitlement resolves the owner's current entitlement, consulting the cache
// first when one is configured. Owners with no subscription, or whose latest
// subscription no longer entitles, resolve to the free plan.
func (s *Service) Entitlement(ctx context.Context, owner Owner) (Entitlement, error) {
	if s.cache != nil {
		if ent, ok, err := s.cache.Get(ctx, owner); err == nil && ok {
			return ent, nil
		}
	}

	sub, err := s.store.LatestActiveFor(ctx, owner)
	if err != nil && !IsNotFound(err) {
		return Entitlement{}, err
	}
	ent := entitlementFrom(sub)

	if s.cache != nil {
		if err := s.cache.Set(ctx, owner, ent); err != nil {
			s.log.WarnContext(ctx, "entitlement cache set failed", logger.Error(err))
		}
	}
	return ent, nil
}

// IsNotFound reports whether err signals a missing subscription record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSubscriptionNotFound) || errors.Is(err, ErrNoActiveSubscription)
}
