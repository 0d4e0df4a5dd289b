package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferosa45/listlab-backend-sub000/pkg/logger"
)

// UpdateSeatLimit changes the licensed seat count on a school's subscription.
//
// The occupancy check, the provider quantity update, and the persisted limit
// all happen while the subscription row is locked, so a member admitted
// concurrently can never leave the school over its limit. Lowering the limit
// below current occupancy fails with a SeatBelowOccupancyError carrying the
// occupancy so callers can tell administrators how many seats are in use.
func (s *Service) UpdateSeatLimit(ctx context.Context, actor Actor, newLimit int64) error {
	if !actor.IsSchoolAdmin() {
		return ErrPermissionDenied
	}
	if newLimit < 1 {
		return ErrInvalidQuantity
	}
	owner := SchoolOwner(*actor.SchoolID)

	var subscriptionID string
	err := s.store.ApplySeatUpdate(ctx, owner, func(sub *Subscription, activeMembers int64) (int64, error) {
		subscriptionID = sub.ProviderSubscriptionID
		if newLimit < activeMembers {
			return 0, &SeatBelowOccupancyError{Requested: newLimit, Occupancy: activeMembers}
		}
		if sub.Seats() == newLimit {
			return newLimit, nil
		}
		if err := s.provider.UpdateSeatQuantity(ctx, sub.ProviderSubscriptionID, newLimit); err != nil {
			return 0, errors.Join(ErrProvider, fmt.Errorf("update seat quantity for %s: %w", owner, err))
		}
		return newLimit, nil
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		if cerr := s.cache.Invalidate(ctx, owner); cerr != nil {
			s.log.WarnContext(ctx, "entitlement cache invalidation failed",
				logger.SchoolID(owner.ID),
				logger.Error(cerr),
			)
		}
	}

	s.log.InfoContext(ctx, "seat limit updated",
		logger.SchoolID(owner.ID),
		logger.SubscriptionID(subscriptionID),
		"seat_limit", newLimit,
	)
	return nil
}
