package subscription

import (
	"context"
	"time"

	"github.com/ferosa45/listlab-backend-sub000/pkg/logger"
)

// HandleWebhook verifies, decodes, and applies a provider event.
//
// It returns an error only when the payload cannot be authenticated or
// decoded, so the caller responds with a non-2xx status and the provider
// retries delivery. Every other failure mode is logged and acknowledged:
// retrying a delivery cannot fix a downstream fault, and the guarded upsert
// makes a later, fresher event converge the state regardless.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseEvent(payload, signature)
	if err != nil {
		return err
	}

	if event.Type == EventIgnored {
		s.log.DebugContext(ctx, "provider event ignored",
			logger.EventID(event.ID),
			logger.EventType(event.ProviderEvent),
		)
		return nil
	}

	sub := event.Subscription
	if sub == nil {
		sub, err = s.provider.Subscription(ctx, event.SubscriptionID)
		if err != nil {
			s.log.ErrorContext(ctx, "subscription fetch failed, event acknowledged",
				logger.EventID(event.ID),
				logger.EventType(event.ProviderEvent),
				logger.SubscriptionID(event.SubscriptionID),
				logger.Error(err),
			)
			return nil
		}
		// A re-fetched subscription reflects the provider's current state,
		// not the event's point in time.
		sub.ProviderUpdatedAt = time.Now().UTC()
	} else if sub.ProviderUpdatedAt.IsZero() {
		sub.ProviderUpdatedAt = time.Unix(event.OccurredAt, 0).UTC()
	}

	if err := s.applySubscription(ctx, event, sub); err != nil {
		s.log.ErrorContext(ctx, "event application failed, event acknowledged",
			logger.EventID(event.ID),
			logger.EventType(event.ProviderEvent),
			logger.SubscriptionID(sub.ProviderSubscriptionID),
			logger.OwnerKind(string(sub.Owner.Kind)),
			logger.OwnerID(sub.Owner.ID),
			logger.Error(err),
		)
	}
	return nil
}

func (s *Service) applySubscription(ctx context.Context, event *Event, sub *Subscription) error {
	stored, err := s.store.Get(ctx, sub.ProviderSubscriptionID)
	if err != nil && !IsNotFound(err) {
		return err
	}
	if stored != nil && !CanTransition(stored.Status, sub.Status) {
		// Out-of-order delivery can surface transitions the state machine
		// does not define. The freshness guard on the upsert decides which
		// record wins, so this is observability, not a rejection.
		s.log.WarnContext(ctx, "unexpected status transition",
			logger.EventID(event.ID),
			logger.SubscriptionID(sub.ProviderSubscriptionID),
			"from", string(stored.Status),
			"to", string(sub.Status),
		)
	}

	if err := s.store.Upsert(ctx, sub); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "subscription state applied",
		logger.EventID(event.ID),
		logger.EventType(event.ProviderEvent),
		logger.SubscriptionID(sub.ProviderSubscriptionID),
		logger.OwnerKind(string(sub.Owner.Kind)),
		logger.OwnerID(sub.Owner.ID),
		"status", string(sub.Status),
	)

	return s.propagateEntitlement(ctx, sub.Owner)
}

// propagateEntitlement recomputes the owner's entitlement from the latest
// stored state, pushes it to the sink, and invalidates the cache.
func (s *Service) propagateEntitlement(ctx context.Context, owner Owner) error {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, owner); err != nil {
			s.log.WarnContext(ctx, "entitlement cache invalidation failed",
				logger.OwnerKind(string(owner.Kind)),
				logger.OwnerID(owner.ID),
				logger.Error(err),
			)
		}
	}
	if s.sink == nil {
		return nil
	}

	latest, err := s.store.LatestActiveFor(ctx, owner)
	if err != nil && !IsNotFound(err) {
		return err
	}
	return s.sink.SetEntitlement(ctx, owner, entitlementFrom(latest))
}
