package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferosa45/listlab-backend-sub000/pkg/logger"
)

// CustomerProfile carries the contact details used when provisioning a new
// billing customer with the provider.
type CustomerProfile struct {
	Email string
	Name  string
}

// EnsureCustomer returns the owner's provider customer id, creating the
// customer with the provider on first use. Concurrent calls for the same
// owner are serialized by the store so at most one provider customer is ever
// created per owner.
func (s *Service) EnsureCustomer(ctx context.Context, owner Owner, profile CustomerProfile) (string, error) {
	if owner.IsZero() {
		return "", errors.New("subscription: owner is required")
	}

	customerID, err := s.store.EnsureCustomer(ctx, owner, func(ctx context.Context) (string, error) {
		id, err := s.provider.CreateCustomer(ctx, owner, profile.Email, profile.Name)
		if err != nil {
			return "", errors.Join(ErrProvider, fmt.Errorf("create customer for %s: %w", owner, err))
		}
		s.log.InfoContext(ctx, "billing customer created",
			logger.OwnerKind(string(owner.Kind)),
			logger.OwnerID(owner.ID),
			logger.CustomerID(id),
		)
		return id, nil
	})
	if err != nil {
		return "", err
	}
	return customerID, nil
}
