package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferosa45/listlab-backend-sub000/pkg/logger"
)

// CheckoutRequest describes a checkout initiated by an actor.
type CheckoutRequest struct {
	PlanCode string
	Period   BillingPeriod
	// Quantity is the requested seat count for organization-scoped plans.
	// Ignored for individual plans, which always bill a single seat.
	Quantity int64
	Profile  CustomerProfile
}

// CreateCheckoutSession validates the request, resolves the billing owner,
// ensures a provider customer exists, and returns the hosted checkout URL.
func (s *Service) CreateCheckoutSession(ctx context.Context, actor Actor, req CheckoutRequest) (string, error) {
	plan, ok := s.catalog.Plan(req.PlanCode)
	if !ok {
		return "", ErrPlanNotFound
	}
	if plan.Free() {
		return "", ErrPlanNotBillable
	}
	if !req.Period.Valid() {
		return "", ErrInvalidBillingPeriod
	}
	priceID, ok := plan.PriceID(req.Period)
	if !ok {
		return "", ErrInvalidBillingPeriod
	}

	owner, err := ResolveOwner(actor, plan)
	if err != nil {
		return "", err
	}

	quantity := int64(1)
	if plan.OrganizationScoped {
		if req.Quantity < 1 {
			return "", ErrInvalidQuantity
		}
		quantity = req.Quantity
	}

	customerID, err := s.EnsureCustomer(ctx, owner, req.Profile)
	if err != nil {
		return "", err
	}

	url, err := s.provider.CreateCheckoutSession(ctx, CheckoutSessionParams{
		CustomerID: customerID,
		PriceID:    priceID,
		Quantity:   quantity,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
		Metadata: map[string]string{
			MetaOwnerKind:     string(owner.Kind),
			MetaOwnerID:       owner.ID.String(),
			MetaPlanCode:      plan.Code,
			MetaBillingPeriod: string(req.Period),
		},
	})
	if err != nil {
		return "", errors.Join(ErrProvider, fmt.Errorf("create checkout session for %s: %w", owner, err))
	}

	s.log.InfoContext(ctx, "checkout session created",
		logger.UserID(actor.UserID),
		logger.OwnerKind(string(owner.Kind)),
		logger.OwnerID(owner.ID),
		logger.PlanCode(plan.Code),
		"billing_period", string(req.Period),
		logger.Quantity(quantity),
	)
	return url, nil
}

// CreatePortalSession creates a self-service billing portal session for the
// actor's billing owner. School administrators are routed to their school's
// billing account; everyone else to their individual one. Actors without any
// billing history get ErrNoBillingAccount.
func (s *Service) CreatePortalSession(ctx context.Context, actor Actor) (string, error) {
	owner := UserOwner(actor.UserID)
	if actor.IsSchoolAdmin() {
		owner = SchoolOwner(*actor.SchoolID)
	}

	customerID, err := s.store.CustomerID(ctx, owner)
	if err != nil {
		if errors.Is(err, ErrCustomerLinkNotFound) {
			return "", ErrNoBillingAccount
		}
		return "", err
	}

	url, err := s.provider.CreatePortalSession(ctx, customerID, s.portalReturnURL)
	if err != nil {
		return "", errors.Join(ErrProvider, fmt.Errorf("create portal session for %s: %w", owner, err))
	}
	return url, nil
}
