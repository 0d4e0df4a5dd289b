package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferosa45/listlab-backend-sub000/modules/billing"
	"github.com/ferosa45/listlab-backend-sub000/pkg/subscription"
)

// stubStore is a minimal billing.Store for wiring tests. It links every
// owner to a fixed customer id and persists nothing.
type stubStore struct {
	customerID string
}

func (s *stubStore) Upsert(context.Context, *subscription.Subscription) error { return nil }

func (s *stubStore) Get(context.Context, string) (*subscription.Subscription, error) {
	return nil, subscription.ErrSubscriptionNotFound
}

func (s *stubStore) LatestActiveFor(context.Context, subscription.Owner) (*subscription.Subscription, error) {
	return nil, subscription.ErrNoActiveSubscription
}

func (s *stubStore) CustomerID(context.Context, subscription.Owner) (string, error) {
	if s.customerID == "" {
		return "", subscription.ErrCustomerLinkNotFound
	}
	return s.customerID, nil
}

func (s *stubStore) EnsureCustomer(ctx context.Context, _ subscription.Owner, create func(ctx context.Context) (string, error)) (string, error) {
	if s.customerID != "" {
		return s.customerID, nil
	}
	return create(ctx)
}

func (s *stubStore) ApplySeatUpdate(context.Context, subscription.Owner, subscription.SeatUpdateFunc) error {
	return subscription.ErrNoActiveSubscription
}

func (s *stubStore) SetEntitlement(context.Context, subscription.Owner, subscription.Entitlement) error {
	return nil
}

// capturingProvider records the parameters of the last session calls.
type capturingProvider struct {
	checkout        subscription.CheckoutSessionParams
	portalReturnURL string
}

func (p *capturingProvider) CreateCustomer(context.Context, subscription.Owner, string, string) (string, error) {
	return "cus_stub", nil
}

func (p *capturingProvider) CreateCheckoutSession(_ context.Context, params subscription.CheckoutSessionParams) (string, error) {
	p.checkout = params
	return "https://pay.example.com/session", nil
}

func (p *capturingProvider) CreatePortalSession(_ context.Context, _ string, returnURL string) (string, error) {
	p.portalReturnURL = returnURL
	return "https://pay.example.com/portal", nil
}

func (p *capturingProvider) Subscription(context.Context, string) (*subscription.Subscription, error) {
	return nil, subscription.ErrSubscriptionNotFound
}

func (p *capturingProvider) UpdateSeatQuantity(context.Context, string, int64) error { return nil }

func (p *capturingProvider) ParseEvent([]byte, string) (*subscription.Event, error) {
	return nil, subscription.ErrMalformedEvent
}

func TestNewServiceAppliesConfig(t *testing.T) {
	t.Parallel()

	cfg := billing.Config{
		CheckoutSuccessURL:  "https://app.example.com/billing/success",
		CheckoutCancelURL:   "https://app.example.com/billing/cancel",
		PortalReturnURL:     "https://app.example.com/settings",
		EntitlementCacheTTL: time.Minute,
	}
	actor := subscription.Actor{UserID: uuid.New()}
	catalog, err := subscription.NewCatalog(subscription.DefaultPlans()...)
	require.NoError(t, err)

	t.Run("checkout session gets configured urls", func(t *testing.T) {
		t.Parallel()

		provider := &capturingProvider{}
		svc := billing.NewService(cfg, provider, &stubStore{customerID: "cus_123"}, catalog)

		url, err := svc.CreateCheckoutSession(context.Background(), actor, subscription.CheckoutRequest{
			PlanCode: "pro",
			Period:   subscription.BillingPeriodMonthly,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/session", url)
		assert.Equal(t, cfg.CheckoutSuccessURL, provider.checkout.SuccessURL)
		assert.Equal(t, cfg.CheckoutCancelURL, provider.checkout.CancelURL)
	})

	t.Run("portal session gets configured return url", func(t *testing.T) {
		t.Parallel()

		provider := &capturingProvider{}
		svc := billing.NewService(cfg, provider, &stubStore{customerID: "cus_123"}, catalog)

		url, err := svc.CreatePortalSession(context.Background(), actor)
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/portal", url)
		assert.Equal(t, cfg.PortalReturnURL, provider.portalReturnURL)
	})

	t.Run("extra options override defaults", func(t *testing.T) {
		t.Parallel()

		provider := &capturingProvider{}
		svc := billing.NewService(cfg, provider, &stubStore{customerID: "cus_123"}, catalog,
			subscription.WithCheckoutURLs("https://other.example.com/ok", "https://other.example.com/no"),
		)

		_, err := svc.CreateCheckoutSession(context.Background(), actor, subscription.CheckoutRequest{
			PlanCode: "pro",
			Period:   subscription.BillingPeriodMonthly,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://other.example.com/ok", provider.checkout.SuccessURL)
		assert.Equal(t, "https://other.example.com/no", provider.checkout.CancelURL)
	})
}
