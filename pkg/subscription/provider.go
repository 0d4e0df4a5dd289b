package subscription

import "context"

// Metadata keys attached to checkout sessions (and propagated onto the
// resulting subscription) so webhook events can be traced back to an owner
// without additional lookups.
const (
	MetaOwnerKind     = "owner_kind"
	MetaOwnerID       = "owner_id"
	MetaPlanCode      = "plan_code"
	MetaBillingPeriod = "billing_period"
)

// EventType classifies provider events into the categories the processor
// acts on. Everything else maps to EventIgnored.
type EventType string

const (
	EventCheckoutCompleted   EventType = "checkout_completed"
	EventSubscriptionUpdated EventType = "subscription_updated"
	EventSubscriptionDeleted EventType = "subscription_deleted"
	EventPaymentFailed       EventType = "payment_failed"
	EventIgnored             EventType = "ignored"
)

// Event is a verified, decoded provider event.
//
// SubscriptionID is set for every non-ignored event. Subscription is set when
// the event payload carried the full subscription object; when nil the
// processor re-fetches the subscription from the provider.
type Event struct {
	ID             string
	Type           EventType
	ProviderEvent  string
	OccurredAt     int64
	SubscriptionID string
	Subscription   *Subscription
}

// CheckoutSessionParams describes a checkout session to create.
type CheckoutSessionParams struct {
	CustomerID string
	PriceID    string
	Quantity   int64
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// PaymentProvider abstracts the external billing provider. The concrete
// implementation is StripeProvider; tests substitute a mock.
type PaymentProvider interface {
	// CreateCustomer provisions a billing customer for the owner and returns
	// the provider's customer id.
	CreateCustomer(ctx context.Context, owner Owner, email, name string) (string, error)

	// CreateCheckoutSession creates a hosted checkout session and returns
	// its URL.
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (string, error)

	// CreatePortalSession creates a self-service billing portal session for
	// the customer and returns its URL.
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)

	// Subscription fetches the current state of a subscription from the
	// provider.
	Subscription(ctx context.Context, subscriptionID string) (*Subscription, error)

	// UpdateSeatQuantity sets the licensed quantity on the subscription's
	// single item, invoicing the proration immediately.
	UpdateSeatQuantity(ctx context.Context, subscriptionID string, quantity int64) error

	// ParseEvent verifies the payload signature and decodes the event.
	// Returns ErrAuthenticationFailed for signature failures and
	// ErrMalformedEvent for payloads that verify but cannot be decoded.
	ParseEvent(payload []byte, signature string) (*Event, error)
}
