package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeConfig holds the Stripe credentials.
type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY,required"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET,required"`
}

// StripeProvider implements PaymentProvider on the Stripe API.
type StripeProvider struct {
	client        *stripe.Client
	webhookSecret string
	catalog       *Catalog
}

// NewStripeProvider creates a Stripe-backed payment provider. Panics on
// missing credentials since the provider cannot issue a single request
// without them.
func NewStripeProvider(cfg StripeConfig, catalog *Catalog) *StripeProvider {
	if cfg.SecretKey == "" {
		panic("subscription: stripe secret key is required")
	}
	if cfg.WebhookSecret == "" {
		panic("subscription: stripe webhook secret is required")
	}
	if catalog == nil {
		panic("subscription: catalog is required")
	}
	return &StripeProvider{
		client:        stripe.NewClient(cfg.SecretKey, nil),
		webhookSecret: cfg.WebhookSecret,
		catalog:       catalog,
	}
}

func (p *StripeProvider) CreateCustomer(ctx context.Context, owner Owner, email, name string) (string, error) {
	params := &stripe.CustomerCreateParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			MetaOwnerKind: string(owner.Kind),
			MetaOwnerID:   owner.ID.String(),
		},
	}
	if name != "" {
		params.Name = stripe.String(name)
	}

	customer, err := p.client.V1Customers.Create(ctx, params)
	if err != nil {
		return "", fmt.Errorf("stripe customer create: %w", err)
	}
	return customer.ID, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, in CheckoutSessionParams) (string, error) {
	params := &stripe.CheckoutSessionCreateParams{
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(in.CustomerID),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Price:    stripe.String(in.PriceID),
				Quantity: stripe.Int64(in.Quantity),
			},
		},
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		Metadata:   in.Metadata,
		// Mirror the metadata onto the subscription itself so every
		// subsequent subscription event carries the owner identity.
		SubscriptionData: &stripe.CheckoutSessionCreateSubscriptionDataParams{
			Metadata: in.Metadata,
		},
	}

	session, err := p.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session create: %w", err)
	}
	return session.URL, nil
}

func (p *StripeProvider) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionCreateParams{
		Customer: stripe.String(customerID),
	}
	if returnURL != "" {
		params.ReturnURL = stripe.String(returnURL)
	}

	session, err := p.client.V1BillingPortalSessions.Create(ctx, params)
	if err != nil {
		return "", fmt.Errorf("stripe portal session create: %w", err)
	}
	return session.URL, nil
}

func (p *StripeProvider) Subscription(ctx context.Context, subscriptionID string) (*Subscription, error) {
	sub, err := p.client.V1Subscriptions.Retrieve(ctx, subscriptionID, &stripe.SubscriptionRetrieveParams{})
	if err != nil {
		return nil, fmt.Errorf("stripe subscription retrieve: %w", err)
	}
	return p.mapSubscription(sub)
}

func (p *StripeProvider) UpdateSeatQuantity(ctx context.Context, subscriptionID string, quantity int64) error {
	sub, err := p.client.V1Subscriptions.Retrieve(ctx, subscriptionID, &stripe.SubscriptionRetrieveParams{})
	if err != nil {
		return fmt.Errorf("stripe subscription retrieve: %w", err)
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return fmt.Errorf("stripe subscription %s has no items", subscriptionID)
	}

	_, err = p.client.V1SubscriptionItems.Update(ctx, sub.Items.Data[0].ID, &stripe.SubscriptionItemUpdateParams{
		Quantity:          stripe.Int64(quantity),
		ProrationBehavior: stripe.String("always_invoice"),
	})
	if err != nil {
		return fmt.Errorf("stripe subscription item update: %w", err)
	}
	return nil
}

// ParseEvent verifies the Stripe signature and maps the event into the small
// set of categories the processor acts on. Event types outside that set map
// to EventIgnored so the endpoint acknowledges them without side effects.
func (p *StripeProvider) ParseEvent(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrNotSigned),
			errors.Is(err, webhook.ErrInvalidHeader),
			errors.Is(err, webhook.ErrNoValidSignature),
			errors.Is(err, webhook.ErrTooOld):
			return nil, errors.Join(ErrAuthenticationFailed, err)
		default:
			return nil, errors.Join(ErrMalformedEvent, err)
		}
	}

	out := &Event{
		ID:            event.ID,
		ProviderEvent: string(event.Type),
		OccurredAt:    event.Created,
		Type:          EventIgnored,
	}

	switch event.Type {
	case "checkout.session.completed":
		var session struct {
			Mode         string `json:"mode"`
			Subscription string `json:"subscription"`
		}
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, errors.Join(ErrMalformedEvent, err)
		}
		if session.Mode != "subscription" || session.Subscription == "" {
			return out, nil
		}
		out.Type = EventCheckoutCompleted
		out.SubscriptionID = session.Subscription

	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		var stripeSub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
			return nil, errors.Join(ErrMalformedEvent, err)
		}
		sub, err := p.mapSubscription(&stripeSub)
		if err != nil {
			return nil, errors.Join(ErrMalformedEvent, err)
		}
		out.Type = EventSubscriptionUpdated
		if event.Type == "customer.subscription.deleted" {
			out.Type = EventSubscriptionDeleted
		}
		out.SubscriptionID = sub.ProviderSubscriptionID
		out.Subscription = sub

	case "invoice.payment_failed":
		subscriptionID, err := invoiceSubscriptionID(event.Data.Raw)
		if err != nil {
			return nil, errors.Join(ErrMalformedEvent, err)
		}
		if subscriptionID == "" {
			return out, nil
		}
		out.Type = EventPaymentFailed
		out.SubscriptionID = subscriptionID
	}

	return out, nil
}

// invoiceSubscriptionID extracts the subscription id from an invoice payload.
// Current API versions nest it under parent.subscription_details; older
// payloads carry a top-level subscription field.
func invoiceSubscriptionID(raw json.RawMessage) (string, error) {
	var invoice struct {
		Subscription string `json:"subscription"`
		Parent       *struct {
			SubscriptionDetails *struct {
				Subscription string `json:"subscription"`
			} `json:"subscription_details"`
		} `json:"parent"`
	}
	if err := json.Unmarshal(raw, &invoice); err != nil {
		return "", err
	}
	if invoice.Parent != nil && invoice.Parent.SubscriptionDetails != nil && invoice.Parent.SubscriptionDetails.Subscription != "" {
		return invoice.Parent.SubscriptionDetails.Subscription, nil
	}
	return invoice.Subscription, nil
}

func (p *StripeProvider) mapSubscription(sub *stripe.Subscription) (*Subscription, error) {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return nil, fmt.Errorf("subscription %s has no items", sub.ID)
	}
	item := sub.Items.Data[0]

	owner, err := ownerFromMetadata(sub.Metadata)
	if err != nil {
		return nil, fmt.Errorf("subscription %s: %w", sub.ID, err)
	}

	priceID := ""
	if item.Price != nil {
		priceID = item.Price.ID
	}

	planCode := sub.Metadata[MetaPlanCode]
	period := BillingPeriod(sub.Metadata[MetaBillingPeriod])
	plan, havePlan := p.catalog.Plan(planCode)
	if !havePlan || !period.Valid() {
		// Subscriptions created outside checkout (or before metadata was
		// introduced) resolve through the price mapping instead.
		byPrice, byPeriod, ok := p.catalog.PlanByPriceID(priceID)
		if !ok {
			return nil, fmt.Errorf("subscription %s references unknown price %q", sub.ID, priceID)
		}
		plan, period = byPrice, byPeriod
	}

	status, err := mapStripeStatus(sub.Status)
	if err != nil {
		return nil, fmt.Errorf("subscription %s: %w", sub.ID, err)
	}

	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}

	out := &Subscription{
		ProviderSubscriptionID: sub.ID,
		Owner:                  owner,
		PlanCode:               plan.Code,
		BillingPeriod:          period,
		ProviderCustomerID:     customerID,
		ProviderPriceID:        priceID,
		Status:                 status,
		CancelAtPeriodEnd:      sub.CancelAtPeriodEnd,
		CurrentPeriodStart:     time.Unix(item.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:       time.Unix(item.CurrentPeriodEnd, 0).UTC(),
	}
	if plan.OrganizationScoped {
		quantity := item.Quantity
		out.SeatLimit = &quantity
	}
	return out, nil
}

func ownerFromMetadata(metadata map[string]string) (Owner, error) {
	kind := OwnerKind(metadata[MetaOwnerKind])
	if !kind.Valid() {
		return Owner{}, fmt.Errorf("missing or invalid %s metadata", MetaOwnerKind)
	}
	id, err := uuid.Parse(metadata[MetaOwnerID])
	if err != nil {
		return Owner{}, fmt.Errorf("invalid %s metadata: %w", MetaOwnerID, err)
	}
	return Owner{Kind: kind, ID: id}, nil
}

func mapStripeStatus(s stripe.SubscriptionStatus) (Status, error) {
	switch s {
	case stripe.SubscriptionStatusIncomplete:
		return StatusIncomplete, nil
	case stripe.SubscriptionStatusTrialing:
		return StatusTrialing, nil
	case stripe.SubscriptionStatusActive:
		return StatusActive, nil
	case stripe.SubscriptionStatusPastDue:
		return StatusPastDue, nil
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
		return StatusCanceled, nil
	case stripe.SubscriptionStatusUnpaid:
		return StatusUnpaid, nil
	}
	return "", fmt.Errorf("unknown subscription status %q", s)
}
