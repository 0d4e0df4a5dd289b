package subscription

import "errors"

// Plan describes a subscription tier and its provider price mapping.
// OrganizationScoped plans are purchased by schools and seat-multiplied;
// all other plans bill a single individual account.
type Plan struct {
	Code        string
	Name        string
	Description string

	// OrganizationScoped routes purchases to the school owner instead of the
	// individual owner. This is an explicit flag rather than a naming
	// convention so unrelated plan codes can never be misrouted.
	OrganizationScoped bool

	// Public marks plans available for self-service checkout.
	Public bool

	// Prices maps billing periods to the provider's price ids.
	// A plan with no prices is free and never reaches the provider.
	Prices map[BillingPeriod]string
}

// Free reports whether the plan has no billable price.
func (p Plan) Free() bool {
	return len(p.Prices) == 0
}

// PriceID returns the provider price id for the given billing period.
func (p Plan) PriceID(period BillingPeriod) (string, bool) {
	id, ok := p.Prices[period]
	return id, ok
}

// Catalog holds the validated set of plans offered by the application.
type Catalog struct {
	plans map[string]Plan
	order []string
}

// NewCatalog validates the plan set and builds a catalog.
// Configuration errors fail construction so a misconfigured catalog can never
// serve checkout requests.
func NewCatalog(plans ...Plan) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, errors.Join(ErrInvalidPlanConfiguration, errors.New("catalog requires at least one plan"))
	}

	c := &Catalog{
		plans: make(map[string]Plan, len(plans)),
		order: make([]string, 0, len(plans)),
	}
	for _, p := range plans {
		if p.Code == "" {
			return nil, errors.Join(ErrInvalidPlanConfiguration, errors.New("plan code must not be empty"))
		}
		if _, exists := c.plans[p.Code]; exists {
			return nil, errors.Join(ErrInvalidPlanConfiguration, errors.New("duplicate plan code "+p.Code))
		}
		for period, priceID := range p.Prices {
			if !period.Valid() {
				return nil, errors.Join(ErrInvalidPlanConfiguration, errors.New("plan "+p.Code+" has invalid billing period "+string(period)))
			}
			if priceID == "" {
				return nil, errors.Join(ErrInvalidPlanConfiguration, errors.New("plan "+p.Code+" has empty price id"))
			}
		}
		c.plans[p.Code] = p
		c.order = append(c.order, p.Code)
	}
	return c, nil
}

// Plan looks up a plan by code.
func (c *Catalog) Plan(code string) (Plan, bool) {
	p, ok := c.plans[code]
	return p, ok
}

// PlanByPriceID resolves the plan and billing period a provider price id
// belongs to. Used when event metadata does not carry a plan code.
func (c *Catalog) PlanByPriceID(priceID string) (Plan, BillingPeriod, bool) {
	for _, code := range c.order {
		p := c.plans[code]
		for period, id := range p.Prices {
			if id == priceID {
				return p, period, true
			}
		}
	}
	return Plan{}, "", false
}

// Public returns the plans available for self-service checkout,
// in declaration order.
func (c *Catalog) Public() []Plan {
	out := make([]Plan, 0, len(c.order))
	for _, code := range c.order {
		if p := c.plans[code]; p.Public {
			out = append(out, p)
		}
	}
	return out
}

// FreePlanCode is the entitlement every owner falls back to when no active
// subscription exists.
const FreePlanCode = "free"

// DefaultPlans returns the ListLab plan set. Price ids must match the
// provider dashboard configuration.
func DefaultPlans() []Plan {
	return []Plan{
		{
			Code:        FreePlanCode,
			Name:        "Free",
			Description: "Up to 10 worksheets per month",
			Public:      true,
		},
		{
			Code:        "pro",
			Name:        "Pro",
			Description: "Unlimited worksheets and answer keys for one teacher",
			Public:      true,
			Prices: map[BillingPeriod]string{
				BillingPeriodMonthly: "price_pro_monthly",
				BillingPeriodYearly:  "price_pro_yearly",
			},
		},
		{
			Code:               "school",
			Name:               "School",
			Description:        "Seat-based license for a whole school",
			OrganizationScoped: true,
			Public:             true,
			Prices: map[BillingPeriod]string{
				BillingPeriodMonthly: "price_school_monthly",
				BillingPeriodYearly:  "price_school_yearly",
			},
		},
	}
}
