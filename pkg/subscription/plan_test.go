package subscription_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferosa45/listlab-backend-sub000/pkg/subscription"
)

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("default plans are valid", func(t *testing.T) {
		t.Parallel()

		catalog, err := subscription.NewCatalog(subscription.DefaultPlans()...)
		require.NoError(t, err)

		free, ok := catalog.Plan(subscription.FreePlanCode)
		require.True(t, ok)
		assert.True(t, free.Free())

		school, ok := catalog.Plan("school")
		require.True(t, ok)
		assert.True(t, school.OrganizationScoped)
		assert.False(t, school.Free())
	})

	t.Run("rejects empty catalog", func(t *testing.T) {
		t.Parallel()

		_, err := subscription.NewCatalog()
		assert.ErrorIs(t, err, subscription.ErrInvalidPlanConfiguration)
	})

	t.Run("rejects duplicate codes", func(t *testing.T) {
		t.Parallel()

		_, err := subscription.NewCatalog(
			subscription.Plan{Code: "pro"},
			subscription.Plan{Code: "pro"},
		)
		assert.ErrorIs(t, err, subscription.ErrInvalidPlanConfiguration)
	})

	t.Run("rejects invalid billing period", func(t *testing.T) {
		t.Parallel()

		_, err := subscription.NewCatalog(subscription.Plan{
			Code:   "pro",
			Prices: map[subscription.BillingPeriod]string{"weekly": "price_x"},
		})
		assert.ErrorIs(t, err, subscription.ErrInvalidPlanConfiguration)
	})

	t.Run("rejects empty price id", func(t *testing.T) {
		t.Parallel()

		_, err := subscription.NewCatalog(subscription.Plan{
			Code:   "pro",
			Prices: map[subscription.BillingPeriod]string{subscription.BillingPeriodMonthly: ""},
		})
		assert.ErrorIs(t, err, subscription.ErrInvalidPlanConfiguration)
	})
}

func TestCatalogPlanByPriceID(t *testing.T) {
	t.Parallel()

	catalog, err := subscription.NewCatalog(subscription.DefaultPlans()...)
	require.NoError(t, err)

	plan, period, ok := catalog.PlanByPriceID("price_school_yearly")
	require.True(t, ok)
	assert.Equal(t, "school", plan.Code)
	assert.Equal(t, subscription.BillingPeriodYearly, period)

	_, _, ok = catalog.PlanByPriceID("price_unknown")
	assert.False(t, ok)
}

func TestCatalogPublic(t *testing.T) {
	t.Parallel()

	catalog, err := subscription.NewCatalog(
		subscription.Plan{Code: "free", Public: true},
		subscription.Plan{Code: "internal"},
		subscription.Plan{Code: "pro", Public: true, Prices: map[subscription.BillingPeriod]string{
			subscription.BillingPeriodMonthly: "price_pro_monthly",
		}},
	)
	require.NoError(t, err)

	public := catalog.Public()
	require.Len(t, public, 2)
	assert.Equal(t, "free", public[0].Code)
	assert.Equal(t, "pro", public[1].Code)
}

func TestPlanPriceID(t *testing.T) {
	t.Parallel()

	plan := subscription.Plan{
		Code: "pro",
		Prices: map[subscription.BillingPeriod]string{
			subscription.BillingPeriodMonthly: "price_pro_monthly",
		},
	}

	id, ok := plan.PriceID(subscription.BillingPeriodMonthly)
	require.True(t, ok)
	assert.Equal(t, "price_pro_monthly", id)

	_, ok = plan.PriceID(subscription.BillingPeriodYearly)
	assert.False(t, ok)
}
