package subscription_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ferosa45/listlab-backend-sub000/pkg/subscription"
)

func TestOwner(t *testing.T) {
	t.Parallel()

	t.Run("user owner", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		owner := subscription.UserOwner(id)
		assert.Equal(t, subscription.OwnerKindUser, owner.Kind)
		assert.False(t, owner.IsSchool())
		assert.False(t, owner.IsZero())
		assert.Equal(t, "user:"+id.String(), owner.String())
	})

	t.Run("school owner", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		owner := subscription.SchoolOwner(id)
		assert.Equal(t, subscription.OwnerKindSchool, owner.Kind)
		assert.True(t, owner.IsSchool())
	})

	t.Run("zero owner", func(t *testing.T) {
		t.Parallel()

		assert.True(t, subscription.Owner{}.IsZero())
	})
}

func TestOwnerKindValid(t *testing.T) {
	t.Parallel()

	assert.True(t, subscription.OwnerKindUser.Valid())
	assert.True(t, subscription.OwnerKindSchool.Valid())
	assert.False(t, subscription.OwnerKind("team").Valid())
	assert.False(t, subscription.OwnerKind("").Valid())
}

func TestStatus(t *testing.T) {
	t.Parallel()

	t.Run("entitling statuses", func(t *testing.T) {
		t.Parallel()

		assert.True(t, subscription.StatusActive.Entitles())
		assert.True(t, subscription.StatusTrialing.Entitles())
		assert.False(t, subscription.StatusIncomplete.Entitles())
		assert.False(t, subscription.StatusPastDue.Entitles())
		assert.False(t, subscription.StatusCanceled.Entitles())
		assert.False(t, subscription.StatusUnpaid.Entitles())
	})

	t.Run("terminal status", func(t *testing.T) {
		t.Parallel()

		assert.True(t, subscription.StatusCanceled.Terminal())
		assert.False(t, subscription.StatusUnpaid.Terminal())
	})

	t.Run("closed set", func(t *testing.T) {
		t.Parallel()

		assert.True(t, subscription.StatusActive.Valid())
		assert.False(t, subscription.Status("paused").Valid())
	})
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to subscription.Status
		want     bool
	}{
		{subscription.StatusIncomplete, subscription.StatusActive, true},
		{subscription.StatusIncomplete, subscription.StatusPastDue, true},
		{subscription.StatusTrialing, subscription.StatusActive, true},
		{subscription.StatusActive, subscription.StatusPastDue, true},
		{subscription.StatusPastDue, subscription.StatusActive, true},
		{subscription.StatusPastDue, subscription.StatusUnpaid, true},
		{subscription.StatusUnpaid, subscription.StatusActive, true},

		// any non-terminal state can cancel
		{subscription.StatusIncomplete, subscription.StatusCanceled, true},
		{subscription.StatusTrialing, subscription.StatusCanceled, true},
		{subscription.StatusActive, subscription.StatusCanceled, true},
		{subscription.StatusPastDue, subscription.StatusCanceled, true},
		{subscription.StatusUnpaid, subscription.StatusCanceled, true},

		// redelivery of the same state
		{subscription.StatusActive, subscription.StatusActive, true},
		{subscription.StatusCanceled, subscription.StatusCanceled, true},

		// canceled is terminal
		{subscription.StatusCanceled, subscription.StatusActive, false},
		{subscription.StatusCanceled, subscription.StatusPastDue, false},

		{subscription.StatusActive, subscription.StatusIncomplete, false},
		{subscription.StatusActive, subscription.StatusTrialing, false},
		{subscription.StatusUnpaid, subscription.StatusPastDue, false},
	}

	for _, tc := range cases {
		got := subscription.CanTransition(tc.from, tc.to)
		assert.Equal(t, tc.want, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestBillingPeriodValid(t *testing.T) {
	t.Parallel()

	assert.True(t, subscription.BillingPeriodMonthly.Valid())
	assert.True(t, subscription.BillingPeriodYearly.Valid())
	assert.False(t, subscription.BillingPeriod("weekly").Valid())
	assert.False(t, subscription.BillingPeriod("").Valid())
}
