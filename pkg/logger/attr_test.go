package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferosa45/listlab-backend-sub000/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestOwnerAttrs(t *testing.T) {
	attr := logger.OwnerID("school-1")
	require.Equal(t, "owner_id", attr.Key)
	assert.Equal(t, "school-1", attr.Value.Any())

	assert.True(t, logger.OwnerID(nil).Equal(slog.Attr{}))

	kind := logger.OwnerKind("organization")
	assert.Equal(t, "owner_kind", kind.Key)
	assert.Equal(t, "organization", kind.Value.String())
}

func TestBillingAttrs(t *testing.T) {
	assert.Equal(t, "subscription_id", logger.SubscriptionID("sub_123").Key)
	assert.Equal(t, "customer_id", logger.CustomerID("cus_123").Key)
	assert.Equal(t, "event_type", logger.EventType("customer.subscription.updated").Key)
	assert.Equal(t, "event_id", logger.EventID("evt_123").Key)
	assert.Equal(t, "plan_code", logger.PlanCode("school").Key)
	assert.Equal(t, "invoice_number", logger.InvoiceNumber("2026-000001").Key)

	qty := logger.Quantity(25)
	assert.Equal(t, "quantity", qty.Key)
	assert.Equal(t, int64(25), qty.Value.Int64())
}
