package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// OwnerID records the billing owner identifier under the key "owner_id".
// If id is nil, it returns an empty Attr.
func OwnerID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("owner_id", id)
}

// OwnerKind records the billing owner kind under the key "owner_kind".
func OwnerKind(kind string) slog.Attr {
	return slog.String("owner_kind", kind)
}

// SubscriptionID records the provider subscription identifier under the key "subscription_id".
func SubscriptionID(id string) slog.Attr {
	return slog.String("subscription_id", id)
}

// CustomerID records the provider customer identifier under the key "customer_id".
func CustomerID(id string) slog.Attr {
	return slog.String("customer_id", id)
}

// EventID records the provider event identifier under the key "event_id".
func EventID(id string) slog.Attr {
	return slog.String("event_id", id)
}

// EventType records the provider event type under the key "event_type".
func EventType(eventType string) slog.Attr {
	return slog.String("event_type", eventType)
}

// PlanCode records the plan code under the key "plan_code".
func PlanCode(code string) slog.Attr {
	return slog.String("plan_code", code)
}

// InvoiceNumber records the issued invoice number under the key "invoice_number".
func InvoiceNumber(number string) slog.Attr {
	return slog.String("invoice_number", number)
}

// Quantity records a seat quantity under the key "quantity".
func Quantity(n int64) slog.Attr {
	return slog.Int64("quantity", n)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// SchoolID records the school identifier under the key "school_id".
// If id is nil, it returns an empty Attr.
func SchoolID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("school_id", id)
}
