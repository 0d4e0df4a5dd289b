// Package logger provides a slog-based logger factory with environment presets
// and typed attribute helpers for the billing domain.
//
// The factory returns a standard *slog.Logger so the rest of the codebase
// depends only on log/slog. Attribute helpers keep log keys consistent across
// packages (owner_id, subscription_id, event_type, ...), which matters for
// reconciliation queries against aggregated webhook processing logs.
//
// Usage:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Environment, "listlab-billing"),
//	)
//	log.Info("subscription updated",
//		logger.SubscriptionID(sub.ProviderSubscriptionID),
//		logger.OwnerID(sub.OwnerID),
//	)
package logger
