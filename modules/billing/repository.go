package billing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ferosa45/listlab-backend-sub000/pkg/pg"
	"github.com/ferosa45/listlab-backend-sub000/pkg/subscription"
)

// DB is the slice of the pgx pool surface the repository uses. *pgxpool.Pool
// satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository implements subscription.Store, subscription.EntitlementSink,
// and invoice.CounterStore on PostgreSQL.
type Repository struct {
	db DB
}

// NewRepository creates a billing repository. Panics when db is nil.
func NewRepository(db DB) *Repository {
	if db == nil {
		panic("billing: database is required")
	}
	return &Repository{db: db}
}

const subscriptionColumns = `provider_subscription_id, owner_kind, owner_id, plan_code, billing_period,
	provider_customer_id, provider_price_id, status, cancel_at_period_end,
	current_period_start, current_period_end, seat_limit, provider_updated_at,
	created_at, updated_at`

// Upsert writes the subscription snapshot, keeping whichever record carries
// the later provider timestamp. Replayed and out-of-order deliveries reduce
// to no-ops, so the row always converges on the provider's newest state.
func (r *Repository) Upsert(ctx context.Context, sub *subscription.Subscription) error {
	const query = `
		INSERT INTO subscriptions (
			provider_subscription_id, owner_kind, owner_id, plan_code, billing_period,
			provider_customer_id, provider_price_id, status, cancel_at_period_end,
			current_period_start, current_period_end, seat_limit, provider_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (provider_subscription_id) DO UPDATE SET
			plan_code = EXCLUDED.plan_code,
			billing_period = EXCLUDED.billing_period,
			provider_customer_id = EXCLUDED.provider_customer_id,
			provider_price_id = EXCLUDED.provider_price_id,
			status = EXCLUDED.status,
			cancel_at_period_end = EXCLUDED.cancel_at_period_end,
			current_period_start = EXCLUDED.current_period_start,
			current_period_end = EXCLUDED.current_period_end,
			seat_limit = EXCLUDED.seat_limit,
			provider_updated_at = EXCLUDED.provider_updated_at,
			updated_at = now()
		WHERE subscriptions.provider_updated_at <= EXCLUDED.provider_updated_at`

	_, err := r.db.Exec(ctx, query,
		sub.ProviderSubscriptionID,
		string(sub.Owner.Kind),
		sub.Owner.ID,
		sub.PlanCode,
		string(sub.BillingPeriod),
		sub.ProviderCustomerID,
		sub.ProviderPriceID,
		string(sub.Status),
		sub.CancelAtPeriodEnd,
		sub.CurrentPeriodStart,
		sub.CurrentPeriodEnd,
		sub.SeatLimit,
		sub.ProviderUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert subscription %s: %w", sub.ProviderSubscriptionID, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, providerSubscriptionID string) (*subscription.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE provider_subscription_id = $1`

	sub, err := scanSubscription(r.db.QueryRow(ctx, query, providerSubscriptionID))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get subscription %s: %w", providerSubscriptionID, err)
	}
	return sub, nil
}

func (r *Repository) LatestActiveFor(ctx context.Context, owner subscription.Owner) (*subscription.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE owner_kind = $1 AND owner_id = $2 AND status IN ('active', 'trialing')
		ORDER BY provider_updated_at DESC
		LIMIT 1`

	sub, err := scanSubscription(r.db.QueryRow(ctx, query, string(owner.Kind), owner.ID))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, subscription.ErrNoActiveSubscription
		}
		return nil, fmt.Errorf("latest active subscription for %s: %w", owner, err)
	}
	return sub, nil
}

func (r *Repository) CustomerID(ctx context.Context, owner subscription.Owner) (string, error) {
	const query = `SELECT provider_customer_id FROM customer_links WHERE owner_kind = $1 AND owner_id = $2`

	var customerID string
	err := r.db.QueryRow(ctx, query, string(owner.Kind), owner.ID).Scan(&customerID)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return "", subscription.ErrCustomerLinkNotFound
		}
		return "", fmt.Errorf("customer link for %s: %w", owner, err)
	}
	return customerID, nil
}

// EnsureCustomer serializes customer provisioning per owner with a
// transaction-scoped advisory lock, so concurrent first-time checkouts agree
// on a single provider customer. The create callback runs while the lock is
// held and before the link row is written.
func (r *Repository) EnsureCustomer(ctx context.Context, owner subscription.Owner, create func(ctx context.Context) (string, error)) (string, error) {
	var customerID string
	err := pg.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1)::bigint)`, owner.String()); err != nil {
			return fmt.Errorf("acquire owner lock: %w", err)
		}

		err := tx.QueryRow(ctx,
			`SELECT provider_customer_id FROM customer_links WHERE owner_kind = $1 AND owner_id = $2`,
			string(owner.Kind), owner.ID,
		).Scan(&customerID)
		if err == nil {
			return nil
		}
		if !pg.IsNotFoundError(err) {
			return fmt.Errorf("customer link for %s: %w", owner, err)
		}

		customerID, err = create(ctx)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO customer_links (owner_kind, owner_id, provider_customer_id) VALUES ($1, $2, $3)`,
			string(owner.Kind), owner.ID, customerID,
		)
		if err != nil {
			return fmt.Errorf("insert customer link for %s: %w", owner, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return customerID, nil
}

// ApplySeatUpdate locks the owner's active subscription row, counts active
// members inside the same transaction, and persists the limit fn returns.
// Member admission also touches the locked row, so the occupancy fn observes
// cannot change before the commit.
func (r *Repository) ApplySeatUpdate(ctx context.Context, owner subscription.Owner, fn subscription.SeatUpdateFunc) error {
	return pg.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `SELECT ` + subscriptionColumns + `
			FROM subscriptions
			WHERE owner_kind = $1 AND owner_id = $2 AND status IN ('active', 'trialing')
			ORDER BY provider_updated_at DESC
			LIMIT 1
			FOR UPDATE`

		sub, err := scanSubscription(tx.QueryRow(ctx, query, string(owner.Kind), owner.ID))
		if err != nil {
			if pg.IsNotFoundError(err) {
				return subscription.ErrNoActiveSubscription
			}
			return fmt.Errorf("lock subscription for %s: %w", owner, err)
		}

		var members int64
		if owner.IsSchool() {
			err = tx.QueryRow(ctx,
				`SELECT count(*) FROM school_members WHERE school_id = $1 AND status = 'active'`,
				owner.ID,
			).Scan(&members)
			if err != nil {
				return fmt.Errorf("count members for %s: %w", owner, err)
			}
		}

		limit, err := fn(sub, members)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE subscriptions SET seat_limit = $1, updated_at = now() WHERE provider_subscription_id = $2`,
			limit, sub.ProviderSubscriptionID,
		)
		if err != nil {
			return fmt.Errorf("persist seat limit for %s: %w", sub.ProviderSubscriptionID, err)
		}
		return nil
	})
}

// SetEntitlement mirrors the owner's resolved entitlement so feature checks
// read one row instead of reconstructing billing state.
func (r *Repository) SetEntitlement(ctx context.Context, owner subscription.Owner, ent subscription.Entitlement) error {
	const query = `
		INSERT INTO entitlements (owner_kind, owner_id, plan_code, status, active, seat_limit, period_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (owner_kind, owner_id) DO UPDATE SET
			plan_code = EXCLUDED.plan_code,
			status = EXCLUDED.status,
			active = EXCLUDED.active,
			seat_limit = EXCLUDED.seat_limit,
			period_end = EXCLUDED.period_end,
			updated_at = now()`

	var periodEnd any
	if !ent.PeriodEnd.IsZero() {
		periodEnd = ent.PeriodEnd
	}
	_, err := r.db.Exec(ctx, query,
		string(owner.Kind), owner.ID, ent.PlanCode, string(ent.Status), ent.Active, ent.SeatLimit, periodEnd,
	)
	if err != nil {
		return fmt.Errorf("set entitlement for %s: %w", owner, err)
	}
	return nil
}

// Next allocates the next value of the year's invoice counter in a single
// atomic statement.
func (r *Repository) Next(ctx context.Context, year int) (int64, error) {
	const query = `
		INSERT INTO invoice_sequences (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET
			last_value = invoice_sequences.last_value + 1,
			updated_at = now()
		RETURNING last_value`

	var value int64
	if err := r.db.QueryRow(ctx, query, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("advance invoice counter for %d: %w", year, err)
	}
	return value, nil
}

func scanSubscription(row pgx.Row) (*subscription.Subscription, error) {
	var (
		sub    subscription.Subscription
		kind   string
		period string
		status string
	)
	err := row.Scan(
		&sub.ProviderSubscriptionID,
		&kind,
		&sub.Owner.ID,
		&sub.PlanCode,
		&period,
		&sub.ProviderCustomerID,
		&sub.ProviderPriceID,
		&status,
		&sub.CancelAtPeriodEnd,
		&sub.CurrentPeriodStart,
		&sub.CurrentPeriodEnd,
		&sub.SeatLimit,
		&sub.ProviderUpdatedAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.Owner.Kind = subscription.OwnerKind(kind)
	sub.BillingPeriod = subscription.BillingPeriod(period)
	sub.Status = subscription.Status(status)
	return &sub, nil
}
