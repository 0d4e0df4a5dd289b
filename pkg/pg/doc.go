// Package pg provides PostgreSQL bootstrap utilities on top of pgx/v5:
// a retrying connection pool constructor driven by an env-tagged Config,
// goose/v3 schema migrations, a health-check closure, a transaction helper,
// and error classification helpers shared by the repositories.
//
// The billing core depends on three of its guarantees in particular:
//
//   - IsDuplicateKeyError lets create-if-absent writes (customer links,
//     invoice numbers) distinguish a lost race from a real failure.
//   - WithTx scopes row-level locks (SELECT ... FOR UPDATE) so the seat
//     occupancy check and the seat-limit write commit or fail together.
//   - IsNotFoundError normalizes pgx.ErrNoRows across all queries.
//
// Usage:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
package pg
