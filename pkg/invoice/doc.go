// Package invoice issues human-readable invoice numbers backed by a
// year-scoped atomic counter.
//
// The provider remains responsible for generating and charging invoices;
// this package only assigns the numbers printed on them. Numbers follow the
// form "<year>-<6-digit sequence>" and restart at 1 each calendar year. If
// the counter store is unavailable the sequencer falls back to a
// random-suffix number rather than blocking billing.
package invoice
