package invoice

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/ferosa45/listlab-backend-sub000/pkg/logger"
)

// CounterStore allocates monotonically increasing values from a named,
// year-scoped counter. Next must be atomic: two concurrent calls for the
// same year never observe the same value.
type CounterStore interface {
	Next(ctx context.Context, year int) (int64, error)
}

// Sequencer issues gapless-per-allocation invoice numbers of the form
// <year>-<6-digit sequence>, e.g. "2026-000042". The sequence restarts at 1
// each calendar year.
type Sequencer struct {
	store CounterStore
	log   *slog.Logger
	now   func() time.Time
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(s *Sequencer) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source. Used in tests to pin the year.
func WithClock(now func() time.Time) Option {
	return func(s *Sequencer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSequencer creates an invoice number sequencer. Panics when store is nil.
func NewSequencer(store CounterStore, opts ...Option) *Sequencer {
	if store == nil {
		panic("invoice: counter store is required")
	}
	s := &Sequencer{
		store: store,
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next allocates the next invoice number for the current year.
func (s *Sequencer) Next(ctx context.Context) (string, error) {
	return s.NextFor(ctx, s.now().UTC().Year())
}

// NextFor allocates the next invoice number for the given year.
//
// When the counter store fails, number issuance degrades instead of blocking
// billing: a random suffix replaces the sequence. The fallback suffix is
// eight hex characters, so it can never collide with the six-digit sequential
// form, and the degradation is logged for follow-up.
func (s *Sequencer) NextFor(ctx context.Context, year int) (string, error) {
	seq, err := s.store.Next(ctx, year)
	if err != nil {
		suffix, randErr := randomSuffix()
		if randErr != nil {
			return "", fmt.Errorf("allocate invoice number: %w", err)
		}
		number := fmt.Sprintf("%d-%s", year, suffix)
		s.log.WarnContext(ctx, "invoice counter unavailable, issuing random-suffix number",
			"year", year,
			logger.InvoiceNumber(number),
			logger.Error(err),
		)
		return number, nil
	}
	return fmt.Sprintf("%d-%06d", year, seq), nil
}

func randomSuffix() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random suffix: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
