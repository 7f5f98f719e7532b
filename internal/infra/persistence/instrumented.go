package persistence

import (
	"context"
	"log/slog"
	"time"

	"addrcard/internal/domain/repository"
	"addrcard/internal/infra/metrics"
)

// Instrumented records latency and failures of every store operation and
// logs failed ones.
type Instrumented struct {
	next    repository.RecordStore
	driver  string
	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ repository.RecordStore = (*Instrumented)(nil)

// NewInstrumented wraps next; driver labels the metrics
func NewInstrumented(next repository.RecordStore, driver string, m *metrics.Metrics, logger *slog.Logger) *Instrumented {
	return &Instrumented{
		next:    next,
		driver:  driver,
		metrics: m,
		logger:  logger,
	}
}

func (s *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	value, found, err := s.next.Get(ctx, key)
	s.observe(ctx, repository.OpGet, key, start, err)

	return value, found, err
}

func (s *Instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observe(ctx, repository.OpSet, key, start, err)

	return err
}

func (s *Instrumented) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Remove(ctx, key)
	s.observe(ctx, repository.OpRemove, key, start, err)

	return err
}

func (s *Instrumented) observe(ctx context.Context, op, key string, start time.Time, err error) {
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveStoreOp(s.driver, op, float64(elapsed.Microseconds())/1000, err != nil)
	}

	if err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "Record store operation failed",
			slog.String("driver", s.driver),
			slog.String("op", op),
			slog.String("key", key),
			slog.Duration("elapsed", elapsed),
			slog.Any("error", err),
		)
	}
}
