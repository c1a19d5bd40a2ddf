package service

import (
	"context"
	"errors"
	"log/slog"

	"adequa/internal/platform/config"
	"adequa/internal/ratelimit/metrics"
	"adequa/internal/ratelimit/models"
	"adequa/internal/ratelimit/observability"
	"adequa/internal/ratelimit/ports"
	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
	"adequa/pkg/requestcontext"
)

// Limits maps operations to their limits; operations without an entry use Default.
type Limits struct {
	Default    models.Limit
	Operations map[string]models.Limit
}

// For returns the limit for operation.
func (l Limits) For(operation string) models.Limit {
	if lim, ok := l.Operations[operation]; ok {
		return lim
	}
	return l.Default
}

// LimitsFromConfig converts the configured operation limits.
func LimitsFromConfig(c config.RateLimitConfig) Limits {
	l := Limits{
		Default:    models.Limit{MaxOps: c.Default.MaxOps, WindowMinutes: c.Default.WindowMinutes},
		Operations: make(map[string]models.Limit, len(c.Operations)),
	}
	for op, lim := range c.Operations {
		l.Operations[op] = models.Limit{MaxOps: lim.MaxOps, WindowMinutes: lim.WindowMinutes}
	}
	return l
}

// Service applies fixed-window limits per (actor, operation).
type Service struct {
	counters ports.CounterStore
	auditor  ports.AuditRecorder
	logger   *slog.Logger
	metrics  *metrics.Metrics
	limits   Limits
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditRecorder(recorder ports.AuditRecorder) Option {
	return func(s *Service) {
		s.auditor = recorder
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLimits sets the per-operation limits used by CheckOperation.
func WithLimits(l Limits) Option {
	return func(s *Service) {
		s.limits = l
	}
}

var defaultLimit = models.Limit{MaxOps: 60, WindowMinutes: 1}

func New(counters ports.CounterStore, opts ...Option) (*Service, error) {
	if counters == nil {
		return nil, errors.New("counter store is required")
	}
	svc := &Service{
		counters: counters,
		logger:   slog.Default(),
		limits:   Limits{Default: defaultLimit},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Check counts one call of operation by actor against a window of
// windowMinutes, allowing at most maxOps calls per window.
// A rejected call is reported as Result.Allowed == false, not as an error.
func (s *Service) Check(ctx context.Context, actor id.UserID, operation string, maxOps, windowMinutes int) (models.Result, error) {
	limit := models.Limit{MaxOps: maxOps, WindowMinutes: windowMinutes}
	if !limit.Valid() {
		return models.Result{}, dErrors.New(dErrors.CodeValidation, "rate limit bounds must be positive")
	}
	if operation == "" {
		return models.Result{}, dErrors.New(dErrors.CodeValidation, "operation is required")
	}

	now := requestcontext.Now(ctx)
	key := models.WindowKey(actor.String(), operation)

	s.metrics.IncrementChecks(operation)
	count, resetAt, err := s.counters.Increment(ctx, key, limit.Window(), now)
	if err != nil {
		s.metrics.IncrementStoreErrors()
		return models.Result{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rate limit")
	}

	result := models.NewResult(count, maxOps, resetAt, now)
	if !result.Allowed {
		s.metrics.IncrementRejections(operation)
		observability.LogRejection(ctx, s.logger, s.auditor, observability.Rejection{
			ActorID:   actor,
			Operation: operation,
			Result:    result,
		})
	}
	return result, nil
}

// CheckOperation is Check with the configured limit for operation.
func (s *Service) CheckOperation(ctx context.Context, actor id.UserID, operation string) (models.Result, error) {
	lim := s.limits.For(operation)
	return s.Check(ctx, actor, operation, lim.MaxOps, lim.WindowMinutes)
}
