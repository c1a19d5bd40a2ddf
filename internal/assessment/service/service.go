// Package service orchestrates the assessment workflow: every operation runs
// the access check, then the rate limiter, then the operation itself, and is
// recorded by the audit recorder.
package service

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"adequa/internal/assessment/answerset"
	"adequa/internal/assessment/remediation"
	"adequa/internal/organization"
	"adequa/internal/platform/metrics"
)

const tracerName = "adequa/internal/assessment/service"

type Service struct {
	profiles organization.Store
	answers  answerset.Store
	tasks    *remediation.Engine
	library  *remediation.Library
	limiter  RateLimiter
	auditor  AuditRecorder
	reporter SecurityReporter
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLibrary overrides the embedded remediation template library.
func WithLibrary(l *remediation.Library) Option {
	return func(s *Service) {
		s.library = l
	}
}

func WithSecurityReporter(r SecurityReporter) Option {
	return func(s *Service) {
		s.reporter = r
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(
	profiles organization.Store,
	answers answerset.Store,
	tasks *remediation.Engine,
	limiter RateLimiter,
	auditor AuditRecorder,
	opts ...Option,
) (*Service, error) {
	if profiles == nil {
		return nil, errors.New("profile store is required")
	}
	if answers == nil {
		return nil, errors.New("answer store is required")
	}
	if tasks == nil {
		return nil, errors.New("task engine is required")
	}
	if limiter == nil {
		return nil, errors.New("rate limiter is required")
	}
	if auditor == nil {
		return nil, errors.New("audit recorder is required")
	}

	svc := &Service{
		profiles: profiles,
		answers:  answers,
		tasks:    tasks,
		limiter:  limiter,
		auditor:  auditor,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.library == nil {
		svc.library = remediation.DefaultLibrary()
	}
	return svc, nil
}
