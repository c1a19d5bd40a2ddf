package service

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks RateLimiter,AuditRecorder,SecurityReporter

import (
	"context"
	"time"

	"adequa/internal/audit"
	"adequa/internal/audit/report"
	ratelimitmodels "adequa/internal/ratelimit/models"
	id "adequa/pkg/domain"
)

// RateLimiter enforces per-operation call limits for an actor.
type RateLimiter interface {
	CheckOperation(ctx context.Context, actor id.UserID, operation string) (ratelimitmodels.Result, error)
}

// AuditRecorder records sensitive actions. Its outcome is never branched on.
type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event) audit.Outcome
}

// SecurityReporter builds the security analysis of an audit window.
type SecurityReporter interface {
	Generate(ctx context.Context, start, end time.Time) (*report.Report, error)
}
