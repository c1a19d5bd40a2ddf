// Package observability provides the rejection logging and audit helpers for the ratelimit module.
package observability

import (
	"context"
	"log/slog"

	"adequa/internal/audit"
	"adequa/internal/ratelimit/models"
	"adequa/internal/ratelimit/ports"
	id "adequa/pkg/domain"
	"adequa/pkg/requestcontext"
)

// Rejection describes one call refused by the limiter.
type Rejection struct {
	ActorID   id.UserID
	Operation string
	Result    models.Result
}

// LogRejection writes the rejection to the structured log and to the audit trail.
// Either sink may be nil.
func LogRejection(ctx context.Context, logger *slog.Logger, recorder ports.AuditRecorder, r Rejection) {
	requestID := requestcontext.RequestID(ctx)

	if logger != nil {
		logger.WarnContext(ctx, "rate limit exceeded",
			"actor_id", r.ActorID.String(),
			"operation", r.Operation,
			"limit", r.Result.Limit,
			"reset_at", r.Result.ResetAt,
			"request_id", requestID,
			"log_type", "audit",
		)
	}

	if recorder == nil {
		return
	}

	recorder.Record(ctx, audit.Event{
		ActorID:      r.ActorID,
		Action:       audit.ActionRateLimitExceeded,
		ResourceType: audit.ResourceOrganization,
		Details: map[string]any{
			"operation":   r.Operation,
			"limit":       r.Result.Limit,
			"reset_at":    r.Result.ResetAt,
			"retry_after": r.Result.RetryAfterSeconds(),
		},
		Success:      false,
		ErrorMessage: "rate limit exceeded",
	})
}
