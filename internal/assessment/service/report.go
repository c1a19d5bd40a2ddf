package service

import (
	"context"
	"time"

	"adequa/internal/access"
	"adequa/internal/audit"
	"adequa/internal/audit/report"
	ratelimitmodels "adequa/internal/ratelimit/models"
	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
)

// SecurityReport analyses the audit trail in [start, end). Admins only.
func (s *Service) SecurityReport(ctx context.Context, start, end time.Time) (_ *report.Report, err error) {
	ctx, span := s.startSpan(ctx, "assessment.SecurityReport", id.OrganizationID{})
	defer func() { endSpan(span, err) }()

	t := target{action: audit.ActionSecurityReport, resourceType: audit.ResourceAuditLog}
	if err := s.requireReviewer(ctx, t); err != nil {
		return nil, err
	}
	if err := s.throttle(ctx, ratelimitmodels.OperationSecurityReport); err != nil {
		return nil, err
	}

	event := audit.Event{
		Action:       t.action,
		ResourceType: t.resourceType,
		Details:      map[string]any{"start": start, "end": end},
		AccessLevel:  access.LevelAdmin,
	}

	if s.reporter == nil {
		return nil, s.failed(ctx, event, dErrors.New(dErrors.CodeInternal, "security reporter is not configured"))
	}
	rep, err := s.reporter.Generate(ctx, start, end)
	if err != nil {
		return nil, s.failed(ctx, event, err)
	}

	event.Details["total_actions"] = rep.TotalActions
	event.Details["suspicious"] = len(rep.SuspiciousActivities)
	event.Success = true
	s.auditor.Record(ctx, event)
	return rep, nil
}
