package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"adequa/internal/access"
	"adequa/internal/audit"
	"adequa/internal/organization"
	ratelimitmodels "adequa/internal/ratelimit/models"
	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
	"adequa/pkg/platform/sentinel"
	"adequa/pkg/requestcontext"
)

// target names the resource an operation acts on, for access audit records.
type target struct {
	action       audit.Action
	resourceType string
	resourceID   string
}

func (s *Service) startSpan(ctx context.Context, name string, orgID id.OrganizationID) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, name)
	if orgID != (id.OrganizationID{}) {
		span.SetAttributes(attribute.String("organization_id", orgID.String()))
	}
	return ctx, span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// loadProfile returns the organization profile, or nil when none exists yet.
func (s *Service) loadProfile(ctx context.Context, orgID id.OrganizationID) (*organization.Profile, error) {
	p, err := s.profiles.Get(ctx, orgID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organization profile")
	}
	return p, nil
}

// authorize loads the profile and checks the actor against its owner.
func (s *Service) authorize(ctx context.Context, orgID id.OrganizationID, t target) (*organization.Profile, access.Decision, error) {
	profile, err := s.loadProfile(ctx, orgID)
	if err != nil {
		return nil, access.Decision{}, err
	}
	decision, err := s.evaluate(ctx, profile, t)
	return profile, decision, err
}

// evaluate applies access control for an already loaded profile. An
// organization without a profile has no owner, so only admins pass.
func (s *Service) evaluate(ctx context.Context, profile *organization.Profile, t target) (access.Decision, error) {
	var owner id.UserID
	if profile != nil {
		owner = profile.OwnerID
	}
	decision := access.Evaluate(requestcontext.ActorID(ctx), owner, requestcontext.Role(ctx))
	if !decision.HasAccess {
		return decision, s.deny(ctx, t)
	}
	return decision, nil
}

// requireReviewer admits only the admin role.
func (s *Service) requireReviewer(ctx context.Context, t target) error {
	if requestcontext.Role(ctx) != access.RoleAdmin {
		return s.deny(ctx, t)
	}
	return nil
}

func (s *Service) deny(ctx context.Context, t target) error {
	s.auditor.Record(ctx, audit.Event{
		Action:       audit.ActionAccessDenied,
		ResourceType: t.resourceType,
		ResourceID:   t.resourceID,
		Details:      map[string]any{"attempted_action": string(t.action)},
		Success:      false,
		ErrorMessage: "access denied",
		AccessLevel:  access.LevelDenied,
	})
	s.logger.WarnContext(ctx, "access denied",
		"actor_id", requestcontext.ActorID(ctx).String(),
		"action", string(t.action),
		"resource_type", t.resourceType,
		"resource_id", t.resourceID,
	)
	return dErrors.New(dErrors.CodeForbidden, "access denied")
}

// throttle counts one call of operation for the actor.
func (s *Service) throttle(ctx context.Context, operation string) error {
	res, err := s.limiter.CheckOperation(ctx, requestcontext.ActorID(ctx), operation)
	if err != nil {
		return err
	}
	if !res.Allowed {
		return &ratelimitmodels.ExceededError{Operation: operation, Result: res}
	}
	return nil
}

// failed records a failed operation and returns err unchanged.
func (s *Service) failed(ctx context.Context, e audit.Event, err error) error {
	e.Success = false
	e.ErrorMessage = err.Error()
	s.auditor.Record(ctx, e)
	return err
}
