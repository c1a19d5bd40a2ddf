package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"adequa/internal/access"
	"adequa/internal/assessment/remediation"
	"adequa/internal/audit"
	"adequa/internal/document"
	ratelimitmodels "adequa/internal/ratelimit/models"
	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
	"adequa/pkg/requestcontext"
)

// ListTasks returns the organization's remediation tasks.
func (s *Service) ListTasks(ctx context.Context, orgID id.OrganizationID) (_ []*remediation.Task, err error) {
	ctx, span := s.startSpan(ctx, "assessment.ListTasks", orgID)
	defer func() { endSpan(span, err) }()

	t := target{action: audit.ActionTasksViewed, resourceType: audit.ResourceTask}
	_, decision, err := s.authorize(ctx, orgID, t)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, orgID)
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit.Event{
		Action:       t.action,
		ResourceType: t.resourceType,
		Details:      map[string]any{"organization_id": orgID.String(), "count": len(tasks)},
		Success:      true,
		AccessLevel:  decision.Level,
	})
	return tasks, nil
}

// StartTask moves a pending task into progress.
func (s *Service) StartTask(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID) (*remediation.Task, error) {
	return s.transition(ctx, orgID, taskID, audit.ActionTaskStarted, false, nil,
		func(t *remediation.Task, now time.Time) error { return t.Start(now) })
}

// SubmitTask sends a task with evidence for review.
func (s *Service) SubmitTask(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID) (*remediation.Task, error) {
	return s.transition(ctx, orgID, taskID, audit.ActionTaskSubmitted, false, nil,
		func(t *remediation.Task, now time.Time) error { return t.Submit(now) })
}

// ApproveTask accepts a task under review. Reviewers only.
func (s *Service) ApproveTask(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID, comment string) (*remediation.Task, error) {
	return s.transition(ctx, orgID, taskID, audit.ActionTaskApproved, true, map[string]any{"comment": comment},
		func(t *remediation.Task, now time.Time) error { return t.Approve(now, comment) })
}

// RejectTask returns a task under review with a mandatory comment. Reviewers only.
func (s *Service) RejectTask(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID, comment string) (*remediation.Task, error) {
	return s.transition(ctx, orgID, taskID, audit.ActionTaskRejected, true, map[string]any{"comment": comment},
		func(t *remediation.Task, now time.Time) error { return t.Reject(now, comment) })
}

// ResumeTask reopens a rejected task for rework.
func (s *Service) ResumeTask(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID) (*remediation.Task, error) {
	return s.transition(ctx, orgID, taskID, audit.ActionTaskResumed, false, nil,
		func(t *remediation.Task, now time.Time) error { return t.Resume(now) })
}

type taskState struct {
	Status        remediation.Status `json:"status"`
	EvidenceCount int                `json:"evidence_count"`
}

func stateOf(t *remediation.Task) taskState {
	return taskState{Status: t.Status, EvidenceCount: len(t.Evidence)}
}

func (s *Service) transition(
	ctx context.Context,
	orgID id.OrganizationID,
	taskID id.TaskID,
	action audit.Action,
	reviewerOnly bool,
	details map[string]any,
	change func(t *remediation.Task, now time.Time) error,
) (_ *remediation.Task, err error) {
	ctx, span := s.startSpan(ctx, "assessment."+string(action), orgID)
	defer func() { endSpan(span, err) }()

	t := target{action: action, resourceType: audit.ResourceTask, resourceID: taskID.String()}

	_, decision, err := s.authorize(ctx, orgID, t)
	if err != nil {
		return nil, err
	}
	if reviewerOnly {
		if err := s.requireReviewer(ctx, t); err != nil {
			return nil, err
		}
	}
	if err := s.throttle(ctx, ratelimitmodels.OperationTaskTransition); err != nil {
		return nil, err
	}

	event := audit.Event{
		Action:       action,
		ResourceType: t.resourceType,
		ResourceID:   t.resourceID,
		Details:      details,
		AccessLevel:  decision.Level,
	}

	before, after, err := s.tasks.Transition(ctx, orgID, taskID, change)
	if err != nil {
		return nil, s.failed(ctx, event, err)
	}

	event.PreviousState = stateOf(before)
	event.NewState = stateOf(after)
	event.Success = true
	s.auditor.Record(ctx, event)

	s.logger.InfoContext(ctx, "remediation task transitioned",
		"organization_id", orgID.String(),
		"task_id", taskID.String(),
		"action", string(action),
		"from", string(before.Status),
		"to", string(after.Status),
	)
	return after, nil
}

// AttachEvidence validates the uploaded file's metadata and attaches a
// reference to it. Invalid metadata is rejected with every violation listed.
func (s *Service) AttachEvidence(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID, req EvidenceRequest) (_ *remediation.Task, err error) {
	ctx, span := s.startSpan(ctx, "assessment.AttachEvidence", orgID)
	defer func() { endSpan(span, err) }()

	t := target{action: audit.ActionEvidenceAttached, resourceType: audit.ResourceTask, resourceID: taskID.String()}

	_, decision, err := s.authorize(ctx, orgID, t)
	if err != nil {
		return nil, err
	}
	if err := s.throttle(ctx, ratelimitmodels.OperationAttachEvidence); err != nil {
		return nil, err
	}

	event := audit.Event{
		Action:       t.action,
		ResourceType: t.resourceType,
		ResourceID:   t.resourceID,
		Details: map[string]any{
			"file_name": req.FileName,
			"file_size": req.FileSize,
			"mime_type": req.MimeType,
		},
		AccessLevel: decision.Level,
	}

	if res := document.Validate(req.FileName, req.FileSize, req.MimeType); !res.IsValid {
		event.Details["violations"] = res.Errors
		return nil, s.failed(ctx, event,
			dErrors.NewWithDetails(dErrors.CodeValidation, "invalid evidence document", res.Messages()))
	}

	ref := remediation.EvidenceRef{
		ID:         uuid.NewString(),
		FileName:   req.FileName,
		MimeType:   req.MimeType,
		Size:       req.FileSize,
		StorageKey: req.StorageKey,
		AttachedBy: requestcontext.ActorID(ctx).String(),
	}
	before, after, err := s.tasks.Transition(ctx, orgID, taskID, func(t *remediation.Task, now time.Time) error {
		ref.AttachedAt = now
		return t.AttachEvidence(now, ref)
	})
	if err != nil {
		return nil, s.failed(ctx, event, err)
	}

	event.Details["evidence_id"] = ref.ID
	event.PreviousState = stateOf(before)
	event.NewState = stateOf(after)
	event.Success = true
	s.auditor.Record(ctx, event)
	return after, nil
}

// ValidateDocument checks upload metadata without attaching anything.
func (s *Service) ValidateDocument(ctx context.Context, req EvidenceRequest) document.Result {
	ctx, span := s.startSpan(ctx, "assessment.ValidateDocument", id.OrganizationID{})
	defer span.End()

	res := document.Validate(req.FileName, req.FileSize, req.MimeType)

	level := access.LevelOwner
	if requestcontext.Role(ctx) == access.RoleAdmin {
		level = access.LevelAdmin
	}
	s.auditor.Record(ctx, audit.Event{
		Action:       audit.ActionDocumentValidated,
		ResourceType: audit.ResourceDocument,
		ResourceID:   req.FileName,
		Details: map[string]any{
			"file_size":  req.FileSize,
			"mime_type":  req.MimeType,
			"is_valid":   res.IsValid,
			"violations": len(res.Errors),
		},
		Success:     res.IsValid,
		AccessLevel: level,
	})
	return res
}
