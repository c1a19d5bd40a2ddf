package remediation

import (
	"strings"
	"time"

	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
)

// Priority ranks remediation urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsDone reports whether the task counts as completed.
func (s Status) IsDone() bool {
	return s == StatusApproved || s == StatusCompleted
}

// IsOpen reports whether the task still holds its template key for append-mode
// de-duplication. Only cancelled tasks release it.
func (s Status) IsOpen() bool {
	return s != StatusCancelled
}

// Mode selects how derived tasks are merged with an organization's existing tasks.
type Mode string

const (
	// ModeReset deletes every existing task before inserting the derived set.
	ModeReset Mode = "reset"
	// ModeResetCancel cancels every existing task, keeping it as history, before inserting.
	ModeResetCancel Mode = "reset_cancel"
	// ModeAppend keeps existing tasks and inserts only templates not already held by an open task.
	ModeAppend Mode = "append"
)

// ParseMode validates a caller-supplied mode. The mode is never inferred.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.TrimSpace(s)); m {
	case ModeReset, ModeResetCancel, ModeAppend:
		return m, nil
	case "":
		return "", dErrors.New(dErrors.CodeValidation, "derivation mode is required (reset, reset_cancel or append)")
	default:
		return "", dErrors.New(dErrors.CodeValidation, "unknown derivation mode: "+s)
	}
}

// EvidenceRef points to an uploaded file held by the storage collaborator.
type EvidenceRef struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	StorageKey string    `json:"storage_key,omitempty"`
	AttachedBy string    `json:"attached_by,omitempty"`
	AttachedAt time.Time `json:"attached_at"`
}

// Task is a unit of corrective work owned by an organization.
type Task struct {
	ID              id.TaskID         `json:"id"`
	OrganizationID  id.OrganizationID `json:"organization_id"`
	TemplateKey     string            `json:"template_key"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Category        string            `json:"category"`
	Sector          string            `json:"sector,omitempty"`
	QuestionID      int               `json:"question_id,omitempty"`
	Priority        Priority          `json:"priority"`
	Status          Status            `json:"status"`
	Steps           []string          `json:"steps"`
	DueInDays       int               `json:"due_in_days"`
	DueAt           time.Time         `json:"due_at"`
	Evidence        []EvidenceRef     `json:"evidence"`
	ReviewerComment string            `json:"reviewer_comment,omitempty"`
	SubmittedAt     *time.Time        `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Clone returns a deep copy so callers never share slices with a store.
func (t *Task) Clone() *Task {
	c := *t
	c.Steps = append([]string(nil), t.Steps...)
	c.Evidence = append([]EvidenceRef(nil), t.Evidence...)
	if t.SubmittedAt != nil {
		v := *t.SubmittedAt
		c.SubmittedAt = &v
	}
	if t.ReviewedAt != nil {
		v := *t.ReviewedAt
		c.ReviewedAt = &v
	}
	return &c
}

func invalidTransition(t *Task, action string) error {
	return dErrors.New(dErrors.CodeInvalidState,
		"cannot "+action+" task in status "+string(t.Status))
}

// Start moves a pending task into progress.
func (t *Task) Start(now time.Time) error {
	if t.Status != StatusPending {
		return invalidTransition(t, "start")
	}
	t.Status = StatusInProgress
	t.UpdatedAt = now
	return nil
}

// Submit sends the task for review. Only work in progress, or a rejected task
// being resubmitted, can be submitted. At least one evidence reference is required.
func (t *Task) Submit(now time.Time) error {
	switch t.Status {
	case StatusInProgress, StatusRejected:
	default:
		return invalidTransition(t, "submit")
	}
	if len(t.Evidence) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one evidence reference is required to submit a task")
	}
	t.Status = StatusInReview
	t.SubmittedAt = &now
	t.UpdatedAt = now
	return nil
}

// Approve accepts a task under review. Approved is terminal.
func (t *Task) Approve(now time.Time, comment string) error {
	if t.Status != StatusInReview {
		return invalidTransition(t, "approve")
	}
	t.Status = StatusApproved
	t.ReviewerComment = strings.TrimSpace(comment)
	t.ReviewedAt = &now
	t.UpdatedAt = now
	return nil
}

// Reject returns a task under review to the organization with a comment.
func (t *Task) Reject(now time.Time, comment string) error {
	if t.Status != StatusInReview {
		return invalidTransition(t, "reject")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return dErrors.New(dErrors.CodeValidation, "a reviewer comment is required to reject a task")
	}
	t.Status = StatusRejected
	t.ReviewerComment = comment
	t.ReviewedAt = &now
	t.UpdatedAt = now
	return nil
}

// Resume reopens a rejected task for rework.
func (t *Task) Resume(now time.Time) error {
	if t.Status != StatusRejected {
		return invalidTransition(t, "resume")
	}
	t.Status = StatusInProgress
	t.UpdatedAt = now
	return nil
}

// AttachEvidence adds an evidence reference. Closed tasks accept no evidence.
func (t *Task) AttachEvidence(now time.Time, ref EvidenceRef) error {
	switch t.Status {
	case StatusApproved, StatusCompleted, StatusCancelled, StatusInReview:
		return invalidTransition(t, "attach evidence to")
	}
	t.Evidence = append(t.Evidence, ref)
	t.UpdatedAt = now
	return nil
}

// Cancel soft-cancels a task during a reset that keeps history. Completed and
// already cancelled tasks are left as they are; it reports whether t changed.
func (t *Task) Cancel(now time.Time) bool {
	if t.Status == StatusCancelled || t.Status.IsDone() {
		return false
	}
	t.Status = StatusCancelled
	t.UpdatedAt = now
	return true
}
