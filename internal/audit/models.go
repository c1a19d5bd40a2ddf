package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"adequa/internal/access"
	id "adequa/pkg/domain"
)

// Action names a sensitive operation.
type Action string

const (
	ActionCatalogViewed     Action = "catalog_viewed"
	ActionProfileUpdated    Action = "profile_updated"
	ActionAnswersSaved      Action = "answers_saved"
	ActionAnswersViewed     Action = "answers_viewed"
	ActionAnalysisViewed    Action = "analysis_viewed"
	ActionTasksDerived      Action = "tasks_derived"
	ActionTasksViewed       Action = "tasks_viewed"
	ActionTaskStarted       Action = "task_started"
	ActionTaskSubmitted     Action = "task_submitted"
	ActionTaskApproved      Action = "task_approved"
	ActionTaskRejected      Action = "task_rejected"
	ActionTaskResumed       Action = "task_resumed"
	ActionEvidenceAttached  Action = "evidence_attached"
	ActionDocumentValidated Action = "document_validated"
	ActionAccessDenied      Action = "access_denied"
	ActionRateLimitExceeded Action = "rate_limit_exceeded"
	ActionSecurityReport    Action = "security_report_generated"
)

// Resource types referenced by records.
const (
	ResourceOrganization = "organization"
	ResourceAnswerSet    = "answer_set"
	ResourceTask         = "remediation_task"
	ResourceDocument     = "document"
	ResourceAuditLog     = "audit_log"
)

// Category classifies actions by purpose, for retention and reporting.
type Category string

const (
	// CategoryCompliance covers changes with regulatory significance.
	CategoryCompliance Category = "compliance"
	// CategorySecurity covers signals relevant to abuse and access monitoring.
	CategorySecurity Category = "security"
	// CategoryOperations covers routine reads.
	CategoryOperations Category = "operations"
)

var actionCategories = map[Action]Category{
	ActionProfileUpdated:   CategoryCompliance,
	ActionAnswersSaved:     CategoryCompliance,
	ActionTasksDerived:     CategoryCompliance,
	ActionTaskStarted:      CategoryCompliance,
	ActionTaskSubmitted:    CategoryCompliance,
	ActionTaskApproved:     CategoryCompliance,
	ActionTaskRejected:     CategoryCompliance,
	ActionTaskResumed:      CategoryCompliance,
	ActionEvidenceAttached: CategoryCompliance,

	ActionAccessDenied:      CategorySecurity,
	ActionRateLimitExceeded: CategorySecurity,
	ActionSecurityReport:    CategorySecurity,
}

// Category returns the category of the action. Unknown actions are operational.
func (a Action) Category() Category {
	if c, ok := actionCategories[a]; ok {
		return c
	}
	return CategoryOperations
}

// Event is what callers report. Unset origin fields are filled from the
// request context by the Recorder.
type Event struct {
	ActorID       id.UserID
	Action        Action
	ResourceType  string
	ResourceID    string
	Details       map[string]any
	PreviousState any
	NewState      any
	IPAddress     string
	UserAgent     string
	Success       bool
	ErrorMessage  string
	AccessLevel   access.Level
}

// Record is an immutable audit log entry. Stores only append and range-query records.
type Record struct {
	ID            uuid.UUID       `json:"id"`
	ActorID       id.UserID       `json:"actor_id"`
	Action        Action          `json:"action"`
	Category      Category        `json:"category"`
	ResourceType  string          `json:"resource_type"`
	ResourceID    string          `json:"resource_id,omitempty"`
	Details       json.RawMessage `json:"details,omitempty"`
	PreviousState json.RawMessage `json:"previous_state,omitempty"`
	NewState      json.RawMessage `json:"new_state,omitempty"`
	IPAddress     string          `json:"ip_address,omitempty"`
	UserAgent     string          `json:"user_agent,omitempty"`
	Success       bool            `json:"success"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	AccessLevel   access.Level    `json:"access_level,omitempty"`
	RequestID     string          `json:"request_id,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// IsSystem reports whether the record has no human actor.
func (r Record) IsSystem() bool {
	return r.ActorID.IsNil()
}

// IsAccessDenied reports a failed action that was refused by access control.
func (r Record) IsAccessDenied() bool {
	return !r.Success && (r.AccessLevel == access.LevelDenied || r.Action == ActionAccessDenied)
}
