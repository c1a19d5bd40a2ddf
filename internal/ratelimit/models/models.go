package models

import (
	"time"

	dErrors "adequa/pkg/domain-errors"
)

// Result is the outcome of one rate limit check.
type Result struct {
	Allowed    bool          `json:"allowed"`
	Limit      int           `json:"limit"`
	Remaining  int           `json:"remaining"`
	ResetAt    time.Time     `json:"reset_at"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds, for the Retry-After header.
func (r Result) RetryAfterSeconds() int {
	if r.RetryAfter <= 0 {
		return 0
	}
	return int((r.RetryAfter + time.Second - 1) / time.Second)
}

// Limit caps an operation at MaxOps calls per window.
type Limit struct {
	MaxOps        int
	WindowMinutes int
}

// Window returns the window length.
func (l Limit) Window() time.Duration {
	return time.Duration(l.WindowMinutes) * time.Minute
}

// Valid reports whether both bounds are positive.
func (l Limit) Valid() bool {
	return l.MaxOps > 0 && l.WindowMinutes > 0
}

// NewResult builds the result for the count-th call of a window ending at resetAt.
// The call is allowed while count stays within the limit.
func NewResult(count, limit int, resetAt, now time.Time) Result {
	res := Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   resetAt,
	}
	if !res.Allowed {
		res.RetryAfter = max(resetAt.Sub(now), 0)
	}
	return res
}

// Rate-limited operations.
const (
	OperationSaveAnswers    = "save_answers"
	OperationUpdateProfile  = "update_profile"
	OperationTaskTransition = "task_transition"
	OperationAttachEvidence = "attach_evidence"
	OperationSecurityReport = "security_report"
)

// ExceededError reports a call refused by the limiter. It unwraps to a
// CodeRateLimited domain error so transports map it like any other.
type ExceededError struct {
	Operation string
	Result    Result
}

func (e *ExceededError) Error() string {
	return "rate limit exceeded for " + e.Operation
}

func (e *ExceededError) Unwrap() error {
	return dErrors.New(dErrors.CodeRateLimited, "rate limit exceeded, try again later")
}
