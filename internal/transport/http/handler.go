package httptransport

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"adequa/internal/assessment/catalog"
	"adequa/internal/assessment/remediation"
	"adequa/internal/assessment/service"
	"adequa/internal/audit/report"
	"adequa/internal/document"
	"adequa/internal/organization"
	ratelimitmw "adequa/internal/ratelimit/middleware"
	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
	"adequa/pkg/platform/httputil"
	"adequa/pkg/requestcontext"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Service is the assessment surface the handlers delegate to.
type Service interface {
	Catalog(ctx context.Context, orgID id.OrganizationID) (catalog.Catalog, error)
	UpdateProfile(ctx context.Context, orgID id.OrganizationID, u organization.ProfileUpdate) (*organization.Profile, error)
	SaveAnswers(ctx context.Context, orgID id.OrganizationID, req service.SaveAnswersRequest) (*service.SaveAnswersResult, error)
	GetAnswers(ctx context.Context, orgID id.OrganizationID) (*service.AnswersView, error)
	Analysis(ctx context.Context, orgID id.OrganizationID) (*service.Analysis, error)
	ListTasks(ctx context.Context, orgID id.OrganizationID) ([]*remediation.Task, error)
	StartTask(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID) (*remediation.Task, error)
	SubmitTask(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID) (*remediation.Task, error)
	ApproveTask(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID, comment string) (*remediation.Task, error)
	RejectTask(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID, comment string) (*remediation.Task, error)
	ResumeTask(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID) (*remediation.Task, error)
	AttachEvidence(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID, req service.EvidenceRequest) (*remediation.Task, error)
	ValidateDocument(ctx context.Context, req service.EvidenceRequest) document.Result
	SecurityReport(ctx context.Context, start, end time.Time) (*report.Report, error)
}

// Handler is the thin HTTP layer. It decodes requests, delegates to the
// service and encodes the result; no business rules live here.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// New creates a Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the organization and document routes. Callers put them
// behind authentication.
func (h *Handler) Register(r chi.Router) {
	r.Route("/organizations/{orgID}", func(r chi.Router) {
		r.Get("/catalog", h.handleCatalog)
		r.Put("/profile", h.handleUpdateProfile)
		r.Post("/answers", h.handleSaveAnswers)
		r.Get("/answers", h.handleGetAnswers)
		r.Get("/analysis", h.handleAnalysis)
		r.Get("/tasks", h.handleListTasks)
		r.Post("/tasks/{taskID}/start", h.handleStartTask)
		r.Post("/tasks/{taskID}/submit", h.handleSubmitTask)
		r.Post("/tasks/{taskID}/approve", h.handleApproveTask)
		r.Post("/tasks/{taskID}/reject", h.handleRejectTask)
		r.Post("/tasks/{taskID}/resume", h.handleResumeTask)
		r.Post("/tasks/{taskID}/evidence", h.handleAttachEvidence)
	})
	r.Post("/documents/validate", h.handleValidateDocument)
}

// RegisterAdmin mounts the admin-only routes.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/security-report", h.handleSecurityReport)
}

func (h *Handler) orgID(w http.ResponseWriter, r *http.Request) (id.OrganizationID, bool) {
	orgID, err := id.ParseOrganizationID(chi.URLParam(r, "orgID"))
	if err != nil {
		h.writeError(w, r, "invalid organization id", err)
		return id.OrganizationID{}, false
	}
	return orgID, true
}

func (h *Handler) taskID(w http.ResponseWriter, r *http.Request) (id.TaskID, bool) {
	taskID, err := id.ParseTaskID(chi.URLParam(r, "taskID"))
	if err != nil {
		h.writeError(w, r, "invalid task id", err)
		return id.TaskID{}, false
	}
	return taskID, true
}

// decode reads a JSON body into dst, rejecting unknown fields.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, "request body too large", dErrors.New(dErrors.CodeBadRequest, "request body too large"))
			return false
		}
		h.writeError(w, r, "invalid request body", dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

// writeError logs the failure at a level matching its cause and writes the
// JSON error envelope, with rate limit headers on rejections.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"path", r.URL.Path,
		"error", err,
	}
	if de, ok := dErrors.As(err); ok && de.Code != dErrors.CodeInternal {
		h.logger.WarnContext(ctx, msg, attrs...)
	} else {
		h.logger.ErrorContext(ctx, msg, attrs...)
	}
	ratelimitmw.AddExceededHeaders(w, err)
	httputil.WriteError(w, err)
}
