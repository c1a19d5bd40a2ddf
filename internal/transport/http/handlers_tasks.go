package httptransport

import (
	"context"
	"net/http"

	"adequa/internal/assessment/remediation"
	"adequa/internal/assessment/service"
	id "adequa/pkg/domain"
	"adequa/pkg/platform/httputil"
)

type tasksResponse struct {
	Tasks []*remediation.Task `json:"tasks"`
	Total int                 `json:"total"`
}

type reviewRequest struct {
	Comment string `json:"comment"`
}

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	tasks, err := h.svc.ListTasks(r.Context(), orgID)
	if err != nil {
		h.writeError(w, r, "failed to list tasks", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tasksResponse{Tasks: tasks, Total: len(tasks)})
}

type taskTransition func(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID) (*remediation.Task, error)

// transition serves the body-less lifecycle routes.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request, do taskTransition) {
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	taskID, ok := h.taskID(w, r)
	if !ok {
		return
	}
	task, err := do(r.Context(), orgID, taskID)
	if err != nil {
		h.writeError(w, r, "task transition failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, task)
}

func (h *Handler) handleStartTask(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.StartTask)
}

func (h *Handler) handleSubmitTask(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.SubmitTask)
}

func (h *Handler) handleResumeTask(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.ResumeTask)
}

func (h *Handler) handleApproveTask(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.svc.ApproveTask)
}

func (h *Handler) handleRejectTask(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.svc.RejectTask)
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request,
	do func(ctx context.Context, orgID id.OrganizationID, taskID id.TaskID, comment string) (*remediation.Task, error),
) {
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	taskID, ok := h.taskID(w, r)
	if !ok {
		return
	}
	var req reviewRequest
	if !h.decode(w, r, &req) {
		return
	}
	task, err := do(r.Context(), orgID, taskID, req.Comment)
	if err != nil {
		h.writeError(w, r, "task review failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, task)
}

func (h *Handler) handleAttachEvidence(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	taskID, ok := h.taskID(w, r)
	if !ok {
		return
	}
	var req service.EvidenceRequest
	if !h.decode(w, r, &req) {
		return
	}
	task, err := h.svc.AttachEvidence(r.Context(), orgID, taskID, req)
	if err != nil {
		h.writeError(w, r, "failed to attach evidence", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, task)
}

// handleValidateDocument always answers 200; validity is in the body.
func (h *Handler) handleValidateDocument(w http.ResponseWriter, r *http.Request) {
	var req service.EvidenceRequest
	if !h.decode(w, r, &req) {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.svc.ValidateDocument(r.Context(), req))
}
