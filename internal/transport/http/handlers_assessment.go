package httptransport

import (
	"net/http"

	"adequa/internal/assessment/answerset"
	"adequa/internal/assessment/catalog"
	"adequa/internal/assessment/service"
	"adequa/internal/organization"
	id "adequa/pkg/domain"
	"adequa/pkg/platform/httputil"
)

type catalogResponse struct {
	OrganizationID id.OrganizationID `json:"organization_id"`
	Total          int               `json:"total"`
	Questions      catalog.Catalog   `json:"questions"`
}

type answersResponse struct {
	AnswerSet *answerset.AnswerSet `json:"answer_set"`
	Catalog   catalog.Catalog      `json:"catalog"`
	Answers   []any                `json:"answers"`
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.Catalog(r.Context(), orgID)
	if err != nil {
		h.writeError(w, r, "failed to load catalog", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, catalogResponse{OrganizationID: orgID, Total: c.Len(), Questions: c})
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	var req organization.ProfileUpdate
	if !h.decode(w, r, &req) {
		return
	}
	profile, err := h.svc.UpdateProfile(r.Context(), orgID, req)
	if err != nil {
		h.writeError(w, r, "failed to update profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleSaveAnswers(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	var req service.SaveAnswersRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.SaveAnswers(r.Context(), orgID, req)
	if err != nil {
		h.writeError(w, r, "failed to save answers", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleGetAnswers(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	view, err := h.svc.GetAnswers(r.Context(), orgID)
	if err != nil {
		h.writeError(w, r, "failed to load answers", err)
		return
	}
	raw := make([]any, len(view.Answers))
	for i, a := range view.Answers {
		raw[i] = a.Raw()
	}
	httputil.WriteJSON(w, http.StatusOK, answersResponse{AnswerSet: view.AnswerSet, Catalog: view.Catalog, Answers: raw})
}

func (h *Handler) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.orgID(w, r)
	if !ok {
		return
	}
	analysis, err := h.svc.Analysis(r.Context(), orgID)
	if err != nil {
		h.writeError(w, r, "failed to analyse answers", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, analysis)
}
