package httptransport

import (
	"net/http"
	"time"

	dErrors "adequa/pkg/domain-errors"
	"adequa/pkg/platform/httputil"
	"adequa/pkg/requestcontext"
)

// defaultReportWindow is used when the caller omits start.
const defaultReportWindow = 24 * time.Hour

// handleSecurityReport serves the audit analysis for [start, end). Both bounds
// are RFC 3339; end defaults to now and start to one day before end.
func (h *Handler) handleSecurityReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := reportWindow(r, requestcontext.Now(r.Context()))
	if err != nil {
		h.writeError(w, r, "invalid report window", err)
		return
	}
	rep, err := h.svc.SecurityReport(r.Context(), start, end)
	if err != nil {
		h.writeError(w, r, "failed to generate security report", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rep)
}

func reportWindow(r *http.Request, now time.Time) (time.Time, time.Time, error) {
	q := r.URL.Query()
	end := now
	if v := q.Get("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, dErrors.New(dErrors.CodeValidation, "end must be an RFC 3339 timestamp")
		}
		end = t
	}
	start := end.Add(-defaultReportWindow)
	if v := q.Get("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, dErrors.New(dErrors.CodeValidation, "start must be an RFC 3339 timestamp")
		}
		start = t
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, dErrors.New(dErrors.CodeValidation, "start must be before end")
	}
	return start, end, nil
}
