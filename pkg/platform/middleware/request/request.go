package request

import (
	"net/http"

	"github.com/google/uuid"

	"adequa/pkg/requestcontext"
)

const headerRequestID = "X-Request-ID"

// RequestID propagates the caller's X-Request-ID or mints a new one, and echoes
// it on the response for correlation with audit records.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(headerRequestID, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
