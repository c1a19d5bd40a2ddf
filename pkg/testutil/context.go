package testutil

import (
	"net/http"

	id "adequa/pkg/domain"
	"adequa/pkg/requestcontext"
)

// WithActor adds the authenticated actor and role to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithActor(req *http.Request, actor id.UserID, role string) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), actor, role))
}
