// Package middleware exposes rate limit state to HTTP clients.
package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"adequa/internal/ratelimit/models"
)

// AddHeaders writes the X-RateLimit-* headers for result.
func AddHeaders(w http.ResponseWriter, result models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

// AddExceededHeaders sets the rate limit and Retry-After headers when err is
// a rate limit rejection. It reports whether it did.
func AddExceededHeaders(w http.ResponseWriter, err error) bool {
	var exceeded *models.ExceededError
	if !errors.As(err, &exceeded) {
		return false
	}
	AddHeaders(w, exceeded.Result)
	w.Header().Set("Retry-After", strconv.Itoa(exceeded.Result.RetryAfterSeconds()))
	return true
}
