package cookieAuth

import (
	"fmt"
	"net/http"

	"github.com/MrEthical07/cookieAuth/session"
)

// Authorize checks the attached session's role against the allowed set. The
// denial message names the offending role so operators can read rejections
// straight from client logs.
//
// Authorize may return an error when input validation, dependency calls, or security checks fail.
// Authorize does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Authorize(rec *session.Record, allowed ...Role) error {
	if rec == nil {
		return ErrTokenMissing
	}
	for _, role := range allowed {
		if rec.Role == string(role) {
			return nil
		}
	}
	return &APIError{
		Status:  http.StatusForbidden,
		Message: fmt.Sprintf("Role: %s is not allowed to access this resource", rec.Role),
	}
}

// Authorize describes the authorize operation and its observable behavior.
//
// Authorize may return an error when input validation, dependency calls, or security checks fail.
// Authorize does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Authorize(rec *session.Record, allowed ...Role) error {
	err := Authorize(rec, allowed...)
	if err != nil {
		e.metricInc(MetricRoleDenied)
	}
	return err
}
