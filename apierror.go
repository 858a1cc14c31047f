package cookieAuth

import (
	"encoding/json"
	"errors"
	"net/http"
)

// APIError is the normalized transport-facing form of any engine failure: an
// HTTP status plus a client-safe message. Internal failures collapse to a
// generic 500 so dependency details never leak to clients.
//
// APIError instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIError struct {
	Status  int
	Message string
}

// Error describes the error operation and its observable behavior.
func (e *APIError) Error() string {
	return e.Message
}

// Normalize maps an engine error onto its APIError. Every failure an engine
// operation can return has a stable status and message; anything unrecognized
// is treated as an internal fault.
//
// Normalize does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Normalize(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	// Match against sentinels and respond with the sentinel's own message, so
	// wrapping detail added along the way never reaches the client.
	for _, mapping := range []struct {
		sentinel error
		status   int
	}{
		{ErrInvalidUserID, http.StatusBadRequest},
		{ErrAccountExists, http.StatusBadRequest},
		{ErrAccountInvalid, http.StatusBadRequest},
		{ErrTokenMissing, http.StatusBadRequest},
		{ErrSessionNotFound, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusBadRequest},
		{ErrTokenInvalid, http.StatusUnauthorized},
		{ErrSessionExpired, http.StatusUnauthorized},
		{ErrPermissionDenied, http.StatusForbidden},
		{ErrRouteNotFound, http.StatusNotFound},
		{ErrLoginRateLimited, http.StatusTooManyRequests},
	} {
		if errors.Is(err, mapping.sentinel) {
			return &APIError{Status: mapping.status, Message: mapping.sentinel.Error()}
		}
	}

	return &APIError{Status: http.StatusInternalServerError, Message: "Internal server error"}
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteError normalizes err and writes the standard failure envelope.
//
// WriteError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := Normalize(err)
	if apiErr == nil {
		apiErr = &APIError{Status: http.StatusInternalServerError, Message: "Internal server error"}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: false, Error: apiErr.Message})
}

// WriteSuccess writes the standard success envelope with the given extra
// fields merged in beside the success flag.
//
// WriteSuccess does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func WriteSuccess(w http.ResponseWriter, status int, fields map[string]any) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
