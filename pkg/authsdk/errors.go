package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes carried in the "error" field of every failure body.
const (
	ErrorCodeBadRequest         = "bad_request"
	ErrorCodeConflict           = "conflict"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeServerError        = "server_error"
	ErrorCodeNotFound           = "not_found"
)

// APIError is the closed set of failures the gateway reports. It is used by
// the server to write responses and by the client to represent them.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine readable error code (e.g. "conflict")
	Code string `json:"error"`

	// Message is always safe to show to the caller
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on status and code so that a client-side error decoded from a
// response satisfies errors.Is against the predefined values.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code
}

// WithMessage returns a copy of e carrying a different message.
func (e *APIError) WithMessage(msg string) *APIError {
	return &APIError{StatusCode: e.StatusCode, Code: e.Code, Message: msg}
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(MessageResponse{Error: e.Code, Message: e.Message})
}

var (
	// ErrBadRequest is returned when a required field is missing or the body
	// cannot be decoded.
	ErrBadRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeBadRequest,
		Message:    "Missing required fields",
	}

	// ErrConflict is returned when registering an email that already exists.
	ErrConflict = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeConflict,
		Message:    "A user with this email is already registered!",
	}

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers cannot tell the two apart.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "Invalid email or password!",
	}

	// ErrUnauthorized is returned when the bearer token is missing, malformed,
	// forged or expired.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "Unauthorized: missing or invalid token",
	}

	// ErrForbidden is returned when the verified identity lacks the route's role.
	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Message:    "Forbidden: insufficient role",
	}

	// ErrInternal never carries the underlying cause.
	ErrInternal = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "Server error",
	}

	ErrRouteNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "Route not found",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var msg MessageResponse
	if err := json.Unmarshal(body, &msg); err == nil && msg.Message != "" {
		code := msg.Error
		if code == "" {
			code = codeForStatus(resp.StatusCode)
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       code,
			Message:    msg.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       codeForStatus(resp.StatusCode),
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrorCodeBadRequest
	case http.StatusUnauthorized:
		return ErrorCodeUnauthorized
	case http.StatusForbidden:
		return ErrorCodeForbidden
	case http.StatusNotFound:
		return ErrorCodeNotFound
	case http.StatusConflict:
		return ErrorCodeConflict
	default:
		return ErrorCodeServerError
	}
}
