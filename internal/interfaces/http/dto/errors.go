package dto

import "net/http"

// Error codes raised by the application services. The wire shape is always
// {"error": "<message>"}; the code only picks the HTTP status.
const (
	// ErrCodeMissingFields is used when a required request field is absent
	ErrCodeMissingFields = "MISSING_FIELDS"
	// ErrCodeUsernameTaken is used when a username collides with another account
	ErrCodeUsernameTaken = "USERNAME_TAKEN"
	// ErrCodeEmailTaken is used when an email is already registered
	ErrCodeEmailTaken = "EMAIL_TAKEN"
	// ErrCodeInvalidCredentials is used when signin fails
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	// ErrCodeUnauthorized is used when a session is required but missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeInternal is used for data-store and other internal failures
	ErrCodeInternal = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes. Everything
// not listed here is a client mistake and maps to 400, which covers the
// domain validation codes (INVALID_USERNAME, INVALID_URL, ...).
var errorCodeHTTPStatus = map[string]int{
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusUnauthorized,
	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeInternal:       http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, 400 by default
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}

// ErrorResponse is the wire shape of every error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error response body
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
