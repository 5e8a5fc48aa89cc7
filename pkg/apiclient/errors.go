package apiclient

import "errors"

var (
	// ErrUnauthorized indicates a 401 response: the bearer token is missing,
	// invalid, or expired. Callers are expected to clear the session.
	ErrUnauthorized = errors.New("apiclient: unauthorized")

	// ErrNotFound indicates a 404 response.
	ErrNotFound = errors.New("apiclient: not found")

	// ErrServerError indicates a 5xx response or a response body that could
	// not be decoded.
	ErrServerError = errors.New("apiclient: server error")

	// ErrNetworkUnavailable indicates a connectivity failure or timeout
	// before a response was received.
	ErrNetworkUnavailable = errors.New("apiclient: network unavailable")
)

// ValidationError is an input-rule violation. It is produced locally before
// any network call (auth flows, profile mutation builder) or mapped from a
// 4xx response that carries a message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a user-facing message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
