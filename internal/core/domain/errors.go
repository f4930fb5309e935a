package domain

import "errors"

// ErrorCode is the closed taxonomy every API failure is normalised into
// before callers see it.
type ErrorCode string

const (
	CodeNetworkError    ErrorCode = "NETWORK_ERROR"
	CodeTimeoutError    ErrorCode = "TIMEOUT_ERROR"
	CodeConnectionError ErrorCode = "CONNECTION_ERROR"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeServerError     ErrorCode = "SERVER_ERROR"
	CodeUnknownError    ErrorCode = "UNKNOWN_ERROR"
)

// CodeForStatus maps an HTTP status to an error code. It is the fallback
// used when the server did not supply a code of its own.
func CodeForStatus(status int) ErrorCode {
	switch {
	case status == 404:
		return CodeNotFound
	case status == 401:
		return CodeUnauthorized
	case status == 403:
		return CodeForbidden
	case status == 422:
		return CodeValidationError
	case status >= 500:
		return CodeServerError
	default:
		return CodeUnknownError
	}
}

// APIError is the uniform failure shape produced by the HTTP adapter and the
// resource service. Status is the HTTP status when the server responded and
// zero for transport or local failures. Fields carries a server-supplied
// field→message validation map when present.
type APIError struct {
	Code    ErrorCode
	Message string
	Status  int
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// NewAPIError builds a local APIError without an HTTP status.
func NewAPIError(code ErrorCode, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// IsNotFound reports whether err is classified as a missing resource, either
// by code or by HTTP status.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == CodeNotFound || apiErr.Status == 404
	}
	return false
}

// ErrorMessage extracts a human-readable message from err, preferring a
// server-supplied one and falling back to the given default.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// ErrorBody is the inner object of the wire error envelope.
type ErrorBody struct {
	Code    ErrorCode         `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ErrorEnvelope is the JSON error shape shared by the API contract: any
// non-2xx response carries {error: {code, message, errors?}, status?}.
type ErrorEnvelope struct {
	Error  ErrorBody `json:"error"`
	Status int       `json:"status,omitempty"`
}
