package services

import "net/http"

// Error taxonomy surfaced through the JSON error envelope.
const (
	CodeFieldRequired      = "FIELD_REQUIRED"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNoToken            = "NO_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidAction      = "INVALID_ACTION"
	CodeInvalidRole        = "INVALID_ROLE"
	CodeAlreadyEnrolled    = "ALREADY_ENROLLED"
	CodeNotEnrolled        = "NOT_ENROLLED"
	CodeAlreadyApplied     = "CREATOR_ALREADY_APPLIED"
	CodeNotApprovedCreator = "NOT_APPROVED_CREATOR"
	CodeRateLimit          = "RATE_LIMIT"
	CodeServerError        = "SERVER_ERROR"
)

// APIError is a domain failure with enough context for the HTTP boundary:
// status code, taxonomy code and the offending field (may be empty).
type APIError struct {
	Status  int
	Code    string
	Field   string
	Message string
}

func (e *APIError) Error() string { return e.Message }

func badRequest(code, field, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Field: field, Message: message}
}

func notFound(field, message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Field: field, Message: message}
}

// notFoundCode is for the 404s whose taxonomy code is not NOT_FOUND
// (NOT_ENROLLED in particular).
func notFoundCode(code, field, message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: code, Field: field, Message: message}
}

func forbidden(code, message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Code: code, Message: message}
}

func serverError(err error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: CodeServerError, Message: err.Error()}
}
