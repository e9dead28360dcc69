package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	// ErrCodeTooManyRequests is an alias for rate limiting
	ErrCodeTooManyRequests = "ERR_TOO_MANY_REQUESTS"
)

// Upstream dependency error codes
const (
	// ErrCodeUpstreamUnavailable is used when a dependency (e.g. the company
	// registry) cannot be reached
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,

	// Upstream dependencies -> 502 Bad Gateway
	ErrCodeUpstreamUnavailable: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to the standardized
// transport codes. Codes not listed here are classified by shape in
// NormalizeErrorCode.
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"INVALID_STATE":         ErrCodeInvalidState,
	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"FORBIDDEN":             ErrCodeForbidden,
	"VALIDATION_ERROR":      ErrCodeValidation,
	"VALIDATION_ERRORS":     ErrCodeValidation,
	"BAD_REQUEST":           ErrCodeBadRequest,
	"INTERNAL_ERROR":        ErrCodeInternal,
	"CONCURRENCY_CONFLICT":  ErrCodeConcurrencyConflict,
	"OPTIMISTIC_LOCK_ERROR": ErrCodeConcurrencyConflict,

	// Authentication and session codes
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"ACCOUNT_LOCKED":      ErrCodeForbidden,
	"ACCOUNT_SUSPENDED":   ErrCodeForbidden,
	"ACCOUNT_INACTIVE":    ErrCodeForbidden,
	"ACCOUNT_PENDING":     ErrCodeForbidden,
	"TOKEN_EXPIRED":       ErrCodeTokenExpired,
	"TOKEN_INVALID":       ErrCodeTokenInvalid,
	"TOKEN_REVOKED":       ErrCodeTokenInvalid,
	"TOKEN_MAX_REFRESH":   ErrCodeTokenInvalid,

	// Invite and reset lifecycle
	"INVITE_EXPIRED":          ErrCodeInvalidState,
	"INVITE_ALREADY_ACCEPTED": ErrCodeInvalidState,
	"INVITE_PENDING":          ErrCodeConflict,
	"RESET_EXPIRED":           ErrCodeInvalidState,
	"RESET_ALREADY_USED":      ErrCodeInvalidState,
	"EMAIL_EXISTS":            ErrCodeAlreadyExists,

	// Company and partner book
	"REGISTRATION_NUMBER_EXISTS": ErrCodeAlreadyExists,
	"COMPANY_ARCHIVED":           ErrCodeInvalidState,
	"ASSIGNMENT_EXISTS":          ErrCodeAlreadyExists,
	"NOT_A_PARTNER":              ErrCodeInvalidInput,

	// Funding pipeline
	"INVALID_TRANSITION":      ErrCodeInvalidState,
	"NOT_DRAFT":               ErrCodeInvalidState,
	"DECLINE_REASON_REQUIRED": ErrCodeInvalidInput,
	"STEP_NOT_REACHED":        ErrCodeInvalidState,
	"ALREADY_COMPLETED":       ErrCodeInvalidState,
	"ALREADY_CONVERTED":       ErrCodeInvalidState,
	"LEAD_CLOSED":             ErrCodeInvalidState,

	// Documents
	"FILE_TOO_LARGE":           ErrCodeInvalidInput,
	"DISALLOWED_CONTENT_TYPE":  ErrCodeInvalidInput,
	"UNSUPPORTED_CONTENT_TYPE": ErrCodeInvalidInput,
	"DOCUMENT_DELETED":         ErrCodeInvalidState,
	"DOCUMENT_NOT_UPLOADED":    ErrCodeInvalidState,
	"DOCUMENT_LIMIT":           ErrCodeBusinessRule,

	// Company registry proxy
	"REGISTRY_NOT_FOUND":    ErrCodeNotFound,
	"REGISTRY_UNAVAILABLE":  ErrCodeUpstreamUnavailable,
	"REGISTRY_RATE_LIMITED": ErrCodeRateLimited,
}

// NormalizeErrorCode converts a domain error code to the standardized
// transport format. Unmapped codes are classified by their shape:
// *_NOT_FOUND maps to not found, ALREADY_* and *_EXISTS to conflict,
// INVALID_* and NO_* to invalid input. Codes already in the ERR_ format
// pass through unchanged.
func NormalizeErrorCode(code string) string {
	if newCode, ok := domainErrorCodeMapping[code]; ok {
		return newCode
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return ErrCodeNotFound
	case strings.HasPrefix(code, "ALREADY_"), strings.HasSuffix(code, "_EXISTS"):
		return ErrCodeConflict
	case strings.HasPrefix(code, "CANNOT_"), strings.HasPrefix(code, "HAS_"):
		return ErrCodeInvalidState
	case strings.HasPrefix(code, "INVALID_"), strings.HasPrefix(code, "NO_"):
		return ErrCodeInvalidInput
	}
	return code
}
