package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeConfirmationRequired is returned when a destructive step needs an explicit confirm flag
	ErrCodeConfirmationRequired = "ERR_CONFIRMATION_REQUIRED"
	ErrCodeUnknownSortColumn    = "ERR_UNKNOWN_SORT_COLUMN"
	ErrCodeEmptySelection       = "ERR_EMPTY_SELECTION"
	ErrCodeBatchTooLarge        = "ERR_BATCH_TOO_LARGE"
	ErrCodeInvalidEmailSettings = "ERR_INVALID_EMAIL_SETTINGS"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeSubscriptionExpired denies mutating routes for lapsed tenants
	ErrCodeSubscriptionExpired = "ERR_SUBSCRIPTION_EXPIRED"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeBodyTooLarge = "ERR_BODY_TOO_LARGE"
)

// Upstream error codes
const (
	// ErrCodeExternalService covers SMTP servers and attachment hosts
	ErrCodeExternalService = "ERR_EXTERNAL_SERVICE"
	ErrCodeUnavailable     = "ERR_SERVICE_UNAVAILABLE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:           http.StatusBadRequest,
	ErrCodeConfirmationRequired: http.StatusConflict,
	ErrCodeUnknownSortColumn:    http.StatusBadRequest,
	ErrCodeEmptySelection:       http.StatusBadRequest,
	ErrCodeBatchTooLarge:        http.StatusBadRequest,
	ErrCodeInvalidEmailSettings: http.StatusUnprocessableEntity,

	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeForbidden:           http.StatusForbidden,
	ErrCodeTokenExpired:        http.StatusUnauthorized,
	ErrCodeTokenInvalid:        http.StatusUnauthorized,
	ErrCodeSubscriptionExpired: http.StatusPaymentRequired,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeBodyTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeExternalService: http.StatusBadGateway,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted ERR_INVALID_* codes are field validation failures (400);
// anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "ERR_INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes whose HTTP code differs
// from the plain ERR_ prefixed form
var LegacyErrorCodeMapping = map[string]string{
	"OPTIMISTIC_LOCK_ERROR":  ErrCodeConcurrencyConflict,
	"CONCURRENCY_CONFLICT":   ErrCodeConcurrencyConflict,
	"EXTERNAL_SERVICE_ERROR": ErrCodeExternalService,
	"VALIDATION_ERROR":       ErrCodeValidation,
	"EMPTY_BATCH":            ErrCodeValidation,
	"INTERNAL_ERROR":         ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the ERR_ form used on
// the wire. Codes already in that form pass through.
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	if code == "" {
		return ErrCodeUnknown
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	return "ERR_" + code
}
