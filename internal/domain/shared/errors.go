package shared

import "errors"

// DomainError represents a domain-level error.
// Details carries extra machine-readable context (e.g. a count the caller
// has to confirm) and is rendered into the HTTP error envelope.
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on the error code so sentinel comparisons survive WithDetails copies.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithDetails returns a copy of the error with the given details attached
func (e *DomainError) WithDetails(details map[string]any) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Authentication required")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// ErrConfirmationRequired is returned by destructive flows that were not explicitly confirmed.
	ErrConfirmationRequired = NewDomainError("CONFIRMATION_REQUIRED", "This action must be confirmed")
	// ErrSubscriptionExpired denies mutating actions for tenants without an active subscription.
	ErrSubscriptionExpired = NewDomainError("SUBSCRIPTION_EXPIRED", "Your subscription has expired")
	// ErrExternalService wraps failures of collaborators outside the service (SMTP, attachment hosts).
	ErrExternalService = NewDomainError("EXTERNAL_SERVICE_ERROR", "External service request failed")
)
