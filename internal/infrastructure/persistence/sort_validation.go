package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the direction to ASC or DESC (the default)
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when whitelisted, otherwise defaultField
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// orderClause builds a whitelisted ORDER BY with the id as a stable tie-breaker
func orderClause(sortField, sortDir string, allowed map[string]bool, defaultField string) string {
	field := ValidateSortField(sortField, allowed, defaultField)
	return field + " " + ValidateSortOrder(sortDir) + ", id ASC"
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"company_name":   true,
	"emails":         true,
	"city":           true,
	"country":        true,
	"postal_code":    true,
	"needs_reminder": true,
}

// ReceivableSortFields contains allowed sort fields for receivables
var ReceivableSortFields = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"invoice_number":   true,
	"amount":           true,
	"due_date":         true,
	"status":           true,
	"reminder_count":   true,
	"last_reminded_at": true,
}
