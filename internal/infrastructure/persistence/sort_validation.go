package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"first_name":    true,
	"last_name":     true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// CompanySortFields contains allowed sort fields for companies
var CompanySortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"legal_name":          true,
	"trading_name":        true,
	"registration_number": true,
	"type":                true,
	"sic_code":            true,
	"incorporated_on":     true,
	"status":              true,
}

// LeadSortFields contains allowed sort fields for leads
var LeadSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"source":           true,
	"contact_name":     true,
	"contact_email":    true,
	"company_name":     true,
	"requested_amount": true,
	"status":           true,
	"converted_at":     true,
}

// AssignmentSortFields contains allowed sort fields for partner assignments
var AssignmentSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"assigned_at": true,
	"status":      true,
	"revoked_at":  true,
}

// ApplicationSortFields contains allowed sort fields for funding applications
var ApplicationSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"amount":       true,
	"purpose":      true,
	"term_months":  true,
	"stage":        true,
	"submitted_at": true,
	"decided_at":   true,
}

// LenderSortFields contains allowed sort fields for lenders
var LenderSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"name":               true,
	"active":             true,
	"min_amount":         true,
	"max_amount":         true,
	"min_months_trading": true,
}

// DocumentSortFields contains allowed sort fields for documents
var DocumentSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"filename":    true,
	"kind":        true,
	"status":      true,
	"size":        true,
	"uploaded_at": true,
}

// InviteSortFields contains allowed sort fields for invites
var InviteSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"email":       true,
	"role":        true,
	"expires_at":  true,
	"accepted_at": true,
}
