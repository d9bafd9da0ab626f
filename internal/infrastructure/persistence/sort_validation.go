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

// Common allowed sort fields for entities with base fields
// These are the common fields present in most entities

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"nip":        true,
	"status":     true,
}

// ContractorSortFields contains allowed sort fields for contractors
var ContractorSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"code":              true,
	"name":              true,
	"nip":               true,
	"kind":              true,
	"status":            true,
	"payment_term_days": true,
	"default_currency":  true,
}

// VehicleSortFields contains allowed sort fields for vehicles
var VehicleSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"registration_number": true,
	"brand":               true,
	"model":               true,
	"kind":                true,
	"capacity_kg":         true,
	"inspection_expiry":   true,
	"insurance_expiry":    true,
	"status":              true,
}

// TrailerSortFields contains allowed sort fields for trailers
var TrailerSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"registration_number": true,
	"kind":                true,
	"capacity_kg":         true,
	"inspection_expiry":   true,
	"insurance_expiry":    true,
	"status":              true,
}

// DriverSortFields contains allowed sort fields for drivers
var DriverSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"first_name":     true,
	"last_name":      true,
	"license_expiry": true,
	"status":         true,
}

// TransportOrderSortFields contains allowed sort fields for transport orders
var TransportOrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"order_number":   true,
	"contractor_id":  true,
	"status":         true,
	"loading_date":   true,
	"unloading_date": true,
	"price_net":      true,
	"currency":       true,
	"planned_at":     true,
	"dispatched_at":  true,
	"completed_at":   true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"invoice_number":  true,
	"buyer_name":      true,
	"status":          true,
	"issue_date":      true,
	"due_date":        true,
	"sale_date":       true,
	"currency":        true,
	"total_net":       true,
	"total_gross":     true,
	"total_gross_pln": true,
	"ksef_status":     true,
	"paid_at":         true,
}

// TemplateSortFields contains allowed sort fields for recurring templates
var TemplateSortFields = map[string]bool{
	"id":                   true,
	"created_at":           true,
	"updated_at":           true,
	"name":                 true,
	"frequency":            true,
	"is_active":            true,
	"start_date":           true,
	"next_generation_date": true,
	"last_generated_at":    true,
	"generated_count":      true,
}
