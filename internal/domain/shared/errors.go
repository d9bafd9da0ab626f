package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
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
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict  = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrForbidden            = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrNotDue               = NewDomainError("NOT_DUE", "Recurring template is not due for generation")
	ErrScheduleExhausted    = NewDomainError("SCHEDULE_EXHAUSTED", "Recurring template has passed its end date")
	ErrRateUnavailable      = NewDomainError("RATE_UNAVAILABLE", "Exchange rate is not available")
	ErrRescaleNotComputable = NewDomainError("RESCALE_NOT_COMPUTABLE", "Cannot rescale an invoice with zero gross total")
	ErrExternalService      = NewDomainError("EXTERNAL_SERVICE", "External service request failed")
	ErrExchangeRateRequired = NewDomainError("EXCHANGE_RATE_REQUIRED", "Foreign currency invoice requires an exchange rate")
	ErrTenantInactive       = NewDomainError("TENANT_INACTIVE", "Tenant is inactive")
	ErrContractorBlocked    = NewDomainError("CONTRACTOR_BLOCKED", "Contractor is blocked")
	ErrFleetUnavailable     = NewDomainError("FLEET_UNAVAILABLE", "Fleet resource is not available for assignment")
	ErrInvoiceNotDraft      = NewDomainError("INVOICE_NOT_DRAFT", "Invoice can only be modified in draft status")
	ErrOrderAlreadyInvoiced = NewDomainError("ORDER_ALREADY_INVOICED", "Transport order has already been invoiced")
)
