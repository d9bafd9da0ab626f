package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// ContractorStatus represents the status of a contractor
type ContractorStatus string

const (
	ContractorStatusActive  ContractorStatus = "ACTIVE"
	ContractorStatusBlocked ContractorStatus = "BLOCKED" // Blocked due to payment or compliance issues
)

// ContractorKind represents the commercial role of a contractor
type ContractorKind string

const (
	ContractorKindClient  ContractorKind = "CLIENT"  // Orders transports from us
	ContractorKindCarrier ContractorKind = "CARRIER" // Executes transports for us
	ContractorKindBoth    ContractorKind = "BOTH"
)

// IsValid checks if the kind is valid
func (k ContractorKind) IsValid() bool {
	switch k {
	case ContractorKindClient, ContractorKindCarrier, ContractorKindBoth:
		return true
	}
	return false
}

// Contractor represents a business partner in the partner context: a
// client ordering transports, a subcontracted carrier, or both.
// It is the aggregate root for contractor-related operations
type Contractor struct {
	shared.TenantAggregateRoot
	Code            string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_contractor_tenant_code,priority:2"`
	Name            string               `gorm:"type:varchar(200);not null"`
	Kind            ContractorKind       `gorm:"type:varchar(20);not null;default:'CLIENT'"`
	NIP             valueobject.NIP      `gorm:"type:varchar(10);not null;index"`
	REGON           string               `gorm:"type:varchar(14)"`
	Address         valueobject.Address  `gorm:"type:jsonb"`
	Email           string               `gorm:"type:varchar(200);index"`
	Phone           string               `gorm:"type:varchar(50)"`
	PaymentTermDays int                  `gorm:"not null;default:30"`
	DefaultCurrency valueobject.Currency `gorm:"type:varchar(3);not null;default:'PLN'"`
	Status          ContractorStatus     `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Notes           string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Contractor) TableName() string {
	return "contractors"
}

// DefaultPaymentTermDays is applied when no term is negotiated
const DefaultPaymentTermDays = 30

// NewContractor creates a new contractor with required fields
func NewContractor(tenantID uuid.UUID, code, name string, kind ContractorKind, nip valueobject.NIP) (*Contractor, error) {
	if err := validateContractorCode(code); err != nil {
		return nil, err
	}
	if err := validateContractorName(name); err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Contractor kind must be CLIENT, CARRIER or BOTH")
	}
	if nip.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_NIP", "NIP is required")
	}

	contractor := &Contractor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Kind:                kind,
		NIP:                 nip,
		PaymentTermDays:     DefaultPaymentTermDays,
		DefaultCurrency:     valueobject.PLN,
		Status:              ContractorStatusActive,
	}

	contractor.AddDomainEvent(NewContractorCreatedEvent(contractor))

	return contractor, nil
}

// Update updates the contractor's basic information
func (c *Contractor) Update(name string, kind ContractorKind) error {
	if err := validateContractorName(name); err != nil {
		return err
	}
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_KIND", "Contractor kind must be CLIENT, CARRIER or BOTH")
	}

	c.Name = name
	c.Kind = kind
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContractorUpdatedEvent(c))

	return nil
}

// SetContact sets the contractor's contact information
func (c *Contractor) SetContact(email, phone string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	c.Email = email
	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetAddress sets the contractor's registered address
func (c *Contractor) SetAddress(address valueobject.Address) error {
	if address.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}

	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetREGON sets the statistical registry number
func (c *Contractor) SetREGON(regon string) error {
	if regon != "" && !regonPattern.MatchString(regon) {
		return shared.NewDomainError("INVALID_REGON", "REGON must be 9 or 14 digits")
	}

	c.REGON = regon
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetPaymentTerm sets the negotiated payment term in days
func (c *Contractor) SetPaymentTerm(days int) error {
	if days < 0 {
		return shared.NewDomainError("INVALID_PAYMENT_TERM", "Payment term cannot be negative")
	}
	if days > 365 {
		return shared.NewDomainError("INVALID_PAYMENT_TERM", "Payment term cannot exceed 365 days")
	}

	c.PaymentTermDays = days
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetDefaultCurrency sets the currency proposed on new orders and invoices
func (c *Contractor) SetDefaultCurrency(currency valueobject.Currency) error {
	if !currency.IsValid() {
		return shared.NewDomainError("INVALID_CURRENCY", "Invalid currency: "+string(currency))
	}

	c.DefaultCurrency = currency
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the contractor's notes
func (c *Contractor) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// FillFromGUS applies a company record looked up in the state registry.
// Only identification fields are touched; commercial terms stay as set.
func (c *Contractor) FillFromGUS(name, regon string, address valueobject.Address) error {
	if name != "" {
		if err := validateContractorName(name); err != nil {
			return err
		}
		c.Name = name
	}
	if regon != "" {
		if !regonPattern.MatchString(regon) {
			return shared.NewDomainError("INVALID_REGON", "REGON must be 9 or 14 digits")
		}
		c.REGON = regon
	}
	if !address.IsEmpty() {
		c.Address = address
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContractorUpdatedEvent(c))

	return nil
}

// Block blocks the contractor from new orders and invoices
func (c *Contractor) Block() error {
	if c.Status == ContractorStatusBlocked {
		return shared.NewDomainError("ALREADY_BLOCKED", "Contractor is already blocked")
	}

	oldStatus := c.Status
	c.Status = ContractorStatusBlocked
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContractorStatusChangedEvent(c, oldStatus, ContractorStatusBlocked))

	return nil
}

// Activate reactivates a blocked contractor
func (c *Contractor) Activate() error {
	if c.Status == ContractorStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Contractor is already active")
	}

	oldStatus := c.Status
	c.Status = ContractorStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContractorStatusChangedEvent(c, oldStatus, ContractorStatusActive))

	return nil
}

// IsActive returns true if the contractor is active
func (c *Contractor) IsActive() bool {
	return c.Status == ContractorStatusActive
}

// IsBlocked returns true if the contractor is blocked
func (c *Contractor) IsBlocked() bool {
	return c.Status == ContractorStatusBlocked
}

// CanActAsClient returns true if transport orders may name this
// contractor as the ordering party
func (c *Contractor) CanActAsClient() bool {
	return c.Kind == ContractorKindClient || c.Kind == ContractorKindBoth
}

// CanActAsCarrier returns true if transports may be subcontracted to
// this contractor
func (c *Contractor) CanActAsCarrier() bool {
	return c.Kind == ContractorKindCarrier || c.Kind == ContractorKindBoth
}

// CanBeDeleted returns true when removal is allowed. Active contractors
// must be blocked first so accidental deletes are two-step.
func (c *Contractor) CanBeDeleted() bool {
	return c.Status == ContractorStatusBlocked
}

// Validation functions

var regonPattern = regexp.MustCompile(`^(\d{9}|\d{14})$`)

func validateContractorCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Contractor code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Contractor code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Contractor code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateContractorName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Contractor name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Contractor name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
