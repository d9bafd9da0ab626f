package partner

import (
	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeContractor = "Contractor"

// Event type constants
const (
	EventTypeContractorCreated       = "ContractorCreated"
	EventTypeContractorUpdated       = "ContractorUpdated"
	EventTypeContractorStatusChanged = "ContractorStatusChanged"
	EventTypeContractorDeleted       = "ContractorDeleted"
)

// ContractorCreatedEvent is published when a new contractor is created
type ContractorCreatedEvent struct {
	shared.BaseDomainEvent
	ContractorID uuid.UUID      `json:"contractor_id"`
	Code         string         `json:"code"`
	Name         string         `json:"name"`
	Kind         ContractorKind `json:"kind"`
	NIP          string         `json:"nip"`
}

// NewContractorCreatedEvent creates a new ContractorCreatedEvent
func NewContractorCreatedEvent(contractor *Contractor) *ContractorCreatedEvent {
	return &ContractorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractorCreated, AggregateTypeContractor, contractor.ID, contractor.TenantID),
		ContractorID:    contractor.ID,
		Code:            contractor.Code,
		Name:            contractor.Name,
		Kind:            contractor.Kind,
		NIP:             contractor.NIP.String(),
	}
}

// ContractorUpdatedEvent is published when a contractor is updated
type ContractorUpdatedEvent struct {
	shared.BaseDomainEvent
	ContractorID uuid.UUID      `json:"contractor_id"`
	Code         string         `json:"code"`
	Name         string         `json:"name"`
	Kind         ContractorKind `json:"kind"`
}

// NewContractorUpdatedEvent creates a new ContractorUpdatedEvent
func NewContractorUpdatedEvent(contractor *Contractor) *ContractorUpdatedEvent {
	return &ContractorUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractorUpdated, AggregateTypeContractor, contractor.ID, contractor.TenantID),
		ContractorID:    contractor.ID,
		Code:            contractor.Code,
		Name:            contractor.Name,
		Kind:            contractor.Kind,
	}
}

// ContractorStatusChangedEvent is published when a contractor's status changes
type ContractorStatusChangedEvent struct {
	shared.BaseDomainEvent
	ContractorID uuid.UUID        `json:"contractor_id"`
	Code         string           `json:"code"`
	OldStatus    ContractorStatus `json:"old_status"`
	NewStatus    ContractorStatus `json:"new_status"`
}

// NewContractorStatusChangedEvent creates a new ContractorStatusChangedEvent
func NewContractorStatusChangedEvent(contractor *Contractor, oldStatus, newStatus ContractorStatus) *ContractorStatusChangedEvent {
	return &ContractorStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractorStatusChanged, AggregateTypeContractor, contractor.ID, contractor.TenantID),
		ContractorID:    contractor.ID,
		Code:            contractor.Code,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// ContractorDeletedEvent is published when a contractor is deleted
type ContractorDeletedEvent struct {
	shared.BaseDomainEvent
	ContractorID uuid.UUID `json:"contractor_id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
}

// NewContractorDeletedEvent creates a new ContractorDeletedEvent
func NewContractorDeletedEvent(contractor *Contractor) *ContractorDeletedEvent {
	return &ContractorDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractorDeleted, AggregateTypeContractor, contractor.ID, contractor.TenantID),
		ContractorID:    contractor.ID,
		Code:            contractor.Code,
		Name:            contractor.Name,
	}
}
