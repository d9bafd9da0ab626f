package event

import (
	"github.com/translog/backend/internal/domain/fleet"
	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/order"
	"github.com/translog/backend/internal/domain/partner"
	"github.com/translog/backend/internal/domain/recurring"
	"github.com/translog/backend/internal/domain/tenant"
)

// RegisterAllEvents registers all domain event types with the serializer
// This is required for the OutboxProcessor to deserialize events from the outbox table
func RegisterAllEvents(serializer *EventSerializer) {
	// Tenant events
	serializer.Register(tenant.EventTypeTenantCreated, &tenant.TenantCreatedEvent{})
	serializer.Register(tenant.EventTypeTenantUpdated, &tenant.TenantUpdatedEvent{})
	serializer.Register(tenant.EventTypeTenantStatusChanged, &tenant.TenantStatusChangedEvent{})

	// Contractor events
	serializer.Register(partner.EventTypeContractorCreated, &partner.ContractorCreatedEvent{})
	serializer.Register(partner.EventTypeContractorUpdated, &partner.ContractorUpdatedEvent{})
	serializer.Register(partner.EventTypeContractorStatusChanged, &partner.ContractorStatusChangedEvent{})
	serializer.Register(partner.EventTypeContractorDeleted, &partner.ContractorDeletedEvent{})

	// Fleet events
	serializer.Register(fleet.EventTypeVehicleCreated, &fleet.VehicleCreatedEvent{})
	serializer.Register(fleet.EventTypeVehicleStatusChanged, &fleet.VehicleStatusChangedEvent{})
	serializer.Register(fleet.EventTypeTrailerCreated, &fleet.TrailerCreatedEvent{})
	serializer.Register(fleet.EventTypeTrailerStatusChanged, &fleet.TrailerStatusChangedEvent{})
	serializer.Register(fleet.EventTypeDriverCreated, &fleet.DriverCreatedEvent{})
	serializer.Register(fleet.EventTypeDriverStatusChanged, &fleet.DriverStatusChangedEvent{})

	// Transport order events
	serializer.Register(order.EventTypeTransportOrderCreated, &order.TransportOrderCreatedEvent{})
	serializer.Register(order.EventTypeTransportOrderPlanned, &order.TransportOrderPlannedEvent{})
	serializer.Register(order.EventTypeTransportOrderFleetAssigned, &order.TransportOrderFleetAssignedEvent{})
	serializer.Register(order.EventTypeTransportOrderDispatched, &order.TransportOrderDispatchedEvent{})
	serializer.Register(order.EventTypeTransportOrderCompleted, &order.TransportOrderCompletedEvent{})
	serializer.Register(order.EventTypeTransportOrderInvoiced, &order.TransportOrderInvoicedEvent{})
	serializer.Register(order.EventTypeTransportOrderCancelled, &order.TransportOrderCancelledEvent{})

	// Recurring template events
	serializer.Register(recurring.EventTypeTemplateCreated, &recurring.TemplateCreatedEvent{})
	serializer.Register(recurring.EventTypeTemplateUpdated, &recurring.TemplateUpdatedEvent{})
	serializer.Register(recurring.EventTypeTemplateStatusChanged, &recurring.TemplateStatusChangedEvent{})
	serializer.Register(recurring.EventTypeOrderGenerated, &recurring.OrderGeneratedEvent{})

	// Invoice events
	serializer.Register(invoicing.EventTypeInvoiceCreated, &invoicing.InvoiceCreatedEvent{})
	serializer.Register(invoicing.EventTypeInvoiceIssued, &invoicing.InvoiceIssuedEvent{})
	serializer.Register(invoicing.EventTypeInvoicePaid, &invoicing.InvoicePaidEvent{})
	serializer.Register(invoicing.EventTypeInvoiceCancelled, &invoicing.InvoiceCancelledEvent{})
	serializer.Register(invoicing.EventTypeInvoiceSubmittedToKSeF, &invoicing.InvoiceSubmittedToKSeFEvent{})
}
