package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/fleet"
	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/order"
	"github.com/translog/backend/internal/domain/partner"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// OrderService handles transport order business operations
type OrderService struct {
	orderRepo      order.TransportOrderRepository
	contractorRepo partner.ContractorRepository
	vehicleRepo    fleet.VehicleRepository
	trailerRepo    fleet.TrailerRepository
	driverRepo     fleet.DriverRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.TransportOrderRepository,
	contractorRepo partner.ContractorRepository,
	vehicleRepo fleet.VehicleRepository,
	trailerRepo fleet.TrailerRepository,
	driverRepo fleet.DriverRepository,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		contractorRepo: contractorRepo,
		vehicleRepo:    vehicleRepo,
		trailerRepo:    trailerRepo,
		driverRepo:     driverRepo,
	}
}

// Create creates a transport order in DRAFT status. The order number is
// assigned immediately from the tenant's yearly sequence.
func (s *OrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	contractor, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, req.ContractorID)
	if err != nil {
		return nil, err
	}
	if contractor.IsBlocked() {
		return nil, shared.ErrContractorBlocked
	}
	if !contractor.CanActAsClient() {
		return nil, shared.NewDomainError("INVALID_KIND", "Contractor cannot order transports")
	}

	if req.CarrierID != nil {
		if err := s.checkCarrier(ctx, tenantID, *req.CarrierID); err != nil {
			return nil, err
		}
	}

	number, err := s.orderRepo.GenerateOrderNumber(ctx, tenantID, time.Now())
	if err != nil {
		return nil, err
	}

	ord, err := order.NewTransportOrder(
		tenantID,
		number,
		req.ContractorID,
		req.Route.ToRoute(),
		req.Cargo.ToCargo(),
		req.PriceNet,
		valueobject.Currency(req.Currency),
		invoicing.VATRate(req.VATRate),
	)
	if err != nil {
		return nil, err
	}

	if req.CarrierID != nil {
		if err := ord.SetCarrier(req.CarrierID); err != nil {
			return nil, err
		}
	}
	if req.Remark != "" {
		ord.SetRemark(req.Remark)
	}

	if err := s.orderRepo.Save(ctx, ord); err != nil {
		return nil, err
	}

	response := ToOrderResponse(ord)
	return &response, nil
}

// GetByID retrieves a transport order by ID
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(ord)
	return &response, nil
}

// GetByNumber retrieves a transport order by order number
func (s *OrderService) GetByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(ord)
	return &response, nil
}

// List retrieves transport orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.ContractorID != nil {
		domainFilter.Filters["contractor_id"] = *filter.ContractorID
	}
	if filter.CarrierID != nil {
		domainFilter.Filters["carrier_id"] = *filter.CarrierID
	}
	if filter.TemplateID != nil {
		domainFilter.Filters["recurring_template_id"] = *filter.TemplateID
	}
	if filter.LoadingFrom != nil {
		domainFilter.Filters["loading_from"] = *filter.LoadingFrom
	}
	if filter.LoadingTo != nil {
		domainFilter.Filters["loading_to"] = *filter.LoadingTo
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// Update updates a draft or planned transport order
func (s *OrderService) Update(ctx context.Context, tenantID, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if req.Route != nil {
		if err := ord.UpdateRoute(req.Route.ToRoute()); err != nil {
			return nil, err
		}
	}
	if req.Cargo != nil {
		if err := ord.UpdateCargo(req.Cargo.ToCargo()); err != nil {
			return nil, err
		}
	}
	if req.PriceNet != nil || req.Currency != nil || req.VATRate != nil {
		priceNet := ord.PriceNet
		if req.PriceNet != nil {
			priceNet = *req.PriceNet
		}
		err := ord.UpdatePrice(priceNet, currencyOrDefault(req.Currency, ord.Currency), vatRateOrDefault(req.VATRate, ord.VATRate))
		if err != nil {
			return nil, err
		}
	}
	if req.CarrierID != nil {
		if err := s.checkCarrier(ctx, tenantID, *req.CarrierID); err != nil {
			return nil, err
		}
		if err := ord.SetCarrier(req.CarrierID); err != nil {
			return nil, err
		}
	}
	if req.Remark != nil {
		ord.SetRemark(*req.Remark)
	}

	if err := s.orderRepo.SaveWithLock(ctx, ord); err != nil {
		return nil, err
	}

	response := ToOrderResponse(ord)
	return &response, nil
}

// AssignFleet assigns own fleet to a planned order. Every referenced
// vehicle, trailer and driver must exist and be available.
func (s *OrderService) AssignFleet(ctx context.Context, tenantID, orderID uuid.UUID, req AssignFleetRequest) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if req.VehicleID != nil {
		vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, *req.VehicleID)
		if err != nil {
			return nil, err
		}
		if !vehicle.IsAvailable() {
			return nil, shared.ErrFleetUnavailable
		}
	}
	if req.TrailerID != nil {
		trailer, err := s.trailerRepo.FindByIDForTenant(ctx, tenantID, *req.TrailerID)
		if err != nil {
			return nil, err
		}
		if !trailer.IsAvailable() {
			return nil, shared.ErrFleetUnavailable
		}
	}
	if req.DriverID != nil {
		driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, *req.DriverID)
		if err != nil {
			return nil, err
		}
		if !driver.IsAvailable() {
			return nil, shared.ErrFleetUnavailable
		}
	}

	if err := ord.AssignFleet(req.VehicleID, req.TrailerID, req.DriverID); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, ord); err != nil {
		return nil, err
	}

	response := ToOrderResponse(ord)
	return &response, nil
}

// Plan confirms a draft order
func (s *OrderService) Plan(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := ord.Plan(); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, ord); err != nil {
		return nil, err
	}

	response := ToOrderResponse(ord)
	return &response, nil
}

// Dispatch marks a planned order as in transit. The domain requires own
// fleet or a carrier to be assigned first.
func (s *OrderService) Dispatch(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := ord.Dispatch(); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, ord); err != nil {
		return nil, err
	}

	response := ToOrderResponse(ord)
	return &response, nil
}

// Complete marks an in-transit order as delivered
func (s *OrderService) Complete(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := ord.Complete(); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, ord); err != nil {
		return nil, err
	}

	response := ToOrderResponse(ord)
	return &response, nil
}

// Cancel cancels a non-terminal order
func (s *OrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := ord.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, ord); err != nil {
		return nil, err
	}

	response := ToOrderResponse(ord)
	return &response, nil
}

// Delete deletes a draft transport order
func (s *OrderService) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	ord, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return err
	}

	if !ord.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be deleted")
	}

	return s.orderRepo.DeleteForTenant(ctx, tenantID, orderID)
}

// StatusSummary reports order counts per lifecycle status
func (s *OrderService) StatusSummary(ctx context.Context, tenantID uuid.UUID) (*StatusSummaryResponse, error) {
	summary := &StatusSummaryResponse{}

	counts := []struct {
		status order.OrderStatus
		target *int64
	}{
		{order.OrderStatusDraft, &summary.Draft},
		{order.OrderStatusPlanned, &summary.Planned},
		{order.OrderStatusInTransit, &summary.InTransit},
		{order.OrderStatusCompleted, &summary.Completed},
		{order.OrderStatusInvoiced, &summary.Invoiced},
		{order.OrderStatusCancelled, &summary.Cancelled},
	}

	for _, c := range counts {
		count, err := s.orderRepo.CountByStatus(ctx, tenantID, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = count
		summary.Total += count
	}

	return summary, nil
}

// saveWithEvents persists the order and its pending events through the outbox
func (s *OrderService) saveWithEvents(ctx context.Context, ord *order.TransportOrder) error {
	events := ord.GetDomainEvents()
	ord.ClearDomainEvents()
	return s.orderRepo.SaveWithLockAndEvents(ctx, ord, events)
}

// checkCarrier validates that the contractor can haul as a subcontractor
func (s *OrderService) checkCarrier(ctx context.Context, tenantID, carrierID uuid.UUID) error {
	carrier, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, carrierID)
	if err != nil {
		return err
	}
	if carrier.IsBlocked() {
		return shared.ErrContractorBlocked
	}
	if !carrier.CanActAsCarrier() {
		return shared.NewDomainError("INVALID_KIND", "Contractor cannot haul as a carrier")
	}
	return nil
}
