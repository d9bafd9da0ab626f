package fleet

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/fleet"
	"github.com/translog/backend/internal/domain/shared"
)

// VehicleService handles vehicle registry operations
type VehicleService struct {
	vehicleRepo fleet.VehicleRepository
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(vehicleRepo fleet.VehicleRepository) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
	}
}

// Create registers a new vehicle
func (s *VehicleService) Create(ctx context.Context, tenantID uuid.UUID, req CreateVehicleRequest) (*VehicleResponse, error) {
	// The aggregate normalizes the registration, so the uniqueness
	// check has to look at the same form
	registration := strings.ToUpper(strings.TrimSpace(req.RegistrationNumber))
	exists, err := s.vehicleRepo.ExistsByRegistration(ctx, tenantID, registration)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Vehicle with this registration already exists")
	}

	vehicle, err := fleet.NewVehicle(tenantID, req.RegistrationNumber, fleet.VehicleKind(req.Kind), req.Brand, req.Model)
	if err != nil {
		return nil, err
	}

	if req.CapacityKg != nil {
		if err := vehicle.SetCapacity(*req.CapacityKg); err != nil {
			return nil, err
		}
	}
	if req.InspectionExpiry != nil || req.InsuranceExpiry != nil {
		vehicle.SetDocumentDates(
			timeOrCurrent(req.InspectionExpiry, vehicle.InspectionExpiry),
			timeOrCurrent(req.InsuranceExpiry, vehicle.InsuranceExpiry),
		)
	}
	if req.Notes != "" {
		vehicle.SetNotes(req.Notes)
	}

	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return nil, err
	}

	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// GetByID retrieves a vehicle by ID
func (s *VehicleService) GetByID(ctx context.Context, tenantID, vehicleID uuid.UUID) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}

	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// List retrieves vehicles with filtering and pagination
func (s *VehicleService) List(ctx context.Context, tenantID uuid.UUID, filter VehicleListFilter) ([]VehicleListItemResponse, int64, error) {
	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "registration_number"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	// Build domain filter
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Kind != "" {
		domainFilter.Filters["kind"] = filter.Kind
	}

	vehicles, err := s.vehicleRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.vehicleRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToVehicleListItemResponses(vehicles, time.Now()), total, nil
}

// Update updates a vehicle
func (s *VehicleService) Update(ctx context.Context, tenantID, vehicleID uuid.UUID, req UpdateVehicleRequest) (*VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.Brand != nil || req.Model != nil || req.Kind != nil {
		brand := vehicle.Brand
		model := vehicle.Model
		kind := vehicle.Kind
		if req.Brand != nil {
			brand = *req.Brand
		}
		if req.Model != nil {
			model = *req.Model
		}
		if req.Kind != nil {
			kind = fleet.VehicleKind(*req.Kind)
		}
		if err := vehicle.Update(brand, model, kind); err != nil {
			return nil, err
		}
	}
	if req.CapacityKg != nil {
		if err := vehicle.SetCapacity(*req.CapacityKg); err != nil {
			return nil, err
		}
	}
	if req.InspectionExpiry != nil || req.InsuranceExpiry != nil {
		vehicle.SetDocumentDates(
			timeOrCurrent(req.InspectionExpiry, vehicle.InspectionExpiry),
			timeOrCurrent(req.InsuranceExpiry, vehicle.InsuranceExpiry),
		)
	}
	if req.Status != nil {
		if err := vehicle.SetStatus(fleet.EquipmentStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		vehicle.SetNotes(*req.Notes)
	}

	if err := s.vehicleRepo.SaveWithLock(ctx, vehicle); err != nil {
		return nil, err
	}

	response := ToVehicleResponse(vehicle)
	return &response, nil
}

// Delete removes a vehicle
func (s *VehicleService) Delete(ctx context.Context, tenantID, vehicleID uuid.UUID) error {
	if _, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID); err != nil {
		return err
	}

	return s.vehicleRepo.DeleteForTenant(ctx, tenantID, vehicleID)
}
