package fleet

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/fleet"
	"github.com/translog/backend/internal/domain/shared"
)

// DriverService handles driver registry operations
type DriverService struct {
	driverRepo fleet.DriverRepository
}

// NewDriverService creates a new driver service
func NewDriverService(driverRepo fleet.DriverRepository) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
	}
}

// Create registers a new driver
func (s *DriverService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDriverRequest) (*DriverResponse, error) {
	driver, err := fleet.NewDriver(tenantID, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		if err := driver.SetContact(req.Phone); err != nil {
			return nil, err
		}
	}
	if len(req.LicenseCategories) > 0 || req.LicenseExpiry != nil {
		if err := driver.SetLicense(req.LicenseCategories, timeOrCurrent(req.LicenseExpiry, driver.LicenseExpiry)); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		driver.SetNotes(req.Notes)
	}

	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}

	response := ToDriverResponse(driver)
	return &response, nil
}

// GetByID retrieves a driver by ID
func (s *DriverService) GetByID(ctx context.Context, tenantID, driverID uuid.UUID) (*DriverResponse, error) {
	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID)
	if err != nil {
		return nil, err
	}

	response := ToDriverResponse(driver)
	return &response, nil
}

// List retrieves drivers with filtering and pagination
func (s *DriverService) List(ctx context.Context, tenantID uuid.UUID, filter DriverListFilter) ([]DriverListItemResponse, int64, error) {
	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "last_name"
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

	drivers, err := s.driverRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.driverRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDriverListItemResponses(drivers, time.Now()), total, nil
}

// Update updates a driver
func (s *DriverService) Update(ctx context.Context, tenantID, driverID uuid.UUID, req UpdateDriverRequest) (*DriverResponse, error) {
	driver, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil || req.LastName != nil {
		firstName := driver.FirstName
		lastName := driver.LastName
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if err := driver.Update(firstName, lastName); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		if err := driver.SetContact(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.LicenseCategories != nil || req.LicenseExpiry != nil {
		categories := driver.LicenseCategories
		if req.LicenseCategories != nil {
			categories = *req.LicenseCategories
		}
		if err := driver.SetLicense(categories, timeOrCurrent(req.LicenseExpiry, driver.LicenseExpiry)); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := driver.SetStatus(fleet.DriverStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		driver.SetNotes(*req.Notes)
	}

	if err := s.driverRepo.SaveWithLock(ctx, driver); err != nil {
		return nil, err
	}

	response := ToDriverResponse(driver)
	return &response, nil
}

// Delete removes a driver
func (s *DriverService) Delete(ctx context.Context, tenantID, driverID uuid.UUID) error {
	if _, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID); err != nil {
		return err
	}

	return s.driverRepo.DeleteForTenant(ctx, tenantID, driverID)
}
