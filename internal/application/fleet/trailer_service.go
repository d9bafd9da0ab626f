package fleet

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/fleet"
	"github.com/translog/backend/internal/domain/shared"
)

// TrailerService handles trailer registry operations
type TrailerService struct {
	trailerRepo fleet.TrailerRepository
}

// NewTrailerService creates a new trailer service
func NewTrailerService(trailerRepo fleet.TrailerRepository) *TrailerService {
	return &TrailerService{
		trailerRepo: trailerRepo,
	}
}

// Create registers a new trailer
func (s *TrailerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateTrailerRequest) (*TrailerResponse, error) {
	registration := strings.ToUpper(strings.TrimSpace(req.RegistrationNumber))
	exists, err := s.trailerRepo.ExistsByRegistration(ctx, tenantID, registration)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Trailer with this registration already exists")
	}

	trailer, err := fleet.NewTrailer(tenantID, req.RegistrationNumber, fleet.TrailerKind(req.Kind))
	if err != nil {
		return nil, err
	}

	if req.CapacityKg != nil {
		if err := trailer.SetCapacity(*req.CapacityKg); err != nil {
			return nil, err
		}
	}
	if req.InspectionExpiry != nil || req.InsuranceExpiry != nil {
		trailer.SetDocumentDates(
			timeOrCurrent(req.InspectionExpiry, trailer.InspectionExpiry),
			timeOrCurrent(req.InsuranceExpiry, trailer.InsuranceExpiry),
		)
	}
	if req.Notes != "" {
		trailer.SetNotes(req.Notes)
	}

	if err := s.trailerRepo.Save(ctx, trailer); err != nil {
		return nil, err
	}

	response := ToTrailerResponse(trailer)
	return &response, nil
}

// GetByID retrieves a trailer by ID
func (s *TrailerService) GetByID(ctx context.Context, tenantID, trailerID uuid.UUID) (*TrailerResponse, error) {
	trailer, err := s.trailerRepo.FindByIDForTenant(ctx, tenantID, trailerID)
	if err != nil {
		return nil, err
	}

	response := ToTrailerResponse(trailer)
	return &response, nil
}

// List retrieves trailers with filtering and pagination
func (s *TrailerService) List(ctx context.Context, tenantID uuid.UUID, filter TrailerListFilter) ([]TrailerListItemResponse, int64, error) {
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

	trailers, err := s.trailerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.trailerRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTrailerListItemResponses(trailers, time.Now()), total, nil
}

// Update updates a trailer
func (s *TrailerService) Update(ctx context.Context, tenantID, trailerID uuid.UUID, req UpdateTrailerRequest) (*TrailerResponse, error) {
	trailer, err := s.trailerRepo.FindByIDForTenant(ctx, tenantID, trailerID)
	if err != nil {
		return nil, err
	}

	if req.Kind != nil {
		if err := trailer.Update(fleet.TrailerKind(*req.Kind)); err != nil {
			return nil, err
		}
	}
	if req.CapacityKg != nil {
		if err := trailer.SetCapacity(*req.CapacityKg); err != nil {
			return nil, err
		}
	}
	if req.InspectionExpiry != nil || req.InsuranceExpiry != nil {
		trailer.SetDocumentDates(
			timeOrCurrent(req.InspectionExpiry, trailer.InspectionExpiry),
			timeOrCurrent(req.InsuranceExpiry, trailer.InsuranceExpiry),
		)
	}
	if req.Status != nil {
		if err := trailer.SetStatus(fleet.EquipmentStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		trailer.SetNotes(*req.Notes)
	}

	if err := s.trailerRepo.SaveWithLock(ctx, trailer); err != nil {
		return nil, err
	}

	response := ToTrailerResponse(trailer)
	return &response, nil
}

// Delete removes a trailer
func (s *TrailerService) Delete(ctx context.Context, tenantID, trailerID uuid.UUID) error {
	if _, err := s.trailerRepo.FindByIDForTenant(ctx, tenantID, trailerID); err != nil {
		return err
	}

	return s.trailerRepo.DeleteForTenant(ctx, tenantID, trailerID)
}
