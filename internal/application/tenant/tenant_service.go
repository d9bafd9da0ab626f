package tenant

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
	"github.com/translog/backend/internal/domain/tenant"
)

// TenantService handles the company registry. Tenants are the platform
// level aggregate: every other module hangs off a tenant ID this
// service hands out.
type TenantService struct {
	tenantRepo tenant.TenantRepository
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo tenant.TenantRepository) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
	}
}

// Create onboards a new transport company
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	nip, err := valueobject.NewNIP(req.NIP)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_NIP", err.Error())
	}

	exists, err := s.tenantRepo.ExistsByCode(ctx, strings.ToUpper(req.Code))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant with this code already exists")
	}

	exists, err = s.tenantRepo.ExistsByNIP(ctx, nip.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant with this NIP already exists")
	}

	newTenant, err := tenant.NewTenant(req.Code, req.Name, nip)
	if err != nil {
		return nil, err
	}

	if req.Address != nil {
		newTenant.SetAddress(*req.Address)
	}
	if req.ContactEmail != "" || req.ContactPhone != "" {
		if err := newTenant.SetContact(req.ContactEmail, req.ContactPhone); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		newTenant.SetNotes(req.Notes)
	}

	if err := s.tenantRepo.Save(ctx, newTenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(newTenant)
	return &response, nil
}

// GetByID retrieves a tenant by ID
func (s *TenantService) GetByID(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	t, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	response := ToTenantResponse(t)
	return &response, nil
}

// List retrieves tenants with filtering and pagination
func (s *TenantService) List(ctx context.Context, filter TenantListFilter) ([]TenantListItemResponse, int64, error) {
	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "code"
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

	tenants, err := s.tenantRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.tenantRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTenantListItemResponses(tenants), total, nil
}

// Deactivate switches a tenant off. The tenant middleware rejects
// requests carrying its ID afterwards, so this doubles as the DELETE
// semantics of the registry.
func (s *TenantService) Deactivate(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	t, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := t.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}

	response := ToTenantResponse(t)
	return &response, nil
}

// Activate switches a tenant back on
func (s *TenantService) Activate(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	t, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := t.Activate(); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}

	response := ToTenantResponse(t)
	return &response, nil
}

// RequireActive checks that a tenant exists and is active. The tenant
// middleware calls this for every scoped request.
func (s *TenantService) RequireActive(ctx context.Context, tenantID uuid.UUID) error {
	t, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if !t.IsActive() {
		return shared.ErrTenantInactive
	}
	return nil
}

// ActiveTenantIDs returns the IDs of every active tenant. The recurring
// order sweep iterates them.
func (s *TenantService) ActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	tenants, err := s.tenantRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(tenants))
	for i := range tenants {
		ids[i] = tenants[i].ID
	}
	return ids, nil
}
