package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/order"
	"github.com/translog/backend/internal/domain/partner"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// ContractorService handles contractor-related business operations
type ContractorService struct {
	contractorRepo partner.ContractorRepository
	orderRepo      order.TransportOrderRepository
	invoiceRepo    invoicing.InvoiceRepository
	companies      CompanyLookup
}

// NewContractorService creates a new ContractorService
func NewContractorService(
	contractorRepo partner.ContractorRepository,
	orderRepo order.TransportOrderRepository,
	invoiceRepo invoicing.InvoiceRepository,
	companies CompanyLookup,
) *ContractorService {
	return &ContractorService{
		contractorRepo: contractorRepo,
		orderRepo:      orderRepo,
		invoiceRepo:    invoiceRepo,
		companies:      companies,
	}
}

// Create creates a new contractor. With FillFromGUS set, the registry is
// authoritative for name, REGON and address; request fields provided
// alongside still override the registry values.
func (s *ContractorService) Create(ctx context.Context, tenantID uuid.UUID, req CreateContractorRequest) (*ContractorResponse, error) {
	nip, err := valueobject.NewNIP(req.NIP)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_NIP", err.Error())
	}

	// Check if code already exists
	exists, err := s.contractorRepo.ExistsByCode(ctx, tenantID, strings.ToUpper(req.Code))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Contractor with this code already exists")
	}

	// Check if NIP already exists
	exists, err = s.contractorRepo.ExistsByNIP(ctx, tenantID, nip.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Contractor with this NIP already exists")
	}

	name := req.Name
	var record *CompanyRecord
	if req.FillFromGUS {
		rec, err := s.companies.Lookup(ctx, nip)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = rec.Name
		}
		record = &rec
	}

	contractor, err := partner.NewContractor(tenantID, req.Code, name, partner.ContractorKind(req.Kind), nip)
	if err != nil {
		return nil, err
	}

	if record != nil {
		address, aerr := registryAddress(*record)
		if aerr != nil {
			return nil, shared.NewDomainError("INVALID_GUS_RECORD", "Registry address cannot be used: "+aerr.Error())
		}
		if err := contractor.FillFromGUS(record.Name, record.REGON, address); err != nil {
			return nil, err
		}
	}

	// Set optional fields
	if req.Address != nil {
		if err := contractor.SetAddress(*req.Address); err != nil {
			return nil, err
		}
	}
	if req.REGON != "" {
		if err := contractor.SetREGON(req.REGON); err != nil {
			return nil, err
		}
	}
	if req.Email != "" || req.Phone != "" {
		if err := contractor.SetContact(req.Email, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.PaymentTermDays != nil {
		if err := contractor.SetPaymentTerm(*req.PaymentTermDays); err != nil {
			return nil, err
		}
	}
	if req.DefaultCurrency != "" {
		currency := valueobject.Currency(strings.ToUpper(req.DefaultCurrency))
		if err := contractor.SetDefaultCurrency(currency); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		contractor.SetNotes(req.Notes)
	}

	// Save the contractor
	if err := s.contractorRepo.Save(ctx, contractor); err != nil {
		return nil, err
	}

	response := ToContractorResponse(contractor)
	return &response, nil
}

// GetByID retrieves a contractor by ID
func (s *ContractorService) GetByID(ctx context.Context, tenantID, contractorID uuid.UUID) (*ContractorResponse, error) {
	contractor, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, contractorID)
	if err != nil {
		return nil, err
	}

	response := ToContractorResponse(contractor)
	return &response, nil
}

// GetByCode retrieves a contractor by code
func (s *ContractorService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*ContractorResponse, error) {
	contractor, err := s.contractorRepo.FindByCode(ctx, tenantID, strings.ToUpper(code))
	if err != nil {
		return nil, err
	}

	response := ToContractorResponse(contractor)
	return &response, nil
}

// List retrieves contractors with filtering and pagination
func (s *ContractorService) List(ctx context.Context, tenantID uuid.UUID, filter ContractorListFilter) ([]ContractorListItemResponse, int64, error) {
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
		Filters:  make(map[string]any),
	}

	if filter.Kind != "" {
		domainFilter.Filters["kind"] = filter.Kind
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}

	contractors, err := s.contractorRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.contractorRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToContractorListItemResponses(contractors), total, nil
}

// Update updates a contractor
func (s *ContractorService) Update(ctx context.Context, tenantID, contractorID uuid.UUID, req UpdateContractorRequest) (*ContractorResponse, error) {
	contractor, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, contractorID)
	if err != nil {
		return nil, err
	}

	// Update name and kind
	if req.Name != nil || req.Kind != nil {
		name := contractor.Name
		kind := contractor.Kind
		if req.Name != nil {
			name = *req.Name
		}
		if req.Kind != nil {
			kind = partner.ContractorKind(*req.Kind)
		}
		if err := contractor.Update(name, kind); err != nil {
			return nil, err
		}
	}

	// Update contact
	if req.Email != nil || req.Phone != nil {
		email := contractor.Email
		phone := contractor.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := contractor.SetContact(email, phone); err != nil {
			return nil, err
		}
	}

	if req.Address != nil {
		if err := contractor.SetAddress(*req.Address); err != nil {
			return nil, err
		}
	}
	if req.REGON != nil {
		if err := contractor.SetREGON(*req.REGON); err != nil {
			return nil, err
		}
	}
	if req.PaymentTermDays != nil {
		if err := contractor.SetPaymentTerm(*req.PaymentTermDays); err != nil {
			return nil, err
		}
	}
	if req.DefaultCurrency != nil {
		currency := valueobject.Currency(strings.ToUpper(*req.DefaultCurrency))
		if err := contractor.SetDefaultCurrency(currency); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		contractor.SetNotes(*req.Notes)
	}

	if err := s.contractorRepo.SaveWithLock(ctx, contractor); err != nil {
		return nil, err
	}

	response := ToContractorResponse(contractor)
	return &response, nil
}

// Block blocks a contractor from new orders and invoices
func (s *ContractorService) Block(ctx context.Context, tenantID, contractorID uuid.UUID) (*ContractorResponse, error) {
	contractor, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, contractorID)
	if err != nil {
		return nil, err
	}

	if err := contractor.Block(); err != nil {
		return nil, err
	}

	if err := s.contractorRepo.SaveWithLock(ctx, contractor); err != nil {
		return nil, err
	}

	response := ToContractorResponse(contractor)
	return &response, nil
}

// Activate reactivates a blocked contractor
func (s *ContractorService) Activate(ctx context.Context, tenantID, contractorID uuid.UUID) (*ContractorResponse, error) {
	contractor, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, contractorID)
	if err != nil {
		return nil, err
	}

	if err := contractor.Activate(); err != nil {
		return nil, err
	}

	if err := s.contractorRepo.SaveWithLock(ctx, contractor); err != nil {
		return nil, err
	}

	response := ToContractorResponse(contractor)
	return &response, nil
}

// Delete deletes a contractor. Only blocked contractors without orders
// or invoices can be removed; everything else stays for the paper trail.
func (s *ContractorService) Delete(ctx context.Context, tenantID, contractorID uuid.UUID) error {
	contractor, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, contractorID)
	if err != nil {
		return err
	}

	if !contractor.CanBeDeleted() {
		return shared.NewDomainError("CANNOT_DELETE", "Contractor must be blocked before deletion")
	}

	orderCount, err := s.orderRepo.CountByContractor(ctx, tenantID, contractorID)
	if err != nil {
		return err
	}
	if orderCount > 0 {
		return shared.NewDomainError("CANNOT_DELETE", "Contractor has transport orders")
	}

	invoiceFilter := shared.Filter{Filters: map[string]any{"contractor_id": contractorID}}
	invoiceCount, err := s.invoiceRepo.CountForTenant(ctx, tenantID, invoiceFilter)
	if err != nil {
		return err
	}
	if invoiceCount > 0 {
		return shared.NewDomainError("CANNOT_DELETE", "Contractor has invoices")
	}

	return s.contractorRepo.DeleteForTenant(ctx, tenantID, contractorID)
}

// LookupCompany fetches a company record from the state registry by NIP.
// Backs the autofill lookup on the contractor create form.
func (s *ContractorService) LookupCompany(ctx context.Context, rawNIP string) (*CompanyRecord, error) {
	nip, err := valueobject.NewNIP(rawNIP)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_NIP", err.Error())
	}

	record, err := s.companies.Lookup(ctx, nip)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// registryAddress builds the domain address from a registry record.
// Records without a usable street or city yield an empty address, which
// FillFromGUS skips.
func registryAddress(record CompanyRecord) (valueobject.Address, error) {
	if record.Street == "" || record.City == "" {
		return valueobject.EmptyAddress(), nil
	}
	return valueobject.NewAddress(record.Street, record.City, valueobject.WithPostalCode(record.PostalCode))
}
