package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/domain/order"
	"github.com/translog/backend/internal/domain/partner"
	"github.com/translog/backend/internal/domain/shared"
	"github.com/translog/backend/internal/domain/shared/valueobject"
)

// InvoiceService handles invoice business operations
type InvoiceService struct {
	invoiceRepo    invoicing.InvoiceRepository
	contractorRepo partner.ContractorRepository
	orderRepo      order.TransportOrderRepository
	rates          RateProvider
	ksef           invoicing.KSeFGateway
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo invoicing.InvoiceRepository,
	contractorRepo partner.ContractorRepository,
	orderRepo order.TransportOrderRepository,
	rates RateProvider,
	ksef invoicing.KSeFGateway,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:    invoiceRepo,
		contractorRepo: contractorRepo,
		orderRepo:      orderRepo,
		rates:          rates,
		ksef:           ksef,
	}
}

// Create creates a draft invoice for a contractor. The buyer snapshot
// taken here is provisional; it freezes at issue time.
func (s *InvoiceService) Create(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	contractor, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, req.ContractorID)
	if err != nil {
		return nil, err
	}
	if contractor.IsBlocked() {
		return nil, shared.ErrContractorBlocked
	}

	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = contractor.DefaultCurrency
	}

	inv, err := invoicing.NewInvoice(tenantID, buyerSnapshot(contractor), req.SaleDate, currency)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Lines {
		if _, err := inv.AddLine(line.Description, line.Quantity, line.UnitPriceNet, invoicing.VATRate(line.VATRate)); err != nil {
			return nil, err
		}
	}

	if req.OrderID != nil {
		if err := s.linkOrder(ctx, tenantID, inv, *req.OrderID); err != nil {
			return nil, err
		}
	}

	if req.Remark != "" {
		inv.SetRemark(req.Remark)
	}

	events := inv.GetDomainEvents()
	inv.ClearDomainEvents()
	if err := s.invoiceRepo.SaveWithLockAndEvents(ctx, inv, events); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// CreateFromOrder creates a draft invoice from a completed transport
// order: one position carrying the order's freight price, the order's
// currency and VAT rate, sale date set to the unloading date.
func (s *InvoiceService) CreateFromOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*InvoiceResponse, error) {
	ord, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if ord.Status != order.OrderStatusCompleted {
		return nil, shared.NewDomainError("INVALID_STATE", "Only completed orders can be invoiced")
	}
	if ord.InvoiceID != nil {
		return nil, shared.ErrOrderAlreadyInvoiced
	}

	contractor, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, ord.ContractorID)
	if err != nil {
		return nil, err
	}

	inv, err := invoicing.NewInvoice(tenantID, buyerSnapshot(contractor), ord.Route.UnloadingDate, ord.Currency)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Usluga transportowa %s - %s, zlecenie %s",
		ord.Route.LoadingPlace.City(), ord.Route.UnloadingPlace.City(), ord.OrderNumber)
	if _, err := inv.AddLine(description, decimal.NewFromInt(1), ord.PriceNet, ord.VATRate); err != nil {
		return nil, err
	}

	if err := inv.LinkOrder(ord.ID); err != nil {
		return nil, err
	}

	events := inv.GetDomainEvents()
	inv.ClearDomainEvents()
	if err := s.invoiceRepo.SaveWithLockAndEvents(ctx, inv, events); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) ([]InvoiceListItemResponse, int64, error) {
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

	if filter.ContractorID != nil {
		domainFilter.Filters["contractor_id"] = *filter.ContractorID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}
	if filter.Overdue != nil {
		domainFilter.Filters["overdue"] = *filter.Overdue
	}

	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceListItemResponses(invoices, time.Now()), total, nil
}

// Update updates a draft invoice. A non-nil line list replaces all
// positions and the totals are recomputed by the engine.
func (s *InvoiceService) Update(ctx context.Context, tenantID, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.SaleDate != nil {
		if err := inv.ChangeSaleDate(*req.SaleDate); err != nil {
			return nil, err
		}
	}

	if req.Lines != nil {
		lines := make([]invoicing.Line, 0, len(req.Lines))
		for _, in := range req.Lines {
			line, err := invoicing.NewLine(in.Description, in.Quantity, in.UnitPriceNet, invoicing.VATRate(in.VATRate))
			if err != nil {
				return nil, shared.NewDomainError("INVALID_LINE", err.Error())
			}
			lines = append(lines, line)
		}
		if err := inv.ReplaceLines(lines); err != nil {
			return nil, err
		}
	}

	if req.Remark != nil {
		inv.SetRemark(*req.Remark)
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// AddLine appends a position to a draft invoice
func (s *InvoiceService) AddLine(ctx context.Context, tenantID, invoiceID uuid.UUID, req AddLineRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if _, err := inv.AddLine(req.Description, req.Quantity, req.UnitPriceNet, invoicing.VATRate(req.VATRate)); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// RemoveLine deletes a position from a draft invoice
func (s *InvoiceService) RemoveLine(ctx context.Context, tenantID, invoiceID, lineID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.RemoveLine(lineID); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// AttachRate fetches the NBP rate for the invoice currency and attaches
// it to the draft. The rate date defaults to the sale date.
func (s *InvoiceService) AttachRate(ctx context.Context, tenantID, invoiceID uuid.UUID, req AttachRateRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	rateDate := inv.SaleDate
	if req.RateDate != nil {
		rateDate = *req.RateDate
	}

	rate, err := s.rates.GetRate(ctx, inv.Currency, rateDate)
	if err != nil {
		return nil, err
	}

	if err := inv.AttachExchangeRate(rate); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Rescale adjusts a foreign currency draft so its PLN equivalent
// approximates the target. The response reports the achieved total and
// the drift left by per-line rounding.
func (s *InvoiceService) Rescale(ctx context.Context, tenantID, invoiceID uuid.UUID, req RescaleInvoiceRequest) (*RescaleResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.RescaleToTargetPLN(req.TargetPLN); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	achieved := *inv.TotalGrossPLN
	return &RescaleResponse{
		Invoice:     ToInvoiceResponse(inv),
		TargetPLN:   req.TargetPLN,
		AchievedPLN: achieved,
		Drift:       achieved.Sub(req.TargetPLN),
	}, nil
}

// Issue finalizes an invoice: the number is assigned, the buyer
// snapshot and payment term are taken from the contractor as of now,
// and a missing rate on a foreign currency invoice is fetched for the
// sale date. An invoiced order is marked afterwards.
func (s *InvoiceService) Issue(ctx context.Context, tenantID, invoiceID uuid.UUID, req IssueInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != invoicing.InvoiceStatusDraft {
		return nil, shared.ErrInvoiceNotDraft
	}

	contractor, err := s.contractorRepo.FindByIDForTenant(ctx, tenantID, inv.Buyer.ContractorID)
	if err != nil {
		return nil, err
	}

	issueDate := time.Now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	if inv.Currency.IsForeign() && inv.ExchangeRate == nil {
		rate, err := s.rates.GetRate(ctx, inv.Currency, inv.SaleDate)
		if err != nil {
			return nil, err
		}
		if err := inv.AttachExchangeRate(rate); err != nil {
			return nil, err
		}
	}

	var invoicedOrder *order.TransportOrder
	if inv.OrderID != nil {
		invoicedOrder, err = s.orderRepo.FindByIDForTenant(ctx, tenantID, *inv.OrderID)
		if err != nil {
			return nil, err
		}
	}

	number, err := s.invoiceRepo.GenerateInvoiceNumber(ctx, tenantID, issueDate)
	if err != nil {
		return nil, err
	}

	if err := inv.Issue(number, buyerSnapshot(contractor), issueDate, contractor.PaymentTermDays); err != nil {
		return nil, err
	}

	if invoicedOrder != nil {
		if err := invoicedOrder.MarkInvoiced(inv.ID); err != nil {
			return nil, err
		}
	}

	events := inv.GetDomainEvents()
	inv.ClearDomainEvents()
	if err := s.invoiceRepo.SaveWithLockAndEvents(ctx, inv, events); err != nil {
		return nil, err
	}

	if invoicedOrder != nil {
		events := invoicedOrder.GetDomainEvents()
		invoicedOrder.ClearDomainEvents()
		if err := s.orderRepo.SaveWithLockAndEvents(ctx, invoicedOrder, events); err != nil {
			return nil, err
		}
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// MarkPaid records payment of an issued invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID, req PayInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	if err := inv.MarkPaid(paidAt); err != nil {
		return nil, err
	}

	events := inv.GetDomainEvents()
	inv.ClearDomainEvents()
	if err := s.invoiceRepo.SaveWithLockAndEvents(ctx, inv, events); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Cancel voids a draft or issued invoice
func (s *InvoiceService) Cancel(ctx context.Context, tenantID, invoiceID uuid.UUID, req CancelInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.Cancel(req.Reason); err != nil {
		return nil, err
	}

	events := inv.GetDomainEvents()
	inv.ClearDomainEvents()
	if err := s.invoiceRepo.SaveWithLockAndEvents(ctx, inv, events); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Delete deletes a draft invoice
func (s *InvoiceService) Delete(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}

	if inv.Status != invoicing.InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be deleted")
	}

	return s.invoiceRepo.DeleteForTenant(ctx, tenantID, invoiceID)
}

// SubmitToKSeF sends an issued invoice to the e-invoicing bridge and
// records the returned reference number.
func (s *InvoiceService) SubmitToKSeF(ctx context.Context, tenantID, invoiceID uuid.UUID) (*KSeFSubmissionResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.Status != invoicing.InvoiceStatusIssued {
		return nil, shared.NewDomainError("INVALID_STATE", "Only issued invoices can be submitted to KSeF")
	}

	reference, err := s.ksef.Submit(ctx, inv)
	if err != nil {
		return nil, err
	}

	if err := inv.MarkKSeFPending(reference); err != nil {
		return nil, err
	}

	events := inv.GetDomainEvents()
	inv.ClearDomainEvents()
	if err := s.invoiceRepo.SaveWithLockAndEvents(ctx, inv, events); err != nil {
		return nil, err
	}

	return &KSeFSubmissionResponse{
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		KSeFStatus:      string(inv.KSeFStatus),
		ReferenceNumber: inv.KSeFReference,
	}, nil
}

// RefreshKSeFStatus polls the bridge for the processing outcome of a
// submitted invoice.
func (s *InvoiceService) RefreshKSeFStatus(ctx context.Context, tenantID, invoiceID uuid.UUID) (*KSeFSubmissionResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.KSeFStatus == invoicing.KSeFNotSubmitted {
		return nil, shared.NewDomainError("INVALID_STATE", "Invoice has not been submitted to KSeF")
	}

	submission, err := s.ksef.Status(ctx, inv.KSeFReference)
	if err != nil {
		return nil, err
	}

	if submission.Status != inv.KSeFStatus {
		if err := inv.ApplyKSeFStatus(submission.Status); err != nil {
			return nil, err
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
			return nil, err
		}
	}

	return &KSeFSubmissionResponse{
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		KSeFStatus:      string(inv.KSeFStatus),
		ReferenceNumber: inv.KSeFReference,
		Message:         submission.Message,
	}, nil
}

// linkOrder validates the order before linking it to a draft invoice
func (s *InvoiceService) linkOrder(ctx context.Context, tenantID uuid.UUID, inv *invoicing.Invoice, orderID uuid.UUID) error {
	ord, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return err
	}
	if ord.InvoiceID != nil {
		return shared.ErrOrderAlreadyInvoiced
	}
	return inv.LinkOrder(ord.ID)
}

// buyerSnapshot builds the buyer record from the contractor's current state
func buyerSnapshot(contractor *partner.Contractor) invoicing.Buyer {
	return invoicing.Buyer{
		ContractorID: contractor.ID,
		Name:         contractor.Name,
		NIP:          contractor.NIP.String(),
		Address:      contractor.Address,
	}
}
