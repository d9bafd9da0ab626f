package ksef

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/translog/backend/internal/domain/invoicing"
	"github.com/translog/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the bridge (1MB)
const maxResponseSize = 1 * 1024 * 1024

// ErrSubmissionNotFound indicates the bridge has no record of the reference number
var ErrSubmissionNotFound = errors.New("ksef: submission not found")

// Gateway submits issued invoices to the national e-invoicing system
// through a bridge service. The bridge owns the FA(2) XML rendering and
// the KSeF session protocol; this adapter only ships the invoice data
// and polls the outcome. Single attempt, configured timeout.
type Gateway struct {
	bridgeURL  string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGateway creates a bridge gateway
func NewGateway(cfg config.KSeFConfig, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		bridgeURL: cfg.BridgeURL,
		token:     cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// submissionPayload is the invoice data shipped to the bridge
type submissionPayload struct {
	InvoiceNumber string           `json:"invoice_number"`
	IssueDate     string           `json:"issue_date"`
	SaleDate      string           `json:"sale_date"`
	Currency      string           `json:"currency"`
	Buyer         invoicing.Buyer  `json:"buyer"`
	Lines         []invoicing.Line `json:"lines"`
	TotalNet      decimal.Decimal  `json:"total_net"`
	TotalVAT      decimal.Decimal  `json:"total_vat"`
	TotalGross    decimal.Decimal  `json:"total_gross"`
}

// submissionResponse is the bridge's acknowledgement
type submissionResponse struct {
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status"`
	Message         string `json:"message"`
}

// Submit sends an issued invoice and returns the gateway reference number
func (g *Gateway) Submit(ctx context.Context, invoice *invoicing.Invoice) (string, error) {
	if invoice.IssueDate == nil {
		return "", fmt.Errorf("ksef: invoice %s has no issue date", invoice.InvoiceNumber)
	}

	payload := submissionPayload{
		InvoiceNumber: invoice.InvoiceNumber,
		IssueDate:     invoice.IssueDate.Format("2006-01-02"),
		SaleDate:      invoice.SaleDate.Format("2006-01-02"),
		Currency:      string(invoice.Currency),
		Buyer:         invoice.Buyer,
		Lines:         invoice.Lines,
		TotalNet:      invoice.TotalNet,
		TotalVAT:      invoice.TotalVAT,
		TotalGross:    invoice.TotalGross,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ksef: marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/invoices", g.bridgeURL)
	resp, err := g.do(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	if resp.ReferenceNumber == "" {
		return "", fmt.Errorf("ksef: bridge accepted %s without a reference number", invoice.InvoiceNumber)
	}

	g.logger.Info("invoice submitted to ksef bridge",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("reference_number", resp.ReferenceNumber))
	return resp.ReferenceNumber, nil
}

// Status fetches the current processing state for a reference number
func (g *Gateway) Status(ctx context.Context, referenceNumber string) (invoicing.KSeFSubmission, error) {
	url := fmt.Sprintf("%s/api/invoices/%s/status", g.bridgeURL, referenceNumber)
	resp, err := g.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return invoicing.KSeFSubmission{}, err
	}

	status := invoicing.KSeFStatus(resp.Status)
	if !status.IsValid() {
		return invoicing.KSeFSubmission{}, fmt.Errorf("ksef: bridge returned unknown status %q", resp.Status)
	}

	return invoicing.KSeFSubmission{
		ReferenceNumber: referenceNumber,
		Status:          status,
		Message:         resp.Message,
	}, nil
}

func (g *Gateway) do(ctx context.Context, method, url string, body io.Reader) (*submissionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("ksef: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ksef: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("ksef: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrSubmissionNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("ksef: bridge returned status %d: %s", resp.StatusCode, truncate(data, 200))
	}

	var parsed submissionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("ksef: decode response: %w", err)
	}

	g.logger.Debug("ksef bridge call completed",
		zap.String("url", url),
		zap.Duration("took", time.Since(start)))
	return &parsed, nil
}

func truncate(data []byte, limit int) string {
	if len(data) <= limit {
		return string(data)
	}
	return string(data[:limit]) + "..."
}

// Ensure Gateway implements KSeFGateway
var _ invoicing.KSeFGateway = (*Gateway)(nil)
