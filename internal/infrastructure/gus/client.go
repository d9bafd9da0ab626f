package gus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/translog/backend/internal/application/partner"
	"github.com/translog/backend/internal/domain/shared/valueobject"
	"github.com/translog/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the registry API (1MB)
const maxResponseSize = 1 * 1024 * 1024

// ErrCompanyNotFound indicates the registry has no record for the NIP
var ErrCompanyNotFound = errors.New("gus: company not found")

// Client looks companies up in the REGON registry by NIP. It talks to a
// JSON bridge over the registry (the registry's own interface is SOAP),
// a single attempt with the configured timeout. Registry names arrive
// upper-cased and are normalized to Polish title case.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	titleCaser cases.Caser
}

// NewClient creates a registry lookup client
func NewClient(cfg config.GUSConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:     logger,
		titleCaser: cases.Title(language.Polish),
	}
}

// companyDocument mirrors the bridge response
type companyDocument struct {
	Name       string `json:"name"`
	NIP        string `json:"nip"`
	REGON      string `json:"regon"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// Lookup returns the registry record for a NIP
func (c *Client) Lookup(ctx context.Context, nip valueobject.NIP) (partner.CompanyRecord, error) {
	url := fmt.Sprintf("%s/api/companies?nip=%s", c.baseURL, nip.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return partner.CompanyRecord{}, fmt.Errorf("gus: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return partner.CompanyRecord{}, fmt.Errorf("gus: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return partner.CompanyRecord{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, nip.String())
	}
	if resp.StatusCode != http.StatusOK {
		return partner.CompanyRecord{}, fmt.Errorf("gus: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return partner.CompanyRecord{}, fmt.Errorf("gus: read response: %w", err)
	}

	var doc companyDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return partner.CompanyRecord{}, fmt.Errorf("gus: decode response: %w", err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return partner.CompanyRecord{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, nip.String())
	}

	return partner.CompanyRecord{
		Name:       c.normalize(doc.Name),
		NIP:        strings.TrimSpace(doc.NIP),
		REGON:      strings.TrimSpace(doc.REGON),
		Street:     c.normalize(doc.Street),
		City:       c.normalize(doc.City),
		PostalCode: strings.TrimSpace(doc.PostalCode),
	}, nil
}

// normalize rewrites an upper-cased registry field into Polish title case
func (c *Client) normalize(s string) string {
	return c.titleCaser.String(strings.TrimSpace(s))
}

// Ensure Client implements CompanyLookup
var _ partner.CompanyLookup = (*Client)(nil)
