// Package registry provides the HTTP client for the external company-registry API.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/brokerhub/backend/internal/domain/company"
	infraconfig "github.com/brokerhub/backend/internal/infrastructure/config"
)

// defaultMaxResponseBytes limits the response body size to prevent memory exhaustion
const defaultMaxResponseBytes = 1 << 20 // 1MB

// Ensure Client implements the domain port
var _ company.RegistryClient = (*Client)(nil)

// Client talks to a Companies House style registry API.
// Authentication uses HTTP basic auth with the API key as the username.
type Client struct {
	baseURL          string
	apiKey           string
	maxResponseBytes int64
	httpClient       *http.Client
	logger           *zap.Logger
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithLogger sets a custom logger for the client
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a registry client from configuration
func NewClient(cfg *infraconfig.RegistryConfig, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("registry configuration is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("registry base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid registry base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxBytes := cfg.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxResponseBytes
	}

	c := &Client{
		baseURL:          cfg.BaseURL,
		apiKey:           cfg.APIKey,
		maxResponseBytes: maxBytes,
		httpClient:       &http.Client{Timeout: timeout},
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// companyProfileResponse mirrors the registry's company profile payload
type companyProfileResponse struct {
	CompanyNumber  string          `json:"company_number"`
	CompanyName    string          `json:"company_name"`
	CompanyStatus  string          `json:"company_status"`
	Type           string          `json:"type"`
	DateOfCreation string          `json:"date_of_creation"`
	SICCodes       []string        `json:"sic_codes"`
	Office         registryAddress `json:"registered_office_address"`
}

type registryAddress struct {
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	Locality     string `json:"locality"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

type officerListResponse struct {
	Items []struct {
		Name        string `json:"name"`
		OfficerRole string `json:"officer_role"`
		AppointedOn string `json:"appointed_on"`
	} `json:"items"`
}

type searchResponse struct {
	Items []struct {
		Title          string          `json:"title"`
		CompanyNumber  string          `json:"company_number"`
		CompanyStatus  string          `json:"company_status"`
		CompanyType    string          `json:"company_type"`
		DateOfCreation string          `json:"date_of_creation"`
		Address        registryAddress `json:"address"`
	} `json:"items"`
}

// GetByNumber fetches a single registry record by registration number.
// Officers are fetched best-effort; a failure there does not fail the lookup.
func (c *Client) GetByNumber(ctx context.Context, number string) (*company.RegistryResult, error) {
	if number == "" {
		return nil, company.ErrRegistryNotFound
	}

	var profile companyProfileResponse
	if err := c.get(ctx, "/company/"+url.PathEscape(number), nil, &profile); err != nil {
		return nil, err
	}

	result := &company.RegistryResult{
		RegistrationNumber: profile.CompanyNumber,
		Name:               profile.CompanyName,
		Status:             profile.CompanyStatus,
		Type:               profile.Type,
		IncorporatedOn:     parseRegistryDate(profile.DateOfCreation),
		SICCodes:           profile.SICCodes,
		RegisteredOffice:   toRegistryAddress(profile.Office),
	}

	var officers officerListResponse
	if err := c.get(ctx, "/company/"+url.PathEscape(number)+"/officers", nil, &officers); err != nil {
		c.logger.Warn("Failed to fetch company officers",
			zap.String("registration_number", number),
			zap.Error(err))
	} else {
		for _, item := range officers.Items {
			result.Officers = append(result.Officers, company.RegistryOfficer{
				Name:        item.Name,
				Role:        item.OfficerRole,
				AppointedOn: parseRegistryDate(item.AppointedOn),
			})
		}
	}

	return result, nil
}

// SearchByName searches registry records by company name
func (c *Client) SearchByName(ctx context.Context, name string, limit int) ([]company.RegistryResult, error) {
	if name == "" {
		return []company.RegistryResult{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	query := url.Values{}
	query.Set("q", name)
	query.Set("items_per_page", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.get(ctx, "/search/companies", query, &resp); err != nil {
		return nil, err
	}

	results := make([]company.RegistryResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, company.RegistryResult{
			RegistrationNumber: item.CompanyNumber,
			Name:               item.Title,
			Status:             item.CompanyStatus,
			Type:               item.CompanyType,
			IncorporatedOn:     parseRegistryDate(item.DateOfCreation),
			RegisteredOffice:   toRegistryAddress(item.Address),
		})
	}
	return results, nil
}

// get performs an authenticated GET and decodes the JSON response into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build registry request: %w", err)
	}
	if c.apiKey != "" {
		req.SetBasicAuth(c.apiKey, "")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", company.ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return company.ErrRegistryNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return company.ErrRegistryRateLimited
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", company.ErrRegistryUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("registry request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read registry response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode registry response: %w", err)
	}
	return nil
}

func toRegistryAddress(a registryAddress) company.RegistryAddress {
	return company.RegistryAddress{
		Line1:    a.AddressLine1,
		Line2:    a.AddressLine2,
		City:     a.Locality,
		Postcode: a.PostalCode,
		Country:  a.Country,
	}
}

// parseRegistryDate parses the registry's YYYY-MM-DD date format.
// Returns nil for empty or malformed values.
func parseRegistryDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
