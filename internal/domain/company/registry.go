package company

import (
	"context"
	"errors"
	"time"
)

// Registry client sentinel errors
var (
	ErrRegistryNotFound    = errors.New("company not found in registry")
	ErrRegistryRateLimited = errors.New("registry rate limit exceeded")
	ErrRegistryUnavailable = errors.New("registry service unavailable")
)

// RegistryOfficer is a company officer as reported by the registry
type RegistryOfficer struct {
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	AppointedOn *time.Time `json:"appointed_on,omitempty"`
}

// RegistryAddress is a registered office address as reported by the registry
type RegistryAddress struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country,omitempty"`
}

// RegistryResult is a single company record from the external registry
type RegistryResult struct {
	RegistrationNumber string            `json:"registration_number"`
	Name               string            `json:"name"`
	Status             string            `json:"status"`
	Type               string            `json:"type"`
	IncorporatedOn     *time.Time        `json:"incorporated_on,omitempty"`
	SICCodes           []string          `json:"sic_codes,omitempty"`
	RegisteredOffice   RegistryAddress   `json:"registered_office"`
	Officers           []RegistryOfficer `json:"officers,omitempty"`
}

// RegistryClient is the outbound port for the external company-registry API
type RegistryClient interface {
	// GetByNumber fetches a single registry record by registration number
	GetByNumber(ctx context.Context, number string) (*RegistryResult, error)

	// SearchByName searches registry records by company name
	SearchByName(ctx context.Context, name string, limit int) ([]RegistryResult, error)
}
