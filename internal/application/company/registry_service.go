package company

import (
	"context"
	"errors"
	"strings"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegistrySearchLimit caps how many search hits a lookup returns
const RegistrySearchLimit = 20

// RegistryService proxies the external company registry and imports records
type RegistryService struct {
	registryClient company.RegistryClient
	companyRepo    company.CompanyRepository
	logger         *zap.Logger
}

// NewRegistryService creates a new registry service
func NewRegistryService(
	registryClient company.RegistryClient,
	companyRepo company.CompanyRepository,
	logger *zap.Logger,
) *RegistryService {
	return &RegistryService{
		registryClient: registryClient,
		companyRepo:    companyRepo,
		logger:         logger,
	}
}

// Lookup fetches a single registry record by registration number
func (s *RegistryService) Lookup(ctx context.Context, number string) (*company.RegistryResult, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return nil, shared.NewDomainError("INVALID_REGISTRATION_NUMBER", "Registration number cannot be empty")
	}

	result, err := s.registryClient.GetByNumber(ctx, number)
	if err != nil {
		return nil, mapRegistryError(err)
	}

	return result, nil
}

// Search searches registry records by company name
func (s *RegistryService) Search(ctx context.Context, name string) ([]company.RegistryResult, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, shared.NewDomainError("INVALID_SEARCH_TERM", "Search term must be at least 2 characters")
	}

	results, err := s.registryClient.SearchByName(ctx, name, RegistrySearchLimit)
	if err != nil {
		return nil, mapRegistryError(err)
	}

	return results, nil
}

// CreateFromRegistry imports a registry record as a new company
func (s *RegistryService) CreateFromRegistry(ctx context.Context, input CreateFromRegistryInput) (*CompanyDTO, error) {
	ownerID := input.OwnerID
	if ownerID == uuid.Nil {
		ownerID = input.Actor.UserID
	}
	if ownerID != input.Actor.UserID && !input.Actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	number := strings.ToUpper(strings.TrimSpace(input.RegistrationNumber))

	exists, err := s.companyRepo.ExistsByRegistrationNumber(ctx, input.TenantID, number)
	if err != nil {
		s.logger.Error("Failed to check registration number", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check registration number")
	}
	if exists {
		return nil, shared.NewDomainError("REGISTRATION_NUMBER_EXISTS", "A company with this registration number already exists")
	}

	record, err := s.registryClient.GetByNumber(ctx, number)
	if err != nil {
		return nil, mapRegistryError(err)
	}

	c, err := company.NewCompany(input.TenantID, ownerID, record.Name, registryCompanyType(record.Type))
	if err != nil {
		return nil, err
	}
	if err := c.SetRegistrationNumber(record.RegistrationNumber); err != nil {
		return nil, err
	}
	if len(record.SICCodes) > 0 {
		if err := c.SetSICCode(record.SICCodes[0]); err != nil {
			return nil, err
		}
	}
	if record.IncorporatedOn != nil {
		if err := c.SetIncorporatedOn(*record.IncorporatedOn); err != nil {
			return nil, err
		}
	}
	if record.RegisteredOffice.Line1 != "" {
		address, err := registryAddress(record.RegisteredOffice)
		if err != nil {
			return nil, err
		}
		if err := c.SetRegisteredAddress(address); err != nil {
			return nil, err
		}
	}
	if len(record.Officers) > 0 {
		directors := make([]company.Director, 0, len(record.Officers))
		for _, officer := range record.Officers {
			directors = append(directors, company.Director{
				Name:        officer.Name,
				Role:        officer.Role,
				AppointedOn: officer.AppointedOn,
			})
		}
		if err := c.SetDirectors(directors); err != nil {
			return nil, err
		}
	}

	if err := s.companyRepo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to save imported company", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create company")
	}

	s.logger.Info("Company imported from registry",
		zap.String("company_id", c.ID.String()),
		zap.String("registration_number", number))

	dto := ToCompanyDTO(c)
	return &dto, nil
}

// registryCompanyType maps registry type strings onto company types
func registryCompanyType(registryType string) company.CompanyType {
	switch strings.ToLower(strings.TrimSpace(registryType)) {
	case "llp", "limited-liability-partnership":
		return company.CompanyTypeLLP
	case "plc", "public-limited-company":
		return company.CompanyTypePLC
	case "sole-trader", "sole_trader":
		return company.CompanyTypeSoleTrader
	case "partnership":
		return company.CompanyTypePartnership
	default:
		return company.CompanyTypeLtd
	}
}

func registryAddress(office company.RegistryAddress) (valueobject.Address, error) {
	opts := make([]valueobject.AddressOption, 0, 2)
	if office.Line2 != "" {
		opts = append(opts, valueobject.WithLine2(office.Line2))
	}
	if office.Country != "" {
		opts = append(opts, valueobject.WithCountry(office.Country))
	}
	return valueobject.NewAddress(office.Line1, office.City, office.Postcode, opts...)
}

func mapRegistryError(err error) error {
	switch {
	case errors.Is(err, company.ErrRegistryNotFound):
		return shared.NewDomainError("REGISTRY_NOT_FOUND", "Company not found in registry")
	case errors.Is(err, company.ErrRegistryRateLimited):
		return shared.NewDomainError("REGISTRY_RATE_LIMITED", "Registry rate limit exceeded, try again shortly")
	default:
		return shared.NewDomainError("REGISTRY_UNAVAILABLE", "Company registry is currently unavailable")
	}
}
