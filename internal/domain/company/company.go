package company

import (
	"regexp"
	"strings"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CompanyStatus represents the status of a company
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "active"
	CompanyStatusArchived CompanyStatus = "archived"
)

// CompanyType represents the legal form of a company
type CompanyType string

const (
	CompanyTypeLtd         CompanyType = "ltd"
	CompanyTypeLLP         CompanyType = "llp"
	CompanyTypePLC         CompanyType = "plc"
	CompanyTypeSoleTrader  CompanyType = "sole_trader"
	CompanyTypePartnership CompanyType = "partnership"
)

// Director is a company officer captured from onboarding or the registry
type Director struct {
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	AppointedOn *time.Time `json:"appointed_on,omitempty"`
}

// Company represents a borrowing business in the portal
// It is the aggregate root for company-related operations
type Company struct {
	shared.TenantAggregateRoot
	OwnerID            uuid.UUID // Client user that owns this company
	LegalName          string
	TradingName        string
	RegistrationNumber string // Companies registry number, empty for sole traders
	Type               CompanyType
	SICCode            string
	IncorporatedOn     *time.Time
	RegisteredAddress  valueobject.Address
	Directors          []Director
	MonthlyRevenue     valueobject.Money
	Status             CompanyStatus
}

// NewCompany creates a new company with required fields
func NewCompany(tenantID, ownerID uuid.UUID, legalName string, companyType CompanyType) (*Company, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner cannot be empty")
	}
	if err := validateLegalName(legalName); err != nil {
		return nil, err
	}
	if err := validateCompanyType(companyType); err != nil {
		return nil, err
	}

	company := &Company{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, ownerID),
		OwnerID:             ownerID,
		LegalName:           strings.TrimSpace(legalName),
		Type:                companyType,
		Directors:           make([]Director, 0),
		MonthlyRevenue:      valueobject.ZeroGBP(),
		Status:              CompanyStatusActive,
	}

	company.AddDomainEvent(NewCompanyCreatedEvent(company))

	return company, nil
}

// Update updates the company's basic information
func (c *Company) Update(legalName, tradingName string) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	if err := validateLegalName(legalName); err != nil {
		return err
	}
	if tradingName != "" && len(tradingName) > 200 {
		return shared.NewDomainError("INVALID_TRADING_NAME", "Trading name cannot exceed 200 characters")
	}

	c.LegalName = strings.TrimSpace(legalName)
	c.TradingName = strings.TrimSpace(tradingName)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetRegistrationNumber sets the registry number
func (c *Company) SetRegistrationNumber(number string) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}

	number = strings.ToUpper(strings.TrimSpace(number))
	if number != "" {
		if err := validateRegistrationNumber(number); err != nil {
			return err
		}
	}

	c.RegistrationNumber = number
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetSICCode sets the standard industrial classification code
func (c *Company) SetSICCode(code string) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}

	code = strings.TrimSpace(code)
	if code != "" && !regexp.MustCompile(`^[0-9]{4,5}$`).MatchString(code) {
		return shared.NewDomainError("INVALID_SIC_CODE", "SIC code must be 4 or 5 digits")
	}

	c.SICCode = code
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetIncorporatedOn sets the incorporation date
func (c *Company) SetIncorporatedOn(date time.Time) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	if date.After(time.Now()) {
		return shared.NewDomainError("INVALID_INCORPORATION_DATE", "Incorporation date cannot be in the future")
	}

	c.IncorporatedOn = &date
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetRegisteredAddress sets the registered office address
func (c *Company) SetRegisteredAddress(address valueobject.Address) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}

	c.RegisteredAddress = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetDirectors replaces the director list
func (c *Company) SetDirectors(directors []Director) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	for _, d := range directors {
		if strings.TrimSpace(d.Name) == "" {
			return shared.NewDomainError("INVALID_DIRECTOR", "Director name cannot be empty")
		}
	}

	c.Directors = directors
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetMonthlyRevenue records the average monthly revenue
func (c *Company) SetMonthlyRevenue(revenue valueobject.Money) error {
	if err := c.ensureMutable(); err != nil {
		return err
	}
	if revenue.IsNegative() {
		return shared.NewDomainError("INVALID_REVENUE", "Monthly revenue cannot be negative")
	}

	c.MonthlyRevenue = revenue
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Reassign moves ownership to another user (admin operation)
func (c *Company) Reassign(newOwnerID uuid.UUID) error {
	if newOwnerID == uuid.Nil {
		return shared.NewDomainError("INVALID_OWNER", "Owner cannot be empty")
	}
	if err := c.ensureMutable(); err != nil {
		return err
	}

	c.OwnerID = newOwnerID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Archive archives the company
func (c *Company) Archive() error {
	if c.Status == CompanyStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Company is already archived")
	}

	c.Status = CompanyStatusArchived
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCompanyArchivedEvent(c))

	return nil
}

// Restore reactivates an archived company
func (c *Company) Restore() error {
	if c.Status != CompanyStatusArchived {
		return shared.NewDomainError("NOT_ARCHIVED", "Company is not archived")
	}

	c.Status = CompanyStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the company is active
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

// IsOwnedBy returns true if the given user owns the company
func (c *Company) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerID == userID
}

// MonthsTrading returns whole months since incorporation, 0 when unknown
func (c *Company) MonthsTrading() int {
	if c.IncorporatedOn == nil {
		return 0
	}

	now := time.Now()
	months := (now.Year()-c.IncorporatedOn.Year())*12 + int(now.Month()) - int(c.IncorporatedOn.Month())
	if now.Day() < c.IncorporatedOn.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// DisplayName returns the trading name if set, otherwise the legal name
func (c *Company) DisplayName() string {
	if c.TradingName != "" {
		return c.TradingName
	}
	return c.LegalName
}

func (c *Company) ensureMutable() error {
	if c.Status == CompanyStatusArchived {
		return shared.NewDomainError("COMPANY_ARCHIVED", "Archived companies cannot be modified")
	}
	return nil
}

// Validation functions

func validateLegalName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_LEGAL_NAME", "Legal name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_LEGAL_NAME", "Legal name cannot exceed 200 characters")
	}
	return nil
}

func validateCompanyType(companyType CompanyType) error {
	switch companyType {
	case CompanyTypeLtd, CompanyTypeLLP, CompanyTypePLC, CompanyTypeSoleTrader, CompanyTypePartnership:
		return nil
	default:
		return shared.NewDomainError("INVALID_COMPANY_TYPE", "Unknown company type")
	}
}

func validateRegistrationNumber(number string) error {
	// Registry numbers are 8 characters: digits, or a two-letter prefix plus six digits
	if !regexp.MustCompile(`^([0-9]{8}|[A-Z]{2}[0-9]{6})$`).MatchString(number) {
		return shared.NewDomainError("INVALID_REGISTRATION_NUMBER", "Registration number must be 8 digits or a 2-letter prefix with 6 digits")
	}
	return nil
}
