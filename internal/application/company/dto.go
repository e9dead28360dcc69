package company

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Actor identifies who is performing an operation
type Actor struct {
	UserID uuid.UUID
	Role   identity.UserRole
}

// IsAdmin checks if the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == identity.RoleAdmin
}

// IsPartner checks if the actor holds the partner role
func (a Actor) IsPartner() bool {
	return a.Role == identity.RolePartner
}

// CreateCompanyInput contains the input for creating a company
type CreateCompanyInput struct {
	TenantID    uuid.UUID
	Actor       Actor
	OwnerID     uuid.UUID // Defaults to the actor when unset
	LegalName   string
	TradingName string
	Type        company.CompanyType
}

// UpdateCompanyInput contains the input for updating company details
type UpdateCompanyInput struct {
	TenantID           uuid.UUID
	Actor              Actor
	CompanyID          uuid.UUID
	LegalName          *string
	TradingName        *string
	RegistrationNumber *string
	SICCode            *string
	IncorporatedOn     *time.Time
	Address            *valueobject.Address
	MonthlyRevenue     *valueobject.Money
	Directors          []company.Director
}

// ListCompaniesInput contains the input for listing companies
type ListCompaniesInput struct {
	TenantID uuid.UUID
	Actor    Actor
	Page     int
	PageSize int
}

// CompanyDTO is the transport form of a company
type CompanyDTO struct {
	ID                 uuid.UUID           `json:"id"`
	OwnerID            uuid.UUID           `json:"owner_id"`
	LegalName          string              `json:"legal_name"`
	TradingName        string              `json:"trading_name,omitempty"`
	RegistrationNumber string              `json:"registration_number,omitempty"`
	Type               company.CompanyType `json:"type"`
	SICCode            string              `json:"sic_code,omitempty"`
	IncorporatedOn     *time.Time          `json:"incorporated_on,omitempty"`
	MonthsTrading      int                 `json:"months_trading"`
	RegisteredAddress  valueobject.Address `json:"registered_address"`
	Directors          []company.Director  `json:"directors,omitempty"`
	MonthlyRevenue     valueobject.Money   `json:"monthly_revenue"`
	Status             company.CompanyStatus `json:"status"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// ToCompanyDTO maps a domain company to its transport form
func ToCompanyDTO(c *company.Company) CompanyDTO {
	return CompanyDTO{
		ID:                 c.ID,
		OwnerID:            c.OwnerID,
		LegalName:          c.LegalName,
		TradingName:        c.TradingName,
		RegistrationNumber: c.RegistrationNumber,
		Type:               c.Type,
		SICCode:            c.SICCode,
		IncorporatedOn:     c.IncorporatedOn,
		MonthsTrading:      c.MonthsTrading(),
		RegisteredAddress:  c.RegisteredAddress,
		Directors:          c.Directors,
		MonthlyRevenue:     c.MonthlyRevenue,
		Status:             c.Status,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// CompanyListResult represents a paginated company list
type CompanyListResult struct {
	Companies  []CompanyDTO `json:"companies"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

// CreateFromRegistryInput contains the input for importing a registry record
type CreateFromRegistryInput struct {
	TenantID           uuid.UUID
	Actor              Actor
	OwnerID            uuid.UUID // Defaults to the actor when unset
	RegistrationNumber string
}
