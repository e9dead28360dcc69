package handler

import (
	"time"
)

// AddressRequest represents a postal address in request bodies
// @Description UK postal address
type AddressRequest struct {
	Line1    string `json:"line1" binding:"required,max=200" example:"1 Poultry"`
	Line2    string `json:"line2" binding:"max=200"`
	City     string `json:"city" binding:"required,max=100" example:"London"`
	Postcode string `json:"postcode" binding:"required,max=20" example:"EC2R 8EJ"`
	Country  string `json:"country" binding:"max=100" example:"United Kingdom"`
}

// DirectorRequest represents a company director in request bodies
// @Description Company director
type DirectorRequest struct {
	Name        string     `json:"name" binding:"required,max=200" example:"Jane Doe"`
	Role        string     `json:"role" binding:"max=100" example:"director"`
	AppointedOn *time.Time `json:"appointed_on"`
}

// CreateCompanyRequest represents a request to create a company
// @Description Request body for creating a company
type CreateCompanyRequest struct {
	LegalName   string `json:"legal_name" binding:"required,min=1,max=200" example:"Acme Trading Ltd"`
	TradingName string `json:"trading_name" binding:"max=200" example:"Acme"`
	Type        string `json:"type" binding:"required,oneof=ltd llp plc sole_trader partnership" example:"ltd"`
	// OwnerID lets partners and admins create on behalf of a client
	OwnerID string `json:"owner_id" binding:"omitempty,uuid"`
}

// UpdateCompanyRequest represents a request to update a company
// @Description Request body for updating a company; omitted fields are unchanged
type UpdateCompanyRequest struct {
	LegalName          *string           `json:"legal_name" binding:"omitempty,min=1,max=200"`
	TradingName        *string           `json:"trading_name" binding:"omitempty,max=200"`
	RegistrationNumber *string           `json:"registration_number" binding:"omitempty,max=20"`
	SICCode            *string           `json:"sic_code" binding:"omitempty,max=10"`
	IncorporatedOn     *time.Time        `json:"incorporated_on"`
	Address            *AddressRequest   `json:"address"`
	MonthlyRevenue     *float64          `json:"monthly_revenue" binding:"omitempty,gte=0"`
	Directors          []DirectorRequest `json:"directors"`
}

// ReassignCompanyRequest represents a request to change a company's owner
// @Description Request body for reassigning company ownership
type ReassignCompanyRequest struct {
	OwnerID string `json:"owner_id" binding:"required,uuid"`
}

// CreateFromRegistryRequest represents a request to import a company from the registry
// @Description Request body for creating a company from a registry record
type CreateFromRegistryRequest struct {
	RegistrationNumber string `json:"registration_number" binding:"required,max=20" example:"01234567"`
	// OwnerID lets partners and admins import on behalf of a client
	OwnerID string `json:"owner_id" binding:"omitempty,uuid"`
}
