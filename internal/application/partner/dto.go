package partner

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/partner"
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

// AssignPartnerInput contains the input for assigning a partner to a company
type AssignPartnerInput struct {
	TenantID  uuid.UUID
	Actor     Actor
	PartnerID uuid.UUID
	CompanyID uuid.UUID
}

// AssignmentDTO is the transport form of a partner assignment
type AssignmentDTO struct {
	ID         uuid.UUID                `json:"id"`
	PartnerID  uuid.UUID                `json:"partner_id"`
	CompanyID  uuid.UUID                `json:"company_id"`
	AssignedBy uuid.UUID                `json:"assigned_by"`
	AssignedAt time.Time                `json:"assigned_at"`
	Status     partner.AssignmentStatus `json:"status"`
	RevokedAt  *time.Time               `json:"revoked_at,omitempty"`
}

// ToAssignmentDTO maps a domain assignment to its transport form
func ToAssignmentDTO(a *partner.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         a.ID,
		PartnerID:  a.PartnerID,
		CompanyID:  a.CompanyID,
		AssignedBy: a.AssignedBy,
		AssignedAt: a.AssignedAt,
		Status:     a.Status,
		RevokedAt:  a.RevokedAt,
	}
}

// CreateLeadInput contains the input for creating a lead
type CreateLeadInput struct {
	TenantID        uuid.UUID
	Actor           Actor
	Source          string
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	CompanyName     string
	RequestedAmount *valueobject.Money
	Notes           string
}

// UpdateLeadInput contains the input for updating a lead
type UpdateLeadInput struct {
	TenantID        uuid.UUID
	Actor           Actor
	LeadID          uuid.UUID
	ContactPhone    *string
	CompanyName     *string
	Notes           *string
	RequestedAmount *valueobject.Money
}

// ListLeadsInput contains the input for listing leads
type ListLeadsInput struct {
	TenantID uuid.UUID
	Actor    Actor
	Status   *partner.LeadStatus
	Page     int
	PageSize int
}

// LeadDTO is the transport form of a lead
type LeadDTO struct {
	ID                     uuid.UUID          `json:"id"`
	Source                 string             `json:"source,omitempty"`
	ContactName            string             `json:"contact_name"`
	ContactEmail           string             `json:"contact_email"`
	ContactPhone           string             `json:"contact_phone,omitempty"`
	CompanyName            string             `json:"company_name,omitempty"`
	RequestedAmount        valueobject.Money  `json:"requested_amount"`
	Notes                  string             `json:"notes,omitempty"`
	Status                 partner.LeadStatus `json:"status"`
	OwnerID                *uuid.UUID         `json:"owner_id,omitempty"`
	DisqualifiedFor        string             `json:"disqualified_for,omitempty"`
	ConvertedUserID        *uuid.UUID         `json:"converted_user_id,omitempty"`
	ConvertedCompanyID     *uuid.UUID         `json:"converted_company_id,omitempty"`
	ConvertedApplicationID *uuid.UUID         `json:"converted_application_id,omitempty"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// ToLeadDTO maps a domain lead to its transport form
func ToLeadDTO(l *partner.Lead) LeadDTO {
	return LeadDTO{
		ID:                     l.ID,
		Source:                 l.Source,
		ContactName:            l.ContactName,
		ContactEmail:           l.ContactEmail,
		ContactPhone:           l.ContactPhone,
		CompanyName:            l.CompanyName,
		RequestedAmount:        l.RequestedAmount,
		Notes:                  l.Notes,
		Status:                 l.Status,
		OwnerID:                l.OwnerID,
		DisqualifiedFor:        l.DisqualifiedFor,
		ConvertedUserID:        l.ConvertedUserID,
		ConvertedCompanyID:     l.ConvertedCompanyID,
		ConvertedApplicationID: l.ConvertedApplicationID,
		CreatedAt:              l.CreatedAt,
		UpdatedAt:              l.UpdatedAt,
	}
}

// LeadListResult represents a paginated lead list
type LeadListResult struct {
	Leads      []LeadDTO `json:"leads"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// ConvertLeadInput contains the input for converting a qualified lead
type ConvertLeadInput struct {
	TenantID   uuid.UUID
	Actor      Actor
	LeadID     uuid.UUID
	Amount     *valueobject.Money // Defaults to the lead's requested amount
	Purpose    funding.Purpose    // Defaults to working capital
	TermMonths int                // Defaults to 12
}

// ConvertLeadResult carries the entities created from a lead, plus the raw
// invite token for onboarding the new client
type ConvertLeadResult struct {
	UserID          uuid.UUID
	CompanyID       uuid.UUID
	ApplicationID   uuid.UUID
	InviteToken     string
	InviteExpiresAt time.Time
}
