package company

import (
	"github.com/brokerhub/backend/internal/domain/shared"
)

// Aggregate type constant for Company
const AggregateTypeCompany = "Company"

// Company domain event types
const (
	EventTypeCompanyCreated  = "CompanyCreated"
	EventTypeCompanyArchived = "CompanyArchived"
)

// CompanyCreatedEvent is published when a company is created
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	LegalName string      `json:"legal_name"`
	Type      CompanyType `json:"type"`
	OwnerID   string      `json:"owner_id"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(company *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, company.ID, company.TenantID),
		LegalName:       company.LegalName,
		Type:            company.Type,
		OwnerID:         company.OwnerID.String(),
	}
}

// CompanyArchivedEvent is published when a company is archived
type CompanyArchivedEvent struct {
	shared.BaseDomainEvent
	LegalName string `json:"legal_name"`
}

// NewCompanyArchivedEvent creates a new CompanyArchivedEvent
func NewCompanyArchivedEvent(company *Company) *CompanyArchivedEvent {
	return &CompanyArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyArchived, AggregateTypeCompany, company.ID, company.TenantID),
		LegalName:       company.LegalName,
	}
}
