package partner

import (
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeAssignment = "PartnerAssignment"
	AggregateTypeLead       = "Lead"
)

// Event type constants
const (
	EventTypePartnerAssigned = "PartnerAssigned"
	EventTypePartnerRevoked  = "PartnerRevoked"
	EventTypeLeadCreated     = "LeadCreated"
	EventTypeLeadQualified   = "LeadQualified"
	EventTypeLeadConverted   = "LeadConverted"
)

// PartnerAssignedEvent is published when a partner is assigned to a company
type PartnerAssignedEvent struct {
	shared.BaseDomainEvent
	PartnerID uuid.UUID `json:"partner_id"`
	CompanyID uuid.UUID `json:"company_id"`
}

// NewPartnerAssignedEvent creates a new PartnerAssignedEvent
func NewPartnerAssignedEvent(assignment *Assignment) *PartnerAssignedEvent {
	return &PartnerAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartnerAssigned, AggregateTypeAssignment, assignment.ID, assignment.TenantID),
		PartnerID:       assignment.PartnerID,
		CompanyID:       assignment.CompanyID,
	}
}

// PartnerRevokedEvent is published when an assignment is revoked
type PartnerRevokedEvent struct {
	shared.BaseDomainEvent
	PartnerID uuid.UUID `json:"partner_id"`
	CompanyID uuid.UUID `json:"company_id"`
}

// NewPartnerRevokedEvent creates a new PartnerRevokedEvent
func NewPartnerRevokedEvent(assignment *Assignment) *PartnerRevokedEvent {
	return &PartnerRevokedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartnerRevoked, AggregateTypeAssignment, assignment.ID, assignment.TenantID),
		PartnerID:       assignment.PartnerID,
		CompanyID:       assignment.CompanyID,
	}
}

// LeadCreatedEvent is published when a lead is captured
type LeadCreatedEvent struct {
	shared.BaseDomainEvent
	Source       string `json:"source"`
	ContactEmail string `json:"contact_email"`
}

// NewLeadCreatedEvent creates a new LeadCreatedEvent
func NewLeadCreatedEvent(lead *Lead) *LeadCreatedEvent {
	return &LeadCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadCreated, AggregateTypeLead, lead.ID, lead.TenantID),
		Source:          lead.Source,
		ContactEmail:    lead.ContactEmail,
	}
}

// LeadQualifiedEvent is published when a lead is qualified
type LeadQualifiedEvent struct {
	shared.BaseDomainEvent
	ContactEmail string `json:"contact_email"`
}

// NewLeadQualifiedEvent creates a new LeadQualifiedEvent
func NewLeadQualifiedEvent(lead *Lead) *LeadQualifiedEvent {
	return &LeadQualifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadQualified, AggregateTypeLead, lead.ID, lead.TenantID),
		ContactEmail:    lead.ContactEmail,
	}
}

// LeadConvertedEvent is published when a lead becomes a client
type LeadConvertedEvent struct {
	shared.BaseDomainEvent
	UserID        uuid.UUID `json:"user_id"`
	CompanyID     uuid.UUID `json:"company_id"`
	ApplicationID uuid.UUID `json:"application_id"`
}

// NewLeadConvertedEvent creates a new LeadConvertedEvent
func NewLeadConvertedEvent(lead *Lead) *LeadConvertedEvent {
	return &LeadConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadConverted, AggregateTypeLead, lead.ID, lead.TenantID),
		UserID:          *lead.ConvertedUserID,
		CompanyID:       *lead.ConvertedCompanyID,
		ApplicationID:   *lead.ConvertedApplicationID,
	}
}
