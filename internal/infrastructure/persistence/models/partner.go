package models

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AssignmentModel is the persistence model for the partner-company Assignment entity.
type AssignmentModel struct {
	TenantAggregateModel
	PartnerID  uuid.UUID                `gorm:"type:uuid;not null;index:idx_assignment_partner_company,priority:1"`
	CompanyID  uuid.UUID                `gorm:"type:uuid;not null;index:idx_assignment_partner_company,priority:2;index"`
	AssignedBy uuid.UUID                `gorm:"type:uuid;not null"`
	AssignedAt time.Time                `gorm:"not null"`
	Status     partner.AssignmentStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	RevokedAt  *time.Time
}

// TableName returns the table name for GORM
func (AssignmentModel) TableName() string {
	return "partner_companies"
}

// ToDomain converts the persistence model to a domain Assignment entity.
func (m *AssignmentModel) ToDomain() *partner.Assignment {
	a := &partner.Assignment{
		PartnerID:  m.PartnerID,
		CompanyID:  m.CompanyID,
		AssignedBy: m.AssignedBy,
		AssignedAt: m.AssignedAt,
		Status:     m.Status,
		RevokedAt:  m.RevokedAt,
	}
	m.PopulateTenantAggregateRoot(&a.TenantAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Assignment entity.
func (m *AssignmentModel) FromDomain(a *partner.Assignment) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.PartnerID = a.PartnerID
	m.CompanyID = a.CompanyID
	m.AssignedBy = a.AssignedBy
	m.AssignedAt = a.AssignedAt
	m.Status = a.Status
	m.RevokedAt = a.RevokedAt
}

// AssignmentModelFromDomain creates a new persistence model from a domain Assignment entity.
func AssignmentModelFromDomain(a *partner.Assignment) *AssignmentModel {
	m := &AssignmentModel{}
	m.FromDomain(a)
	return m
}

// LeadModel is the persistence model for the Lead domain entity.
type LeadModel struct {
	TenantAggregateModel
	Source          string             `gorm:"type:varchar(100);index"`
	ContactName     string             `gorm:"type:varchar(200);not null"`
	ContactEmail    string             `gorm:"type:varchar(320);index"`
	ContactPhone    string             `gorm:"type:varchar(50)"`
	CompanyName     string             `gorm:"type:varchar(200)"`
	RequestedAmount valueobject.Money  `gorm:"type:decimal(18,4);not null;default:0"`
	Notes           string             `gorm:"type:text"`
	Status          partner.LeadStatus `gorm:"type:varchar(20);not null;default:'new';index"`
	OwnerID         *uuid.UUID         `gorm:"type:uuid;index"`
	DisqualifiedFor string             `gorm:"type:text"`

	ConvertedUserID        *uuid.UUID `gorm:"type:uuid"`
	ConvertedCompanyID     *uuid.UUID `gorm:"type:uuid"`
	ConvertedApplicationID *uuid.UUID `gorm:"type:uuid"`
	ConvertedAt            *time.Time
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead entity.
func (m *LeadModel) ToDomain() *partner.Lead {
	l := &partner.Lead{
		Source:                 m.Source,
		ContactName:            m.ContactName,
		ContactEmail:           m.ContactEmail,
		ContactPhone:           m.ContactPhone,
		CompanyName:            m.CompanyName,
		RequestedAmount:        m.RequestedAmount,
		Notes:                  m.Notes,
		Status:                 m.Status,
		OwnerID:                m.OwnerID,
		DisqualifiedFor:        m.DisqualifiedFor,
		ConvertedUserID:        m.ConvertedUserID,
		ConvertedCompanyID:     m.ConvertedCompanyID,
		ConvertedApplicationID: m.ConvertedApplicationID,
		ConvertedAt:            m.ConvertedAt,
	}
	m.PopulateTenantAggregateRoot(&l.TenantAggregateRoot)
	return l
}

// FromDomain populates the persistence model from a domain Lead entity.
func (m *LeadModel) FromDomain(l *partner.Lead) {
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	m.Source = l.Source
	m.ContactName = l.ContactName
	m.ContactEmail = l.ContactEmail
	m.ContactPhone = l.ContactPhone
	m.CompanyName = l.CompanyName
	m.RequestedAmount = l.RequestedAmount
	m.Notes = l.Notes
	m.Status = l.Status
	m.OwnerID = l.OwnerID
	m.DisqualifiedFor = l.DisqualifiedFor
	m.ConvertedUserID = l.ConvertedUserID
	m.ConvertedCompanyID = l.ConvertedCompanyID
	m.ConvertedApplicationID = l.ConvertedApplicationID
	m.ConvertedAt = l.ConvertedAt
}

// LeadModelFromDomain creates a new persistence model from a domain Lead entity.
func LeadModelFromDomain(l *partner.Lead) *LeadModel {
	m := &LeadModel{}
	m.FromDomain(l)
	return m
}
