package models

import (
	"encoding/json"
	"time"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// logger for model conversion errors (silent failures are logged for debugging)
var modelLogger = zap.L().Named("persistence.models")

// CompanyModel is the persistence model for the Company domain entity.
type CompanyModel struct {
	TenantAggregateModel
	OwnerID            uuid.UUID             `gorm:"type:uuid;not null;index"`
	LegalName          string                `gorm:"type:varchar(200);not null"`
	TradingName        string                `gorm:"type:varchar(200)"`
	RegistrationNumber string                `gorm:"type:varchar(20);index"`
	Type               company.CompanyType   `gorm:"type:varchar(20);not null"`
	SICCode            string                `gorm:"type:varchar(10)"`
	IncorporatedOn     *time.Time            `gorm:"type:date"`
	RegisteredAddress  valueobject.Address   `gorm:"type:jsonb"`
	DirectorsJSON      string                `gorm:"column:directors;type:jsonb;default:'[]'"`
	MonthlyRevenue     valueobject.Money     `gorm:"type:decimal(18,4);not null;default:0"`
	Status             company.CompanyStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *company.Company {
	c := &company.Company{
		OwnerID:            m.OwnerID,
		LegalName:          m.LegalName,
		TradingName:        m.TradingName,
		RegistrationNumber: m.RegistrationNumber,
		Type:               m.Type,
		SICCode:            m.SICCode,
		IncorporatedOn:     m.IncorporatedOn,
		RegisteredAddress:  m.RegisteredAddress,
		Directors:          make([]company.Director, 0),
		MonthlyRevenue:     m.MonthlyRevenue,
		Status:             m.Status,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)

	if m.DirectorsJSON != "" && m.DirectorsJSON != "[]" {
		var directors []company.Director
		if err := json.Unmarshal([]byte(m.DirectorsJSON), &directors); err != nil {
			modelLogger.Warn("failed to parse directors JSON",
				zap.String("company_id", m.ID.String()),
				zap.Error(err))
		} else {
			c.Directors = directors
		}
	}

	return c
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *company.Company) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.OwnerID = c.OwnerID
	m.LegalName = c.LegalName
	m.TradingName = c.TradingName
	m.RegistrationNumber = c.RegistrationNumber
	m.Type = c.Type
	m.SICCode = c.SICCode
	m.IncorporatedOn = c.IncorporatedOn
	m.RegisteredAddress = c.RegisteredAddress
	m.MonthlyRevenue = c.MonthlyRevenue
	m.Status = c.Status

	m.DirectorsJSON = "[]"
	if len(c.Directors) > 0 {
		if jsonBytes, err := json.Marshal(c.Directors); err == nil {
			m.DirectorsJSON = string(jsonBytes)
		}
	}
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *company.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}
