package models

import (
	"encoding/json"
	"time"

	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApplicationModel is the persistence model for the funding Application entity.
// Stage history and the lender offer are stored as JSONB documents.
type ApplicationModel struct {
	TenantAggregateModel
	CompanyID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	ApplicantID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount           valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`
	Purpose          funding.Purpose   `gorm:"type:varchar(30);not null"`
	TermMonths       int               `gorm:"not null"`
	Stage            funding.Stage     `gorm:"type:varchar(20);not null;default:'draft';index"`
	StageHistoryJSON string            `gorm:"column:stage_history;type:jsonb;default:'[]'"`
	OfferJSON        string            `gorm:"column:offer;type:jsonb"`
	DeclineReason    string            `gorm:"type:text"`
	SubmittedAt      *time.Time
	DecidedAt        *time.Time
}

// TableName returns the table name for GORM
func (ApplicationModel) TableName() string {
	return "applications"
}

// ToDomain converts the persistence model to a domain Application entity.
func (m *ApplicationModel) ToDomain() *funding.Application {
	app := &funding.Application{
		CompanyID:     m.CompanyID,
		ApplicantID:   m.ApplicantID,
		Amount:        m.Amount,
		Purpose:       m.Purpose,
		TermMonths:    m.TermMonths,
		Stage:         m.Stage,
		StageHistory:  make([]funding.StageChange, 0),
		DeclineReason: m.DeclineReason,
		SubmittedAt:   m.SubmittedAt,
		DecidedAt:     m.DecidedAt,
	}
	m.PopulateTenantAggregateRoot(&app.TenantAggregateRoot)

	if m.StageHistoryJSON != "" && m.StageHistoryJSON != "[]" {
		var history []funding.StageChange
		if err := json.Unmarshal([]byte(m.StageHistoryJSON), &history); err != nil {
			modelLogger.Warn("failed to parse stage_history JSON",
				zap.String("application_id", m.ID.String()),
				zap.Error(err))
		} else {
			app.StageHistory = history
		}
	}

	if m.OfferJSON != "" {
		var offer funding.Offer
		if err := json.Unmarshal([]byte(m.OfferJSON), &offer); err != nil {
			modelLogger.Warn("failed to parse offer JSON",
				zap.String("application_id", m.ID.String()),
				zap.Error(err))
		} else {
			app.Offer = &offer
		}
	}

	return app
}

// FromDomain populates the persistence model from a domain Application entity.
func (m *ApplicationModel) FromDomain(a *funding.Application) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.CompanyID = a.CompanyID
	m.ApplicantID = a.ApplicantID
	m.Amount = a.Amount
	m.Purpose = a.Purpose
	m.TermMonths = a.TermMonths
	m.Stage = a.Stage
	m.DeclineReason = a.DeclineReason
	m.SubmittedAt = a.SubmittedAt
	m.DecidedAt = a.DecidedAt

	m.StageHistoryJSON = "[]"
	if len(a.StageHistory) > 0 {
		if jsonBytes, err := json.Marshal(a.StageHistory); err == nil {
			m.StageHistoryJSON = string(jsonBytes)
		}
	}

	m.OfferJSON = ""
	if a.Offer != nil {
		if jsonBytes, err := json.Marshal(a.Offer); err == nil {
			m.OfferJSON = string(jsonBytes)
		}
	}
}

// ApplicationModelFromDomain creates a new persistence model from a domain Application entity.
func ApplicationModelFromDomain(a *funding.Application) *ApplicationModel {
	m := &ApplicationModel{}
	m.FromDomain(a)
	return m
}

// OnboardingModel is the persistence model for the Onboarding wizard entity.
// Step payloads are stored as JSONB documents, null until submitted.
type OnboardingModel struct {
	TenantAggregateModel
	UserID           uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex"`
	CurrentStep      funding.Step `gorm:"type:varchar(30);not null;default:'personal_details'"`
	PersonalJSON     string       `gorm:"column:personal_details;type:jsonb"`
	CompanyJSON      string       `gorm:"column:company_details;type:jsonb"`
	FundingJSON      string       `gorm:"column:funding_details;type:jsonb"`
	DocumentIDsJSON  string       `gorm:"column:document_ids;type:jsonb;default:'[]'"`
	CompletedAt      *time.Time
	CompanyID        *uuid.UUID `gorm:"type:uuid"`
	ApplicationID    *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (OnboardingModel) TableName() string {
	return "onboardings"
}

// ToDomain converts the persistence model to a domain Onboarding entity.
func (m *OnboardingModel) ToDomain() *funding.Onboarding {
	o := &funding.Onboarding{
		UserID:        m.UserID,
		CurrentStep:   m.CurrentStep,
		DocumentIDs:   make([]uuid.UUID, 0),
		CompletedAt:   m.CompletedAt,
		CompanyID:     m.CompanyID,
		ApplicationID: m.ApplicationID,
	}
	m.PopulateTenantAggregateRoot(&o.TenantAggregateRoot)

	if m.PersonalJSON != "" {
		var personal funding.PersonalDetails
		if err := json.Unmarshal([]byte(m.PersonalJSON), &personal); err != nil {
			modelLogger.Warn("failed to parse personal_details JSON",
				zap.String("onboarding_id", m.ID.String()),
				zap.Error(err))
		} else {
			o.Personal = &personal
		}
	}

	if m.CompanyJSON != "" {
		var companyDetails funding.CompanyDetails
		if err := json.Unmarshal([]byte(m.CompanyJSON), &companyDetails); err != nil {
			modelLogger.Warn("failed to parse company_details JSON",
				zap.String("onboarding_id", m.ID.String()),
				zap.Error(err))
		} else {
			o.Company = &companyDetails
		}
	}

	if m.FundingJSON != "" {
		var fundingDetails funding.FundingDetails
		if err := json.Unmarshal([]byte(m.FundingJSON), &fundingDetails); err != nil {
			modelLogger.Warn("failed to parse funding_details JSON",
				zap.String("onboarding_id", m.ID.String()),
				zap.Error(err))
		} else {
			o.Funding = &fundingDetails
		}
	}

	if m.DocumentIDsJSON != "" && m.DocumentIDsJSON != "[]" {
		var documentIDs []uuid.UUID
		if err := json.Unmarshal([]byte(m.DocumentIDsJSON), &documentIDs); err != nil {
			modelLogger.Warn("failed to parse document_ids JSON",
				zap.String("onboarding_id", m.ID.String()),
				zap.Error(err))
		} else {
			o.DocumentIDs = documentIDs
		}
	}

	return o
}

// FromDomain populates the persistence model from a domain Onboarding entity.
func (m *OnboardingModel) FromDomain(o *funding.Onboarding) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.UserID = o.UserID
	m.CurrentStep = o.CurrentStep
	m.CompletedAt = o.CompletedAt
	m.CompanyID = o.CompanyID
	m.ApplicationID = o.ApplicationID

	m.PersonalJSON = ""
	if o.Personal != nil {
		if jsonBytes, err := json.Marshal(o.Personal); err == nil {
			m.PersonalJSON = string(jsonBytes)
		}
	}

	m.CompanyJSON = ""
	if o.Company != nil {
		if jsonBytes, err := json.Marshal(o.Company); err == nil {
			m.CompanyJSON = string(jsonBytes)
		}
	}

	m.FundingJSON = ""
	if o.Funding != nil {
		if jsonBytes, err := json.Marshal(o.Funding); err == nil {
			m.FundingJSON = string(jsonBytes)
		}
	}

	m.DocumentIDsJSON = "[]"
	if len(o.DocumentIDs) > 0 {
		if jsonBytes, err := json.Marshal(o.DocumentIDs); err == nil {
			m.DocumentIDsJSON = string(jsonBytes)
		}
	}
}

// OnboardingModelFromDomain creates a new persistence model from a domain Onboarding entity.
func OnboardingModelFromDomain(o *funding.Onboarding) *OnboardingModel {
	m := &OnboardingModel{}
	m.FromDomain(o)
	return m
}

// LenderModel is the persistence model for the Lender domain entity.
type LenderModel struct {
	TenantAggregateModel
	Name              string            `gorm:"type:varchar(200);not null"`
	Active            bool              `gorm:"not null;default:true;index"`
	MinAmount         valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`
	MaxAmount         valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`
	MinMonthsTrading  int               `gorm:"not null;default:0"`
	MinMonthlyRevenue valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`
	ExcludedSICsJSON  string            `gorm:"column:excluded_sics;type:jsonb;default:'[]'"`
	RequiresHomeowner bool              `gorm:"not null;default:false"`
	Notes             string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LenderModel) TableName() string {
	return "lenders"
}

// ToDomain converts the persistence model to a domain Lender entity.
func (m *LenderModel) ToDomain() *funding.Lender {
	l := &funding.Lender{
		Name:              m.Name,
		Active:            m.Active,
		MinAmount:         m.MinAmount,
		MaxAmount:         m.MaxAmount,
		MinMonthsTrading:  m.MinMonthsTrading,
		MinMonthlyRevenue: m.MinMonthlyRevenue,
		ExcludedSICs:      make([]string, 0),
		RequiresHomeowner: m.RequiresHomeowner,
		Notes:             m.Notes,
	}
	m.PopulateTenantAggregateRoot(&l.TenantAggregateRoot)

	if m.ExcludedSICsJSON != "" && m.ExcludedSICsJSON != "[]" {
		var sics []string
		if err := json.Unmarshal([]byte(m.ExcludedSICsJSON), &sics); err != nil {
			modelLogger.Warn("failed to parse excluded_sics JSON",
				zap.String("lender_id", m.ID.String()),
				zap.Error(err))
		} else {
			l.ExcludedSICs = sics
		}
	}

	return l
}

// FromDomain populates the persistence model from a domain Lender entity.
func (m *LenderModel) FromDomain(l *funding.Lender) {
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	m.Name = l.Name
	m.Active = l.Active
	m.MinAmount = l.MinAmount
	m.MaxAmount = l.MaxAmount
	m.MinMonthsTrading = l.MinMonthsTrading
	m.MinMonthlyRevenue = l.MinMonthlyRevenue
	m.RequiresHomeowner = l.RequiresHomeowner
	m.Notes = l.Notes

	m.ExcludedSICsJSON = "[]"
	if len(l.ExcludedSICs) > 0 {
		if jsonBytes, err := json.Marshal(l.ExcludedSICs); err == nil {
			m.ExcludedSICsJSON = string(jsonBytes)
		}
	}
}

// LenderModelFromDomain creates a new persistence model from a domain Lender entity.
func LenderModelFromDomain(l *funding.Lender) *LenderModel {
	m := &LenderModel{}
	m.FromDomain(l)
	return m
}
