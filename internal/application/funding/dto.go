package funding

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

// CreateApplicationInput contains the input for creating a draft application
type CreateApplicationInput struct {
	TenantID   uuid.UUID
	Actor      Actor
	CompanyID  uuid.UUID
	Amount     valueobject.Money
	Purpose    funding.Purpose
	TermMonths int
}

// UpdateDraftInput contains the input for editing a draft application.
// Nil fields keep their current value.
type UpdateDraftInput struct {
	TenantID      uuid.UUID
	Actor         Actor
	ApplicationID uuid.UUID
	Amount        *valueobject.Money
	Purpose       *funding.Purpose
	TermMonths    *int
}

// TransitionInput contains the input for moving an application through the
// pipeline
type TransitionInput struct {
	TenantID      uuid.UUID
	Actor         Actor
	ApplicationID uuid.UUID
	Target        funding.Stage
	Note          string
}

// RecordOfferInput contains the input for recording a lender offer
type RecordOfferInput struct {
	TenantID      uuid.UUID
	Actor         Actor
	ApplicationID uuid.UUID
	LenderName    string
	Amount        valueobject.Money
	RatePct       decimal.Decimal
}

// WithdrawInput contains the input for withdrawing an application
type WithdrawInput struct {
	TenantID      uuid.UUID
	Actor         Actor
	ApplicationID uuid.UUID
	Note          string
}

// ListApplicationsInput contains the input for listing applications
type ListApplicationsInput struct {
	TenantID uuid.UUID
	Actor    Actor
	Stage    *funding.Stage
	Page     int
	PageSize int
}

// ApplicationDTO is the transport form of a funding application
type ApplicationDTO struct {
	ID            uuid.UUID             `json:"id"`
	CompanyID     uuid.UUID             `json:"company_id"`
	ApplicantID   uuid.UUID             `json:"applicant_id"`
	Amount        valueobject.Money     `json:"amount"`
	Purpose       funding.Purpose       `json:"purpose"`
	TermMonths    int                   `json:"term_months"`
	Stage         funding.Stage         `json:"stage"`
	StageHistory  []funding.StageChange `json:"stage_history"`
	Offer         *funding.Offer        `json:"offer,omitempty"`
	DeclineReason string                `json:"decline_reason,omitempty"`
	SubmittedAt   *time.Time            `json:"submitted_at,omitempty"`
	DecidedAt     *time.Time            `json:"decided_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToApplicationDTO maps a domain application to its transport form
func ToApplicationDTO(a *funding.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:            a.ID,
		CompanyID:     a.CompanyID,
		ApplicantID:   a.ApplicantID,
		Amount:        a.Amount,
		Purpose:       a.Purpose,
		TermMonths:    a.TermMonths,
		Stage:         a.Stage,
		StageHistory:  a.StageHistory,
		Offer:         a.Offer,
		DeclineReason: a.DeclineReason,
		SubmittedAt:   a.SubmittedAt,
		DecidedAt:     a.DecidedAt,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ApplicationListResult represents a paginated application list
type ApplicationListResult struct {
	Applications []ApplicationDTO `json:"applications"`
	Total        int64            `json:"total"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
	TotalPages   int              `json:"total_pages"`
}

// OnboardingDTO is the transport form of an onboarding wizard
type OnboardingDTO struct {
	ID          uuid.UUID                `json:"id"`
	UserID      uuid.UUID                `json:"user_id"`
	CurrentStep funding.Step             `json:"current_step"`
	Personal    *funding.PersonalDetails `json:"personal,omitempty"`
	Company     *funding.CompanyDetails  `json:"company,omitempty"`
	Funding     *funding.FundingDetails  `json:"funding,omitempty"`
	DocumentIDs []uuid.UUID              `json:"document_ids"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
	CompanyID   *uuid.UUID               `json:"company_id,omitempty"`
	// ApplicationID references the draft created on completion
	ApplicationID *uuid.UUID `json:"application_id,omitempty"`
}

// ToOnboardingDTO maps a domain onboarding to its transport form
func ToOnboardingDTO(o *funding.Onboarding) OnboardingDTO {
	return OnboardingDTO{
		ID:            o.ID,
		UserID:        o.UserID,
		CurrentStep:   o.CurrentStep,
		Personal:      o.Personal,
		Company:       o.Company,
		Funding:       o.Funding,
		DocumentIDs:   o.DocumentIDs,
		CompletedAt:   o.CompletedAt,
		CompanyID:     o.CompanyID,
		ApplicationID: o.ApplicationID,
	}
}

// CompleteOnboardingResult carries the entities created when the wizard
// finishes
type CompleteOnboardingResult struct {
	CompanyID     uuid.UUID `json:"company_id"`
	ApplicationID uuid.UUID `json:"application_id"`
}

// CreateLenderInput contains the input for registering a lender
type CreateLenderInput struct {
	TenantID          uuid.UUID
	Actor             Actor
	Name              string
	MinAmount         valueobject.Money
	MaxAmount         valueobject.Money
	MinMonthsTrading  int
	MinMonthlyRevenue valueobject.Money
	ExcludedSICs      []string
	RequiresHomeowner bool
}

// UpdateLenderInput contains the input for updating a lender's thresholds.
// Nil fields keep their current value.
type UpdateLenderInput struct {
	TenantID          uuid.UUID
	Actor             Actor
	LenderID          uuid.UUID
	MinAmount         *valueobject.Money
	MaxAmount         *valueobject.Money
	MinMonthsTrading  *int
	MinMonthlyRevenue *valueobject.Money
	ExcludedSICs      []string
	RequiresHomeowner *bool
	Active            *bool
}

// LenderDTO is the transport form of a lender
type LenderDTO struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	Active            bool              `json:"active"`
	MinAmount         valueobject.Money `json:"min_amount"`
	MaxAmount         valueobject.Money `json:"max_amount"`
	MinMonthsTrading  int               `json:"min_months_trading"`
	MinMonthlyRevenue valueobject.Money `json:"min_monthly_revenue"`
	ExcludedSICs      []string          `json:"excluded_sics,omitempty"`
	RequiresHomeowner bool              `json:"requires_homeowner"`
}

// ToLenderDTO maps a domain lender to its transport form
func ToLenderDTO(l *funding.Lender) LenderDTO {
	return LenderDTO{
		ID:                l.ID,
		Name:              l.Name,
		Active:            l.Active,
		MinAmount:         l.MinAmount,
		MaxAmount:         l.MaxAmount,
		MinMonthsTrading:  l.MinMonthsTrading,
		MinMonthlyRevenue: l.MinMonthlyRevenue,
		ExcludedSICs:      l.ExcludedSICs,
		RequiresHomeowner: l.RequiresHomeowner,
	}
}

// EligibilityReport is the scored lender panel for one application
type EligibilityReport struct {
	ApplicationID uuid.UUID               `json:"application_id"`
	Verdicts      []funding.LenderVerdict `json:"verdicts"`
	GeneratedAt   time.Time               `json:"generated_at"`
}
