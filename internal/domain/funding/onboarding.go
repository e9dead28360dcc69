package funding

import (
	"strings"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Step represents a step in the onboarding wizard
type Step string

const (
	StepPersonalDetails Step = "personal_details"
	StepCompanyDetails  Step = "company_details"
	StepFundingDetails  Step = "funding_details"
	StepDocuments       Step = "documents"
	StepReview          Step = "review"
	StepCompleted       Step = "completed"
)

// stepOrder is the fixed wizard sequence
var stepOrder = []Step{
	StepPersonalDetails,
	StepCompanyDetails,
	StepFundingDetails,
	StepDocuments,
	StepReview,
	StepCompleted,
}

// Index returns the position of the step in the wizard, -1 if unknown
func (s Step) Index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// IsValid checks if the step is part of the wizard
func (s Step) IsValid() bool {
	return s.Index() >= 0
}

// String returns the string representation of Step
func (s Step) String() string {
	return string(s)
}

// PersonalDetails is the payload of the first wizard step
type PersonalDetails struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	IsHomeowner bool   `json:"is_homeowner"`
}

// CompanyDetails is the payload of the second wizard step
type CompanyDetails struct {
	LegalName          string              `json:"legal_name"`
	TradingName        string              `json:"trading_name,omitempty"`
	Type               string              `json:"type"`
	RegistrationNumber string              `json:"registration_number,omitempty"`
	SICCode            string              `json:"sic_code,omitempty"`
	IncorporatedOn     *time.Time          `json:"incorporated_on,omitempty"`
	Address            valueobject.Address `json:"address"`
	MonthlyRevenue     valueobject.Money   `json:"monthly_revenue"`
}

// FundingDetails is the payload of the third wizard step
type FundingDetails struct {
	Amount     valueobject.Money `json:"amount"`
	Purpose    Purpose           `json:"purpose"`
	TermMonths int               `json:"term_months"`
}

// Onboarding tracks a client's progress through the five-step wizard.
// Steps are strictly sequential: a step can only be submitted when every
// earlier step has been, and resubmitting an earlier step overwrites it.
type Onboarding struct {
	shared.TenantAggregateRoot
	UserID      uuid.UUID
	CurrentStep Step
	Personal    *PersonalDetails
	Company     *CompanyDetails
	Funding     *FundingDetails
	DocumentIDs []uuid.UUID
	CompletedAt *time.Time

	// Set on completion
	CompanyID     *uuid.UUID
	ApplicationID *uuid.UUID
}

// NewOnboarding starts the wizard for a user
func NewOnboarding(tenantID, userID uuid.UUID) (*Onboarding, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}

	return &Onboarding{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, userID),
		UserID:              userID,
		CurrentStep:         StepPersonalDetails,
		DocumentIDs:         make([]uuid.UUID, 0),
	}, nil
}

// IsCompleted returns true once the wizard has finished
func (o *Onboarding) IsCompleted() bool {
	return o.CurrentStep == StepCompleted
}

// SubmitPersonalDetails records the personal details step
func (o *Onboarding) SubmitPersonalDetails(details PersonalDetails) error {
	if err := o.ensureStepReachable(StepPersonalDetails); err != nil {
		return err
	}
	if strings.TrimSpace(details.FirstName) == "" || strings.TrimSpace(details.LastName) == "" {
		return shared.NewDomainError("INVALID_NAME", "First and last name are required")
	}

	o.Personal = &details
	o.advancePast(StepPersonalDetails)

	return nil
}

// SubmitCompanyDetails records the company details step
func (o *Onboarding) SubmitCompanyDetails(details CompanyDetails) error {
	if err := o.ensureStepReachable(StepCompanyDetails); err != nil {
		return err
	}
	if strings.TrimSpace(details.LegalName) == "" {
		return shared.NewDomainError("INVALID_LEGAL_NAME", "Legal name is required")
	}
	if details.MonthlyRevenue.IsNegative() {
		return shared.NewDomainError("INVALID_REVENUE", "Monthly revenue cannot be negative")
	}

	o.Company = &details
	o.advancePast(StepCompanyDetails)

	return nil
}

// SubmitFundingDetails records the funding details step
func (o *Onboarding) SubmitFundingDetails(details FundingDetails) error {
	if err := o.ensureStepReachable(StepFundingDetails); err != nil {
		return err
	}
	if err := validateAmount(details.Amount); err != nil {
		return err
	}
	if err := validatePurpose(details.Purpose); err != nil {
		return err
	}
	if err := validateTerm(details.TermMonths); err != nil {
		return err
	}

	o.Funding = &details
	o.advancePast(StepFundingDetails)

	return nil
}

// SubmitDocuments records the uploaded document references.
// The step can be passed with no documents; uploads can follow later.
func (o *Onboarding) SubmitDocuments(documentIDs []uuid.UUID) error {
	if err := o.ensureStepReachable(StepDocuments); err != nil {
		return err
	}
	for _, id := range documentIDs {
		if id == uuid.Nil {
			return shared.NewDomainError("INVALID_DOCUMENT", "Document ID cannot be empty")
		}
	}

	o.DocumentIDs = documentIDs
	o.advancePast(StepDocuments)

	return nil
}

// Complete finishes the wizard at the review step, recording the company
// and draft application created from the collected details
func (o *Onboarding) Complete(companyID, applicationID uuid.UUID) error {
	if o.IsCompleted() {
		return shared.NewDomainError("ALREADY_COMPLETED", "Onboarding is already completed")
	}
	if o.CurrentStep != StepReview {
		return shared.NewDomainError("STEP_NOT_REACHED", "All steps must be completed before review")
	}
	if companyID == uuid.Nil || applicationID == uuid.Nil {
		return shared.NewDomainError("INVALID_COMPLETION", "Completion references cannot be empty")
	}

	now := time.Now()
	o.CurrentStep = StepCompleted
	o.CompanyID = &companyID
	o.ApplicationID = &applicationID
	o.CompletedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOnboardingCompletedEvent(o, companyID, applicationID))

	return nil
}

// ensureStepReachable rejects steps later than the wizard has progressed
func (o *Onboarding) ensureStepReachable(step Step) error {
	if o.IsCompleted() {
		return shared.NewDomainError("ALREADY_COMPLETED", "Onboarding is already completed")
	}
	if step.Index() > o.CurrentStep.Index() {
		return shared.NewDomainError("STEP_NOT_REACHED", "Earlier steps must be completed first")
	}
	return nil
}

// advancePast moves the wizard forward when the submitted step is the
// current one; resubmissions of earlier steps leave progress untouched
func (o *Onboarding) advancePast(step Step) {
	if o.CurrentStep == step {
		o.CurrentStep = stepOrder[step.Index()+1]
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
