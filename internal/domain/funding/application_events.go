package funding

import (
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeApplication = "Application"
	AggregateTypeOnboarding  = "Onboarding"
	AggregateTypeLender      = "Lender"
)

// Event type constants
const (
	EventTypeApplicationCreated   = "ApplicationCreated"
	EventTypeApplicationSubmitted = "ApplicationSubmitted"
	EventTypeStageChanged         = "StageChanged"
	EventTypeOnboardingCompleted  = "OnboardingCompleted"
)

// ApplicationCreatedEvent is published when an application is created
type ApplicationCreatedEvent struct {
	shared.BaseDomainEvent
	CompanyID   uuid.UUID `json:"company_id"`
	ApplicantID uuid.UUID `json:"applicant_id"`
	Amount      string    `json:"amount"`
	Purpose     Purpose   `json:"purpose"`
}

// NewApplicationCreatedEvent creates a new ApplicationCreatedEvent
func NewApplicationCreatedEvent(app *Application) *ApplicationCreatedEvent {
	return &ApplicationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationCreated, AggregateTypeApplication, app.ID, app.TenantID),
		CompanyID:       app.CompanyID,
		ApplicantID:     app.ApplicantID,
		Amount:          app.Amount.String(),
		Purpose:         app.Purpose,
	}
}

// ApplicationSubmittedEvent is published when an application enters the pipeline
type ApplicationSubmittedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
	Amount    string    `json:"amount"`
}

// NewApplicationSubmittedEvent creates a new ApplicationSubmittedEvent
func NewApplicationSubmittedEvent(app *Application) *ApplicationSubmittedEvent {
	return &ApplicationSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationSubmitted, AggregateTypeApplication, app.ID, app.TenantID),
		CompanyID:       app.CompanyID,
		Amount:          app.Amount.String(),
	}
}

// StageChangedEvent is published on every pipeline transition
type StageChangedEvent struct {
	shared.BaseDomainEvent
	From    Stage     `json:"from"`
	To      Stage     `json:"to"`
	ActorID uuid.UUID `json:"actor_id"`
	Note    string    `json:"note,omitempty"`
}

// NewStageChangedEvent creates a new StageChangedEvent
func NewStageChangedEvent(app *Application, change StageChange) *StageChangedEvent {
	return &StageChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStageChanged, AggregateTypeApplication, app.ID, app.TenantID),
		From:            change.From,
		To:              change.To,
		ActorID:         change.ActorID,
		Note:            change.Note,
	}
}

// OnboardingCompletedEvent is published when the wizard finishes
type OnboardingCompletedEvent struct {
	shared.BaseDomainEvent
	UserID        uuid.UUID `json:"user_id"`
	CompanyID     uuid.UUID `json:"company_id"`
	ApplicationID uuid.UUID `json:"application_id"`
}

// NewOnboardingCompletedEvent creates a new OnboardingCompletedEvent
func NewOnboardingCompletedEvent(o *Onboarding, companyID, applicationID uuid.UUID) *OnboardingCompletedEvent {
	return &OnboardingCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOnboardingCompleted, AggregateTypeOnboarding, o.ID, o.TenantID),
		UserID:          o.UserID,
		CompanyID:       companyID,
		ApplicationID:   applicationID,
	}
}
