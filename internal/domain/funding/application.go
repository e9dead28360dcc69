package funding

import (
	"strings"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stage represents the pipeline stage of a funding application
type Stage string

const (
	StageDraft         Stage = "draft"
	StageSubmitted     Stage = "submitted"
	StageUnderReview   Stage = "under_review"
	StageWithLender    Stage = "with_lender"
	StageOfferReceived Stage = "offer_received"
	StageFunded        Stage = "funded"
	StageDeclined      Stage = "declined"
	StageWithdrawn     Stage = "withdrawn"
)

// IsValid checks if the stage is a valid Stage
func (s Stage) IsValid() bool {
	switch s {
	case StageDraft, StageSubmitted, StageUnderReview, StageWithLender,
		StageOfferReceived, StageFunded, StageDeclined, StageWithdrawn:
		return true
	}
	return false
}

// String returns the string representation of Stage
func (s Stage) String() string {
	return string(s)
}

// IsTerminal returns true for stages the pipeline cannot leave
func (s Stage) IsTerminal() bool {
	return s == StageFunded || s == StageDeclined || s == StageWithdrawn
}

// CanTransitionTo checks if the stage can transition to the target stage
func (s Stage) CanTransitionTo(target Stage) bool {
	switch s {
	case StageDraft:
		return target == StageSubmitted
	case StageSubmitted:
		return target == StageUnderReview || target == StageDeclined || target == StageWithdrawn
	case StageUnderReview:
		return target == StageWithLender || target == StageDeclined || target == StageWithdrawn
	case StageWithLender:
		return target == StageOfferReceived || target == StageDeclined || target == StageWithdrawn
	case StageOfferReceived:
		return target == StageFunded || target == StageDeclined || target == StageWithdrawn
	case StageFunded, StageDeclined, StageWithdrawn:
		return false // Terminal stages
	}
	return false
}

// Purpose represents what the funding is for
type Purpose string

const (
	PurposeWorkingCapital Purpose = "working_capital"
	PurposeExpansion      Purpose = "expansion"
	PurposeEquipment      Purpose = "equipment"
	PurposeRefinance      Purpose = "refinance"
	PurposeProperty       Purpose = "property"
	PurposeOther          Purpose = "other"
)

// IsValid checks if the purpose is known
func (p Purpose) IsValid() bool {
	switch p {
	case PurposeWorkingCapital, PurposeExpansion, PurposeEquipment,
		PurposeRefinance, PurposeProperty, PurposeOther:
		return true
	}
	return false
}

// Term limits in months
const (
	MinTermMonths = 1
	MaxTermMonths = 120
)

// StageChange is one entry in an application's pipeline history
type StageChange struct {
	From    Stage     `json:"from"`
	To      Stage     `json:"to"`
	ActorID uuid.UUID `json:"actor_id"`
	Note    string    `json:"note,omitempty"`
	At      time.Time `json:"at"`
}

// Offer holds the lender's offer once one is received
type Offer struct {
	LenderName string            `json:"lender_name"`
	Amount     valueobject.Money `json:"amount"`
	RatePct    decimal.Decimal   `json:"rate_pct"` // Annual interest rate percent
	ReceivedAt time.Time         `json:"received_at"`
}

// Application represents a funding application moving through the pipeline.
// It is the aggregate root for funding operations.
type Application struct {
	shared.TenantAggregateRoot
	CompanyID     uuid.UUID
	ApplicantID   uuid.UUID
	Amount        valueobject.Money
	Purpose       Purpose
	TermMonths    int
	Stage         Stage
	StageHistory  []StageChange
	Offer         *Offer
	DeclineReason string
	SubmittedAt   *time.Time
	DecidedAt     *time.Time // Set when a terminal stage is reached
}

// NewApplication creates a new draft application
func NewApplication(tenantID, companyID, applicantID uuid.UUID, amount valueobject.Money, purpose Purpose, termMonths int) (*Application, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company cannot be empty")
	}
	if applicantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_APPLICANT", "Applicant cannot be empty")
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if err := validatePurpose(purpose); err != nil {
		return nil, err
	}
	if err := validateTerm(termMonths); err != nil {
		return nil, err
	}

	app := &Application{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, applicantID),
		CompanyID:           companyID,
		ApplicantID:         applicantID,
		Amount:              amount,
		Purpose:             purpose,
		TermMonths:          termMonths,
		Stage:               StageDraft,
		StageHistory:        make([]StageChange, 0),
	}

	app.AddDomainEvent(NewApplicationCreatedEvent(app))

	return app, nil
}

// UpdateDraft updates amount, purpose and term while still in draft
func (a *Application) UpdateDraft(amount valueobject.Money, purpose Purpose, termMonths int) error {
	if a.Stage != StageDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft applications can be edited")
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := validatePurpose(purpose); err != nil {
		return err
	}
	if err := validateTerm(termMonths); err != nil {
		return err
	}

	a.Amount = amount
	a.Purpose = purpose
	a.TermMonths = termMonths
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Submit moves a draft application into the pipeline
func (a *Application) Submit(actorID uuid.UUID) error {
	if err := a.transition(StageSubmitted, actorID, ""); err != nil {
		return err
	}

	now := time.Now()
	a.SubmittedAt = &now

	a.AddDomainEvent(NewApplicationSubmittedEvent(a))

	return nil
}

// Transition moves the application to the target stage
func (a *Application) Transition(target Stage, actorID uuid.UUID, note string) error {
	if target == StageDeclined && strings.TrimSpace(note) == "" {
		return shared.NewDomainError("DECLINE_REASON_REQUIRED", "Declining requires a reason")
	}

	if err := a.transition(target, actorID, note); err != nil {
		return err
	}

	if target == StageDeclined {
		a.DeclineReason = strings.TrimSpace(note)
	}
	if target.IsTerminal() {
		now := time.Now()
		a.DecidedAt = &now
	}

	a.AddDomainEvent(NewStageChangedEvent(a, a.StageHistory[len(a.StageHistory)-1]))

	return nil
}

// Withdraw is the applicant-facing shortcut for leaving the pipeline
func (a *Application) Withdraw(actorID uuid.UUID, note string) error {
	return a.Transition(StageWithdrawn, actorID, note)
}

// RecordOffer stores the lender offer and moves to offer_received
func (a *Application) RecordOffer(actorID uuid.UUID, lenderName string, amount valueobject.Money, ratePct decimal.Decimal) error {
	lenderName = strings.TrimSpace(lenderName)
	if lenderName == "" {
		return shared.NewDomainError("INVALID_LENDER_NAME", "Lender name cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_OFFER_AMOUNT", "Offer amount must be positive")
	}
	if ratePct.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	if err := a.transition(StageOfferReceived, actorID, "offer from "+lenderName); err != nil {
		return err
	}

	a.Offer = &Offer{
		LenderName: lenderName,
		Amount:     amount,
		RatePct:    ratePct,
		ReceivedAt: time.Now(),
	}

	a.AddDomainEvent(NewStageChangedEvent(a, a.StageHistory[len(a.StageHistory)-1]))

	return nil
}

// IsDraft returns true while the application has not been submitted
func (a *Application) IsDraft() bool {
	return a.Stage == StageDraft
}

// IsOpen returns true while the application is still in the pipeline
func (a *Application) IsOpen() bool {
	return !a.Stage.IsTerminal()
}

// BelongsTo returns true if the given user is the applicant
func (a *Application) BelongsTo(userID uuid.UUID) bool {
	return a.ApplicantID == userID
}

func (a *Application) transition(target Stage, actorID uuid.UUID, note string) error {
	if actorID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Actor cannot be empty")
	}
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STAGE", "Unknown pipeline stage")
	}
	if !a.Stage.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION", "Cannot move from "+a.Stage.String()+" to "+target.String())
	}

	change := StageChange{
		From:    a.Stage,
		To:      target,
		ActorID: actorID,
		Note:    strings.TrimSpace(note),
		At:      time.Now(),
	}

	a.Stage = target
	a.StageHistory = append(a.StageHistory, change)
	a.UpdatedAt = change.At
	a.IncrementVersion()

	return nil
}

// Validation functions

func validateAmount(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	return nil
}

func validatePurpose(purpose Purpose) error {
	if !purpose.IsValid() {
		return shared.NewDomainError("INVALID_PURPOSE", "Unknown funding purpose")
	}
	return nil
}

func validateTerm(termMonths int) error {
	if termMonths < MinTermMonths || termMonths > MaxTermMonths {
		return shared.NewDomainError("INVALID_TERM", "Term must be between 1 and 120 months")
	}
	return nil
}
