package funding

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApplicationService handles the funding application pipeline
type ApplicationService struct {
	applicationRepo funding.ApplicationRepository
	companyRepo     company.CompanyRepository
	assignmentRepo  partner.AssignmentRepository
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewApplicationService creates a new application service
func NewApplicationService(
	applicationRepo funding.ApplicationRepository,
	companyRepo company.CompanyRepository,
	assignmentRepo partner.AssignmentRepository,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		companyRepo:     companyRepo,
		assignmentRepo:  assignmentRepo,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ApplicationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ApplicationService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
}

// canAccess reports whether the actor may see the application. Admins see
// everything, applicants their own, partners the applications of companies
// they are actively assigned to.
func (s *ApplicationService) canAccess(ctx context.Context, actor Actor, app *funding.Application) (bool, error) {
	if actor.IsAdmin() || app.BelongsTo(actor.UserID) {
		return true, nil
	}
	if !actor.IsPartner() {
		return false, nil
	}
	assignment, err := s.assignmentRepo.FindActiveByPartnerAndCompany(ctx, app.TenantID, actor.UserID, app.CompanyID)
	if err != nil || assignment == nil {
		return false, nil
	}
	return true, nil
}

// loadApplication fetches an application the actor may see
func (s *ApplicationService) loadApplication(ctx context.Context, tenantID uuid.UUID, actor Actor, applicationID uuid.UUID) (*funding.Application, error) {
	app, err := s.applicationRepo.FindByIDForTenant(ctx, tenantID, applicationID)
	if err != nil {
		return nil, shared.NewDomainError("APPLICATION_NOT_FOUND", "Application not found")
	}
	allowed, err := s.canAccess(ctx, actor, app)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, shared.ErrForbidden
	}
	return app, nil
}

// CreateApplication starts a draft application against a company
func (s *ApplicationService) CreateApplication(ctx context.Context, input CreateApplicationInput) (*ApplicationDTO, error) {
	c, err := s.companyRepo.FindByIDForTenant(ctx, input.TenantID, input.CompanyID)
	if err != nil {
		return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
	}
	if !input.Actor.IsAdmin() && !c.IsOwnedBy(input.Actor.UserID) {
		return nil, shared.ErrForbidden
	}
	if !c.IsActive() {
		return nil, shared.NewDomainError("COMPANY_ARCHIVED", "Cannot apply for an archived company")
	}

	applicantID := input.Actor.UserID
	if input.Actor.IsAdmin() {
		applicantID = c.OwnerID
	}

	app, err := funding.NewApplication(input.TenantID, c.ID, applicantID, input.Amount, input.Purpose, input.TermMonths)
	if err != nil {
		return nil, err
	}

	if err := s.applicationRepo.Save(ctx, app); err != nil {
		s.logger.Error("Failed to save application", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create application")
	}

	s.publishEvents(ctx, app.GetDomainEvents())
	app.ClearDomainEvents()

	s.logger.Info("Application created",
		zap.String("application_id", app.ID.String()),
		zap.String("company_id", c.ID.String()))

	dto := ToApplicationDTO(app)
	return &dto, nil
}

// GetApplication fetches a single application
func (s *ApplicationService) GetApplication(ctx context.Context, tenantID uuid.UUID, actor Actor, applicationID uuid.UUID) (*ApplicationDTO, error) {
	app, err := s.loadApplication(ctx, tenantID, actor, applicationID)
	if err != nil {
		return nil, err
	}
	dto := ToApplicationDTO(app)
	return &dto, nil
}

// UpdateDraft edits an application that has not yet been submitted
func (s *ApplicationService) UpdateDraft(ctx context.Context, input UpdateDraftInput) (*ApplicationDTO, error) {
	app, err := s.loadApplication(ctx, input.TenantID, input.Actor, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	amount := app.Amount
	if input.Amount != nil {
		amount = *input.Amount
	}
	purpose := app.Purpose
	if input.Purpose != nil {
		purpose = *input.Purpose
	}
	termMonths := app.TermMonths
	if input.TermMonths != nil {
		termMonths = *input.TermMonths
	}

	if err := app.UpdateDraft(amount, purpose, termMonths); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.SaveWithLock(ctx, app); err != nil {
		s.logger.Error("Failed to save draft update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update application")
	}

	dto := ToApplicationDTO(app)
	return &dto, nil
}

// SubmitApplication moves a draft into the pipeline
func (s *ApplicationService) SubmitApplication(ctx context.Context, tenantID uuid.UUID, actor Actor, applicationID uuid.UUID) (*ApplicationDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "application", "submit",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrApplicationID, applicationID.String()))
	defer span.End()

	app, err := s.loadApplication(ctx, tenantID, actor, applicationID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := app.Submit(actor.UserID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.applicationRepo.SaveWithLock(ctx, app); err != nil {
		s.logger.Error("Failed to save submission", zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit application")
	}

	s.publishEvents(ctx, app.GetDomainEvents())
	app.ClearDomainEvents()

	s.logger.Info("Application submitted", zap.String("application_id", app.ID.String()))

	dto := ToApplicationDTO(app)
	return &dto, nil
}

// TransitionStage moves an application through the pipeline. Admin only;
// applicants and partners use Withdraw for their exit path.
func (s *ApplicationService) TransitionStage(ctx context.Context, input TransitionInput) (*ApplicationDTO, error) {
	if !input.Actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	app, err := s.loadApplication(ctx, input.TenantID, input.Actor, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	if err := app.Transition(input.Target, input.Actor.UserID, input.Note); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.SaveWithLock(ctx, app); err != nil {
		s.logger.Error("Failed to save stage transition", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update application")
	}

	s.publishEvents(ctx, app.GetDomainEvents())
	app.ClearDomainEvents()

	s.logger.Info("Application stage changed",
		zap.String("application_id", app.ID.String()),
		zap.String("stage", app.Stage.String()))

	dto := ToApplicationDTO(app)
	return &dto, nil
}

// RecordOffer stores a lender offer against an application. Admin only.
func (s *ApplicationService) RecordOffer(ctx context.Context, input RecordOfferInput) (*ApplicationDTO, error) {
	if !input.Actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	app, err := s.loadApplication(ctx, input.TenantID, input.Actor, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	if err := app.RecordOffer(input.Actor.UserID, input.LenderName, input.Amount, input.RatePct); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.SaveWithLock(ctx, app); err != nil {
		s.logger.Error("Failed to save offer", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record offer")
	}

	s.publishEvents(ctx, app.GetDomainEvents())
	app.ClearDomainEvents()

	dto := ToApplicationDTO(app)
	return &dto, nil
}

// WithdrawApplication lets the applicant, an assigned partner or an admin
// take the application out of the pipeline
func (s *ApplicationService) WithdrawApplication(ctx context.Context, input WithdrawInput) (*ApplicationDTO, error) {
	app, err := s.loadApplication(ctx, input.TenantID, input.Actor, input.ApplicationID)
	if err != nil {
		return nil, err
	}

	if err := app.Withdraw(input.Actor.UserID, input.Note); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.SaveWithLock(ctx, app); err != nil {
		s.logger.Error("Failed to save withdrawal", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to withdraw application")
	}

	s.publishEvents(ctx, app.GetDomainEvents())
	app.ClearDomainEvents()

	s.logger.Info("Application withdrawn", zap.String("application_id", app.ID.String()))

	dto := ToApplicationDTO(app)
	return &dto, nil
}

// ListApplications lists the applications visible to the actor
func (s *ApplicationService) ListApplications(ctx context.Context, input ListApplicationsInput) (*ApplicationListResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	filter := shared.Filter{Page: page, PageSize: pageSize}

	var (
		apps  []funding.Application
		total int64
		err   error
	)
	switch {
	case input.Actor.IsAdmin() && input.Stage != nil:
		apps, err = s.applicationRepo.FindByStage(ctx, input.TenantID, *input.Stage, filter)
		if err == nil {
			total, err = s.applicationRepo.CountByStage(ctx, input.TenantID, *input.Stage)
		}
	case input.Actor.IsAdmin():
		apps, err = s.applicationRepo.FindAllForTenant(ctx, input.TenantID, filter)
		if err == nil {
			total, err = s.applicationRepo.CountForTenant(ctx, input.TenantID, shared.Filter{})
		}
	case input.Actor.IsPartner():
		var companyIDs []uuid.UUID
		companyIDs, err = s.assignmentRepo.ActiveCompanyIDsForPartner(ctx, input.TenantID, input.Actor.UserID)
		if err == nil {
			if len(companyIDs) == 0 {
				apps = []funding.Application{}
			} else {
				apps, err = s.applicationRepo.FindByCompanies(ctx, input.TenantID, companyIDs, filter)
			}
			total = int64(len(apps))
		}
	default:
		apps, err = s.applicationRepo.FindByApplicant(ctx, input.TenantID, input.Actor.UserID, filter)
		total = int64(len(apps))
	}
	if err != nil {
		s.logger.Error("Failed to list applications", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list applications")
	}

	dtos := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		dtos = append(dtos, ToApplicationDTO(&apps[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &ApplicationListResult{
		Applications: dtos,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
	}, nil
}
