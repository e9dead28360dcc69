package funding

import (
	"context"
	"strings"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OnboardingService drives the client onboarding wizard. Completing the
// wizard turns the collected details into a company and a draft application.
type OnboardingService struct {
	onboardingRepo  funding.OnboardingRepository
	userRepo        identity.UserRepository
	companyRepo     company.CompanyRepository
	applicationRepo funding.ApplicationRepository
	eventPublisher  shared.EventPublisher
	txManager       shared.TransactionManager
	logger          *zap.Logger
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(
	onboardingRepo funding.OnboardingRepository,
	userRepo identity.UserRepository,
	companyRepo company.CompanyRepository,
	applicationRepo funding.ApplicationRepository,
	logger *zap.Logger,
) *OnboardingService {
	return &OnboardingService{
		onboardingRepo:  onboardingRepo,
		userRepo:        userRepo,
		companyRepo:     companyRepo,
		applicationRepo: applicationRepo,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OnboardingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetTransactionManager sets the manager used to make completion atomic
func (s *OnboardingService) SetTransactionManager(tm shared.TransactionManager) {
	s.txManager = tm
}

// inTx runs fn inside a transaction when a manager is wired, directly otherwise
func (s *OnboardingService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txManager == nil {
		return fn(ctx)
	}
	return s.txManager.InTransaction(ctx, fn)
}

func (s *OnboardingService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
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

// GetOnboarding fetches a user's wizard state. Users see their own wizard,
// admins anyone's. A missing wizard is started on first access by its owner.
func (s *OnboardingService) GetOnboarding(ctx context.Context, tenantID uuid.UUID, actor Actor, userID uuid.UUID) (*OnboardingDTO, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, shared.ErrForbidden
	}

	onboarding, err := s.onboardingRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		if actor.UserID != userID {
			return nil, shared.NewDomainError("ONBOARDING_NOT_FOUND", "Onboarding not found")
		}
		onboarding, err = s.startOnboarding(ctx, tenantID, userID)
		if err != nil {
			return nil, err
		}
	}

	dto := ToOnboardingDTO(onboarding)
	return &dto, nil
}

func (s *OnboardingService) startOnboarding(ctx context.Context, tenantID, userID uuid.UUID) (*funding.Onboarding, error) {
	onboarding, err := funding.NewOnboarding(tenantID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.onboardingRepo.Save(ctx, onboarding); err != nil {
		s.logger.Error("Failed to start onboarding", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start onboarding")
	}
	s.logger.Info("Onboarding started", zap.String("user_id", userID.String()))
	return onboarding, nil
}

// loadOwn fetches the actor's wizard, starting it on first use
func (s *OnboardingService) loadOwn(ctx context.Context, tenantID uuid.UUID, actor Actor) (*funding.Onboarding, error) {
	onboarding, err := s.onboardingRepo.FindByUser(ctx, tenantID, actor.UserID)
	if err != nil {
		return s.startOnboarding(ctx, tenantID, actor.UserID)
	}
	return onboarding, nil
}

// SubmitPersonalDetails records the first wizard step and mirrors the
// details onto the user profile
func (s *OnboardingService) SubmitPersonalDetails(ctx context.Context, tenantID uuid.UUID, actor Actor, details funding.PersonalDetails) (*OnboardingDTO, error) {
	onboarding, err := s.loadOwn(ctx, tenantID, actor)
	if err != nil {
		return nil, err
	}

	if err := onboarding.SubmitPersonalDetails(details); err != nil {
		return nil, err
	}

	if err := s.onboardingRepo.SaveWithLock(ctx, onboarding); err != nil {
		s.logger.Error("Failed to save onboarding step", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save step")
	}

	// The profile mirrors the wizard; a failure here leaves the step intact
	if user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, actor.UserID); err == nil {
		if err := user.SetName(details.FirstName, details.LastName); err == nil {
			_ = user.SetPhone(details.Phone)
			user.SetHomeowner(details.IsHomeowner)
			if err := s.userRepo.Save(ctx, user); err != nil {
				s.logger.Warn("Failed to mirror personal details onto profile", zap.Error(err))
			}
		}
	}

	dto := ToOnboardingDTO(onboarding)
	return &dto, nil
}

// SubmitCompanyDetails records the second wizard step
func (s *OnboardingService) SubmitCompanyDetails(ctx context.Context, tenantID uuid.UUID, actor Actor, details funding.CompanyDetails) (*OnboardingDTO, error) {
	onboarding, err := s.loadOwn(ctx, tenantID, actor)
	if err != nil {
		return nil, err
	}

	if err := onboarding.SubmitCompanyDetails(details); err != nil {
		return nil, err
	}

	if err := s.onboardingRepo.SaveWithLock(ctx, onboarding); err != nil {
		s.logger.Error("Failed to save onboarding step", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save step")
	}

	dto := ToOnboardingDTO(onboarding)
	return &dto, nil
}

// SubmitFundingDetails records the third wizard step
func (s *OnboardingService) SubmitFundingDetails(ctx context.Context, tenantID uuid.UUID, actor Actor, details funding.FundingDetails) (*OnboardingDTO, error) {
	onboarding, err := s.loadOwn(ctx, tenantID, actor)
	if err != nil {
		return nil, err
	}

	if err := onboarding.SubmitFundingDetails(details); err != nil {
		return nil, err
	}

	if err := s.onboardingRepo.SaveWithLock(ctx, onboarding); err != nil {
		s.logger.Error("Failed to save onboarding step", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save step")
	}

	dto := ToOnboardingDTO(onboarding)
	return &dto, nil
}

// SubmitDocuments records the fourth wizard step
func (s *OnboardingService) SubmitDocuments(ctx context.Context, tenantID uuid.UUID, actor Actor, documentIDs []uuid.UUID) (*OnboardingDTO, error) {
	onboarding, err := s.loadOwn(ctx, tenantID, actor)
	if err != nil {
		return nil, err
	}

	if err := onboarding.SubmitDocuments(documentIDs); err != nil {
		return nil, err
	}

	if err := s.onboardingRepo.SaveWithLock(ctx, onboarding); err != nil {
		s.logger.Error("Failed to save onboarding step", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save step")
	}

	dto := ToOnboardingDTO(onboarding)
	return &dto, nil
}

// CompleteOnboarding finishes the wizard at the review step, creating the
// company and a draft application from the collected details
func (s *OnboardingService) CompleteOnboarding(ctx context.Context, tenantID uuid.UUID, actor Actor) (*CompleteOnboardingResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "onboarding", "complete",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID.String()))
	defer span.End()

	result, err := s.completeOnboarding(ctx, tenantID, actor)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCompanyID, result.CompanyID.String(),
		telemetry.SpanAttrApplicationID, result.ApplicationID.String())
	return result, nil
}

func (s *OnboardingService) completeOnboarding(ctx context.Context, tenantID uuid.UUID, actor Actor) (*CompleteOnboardingResult, error) {
	onboarding, err := s.onboardingRepo.FindByUser(ctx, tenantID, actor.UserID)
	if err != nil {
		return nil, shared.NewDomainError("ONBOARDING_NOT_FOUND", "Onboarding not found")
	}
	if onboarding.IsCompleted() {
		return nil, shared.NewDomainError("ALREADY_COMPLETED", "Onboarding is already completed")
	}
	if onboarding.CurrentStep != funding.StepReview {
		return nil, shared.NewDomainError("STEP_NOT_REACHED", "All steps must be completed before review")
	}

	newCompany, err := s.buildCompany(tenantID, actor.UserID, onboarding.Company)
	if err != nil {
		return nil, err
	}

	application, err := funding.NewApplication(tenantID, newCompany.ID, actor.UserID,
		onboarding.Funding.Amount, onboarding.Funding.Purpose, onboarding.Funding.TermMonths)
	if err != nil {
		return nil, err
	}

	if err := onboarding.Complete(newCompany.ID, application.ID); err != nil {
		return nil, err
	}

	// The company, the application and the wizard state land together
	err = s.inTx(ctx, func(txCtx context.Context) error {
		if err := s.companyRepo.Save(txCtx, newCompany); err != nil {
			s.logger.Error("Failed to save onboarded company", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to complete onboarding")
		}
		if err := s.applicationRepo.Save(txCtx, application); err != nil {
			s.logger.Error("Failed to save onboarded application", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to complete onboarding")
		}
		if err := s.onboardingRepo.SaveWithLock(txCtx, onboarding); err != nil {
			s.logger.Error("Failed to save onboarding completion", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to complete onboarding")
		}
		if s.eventPublisher != nil {
			var events []shared.DomainEvent
			events = append(events, newCompany.GetDomainEvents()...)
			events = append(events, application.GetDomainEvents()...)
			events = append(events, onboarding.GetDomainEvents()...)
			if err := s.eventPublisher.Publish(txCtx, events...); err != nil {
				s.logger.Error("Failed to record onboarding events", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to complete onboarding")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	newCompany.ClearDomainEvents()
	application.ClearDomainEvents()
	onboarding.ClearDomainEvents()

	s.logger.Info("Onboarding completed",
		zap.String("user_id", actor.UserID.String()),
		zap.String("company_id", newCompany.ID.String()),
		zap.String("application_id", application.ID.String()))

	return &CompleteOnboardingResult{
		CompanyID:     newCompany.ID,
		ApplicationID: application.ID,
	}, nil
}

func (s *OnboardingService) buildCompany(tenantID, ownerID uuid.UUID, details *funding.CompanyDetails) (*company.Company, error) {
	if details == nil {
		return nil, shared.NewDomainError("STEP_NOT_REACHED", "Company details are missing")
	}

	c, err := company.NewCompany(tenantID, ownerID, details.LegalName, wizardCompanyType(details.Type))
	if err != nil {
		return nil, err
	}

	if details.TradingName != "" {
		if err := c.Update(details.LegalName, details.TradingName); err != nil {
			return nil, err
		}
	}
	if details.RegistrationNumber != "" {
		if err := c.SetRegistrationNumber(details.RegistrationNumber); err != nil {
			return nil, err
		}
	}
	if details.SICCode != "" {
		if err := c.SetSICCode(details.SICCode); err != nil {
			return nil, err
		}
	}
	if details.IncorporatedOn != nil {
		if err := c.SetIncorporatedOn(*details.IncorporatedOn); err != nil {
			return nil, err
		}
	}
	if !details.Address.IsEmpty() {
		if err := c.SetRegisteredAddress(details.Address); err != nil {
			return nil, err
		}
	}
	if err := c.SetMonthlyRevenue(details.MonthlyRevenue); err != nil {
		return nil, err
	}

	return c, nil
}

func wizardCompanyType(raw string) company.CompanyType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "llp":
		return company.CompanyTypeLLP
	case "plc":
		return company.CompanyTypePLC
	case "sole_trader", "sole-trader", "sole trader":
		return company.CompanyTypeSoleTrader
	case "partnership":
		return company.CompanyTypePartnership
	default:
		return company.CompanyTypeLtd
	}
}
