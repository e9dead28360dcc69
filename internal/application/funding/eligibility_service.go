package funding

import (
	"context"
	"time"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EligibilityService scores applications against the lender panel and
// manages the panel itself
type EligibilityService struct {
	lenderRepo      funding.LenderRepository
	applicationRepo funding.ApplicationRepository
	companyRepo     company.CompanyRepository
	userRepo        identity.UserRepository
	assignmentRepo  partner.AssignmentRepository
	logger          *zap.Logger
}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService(
	lenderRepo funding.LenderRepository,
	applicationRepo funding.ApplicationRepository,
	companyRepo company.CompanyRepository,
	userRepo identity.UserRepository,
	assignmentRepo partner.AssignmentRepository,
	logger *zap.Logger,
) *EligibilityService {
	return &EligibilityService{
		lenderRepo:      lenderRepo,
		applicationRepo: applicationRepo,
		companyRepo:     companyRepo,
		userRepo:        userRepo,
		assignmentRepo:  assignmentRepo,
		logger:          logger,
	}
}

// ScoreApplication checks an application against every active lender and
// returns the panel sorted with eligible lenders first
func (s *EligibilityService) ScoreApplication(ctx context.Context, tenantID uuid.UUID, actor Actor, applicationID uuid.UUID) (*EligibilityReport, error) {
	app, err := s.applicationRepo.FindByIDForTenant(ctx, tenantID, applicationID)
	if err != nil {
		return nil, shared.NewDomainError("APPLICATION_NOT_FOUND", "Application not found")
	}
	if allowed := s.canAccess(ctx, actor, app); !allowed {
		return nil, shared.ErrForbidden
	}

	c, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, app.CompanyID)
	if err != nil {
		return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
	}

	ownerIsHomeowner := false
	if owner, err := s.userRepo.FindByIDForTenant(ctx, tenantID, c.OwnerID); err == nil {
		ownerIsHomeowner = owner.IsHomeowner
	}

	lenders, err := s.lenderRepo.FindActive(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to load lender panel", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load lender panel")
	}

	input := funding.EligibilityInput{
		Amount:           app.Amount,
		MonthsTrading:    c.MonthsTrading(),
		MonthlyRevenue:   c.MonthlyRevenue,
		SICCode:          c.SICCode,
		OwnerIsHomeowner: ownerIsHomeowner,
	}

	verdicts := funding.ScoreLenders(lenders, input)

	s.logger.Info("Application scored",
		zap.String("application_id", app.ID.String()),
		zap.Int("lenders", len(verdicts)))

	return &EligibilityReport{
		ApplicationID: app.ID,
		Verdicts:      verdicts,
		GeneratedAt:   time.Now(),
	}, nil
}

func (s *EligibilityService) canAccess(ctx context.Context, actor Actor, app *funding.Application) bool {
	if actor.IsAdmin() || app.BelongsTo(actor.UserID) {
		return true
	}
	if !actor.IsPartner() {
		return false
	}
	assignment, err := s.assignmentRepo.FindActiveByPartnerAndCompany(ctx, app.TenantID, actor.UserID, app.CompanyID)
	return err == nil && assignment != nil
}

// CreateLender registers a lender on the panel. Admin only.
func (s *EligibilityService) CreateLender(ctx context.Context, input CreateLenderInput) (*LenderDTO, error) {
	if !input.Actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	lender, err := funding.NewLender(input.TenantID, input.Name, input.MinAmount, input.MaxAmount)
	if err != nil {
		return nil, err
	}
	if err := lender.SetCriteria(input.MinMonthsTrading, input.MinMonthlyRevenue, input.ExcludedSICs, input.RequiresHomeowner); err != nil {
		return nil, err
	}

	if err := s.lenderRepo.Save(ctx, lender); err != nil {
		s.logger.Error("Failed to save lender", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create lender")
	}

	s.logger.Info("Lender created", zap.String("lender_id", lender.ID.String()), zap.String("name", lender.Name))

	dto := ToLenderDTO(lender)
	return &dto, nil
}

// UpdateLender updates a lender's thresholds. Admin only.
func (s *EligibilityService) UpdateLender(ctx context.Context, input UpdateLenderInput) (*LenderDTO, error) {
	if !input.Actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	lender, err := s.lenderRepo.FindByIDForTenant(ctx, input.TenantID, input.LenderID)
	if err != nil {
		return nil, shared.NewDomainError("LENDER_NOT_FOUND", "Lender not found")
	}

	if input.MinAmount != nil || input.MaxAmount != nil {
		minAmount := lender.MinAmount
		if input.MinAmount != nil {
			minAmount = *input.MinAmount
		}
		maxAmount := lender.MaxAmount
		if input.MaxAmount != nil {
			maxAmount = *input.MaxAmount
		}
		if err := lender.SetAmountRange(minAmount, maxAmount); err != nil {
			return nil, err
		}
	}

	if input.MinMonthsTrading != nil || input.MinMonthlyRevenue != nil || input.ExcludedSICs != nil || input.RequiresHomeowner != nil {
		minMonthsTrading := lender.MinMonthsTrading
		if input.MinMonthsTrading != nil {
			minMonthsTrading = *input.MinMonthsTrading
		}
		minMonthlyRevenue := lender.MinMonthlyRevenue
		if input.MinMonthlyRevenue != nil {
			minMonthlyRevenue = *input.MinMonthlyRevenue
		}
		excludedSICs := lender.ExcludedSICs
		if input.ExcludedSICs != nil {
			excludedSICs = input.ExcludedSICs
		}
		requiresHomeowner := lender.RequiresHomeowner
		if input.RequiresHomeowner != nil {
			requiresHomeowner = *input.RequiresHomeowner
		}
		if err := lender.SetCriteria(minMonthsTrading, minMonthlyRevenue, excludedSICs, requiresHomeowner); err != nil {
			return nil, err
		}
	}

	if input.Active != nil {
		if *input.Active {
			lender.Activate()
		} else {
			lender.Deactivate()
		}
	}

	if err := s.lenderRepo.Save(ctx, lender); err != nil {
		s.logger.Error("Failed to save lender update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update lender")
	}

	dto := ToLenderDTO(lender)
	return &dto, nil
}

// ListLenders lists the whole panel. Admin only; clients and partners only
// ever see scored verdicts.
func (s *EligibilityService) ListLenders(ctx context.Context, tenantID uuid.UUID, actor Actor) ([]LenderDTO, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	lenders, err := s.lenderRepo.FindAllForTenant(ctx, tenantID, shared.Filter{})
	if err != nil {
		s.logger.Error("Failed to list lenders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list lenders")
	}

	dtos := make([]LenderDTO, 0, len(lenders))
	for i := range lenders {
		dtos = append(dtos, ToLenderDTO(&lenders[i]))
	}
	return dtos, nil
}

// DeleteLender removes a lender from the panel. Admin only.
func (s *EligibilityService) DeleteLender(ctx context.Context, tenantID uuid.UUID, actor Actor, lenderID uuid.UUID) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}

	if _, err := s.lenderRepo.FindByIDForTenant(ctx, tenantID, lenderID); err != nil {
		return shared.NewDomainError("LENDER_NOT_FOUND", "Lender not found")
	}

	if err := s.lenderRepo.DeleteForTenant(ctx, tenantID, lenderID); err != nil {
		s.logger.Error("Failed to delete lender", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete lender")
	}

	s.logger.Info("Lender deleted", zap.String("lender_id", lenderID.String()))
	return nil
}
