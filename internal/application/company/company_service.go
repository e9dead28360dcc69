package company

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyService handles company management operations
type CompanyService struct {
	companyRepo    company.CompanyRepository
	assignmentRepo partner.AssignmentRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCompanyService creates a new company service
func NewCompanyService(
	companyRepo company.CompanyRepository,
	assignmentRepo partner.AssignmentRepository,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{
		companyRepo:    companyRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CompanyService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CompanyService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
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

// canAccess checks whether the actor may see the company. Admins see
// everything, owners see their own, partners see companies they are
// assigned to.
func (s *CompanyService) canAccess(ctx context.Context, actor Actor, c *company.Company) (bool, error) {
	if actor.IsAdmin() || c.IsOwnedBy(actor.UserID) {
		return true, nil
	}
	if actor.IsPartner() {
		assignment, err := s.assignmentRepo.FindActiveByPartnerAndCompany(ctx, c.TenantID, actor.UserID, c.ID)
		if err != nil {
			return false, nil
		}
		return assignment != nil, nil
	}
	return false, nil
}

// CreateCompany creates a company owned by the actor or a named owner
func (s *CompanyService) CreateCompany(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error) {
	ownerID := input.OwnerID
	if ownerID == uuid.Nil {
		ownerID = input.Actor.UserID
	}
	if ownerID != input.Actor.UserID && !input.Actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	c, err := company.NewCompany(input.TenantID, ownerID, input.LegalName, input.Type)
	if err != nil {
		return nil, err
	}
	if input.TradingName != "" {
		if err := c.Update(input.LegalName, input.TradingName); err != nil {
			return nil, err
		}
	}

	if err := s.companyRepo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to save company", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create company")
	}

	s.publishEvents(ctx, c.GetDomainEvents())
	c.ClearDomainEvents()

	s.logger.Info("Company created",
		zap.String("company_id", c.ID.String()),
		zap.String("owner_id", ownerID.String()))

	dto := ToCompanyDTO(c)
	return &dto, nil
}

// GetCompany retrieves a company the actor may access
func (s *CompanyService) GetCompany(ctx context.Context, tenantID uuid.UUID, actor Actor, companyID uuid.UUID) (*CompanyDTO, error) {
	c, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, companyID)
	if err != nil {
		return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
	}

	allowed, err := s.canAccess(ctx, actor, c)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, shared.ErrForbidden
	}

	dto := ToCompanyDTO(c)
	return &dto, nil
}

// ListCompanies lists companies visible to the actor
func (s *CompanyService) ListCompanies(ctx context.Context, input ListCompaniesInput) (*CompanyListResult, error) {
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
		companies []company.Company
		total     int64
		err       error
	)

	switch {
	case input.Actor.IsAdmin():
		companies, err = s.companyRepo.FindAllForTenant(ctx, input.TenantID, filter)
		if err == nil {
			total, err = s.companyRepo.CountForTenant(ctx, input.TenantID, shared.Filter{})
		}
	case input.Actor.IsPartner():
		var companyIDs []uuid.UUID
		companyIDs, err = s.assignmentRepo.ActiveCompanyIDsForPartner(ctx, input.TenantID, input.Actor.UserID)
		if err == nil {
			companies, err = s.companyRepo.FindByIDs(ctx, input.TenantID, companyIDs)
			total = int64(len(companies))
		}
	default:
		companies, err = s.companyRepo.FindByOwner(ctx, input.TenantID, input.Actor.UserID, filter)
		if err == nil {
			total, err = s.companyRepo.CountByOwner(ctx, input.TenantID, input.Actor.UserID)
		}
	}
	if err != nil {
		s.logger.Error("Failed to list companies", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list companies")
	}

	dtos := make([]CompanyDTO, 0, len(companies))
	for i := range companies {
		dtos = append(dtos, ToCompanyDTO(&companies[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &CompanyListResult{
		Companies:  dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateCompany updates company details. Only the owner or an admin may edit.
func (s *CompanyService) UpdateCompany(ctx context.Context, input UpdateCompanyInput) (*CompanyDTO, error) {
	c, err := s.companyRepo.FindByIDForTenant(ctx, input.TenantID, input.CompanyID)
	if err != nil {
		return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
	}

	if !input.Actor.IsAdmin() && !c.IsOwnedBy(input.Actor.UserID) {
		return nil, shared.ErrForbidden
	}

	if input.LegalName != nil || input.TradingName != nil {
		legalName := c.LegalName
		tradingName := c.TradingName
		if input.LegalName != nil {
			legalName = *input.LegalName
		}
		if input.TradingName != nil {
			tradingName = *input.TradingName
		}
		if err := c.Update(legalName, tradingName); err != nil {
			return nil, err
		}
	}
	if input.RegistrationNumber != nil {
		exists, err := s.companyRepo.ExistsByRegistrationNumber(ctx, input.TenantID, *input.RegistrationNumber)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check registration number")
		}
		if exists && c.RegistrationNumber != *input.RegistrationNumber {
			return nil, shared.NewDomainError("REGISTRATION_NUMBER_EXISTS", "A company with this registration number already exists")
		}
		if err := c.SetRegistrationNumber(*input.RegistrationNumber); err != nil {
			return nil, err
		}
	}
	if input.SICCode != nil {
		if err := c.SetSICCode(*input.SICCode); err != nil {
			return nil, err
		}
	}
	if input.IncorporatedOn != nil {
		if err := c.SetIncorporatedOn(*input.IncorporatedOn); err != nil {
			return nil, err
		}
	}
	if input.Address != nil {
		if err := c.SetRegisteredAddress(*input.Address); err != nil {
			return nil, err
		}
	}
	if input.MonthlyRevenue != nil {
		if err := c.SetMonthlyRevenue(*input.MonthlyRevenue); err != nil {
			return nil, err
		}
	}
	if input.Directors != nil {
		if err := c.SetDirectors(input.Directors); err != nil {
			return nil, err
		}
	}

	if err := s.companyRepo.SaveWithLock(ctx, c); err != nil {
		s.logger.Error("Failed to save company update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update company")
	}

	dto := ToCompanyDTO(c)
	return &dto, nil
}

// ArchiveCompany archives a company
func (s *CompanyService) ArchiveCompany(ctx context.Context, tenantID uuid.UUID, actor Actor, companyID uuid.UUID) error {
	c, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, companyID)
	if err != nil {
		return shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
	}

	if !actor.IsAdmin() && !c.IsOwnedBy(actor.UserID) {
		return shared.ErrForbidden
	}

	if err := c.Archive(); err != nil {
		return err
	}

	if err := s.companyRepo.SaveWithLock(ctx, c); err != nil {
		s.logger.Error("Failed to archive company", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to archive company")
	}

	s.publishEvents(ctx, c.GetDomainEvents())
	c.ClearDomainEvents()

	s.logger.Info("Company archived", zap.String("company_id", companyID.String()))
	return nil
}

// RestoreCompany restores an archived company
func (s *CompanyService) RestoreCompany(ctx context.Context, tenantID uuid.UUID, actor Actor, companyID uuid.UUID) error {
	c, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, companyID)
	if err != nil {
		return shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
	}

	if !actor.IsAdmin() && !c.IsOwnedBy(actor.UserID) {
		return shared.ErrForbidden
	}

	if err := c.Restore(); err != nil {
		return err
	}

	if err := s.companyRepo.SaveWithLock(ctx, c); err != nil {
		s.logger.Error("Failed to restore company", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to restore company")
	}

	s.logger.Info("Company restored", zap.String("company_id", companyID.String()))
	return nil
}

// ReassignCompany moves a company to a new owner. Admin only.
func (s *CompanyService) ReassignCompany(ctx context.Context, tenantID uuid.UUID, actor Actor, companyID, newOwnerID uuid.UUID) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}

	c, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, companyID)
	if err != nil {
		return shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
	}

	if err := c.Reassign(newOwnerID); err != nil {
		return err
	}

	if err := s.companyRepo.SaveWithLock(ctx, c); err != nil {
		s.logger.Error("Failed to reassign company", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reassign company")
	}

	s.logger.Info("Company reassigned",
		zap.String("company_id", companyID.String()),
		zap.String("new_owner_id", newOwnerID.String()))
	return nil
}
