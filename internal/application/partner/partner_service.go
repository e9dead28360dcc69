package partner

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PartnerService handles partner-to-company assignments
type PartnerService struct {
	assignmentRepo partner.AssignmentRepository
	userRepo       identity.UserRepository
	companyRepo    company.CompanyRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPartnerService creates a new partner service
func NewPartnerService(
	assignmentRepo partner.AssignmentRepository,
	userRepo identity.UserRepository,
	companyRepo company.CompanyRepository,
	logger *zap.Logger,
) *PartnerService {
	return &PartnerService{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PartnerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PartnerService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
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

// AssignPartner gives a partner access to a company's book. Admin only.
func (s *PartnerService) AssignPartner(ctx context.Context, input AssignPartnerInput) (*AssignmentDTO, error) {
	if !input.Actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	partnerUser, err := s.userRepo.FindByIDForTenant(ctx, input.TenantID, input.PartnerID)
	if err != nil {
		return nil, shared.NewDomainError("PARTNER_NOT_FOUND", "Partner not found")
	}
	if partnerUser.Role != identity.RolePartner {
		return nil, shared.NewDomainError("NOT_A_PARTNER", "Only partner users can hold assignments")
	}

	if _, err := s.companyRepo.FindByIDForTenant(ctx, input.TenantID, input.CompanyID); err != nil {
		return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
	}

	if existing, err := s.assignmentRepo.FindActiveByPartnerAndCompany(ctx, input.TenantID, input.PartnerID, input.CompanyID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ASSIGNMENT_EXISTS", "Partner is already assigned to this company")
	}

	assignment, err := partner.NewAssignment(input.TenantID, input.PartnerID, input.CompanyID, input.Actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		s.logger.Error("Failed to save assignment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create assignment")
	}

	s.publishEvents(ctx, assignment.GetDomainEvents())
	assignment.ClearDomainEvents()

	s.logger.Info("Partner assigned",
		zap.String("partner_id", input.PartnerID.String()),
		zap.String("company_id", input.CompanyID.String()))

	dto := ToAssignmentDTO(assignment)
	return &dto, nil
}

// RevokeAssignment removes a partner from a company. Admin only.
func (s *PartnerService) RevokeAssignment(ctx context.Context, tenantID uuid.UUID, actor Actor, assignmentID uuid.UUID) error {
	if !actor.IsAdmin() {
		return shared.ErrForbidden
	}

	assignment, err := s.assignmentRepo.FindByIDForTenant(ctx, tenantID, assignmentID)
	if err != nil {
		return shared.NewDomainError("ASSIGNMENT_NOT_FOUND", "Assignment not found")
	}

	if err := assignment.Revoke(); err != nil {
		return err
	}

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		s.logger.Error("Failed to revoke assignment", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke assignment")
	}

	s.publishEvents(ctx, assignment.GetDomainEvents())
	assignment.ClearDomainEvents()

	s.logger.Info("Assignment revoked", zap.String("assignment_id", assignmentID.String()))
	return nil
}

// RevokeAssignmentsForCompany revokes every active assignment pointing at a
// company. Called from the event pipeline when a company is archived, so it
// runs without an actor check. Returns the number of assignments revoked.
func (s *PartnerService) RevokeAssignmentsForCompany(ctx context.Context, tenantID, companyID uuid.UUID) (int, error) {
	assignments, err := s.assignmentRepo.FindByCompany(ctx, tenantID, companyID, shared.Filter{})
	if err != nil {
		s.logger.Error("Failed to load assignments for company", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to load assignments")
	}

	revoked := 0
	for i := range assignments {
		assignment := &assignments[i]
		if !assignment.IsActive() {
			continue
		}
		if err := assignment.Revoke(); err != nil {
			continue
		}
		if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
			s.logger.Error("Failed to revoke assignment",
				zap.String("assignment_id", assignment.ID.String()),
				zap.Error(err))
			continue
		}
		s.publishEvents(ctx, assignment.GetDomainEvents())
		assignment.ClearDomainEvents()
		revoked++
	}

	if revoked > 0 {
		s.logger.Info("Assignments revoked for archived company",
			zap.String("company_id", companyID.String()),
			zap.Int("count", revoked))
	}
	return revoked, nil
}

// ListAssignmentsForPartner lists a partner's assignments. Partners see their
// own book, admins anyone's.
func (s *PartnerService) ListAssignmentsForPartner(ctx context.Context, tenantID uuid.UUID, actor Actor, partnerID uuid.UUID) ([]AssignmentDTO, error) {
	if !actor.IsAdmin() && actor.UserID != partnerID {
		return nil, shared.ErrForbidden
	}

	assignments, err := s.assignmentRepo.FindByPartner(ctx, tenantID, partnerID, shared.Filter{})
	if err != nil {
		s.logger.Error("Failed to list assignments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list assignments")
	}

	dtos := make([]AssignmentDTO, 0, len(assignments))
	for i := range assignments {
		dtos = append(dtos, ToAssignmentDTO(&assignments[i]))
	}
	return dtos, nil
}

// ListAssignmentsForCompany lists the partners assigned to a company. Admin only.
func (s *PartnerService) ListAssignmentsForCompany(ctx context.Context, tenantID uuid.UUID, actor Actor, companyID uuid.UUID) ([]AssignmentDTO, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	assignments, err := s.assignmentRepo.FindByCompany(ctx, tenantID, companyID, shared.Filter{})
	if err != nil {
		s.logger.Error("Failed to list assignments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list assignments")
	}

	dtos := make([]AssignmentDTO, 0, len(assignments))
	for i := range assignments {
		dtos = append(dtos, ToAssignmentDTO(&assignments[i]))
	}
	return dtos, nil
}
