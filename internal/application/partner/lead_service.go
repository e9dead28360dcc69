package partner

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultConversionTermMonths is the draft term used when a conversion does
// not specify one
const DefaultConversionTermMonths = 12

// LeadService handles lead management and conversion
type LeadService struct {
	leadRepo        partner.LeadRepository
	userRepo        identity.UserRepository
	inviteRepo      identity.InviteRepository
	companyRepo     company.CompanyRepository
	applicationRepo funding.ApplicationRepository
	eventPublisher  shared.EventPublisher
	txManager       shared.TransactionManager
	logger          *zap.Logger
}

// NewLeadService creates a new lead service
func NewLeadService(
	leadRepo partner.LeadRepository,
	userRepo identity.UserRepository,
	inviteRepo identity.InviteRepository,
	companyRepo company.CompanyRepository,
	applicationRepo funding.ApplicationRepository,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		leadRepo:        leadRepo,
		userRepo:        userRepo,
		inviteRepo:      inviteRepo,
		companyRepo:     companyRepo,
		applicationRepo: applicationRepo,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *LeadService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetTransactionManager sets the manager used to make conversion atomic
func (s *LeadService) SetTransactionManager(tm shared.TransactionManager) {
	s.txManager = tm
}

// inTx runs fn inside a transaction when a manager is wired, directly otherwise
func (s *LeadService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txManager == nil {
		return fn(ctx)
	}
	return s.txManager.InTransaction(ctx, fn)
}

func (s *LeadService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
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

// loadLead fetches a lead the actor may work. Partners only touch their own
// leads, admins any.
func (s *LeadService) loadLead(ctx context.Context, tenantID uuid.UUID, actor Actor, leadID uuid.UUID) (*partner.Lead, error) {
	lead, err := s.leadRepo.FindByIDForTenant(ctx, tenantID, leadID)
	if err != nil {
		return nil, shared.NewDomainError("LEAD_NOT_FOUND", "Lead not found")
	}
	if !actor.IsAdmin() && !lead.IsOwnedBy(actor.UserID) {
		return nil, shared.ErrForbidden
	}
	return lead, nil
}

// CreateLead records an inbound enquiry. Partner-created leads are owned by
// their creator.
func (s *LeadService) CreateLead(ctx context.Context, input CreateLeadInput) (*LeadDTO, error) {
	if !input.Actor.IsAdmin() && !input.Actor.IsPartner() {
		return nil, shared.ErrForbidden
	}

	lead, err := partner.NewLead(input.TenantID, input.Source, input.ContactName, input.ContactEmail)
	if err != nil {
		return nil, err
	}

	if input.ContactPhone != "" || input.CompanyName != "" || input.Notes != "" {
		if err := lead.UpdateDetails(input.ContactPhone, input.CompanyName, input.Notes); err != nil {
			return nil, err
		}
	}
	if input.RequestedAmount != nil {
		if err := lead.SetRequestedAmount(*input.RequestedAmount); err != nil {
			return nil, err
		}
	}
	if input.Actor.IsPartner() {
		if err := lead.AssignOwner(input.Actor.UserID); err != nil {
			return nil, err
		}
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		s.logger.Error("Failed to save lead", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create lead")
	}

	s.publishEvents(ctx, lead.GetDomainEvents())
	lead.ClearDomainEvents()

	s.logger.Info("Lead created",
		zap.String("lead_id", lead.ID.String()),
		zap.String("source", lead.Source))

	dto := ToLeadDTO(lead)
	return &dto, nil
}

// UpdateLead updates an open lead's details
func (s *LeadService) UpdateLead(ctx context.Context, input UpdateLeadInput) (*LeadDTO, error) {
	lead, err := s.loadLead(ctx, input.TenantID, input.Actor, input.LeadID)
	if err != nil {
		return nil, err
	}

	if input.ContactPhone != nil || input.CompanyName != nil || input.Notes != nil {
		contactPhone := lead.ContactPhone
		companyName := lead.CompanyName
		notes := lead.Notes
		if input.ContactPhone != nil {
			contactPhone = *input.ContactPhone
		}
		if input.CompanyName != nil {
			companyName = *input.CompanyName
		}
		if input.Notes != nil {
			notes = *input.Notes
		}
		if err := lead.UpdateDetails(contactPhone, companyName, notes); err != nil {
			return nil, err
		}
	}
	if input.RequestedAmount != nil {
		if err := lead.SetRequestedAmount(*input.RequestedAmount); err != nil {
			return nil, err
		}
	}

	if err := s.leadRepo.SaveWithLock(ctx, lead); err != nil {
		s.logger.Error("Failed to save lead update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update lead")
	}

	dto := ToLeadDTO(lead)
	return &dto, nil
}

// ListLeads lists leads visible to the actor
func (s *LeadService) ListLeads(ctx context.Context, input ListLeadsInput) (*LeadListResult, error) {
	if !input.Actor.IsAdmin() && !input.Actor.IsPartner() {
		return nil, shared.ErrForbidden
	}

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
		leads []partner.Lead
		err   error
	)
	switch {
	case input.Actor.IsPartner():
		leads, err = s.leadRepo.FindByOwner(ctx, input.TenantID, input.Actor.UserID, filter)
	case input.Status != nil:
		leads, err = s.leadRepo.FindByStatus(ctx, input.TenantID, *input.Status, filter)
	default:
		leads, err = s.leadRepo.FindAllForTenant(ctx, input.TenantID, filter)
	}
	if err != nil {
		s.logger.Error("Failed to list leads", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list leads")
	}

	total, err := s.leadRepo.CountForTenant(ctx, input.TenantID, shared.Filter{})
	if err != nil {
		s.logger.Error("Failed to count leads", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count leads")
	}

	dtos := make([]LeadDTO, 0, len(leads))
	for i := range leads {
		dtos = append(dtos, ToLeadDTO(&leads[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &LeadListResult{
		Leads:      dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// MarkLeadContacted moves a new lead to contacted
func (s *LeadService) MarkLeadContacted(ctx context.Context, tenantID uuid.UUID, actor Actor, leadID uuid.UUID) error {
	lead, err := s.loadLead(ctx, tenantID, actor, leadID)
	if err != nil {
		return err
	}

	if err := lead.MarkContacted(); err != nil {
		return err
	}

	if err := s.leadRepo.SaveWithLock(ctx, lead); err != nil {
		s.logger.Error("Failed to save lead", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update lead")
	}
	return nil
}

// QualifyLead marks a lead as ready for conversion
func (s *LeadService) QualifyLead(ctx context.Context, tenantID uuid.UUID, actor Actor, leadID uuid.UUID) error {
	lead, err := s.loadLead(ctx, tenantID, actor, leadID)
	if err != nil {
		return err
	}

	if err := lead.Qualify(); err != nil {
		return err
	}

	if err := s.leadRepo.SaveWithLock(ctx, lead); err != nil {
		s.logger.Error("Failed to save lead", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to qualify lead")
	}

	s.publishEvents(ctx, lead.GetDomainEvents())
	lead.ClearDomainEvents()
	return nil
}

// DisqualifyLead closes a lead with a reason
func (s *LeadService) DisqualifyLead(ctx context.Context, tenantID uuid.UUID, actor Actor, leadID uuid.UUID, reason string) error {
	lead, err := s.loadLead(ctx, tenantID, actor, leadID)
	if err != nil {
		return err
	}

	if err := lead.Disqualify(reason); err != nil {
		return err
	}

	if err := s.leadRepo.SaveWithLock(ctx, lead); err != nil {
		s.logger.Error("Failed to save lead", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to disqualify lead")
	}
	return nil
}

// ConvertLead turns a qualified lead into an invited client, a company and a
// draft application. The raw invite token is returned for delivery to the new
// client.
func (s *LeadService) ConvertLead(ctx context.Context, input ConvertLeadInput) (*ConvertLeadResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lead", "convert",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, input.TenantID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrLeadID, input.LeadID.String()))
	defer span.End()

	result, err := s.convertLead(ctx, input)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrApplicationID, result.ApplicationID.String())
	return result, nil
}

func (s *LeadService) convertLead(ctx context.Context, input ConvertLeadInput) (*ConvertLeadResult, error) {
	lead, err := s.loadLead(ctx, input.TenantID, input.Actor, input.LeadID)
	if err != nil {
		return nil, err
	}

	if exists, err := s.userRepo.ExistsByEmail(ctx, input.TenantID, lead.ContactEmail); err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	} else if exists {
		return nil, shared.NewDomainError("EMAIL_EXISTS", "A user with the lead's email already exists")
	}

	amount := lead.RequestedAmount
	if input.Amount != nil {
		amount = *input.Amount
	}
	purpose := input.Purpose
	if purpose == "" {
		purpose = funding.PurposeWorkingCapital
	}
	termMonths := input.TermMonths
	if termMonths == 0 {
		termMonths = DefaultConversionTermMonths
	}
	companyName := lead.CompanyName
	if companyName == "" {
		companyName = lead.ContactName
	}

	user, err := identity.NewInvitedUser(input.TenantID, lead.ContactEmail, identity.RoleClient)
	if err != nil {
		return nil, err
	}

	newCompany, err := company.NewCompany(input.TenantID, user.ID, companyName, company.CompanyTypeLtd)
	if err != nil {
		return nil, err
	}

	application, err := funding.NewApplication(input.TenantID, newCompany.ID, user.ID, amount, purpose, termMonths)
	if err != nil {
		return nil, err
	}

	invite, rawToken, err := identity.NewInvite(input.TenantID, user.Email, identity.RoleClient, input.Actor.UserID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := lead.Convert(user.ID, newCompany.ID, application.ID); err != nil {
		return nil, err
	}

	// Five aggregates change together; all of it commits or none of it does
	err = s.inTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Save(txCtx, user); err != nil {
			s.logger.Error("Failed to save converted user", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to convert lead")
		}
		if err := s.companyRepo.Save(txCtx, newCompany); err != nil {
			s.logger.Error("Failed to save converted company", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to convert lead")
		}
		if err := s.applicationRepo.Save(txCtx, application); err != nil {
			s.logger.Error("Failed to save converted application", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to convert lead")
		}
		if err := s.inviteRepo.Save(txCtx, invite); err != nil {
			s.logger.Error("Failed to save invite", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to convert lead")
		}
		if err := s.leadRepo.SaveWithLock(txCtx, lead); err != nil {
			s.logger.Error("Failed to save converted lead", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to convert lead")
		}
		if s.eventPublisher != nil {
			if err := s.eventPublisher.Publish(txCtx, lead.GetDomainEvents()...); err != nil {
				s.logger.Error("Failed to record conversion events", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to convert lead")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	lead.ClearDomainEvents()

	s.logger.Info("Lead converted",
		zap.String("lead_id", lead.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", newCompany.ID.String()),
		zap.String("application_id", application.ID.String()))

	return &ConvertLeadResult{
		UserID:          user.ID,
		CompanyID:       newCompany.ID,
		ApplicationID:   application.ID,
		InviteToken:     rawToken,
		InviteExpiresAt: invite.ExpiresAt,
	}, nil
}
