package partner

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAssignmentRepository is a mock implementation of partner.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Assignment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindActiveByPartnerAndCompany(ctx context.Context, tenantID, partnerID, companyID uuid.UUID) (*partner.Assignment, error) {
	args := m.Called(ctx, tenantID, partnerID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByPartner(ctx context.Context, tenantID, partnerID uuid.UUID, filter shared.Filter) ([]partner.Assignment, error) {
	args := m.Called(ctx, tenantID, partnerID, filter)
	return args.Get(0).([]partner.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]partner.Assignment, error) {
	args := m.Called(ctx, tenantID, companyID, filter)
	return args.Get(0).([]partner.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ActiveCompanyIDsForPartner(ctx context.Context, tenantID, partnerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, tenantID, partnerID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAssignmentRepository) Save(ctx context.Context, assignment *partner.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockLeadRepository is a mock implementation of partner.LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Lead, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Lead, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]partner.Lead, error) {
	args := m.Called(ctx, tenantID, ownerID, filter)
	return args.Get(0).([]partner.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status partner.LeadStatus, filter shared.Filter) ([]partner.Lead, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]partner.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByContactEmail(ctx context.Context, tenantID uuid.UUID, email string) (*partner.Lead, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Lead), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *partner.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) SaveWithLock(ctx context.Context, lead *partner.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockLeadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, tenantID uuid.UUID, role identity.UserRole, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, tenantID, role, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveWithLock(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

// MockInviteRepository is a mock implementation of identity.InviteRepository
type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Invite, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Invite), args.Error(1)
}

func (m *MockInviteRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*identity.Invite, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Invite), args.Error(1)
}

func (m *MockInviteRepository) FindPendingByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.Invite, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Invite), args.Error(1)
}

func (m *MockInviteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.Invite, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]identity.Invite), args.Error(1)
}

func (m *MockInviteRepository) Save(ctx context.Context, invite *identity.Invite) error {
	args := m.Called(ctx, invite)
	return args.Error(0)
}

func (m *MockInviteRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockCompanyRepository is a mock implementation of company.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByRegistrationNumber(ctx context.Context, tenantID uuid.UUID, number string) (*company.Company, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]company.Company, error) {
	args := m.Called(ctx, tenantID, ownerID, filter)
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]company.Company, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]company.Company, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) SaveWithLock(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) CountByOwner(ctx context.Context, tenantID, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) ExistsByRegistrationNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	args := m.Called(ctx, tenantID, number)
	return args.Bool(0), args.Error(1)
}

// MockApplicationRepository is a mock implementation of funding.ApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*funding.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*funding.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*funding.Application, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*funding.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByApplicant(ctx context.Context, tenantID, applicantID uuid.UUID, filter shared.Filter) ([]funding.Application, error) {
	args := m.Called(ctx, tenantID, applicantID, filter)
	return args.Get(0).([]funding.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]funding.Application, error) {
	args := m.Called(ctx, tenantID, companyID, filter)
	return args.Get(0).([]funding.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByCompanies(ctx context.Context, tenantID uuid.UUID, companyIDs []uuid.UUID, filter shared.Filter) ([]funding.Application, error) {
	args := m.Called(ctx, tenantID, companyIDs, filter)
	return args.Get(0).([]funding.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByStage(ctx context.Context, tenantID uuid.UUID, stage funding.Stage, filter shared.Filter) ([]funding.Application, error) {
	args := m.Called(ctx, tenantID, stage, filter)
	return args.Get(0).([]funding.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]funding.Application, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]funding.Application), args.Error(1)
}

func (m *MockApplicationRepository) Save(ctx context.Context, app *funding.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) SaveWithLock(ctx context.Context, app *funding.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockApplicationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) CountByStage(ctx context.Context, tenantID uuid.UUID, stage funding.Stage) (int64, error) {
	args := m.Called(ctx, tenantID, stage)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
