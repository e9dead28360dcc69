package company

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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

// MockRegistryClient is a mock implementation of company.RegistryClient
type MockRegistryClient struct {
	mock.Mock
}

func (m *MockRegistryClient) GetByNumber(ctx context.Context, number string) (*company.RegistryResult, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.RegistryResult), args.Error(1)
}

func (m *MockRegistryClient) SearchByName(ctx context.Context, name string, limit int) ([]company.RegistryResult, error) {
	args := m.Called(ctx, name, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]company.RegistryResult), args.Error(1)
}
