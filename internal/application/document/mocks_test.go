package document

import (
	"context"
	"time"

	"github.com/brokerhub/backend/internal/domain/document"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDocumentRepository is a mock implementation of document.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*document.Document, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]document.Document, error) {
	args := m.Called(ctx, tenantID, ownerID, filter)
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByApplication(ctx context.Context, tenantID, applicationID uuid.UUID, filter shared.Filter) ([]document.Document, error) {
	args := m.Called(ctx, tenantID, applicationID, filter)
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]document.Document, error) {
	args := m.Called(ctx, tenantID, companyID, filter)
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]document.Document, error) {
	args := m.Called(ctx, cutoff, limit)
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *MockDocumentRepository) CountByApplication(ctx context.Context, tenantID, applicationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, applicationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) SaveWithLock(ctx context.Context, doc *document.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
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

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}
