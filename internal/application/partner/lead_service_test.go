package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// txManagerSpy counts transactions and runs the work inline
type txManagerSpy struct {
	calls int
}

func (m *txManagerSpy) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type leadServiceFixture struct {
	leadRepo        *MockLeadRepository
	userRepo        *MockUserRepository
	inviteRepo      *MockInviteRepository
	companyRepo     *MockCompanyRepository
	applicationRepo *MockApplicationRepository
	service         *LeadService
}

func newLeadServiceFixture() *leadServiceFixture {
	f := &leadServiceFixture{
		leadRepo:        new(MockLeadRepository),
		userRepo:        new(MockUserRepository),
		inviteRepo:      new(MockInviteRepository),
		companyRepo:     new(MockCompanyRepository),
		applicationRepo: new(MockApplicationRepository),
	}
	f.service = NewLeadService(f.leadRepo, f.userRepo, f.inviteRepo, f.companyRepo, f.applicationRepo, zap.NewNop())
	return f
}

func gbp(amount int64) valueobject.Money {
	return valueobject.NewMoneyGBP(decimal.NewFromInt(amount))
}

func qualifiedLead(t *testing.T, tenantID uuid.UUID, ownerID uuid.UUID) *partner.Lead {
	t.Helper()
	lead, err := partner.NewLead(tenantID, "website", "Sam Carter", "sam.carter@example.com")
	require.NoError(t, err)
	require.NoError(t, lead.UpdateDetails("+44 7700 900123", "Carter Logistics Ltd", "needs a van fleet"))
	require.NoError(t, lead.SetRequestedAmount(gbp(25000)))
	if ownerID != uuid.Nil {
		require.NoError(t, lead.AssignOwner(ownerID))
	}
	require.NoError(t, lead.Qualify())
	lead.ClearDomainEvents()
	return lead
}

func TestLeadService_CreateLead(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("partner-created lead is owned by its creator", func(t *testing.T) {
		f := newLeadServiceFixture()
		partnerID := uuid.New()

		f.leadRepo.On("Save", ctx, mock.AnythingOfType("*partner.Lead")).Return(nil)

		dto, err := f.service.CreateLead(ctx, CreateLeadInput{
			TenantID:     tenantID,
			Actor:        partnerActor(partnerID),
			Source:       "referral",
			ContactName:  "Sam Carter",
			ContactEmail: "Sam.Carter@Example.com",
			ContactPhone: "+44 7700 900123",
			CompanyName:  "Carter Logistics Ltd",
		})

		require.NoError(t, err)
		assert.Equal(t, "sam.carter@example.com", dto.ContactEmail)
		assert.Equal(t, partner.LeadStatusNew, dto.Status)
		require.NotNil(t, dto.OwnerID)
		assert.Equal(t, partnerID, *dto.OwnerID)
	})

	t.Run("admin-created lead starts unowned", func(t *testing.T) {
		f := newLeadServiceFixture()

		f.leadRepo.On("Save", ctx, mock.AnythingOfType("*partner.Lead")).Return(nil)

		amount := gbp(50000)
		dto, err := f.service.CreateLead(ctx, CreateLeadInput{
			TenantID:        tenantID,
			Actor:           adminActor(uuid.New()),
			Source:          "website",
			ContactName:     "Sam Carter",
			ContactEmail:    "sam@example.com",
			RequestedAmount: &amount,
		})

		require.NoError(t, err)
		assert.Nil(t, dto.OwnerID)
		assert.True(t, dto.RequestedAmount.Amount().Equal(decimal.NewFromInt(50000)))
	})

	t.Run("clients cannot create leads", func(t *testing.T) {
		f := newLeadServiceFixture()

		_, err := f.service.CreateLead(ctx, CreateLeadInput{
			TenantID:     tenantID,
			Actor:        clientActor(uuid.New()),
			ContactName:  "Sam Carter",
			ContactEmail: "sam@example.com",
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.leadRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLeadService_UpdateLead(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("merges only the provided fields", func(t *testing.T) {
		f := newLeadServiceFixture()
		partnerID := uuid.New()
		lead, err := partner.NewLead(tenantID, "website", "Sam Carter", "sam@example.com")
		require.NoError(t, err)
		require.NoError(t, lead.UpdateDetails("+44 7700 900123", "Carter Logistics Ltd", "initial note"))
		require.NoError(t, lead.AssignOwner(partnerID))

		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		f.leadRepo.On("SaveWithLock", ctx, lead).Return(nil)

		notes := "spoke on the phone, wants 30k"
		dto, err := f.service.UpdateLead(ctx, UpdateLeadInput{
			TenantID: tenantID,
			Actor:    partnerActor(partnerID),
			LeadID:   lead.ID,
			Notes:    &notes,
		})

		require.NoError(t, err)
		assert.Equal(t, notes, dto.Notes)
		assert.Equal(t, "Carter Logistics Ltd", dto.CompanyName)
		assert.Equal(t, "+44 7700 900123", dto.ContactPhone)
	})

	t.Run("partner cannot update an unowned lead", func(t *testing.T) {
		f := newLeadServiceFixture()
		lead, err := partner.NewLead(tenantID, "website", "Sam Carter", "sam@example.com")
		require.NoError(t, err)

		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)

		notes := "note"
		_, err = f.service.UpdateLead(ctx, UpdateLeadInput{
			TenantID: tenantID,
			Actor:    partnerActor(uuid.New()),
			LeadID:   lead.ID,
			Notes:    &notes,
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestLeadService_ListLeads(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("partners see their own leads", func(t *testing.T) {
		f := newLeadServiceFixture()
		partnerID := uuid.New()
		lead, err := partner.NewLead(tenantID, "website", "Sam Carter", "sam@example.com")
		require.NoError(t, err)

		f.leadRepo.On("FindByOwner", ctx, tenantID, partnerID, shared.Filter{Page: 1, PageSize: 20}).Return([]partner.Lead{*lead}, nil)
		f.leadRepo.On("CountForTenant", ctx, tenantID, shared.Filter{}).Return(int64(1), nil)

		result, err := f.service.ListLeads(ctx, ListLeadsInput{TenantID: tenantID, Actor: partnerActor(partnerID)})

		require.NoError(t, err)
		assert.Len(t, result.Leads, 1)
		assert.Equal(t, int64(1), result.Total)
	})

	t.Run("admin filters by status", func(t *testing.T) {
		f := newLeadServiceFixture()
		status := partner.LeadStatusQualified

		f.leadRepo.On("FindByStatus", ctx, tenantID, status, shared.Filter{Page: 1, PageSize: 20}).Return([]partner.Lead{}, nil)
		f.leadRepo.On("CountForTenant", ctx, tenantID, shared.Filter{}).Return(int64(0), nil)

		result, err := f.service.ListLeads(ctx, ListLeadsInput{TenantID: tenantID, Actor: adminActor(uuid.New()), Status: &status})

		require.NoError(t, err)
		assert.Empty(t, result.Leads)
		f.leadRepo.AssertNotCalled(t, "FindAllForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("clients cannot list leads", func(t *testing.T) {
		f := newLeadServiceFixture()

		_, err := f.service.ListLeads(ctx, ListLeadsInput{TenantID: tenantID, Actor: clientActor(uuid.New())})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestLeadService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("qualify a contacted lead", func(t *testing.T) {
		f := newLeadServiceFixture()
		partnerID := uuid.New()
		lead, err := partner.NewLead(tenantID, "website", "Sam Carter", "sam@example.com")
		require.NoError(t, err)
		require.NoError(t, lead.AssignOwner(partnerID))
		require.NoError(t, lead.MarkContacted())

		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		f.leadRepo.On("SaveWithLock", ctx, lead).Return(nil)

		err = f.service.QualifyLead(ctx, tenantID, partnerActor(partnerID), lead.ID)

		require.NoError(t, err)
		assert.Equal(t, partner.LeadStatusQualified, lead.Status)
	})

	t.Run("disqualify requires a reason", func(t *testing.T) {
		f := newLeadServiceFixture()
		lead, err := partner.NewLead(tenantID, "website", "Sam Carter", "sam@example.com")
		require.NoError(t, err)

		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)

		err = f.service.DisqualifyLead(ctx, tenantID, adminActor(uuid.New()), lead.ID, "  ")

		assertDomainErrorCode(t, err, "INVALID_REASON")
		f.leadRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("contacted leads cannot be marked contacted again", func(t *testing.T) {
		f := newLeadServiceFixture()
		lead, err := partner.NewLead(tenantID, "website", "Sam Carter", "sam@example.com")
		require.NoError(t, err)
		require.NoError(t, lead.MarkContacted())

		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)

		err = f.service.MarkLeadContacted(ctx, tenantID, adminActor(uuid.New()), lead.ID)

		assertDomainErrorCode(t, err, "INVALID_STATE")
	})
}

func TestLeadService_ConvertLead(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates an invited client, company and draft application", func(t *testing.T) {
		f := newLeadServiceFixture()
		partnerID := uuid.New()
		lead := qualifiedLead(t, tenantID, partnerID)

		var (
			savedUser        *identity.User
			savedCompany     *company.Company
			savedApplication *funding.Application
			savedInvite      *identity.Invite
		)
		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		f.userRepo.On("ExistsByEmail", ctx, tenantID, "sam.carter@example.com").Return(false, nil)
		f.userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Run(func(args mock.Arguments) {
			savedUser = args.Get(1).(*identity.User)
		}).Return(nil)
		f.companyRepo.On("Save", ctx, mock.AnythingOfType("*company.Company")).Run(func(args mock.Arguments) {
			savedCompany = args.Get(1).(*company.Company)
		}).Return(nil)
		f.applicationRepo.On("Save", ctx, mock.AnythingOfType("*funding.Application")).Run(func(args mock.Arguments) {
			savedApplication = args.Get(1).(*funding.Application)
		}).Return(nil)
		f.inviteRepo.On("Save", ctx, mock.AnythingOfType("*identity.Invite")).Run(func(args mock.Arguments) {
			savedInvite = args.Get(1).(*identity.Invite)
		}).Return(nil)
		f.leadRepo.On("SaveWithLock", ctx, lead).Return(nil)

		result, err := f.service.ConvertLead(ctx, ConvertLeadInput{
			TenantID: tenantID,
			Actor:    partnerActor(partnerID),
			LeadID:   lead.ID,
		})

		require.NoError(t, err)
		require.NotNil(t, savedUser)
		require.NotNil(t, savedCompany)
		require.NotNil(t, savedApplication)
		require.NotNil(t, savedInvite)

		assert.Equal(t, "sam.carter@example.com", savedUser.Email)
		assert.Equal(t, identity.RoleClient, savedUser.Role)
		assert.Equal(t, savedUser.ID, savedCompany.OwnerID)
		assert.Equal(t, "Carter Logistics Ltd", savedCompany.LegalName)
		assert.Equal(t, savedCompany.ID, savedApplication.CompanyID)
		assert.True(t, savedApplication.Amount.Amount().Equal(decimal.NewFromInt(25000)))
		assert.Equal(t, funding.PurposeWorkingCapital, savedApplication.Purpose)
		assert.Equal(t, DefaultConversionTermMonths, savedApplication.TermMonths)

		assert.Equal(t, savedUser.ID, result.UserID)
		assert.Equal(t, savedCompany.ID, result.CompanyID)
		assert.Equal(t, savedApplication.ID, result.ApplicationID)
		assert.NotEmpty(t, result.InviteToken)

		assert.Equal(t, partner.LeadStatusConverted, lead.Status)
		require.NotNil(t, lead.ConvertedUserID)
		assert.Equal(t, savedUser.ID, *lead.ConvertedUserID)
		require.NotNil(t, lead.ConvertedCompanyID)
		assert.Equal(t, savedCompany.ID, *lead.ConvertedCompanyID)
		require.NotNil(t, lead.ConvertedApplicationID)
		assert.Equal(t, savedApplication.ID, *lead.ConvertedApplicationID)
	})

	t.Run("explicit terms override the lead's defaults", func(t *testing.T) {
		f := newLeadServiceFixture()
		lead := qualifiedLead(t, tenantID, uuid.Nil)

		var savedApplication *funding.Application
		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		f.userRepo.On("ExistsByEmail", ctx, tenantID, lead.ContactEmail).Return(false, nil)
		f.userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		f.companyRepo.On("Save", ctx, mock.AnythingOfType("*company.Company")).Return(nil)
		f.applicationRepo.On("Save", ctx, mock.AnythingOfType("*funding.Application")).Run(func(args mock.Arguments) {
			savedApplication = args.Get(1).(*funding.Application)
		}).Return(nil)
		f.inviteRepo.On("Save", ctx, mock.AnythingOfType("*identity.Invite")).Return(nil)
		f.leadRepo.On("SaveWithLock", ctx, lead).Return(nil)

		amount := gbp(80000)
		_, err := f.service.ConvertLead(ctx, ConvertLeadInput{
			TenantID:   tenantID,
			Actor:      adminActor(uuid.New()),
			LeadID:     lead.ID,
			Amount:     &amount,
			Purpose:    funding.PurposeEquipment,
			TermMonths: 36,
		})

		require.NoError(t, err)
		require.NotNil(t, savedApplication)
		assert.True(t, savedApplication.Amount.Amount().Equal(decimal.NewFromInt(80000)))
		assert.Equal(t, funding.PurposeEquipment, savedApplication.Purpose)
		assert.Equal(t, 36, savedApplication.TermMonths)
	})

	t.Run("rejects conversion when the email is taken", func(t *testing.T) {
		f := newLeadServiceFixture()
		lead := qualifiedLead(t, tenantID, uuid.Nil)

		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		f.userRepo.On("ExistsByEmail", ctx, tenantID, lead.ContactEmail).Return(true, nil)

		_, err := f.service.ConvertLead(ctx, ConvertLeadInput{
			TenantID: tenantID,
			Actor:    adminActor(uuid.New()),
			LeadID:   lead.ID,
		})

		assertDomainErrorCode(t, err, "EMAIL_EXISTS")
		f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Equal(t, partner.LeadStatusQualified, lead.Status)
	})

	t.Run("only qualified leads can be converted", func(t *testing.T) {
		f := newLeadServiceFixture()
		lead, err := partner.NewLead(tenantID, "website", "Sam Carter", "sam@example.com")
		require.NoError(t, err)
		require.NoError(t, lead.SetRequestedAmount(gbp(25000)))

		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		f.userRepo.On("ExistsByEmail", ctx, tenantID, lead.ContactEmail).Return(false, nil)

		_, err = f.service.ConvertLead(ctx, ConvertLeadInput{
			TenantID: tenantID,
			Actor:    adminActor(uuid.New()),
			LeadID:   lead.ID,
		})

		assertDomainErrorCode(t, err, "INVALID_STATE")
		f.leadRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("partner cannot convert another partner's lead", func(t *testing.T) {
		f := newLeadServiceFixture()
		lead := qualifiedLead(t, tenantID, uuid.New())

		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)

		_, err := f.service.ConvertLead(ctx, ConvertLeadInput{
			TenantID: tenantID,
			Actor:    partnerActor(uuid.New()),
			LeadID:   lead.ID,
		})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("conversion saves run in one transaction", func(t *testing.T) {
		f := newLeadServiceFixture()
		tm := &txManagerSpy{}
		f.service.SetTransactionManager(tm)
		lead := qualifiedLead(t, tenantID, uuid.Nil)

		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		f.userRepo.On("ExistsByEmail", ctx, tenantID, lead.ContactEmail).Return(false, nil)
		f.userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		f.companyRepo.On("Save", ctx, mock.AnythingOfType("*company.Company")).Return(nil)
		f.applicationRepo.On("Save", ctx, mock.AnythingOfType("*funding.Application")).Return(nil)
		f.inviteRepo.On("Save", ctx, mock.AnythingOfType("*identity.Invite")).Return(nil)
		f.leadRepo.On("SaveWithLock", ctx, lead).Return(nil)

		_, err := f.service.ConvertLead(ctx, ConvertLeadInput{
			TenantID: tenantID,
			Actor:    adminActor(uuid.New()),
			LeadID:   lead.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, tm.calls)
	})

	t.Run("a failed save surfaces from the transaction", func(t *testing.T) {
		f := newLeadServiceFixture()
		tm := &txManagerSpy{}
		f.service.SetTransactionManager(tm)
		lead := qualifiedLead(t, tenantID, uuid.Nil)

		f.leadRepo.On("FindByIDForTenant", ctx, tenantID, lead.ID).Return(lead, nil)
		f.userRepo.On("ExistsByEmail", ctx, tenantID, lead.ContactEmail).Return(false, nil)
		f.userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		f.companyRepo.On("Save", ctx, mock.AnythingOfType("*company.Company")).Return(nil)
		f.applicationRepo.On("Save", ctx, mock.AnythingOfType("*funding.Application")).Return(errors.New("write failed"))

		_, err := f.service.ConvertLead(ctx, ConvertLeadInput{
			TenantID: tenantID,
			Actor:    adminActor(uuid.New()),
			LeadID:   lead.ID,
		})

		assertDomainErrorCode(t, err, "INTERNAL_ERROR")
		assert.Equal(t, 1, tm.calls)
		f.leadRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}
