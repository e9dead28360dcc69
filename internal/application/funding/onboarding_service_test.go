package funding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type onboardingServiceFixture struct {
	onboardingRepo  *MockOnboardingRepository
	userRepo        *MockUserRepository
	companyRepo     *MockCompanyRepository
	applicationRepo *MockApplicationRepository
	service         *OnboardingService
}

func newOnboardingServiceFixture() *onboardingServiceFixture {
	f := &onboardingServiceFixture{
		onboardingRepo:  new(MockOnboardingRepository),
		userRepo:        new(MockUserRepository),
		companyRepo:     new(MockCompanyRepository),
		applicationRepo: new(MockApplicationRepository),
	}
	f.service = NewOnboardingService(f.onboardingRepo, f.userRepo, f.companyRepo, f.applicationRepo, zap.NewNop())
	return f
}

func personalDetails() funding.PersonalDetails {
	return funding.PersonalDetails{
		FirstName:   "Jane",
		LastName:    "Doe",
		Phone:       "+44 7700 900456",
		IsHomeowner: true,
	}
}

func companyDetails() funding.CompanyDetails {
	incorporated := time.Now().AddDate(-3, 0, 0)
	return funding.CompanyDetails{
		LegalName:          "Doe Bakery Ltd",
		Type:               "ltd",
		RegistrationNumber: "09876543",
		SICCode:            "10710",
		IncorporatedOn:     &incorporated,
		Address:            valueobject.MustNewAddress("4 Mill Lane", "Leeds", "LS1 4AB"),
		MonthlyRevenue:     gbp(18000),
	}
}

func fundingDetails() funding.FundingDetails {
	return funding.FundingDetails{
		Amount:     gbp(40000),
		Purpose:    funding.PurposeEquipment,
		TermMonths: 24,
	}
}

// wizardAt walks a fresh wizard up to the given step
func wizardAt(t *testing.T, tenantID, userID uuid.UUID, step funding.Step) *funding.Onboarding {
	t.Helper()
	o, err := funding.NewOnboarding(tenantID, userID)
	require.NoError(t, err)
	if step.Index() > funding.StepPersonalDetails.Index() {
		require.NoError(t, o.SubmitPersonalDetails(personalDetails()))
	}
	if step.Index() > funding.StepCompanyDetails.Index() {
		require.NoError(t, o.SubmitCompanyDetails(companyDetails()))
	}
	if step.Index() > funding.StepFundingDetails.Index() {
		require.NoError(t, o.SubmitFundingDetails(fundingDetails()))
	}
	if step.Index() > funding.StepDocuments.Index() {
		require.NoError(t, o.SubmitDocuments([]uuid.UUID{uuid.New()}))
	}
	return o
}

func TestOnboardingService_GetOnboarding(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("first access starts the wizard", func(t *testing.T) {
		f := newOnboardingServiceFixture()
		userID := uuid.New()

		f.onboardingRepo.On("FindByUser", ctx, tenantID, userID).Return(nil, errors.New("not found"))
		f.onboardingRepo.On("Save", ctx, mock.AnythingOfType("*funding.Onboarding")).Return(nil)

		dto, err := f.service.GetOnboarding(ctx, tenantID, clientActor(userID), userID)

		require.NoError(t, err)
		assert.Equal(t, funding.StepPersonalDetails, dto.CurrentStep)
		f.onboardingRepo.AssertExpectations(t)
	})

	t.Run("users cannot read someone else's wizard", func(t *testing.T) {
		f := newOnboardingServiceFixture()

		_, err := f.service.GetOnboarding(ctx, tenantID, clientActor(uuid.New()), uuid.New())

		assert.Error(t, err)
	})

	t.Run("admin reads any wizard without starting one", func(t *testing.T) {
		f := newOnboardingServiceFixture()
		userID := uuid.New()
		o := wizardAt(t, tenantID, userID, funding.StepFundingDetails)

		f.onboardingRepo.On("FindByUser", ctx, tenantID, userID).Return(o, nil)

		dto, err := f.service.GetOnboarding(ctx, tenantID, adminActor(uuid.New()), userID)

		require.NoError(t, err)
		assert.Equal(t, funding.StepFundingDetails, dto.CurrentStep)
		f.onboardingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestOnboardingService_Steps(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("personal details advance the wizard and mirror the profile", func(t *testing.T) {
		f := newOnboardingServiceFixture()
		userID := uuid.New()
		o, err := funding.NewOnboarding(tenantID, userID)
		require.NoError(t, err)
		user, err := identity.NewUser(tenantID, "jane@example.com", "Password1", identity.RoleClient)
		require.NoError(t, err)

		f.onboardingRepo.On("FindByUser", ctx, tenantID, userID).Return(o, nil)
		f.onboardingRepo.On("SaveWithLock", ctx, o).Return(nil)
		f.userRepo.On("FindByIDForTenant", ctx, tenantID, userID).Return(user, nil)
		f.userRepo.On("Save", ctx, user).Return(nil)

		dto, err := f.service.SubmitPersonalDetails(ctx, tenantID, clientActor(userID), personalDetails())

		require.NoError(t, err)
		assert.Equal(t, funding.StepCompanyDetails, dto.CurrentStep)
		assert.Equal(t, "Jane", user.FirstName)
		assert.True(t, user.IsHomeowner)
	})

	t.Run("steps cannot be skipped", func(t *testing.T) {
		f := newOnboardingServiceFixture()
		userID := uuid.New()
		o, err := funding.NewOnboarding(tenantID, userID)
		require.NoError(t, err)

		f.onboardingRepo.On("FindByUser", ctx, tenantID, userID).Return(o, nil)

		_, err = f.service.SubmitFundingDetails(ctx, tenantID, clientActor(userID), fundingDetails())

		assertDomainErrorCode(t, err, "STEP_NOT_REACHED")
		f.onboardingRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("earlier steps can be resubmitted without losing progress", func(t *testing.T) {
		f := newOnboardingServiceFixture()
		userID := uuid.New()
		o := wizardAt(t, tenantID, userID, funding.StepDocuments)

		f.onboardingRepo.On("FindByUser", ctx, tenantID, userID).Return(o, nil)
		f.onboardingRepo.On("SaveWithLock", ctx, o).Return(nil)

		details := fundingDetails()
		details.Amount = gbp(60000)
		dto, err := f.service.SubmitFundingDetails(ctx, tenantID, clientActor(userID), details)

		require.NoError(t, err)
		assert.Equal(t, funding.StepDocuments, dto.CurrentStep)
		assert.True(t, o.Funding.Amount.Equals(gbp(60000)))
	})

	t.Run("documents step passes with no documents", func(t *testing.T) {
		f := newOnboardingServiceFixture()
		userID := uuid.New()
		o := wizardAt(t, tenantID, userID, funding.StepDocuments)

		f.onboardingRepo.On("FindByUser", ctx, tenantID, userID).Return(o, nil)
		f.onboardingRepo.On("SaveWithLock", ctx, o).Return(nil)

		dto, err := f.service.SubmitDocuments(ctx, tenantID, clientActor(userID), nil)

		require.NoError(t, err)
		assert.Equal(t, funding.StepReview, dto.CurrentStep)
	})
}

func TestOnboardingService_Complete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates the company and a draft application", func(t *testing.T) {
		f := newOnboardingServiceFixture()
		userID := uuid.New()
		o := wizardAt(t, tenantID, userID, funding.StepReview)

		var (
			savedCompany     *company.Company
			savedApplication *funding.Application
		)
		f.onboardingRepo.On("FindByUser", ctx, tenantID, userID).Return(o, nil)
		f.companyRepo.On("Save", ctx, mock.AnythingOfType("*company.Company")).Run(func(args mock.Arguments) {
			savedCompany = args.Get(1).(*company.Company)
		}).Return(nil)
		f.applicationRepo.On("Save", ctx, mock.AnythingOfType("*funding.Application")).Run(func(args mock.Arguments) {
			savedApplication = args.Get(1).(*funding.Application)
		}).Return(nil)
		f.onboardingRepo.On("SaveWithLock", ctx, o).Return(nil)

		result, err := f.service.CompleteOnboarding(ctx, tenantID, clientActor(userID))

		require.NoError(t, err)
		require.NotNil(t, savedCompany)
		require.NotNil(t, savedApplication)

		assert.Equal(t, "Doe Bakery Ltd", savedCompany.LegalName)
		assert.Equal(t, userID, savedCompany.OwnerID)
		assert.Equal(t, "09876543", savedCompany.RegistrationNumber)
		assert.Equal(t, "10710", savedCompany.SICCode)
		assert.True(t, savedCompany.MonthlyRevenue.Equals(gbp(18000)))
		assert.Equal(t, "4 Mill Lane", savedCompany.RegisteredAddress.Line1())

		assert.Equal(t, savedCompany.ID, savedApplication.CompanyID)
		assert.Equal(t, userID, savedApplication.ApplicantID)
		assert.Equal(t, funding.PurposeEquipment, savedApplication.Purpose)
		assert.Equal(t, 24, savedApplication.TermMonths)
		assert.Equal(t, funding.StageDraft, savedApplication.Stage)

		assert.Equal(t, savedCompany.ID, result.CompanyID)
		assert.Equal(t, savedApplication.ID, result.ApplicationID)

		assert.True(t, o.IsCompleted())
		require.NotNil(t, o.CompanyID)
		assert.Equal(t, savedCompany.ID, *o.CompanyID)
	})

	t.Run("cannot complete before the review step", func(t *testing.T) {
		f := newOnboardingServiceFixture()
		userID := uuid.New()
		o := wizardAt(t, tenantID, userID, funding.StepFundingDetails)

		f.onboardingRepo.On("FindByUser", ctx, tenantID, userID).Return(o, nil)

		_, err := f.service.CompleteOnboarding(ctx, tenantID, clientActor(userID))

		assertDomainErrorCode(t, err, "STEP_NOT_REACHED")
		f.companyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cannot complete twice", func(t *testing.T) {
		f := newOnboardingServiceFixture()
		userID := uuid.New()
		o := wizardAt(t, tenantID, userID, funding.StepReview)
		require.NoError(t, o.Complete(uuid.New(), uuid.New()))

		f.onboardingRepo.On("FindByUser", ctx, tenantID, userID).Return(o, nil)

		_, err := f.service.CompleteOnboarding(ctx, tenantID, clientActor(userID))

		assertDomainErrorCode(t, err, "ALREADY_COMPLETED")
	})
}
