package funding

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ApplicationRepository defines the interface for application persistence
type ApplicationRepository interface {
	// FindByID finds an application by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Application, error)

	// FindByIDForTenant finds an application by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Application, error)

	// FindByApplicant finds applications created by a user
	FindByApplicant(ctx context.Context, tenantID, applicantID uuid.UUID, filter shared.Filter) ([]Application, error)

	// FindByCompany finds applications for a company
	FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]Application, error)

	// FindByCompanies finds applications across a set of companies
	FindByCompanies(ctx context.Context, tenantID uuid.UUID, companyIDs []uuid.UUID, filter shared.Filter) ([]Application, error)

	// FindByStage finds applications in a pipeline stage
	FindByStage(ctx context.Context, tenantID uuid.UUID, stage Stage, filter shared.Filter) ([]Application, error)

	// FindAllForTenant finds all applications for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Application, error)

	// Save creates or updates an application
	Save(ctx context.Context, app *Application) error

	// SaveWithLock saves an application with optimistic locking (version check)
	SaveWithLock(ctx context.Context, app *Application) error

	// DeleteForTenant deletes an application within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts applications for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStage counts applications in a stage for a tenant
	CountByStage(ctx context.Context, tenantID uuid.UUID, stage Stage) (int64, error)
}

// OnboardingRepository defines the interface for onboarding persistence
type OnboardingRepository interface {
	// FindByID finds an onboarding by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Onboarding, error)

	// FindByUser finds the onboarding record for a user
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID) (*Onboarding, error)

	// Save creates or updates an onboarding
	Save(ctx context.Context, onboarding *Onboarding) error

	// SaveWithLock saves an onboarding with optimistic locking (version check)
	SaveWithLock(ctx context.Context, onboarding *Onboarding) error
}

// LenderRepository defines the interface for lender persistence
type LenderRepository interface {
	// FindByID finds a lender by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lender, error)

	// FindByIDForTenant finds a lender by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Lender, error)

	// FindAllForTenant finds all lenders for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Lender, error)

	// FindActive finds all active lenders for a tenant
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]Lender, error)

	// Save creates or updates a lender
	Save(ctx context.Context, lender *Lender) error

	// DeleteForTenant deletes a lender within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
