package company

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindByID finds a company by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByIDForTenant finds a company by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Company, error)

	// FindByRegistrationNumber finds a company by registry number within a tenant
	FindByRegistrationNumber(ctx context.Context, tenantID uuid.UUID, number string) (*Company, error)

	// FindByOwner finds all companies owned by a user
	FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]Company, error)

	// FindByIDs finds multiple companies by their IDs
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Company, error)

	// FindAllForTenant finds all companies for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Company, error)

	// Save creates or updates a company
	Save(ctx context.Context, company *Company) error

	// SaveWithLock saves a company with optimistic locking (version check)
	SaveWithLock(ctx context.Context, company *Company) error

	// DeleteForTenant deletes a company within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts companies for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByOwner counts companies owned by a user
	CountByOwner(ctx context.Context, tenantID, ownerID uuid.UUID) (int64, error)

	// ExistsByRegistrationNumber checks for a registry number within a tenant
	ExistsByRegistrationNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error)
}
