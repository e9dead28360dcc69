package partner

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AssignmentRepository defines the interface for assignment persistence
type AssignmentRepository interface {
	// FindByID finds an assignment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Assignment, error)

	// FindByIDForTenant finds an assignment by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Assignment, error)

	// FindActiveByPartnerAndCompany finds the active assignment for a pair
	FindActiveByPartnerAndCompany(ctx context.Context, tenantID, partnerID, companyID uuid.UUID) (*Assignment, error)

	// FindByPartner finds all assignments held by a partner
	FindByPartner(ctx context.Context, tenantID, partnerID uuid.UUID, filter shared.Filter) ([]Assignment, error)

	// FindByCompany finds all assignments on a company
	FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]Assignment, error)

	// ActiveCompanyIDsForPartner returns the company IDs of a partner's active book
	ActiveCompanyIDsForPartner(ctx context.Context, tenantID, partnerID uuid.UUID) ([]uuid.UUID, error)

	// Save creates or updates an assignment
	Save(ctx context.Context, assignment *Assignment) error

	// DeleteForTenant deletes an assignment within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	// FindByID finds a lead by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lead, error)

	// FindByIDForTenant finds a lead by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Lead, error)

	// FindAllForTenant finds all leads for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Lead, error)

	// FindByOwner finds leads owned by a partner
	FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]Lead, error)

	// FindByStatus finds leads by status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status LeadStatus, filter shared.Filter) ([]Lead, error)

	// FindByContactEmail finds a lead by contact email within a tenant
	FindByContactEmail(ctx context.Context, tenantID uuid.UUID, email string) (*Lead, error)

	// Save creates or updates a lead
	Save(ctx context.Context, lead *Lead) error

	// SaveWithLock saves a lead with optimistic locking (version check)
	SaveWithLock(ctx context.Context, lead *Lead) error

	// DeleteForTenant deletes a lead within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts leads for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
