package document

import (
	"context"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	// FindByID finds a document by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)

	// FindByIDForTenant finds a document by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Document, error)

	// FindByOwner finds documents owned by a user
	FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]Document, error)

	// FindByApplication finds documents attached to an application
	FindByApplication(ctx context.Context, tenantID, applicationID uuid.UUID, filter shared.Filter) ([]Document, error)

	// FindByCompany finds documents attached to a company
	FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]Document, error)

	// FindExpiredPending finds pending documents initiated before the cutoff
	FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]Document, error)

	// CountByApplication counts non-deleted documents attached to an application
	CountByApplication(ctx context.Context, tenantID, applicationID uuid.UUID) (int64, error)

	// Save creates or updates a document
	Save(ctx context.Context, doc *Document) error

	// SaveWithLock saves a document with optimistic locking (version check)
	SaveWithLock(ctx context.Context, doc *Document) error

	// DeleteForTenant deletes a document row within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
