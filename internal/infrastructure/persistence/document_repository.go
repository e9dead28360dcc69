package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/brokerhub/backend/internal/domain/document"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a document by ID within a tenant
func (r *GormDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*document.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner finds documents owned by a user
func (r *GormDocumentRepository) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]document.Document, error) {
	return r.findAll(
		r.db.WithContext(ctx).Model(&models.DocumentModel{}).
			Where("tenant_id = ? AND owner_id = ?", tenantID, ownerID),
		filter,
	)
}

// FindByApplication finds documents attached to an application
func (r *GormDocumentRepository) FindByApplication(ctx context.Context, tenantID, applicationID uuid.UUID, filter shared.Filter) ([]document.Document, error) {
	return r.findAll(
		r.db.WithContext(ctx).Model(&models.DocumentModel{}).
			Where("tenant_id = ? AND application_id = ?", tenantID, applicationID),
		filter,
	)
}

// FindByCompany finds documents attached to a company
func (r *GormDocumentRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]document.Document, error) {
	return r.findAll(
		r.db.WithContext(ctx).Model(&models.DocumentModel{}).
			Where("tenant_id = ? AND company_id = ?", tenantID, companyID),
		filter,
	)
}

// FindExpiredPending finds pending documents initiated before the cutoff.
// Used by the sweeper that reclaims abandoned upload slots across all tenants.
func (r *GormDocumentRepository) FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]document.Document, error) {
	if limit <= 0 {
		limit = 100
	}

	var documentModels []models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", document.StatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&documentModels).Error; err != nil {
		return nil, err
	}

	documents := make([]document.Document, len(documentModels))
	for i, model := range documentModels {
		documents[i] = *model.ToDomain()
	}
	return documents, nil
}

// CountByApplication counts non-deleted documents attached to an application
func (r *GormDocumentRepository) CountByApplication(ctx context.Context, tenantID, applicationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("tenant_id = ? AND application_id = ? AND status <> ?", tenantID, applicationID, document.StatusDeleted).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a document
func (r *GormDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	model := models.DocumentModelFromDomain(doc)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a document with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormDocumentRepository) SaveWithLock(ctx context.Context, doc *document.Document) error {
	model := models.DocumentModelFromDomain(doc)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", doc.ID, doc.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The document record has been modified by another transaction")
	}
	return nil
}

// DeleteForTenant deletes a document row within a tenant
func (r *GormDocumentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DocumentModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// findAll runs a filtered query and maps the results to domain entities
func (r *GormDocumentRepository) findAll(query *gorm.DB, filter shared.Filter) ([]document.Document, error) {
	var documentModels []models.DocumentModel
	if err := r.applyFilter(query, filter).Find(&documentModels).Error; err != nil {
		return nil, err
	}

	documents := make([]document.Document, len(documentModels))
	for i, model := range documentModels {
		documents[i] = *model.ToDomain()
	}
	return documents, nil
}

// applyFilter applies filter options to the query
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		query = query.Where("filename ILIKE ?", "%"+filter.Search+"%")
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Ordering goes through the sort whitelist; anything else falls back
	// to newest first
	field := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ document.DocumentRepository = (*GormDocumentRepository)(nil)
