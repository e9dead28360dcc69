package persistence

import (
	"context"
	"errors"

	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/models"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormApplicationRepository implements ApplicationRepository using GORM
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository creates a new GormApplicationRepository
func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// FindByID finds an application by its ID
func (r *GormApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*funding.Application, error) {
	var model models.ApplicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an application by ID within a tenant
func (r *GormApplicationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*funding.Application, error) {
	var model models.ApplicationModel
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

// FindByApplicant finds applications created by a user
func (r *GormApplicationRepository) FindByApplicant(ctx context.Context, tenantID, applicantID uuid.UUID, filter shared.Filter) ([]funding.Application, error) {
	return r.findAll(ctx,
		r.db.WithContext(ctx).Model(&models.ApplicationModel{}).
			Where("tenant_id = ? AND applicant_id = ?", tenantID, applicantID),
		filter,
	)
}

// FindByCompany finds applications for a company
func (r *GormApplicationRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]funding.Application, error) {
	return r.findAll(ctx,
		r.db.WithContext(ctx).Model(&models.ApplicationModel{}).
			Where("tenant_id = ? AND company_id = ?", tenantID, companyID),
		filter,
	)
}

// FindByCompanies finds applications across a set of companies
func (r *GormApplicationRepository) FindByCompanies(ctx context.Context, tenantID uuid.UUID, companyIDs []uuid.UUID, filter shared.Filter) ([]funding.Application, error) {
	if len(companyIDs) == 0 {
		return []funding.Application{}, nil
	}
	return r.findAll(ctx,
		r.db.WithContext(ctx).Model(&models.ApplicationModel{}).
			Where("tenant_id = ? AND company_id IN ?", tenantID, companyIDs),
		filter,
	)
}

// FindByStage finds applications in a pipeline stage
func (r *GormApplicationRepository) FindByStage(ctx context.Context, tenantID uuid.UUID, stage funding.Stage, filter shared.Filter) ([]funding.Application, error) {
	return r.findAll(ctx,
		r.db.WithContext(ctx).Model(&models.ApplicationModel{}).
			Where("tenant_id = ? AND stage = ?", tenantID, stage),
		filter,
	)
}

// FindAllForTenant finds all applications for a tenant
func (r *GormApplicationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]funding.Application, error) {
	return r.findAll(ctx,
		r.db.WithContext(ctx).Model(&models.ApplicationModel{}).Scopes(tenant.TenantScope(tenantID)),
		filter,
	)
}

// Save creates or updates an application
func (r *GormApplicationRepository) Save(ctx context.Context, app *funding.Application) error {
	model := models.ApplicationModelFromDomain(app)
	return writer(ctx, r.db).WithContext(ctx).Save(model).Error
}

// SaveWithLock saves an application with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormApplicationRepository) SaveWithLock(ctx context.Context, app *funding.Application) error {
	model := models.ApplicationModelFromDomain(app)
	result := writer(ctx, r.db).WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", app.ID, app.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The application record has been modified by another transaction")
	}
	return nil
}

// DeleteForTenant deletes an application within a tenant
func (r *GormApplicationRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ApplicationModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts applications for a tenant
func (r *GormApplicationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ApplicationModel{}).Scopes(tenant.TenantScope(tenantID))
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStage counts applications in a stage for a tenant
func (r *GormApplicationRepository) CountByStage(ctx context.Context, tenantID uuid.UUID, stage funding.Stage) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ApplicationModel{}).
		Where("tenant_id = ? AND stage = ?", tenantID, stage).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// findAll runs a filtered query and maps the results to domain entities
func (r *GormApplicationRepository) findAll(ctx context.Context, query *gorm.DB, filter shared.Filter) ([]funding.Application, error) {
	var applicationModels []models.ApplicationModel
	if err := r.applyFilter(query, filter).Find(&applicationModels).Error; err != nil {
		return nil, err
	}

	applications := make([]funding.Application, len(applicationModels))
	for i, model := range applicationModels {
		applications[i] = *model.ToDomain()
	}
	return applications, nil
}

// applyFilter applies filter options to the query
func (r *GormApplicationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Ordering goes through the sort whitelist; anything else falls back
	// to newest first
	field := ValidateSortField(filter.OrderBy, ApplicationSortFields, "created_at")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormApplicationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("purpose ILIKE ? OR decline_reason ILIKE ?", searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "stage":
			query = query.Where("stage = ?", value)
		case "purpose":
			query = query.Where("purpose = ?", value)
		case "company_id":
			query = query.Where("company_id = ?", value)
		case "applicant_id":
			query = query.Where("applicant_id = ?", value)
		}
	}

	return query
}

// Ensure GormApplicationRepository implements ApplicationRepository
var _ funding.ApplicationRepository = (*GormApplicationRepository)(nil)
