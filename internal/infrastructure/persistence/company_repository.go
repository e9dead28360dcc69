package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/models"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a company by ID within a tenant
func (r *GormCompanyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*company.Company, error) {
	var model models.CompanyModel
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

// FindByRegistrationNumber finds a company by registry number within a tenant
func (r *GormCompanyRepository) FindByRegistrationNumber(ctx context.Context, tenantID uuid.UUID, number string) (*company.Company, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_REGISTRATION_NUMBER", "Registration number cannot be empty")
	}
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND registration_number = ?", tenantID, strings.ToUpper(number)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner finds all companies owned by a user
func (r *GormCompanyRepository) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]company.Company, error) {
	var companyModels []models.CompanyModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CompanyModel{}).
			Where("tenant_id = ? AND owner_id = ?", tenantID, ownerID),
		filter,
	)

	if err := query.Find(&companyModels).Error; err != nil {
		return nil, err
	}

	companies := make([]company.Company, len(companyModels))
	for i, model := range companyModels {
		companies[i] = *model.ToDomain()
	}
	return companies, nil
}

// FindByIDs finds multiple companies by their IDs
func (r *GormCompanyRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]company.Company, error) {
	if len(ids) == 0 {
		return []company.Company{}, nil
	}

	var companyModels []models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&companyModels).Error; err != nil {
		return nil, err
	}

	companies := make([]company.Company, len(companyModels))
	for i, model := range companyModels {
		companies[i] = *model.ToDomain()
	}
	return companies, nil
}

// FindAllForTenant finds all companies for a tenant
func (r *GormCompanyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]company.Company, error) {
	var companyModels []models.CompanyModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CompanyModel{}).Scopes(tenant.TenantScope(tenantID)), filter)

	if err := query.Find(&companyModels).Error; err != nil {
		return nil, err
	}

	companies := make([]company.Company, len(companyModels))
	for i, model := range companyModels {
		companies[i] = *model.ToDomain()
	}
	return companies, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	model := models.CompanyModelFromDomain(c)
	return writer(ctx, r.db).WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a company with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormCompanyRepository) SaveWithLock(ctx context.Context, c *company.Company) error {
	model := models.CompanyModelFromDomain(c)
	result := writer(ctx, r.db).WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The company record has been modified by another transaction")
	}
	return nil
}

// DeleteForTenant deletes a company within a tenant
func (r *GormCompanyRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CompanyModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts companies for a tenant
func (r *GormCompanyRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CompanyModel{}).Scopes(tenant.TenantScope(tenantID))
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByOwner counts companies owned by a user
func (r *GormCompanyRepository) CountByOwner(ctx context.Context, tenantID, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CompanyModel{}).
		Where("tenant_id = ? AND owner_id = ?", tenantID, ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByRegistrationNumber checks for a registry number within a tenant
func (r *GormCompanyRepository) ExistsByRegistrationNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	if number == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CompanyModel{}).
		Where("tenant_id = ? AND registration_number = ?", tenantID, strings.ToUpper(number)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormCompanyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Ordering goes through the sort whitelist
	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, CompanySortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("legal_name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCompanyRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("legal_name ILIKE ? OR trading_name ILIKE ? OR registration_number ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "sic_code":
			query = query.Where("sic_code = ?", value)
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		}
	}

	return query
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ company.CompanyRepository = (*GormCompanyRepository)(nil)
