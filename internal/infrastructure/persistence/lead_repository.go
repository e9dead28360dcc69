package persistence

import (
	"context"
	"errors"

	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/models"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLeadRepository implements LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByID finds a lead by its ID
func (r *GormLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a lead by ID within a tenant
func (r *GormLeadRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Lead, error) {
	var model models.LeadModel
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

// FindAllForTenant finds all leads for a tenant
func (r *GormLeadRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Lead, error) {
	var leadModels []models.LeadModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LeadModel{}).Scopes(tenant.TenantScope(tenantID)), filter)

	if err := query.Find(&leadModels).Error; err != nil {
		return nil, err
	}

	leads := make([]partner.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return leads, nil
}

// FindByOwner finds leads owned by a partner
func (r *GormLeadRepository) FindByOwner(ctx context.Context, tenantID, ownerID uuid.UUID, filter shared.Filter) ([]partner.Lead, error) {
	var leadModels []models.LeadModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LeadModel{}).
			Where("tenant_id = ? AND owner_id = ?", tenantID, ownerID),
		filter,
	)

	if err := query.Find(&leadModels).Error; err != nil {
		return nil, err
	}

	leads := make([]partner.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return leads, nil
}

// FindByStatus finds leads by status for a tenant
func (r *GormLeadRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status partner.LeadStatus, filter shared.Filter) ([]partner.Lead, error) {
	var leadModels []models.LeadModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.LeadModel{}).
			Where("tenant_id = ? AND status = ?", tenantID, status),
		filter,
	)

	if err := query.Find(&leadModels).Error; err != nil {
		return nil, err
	}

	leads := make([]partner.Lead, len(leadModels))
	for i, model := range leadModels {
		leads[i] = *model.ToDomain()
	}
	return leads, nil
}

// FindByContactEmail finds a lead by contact email within a tenant
func (r *GormLeadRepository) FindByContactEmail(ctx context.Context, tenantID uuid.UUID, email string) (*partner.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(contact_email) = LOWER(?)", tenantID, email).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a lead
func (r *GormLeadRepository) Save(ctx context.Context, lead *partner.Lead) error {
	model := models.LeadModelFromDomain(lead)
	return writer(ctx, r.db).WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a lead with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormLeadRepository) SaveWithLock(ctx context.Context, lead *partner.Lead) error {
	model := models.LeadModelFromDomain(lead)
	result := writer(ctx, r.db).WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", lead.ID, lead.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The lead record has been modified by another transaction")
	}
	return nil
}

// DeleteForTenant deletes a lead within a tenant
func (r *GormLeadRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LeadModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts leads for a tenant
func (r *GormLeadRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.LeadModel{}).Scopes(tenant.TenantScope(tenantID))
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormLeadRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Ordering goes through the sort whitelist; anything else falls back
	// to newest first
	field := ValidateSortField(filter.OrderBy, LeadSortFields, "created_at")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLeadRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("contact_name ILIKE ? OR contact_email ILIKE ? OR company_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		case "unassigned":
			if value == true {
				query = query.Where("owner_id IS NULL")
			}
		}
	}

	return query
}

// Ensure GormLeadRepository implements LeadRepository
var _ partner.LeadRepository = (*GormLeadRepository)(nil)
