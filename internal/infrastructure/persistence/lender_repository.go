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

// GormLenderRepository implements LenderRepository using GORM
type GormLenderRepository struct {
	db *gorm.DB
}

// NewGormLenderRepository creates a new GormLenderRepository
func NewGormLenderRepository(db *gorm.DB) *GormLenderRepository {
	return &GormLenderRepository{db: db}
}

// FindByID finds a lender by its ID
func (r *GormLenderRepository) FindByID(ctx context.Context, id uuid.UUID) (*funding.Lender, error) {
	var model models.LenderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a lender by ID within a tenant
func (r *GormLenderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*funding.Lender, error) {
	var model models.LenderModel
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

// FindAllForTenant finds all lenders for a tenant
func (r *GormLenderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]funding.Lender, error) {
	var lenderModels []models.LenderModel
	query := r.db.WithContext(ctx).Model(&models.LenderModel{}).Scopes(tenant.TenantScope(tenantID))

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	// Ordering goes through the sort whitelist
	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, LenderSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	if err := query.Find(&lenderModels).Error; err != nil {
		return nil, err
	}

	lenders := make([]funding.Lender, len(lenderModels))
	for i, model := range lenderModels {
		lenders[i] = *model.ToDomain()
	}
	return lenders, nil
}

// FindActive finds all active lenders for a tenant
func (r *GormLenderRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]funding.Lender, error) {
	var lenderModels []models.LenderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("name ASC").
		Find(&lenderModels).Error; err != nil {
		return nil, err
	}

	lenders := make([]funding.Lender, len(lenderModels))
	for i, model := range lenderModels {
		lenders[i] = *model.ToDomain()
	}
	return lenders, nil
}

// Save creates or updates a lender
func (r *GormLenderRepository) Save(ctx context.Context, lender *funding.Lender) error {
	model := models.LenderModelFromDomain(lender)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a lender within a tenant
func (r *GormLenderRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LenderModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormLenderRepository implements LenderRepository
var _ funding.LenderRepository = (*GormLenderRepository)(nil)
