package persistence

import (
	"context"
	"errors"

	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// FindByID finds an assignment by its ID
func (r *GormAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Assignment, error) {
	var model models.AssignmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an assignment by ID within a tenant
func (r *GormAssignmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Assignment, error) {
	var model models.AssignmentModel
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

// FindActiveByPartnerAndCompany finds the active assignment for a pair
func (r *GormAssignmentRepository) FindActiveByPartnerAndCompany(ctx context.Context, tenantID, partnerID, companyID uuid.UUID) (*partner.Assignment, error) {
	var model models.AssignmentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND partner_id = ? AND company_id = ? AND status = ?",
			tenantID, partnerID, companyID, partner.AssignmentStatusActive).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPartner finds all assignments held by a partner
func (r *GormAssignmentRepository) FindByPartner(ctx context.Context, tenantID, partnerID uuid.UUID, filter shared.Filter) ([]partner.Assignment, error) {
	var assignmentModels []models.AssignmentModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.AssignmentModel{}).
			Where("tenant_id = ? AND partner_id = ?", tenantID, partnerID),
		filter,
	)

	if err := query.Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]partner.Assignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = *model.ToDomain()
	}
	return assignments, nil
}

// FindByCompany finds all assignments on a company
func (r *GormAssignmentRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]partner.Assignment, error) {
	var assignmentModels []models.AssignmentModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.AssignmentModel{}).
			Where("tenant_id = ? AND company_id = ?", tenantID, companyID),
		filter,
	)

	if err := query.Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	assignments := make([]partner.Assignment, len(assignmentModels))
	for i, model := range assignmentModels {
		assignments[i] = *model.ToDomain()
	}
	return assignments, nil
}

// ActiveCompanyIDsForPartner returns the company IDs of a partner's active book
func (r *GormAssignmentRepository) ActiveCompanyIDsForPartner(ctx context.Context, tenantID, partnerID uuid.UUID) ([]uuid.UUID, error) {
	var companyIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.AssignmentModel{}).
		Where("tenant_id = ? AND partner_id = ? AND status = ?", tenantID, partnerID, partner.AssignmentStatusActive).
		Pluck("company_id", &companyIDs).Error; err != nil {
		return nil, err
	}
	return companyIDs, nil
}

// Save creates or updates an assignment
func (r *GormAssignmentRepository) Save(ctx context.Context, assignment *partner.Assignment) error {
	model := models.AssignmentModelFromDomain(assignment)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes an assignment within a tenant
func (r *GormAssignmentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AssignmentModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormAssignmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Ordering goes through the sort whitelist
	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, AssignmentSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("assigned_at DESC")
	}

	return query
}

// Ensure GormAssignmentRepository implements AssignmentRepository
var _ partner.AssignmentRepository = (*GormAssignmentRepository)(nil)
