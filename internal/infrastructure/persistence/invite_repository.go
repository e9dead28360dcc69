package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/models"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInviteRepository implements InviteRepository using GORM
type GormInviteRepository struct {
	db *gorm.DB
}

// NewGormInviteRepository creates a new GormInviteRepository
func NewGormInviteRepository(db *gorm.DB) *GormInviteRepository {
	return &GormInviteRepository{db: db}
}

// FindByID finds an invite by its ID
func (r *GormInviteRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Invite, error) {
	var model models.InviteModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTokenHash finds an invite by its hashed token
func (r *GormInviteRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*identity.Invite, error) {
	if tokenHash == "" {
		return nil, shared.ErrNotFound
	}
	var model models.InviteModel
	if err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPendingByEmail finds the outstanding invite for an email within a tenant
func (r *GormInviteRepository) FindPendingByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.Invite, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.InviteModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ? AND accepted_at IS NULL", tenantID, strings.ToLower(email)).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all invites for a tenant
func (r *GormInviteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.Invite, error) {
	var inviteModels []models.InviteModel
	query := r.db.WithContext(ctx).Model(&models.InviteModel{}).Scopes(tenant.TenantScope(tenantID))

	if filter.Search != "" {
		query = query.Where("email ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, InviteSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&inviteModels).Error; err != nil {
		return nil, err
	}

	invites := make([]identity.Invite, len(inviteModels))
	for i, model := range inviteModels {
		invites[i] = *model.ToDomain()
	}
	return invites, nil
}

// Save creates or updates an invite
func (r *GormInviteRepository) Save(ctx context.Context, invite *identity.Invite) error {
	model := models.InviteModelFromDomain(invite)
	return writer(ctx, r.db).WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes an invite within a tenant
func (r *GormInviteRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InviteModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormInviteRepository implements InviteRepository
var _ identity.InviteRepository = (*GormInviteRepository)(nil)
