package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPasswordResetRepository implements PasswordResetRepository using GORM
type GormPasswordResetRepository struct {
	db *gorm.DB
}

// NewGormPasswordResetRepository creates a new GormPasswordResetRepository
func NewGormPasswordResetRepository(db *gorm.DB) *GormPasswordResetRepository {
	return &GormPasswordResetRepository{db: db}
}

// FindByTokenHash finds a password reset by its hashed token
func (r *GormPasswordResetRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*identity.PasswordReset, error) {
	if tokenHash == "" {
		return nil, shared.ErrNotFound
	}
	var model models.PasswordResetModel
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

// Save creates or updates a password reset
func (r *GormPasswordResetRepository) Save(ctx context.Context, reset *identity.PasswordReset) error {
	model := models.PasswordResetModelFromDomain(reset)
	return writer(ctx, r.db).WithContext(ctx).Save(model).Error
}

// DeleteExpired removes expired reset records
func (r *GormPasswordResetRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Delete(&models.PasswordResetModel{}, "expires_at < ?", time.Now()).Error
}

// Ensure GormPasswordResetRepository implements PasswordResetRepository
var _ identity.PasswordResetRepository = (*GormPasswordResetRepository)(nil)
