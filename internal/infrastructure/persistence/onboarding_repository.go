package persistence

import (
	"context"
	"errors"

	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOnboardingRepository implements OnboardingRepository using GORM
type GormOnboardingRepository struct {
	db *gorm.DB
}

// NewGormOnboardingRepository creates a new GormOnboardingRepository
func NewGormOnboardingRepository(db *gorm.DB) *GormOnboardingRepository {
	return &GormOnboardingRepository{db: db}
}

// FindByID finds an onboarding by its ID
func (r *GormOnboardingRepository) FindByID(ctx context.Context, id uuid.UUID) (*funding.Onboarding, error) {
	var model models.OnboardingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser finds the onboarding record for a user
func (r *GormOnboardingRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) (*funding.Onboarding, error) {
	var model models.OnboardingModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an onboarding
func (r *GormOnboardingRepository) Save(ctx context.Context, onboarding *funding.Onboarding) error {
	model := models.OnboardingModelFromDomain(onboarding)
	return writer(ctx, r.db).WithContext(ctx).Save(model).Error
}

// SaveWithLock saves an onboarding with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormOnboardingRepository) SaveWithLock(ctx context.Context, onboarding *funding.Onboarding) error {
	model := models.OnboardingModelFromDomain(onboarding)
	result := writer(ctx, r.db).WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", onboarding.ID, onboarding.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The onboarding record has been modified by another transaction")
	}
	return nil
}

// Ensure GormOnboardingRepository implements OnboardingRepository
var _ funding.OnboardingRepository = (*GormOnboardingRepository)(nil)
