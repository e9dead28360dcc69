package identity

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for PasswordReset
const AggregateTypePasswordReset = "PasswordReset"

// PasswordResetTTL is how long a reset token stays valid
const PasswordResetTTL = 30 * time.Minute

// PasswordReset represents a single-use password reset token.
// The raw token is returned once at creation time; only its hash is stored.
type PasswordReset struct {
	shared.TenantAggregateRoot
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// NewPasswordReset creates a reset record and returns it with the raw token
func NewPasswordReset(tenantID, userID uuid.UUID) (*PasswordReset, string, error) {
	if userID == uuid.Nil {
		return nil, "", shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}

	token, err := generateToken()
	if err != nil {
		return nil, "", shared.NewDomainError("TOKEN_GENERATION_ERROR", "Failed to generate reset token")
	}

	reset := &PasswordReset{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		TokenHash:           HashToken(token),
		ExpiresAt:           time.Now().Add(PasswordResetTTL),
	}

	return reset, token, nil
}

// IsExpired returns true if the reset token can no longer be used
func (r *PasswordReset) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}

// IsUsed returns true if the reset token has already been consumed
func (r *PasswordReset) IsUsed() bool {
	return r.UsedAt != nil
}

// Use consumes the reset token
func (r *PasswordReset) Use() error {
	if r.IsUsed() {
		return shared.NewDomainError("RESET_ALREADY_USED", "Reset token has already been used")
	}
	if r.IsExpired() {
		return shared.NewDomainError("RESET_EXPIRED", "Reset token has expired")
	}

	now := time.Now()
	r.UsedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewPasswordResetUsedEvent(r))

	return nil
}
