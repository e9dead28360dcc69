package identity

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIDForTenant finds a user by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email within a tenant
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)

	// FindAllForTenant finds all users for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, error)

	// FindByRole finds users by role for a tenant
	FindByRole(ctx context.Context, tenantID uuid.UUID, role UserRole, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// SaveWithLock saves a user with optimistic locking (version check)
	SaveWithLock(ctx context.Context, user *User) error

	// Delete deletes a user within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts users for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByEmail checks if a user with the given email exists in the tenant
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
}

// InviteRepository defines the interface for invite persistence
type InviteRepository interface {
	// FindByID finds an invite by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invite, error)

	// FindByTokenHash finds an invite by its hashed token
	FindByTokenHash(ctx context.Context, tokenHash string) (*Invite, error)

	// FindPendingByEmail finds the outstanding invite for an email within a tenant
	FindPendingByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*Invite, error)

	// FindAllForTenant finds all invites for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Invite, error)

	// Save creates or updates an invite
	Save(ctx context.Context, invite *Invite) error

	// DeleteForTenant deletes an invite within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// PasswordResetRepository defines the interface for password reset persistence
type PasswordResetRepository interface {
	// FindByTokenHash finds a password reset by its hashed token
	FindByTokenHash(ctx context.Context, tokenHash string) (*PasswordReset, error)

	// Save creates or updates a password reset
	Save(ctx context.Context, reset *PasswordReset) error

	// DeleteExpired removes expired reset records
	DeleteExpired(ctx context.Context) error
}
