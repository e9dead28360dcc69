package identity

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	TenantID uuid.UUID
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Email       string
	FirstName   string
	LastName    string
	Phone       string
	Role        identity.UserRole
	Status      identity.UserStatus
	IsHomeowner bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

// NewUserInfo maps a domain user to its transport form
func NewUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:          user.ID,
		TenantID:    user.TenantID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       user.Phone,
		Role:        user.Role,
		Status:      user.Status,
		IsHomeowner: user.IsHomeowner,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID       uuid.UUID
	TenantID     uuid.UUID
	TokenJTI     string
	TokenTTL     time.Duration // Remaining lifetime of the presented access token
	RefreshToken string        // Optional; when present its JTI is revoked as well
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// GetCurrentUserInput contains the input for getting current user info
type GetCurrentUserInput struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
}

// CurrentUserResult contains the current user's information
type CurrentUserResult struct {
	User UserInfo
}

// InviteUserInput contains the input for inviting a user
type InviteUserInput struct {
	TenantID  uuid.UUID
	InvitedBy uuid.UUID
	Email     string
	Role      identity.UserRole
}

// InviteUserResult carries the raw invite token for delivery to the invitee
type InviteUserResult struct {
	InviteID  uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// AcceptInviteInput contains the input for accepting an invite
type AcceptInviteInput struct {
	Token     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// RequestPasswordResetInput contains the input for requesting a reset
type RequestPasswordResetInput struct {
	TenantID uuid.UUID
	Email    string
}

// RequestPasswordResetResult carries the raw reset token for delivery.
// Token is empty when no matching account exists; callers must not reveal
// which case occurred.
type RequestPasswordResetResult struct {
	Token     string
	ExpiresAt time.Time
}

// ConfirmPasswordResetInput contains the input for confirming a reset
type ConfirmPasswordResetInput struct {
	Token       string
	NewPassword string
}

// UpdateProfileInput contains the input for profile updates
type UpdateProfileInput struct {
	TenantID    uuid.UUID
	UserID      uuid.UUID
	FirstName   *string
	LastName    *string
	Phone       *string
	IsHomeowner *bool
}

// ListUsersInput contains the input for listing users
type ListUsersInput struct {
	TenantID uuid.UUID
	Role     *identity.UserRole
	Page     int
	PageSize int
}

// UserListResult represents a paginated user list
type UserListResult struct {
	Users      []UserInfo `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
