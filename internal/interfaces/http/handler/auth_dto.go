package handler

import (
	"time"

	"github.com/google/uuid"
)

// =====================
// Auth Request DTOs
// =====================

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=320"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the optional request body for logout.
// Clients send their refresh token so both halves of the pair get revoked.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents the request body for password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// AcceptInviteRequest represents the request body for accepting an invite
type AcceptInviteRequest struct {
	Token     string `json:"token" binding:"required"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Phone     string `json:"phone" binding:"max=50"`
}

// RequestPasswordResetRequest represents the request body for starting a reset
type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email,max=320"`
}

// ConfirmPasswordResetRequest represents the request body for finishing a reset
type ConfirmPasswordResetRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// =====================
// Auth Response DTOs
// =====================

// TokenResponse represents the token data in auth responses
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// AuthUserResponse represents user data in auth responses
type AuthUserResponse struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	IsHomeowner bool       `json:"is_homeowner"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginResponse represents the response body for successful login
type LoginResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

// RefreshTokenResponse represents the response body for successful token refresh
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

// CurrentUserResponse represents the response body for current user info
type CurrentUserResponse struct {
	User AuthUserResponse `json:"user"`
}
