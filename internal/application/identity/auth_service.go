package identity

import (
	"context"
	"time"

	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		logger:     logger,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("email", input.Email))

	user, err := s.userRepo.FindByEmail(ctx, input.TenantID, input.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.CanLogin() {
		if user.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("email", input.Email))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact support")
		}
		if user.IsSuspended() {
			s.logger.Warn("Login attempt for suspended account", zap.String("email", input.Email))
			return nil, shared.NewDomainError("ACCOUNT_SUSPENDED", "Account has been suspended")
		}
		if user.IsInvited() {
			s.logger.Warn("Login attempt for invited account", zap.String("email", input.Email))
			return nil, shared.NewDomainError("ACCOUNT_PENDING", "Account invite has not been accepted yet")
		}
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("email", input.Email),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("email", input.Email),
			zap.Int("failed_attempts", user.FailedAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the login over login-tracking bookkeeping
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("email", input.Email),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  NewUserInfo(user),
	}, nil
}

// RefreshToken refreshes the access token using a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	refreshClaims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	userID, err := uuid.Parse(refreshClaims.UserID)
	if err != nil {
		s.logger.Error("Invalid user ID in refresh token", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, refreshClaims.ID)
		if err != nil {
			s.logger.Error("Failed to check token blacklist", zap.Error(err))
		} else if revoked {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Session has been revoked. Please log in again")
		}

		invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, refreshClaims.UserID, refreshClaims.GetIssuedAtTime())
		if err != nil {
			s.logger.Error("Failed to check token invalidation", zap.Error(err))
		} else if invalidated {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Session has been revoked. Please log in again")
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !user.CanLogin() {
		s.logger.Warn("Token refresh for inactive user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, user.Email, string(user.Role))
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed successfully", zap.String("user_id", userID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the presented access token and, when the client also sends
// its refresh token, that token's JTI too. Without the refresh token the
// refresh side of the pair stays usable until it expires.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("User logout",
		zap.String("user_id", input.UserID.String()),
		zap.String("tenant_id", input.TenantID.String()))

	if s.blacklist == nil {
		return nil
	}

	if input.TokenJTI != "" {
		ttl := input.TokenTTL
		if ttl <= 0 {
			ttl = s.jwtService.GetAccessTokenExpiration()
		}

		if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl); err != nil {
			s.logger.Error("Failed to blacklist token on logout", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke session")
		}
	}

	if input.RefreshToken != "" {
		refreshClaims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		if err != nil {
			// An already-expired or malformed refresh token needs no revocation
			s.logger.Warn("Refresh token presented at logout is not valid", zap.Error(err))
			return nil
		}

		if err := s.blacklist.AddToBlacklist(ctx, refreshClaims.ID, s.jwtService.GetRefreshTokenExpiration()); err != nil {
			s.logger.Error("Failed to blacklist refresh token on logout", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke session")
		}
	}

	return nil
}

// RevokeAllSessions invalidates every outstanding token for a user
func (s *AuthService) RevokeAllSessions(ctx context.Context, userID uuid.UUID) error {
	if s.blacklist == nil {
		return nil
	}

	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), ttl); err != nil {
		s.logger.Error("Failed to revoke user sessions", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke sessions")
	}

	s.logger.Info("All sessions revoked", zap.String("user_id", userID.String()))
	return nil
}

// GetCurrentUser retrieves the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, input GetCurrentUserInput) (*CurrentUserResult, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, input.TenantID, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	return &CurrentUserResult{User: NewUserInfo(user)}, nil
}

// ChangePassword changes a user's password and revokes other sessions
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	if err := s.RevokeAllSessions(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to revoke sessions after password change", zap.Error(err))
	}

	s.logger.Info("User password changed", zap.String("user_id", input.UserID.String()))

	return nil
}

// mapTokenError translates JWT errors into domain errors
func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
