package handler

import (
	appidentity "github.com/brokerhub/backend/internal/application/identity"
	"github.com/brokerhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	userService *appidentity.UserService
	// defaultTenantID is used when the login request carries no tenant header
	defaultTenantID uuid.UUID
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appidentity.AuthService, userService *appidentity.UserService, defaultTenantID uuid.UUID) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		userService:     userService,
		defaultTenantID: defaultTenantID,
	}
}

// loginTenantID resolves the tenant for unauthenticated auth endpoints.
// The portal runs one tenant per deployment; the header override exists
// for shared staging environments.
func (h *AuthHandler) loginTenantID(c *gin.Context) (uuid.UUID, error) {
	if header := c.GetHeader("X-Tenant-ID"); header != "" {
		return uuid.Parse(header)
	}
	return h.defaultTenantID, nil
}

func toAuthUserResponse(user appidentity.UserInfo) AuthUserResponse {
	return AuthUserResponse{
		ID:          user.ID,
		TenantID:    user.TenantID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       user.Phone,
		Role:        string(user.Role),
		Status:      string(user.Status),
		IsHomeowner: user.IsHomeowner,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} APIResponse[LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tenantID, err := h.loginTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), appidentity.LoginInput{
		TenantID: tenantID,
		Email:    req.Email,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		User: toAuthUserResponse(result.User),
	})
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Description  Get new access token using refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} APIResponse[RefreshTokenResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), appidentity.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, RefreshTokenResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
	})
}

// Logout godoc
// @Summary      User logout
// @Description  Logout and revoke the presented access token, plus the refresh token when supplied
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LogoutRequest false "Refresh token to revoke alongside the access token"
// @Success      200 {object} APIResponse[MessageData]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	// Body is optional; a missing or empty body means access-token-only logout
	var req LogoutRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID in token")
		return
	}

	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID in token")
		return
	}

	err = h.authService.Logout(c.Request.Context(), appidentity.LogoutInput{
		UserID:       userID,
		TenantID:     tenantID,
		TokenJTI:     claims.ID,
		TokenTTL:     claims.GetRemainingTTL(),
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Logged out successfully"})
}

// RevokeAllSessions godoc
// @Summary      Revoke all sessions
// @Description  Invalidate every outstanding token for the current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[MessageData]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/sessions [delete]
func (h *AuthHandler) RevokeAllSessions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.RevokeAllSessions(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "All sessions revoked"})
}

// GetCurrentUser godoc
// @Summary      Get current user
// @Description  Get the currently authenticated user's information
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[CurrentUserResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.authService.GetCurrentUser(c.Request.Context(), appidentity.GetCurrentUserInput{
		UserID:   userID,
		TenantID: tenantID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CurrentUserResponse{User: toAuthUserResponse(result.User)})
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Change the current user's password; all other sessions are revoked
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Password change request"
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	err = h.authService.ChangePassword(c.Request.Context(), appidentity.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Password changed successfully"})
}

// AcceptInvite godoc
// @Summary      Accept an invite
// @Description  Redeem an invite token, set a password and activate the account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body AcceptInviteRequest true "Invite acceptance request"
// @Success      200 {object} APIResponse[AuthUserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/invites/accept [post]
func (h *AuthHandler) AcceptInvite(c *gin.Context) {
	var req AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.AcceptInvite(c.Request.Context(), appidentity.AcceptInviteInput{
		Token:     req.Token,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAuthUserResponse(*user))
}

// RequestPasswordReset godoc
// @Summary      Request a password reset
// @Description  Start a password reset; the response is identical whether or not the account exists
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RequestPasswordResetRequest true "Password reset request"
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tenantID, err := h.loginTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	// The result carries the raw token for delivery by the notification
	// pipeline. It is never returned to the caller, so account existence
	// stays unguessable.
	_, err = h.userService.RequestPasswordReset(c.Request.Context(), appidentity.RequestPasswordResetInput{
		TenantID: tenantID,
		Email:    req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "If the account exists, a reset link has been sent"})
}

// ConfirmPasswordReset godoc
// @Summary      Confirm a password reset
// @Description  Redeem a reset token and set a new password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ConfirmPasswordResetRequest true "Password reset confirmation"
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req ConfirmPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	err := h.userService.ConfirmPasswordReset(c.Request.Context(), appidentity.ConfirmPasswordResetInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Password has been reset"})
}
