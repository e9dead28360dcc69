package handler

import (
	"time"

	appidentity "github.com/brokerhub/backend/internal/application/identity"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles user management API endpoints
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// InviteUserRequest represents a request to invite a user
// @Description Request body for inviting a new portal user
type InviteUserRequest struct {
	Email string `json:"email" binding:"required,email,max=320" example:"jane@acme.co.uk"`
	Role  string `json:"role" binding:"required,oneof=client partner admin" example:"client"`
}

// InviteUserResponse carries the issued invite
// @Description The created invite; the token is delivered out of band in production
type InviteUserResponse struct {
	InviteID  uuid.UUID `json:"invite_id"`
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UpdateProfileRequest represents a request to update the current user's profile
// @Description Request body for profile updates; omitted fields are unchanged
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	IsHomeowner *bool   `json:"is_homeowner"`
}

// UserListFilter represents query parameters for listing users
type UserListFilter struct {
	Role     string `form:"role" binding:"omitempty,oneof=client partner admin"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// Invite godoc
// @ID           inviteUser
// @Summary      Invite a user
// @Description  Create an invited account and issue a single-use invite token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body InviteUserRequest true "Invite request"
// @Success      201 {object} APIResponse[InviteUserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/invites [post]
func (h *UserHandler) Invite(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.userService.InviteUser(c.Request.Context(), appidentity.InviteUserInput{
		TenantID:  tenantID,
		InvitedBy: userID,
		Email:     req.Email,
		Role:      identity.UserRole(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, InviteUserResponse{
		InviteID:  result.InviteID,
		UserID:    result.UserID,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// List godoc
// @ID           listUsers
// @Summary      List users
// @Description  List users in the tenant, optionally filtered by role
// @Tags         users
// @Produce      json
// @Param        role query string false "Filter by role" Enums(client, partner, admin)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]AuthUserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := appidentity.ListUsersInput{
		TenantID: tenantID,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Role != "" {
		role := identity.UserRole(filter.Role)
		input.Role = &role
	}

	result, err := h.userService.ListUsers(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	users := make([]AuthUserResponse, len(result.Users))
	for i, u := range result.Users {
		users[i] = toAuthUserResponse(u)
	}

	h.SuccessWithMeta(c, users, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @ID           getUser
// @Summary      Get a user
// @Description  Get a single user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[AuthUserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAuthUserResponse(*user))
}

// UpdateProfile godoc
// @ID           updateProfile
// @Summary      Update own profile
// @Description  Update the current user's profile details
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile update request"
// @Success      200 {object} APIResponse[AuthUserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/me [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), appidentity.UpdateProfileInput{
		TenantID:    tenantID,
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		IsHomeowner: req.IsHomeowner,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toAuthUserResponse(*user))
}

// Suspend godoc
// @ID           suspendUser
// @Summary      Suspend a user
// @Description  Suspend an active account; suspended users cannot log in
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/suspend [post]
func (h *UserHandler) Suspend(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	if err := h.userService.SuspendUser(c.Request.Context(), tenantID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "User suspended"})
}

// Reactivate godoc
// @ID           reactivateUser
// @Summary      Reactivate a user
// @Description  Reactivate a suspended account
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/reactivate [post]
func (h *UserHandler) Reactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	if err := h.userService.ReactivateUser(c.Request.Context(), tenantID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "User reactivated"})
}
