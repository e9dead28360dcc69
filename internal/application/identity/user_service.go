package identity

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionRevoker invalidates every outstanding token for a user.
// AuthService satisfies this; the indirection keeps UserService off the JWT stack.
type SessionRevoker interface {
	RevokeAllSessions(ctx context.Context, userID uuid.UUID) error
}

// UserService handles user management, invites and password resets
type UserService struct {
	userRepo       identity.UserRepository
	inviteRepo     identity.InviteRepository
	resetRepo      identity.PasswordResetRepository
	eventPublisher shared.EventPublisher
	sessions       SessionRevoker
	txManager      shared.TransactionManager
	logger         *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	inviteRepo identity.InviteRepository,
	resetRepo identity.PasswordResetRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		inviteRepo: inviteRepo,
		resetRepo:  resetRepo,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *UserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetSessionRevoker sets the revoker used to kill sessions after a password reset
func (s *UserService) SetSessionRevoker(revoker SessionRevoker) {
	s.sessions = revoker
}

// SetTransactionManager sets the manager used to make invite flows atomic
func (s *UserService) SetTransactionManager(tm shared.TransactionManager) {
	s.txManager = tm
}

// inTx runs fn inside a transaction when a manager is wired, directly otherwise
func (s *UserService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txManager == nil {
		return fn(ctx)
	}
	return s.txManager.InTransaction(ctx, fn)
}

// publishEvents pushes aggregate events to the bus. Failures are logged, not
// propagated, event handling is async.
func (s *UserService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
}

// InviteUser creates an invited user and an invite token for them.
// The raw token is returned once for delivery and never stored.
func (s *UserService) InviteUser(ctx context.Context, input InviteUserInput) (*InviteUserResult, error) {
	s.logger.Info("Inviting user",
		zap.String("email", input.Email),
		zap.String("role", string(input.Role)),
		zap.String("tenant_id", input.TenantID.String()))

	existing, err := s.userRepo.FindByEmail(ctx, input.TenantID, input.Email)
	if err != nil && !shared.IsNotFound(err) {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}

	if existing != nil {
		if !existing.IsInvited() {
			return nil, shared.NewDomainError("EMAIL_EXISTS", "A user with this email already exists")
		}
		// Re-inviting an account that never accepted replaces the outstanding
		// invite with a fresh token
		return s.reissueInvite(ctx, existing, input)
	}

	user, err := identity.NewInvitedUser(input.TenantID, input.Email, input.Role)
	if err != nil {
		return nil, err
	}

	invite, rawToken, err := identity.NewInvite(input.TenantID, user.Email, input.Role, input.InvitedBy, user.ID)
	if err != nil {
		return nil, err
	}

	// The invited user and their invite are one unit of work
	err = s.inTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Save(txCtx, user); err != nil {
			s.logger.Error("Failed to save invited user", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
		}
		if err := s.inviteRepo.Save(txCtx, invite); err != nil {
			s.logger.Error("Failed to save invite", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to create invite")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user.GetDomainEvents())
	user.ClearDomainEvents()
	s.publishEvents(ctx, invite.GetDomainEvents())
	invite.ClearDomainEvents()

	return &InviteUserResult{
		InviteID:  invite.ID,
		UserID:    user.ID,
		Token:     rawToken,
		ExpiresAt: invite.ExpiresAt,
	}, nil
}

// reissueInvite retires the outstanding invite for a not-yet-accepted user
// and issues a replacement token. The old token stops working immediately.
func (s *UserService) reissueInvite(ctx context.Context, user *identity.User, input InviteUserInput) (*InviteUserResult, error) {
	s.logger.Info("Replacing outstanding invite",
		zap.String("email", user.Email),
		zap.String("user_id", user.ID.String()))

	pending, err := s.inviteRepo.FindPendingByEmail(ctx, input.TenantID, user.Email)
	if err != nil {
		pending = nil
	}
	if pending != nil {
		if err := pending.Supersede(); err != nil {
			return nil, err
		}
	}

	roleChanged := input.Role != user.Role
	if roleChanged {
		if err := user.ChangeRole(input.Role); err != nil {
			return nil, err
		}
	}

	invite, rawToken, err := identity.NewInvite(input.TenantID, user.Email, user.Role, input.InvitedBy, user.ID)
	if err != nil {
		return nil, err
	}

	// Retiring the old invite and issuing the new one happens atomically so
	// the account is never left without a usable token
	err = s.inTx(ctx, func(txCtx context.Context) error {
		if pending != nil {
			if err := s.inviteRepo.Save(txCtx, pending); err != nil {
				s.logger.Error("Failed to retire outstanding invite", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to replace invite")
			}
		}
		if roleChanged {
			if err := s.userRepo.Save(txCtx, user); err != nil {
				s.logger.Error("Failed to update invited user role", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to replace invite")
			}
		}
		if err := s.inviteRepo.Save(txCtx, invite); err != nil {
			s.logger.Error("Failed to save replacement invite", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to replace invite")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invite.GetDomainEvents())
	invite.ClearDomainEvents()

	return &InviteUserResult{
		InviteID:  invite.ID,
		UserID:    user.ID,
		Token:     rawToken,
		ExpiresAt: invite.ExpiresAt,
	}, nil
}

// AcceptInvite activates the invited user with their chosen credentials
func (s *UserService) AcceptInvite(ctx context.Context, input AcceptInviteInput) (*UserInfo, error) {
	invite, err := s.inviteRepo.FindByTokenHash(ctx, identity.HashToken(input.Token))
	if err != nil {
		return nil, shared.NewDomainError("INVITE_NOT_FOUND", "Invite not found or no longer valid")
	}

	if err := invite.Accept(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, invite.UserID)
	if err != nil {
		s.logger.Error("Invited user missing for invite", zap.String("invite_id", invite.ID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Invited user not found")
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}
	if err := user.SetName(input.FirstName, input.LastName); err != nil {
		return nil, err
	}
	if input.Phone != "" {
		if err := user.SetPhone(input.Phone); err != nil {
			return nil, err
		}
	}
	if err := user.Activate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to activate invited user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to activate account")
	}
	if err := s.inviteRepo.Save(ctx, invite); err != nil {
		s.logger.Error("Failed to mark invite accepted", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record invite acceptance")
	}

	s.publishEvents(ctx, user.GetDomainEvents())
	user.ClearDomainEvents()
	s.publishEvents(ctx, invite.GetDomainEvents())
	invite.ClearDomainEvents()

	s.logger.Info("Invite accepted",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", user.TenantID.String()))

	info := NewUserInfo(user)
	return &info, nil
}

// RequestPasswordReset issues a reset token for the account, if one exists.
// A missing account yields an empty result, not an error, so the endpoint
// cannot be used to probe for registered emails.
func (s *UserService) RequestPasswordReset(ctx context.Context, input RequestPasswordResetInput) (*RequestPasswordResetResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.TenantID, input.Email)
	if err != nil {
		s.logger.Info("Password reset requested for unknown email", zap.String("email", input.Email))
		return &RequestPasswordResetResult{}, nil
	}

	reset, rawToken, err := identity.NewPasswordReset(user.TenantID, user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.resetRepo.Save(ctx, reset); err != nil {
		s.logger.Error("Failed to save password reset", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create password reset")
	}

	s.logger.Info("Password reset issued", zap.String("user_id", user.ID.String()))

	return &RequestPasswordResetResult{
		Token:     rawToken,
		ExpiresAt: reset.ExpiresAt,
	}, nil
}

// ConfirmPasswordReset sets a new password using a valid reset token
func (s *UserService) ConfirmPasswordReset(ctx context.Context, input ConfirmPasswordResetInput) error {
	reset, err := s.resetRepo.FindByTokenHash(ctx, identity.HashToken(input.Token))
	if err != nil {
		return shared.NewDomainError("RESET_NOT_FOUND", "Reset token not found or no longer valid")
	}

	if err := reset.Use(); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, reset.UserID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.SetPassword(input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user after password reset", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}
	if err := s.resetRepo.Save(ctx, reset); err != nil {
		s.logger.Error("Failed to mark reset used", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to record password reset")
	}

	// A reset means the old credentials may be compromised, so no existing
	// session survives it
	if s.sessions != nil {
		if err := s.sessions.RevokeAllSessions(ctx, user.ID); err != nil {
			s.logger.Warn("Failed to revoke sessions after password reset", zap.Error(err))
		}
	}

	s.publishEvents(ctx, reset.GetDomainEvents())
	reset.ClearDomainEvents()

	s.logger.Info("Password reset completed", zap.String("user_id", user.ID.String()))

	return nil
}

// UpdateProfile updates a user's profile fields
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UserInfo, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, input.TenantID, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if input.FirstName != nil || input.LastName != nil {
		firstName := user.FirstName
		lastName := user.LastName
		if input.FirstName != nil {
			firstName = *input.FirstName
		}
		if input.LastName != nil {
			lastName = *input.LastName
		}
		if err := user.SetName(firstName, lastName); err != nil {
			return nil, err
		}
	}
	if input.Phone != nil {
		if err := user.SetPhone(*input.Phone); err != nil {
			return nil, err
		}
	}
	if input.IsHomeowner != nil {
		user.SetHomeowner(*input.IsHomeowner)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save profile update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update profile")
	}

	info := NewUserInfo(user)
	return &info, nil
}

// GetUser retrieves a user within a tenant
func (s *UserService) GetUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	info := NewUserInfo(user)
	return &info, nil
}

// ListUsers returns a paginated user list for a tenant
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput) (*UserListResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
	}

	var (
		users []identity.User
		err   error
	)
	if input.Role != nil {
		users, err = s.userRepo.FindByRole(ctx, input.TenantID, *input.Role, filter)
	} else {
		users, err = s.userRepo.FindAllForTenant(ctx, input.TenantID, filter)
	}
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	total, err := s.userRepo.CountForTenant(ctx, input.TenantID, shared.Filter{})
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count users")
	}

	infos := make([]UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, NewUserInfo(&users[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &UserListResult{
		Users:      infos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// SuspendUser blocks a user from logging in
func (s *UserService) SuspendUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.Suspend(); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to suspend user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to suspend user")
	}

	s.publishEvents(ctx, user.GetDomainEvents())
	user.ClearDomainEvents()

	s.logger.Info("User suspended", zap.String("user_id", userID.String()))
	return nil
}

// ReactivateUser restores a suspended user
func (s *UserService) ReactivateUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.Activate(); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to reactivate user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reactivate user")
	}

	s.publishEvents(ctx, user.GetDomainEvents())
	user.ClearDomainEvents()

	s.logger.Info("User reactivated", zap.String("user_id", userID.String()))
	return nil
}
