package identity

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserCreated         = "UserCreated"
	EventTypeUserPasswordChanged = "UserPasswordChanged"
	EventTypeUserStatusChanged   = "UserStatusChanged"
	EventTypeUserLocked          = "UserLocked"
	EventTypeUserInvited         = "UserInvited"
	EventTypeInviteAccepted      = "InviteAccepted"
	EventTypePasswordResetUsed   = "PasswordResetUsed"
)

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email  string     `json:"email"`
	Role   UserRole   `json:"role"`
	Status UserStatus `json:"status"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID, user.TenantID),
		Email:           user.Email,
		Role:            user.Role,
		Status:          user.Status,
	}
}

// UserPasswordChangedEvent is published when a user's password is changed
type UserPasswordChangedEvent struct {
	shared.BaseDomainEvent
	Email     string    `json:"email"`
	ChangedAt time.Time `json:"changed_at"`
}

// NewUserPasswordChangedEvent creates a new UserPasswordChangedEvent
func NewUserPasswordChangedEvent(user *User) *UserPasswordChangedEvent {
	changedAt := time.Now()
	if user.PasswordChangedAt != nil {
		changedAt = *user.PasswordChangedAt
	}
	return &UserPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserPasswordChanged, AggregateTypeUser, user.ID, user.TenantID),
		Email:           user.Email,
		ChangedAt:       changedAt,
	}
}

// UserStatusChangedEvent is published when a user's status changes
type UserStatusChangedEvent struct {
	shared.BaseDomainEvent
	Email     string     `json:"email"`
	OldStatus UserStatus `json:"old_status"`
	NewStatus UserStatus `json:"new_status"`
}

// NewUserStatusChangedEvent creates a new UserStatusChangedEvent
func NewUserStatusChangedEvent(user *User, oldStatus, newStatus UserStatus) *UserStatusChangedEvent {
	return &UserStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserStatusChanged, AggregateTypeUser, user.ID, user.TenantID),
		Email:           user.Email,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// UserLockedEvent is published when failed logins lock an account
type UserLockedEvent struct {
	shared.BaseDomainEvent
	Email       string    `json:"email"`
	LockedUntil time.Time `json:"locked_until"`
}

// NewUserLockedEvent creates a new UserLockedEvent
func NewUserLockedEvent(user *User, lockedUntil time.Time) *UserLockedEvent {
	return &UserLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLocked, AggregateTypeUser, user.ID, user.TenantID),
		Email:           user.Email,
		LockedUntil:     lockedUntil,
	}
}

// UserInvitedEvent is published when an admin invites a new user
type UserInvitedEvent struct {
	shared.BaseDomainEvent
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	InvitedBy string   `json:"invited_by"`
}

// NewUserInvitedEvent creates a new UserInvitedEvent
func NewUserInvitedEvent(invite *Invite) *UserInvitedEvent {
	return &UserInvitedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserInvited, AggregateTypeInvite, invite.ID, invite.TenantID),
		Email:           invite.Email,
		Role:            invite.Role,
		InvitedBy:       invite.InvitedBy.String(),
	}
}

// InviteAcceptedEvent is published when an invite is accepted
type InviteAcceptedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewInviteAcceptedEvent creates a new InviteAcceptedEvent
func NewInviteAcceptedEvent(invite *Invite) *InviteAcceptedEvent {
	return &InviteAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInviteAccepted, AggregateTypeInvite, invite.ID, invite.TenantID),
		Email:           invite.Email,
	}
}

// PasswordResetUsedEvent is published when a password reset token is consumed
type PasswordResetUsedEvent struct {
	shared.BaseDomainEvent
	UserID string `json:"user_id"`
}

// NewPasswordResetUsedEvent creates a new PasswordResetUsedEvent
func NewPasswordResetUsedEvent(reset *PasswordReset) *PasswordResetUsedEvent {
	return &PasswordResetUsedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePasswordResetUsed, AggregateTypePasswordReset, reset.ID, reset.TenantID),
		UserID:          reset.UserID.String(),
	}
}
