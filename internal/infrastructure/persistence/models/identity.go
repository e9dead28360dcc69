package models

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	TenantAggregateModel
	Email             string              `gorm:"type:varchar(320);not null;uniqueIndex:idx_user_tenant_email,priority:2"`
	PasswordHash      string              `gorm:"type:varchar(100)"`
	FirstName         string              `gorm:"type:varchar(100)"`
	LastName          string              `gorm:"type:varchar(100)"`
	Phone             string              `gorm:"type:varchar(50)"`
	Role              identity.UserRole   `gorm:"type:varchar(20);not null;index"`
	Status            identity.UserStatus `gorm:"type:varchar(20);not null;default:'invited'"`
	IsHomeowner       bool                `gorm:"not null;default:false"`
	LastLoginAt       *time.Time
	LastLoginIP       string `gorm:"type:varchar(45)"`
	FailedAttempts    int    `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Phone:             m.Phone,
		Role:              m.Role,
		Status:            m.Status,
		IsHomeowner:       m.IsHomeowner,
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
		PasswordChangedAt: m.PasswordChangedAt,
	}
	m.PopulateTenantAggregateRoot(&user.TenantAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Phone = u.Phone
	m.Role = u.Role
	m.Status = u.Status
	m.IsHomeowner = u.IsHomeowner
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
	m.PasswordChangedAt = u.PasswordChangedAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// InviteModel is the persistence model for the Invite domain entity.
// Only the SHA-256 hash of the invite token is stored.
type InviteModel struct {
	TenantAggregateModel
	Email      string            `gorm:"type:varchar(320);not null;index"`
	Role       identity.UserRole `gorm:"type:varchar(20);not null"`
	TokenHash  string            `gorm:"type:varchar(64);not null;uniqueIndex"`
	InvitedBy  uuid.UUID         `gorm:"type:uuid;not null"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	ExpiresAt  time.Time         `gorm:"not null;index"`
	AcceptedAt *time.Time
}

// TableName returns the table name for GORM
func (InviteModel) TableName() string {
	return "invites"
}

// ToDomain converts the persistence model to a domain Invite entity.
func (m *InviteModel) ToDomain() *identity.Invite {
	invite := &identity.Invite{
		Email:      m.Email,
		Role:       m.Role,
		TokenHash:  m.TokenHash,
		InvitedBy:  m.InvitedBy,
		UserID:     m.UserID,
		ExpiresAt:  m.ExpiresAt,
		AcceptedAt: m.AcceptedAt,
	}
	m.PopulateTenantAggregateRoot(&invite.TenantAggregateRoot)
	return invite
}

// FromDomain populates the persistence model from a domain Invite entity.
func (m *InviteModel) FromDomain(i *identity.Invite) {
	m.FromDomainTenantAggregateRoot(i.TenantAggregateRoot)
	m.Email = i.Email
	m.Role = i.Role
	m.TokenHash = i.TokenHash
	m.InvitedBy = i.InvitedBy
	m.UserID = i.UserID
	m.ExpiresAt = i.ExpiresAt
	m.AcceptedAt = i.AcceptedAt
}

// InviteModelFromDomain creates a new persistence model from a domain Invite entity.
func InviteModelFromDomain(i *identity.Invite) *InviteModel {
	m := &InviteModel{}
	m.FromDomain(i)
	return m
}

// PasswordResetModel is the persistence model for the PasswordReset domain entity.
type PasswordResetModel struct {
	TenantAggregateModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null;index"`
	UsedAt    *time.Time
}

// TableName returns the table name for GORM
func (PasswordResetModel) TableName() string {
	return "password_resets"
}

// ToDomain converts the persistence model to a domain PasswordReset entity.
func (m *PasswordResetModel) ToDomain() *identity.PasswordReset {
	reset := &identity.PasswordReset{
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		UsedAt:    m.UsedAt,
	}
	m.PopulateTenantAggregateRoot(&reset.TenantAggregateRoot)
	return reset
}

// FromDomain populates the persistence model from a domain PasswordReset entity.
func (m *PasswordResetModel) FromDomain(r *identity.PasswordReset) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.UserID = r.UserID
	m.TokenHash = r.TokenHash
	m.ExpiresAt = r.ExpiresAt
	m.UsedAt = r.UsedAt
}

// PasswordResetModelFromDomain creates a new persistence model from a domain PasswordReset entity.
func PasswordResetModelFromDomain(r *identity.PasswordReset) *PasswordResetModel {
	m := &PasswordResetModel{}
	m.FromDomain(r)
	return m
}
