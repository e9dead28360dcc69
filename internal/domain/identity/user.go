package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the portal role of a user
type UserRole string

const (
	RoleClient  UserRole = "client"  // Borrower creating companies and applications
	RolePartner UserRole = "partner" // Broker managing an assigned book of companies
	RoleAdmin   UserRole = "admin"   // Back-office staff
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusInvited   UserStatus = "invited"   // Invite sent, password not yet set
	UserStatusActive    UserStatus = "active"    // Normal active status
	UserStatusSuspended UserStatus = "suspended" // Manually suspended by an admin
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a portal user profile
// It is the aggregate root for user-related operations
type User struct {
	shared.TenantAggregateRoot
	Email             string
	PasswordHash      string
	FirstName         string
	LastName          string
	Phone             string
	Role              UserRole
	Status            UserStatus
	IsHomeowner       bool // Collected during onboarding, used by lender eligibility
	LastLoginAt       *time.Time
	LastLoginIP       string
	FailedAttempts    int
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// NewUser creates a new active user with a password
func NewUser(tenantID uuid.UUID, email, password string, role UserRole) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	now := time.Now()
	user := &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               normalizeEmail(email),
		PasswordHash:        passwordHash,
		Role:                role,
		Status:              UserStatusActive,
		PasswordChangedAt:   &now,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// NewInvitedUser creates a user in invited state with no credentials yet.
// The password is set when the invite is accepted.
func NewInvitedUser(tenantID uuid.UUID, email string, role UserRole) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}

	user := &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               normalizeEmail(email),
		Role:                role,
		Status:              UserStatusInvited,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// SetName sets the user's first and last name
func (u *User) SetName(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if len(firstName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "First name cannot exceed 100 characters")
	}
	if len(lastName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Last name cannot exceed 100 characters")
	}

	u.FirstName = firstName
	u.LastName = lastName
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetPhone sets the user's phone number
func (u *User) SetPhone(phone string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	u.Phone = strings.TrimSpace(phone)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetHomeowner records whether the user owns their home
func (u *User) SetHomeowner(homeowner bool) {
	u.IsHomeowner = homeowner
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// ChangeRole changes the user's role (admin operation)
func (u *User) ChangeRole(role UserRole) error {
	if err := validateRole(role); err != nil {
		return err
	}

	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangePassword changes the user's password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return u.SetPassword(newPassword)
}

// SetPassword sets a new password (invite acceptance, password reset)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	now := time.Now()
	u.PasswordChangedAt = &now
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserPasswordChangedEvent(u))

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Activate activates an invited or suspended user
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	oldStatus := u.Status
	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, oldStatus, UserStatusActive))

	return nil
}

// Suspend suspends the user
func (u *User) Suspend() error {
	if u.Status == UserStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "User is already suspended")
	}

	oldStatus := u.Status
	u.Status = UserStatusSuspended
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, oldStatus, UserStatusSuspended))

	return nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess(ip string) {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// RecordLoginFailure records a failed login attempt
// Returns true if the account is now locked
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	if u.FailedAttempts >= maxAttempts {
		lockedUntil := time.Now().Add(lockDuration)
		u.LockedUntil = &lockedUntil
		u.AddDomainEvent(NewUserLockedEvent(u, lockedUntil))
		return true
	}

	return false
}

// IsActive returns true if user is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsLocked returns true if the account is under a login lockout
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && time.Now().Before(*u.LockedUntil)
}

// IsInvited returns true if the user has not yet accepted their invite
func (u *User) IsInvited() bool {
	return u.Status == UserStatusInvited
}

// IsSuspended returns true if user is suspended
func (u *User) IsSuspended() bool {
	return u.Status == UserStatusSuspended
}

// IsStaff returns true for roles allowed to work the pipeline
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RolePartner
}

// CanLogin returns true if user can login
func (u *User) CanLogin() bool {
	if u.Status != UserStatusActive {
		return false
	}
	if u.IsLocked() {
		return false
	}
	return true
}

// FullName returns the user's full name, falling back to email
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Email
}

// Validation functions

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validateRole(role UserRole) error {
	switch role {
	case RoleClient, RolePartner, RoleAdmin:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Role must be client, partner or admin")
	}
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	// Check for at least one letter and one number
	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
