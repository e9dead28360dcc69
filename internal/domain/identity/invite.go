package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for Invite
const AggregateTypeInvite = "Invite"

// InviteTTL is how long an invite token stays valid
const InviteTTL = 72 * time.Hour

// Invite represents a pending invitation for a new portal user.
// The raw token is returned once at creation time; only its hash is stored.
type Invite struct {
	shared.TenantAggregateRoot
	Email      string
	Role       UserRole
	TokenHash  string
	InvitedBy  uuid.UUID
	UserID     uuid.UUID // The invited (not yet activated) user
	ExpiresAt  time.Time
	AcceptedAt *time.Time
}

// NewInvite creates a new invite and returns it together with the raw token
func NewInvite(tenantID uuid.UUID, email string, role UserRole, invitedBy, userID uuid.UUID) (*Invite, string, error) {
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validateRole(role); err != nil {
		return nil, "", err
	}
	if invitedBy == uuid.Nil {
		return nil, "", shared.NewDomainError("INVALID_INVITER", "Inviter cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, "", shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}

	token, err := generateToken()
	if err != nil {
		return nil, "", shared.NewDomainError("TOKEN_GENERATION_ERROR", "Failed to generate invite token")
	}

	invite := &Invite{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               normalizeEmail(email),
		Role:                role,
		TokenHash:           HashToken(token),
		InvitedBy:           invitedBy,
		UserID:              userID,
		ExpiresAt:           time.Now().Add(InviteTTL),
	}

	invite.AddDomainEvent(NewUserInvitedEvent(invite))

	return invite, token, nil
}

// IsExpired returns true if the invite token can no longer be used
func (i *Invite) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// IsAccepted returns true if the invite has already been used
func (i *Invite) IsAccepted() bool {
	return i.AcceptedAt != nil
}

// Accept marks the invite as used
func (i *Invite) Accept() error {
	if i.IsAccepted() {
		return shared.NewDomainError("INVITE_ALREADY_ACCEPTED", "Invite has already been accepted")
	}
	if i.IsExpired() {
		return shared.NewDomainError("INVITE_EXPIRED", "Invite has expired")
	}

	now := time.Now()
	i.AcceptedAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInviteAcceptedEvent(i))

	return nil
}

// Supersede retires this invite so a replacement can be issued.
// The token stops working immediately.
func (i *Invite) Supersede() error {
	if i.IsAccepted() {
		return shared.NewDomainError("INVITE_ALREADY_ACCEPTED", "Invite has already been accepted")
	}

	now := time.Now()
	i.ExpiresAt = now
	i.UpdatedAt = now
	i.IncrementVersion()

	return nil
}

// generateToken returns a 256-bit random token as hex
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashToken returns the storage form of an invite or reset token
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
