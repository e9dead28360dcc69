package partner

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AssignmentStatus represents the status of a partner assignment
type AssignmentStatus string

const (
	AssignmentStatusActive  AssignmentStatus = "active"
	AssignmentStatusRevoked AssignmentStatus = "revoked"
)

// Assignment links a partner (broker) user to a company they manage.
// It is the aggregate root for the partner-company relationship.
type Assignment struct {
	shared.TenantAggregateRoot
	PartnerID  uuid.UUID
	CompanyID  uuid.UUID
	AssignedBy uuid.UUID
	AssignedAt time.Time
	Status     AssignmentStatus
	RevokedAt  *time.Time
}

// NewAssignment creates a new active partner-company assignment
func NewAssignment(tenantID, partnerID, companyID, assignedBy uuid.UUID) (*Assignment, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner cannot be empty")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company cannot be empty")
	}
	if assignedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSIGNER", "Assigner cannot be empty")
	}

	assignment := &Assignment{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, assignedBy),
		PartnerID:           partnerID,
		CompanyID:           companyID,
		AssignedBy:          assignedBy,
		AssignedAt:          time.Now(),
		Status:              AssignmentStatusActive,
	}

	assignment.AddDomainEvent(NewPartnerAssignedEvent(assignment))

	return assignment, nil
}

// IsActive returns true if the assignment is in force
func (a *Assignment) IsActive() bool {
	return a.Status == AssignmentStatusActive
}

// Revoke ends the assignment
func (a *Assignment) Revoke() error {
	if a.Status == AssignmentStatusRevoked {
		return shared.NewDomainError("ALREADY_REVOKED", "Assignment is already revoked")
	}

	now := time.Now()
	a.Status = AssignmentStatusRevoked
	a.RevokedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewPartnerRevokedEvent(a))

	return nil
}
