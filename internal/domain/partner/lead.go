package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// LeadStatus represents the lifecycle state of a lead
type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "new"
	LeadStatusContacted    LeadStatus = "contacted"
	LeadStatusQualified    LeadStatus = "qualified"
	LeadStatusConverted    LeadStatus = "converted"
	LeadStatusDisqualified LeadStatus = "disqualified"
)

// Lead represents an inbound funding enquiry before it becomes a client.
// It is the aggregate root for lead-related operations.
type Lead struct {
	shared.TenantAggregateRoot
	Source          string // e.g. website, referral, campaign name
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	CompanyName     string
	RequestedAmount valueobject.Money
	Notes           string
	Status          LeadStatus
	OwnerID         *uuid.UUID // Partner working the lead
	DisqualifiedFor string

	// Set on conversion
	ConvertedUserID        *uuid.UUID
	ConvertedCompanyID     *uuid.UUID
	ConvertedApplicationID *uuid.UUID
	ConvertedAt            *time.Time
}

// NewLead creates a new lead
func NewLead(tenantID uuid.UUID, source, contactName, contactEmail string) (*Lead, error) {
	contactName = strings.TrimSpace(contactName)
	if contactName == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot be empty")
	}
	if len(contactName) > 200 {
		return nil, shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 200 characters")
	}
	if err := validateLeadEmail(contactEmail); err != nil {
		return nil, err
	}

	lead := &Lead{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Source:              strings.TrimSpace(source),
		ContactName:         contactName,
		ContactEmail:        strings.ToLower(strings.TrimSpace(contactEmail)),
		RequestedAmount:     valueobject.ZeroGBP(),
		Status:              LeadStatusNew,
	}

	lead.AddDomainEvent(NewLeadCreatedEvent(lead))

	return lead, nil
}

// UpdateDetails updates contact and company details
func (l *Lead) UpdateDetails(contactPhone, companyName, notes string) error {
	if err := l.ensureOpen(); err != nil {
		return err
	}
	if len(contactPhone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if len(companyName) > 200 {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}

	l.ContactPhone = strings.TrimSpace(contactPhone)
	l.CompanyName = strings.TrimSpace(companyName)
	l.Notes = notes
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetRequestedAmount records the indicative funding amount
func (l *Lead) SetRequestedAmount(amount valueobject.Money) error {
	if err := l.ensureOpen(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Requested amount cannot be negative")
	}

	l.RequestedAmount = amount
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// AssignOwner gives the lead to a partner to work
func (l *Lead) AssignOwner(partnerID uuid.UUID) error {
	if partnerID == uuid.Nil {
		return shared.NewDomainError("INVALID_PARTNER", "Partner cannot be empty")
	}
	if err := l.ensureOpen(); err != nil {
		return err
	}

	l.OwnerID = &partnerID
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// MarkContacted moves a new lead to contacted
func (l *Lead) MarkContacted() error {
	if l.Status != LeadStatusNew {
		return shared.NewDomainError("INVALID_STATE", "Only new leads can be marked contacted")
	}

	l.Status = LeadStatusContacted
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Qualify marks the lead as qualified for conversion
func (l *Lead) Qualify() error {
	if l.Status != LeadStatusNew && l.Status != LeadStatusContacted {
		return shared.NewDomainError("INVALID_STATE", "Only new or contacted leads can be qualified")
	}

	l.Status = LeadStatusQualified
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeadQualifiedEvent(l))

	return nil
}

// Disqualify closes the lead with a reason
func (l *Lead) Disqualify(reason string) error {
	if err := l.ensureOpen(); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Disqualification reason cannot be empty")
	}

	l.Status = LeadStatusDisqualified
	l.DisqualifiedFor = reason
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Convert records the entities created from this lead and closes it.
// Only qualified leads can be converted.
func (l *Lead) Convert(userID, companyID, applicationID uuid.UUID) error {
	if l.Status == LeadStatusConverted {
		return shared.NewDomainError("ALREADY_CONVERTED", "Lead has already been converted")
	}
	if l.Status != LeadStatusQualified {
		return shared.NewDomainError("INVALID_STATE", "Only qualified leads can be converted")
	}
	if userID == uuid.Nil || companyID == uuid.Nil || applicationID == uuid.Nil {
		return shared.NewDomainError("INVALID_CONVERSION", "Conversion references cannot be empty")
	}

	now := time.Now()
	l.Status = LeadStatusConverted
	l.ConvertedUserID = &userID
	l.ConvertedCompanyID = &companyID
	l.ConvertedApplicationID = &applicationID
	l.ConvertedAt = &now
	l.UpdatedAt = now
	l.IncrementVersion()

	l.AddDomainEvent(NewLeadConvertedEvent(l))

	return nil
}

// IsOpen returns true while the lead can still be worked
func (l *Lead) IsOpen() bool {
	return l.Status != LeadStatusConverted && l.Status != LeadStatusDisqualified
}

// IsOwnedBy returns true if the partner owns this lead
func (l *Lead) IsOwnedBy(partnerID uuid.UUID) bool {
	return l.OwnerID != nil && *l.OwnerID == partnerID
}

func (l *Lead) ensureOpen() error {
	if !l.IsOpen() {
		return shared.NewDomainError("LEAD_CLOSED", "Lead is closed")
	}
	return nil
}

func validateLeadEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Contact email cannot be empty")
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
