package event

import (
	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/document"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/partner"
)

// RegisterAllEvents registers all domain event types with the serializer.
// This is required for the OutboxProcessor to deserialize events from the outbox table.
func RegisterAllEvents(serializer *EventSerializer) {
	// Identity domain events
	serializer.Register(identity.EventTypeUserCreated, &identity.UserCreatedEvent{})
	serializer.Register(identity.EventTypeUserPasswordChanged, &identity.UserPasswordChangedEvent{})
	serializer.Register(identity.EventTypeUserStatusChanged, &identity.UserStatusChangedEvent{})
	serializer.Register(identity.EventTypeUserLocked, &identity.UserLockedEvent{})
	serializer.Register(identity.EventTypeUserInvited, &identity.UserInvitedEvent{})
	serializer.Register(identity.EventTypeInviteAccepted, &identity.InviteAcceptedEvent{})
	serializer.Register(identity.EventTypePasswordResetUsed, &identity.PasswordResetUsedEvent{})

	// Company domain events
	serializer.Register(company.EventTypeCompanyCreated, &company.CompanyCreatedEvent{})
	serializer.Register(company.EventTypeCompanyArchived, &company.CompanyArchivedEvent{})

	// Partner domain events
	serializer.Register(partner.EventTypePartnerAssigned, &partner.PartnerAssignedEvent{})
	serializer.Register(partner.EventTypePartnerRevoked, &partner.PartnerRevokedEvent{})
	serializer.Register(partner.EventTypeLeadCreated, &partner.LeadCreatedEvent{})
	serializer.Register(partner.EventTypeLeadQualified, &partner.LeadQualifiedEvent{})
	serializer.Register(partner.EventTypeLeadConverted, &partner.LeadConvertedEvent{})

	// Funding domain events
	serializer.Register(funding.EventTypeApplicationCreated, &funding.ApplicationCreatedEvent{})
	serializer.Register(funding.EventTypeApplicationSubmitted, &funding.ApplicationSubmittedEvent{})
	serializer.Register(funding.EventTypeStageChanged, &funding.StageChangedEvent{})
	serializer.Register(funding.EventTypeOnboardingCompleted, &funding.OnboardingCompletedEvent{})

	// Document domain events
	serializer.Register(document.EventTypeDocumentInitiated, &document.DocumentInitiatedEvent{})
	serializer.Register(document.EventTypeDocumentUploaded, &document.DocumentUploadedEvent{})
	serializer.Register(document.EventTypeDocumentDeleted, &document.DocumentDeletedEvent{})
}
