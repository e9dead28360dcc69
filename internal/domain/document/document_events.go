package document

import (
	"github.com/brokerhub/backend/internal/domain/shared"
)

// Aggregate type constant for Document
const AggregateTypeDocument = "Document"

// Document domain event types
const (
	EventTypeDocumentInitiated = "DocumentInitiated"
	EventTypeDocumentUploaded  = "DocumentUploaded"
	EventTypeDocumentDeleted   = "DocumentDeleted"
)

// DocumentInitiatedEvent is published when an upload slot is created
type DocumentInitiatedEvent struct {
	shared.BaseDomainEvent
	Kind     DocumentKind `json:"kind"`
	Filename string       `json:"filename"`
	Size     int64        `json:"size"`
	OwnerID  string       `json:"owner_id"`
}

// NewDocumentInitiatedEvent creates a new DocumentInitiatedEvent
func NewDocumentInitiatedEvent(doc *Document) *DocumentInitiatedEvent {
	return &DocumentInitiatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentInitiated, AggregateTypeDocument, doc.ID, doc.TenantID),
		Kind:            doc.Kind,
		Filename:        doc.Filename,
		Size:            doc.Size,
		OwnerID:         doc.OwnerID.String(),
	}
}

// DocumentUploadedEvent is published when the object is confirmed in storage
type DocumentUploadedEvent struct {
	shared.BaseDomainEvent
	Kind       DocumentKind `json:"kind"`
	StorageKey string       `json:"storage_key"`
}

// NewDocumentUploadedEvent creates a new DocumentUploadedEvent
func NewDocumentUploadedEvent(doc *Document) *DocumentUploadedEvent {
	return &DocumentUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentUploaded, AggregateTypeDocument, doc.ID, doc.TenantID),
		Kind:            doc.Kind,
		StorageKey:      doc.StorageKey,
	}
}

// DocumentDeletedEvent is published when the document is removed
type DocumentDeletedEvent struct {
	shared.BaseDomainEvent
	StorageKey string `json:"storage_key"`
}

// NewDocumentDeletedEvent creates a new DocumentDeletedEvent
func NewDocumentDeletedEvent(doc *Document) *DocumentDeletedEvent {
	return &DocumentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentDeleted, AggregateTypeDocument, doc.ID, doc.TenantID),
		StorageKey:      doc.StorageKey,
	}
}
