package document

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/document"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// Actor identifies who is performing an operation
type Actor struct {
	UserID uuid.UUID
	Role   identity.UserRole
}

// IsAdmin checks if the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == identity.RoleAdmin
}

// IsPartner checks if the actor holds the partner role
func (a Actor) IsPartner() bool {
	return a.Role == identity.RolePartner
}

// InitiateUploadInput contains the input for starting a document upload
type InitiateUploadInput struct {
	TenantID      uuid.UUID
	Actor         Actor
	Kind          document.DocumentKind
	Filename      string
	ContentType   string
	Size          int64
	ApplicationID *uuid.UUID
	CompanyID     *uuid.UUID
}

// InitiateUploadResult carries the pending document and the presigned PUT URL
type InitiateUploadResult struct {
	Document           DocumentDTO `json:"document"`
	UploadURL          string      `json:"upload_url"`
	UploadURLExpiresAt time.Time   `json:"upload_url_expires_at"`
}

// DownloadURLResult carries a presigned GET URL
type DownloadURLResult struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ListDocumentsInput contains the input for listing documents
type ListDocumentsInput struct {
	TenantID      uuid.UUID
	Actor         Actor
	ApplicationID *uuid.UUID
	Page          int
	PageSize      int
}

// DocumentDTO is the transport form of a document
type DocumentDTO struct {
	ID            uuid.UUID               `json:"id"`
	OwnerID       uuid.UUID               `json:"owner_id"`
	ApplicationID *uuid.UUID              `json:"application_id,omitempty"`
	CompanyID     *uuid.UUID              `json:"company_id,omitempty"`
	Kind          document.DocumentKind   `json:"kind"`
	Filename      string                  `json:"filename"`
	ContentType   string                  `json:"content_type"`
	Size          int64                   `json:"size"`
	Status        document.DocumentStatus `json:"status"`
	UploadedAt    *time.Time              `json:"uploaded_at,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

// ToDocumentDTO maps a domain document to its transport form
func ToDocumentDTO(d *document.Document) DocumentDTO {
	return DocumentDTO{
		ID:            d.ID,
		OwnerID:       d.OwnerID,
		ApplicationID: d.ApplicationID,
		CompanyID:     d.CompanyID,
		Kind:          d.Kind,
		Filename:      d.Filename,
		ContentType:   d.ContentType,
		Size:          d.Size,
		Status:        d.Status,
		UploadedAt:    d.UploadedAt,
		CreatedAt:     d.CreatedAt,
	}
}
