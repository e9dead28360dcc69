package document

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentKind classifies what the file evidences
type DocumentKind string

const (
	KindBankStatement  DocumentKind = "bank_statement"
	KindIDDocument     DocumentKind = "id_document"
	KindProofOfAddress DocumentKind = "proof_of_address"
	KindFiledAccounts  DocumentKind = "filed_accounts"
	KindVATReturn      DocumentKind = "vat_return"
	KindOther          DocumentKind = "other"
)

// IsValid checks if the document kind is valid
func (k DocumentKind) IsValid() bool {
	switch k {
	case KindBankStatement, KindIDDocument, KindProofOfAddress, KindFiledAccounts, KindVATReturn, KindOther:
		return true
	}
	return false
}

// DocumentStatus represents the upload lifecycle
type DocumentStatus string

const (
	StatusPending  DocumentStatus = "pending"
	StatusUploaded DocumentStatus = "uploaded"
	StatusDeleted  DocumentStatus = "deleted"
)

// MaxFileSize is the largest accepted upload in bytes (20 MiB)
const MaxFileSize = 20 << 20

// MaxPerApplication caps how many documents one application can hold
const MaxPerApplication = 25

// PendingTTL is how long a pending document may wait for its upload
const PendingTTL = 24 * time.Hour

// allowedContentTypes maps accepted MIME types to their storage extension.
// SVG is deliberately absent, it can carry scripts.
var allowedContentTypes = map[string]string{
	"application/pdf": "pdf",
	"image/png":       "png",
	"image/jpeg":      "jpg",
	"text/csv":        "csv",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": "xlsx",
}

// AllowedContentType reports whether the MIME type is accepted for upload
func AllowedContentType(contentType string) bool {
	_, ok := allowedContentTypes[normalizeContentType(contentType)]
	return ok
}

func normalizeContentType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

// Document represents an uploaded (or about to be uploaded) file
type Document struct {
	shared.TenantAggregateRoot
	OwnerID       uuid.UUID
	ApplicationID *uuid.UUID
	CompanyID     *uuid.UUID
	Kind          DocumentKind
	Filename      string
	ContentType   string
	Size          int64
	StorageKey    string
	Status        DocumentStatus
	UploadedAt    *time.Time
}

// NewDocument creates a pending document awaiting its upload
func NewDocument(tenantID, ownerID uuid.UUID, kind DocumentKind, filename, contentType string, size int64) (*Document, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Document owner is required")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_KIND", fmt.Sprintf("Unknown document kind: %s", kind))
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, shared.NewDomainError("INVALID_FILENAME", "Filename cannot be empty")
	}
	if len(filename) > 255 {
		return nil, shared.NewDomainError("INVALID_FILENAME", "Filename cannot exceed 255 characters")
	}
	contentType = normalizeContentType(contentType)
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_CONTENT_TYPE", fmt.Sprintf("Content type %s is not accepted", contentType))
	}
	if size <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be positive")
	}
	if size > MaxFileSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", "File exceeds the 20 MiB limit")
	}

	doc := &Document{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OwnerID:             ownerID,
		Kind:                kind,
		Filename:            filename,
		ContentType:         contentType,
		Size:                size,
		Status:              StatusPending,
	}
	doc.StorageKey = buildStorageKey(tenantID, doc.ID, ext)
	doc.AddDomainEvent(NewDocumentInitiatedEvent(doc))

	return doc, nil
}

// buildStorageKey derives the object key. The document ID makes keys unique
// per upload so a deleted key is never handed out again.
func buildStorageKey(tenantID, docID uuid.UUID, ext string) string {
	return path.Join("tenants", tenantID.String(), "documents", fmt.Sprintf("%s.%s", docID.String(), ext))
}

// AttachToApplication links the document to a funding application
func (d *Document) AttachToApplication(applicationID uuid.UUID) error {
	if applicationID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPLICATION", "Application ID is required")
	}
	if d.Status == StatusDeleted {
		return shared.NewDomainError("DOCUMENT_DELETED", "Cannot attach a deleted document")
	}

	d.ApplicationID = &applicationID
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// AttachToCompany links the document to a company
func (d *Document) AttachToCompany(companyID uuid.UUID) error {
	if companyID == uuid.Nil {
		return shared.NewDomainError("INVALID_COMPANY", "Company ID is required")
	}
	if d.Status == StatusDeleted {
		return shared.NewDomainError("DOCUMENT_DELETED", "Cannot attach a deleted document")
	}

	d.CompanyID = &companyID
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// ConfirmUpload flips the document to uploaded after the object exists in storage
func (d *Document) ConfirmUpload() error {
	if d.Status != StatusPending {
		return shared.NewDomainError("INVALID_DOCUMENT_STATUS", fmt.Sprintf("Cannot confirm a %s document", d.Status))
	}

	now := time.Now()
	d.Status = StatusUploaded
	d.UploadedAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()
	d.AddDomainEvent(NewDocumentUploadedEvent(d))

	return nil
}

// MarkDeleted records that the object was removed from storage
func (d *Document) MarkDeleted() error {
	if d.Status == StatusDeleted {
		return shared.NewDomainError("DOCUMENT_DELETED", "Document is already deleted")
	}

	d.Status = StatusDeleted
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	d.AddDomainEvent(NewDocumentDeletedEvent(d))

	return nil
}

// IsPending checks if the document is still awaiting its upload
func (d *Document) IsPending() bool {
	return d.Status == StatusPending
}

// IsUploaded checks if the object landed in storage
func (d *Document) IsUploaded() bool {
	return d.Status == StatusUploaded
}

// IsExpired reports whether a pending document outlived its upload window
func (d *Document) IsExpired() bool {
	return d.Status == StatusPending && time.Since(d.CreatedAt) > PendingTTL
}

// IsOwnedBy checks document ownership
func (d *Document) IsOwnedBy(userID uuid.UUID) bool {
	return d.OwnerID == userID
}
