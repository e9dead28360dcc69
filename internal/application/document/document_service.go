package document

import (
	"context"
	"time"

	"github.com/brokerhub/backend/internal/domain/document"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Presigned URL lifetimes
const (
	UploadURLTTL   = 15 * time.Minute
	DownloadURLTTL = 15 * time.Minute
)

// ObjectStorageService is the port the document service uses to talk to
// object storage. Files never pass through the API; clients upload and
// download against presigned URLs.
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned PUT URL for the storage key
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned GET URL for the storage key
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes the object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks whether the object has been uploaded
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// DocumentService handles document metadata and presigned storage access
type DocumentService struct {
	documentRepo    document.DocumentRepository
	applicationRepo funding.ApplicationRepository
	assignmentRepo  partner.AssignmentRepository
	storage         ObjectStorageService
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	documentRepo document.DocumentRepository,
	applicationRepo funding.ApplicationRepository,
	assignmentRepo partner.AssignmentRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo:    documentRepo,
		applicationRepo: applicationRepo,
		assignmentRepo:  assignmentRepo,
		storage:         storage,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DocumentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *DocumentService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
}

// InitiateUpload validates the file metadata, records a pending document and
// returns a presigned PUT URL. The upload itself goes straight to storage.
func (s *DocumentService) InitiateUpload(ctx context.Context, input InitiateUploadInput) (*InitiateUploadResult, error) {
	doc, err := document.NewDocument(input.TenantID, input.Actor.UserID, input.Kind, input.Filename, input.ContentType, input.Size)
	if err != nil {
		return nil, err
	}

	if input.ApplicationID != nil {
		app, err := s.applicationRepo.FindByIDForTenant(ctx, input.TenantID, *input.ApplicationID)
		if err != nil {
			return nil, shared.NewDomainError("APPLICATION_NOT_FOUND", "Application not found")
		}
		if allowed := s.canAccessApplication(ctx, input.Actor, app); !allowed {
			return nil, shared.ErrForbidden
		}
		count, err := s.documentRepo.CountByApplication(ctx, input.TenantID, app.ID)
		if err != nil {
			s.logger.Error("Failed to count application documents", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to initiate upload")
		}
		if count >= document.MaxPerApplication {
			return nil, shared.NewDomainError("DOCUMENT_LIMIT", "Application has reached its document limit")
		}
		if err := doc.AttachToApplication(app.ID); err != nil {
			return nil, err
		}
	} else if input.CompanyID != nil {
		if err := doc.AttachToCompany(*input.CompanyID); err != nil {
			return nil, err
		}
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		s.logger.Error("Failed to save document", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to initiate upload")
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, doc.StorageKey, doc.ContentType, UploadURLTTL)
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate upload URL")
	}

	s.publishEvents(ctx, doc.GetDomainEvents())
	doc.ClearDomainEvents()

	s.logger.Info("Upload initiated",
		zap.String("document_id", doc.ID.String()),
		zap.String("kind", string(doc.Kind)))

	return &InitiateUploadResult{
		Document:           ToDocumentDTO(doc),
		UploadURL:          uploadURL,
		UploadURLExpiresAt: expiresAt,
	}, nil
}

// ConfirmUpload marks a pending document as uploaded once the object is in
// storage
func (s *DocumentService) ConfirmUpload(ctx context.Context, tenantID uuid.UUID, actor Actor, documentID uuid.UUID) (*DocumentDTO, error) {
	doc, err := s.loadOwned(ctx, tenantID, actor, documentID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, doc.StorageKey)
	if err != nil {
		s.logger.Error("Failed to check object", zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("OBJECT_MISSING", "File has not been uploaded")
	}

	if err := doc.ConfirmUpload(); err != nil {
		return nil, err
	}

	if err := s.documentRepo.SaveWithLock(ctx, doc); err != nil {
		s.logger.Error("Failed to save confirmation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to confirm upload")
	}

	s.publishEvents(ctx, doc.GetDomainEvents())
	doc.ClearDomainEvents()

	dto := ToDocumentDTO(doc)
	return &dto, nil
}

// GetDownloadURL returns a presigned GET URL for an uploaded document
func (s *DocumentService) GetDownloadURL(ctx context.Context, tenantID uuid.UUID, actor Actor, documentID uuid.UUID) (*DownloadURLResult, error) {
	doc, err := s.loadVisible(ctx, tenantID, actor, documentID)
	if err != nil {
		return nil, err
	}

	if !doc.IsUploaded() {
		return nil, shared.NewDomainError("DOCUMENT_NOT_UPLOADED", "Document has not been uploaded")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, doc.StorageKey, DownloadURLTTL)
	if err != nil {
		s.logger.Error("Failed to presign download", zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Failed to generate download URL")
	}

	return &DownloadURLResult{URL: url, ExpiresAt: expiresAt}, nil
}

// ListDocuments lists documents for an application, or the actor's own
// uploads when no application is given
func (s *DocumentService) ListDocuments(ctx context.Context, input ListDocumentsInput) ([]DocumentDTO, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	filter := shared.Filter{Page: page, PageSize: pageSize}

	var (
		docs []document.Document
		err  error
	)
	if input.ApplicationID != nil {
		app, appErr := s.applicationRepo.FindByIDForTenant(ctx, input.TenantID, *input.ApplicationID)
		if appErr != nil {
			return nil, shared.NewDomainError("APPLICATION_NOT_FOUND", "Application not found")
		}
		if allowed := s.canAccessApplication(ctx, input.Actor, app); !allowed {
			return nil, shared.ErrForbidden
		}
		docs, err = s.documentRepo.FindByApplication(ctx, input.TenantID, app.ID, filter)
	} else {
		docs, err = s.documentRepo.FindByOwner(ctx, input.TenantID, input.Actor.UserID, filter)
	}
	if err != nil {
		s.logger.Error("Failed to list documents", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list documents")
	}

	dtos := make([]DocumentDTO, 0, len(docs))
	for i := range docs {
		if docs[i].Status == document.StatusDeleted {
			continue
		}
		dtos = append(dtos, ToDocumentDTO(&docs[i]))
	}
	return dtos, nil
}

// DeleteDocument removes the object from storage and tombstones the record.
// Storage keys are never reused, so a failed object delete can be retried.
func (s *DocumentService) DeleteDocument(ctx context.Context, tenantID uuid.UUID, actor Actor, documentID uuid.UUID) error {
	doc, err := s.loadOwned(ctx, tenantID, actor, documentID)
	if err != nil {
		return err
	}

	if err := doc.MarkDeleted(); err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, doc.StorageKey); err != nil {
		s.logger.Warn("Failed to delete object, record will still be tombstoned",
			zap.String("storage_key", doc.StorageKey),
			zap.Error(err))
	}

	if err := s.documentRepo.SaveWithLock(ctx, doc); err != nil {
		s.logger.Error("Failed to save deletion", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete document")
	}

	s.publishEvents(ctx, doc.GetDomainEvents())
	doc.ClearDomainEvents()

	s.logger.Info("Document deleted", zap.String("document_id", doc.ID.String()))
	return nil
}

// SweepExpiredUploads tombstones pending documents whose upload window has
// passed. Returns the number of documents swept.
func (s *DocumentService) SweepExpiredUploads(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}

	cutoff := time.Now().Add(-document.PendingTTL)
	docs, err := s.documentRepo.FindExpiredPending(ctx, cutoff, limit)
	if err != nil {
		s.logger.Error("Failed to find expired uploads", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to sweep uploads")
	}

	swept := 0
	for i := range docs {
		doc := &docs[i]
		if err := doc.MarkDeleted(); err != nil {
			continue
		}
		if err := s.storage.DeleteObject(ctx, doc.StorageKey); err != nil {
			s.logger.Warn("Failed to delete expired object",
				zap.String("storage_key", doc.StorageKey),
				zap.Error(err))
		}
		if err := s.documentRepo.SaveWithLock(ctx, doc); err != nil {
			s.logger.Error("Failed to tombstone expired upload",
				zap.String("document_id", doc.ID.String()),
				zap.Error(err))
			continue
		}
		swept++
	}

	if swept > 0 {
		s.logger.Info("Expired uploads swept", zap.Int("count", swept))
	}
	return swept, nil
}

// loadOwned fetches a document the actor may modify: the owner or an admin
func (s *DocumentService) loadOwned(ctx context.Context, tenantID uuid.UUID, actor Actor, documentID uuid.UUID) (*document.Document, error) {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, shared.NewDomainError("DOCUMENT_NOT_FOUND", "Document not found")
	}
	if !actor.IsAdmin() && !doc.IsOwnedBy(actor.UserID) {
		return nil, shared.ErrForbidden
	}
	return doc, nil
}

// loadVisible fetches a document the actor may read: the owner, an admin, or
// a partner assigned to the company behind the attached application
func (s *DocumentService) loadVisible(ctx context.Context, tenantID uuid.UUID, actor Actor, documentID uuid.UUID) (*document.Document, error) {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, shared.NewDomainError("DOCUMENT_NOT_FOUND", "Document not found")
	}
	if actor.IsAdmin() || doc.IsOwnedBy(actor.UserID) {
		return doc, nil
	}
	if actor.IsPartner() {
		companyID := doc.CompanyID
		if companyID == nil && doc.ApplicationID != nil {
			if app, err := s.applicationRepo.FindByIDForTenant(ctx, tenantID, *doc.ApplicationID); err == nil {
				companyID = &app.CompanyID
			}
		}
		if companyID != nil {
			if assignment, err := s.assignmentRepo.FindActiveByPartnerAndCompany(ctx, tenantID, actor.UserID, *companyID); err == nil && assignment != nil {
				return doc, nil
			}
		}
	}
	return nil, shared.ErrForbidden
}

func (s *DocumentService) canAccessApplication(ctx context.Context, actor Actor, app *funding.Application) bool {
	if actor.IsAdmin() || app.BelongsTo(actor.UserID) {
		return true
	}
	if !actor.IsPartner() {
		return false
	}
	assignment, err := s.assignmentRepo.FindActiveByPartnerAndCompany(ctx, app.TenantID, actor.UserID, app.CompanyID)
	return err == nil && assignment != nil
}
