package models

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/document"
	"github.com/google/uuid"
)

// DocumentModel is the persistence model for the Document domain entity.
// The file content itself lives in object storage under StorageKey.
type DocumentModel struct {
	TenantAggregateModel
	OwnerID       uuid.UUID               `gorm:"type:uuid;not null;index"`
	ApplicationID *uuid.UUID              `gorm:"type:uuid;index"`
	CompanyID     *uuid.UUID              `gorm:"type:uuid;index"`
	Kind          document.DocumentKind   `gorm:"type:varchar(30);not null"`
	Filename      string                  `gorm:"type:varchar(255);not null"`
	ContentType   string                  `gorm:"type:varchar(100);not null"`
	Size          int64                   `gorm:"not null"`
	StorageKey    string                  `gorm:"type:varchar(512);not null;uniqueIndex"`
	Status        document.DocumentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	UploadedAt    *time.Time
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document entity.
func (m *DocumentModel) ToDomain() *document.Document {
	d := &document.Document{
		OwnerID:       m.OwnerID,
		ApplicationID: m.ApplicationID,
		CompanyID:     m.CompanyID,
		Kind:          m.Kind,
		Filename:      m.Filename,
		ContentType:   m.ContentType,
		Size:          m.Size,
		StorageKey:    m.StorageKey,
		Status:        m.Status,
		UploadedAt:    m.UploadedAt,
	}
	m.PopulateTenantAggregateRoot(&d.TenantAggregateRoot)
	return d
}

// FromDomain populates the persistence model from a domain Document entity.
func (m *DocumentModel) FromDomain(d *document.Document) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.OwnerID = d.OwnerID
	m.ApplicationID = d.ApplicationID
	m.CompanyID = d.CompanyID
	m.Kind = d.Kind
	m.Filename = d.Filename
	m.ContentType = d.ContentType
	m.Size = d.Size
	m.StorageKey = d.StorageKey
	m.Status = d.Status
	m.UploadedAt = d.UploadedAt
}

// DocumentModelFromDomain creates a new persistence model from a domain Document entity.
func DocumentModelFromDomain(d *document.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}
