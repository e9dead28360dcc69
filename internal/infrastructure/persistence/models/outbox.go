package models

import (
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OutboxEntryModel maps outbox entries onto the outbox_events table. Entries
// are written in the same transaction as the aggregate change they describe,
// then claimed and delivered by the outbox processor.
type OutboxEntryModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID           `gorm:"type:uuid;not null;index:idx_outbox_tenant_status,priority:1"`
	EventID       uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	EventType     string              `gorm:"type:varchar(255);not null"`
	AggregateID   uuid.UUID           `gorm:"type:uuid;not null"`
	AggregateType string              `gorm:"type:varchar(255);not null"`
	Payload       []byte              `gorm:"type:jsonb;not null"`
	Status        shared.OutboxStatus `gorm:"type:varchar(20);default:PENDING;index:idx_outbox_tenant_status,priority:2;index:idx_outbox_status_created,priority:1"`
	RetryCount    int                 `gorm:"default:0"`
	MaxRetries    int                 `gorm:"default:5"`
	LastError     string              `gorm:"type:text"`
	NextRetryAt   *time.Time          `gorm:"index:idx_outbox_next_retry"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"not null;default:now();index:idx_outbox_status_created,priority:2"`
	UpdatedAt     time.Time `gorm:"not null;default:now()"`
}

func (OutboxEntryModel) TableName() string {
	return "outbox_events"
}

func (m *OutboxEntryModel) ToDomain() *shared.OutboxEntry {
	return &shared.OutboxEntry{
		ID:            m.ID,
		TenantID:      m.TenantID,
		EventID:       m.EventID,
		EventType:     m.EventType,
		AggregateID:   m.AggregateID,
		AggregateType: m.AggregateType,
		Payload:       m.Payload,
		Status:        m.Status,
		RetryCount:    m.RetryCount,
		MaxRetries:    m.MaxRetries,
		LastError:     m.LastError,
		NextRetryAt:   m.NextRetryAt,
		ProcessedAt:   m.ProcessedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (m *OutboxEntryModel) FromDomain(e *shared.OutboxEntry) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.EventID = e.EventID
	m.EventType = e.EventType
	m.AggregateID = e.AggregateID
	m.AggregateType = e.AggregateType
	m.Payload = e.Payload
	m.Status = e.Status
	m.RetryCount = e.RetryCount
	m.MaxRetries = e.MaxRetries
	m.LastError = e.LastError
	m.NextRetryAt = e.NextRetryAt
	m.ProcessedAt = e.ProcessedAt
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

func OutboxEntryModelFromDomain(e *shared.OutboxEntry) *OutboxEntryModel {
	m := &OutboxEntryModel{}
	m.FromDomain(e)
	return m
}
