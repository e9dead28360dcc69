package shared

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus is the delivery state of an outbox entry.
type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "PENDING"
	OutboxStatusProcessing OutboxStatus = "PROCESSING"
	OutboxStatusSent       OutboxStatus = "SENT"
	OutboxStatusFailed     OutboxStatus = "FAILED"
	OutboxStatusDead       OutboxStatus = "DEAD"
)

const (
	DefaultMaxRetries  = 5
	DefaultBaseBackoff = time.Second
)

// OutboxEntry is a domain event persisted alongside the aggregate change
// that produced it, so delivery survives a crash between commit and publish.
// Entries move PENDING -> PROCESSING -> SENT, detouring through FAILED with
// backoff until MaxRetries pushes them to DEAD.
type OutboxEntry struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	EventID       uuid.UUID
	EventType     string
	AggregateID   uuid.UUID
	AggregateType string
	Payload       []byte
	Status        OutboxStatus
	RetryCount    int
	MaxRetries    int
	LastError     string
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOutboxEntry wraps a serialized domain event as a pending entry.
func NewOutboxEntry(tenantID uuid.UUID, event DomainEvent, payload []byte) *OutboxEntry {
	now := time.Now()
	return &OutboxEntry{
		ID:            uuid.New(),
		TenantID:      tenantID,
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		Payload:       payload,
		Status:        OutboxStatusPending,
		MaxRetries:    DefaultMaxRetries,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (e *OutboxEntry) CanRetry() bool {
	return e.Status == OutboxStatusFailed && e.RetryCount < e.MaxRetries
}

func (e *OutboxEntry) IsDead() bool {
	return e.Status == OutboxStatusDead
}

// MarkProcessing claims the entry for a delivery attempt. Only pending and
// failed entries may be claimed, a concurrent processor already owns the rest.
func (e *OutboxEntry) MarkProcessing() error {
	if e.Status != OutboxStatusPending && e.Status != OutboxStatusFailed {
		return errors.New("can only mark pending or failed entries as processing")
	}
	e.Status = OutboxStatusProcessing
	e.UpdatedAt = time.Now()
	return nil
}

// MarkSent records a successful delivery.
func (e *OutboxEntry) MarkSent() {
	now := time.Now()
	e.Status = OutboxStatusSent
	e.ProcessedAt = &now
	e.UpdatedAt = now
}

// MarkFailed records a delivery failure. The entry is scheduled for another
// attempt after an exponentially growing backoff, or parked as DEAD once the
// retry budget is spent.
func (e *OutboxEntry) MarkFailed(errMsg string) {
	e.RetryCount++
	e.LastError = errMsg
	e.UpdatedAt = time.Now()

	if e.RetryCount >= e.MaxRetries {
		e.Status = OutboxStatusDead
		return
	}
	e.Status = OutboxStatusFailed
	next := time.Now().Add(e.retryBackoff())
	e.NextRetryAt = &next
}

// retryBackoff doubles per attempt starting from DefaultBaseBackoff.
func (e *OutboxEntry) retryBackoff() time.Duration {
	return DefaultBaseBackoff * time.Duration(1<<uint(e.RetryCount-1))
}

// ResetForRetry requeues a dead entry after operator intervention, wiping its
// failure history so it gets a fresh retry budget.
func (e *OutboxEntry) ResetForRetry() error {
	if e.Status != OutboxStatusDead {
		return errors.New("can only retry dead letter entries")
	}
	e.Status = OutboxStatusPending
	e.RetryCount = 0
	e.LastError = ""
	e.NextRetryAt = nil
	e.UpdatedAt = time.Now()
	return nil
}

// OutboxRepository persists outbox entries.
type OutboxRepository interface {
	Save(ctx context.Context, entries ...*OutboxEntry) error
	FindPending(ctx context.Context, limit int) ([]*OutboxEntry, error)
	// FindRetryable returns failed entries whose NextRetryAt is before the
	// given instant.
	FindRetryable(ctx context.Context, before time.Time, limit int) ([]*OutboxEntry, error)
	FindDead(ctx context.Context, page, pageSize int) ([]*OutboxEntry, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*OutboxEntry, error)
	// MarkProcessing atomically claims the given entries and returns the ones
	// that were actually claimed.
	MarkProcessing(ctx context.Context, ids []uuid.UUID) ([]*OutboxEntry, error)
	Update(ctx context.Context, entry *OutboxEntry) error
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
	CountByStatus(ctx context.Context) (map[OutboxStatus]int64, error)
}
