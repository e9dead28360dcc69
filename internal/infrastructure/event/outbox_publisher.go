package event

import (
	"context"

	"github.com/brokerhub/backend/internal/domain/shared"
)

// OutboxEventPublisher implements shared.EventPublisher by writing events to
// the outbox table. The OutboxProcessor picks them up and dispatches to the
// event bus, giving at-least-once delivery across restarts. When the caller's
// context carries an open transaction the outbox rows commit atomically with
// the aggregate writes.
type OutboxEventPublisher struct {
	repo       shared.OutboxRepository
	serializer *EventSerializer
}

// NewOutboxEventPublisher creates a publisher backed by the outbox table
func NewOutboxEventPublisher(repo shared.OutboxRepository, serializer *EventSerializer) *OutboxEventPublisher {
	return &OutboxEventPublisher{
		repo:       repo,
		serializer: serializer,
	}
}

// Publish serializes the events and persists them as pending outbox entries
func (p *OutboxEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	entries := make([]*shared.OutboxEntry, 0, len(events))
	for _, event := range events {
		payload, err := p.serializer.Serialize(event)
		if err != nil {
			return err
		}
		entries = append(entries, shared.NewOutboxEntry(event.TenantID(), event, payload))
	}

	return p.repo.Save(ctx, entries...)
}

// Ensure OutboxEventPublisher implements EventPublisher
var _ shared.EventPublisher = (*OutboxEventPublisher)(nil)
