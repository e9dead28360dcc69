package event

import (
	"context"
	"sync"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OutboxProcessorConfig tunes the background delivery loop.
type OutboxProcessorConfig struct {
	BatchSize        int
	PollInterval     time.Duration
	CleanupEnabled   bool
	CleanupRetention time.Duration
	CleanupInterval  time.Duration
}

func DefaultOutboxProcessorConfig() OutboxProcessorConfig {
	return OutboxProcessorConfig{
		BatchSize:        100,
		PollInterval:     5 * time.Second,
		CleanupEnabled:   true,
		CleanupRetention: 7 * 24 * time.Hour,
		CleanupInterval:  1 * time.Hour,
	}
}

// OutboxProcessor drains the outbox table in the background: it polls for
// pending and retryable entries, claims them, deserializes the stored
// payloads and publishes them on the event bus. A second loop prunes
// delivered entries past the retention window.
type OutboxProcessor struct {
	repo       shared.OutboxRepository
	eventBus   shared.EventBus
	serializer *EventSerializer
	config     OutboxProcessorConfig
	logger     *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOutboxProcessor(
	repo shared.OutboxRepository,
	eventBus shared.EventBus,
	serializer *EventSerializer,
	config OutboxProcessorConfig,
	logger *zap.Logger,
) *OutboxProcessor {
	return &OutboxProcessor{
		repo:       repo,
		eventBus:   eventBus,
		serializer: serializer,
		config:     config,
		logger:     logger,
	}
}

// Start launches the delivery loop, and the cleanup loop when enabled. The
// loops run until the given context is cancelled or Stop is called.
func (p *OutboxProcessor) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.deliverLoop(ctx)

	if p.config.CleanupEnabled {
		p.wg.Add(1)
		go p.cleanupLoop(ctx)
	}

	p.logger.Info("outbox processor started",
		zap.Int("batch_size", p.config.BatchSize),
		zap.Duration("poll_interval", p.config.PollInterval),
	)

	return nil
}

// Stop cancels the loops and waits for them to drain, bounded by ctx.
func (p *OutboxProcessor) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("outbox processor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *OutboxProcessor) deliverLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.deliverBatch(ctx)
		}
	}
}

// deliverBatch picks up one batch of pending entries and one batch of failed
// entries whose backoff has elapsed.
func (p *OutboxProcessor) deliverBatch(ctx context.Context) {
	pending, err := p.repo.FindPending(ctx, p.config.BatchSize)
	if err != nil {
		p.logger.Error("failed to find pending entries", zap.Error(err))
		return
	}
	if len(pending) > 0 {
		p.deliverEntries(ctx, pending)
	}

	retryable, err := p.repo.FindRetryable(ctx, time.Now(), p.config.BatchSize)
	if err != nil {
		p.logger.Error("failed to find retryable entries", zap.Error(err))
		return
	}
	if len(retryable) > 0 {
		p.deliverEntries(ctx, retryable)
	}
}

func (p *OutboxProcessor) deliverEntries(ctx context.Context, entries []*shared.OutboxEntry) {
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	// Claiming is atomic so a second processor instance cannot double-send.
	claimed, err := p.repo.MarkProcessing(ctx, ids)
	if err != nil {
		p.logger.Error("failed to mark entries as processing", zap.Error(err))
		return
	}

	for _, entry := range claimed {
		p.deliverEntry(ctx, entry)
	}
}

func (p *OutboxProcessor) deliverEntry(ctx context.Context, entry *shared.OutboxEntry) {
	event, err := p.serializer.Deserialize(entry.EventType, entry.Payload)
	if err != nil {
		p.recordFailure(ctx, entry, "failed to deserialize event", err)
		return
	}

	if err := p.eventBus.Publish(ctx, event); err != nil {
		p.recordFailure(ctx, entry, "failed to publish event", err)
		return
	}

	entry.MarkSent()
	if err := p.repo.Update(ctx, entry); err != nil {
		p.logger.Error("failed to mark entry as sent",
			zap.String("event_id", entry.EventID.String()),
			zap.Error(err),
		)
		return
	}
	p.logger.Debug("event processed successfully",
		zap.String("event_id", entry.EventID.String()),
		zap.String("event_type", entry.EventType),
	)
}

// recordFailure books the failed attempt against the entry's retry budget
// and persists the new state.
func (p *OutboxProcessor) recordFailure(ctx context.Context, entry *shared.OutboxEntry, msg string, cause error) {
	p.logger.Error(msg,
		zap.String("event_id", entry.EventID.String()),
		zap.String("event_type", entry.EventType),
		zap.Error(cause),
	)

	entry.MarkFailed(cause.Error())
	if entry.IsDead() {
		p.logger.Warn("event moved to dead letter queue",
			zap.String("event_id", entry.EventID.String()),
			zap.String("event_type", entry.EventType),
			zap.String("aggregate_type", entry.AggregateType),
			zap.String("aggregate_id", entry.AggregateID.String()),
			zap.Int("retry_count", entry.RetryCount),
			zap.String("last_error", entry.LastError),
		)
	}
	if err := p.repo.Update(ctx, entry); err != nil {
		p.logger.Error("failed to update entry", zap.Error(err))
	}
}

func (p *OutboxProcessor) cleanupLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cleanup(ctx)
		}
	}
}

func (p *OutboxProcessor) cleanup(ctx context.Context) {
	cutoff := time.Now().Add(-p.config.CleanupRetention)
	deleted, err := p.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error("failed to cleanup old entries", zap.Error(err))
		return
	}

	if deleted > 0 {
		p.logger.Info("cleaned up old outbox entries",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
}
