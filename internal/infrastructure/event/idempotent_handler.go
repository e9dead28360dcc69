package event

import (
	"context"
	"sync/atomic"

	"github.com/brokerhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotencyMetrics counts first-time, duplicate and failed deliveries.
type IdempotencyMetrics struct {
	EventsProcessed atomic.Int64
	EventsDuplicate atomic.Int64
	EventsFailed    atomic.Int64
}

// Stats snapshots the counters.
func (m *IdempotencyMetrics) Stats() IdempotencyStats {
	return IdempotencyStats{
		EventsProcessed: m.EventsProcessed.Load(),
		EventsDuplicate: m.EventsDuplicate.Load(),
		EventsFailed:    m.EventsFailed.Load(),
	}
}

type IdempotencyStats struct {
	EventsProcessed int64 `json:"events_processed"`
	EventsDuplicate int64 `json:"events_duplicate"`
	EventsFailed    int64 `json:"events_failed"`
}

// IdempotentHandler decorates an EventHandler with duplicate suppression.
// The outbox retries deliveries, so a handler that sends a commission
// notification or books a ledger entry must see each event exactly once.
type IdempotentHandler struct {
	handler shared.EventHandler
	store   shared.IdempotencyStore
	config  shared.IdempotencyConfig
	logger  *zap.Logger
	metrics *IdempotencyMetrics
}

type IdempotentHandlerOption func(*IdempotentHandler)

func WithIdempotencyConfig(config shared.IdempotencyConfig) IdempotentHandlerOption {
	return func(h *IdempotentHandler) {
		h.config = config
	}
}

func WithIdempotencyMetrics(metrics *IdempotencyMetrics) IdempotentHandlerOption {
	return func(h *IdempotentHandler) {
		h.metrics = metrics
	}
}

func NewIdempotentHandler(
	handler shared.EventHandler,
	store shared.IdempotencyStore,
	logger *zap.Logger,
	opts ...IdempotentHandlerOption,
) *IdempotentHandler {
	h := &IdempotentHandler{
		handler: handler,
		store:   store,
		config:  shared.DefaultIdempotencyConfig(),
		logger:  logger,
		metrics: &IdempotencyMetrics{},
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle marks the event ID in the store before delegating. A store failure
// degrades to processing anyway: a duplicate side effect is preferable to a
// silently dropped event.
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !h.config.Enabled {
		return h.handler.Handle(ctx, event)
	}

	eventID := event.EventID().String()

	isNew, err := h.store.MarkProcessed(ctx, eventID, h.config.TTL)
	if err != nil {
		h.logger.Warn("failed to check idempotency, processing anyway",
			zap.String("event_id", eventID),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	} else if !isNew {
		h.metrics.EventsDuplicate.Add(1)
		h.logger.Debug("duplicate event detected, skipping",
			zap.String("event_id", eventID),
			zap.String("event_type", event.EventType()),
		)
		return nil
	}

	if err := h.handler.Handle(ctx, event); err != nil {
		h.metrics.EventsFailed.Add(1)
		h.logger.Error("event handler failed",
			zap.String("event_id", eventID),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		// The idempotency key is left in place on failure. It expires after
		// the TTL, which spaces out retries of a persistently failing event.
		return err
	}

	h.metrics.EventsProcessed.Add(1)
	h.logger.Debug("event processed successfully",
		zap.String("event_id", eventID),
		zap.String("event_type", event.EventType()),
	)

	return nil
}

func (h *IdempotentHandler) GetMetrics() *IdempotencyMetrics {
	return h.metrics
}

// GetWrappedHandler exposes the decorated handler.
func (h *IdempotentHandler) GetWrappedHandler() shared.EventHandler {
	return h.handler
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)

// WrapHandlersWithIdempotency decorates a batch of handlers in one call.
func WrapHandlersWithIdempotency(
	handlers []shared.EventHandler,
	store shared.IdempotencyStore,
	logger *zap.Logger,
	opts ...IdempotentHandlerOption,
) []shared.EventHandler {
	wrapped := make([]shared.EventHandler, len(handlers))
	for i, h := range handlers {
		wrapped[i] = NewIdempotentHandler(h, store, logger, opts...)
	}
	return wrapped
}

// GlobalIdempotencyMetrics aggregates counters across every idempotent
// handler in the process. Handlers opt in via WithIdempotencyMetrics.
var GlobalIdempotencyMetrics = &IdempotencyMetrics{}
