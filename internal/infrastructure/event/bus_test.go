package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// leadStageEvent stands in for the partner domain's lead lifecycle events.
type leadStageEvent struct {
	shared.BaseDomainEvent
	Stage string `json:"stage"`
}

func newLeadStageEvent(eventType string, tenantID uuid.UUID) *leadStageEvent {
	return &leadStageEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Lead", uuid.New(), tenantID),
		Stage:           "qualified",
	}
}

// recordingHandler remembers every event it receives.
type recordingHandler struct {
	eventTypes []string
	seen       []shared.DomainEvent
	err        error
	mu         sync.Mutex
}

func newRecordingHandler(eventTypes ...string) *recordingHandler {
	return &recordingHandler{eventTypes: eventTypes}
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *recordingHandler) failWith(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

func (h *recordingHandler) seenEvents() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.seen...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	t.Run("delivers to the subscribed handler", func(t *testing.T) {
		handler := newRecordingHandler("LeadQualified")
		bus.Subscribe(handler, "LeadQualified")

		event := newLeadStageEvent("LeadQualified", uuid.New())
		require.NoError(t, bus.Publish(context.Background(), event))

		require.Len(t, handler.seenEvents(), 1)
		assert.Equal(t, event, handler.seenEvents()[0])
	})

	t.Run("delivers a batch in order", func(t *testing.T) {
		handler := newRecordingHandler("LeadConverted")
		bus.Subscribe(handler, "LeadConverted")

		first := newLeadStageEvent("LeadConverted", uuid.New())
		second := newLeadStageEvent("LeadConverted", uuid.New())
		require.NoError(t, bus.Publish(context.Background(), first, second))

		assert.Len(t, handler.seenEvents(), 2)
	})

	t.Run("fans out to every handler for the type", func(t *testing.T) {
		notifier := newRecordingHandler("ApplicationSubmitted")
		auditor := newRecordingHandler("ApplicationSubmitted")
		bus.Subscribe(notifier, "ApplicationSubmitted")
		bus.Subscribe(auditor, "ApplicationSubmitted")

		event := newLeadStageEvent("ApplicationSubmitted", uuid.New())
		require.NoError(t, bus.Publish(context.Background(), event))

		assert.Len(t, notifier.seenEvents(), 1)
		assert.Len(t, auditor.seenEvents(), 1)
	})
}

func TestInMemoryEventBus_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	// A handler with no declared types receives everything.
	audit := newRecordingHandler()
	bus.Subscribe(audit)

	event := newLeadStageEvent("DocumentUploaded", uuid.New())
	require.NoError(t, bus.Publish(context.Background(), event))

	assert.Len(t, audit.seenEvents(), 1)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopFanout(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	broken := newRecordingHandler("LeadConverted")
	broken.failWith(errors.New("notification service down"))
	healthy := newRecordingHandler("LeadConverted")
	bus.Subscribe(broken, "LeadConverted")
	bus.Subscribe(healthy, "LeadConverted")

	event := newLeadStageEvent("LeadConverted", uuid.New())
	require.NoError(t, bus.Publish(context.Background(), event))

	assert.Len(t, broken.seenEvents(), 1)
	assert.Len(t, healthy.seenEvents(), 1)
}

func TestInMemoryEventBus_NoMatchingHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newRecordingHandler("DocumentUploaded")
	bus.Subscribe(handler, "DocumentUploaded")

	event := newLeadStageEvent("LeadQualified", uuid.New())
	require.NoError(t, bus.Publish(context.Background(), event))

	assert.Empty(t, handler.seenEvents())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newRecordingHandler("LeadQualified")
	bus.Subscribe(handler, "LeadQualified")

	_ = bus.Publish(context.Background(), newLeadStageEvent("LeadQualified", uuid.New()))
	require.Len(t, handler.seenEvents(), 1)

	bus.Unsubscribe(handler)

	_ = bus.Publish(context.Background(), newLeadStageEvent("LeadQualified", uuid.New()))
	assert.Len(t, handler.seenEvents(), 1)
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))

	handler := newRecordingHandler("LeadQualified")
	bus.Subscribe(handler, "LeadQualified")
	require.NoError(t, bus.Publish(ctx, newLeadStageEvent("LeadQualified", uuid.New())))
	assert.Len(t, handler.seenEvents(), 1)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, bus.Stop(stopCtx))
}
