package handler

import (
	"time"

	"github.com/brokerhub/backend/internal/application/event"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OutboxHandler exposes the admin endpoints for the event outbox: dead
// letter inspection, manual requeue, and delivery stats.
type OutboxHandler struct {
	BaseHandler
	outboxService *event.OutboxService
}

func NewOutboxHandler(outboxService *event.OutboxService) *OutboxHandler {
	return &OutboxHandler{
		outboxService: outboxService,
	}
}

// OutboxEntryResponse is the API shape of a single outbox entry.
type OutboxEntryResponse struct {
	ID            string  `json:"id"`
	TenantID      string  `json:"tenant_id"`
	EventID       string  `json:"event_id"`
	EventType     string  `json:"event_type"`
	AggregateID   string  `json:"aggregate_id"`
	AggregateType string  `json:"aggregate_type"`
	Status        string  `json:"status"`
	RetryCount    int     `json:"retry_count"`
	MaxRetries    int     `json:"max_retries"`
	LastError     string  `json:"last_error,omitempty"`
	NextRetryAt   *string `json:"next_retry_at,omitempty"`
	ProcessedAt   *string `json:"processed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// OutboxListResponse is a page of outbox entries.
type OutboxListResponse struct {
	Entries    []OutboxEntryResponse `json:"entries"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// OutboxStatsResponse counts entries per delivery status.
type OutboxStatsResponse struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Sent       int64 `json:"sent"`
	Failed     int64 `json:"failed"`
	Dead       int64 `json:"dead"`
	Total      int64 `json:"total"`
}

// RetryAllResponse reports how many dead entries a sweep requeued.
type RetryAllResponse struct {
	Count int64 `json:"count"`
}

// GetDeadLetterEntries godoc
// @ID           getOutboxDeadLetterEntries
// @Summary      List dead letter entries
// @Description  Page through events that exhausted their delivery retries
// @Tags         outbox
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} APIResponse[OutboxListResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /system/outbox/dead [get]
func (h *OutboxHandler) GetDeadLetterEntries(c *gin.Context) {
	var filter event.OutboxFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.outboxService.GetDeadLetterEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newOutboxListResponse(result))
}

// GetEntry godoc
// @ID           getOutboxEntry
// @Summary      Get an outbox entry
// @Description  Fetch one outbox entry by ID, whatever its status
// @Tags         outbox
// @Produce      json
// @Param        id path string true "Outbox Entry ID" format(uuid)
// @Success      200 {object} APIResponse[OutboxEntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /system/outbox/{id} [get]
func (h *OutboxHandler) GetEntry(c *gin.Context) {
	id, ok := h.entryID(c)
	if !ok {
		return
	}

	entry, err := h.outboxService.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newOutboxEntryResponse(entry))
}

// RetryDeadEntry godoc
// @ID           retryDeadEntryOutbox
// @Summary      Retry a dead letter entry
// @Description  Requeue one dead entry with a fresh retry budget
// @Tags         outbox
// @Accept       json
// @Produce      json
// @Param        id path string true "Outbox Entry ID" format(uuid)
// @Success      200 {object} APIResponse[OutboxEntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /system/outbox/{id}/retry [post]
func (h *OutboxHandler) RetryDeadEntry(c *gin.Context) {
	id, ok := h.entryID(c)
	if !ok {
		return
	}

	entry, err := h.outboxService.RetryDeadEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newOutboxEntryResponse(entry))
}

// RetryAllDeadEntries godoc
// @ID           retryAllDeadEntriesOutbox
// @Summary      Retry all dead letter entries
// @Description  Requeue every dead entry and report how many were reset
// @Tags         outbox
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[RetryAllResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /system/outbox/dead/retry-all [post]
func (h *OutboxHandler) RetryAllDeadEntries(c *gin.Context) {
	count, err := h.outboxService.RetryAllDeadEntries(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, RetryAllResponse{Count: count})
}

// GetStats godoc
// @ID           getOutboxStats
// @Summary      Get outbox statistics
// @Description  Count outbox entries grouped by delivery status
// @Tags         outbox
// @Produce      json
// @Success      200 {object} APIResponse[OutboxStatsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /system/outbox/stats [get]
func (h *OutboxHandler) GetStats(c *gin.Context) {
	stats, err := h.outboxService.GetStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, OutboxStatsResponse{
		Pending:    stats.Pending,
		Processing: stats.Processing,
		Sent:       stats.Sent,
		Failed:     stats.Failed,
		Dead:       stats.Dead,
		Total:      stats.Total,
	})
}

func (h *OutboxHandler) entryID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return uuid.Nil, false
	}
	return id, true
}

func newOutboxEntryResponse(dto *event.OutboxEntryDTO) OutboxEntryResponse {
	resp := OutboxEntryResponse{
		ID:            dto.ID.String(),
		TenantID:      dto.TenantID.String(),
		EventID:       dto.EventID.String(),
		EventType:     dto.EventType,
		AggregateID:   dto.AggregateID.String(),
		AggregateType: dto.AggregateType,
		Status:        dto.Status,
		RetryCount:    dto.RetryCount,
		MaxRetries:    dto.MaxRetries,
		LastError:     dto.LastError,
		CreatedAt:     dto.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     dto.UpdatedAt.Format(time.RFC3339),
	}
	resp.NextRetryAt = formatOptionalTime(dto.NextRetryAt)
	resp.ProcessedAt = formatOptionalTime(dto.ProcessedAt)
	return resp
}

func newOutboxListResponse(result *event.OutboxListResult) OutboxListResponse {
	entries := make([]OutboxEntryResponse, len(result.Entries))
	for i := range result.Entries {
		entries[i] = newOutboxEntryResponse(&result.Entries[i])
	}
	return OutboxListResponse{
		Entries:    entries,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
