package handler

import (
	"io"
	"net/http"
	"sync"
	"time"

	partnerapp "github.com/brokerhub/backend/internal/application/partner"
	csvimport "github.com/brokerhub/backend/internal/infrastructure/import"
	"github.com/brokerhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImportFileSize = 10 * 1024 * 1024

// LeadImportHandler handles bulk lead import endpoints
type LeadImportHandler struct {
	BaseHandler
	importService *partnerapp.LeadImportService
	sessionStore  csvimport.SessionStore
	// validRows stores validated rows awaiting import
	validRowsStore     map[uuid.UUID][]*csvimport.Row
	validRowsStoreMu   sync.RWMutex
	validRowsCleanupCh chan struct{}
}

// NewLeadImportHandler creates a new LeadImportHandler
func NewLeadImportHandler(importService *partnerapp.LeadImportService) *LeadImportHandler {
	h := &LeadImportHandler{
		importService:      importService,
		sessionStore:       csvimport.NewInMemorySessionStore(15 * time.Minute),
		validRowsStore:     make(map[uuid.UUID][]*csvimport.Row),
		validRowsCleanupCh: make(chan struct{}),
	}

	go h.cleanupValidRowsStore()

	return h
}

// cleanupValidRowsStore drops valid rows whose session has expired
func (h *LeadImportHandler) cleanupValidRowsStore() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			h.validRowsStoreMu.Lock()
			for sessionID := range h.validRowsStore {
				session, _ := h.sessionStore.Get(sessionID)
				if session == nil {
					delete(h.validRowsStore, sessionID)
				}
			}
			h.validRowsStoreMu.Unlock()
		case <-h.validRowsCleanupCh:
			return
		}
	}
}

// Stop stops the background cleanup goroutine
func (h *LeadImportHandler) Stop() {
	close(h.validRowsCleanupCh)
}

// LeadImportRequest represents a request to import validated leads
type LeadImportRequest struct {
	ValidationID string `json:"validation_id" binding:"required"`
	ConflictMode string `json:"conflict_mode" binding:"required,oneof=skip update fail"`
}

// LeadValidationResponse represents the result of validating a lead CSV
// @Description Validation result for an uploaded lead CSV file
type LeadValidationResponse struct {
	ValidationID string               `json:"validation_id"`
	TotalRows    int                  `json:"total_rows"`
	ValidRows    int                  `json:"valid_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Errors       []csvimport.RowError `json:"errors,omitempty"`
	Preview      []map[string]any     `json:"preview,omitempty"`
	IsTruncated  bool                 `json:"is_truncated,omitempty"`
	TotalErrors  int                  `json:"total_errors,omitempty"`
}

// Validate godoc
// @ID           validateLeadImport
// @Summary      Validate a lead CSV file
// @Description  Validates an uploaded lead CSV without importing it
// @Tags         leads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV file to validate"
// @Success      200 {object} APIResponse[LeadValidationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      415 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads/import/validate [post]
func (h *LeadImportHandler) Validate(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImportFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeValidation, "file exceeds maximum size of 10MB")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "" && contentType != "text/csv" && contentType != "application/octet-stream" &&
		contentType != "text/plain" && contentType != "application/vnd.ms-excel" {
		h.Error(c, http.StatusUnsupportedMediaType, dto.ErrCodeValidation, "file must be a CSV file")
		return
	}

	session := csvimport.NewImportSession(tenantID, userID, csvimport.EntityLeads, header.Filename, header.Size)

	rules := h.importService.GetValidationRules()

	processor := csvimport.NewImportProcessor(
		csvimport.WithUniqueLookup(func(entityType, field, value string) (bool, error) {
			return h.importService.LookupUnique(ctx, tenantID, field, value)
		}),
	)

	result, err := processor.Validate(ctx, session, file, rules)
	if err != nil {
		switch err {
		case csvimport.ErrEmptyFile:
			h.BadRequest(c, "CSV file is empty")
		case csvimport.ErrInvalidEncoding:
			h.BadRequest(c, "CSV file has invalid encoding, must be UTF-8")
		case csvimport.ErrMissingHeader:
			h.BadRequest(c, "CSV file is missing header row")
		default:
			h.InternalError(c, "failed to validate file: "+err.Error())
		}
		return
	}

	// Re-read the file to collect the rows that passed validation
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.InternalError(c, "Failed to process file")
		return
	}
	if parser, err := csvimport.NewCSVParser(file); err == nil {
		if err := parser.ParseHeader(); err == nil {
			errorRows := make(map[int]bool)
			for _, e := range result.Errors {
				errorRows[e.Row] = true
			}

			var validRows []*csvimport.Row
			for {
				row, err := parser.ReadRow()
				if err == io.EOF {
					break
				}
				if err != nil || row.IsEmpty() {
					continue
				}
				if !errorRows[row.LineNumber] {
					validRows = append(validRows, row)
				}
			}

			if len(validRows) > 0 {
				h.validRowsStoreMu.Lock()
				h.validRowsStore[session.ID] = validRows
				h.validRowsStoreMu.Unlock()
			}
		}
	}

	if err := h.sessionStore.Save(session); err != nil {
		h.InternalError(c, "failed to save import session")
		return
	}

	h.Success(c, LeadValidationResponse{
		ValidationID: result.ValidationID,
		TotalRows:    result.TotalRows,
		ValidRows:    result.ValidRows,
		ErrorRows:    result.ErrorRows,
		Errors:       result.Errors,
		Preview:      result.Preview,
		IsTruncated:  result.IsTruncated,
		TotalErrors:  result.TotalErrors,
	})
}

// Import godoc
// @ID           importLeads
// @Summary      Import leads from a validated CSV
// @Description  Imports the rows that passed a previous validation run
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body LeadImportRequest true "Import request"
// @Success      200 {object} APIResponse[partnerapp.LeadImportResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads/import [post]
func (h *LeadImportHandler) Import(c *gin.Context) {
	ctx := c.Request.Context()

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, role, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req LeadImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	validationID, err := uuid.Parse(req.ValidationID)
	if err != nil {
		h.BadRequest(c, "Invalid validation_id")
		return
	}

	conflictMode := partnerapp.ConflictMode(req.ConflictMode)
	if !conflictMode.IsValid() {
		h.BadRequest(c, "Invalid conflict_mode, must be one of: skip, update, fail")
		return
	}

	session, err := h.sessionStore.Get(validationID)
	if err != nil {
		h.InternalError(c, "failed to retrieve session")
		return
	}
	if session == nil || session.TenantID != tenantID {
		h.NotFound(c, "Import session not found or expired")
		return
	}

	if session.State != csvimport.StateValidated {
		h.BadRequest(c, "Session must be validated before import. Current state: "+string(session.State))
		return
	}

	h.validRowsStoreMu.RLock()
	validRows := h.validRowsStore[validationID]
	h.validRowsStoreMu.RUnlock()

	if len(validRows) == 0 {
		h.BadRequest(c, "No valid rows found for import. Please re-validate the file.")
		return
	}

	actor := partnerapp.Actor{UserID: userID, Role: role}
	result, err := h.importService.Import(ctx, tenantID, actor, session, validRows, conflictMode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.validRowsStoreMu.Lock()
	delete(h.validRowsStore, validationID)
	h.validRowsStoreMu.Unlock()

	_ = h.sessionStore.Save(session)

	h.Success(c, result)
}
