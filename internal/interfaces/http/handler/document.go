package handler

import (
	documentapp "github.com/brokerhub/backend/internal/application/document"
	"github.com/brokerhub/backend/internal/domain/document"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles document upload and download API endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *documentapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *documentapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// InitiateUploadRequest represents a request to start a document upload
// @Description Request body for requesting a presigned upload URL
type InitiateUploadRequest struct {
	Kind          string `json:"kind" binding:"required,oneof=bank_statement id_document proof_of_address filed_accounts vat_return other" example:"bank_statement"`
	Filename      string `json:"filename" binding:"required,max=255" example:"statements-q2.pdf"`
	ContentType   string `json:"content_type" binding:"required,max=100" example:"application/pdf"`
	Size          int64  `json:"size" binding:"required,gt=0" example:"482133"`
	ApplicationID string `json:"application_id" binding:"omitempty,uuid"`
	CompanyID     string `json:"company_id" binding:"omitempty,uuid"`
}

// DocumentListFilter represents query parameters for listing documents
type DocumentListFilter struct {
	ApplicationID string `form:"application_id" binding:"omitempty,uuid"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

// InitiateUpload godoc
// @ID           initiateDocumentUpload
// @Summary      Initiate a document upload
// @Description  Register a pending document and return a presigned PUT URL
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        request body InitiateUploadRequest true "Upload request"
// @Success      201 {object} APIResponse[documentapp.InitiateUploadResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents [post]
func (h *DocumentHandler) InitiateUpload(c *gin.Context) {
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

	var req InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := documentapp.InitiateUploadInput{
		TenantID:    tenantID,
		Actor:       documentapp.Actor{UserID: userID, Role: role},
		Kind:        document.DocumentKind(req.Kind),
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Size:        req.Size,
	}
	if req.ApplicationID != "" {
		applicationID, err := uuid.Parse(req.ApplicationID)
		if err != nil {
			h.BadRequest(c, "Invalid application ID format")
			return
		}
		input.ApplicationID = &applicationID
	}
	if req.CompanyID != "" {
		companyID, err := uuid.Parse(req.CompanyID)
		if err != nil {
			h.BadRequest(c, "Invalid company ID format")
			return
		}
		input.CompanyID = &companyID
	}

	result, err := h.documentService.InitiateUpload(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ConfirmUpload godoc
// @ID           confirmDocumentUpload
// @Summary      Confirm a document upload
// @Description  Mark a pending document as uploaded after the client finishes the PUT
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[documentapp.DocumentDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents/{id}/confirm [post]
func (h *DocumentHandler) ConfirmUpload(c *gin.Context) {
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

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	result, err := h.documentService.ConfirmUpload(c.Request.Context(), tenantID, documentapp.Actor{UserID: userID, Role: role}, documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Download godoc
// @ID           getDocumentDownloadURL
// @Summary      Get a download URL
// @Description  Return a short-lived presigned GET URL for an uploaded document
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[documentapp.DownloadURLResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
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

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	result, err := h.documentService.GetDownloadURL(c.Request.Context(), tenantID, documentapp.Actor{UserID: userID, Role: role}, documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @ID           listDocuments
// @Summary      List documents
// @Description  List documents visible to the caller, optionally scoped to an application
// @Tags         documents
// @Produce      json
// @Param        application_id query string false "Filter by application" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]documentapp.DocumentDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
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

	var filter DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := documentapp.ListDocumentsInput{
		TenantID: tenantID,
		Actor:    documentapp.Actor{UserID: userID, Role: role},
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.ApplicationID != "" {
		applicationID, err := uuid.Parse(filter.ApplicationID)
		if err != nil {
			h.BadRequest(c, "Invalid application ID format")
			return
		}
		input.ApplicationID = &applicationID
	}

	results, err := h.documentService.ListDocuments(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// Delete godoc
// @ID           deleteDocument
// @Summary      Delete a document
// @Description  Soft delete a document; the stored object is removed asynchronously
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
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

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), tenantID, documentapp.Actor{UserID: userID, Role: role}, documentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
