package handler

import (
	"time"

	partnerapp "github.com/brokerhub/backend/internal/application/partner"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/partner"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LeadHandler handles lead pipeline API endpoints
type LeadHandler struct {
	BaseHandler
	leadService *partnerapp.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *partnerapp.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// CreateLeadRequest represents a request to create a lead
// @Description Request body for recording a new prospect
type CreateLeadRequest struct {
	Source          string   `json:"source" binding:"max=100" example:"referral"`
	ContactName     string   `json:"contact_name" binding:"required,max=200" example:"Sam Carter"`
	ContactEmail    string   `json:"contact_email" binding:"required,email,max=320" example:"sam@carterhaulage.co.uk"`
	ContactPhone    string   `json:"contact_phone" binding:"max=50"`
	CompanyName     string   `json:"company_name" binding:"max=200" example:"Carter Haulage Ltd"`
	RequestedAmount *float64 `json:"requested_amount" binding:"omitempty,gt=0" example:"50000"`
	Notes           string   `json:"notes" binding:"max=2000"`
}

// UpdateLeadRequest represents a request to update a lead
// @Description Request body for updating lead details; omitted fields are unchanged
type UpdateLeadRequest struct {
	ContactPhone    *string  `json:"contact_phone" binding:"omitempty,max=50"`
	CompanyName     *string  `json:"company_name" binding:"omitempty,max=200"`
	Notes           *string  `json:"notes" binding:"omitempty,max=2000"`
	RequestedAmount *float64 `json:"requested_amount" binding:"omitempty,gt=0"`
}

// DisqualifyLeadRequest carries the reason a lead was closed
// @Description Request body for disqualifying a lead
type DisqualifyLeadRequest struct {
	Reason string `json:"reason" binding:"required,max=500" example:"Trading under six months"`
}

// ConvertLeadRequest represents a request to convert a qualified lead
// @Description Request body for converting a lead into a client, company and draft application
type ConvertLeadRequest struct {
	Amount     *float64 `json:"amount" binding:"omitempty,gt=0" example:"50000"`
	Purpose    string   `json:"purpose" binding:"omitempty,oneof=working_capital expansion equipment refinance property other" example:"working_capital"`
	TermMonths int      `json:"term_months" binding:"omitempty,gte=1,lte=120" example:"12"`
}

// ConvertLeadResponse carries the entities created from a converted lead
// @Description Conversion result; the invite token is delivered out of band in production
type ConvertLeadResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	CompanyID       uuid.UUID `json:"company_id"`
	ApplicationID   uuid.UUID `json:"application_id"`
	InviteToken     string    `json:"invite_token"`
	InviteExpiresAt time.Time `json:"invite_expires_at"`
}

// LeadListFilter represents query parameters for listing leads
type LeadListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=new contacted qualified converted disqualified"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func toMoneyPtr(amount *float64) *valueobject.Money {
	if amount == nil {
		return nil
	}
	money := valueobject.NewMoneyGBP(toDecimal(*amount))
	return &money
}

// Create godoc
// @ID           createLead
// @Summary      Create a lead
// @Description  Record a new prospect in the lead pipeline
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        request body CreateLeadRequest true "Lead creation request"
// @Success      201 {object} APIResponse[partnerapp.LeadDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
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

	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.leadService.CreateLead(c.Request.Context(), partnerapp.CreateLeadInput{
		TenantID:        tenantID,
		Actor:           partnerapp.Actor{UserID: userID, Role: role},
		Source:          req.Source,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		CompanyName:     req.CompanyName,
		RequestedAmount: toMoneyPtr(req.RequestedAmount),
		Notes:           req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Update godoc
// @ID           updateLead
// @Summary      Update a lead
// @Description  Update lead contact and request details
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id path string true "Lead ID" format(uuid)
// @Param        request body UpdateLeadRequest true "Lead update request"
// @Success      200 {object} APIResponse[partnerapp.LeadDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
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

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.leadService.UpdateLead(c.Request.Context(), partnerapp.UpdateLeadInput{
		TenantID:        tenantID,
		Actor:           partnerapp.Actor{UserID: userID, Role: role},
		LeadID:          leadID,
		ContactPhone:    req.ContactPhone,
		CompanyName:     req.CompanyName,
		Notes:           req.Notes,
		RequestedAmount: toMoneyPtr(req.RequestedAmount),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @ID           listLeads
// @Summary      List leads
// @Description  List leads visible to the caller, optionally filtered by status
// @Tags         leads
// @Produce      json
// @Param        status query string false "Filter by status" Enums(new, contacted, qualified, converted, disqualified)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]partnerapp.LeadDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
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

	var filter LeadListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := partnerapp.ListLeadsInput{
		TenantID: tenantID,
		Actor:    partnerapp.Actor{UserID: userID, Role: role},
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Status != "" {
		status := partner.LeadStatus(filter.Status)
		input.Status = &status
	}

	result, err := h.leadService.ListLeads(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Leads, result.Total, result.Page, result.PageSize)
}

// MarkContacted godoc
// @ID           markLeadContacted
// @Summary      Mark a lead contacted
// @Description  Move a new lead to the contacted stage
// @Tags         leads
// @Produce      json
// @Param        id path string true "Lead ID" format(uuid)
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{id}/contacted [post]
func (h *LeadHandler) MarkContacted(c *gin.Context) {
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

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	if err := h.leadService.MarkLeadContacted(c.Request.Context(), tenantID, partnerapp.Actor{UserID: userID, Role: role}, leadID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Lead marked as contacted"})
}

// Qualify godoc
// @ID           qualifyLead
// @Summary      Qualify a lead
// @Description  Mark a lead as qualified and ready for conversion
// @Tags         leads
// @Produce      json
// @Param        id path string true "Lead ID" format(uuid)
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{id}/qualify [post]
func (h *LeadHandler) Qualify(c *gin.Context) {
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

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	if err := h.leadService.QualifyLead(c.Request.Context(), tenantID, partnerapp.Actor{UserID: userID, Role: role}, leadID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Lead qualified"})
}

// Disqualify godoc
// @ID           disqualifyLead
// @Summary      Disqualify a lead
// @Description  Close a lead with a reason
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id path string true "Lead ID" format(uuid)
// @Param        request body DisqualifyLeadRequest true "Disqualification request"
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{id}/disqualify [post]
func (h *LeadHandler) Disqualify(c *gin.Context) {
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

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	var req DisqualifyLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.leadService.DisqualifyLead(c.Request.Context(), tenantID, partnerapp.Actor{UserID: userID, Role: role}, leadID, req.Reason); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Lead disqualified"})
}

// Convert godoc
// @ID           convertLead
// @Summary      Convert a lead
// @Description  Convert a qualified lead into an invited client, a company and a draft application
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        id path string true "Lead ID" format(uuid)
// @Param        request body ConvertLeadRequest true "Conversion request"
// @Success      201 {object} APIResponse[ConvertLeadResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{id}/convert [post]
func (h *LeadHandler) Convert(c *gin.Context) {
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

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	var req ConvertLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.leadService.ConvertLead(c.Request.Context(), partnerapp.ConvertLeadInput{
		TenantID:   tenantID,
		Actor:      partnerapp.Actor{UserID: userID, Role: role},
		LeadID:     leadID,
		Amount:     toMoneyPtr(req.Amount),
		Purpose:    funding.Purpose(req.Purpose),
		TermMonths: req.TermMonths,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ConvertLeadResponse{
		UserID:          result.UserID,
		CompanyID:       result.CompanyID,
		ApplicationID:   result.ApplicationID,
		InviteToken:     result.InviteToken,
		InviteExpiresAt: result.InviteExpiresAt,
	})
}
