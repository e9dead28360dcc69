package handler

import (
	partnerapp "github.com/brokerhub/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PartnerHandler handles partner assignment API endpoints
type PartnerHandler struct {
	BaseHandler
	partnerService *partnerapp.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService *partnerapp.PartnerService) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
	}
}

// AssignPartnerRequest represents a request to assign a partner to a company
// @Description Request body for granting a partner access to a company
type AssignPartnerRequest struct {
	PartnerID string `json:"partner_id" binding:"required,uuid"`
	CompanyID string `json:"company_id" binding:"required,uuid"`
}

// Assign godoc
// @ID           assignPartner
// @Summary      Assign a partner to a company
// @Description  Grant a partner visibility over a company and its applications
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body AssignPartnerRequest true "Assignment request"
// @Success      201 {object} APIResponse[partnerapp.AssignmentDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/assignments [post]
func (h *PartnerHandler) Assign(c *gin.Context) {
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

	var req AssignPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	partnerID, err := uuid.Parse(req.PartnerID)
	if err != nil {
		h.BadRequest(c, "Invalid partner ID format")
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		h.BadRequest(c, "Invalid company ID format")
		return
	}

	result, err := h.partnerService.AssignPartner(c.Request.Context(), partnerapp.AssignPartnerInput{
		TenantID:  tenantID,
		Actor:     partnerapp.Actor{UserID: userID, Role: role},
		PartnerID: partnerID,
		CompanyID: companyID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Revoke godoc
// @ID           revokeAssignment
// @Summary      Revoke a partner assignment
// @Description  Revoke a partner's access to a company; history is retained
// @Tags         partners
// @Produce      json
// @Param        id path string true "Assignment ID" format(uuid)
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/assignments/{id} [delete]
func (h *PartnerHandler) Revoke(c *gin.Context) {
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

	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID format")
		return
	}

	if err := h.partnerService.RevokeAssignment(c.Request.Context(), tenantID, partnerapp.Actor{UserID: userID, Role: role}, assignmentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Assignment revoked"})
}

// ListForPartner godoc
// @ID           listPartnerAssignments
// @Summary      List a partner's assignments
// @Description  List active company assignments for a partner
// @Tags         partners
// @Produce      json
// @Param        id path string true "Partner user ID" format(uuid)
// @Success      200 {object} APIResponse[[]partnerapp.AssignmentDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partners/{id}/assignments [get]
func (h *PartnerHandler) ListForPartner(c *gin.Context) {
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

	partnerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid partner ID format")
		return
	}

	results, err := h.partnerService.ListAssignmentsForPartner(c.Request.Context(), tenantID, partnerapp.Actor{UserID: userID, Role: role}, partnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// ListForCompany godoc
// @ID           listCompanyAssignments
// @Summary      List a company's assignments
// @Description  List partner assignments for a company, including revoked ones
// @Tags         partners
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} APIResponse[[]partnerapp.AssignmentDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id}/assignments [get]
func (h *PartnerHandler) ListForCompany(c *gin.Context) {
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

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID format")
		return
	}

	results, err := h.partnerService.ListAssignmentsForCompany(c.Request.Context(), tenantID, partnerapp.Actor{UserID: userID, Role: role}, companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}
