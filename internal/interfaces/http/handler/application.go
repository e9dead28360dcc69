package handler

import (
	fundingapp "github.com/brokerhub/backend/internal/application/funding"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ApplicationHandler handles funding application API endpoints
type ApplicationHandler struct {
	BaseHandler
	applicationService *fundingapp.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(applicationService *fundingapp.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// CreateApplicationRequest represents a request to open a draft application
// @Description Request body for creating a funding application
type CreateApplicationRequest struct {
	CompanyID  string  `json:"company_id" binding:"required,uuid"`
	Amount     float64 `json:"amount" binding:"required,gt=0" example:"50000"`
	Purpose    string  `json:"purpose" binding:"required,oneof=working_capital expansion equipment refinance property other" example:"working_capital"`
	TermMonths int     `json:"term_months" binding:"required,gte=1,lte=120" example:"12"`
}

// UpdateDraftRequest represents a request to edit a draft application
// @Description Request body for updating a draft; omitted fields are unchanged
type UpdateDraftRequest struct {
	Amount     *float64 `json:"amount" binding:"omitempty,gt=0"`
	Purpose    *string  `json:"purpose" binding:"omitempty,oneof=working_capital expansion equipment refinance property other"`
	TermMonths *int     `json:"term_months" binding:"omitempty,gte=1,lte=120"`
}

// TransitionRequest represents a request to move an application between stages
// @Description Request body for a pipeline stage transition
type TransitionRequest struct {
	Target string `json:"target" binding:"required,oneof=submitted under_review with_lender offer_received funded declined withdrawn" example:"under_review"`
	Note   string `json:"note" binding:"max=500"`
}

// RecordOfferRequest represents a request to record a lender offer
// @Description Request body for recording an offer against an application
type RecordOfferRequest struct {
	LenderName string  `json:"lender_name" binding:"required,max=200" example:"Northbank Capital"`
	Amount     float64 `json:"amount" binding:"required,gt=0" example:"45000"`
	RatePct    float64 `json:"rate_pct" binding:"required,gt=0" example:"8.9"`
}

// WithdrawRequest represents a request to withdraw an application
// @Description Request body for withdrawing an application
type WithdrawRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// ApplicationListFilter represents query parameters for listing applications
type ApplicationListFilter struct {
	Stage    string `form:"stage" binding:"omitempty,oneof=draft submitted under_review with_lender offer_received funded declined withdrawn"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// Create godoc
// @ID           createApplication
// @Summary      Create an application
// @Description  Open a draft funding application for a company
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        request body CreateApplicationRequest true "Application creation request"
// @Success      201 {object} APIResponse[fundingapp.ApplicationDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /applications [post]
func (h *ApplicationHandler) Create(c *gin.Context) {
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

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		h.BadRequest(c, "Invalid company ID format")
		return
	}

	result, err := h.applicationService.CreateApplication(c.Request.Context(), fundingapp.CreateApplicationInput{
		TenantID:   tenantID,
		Actor:      fundingapp.Actor{UserID: userID, Role: role},
		CompanyID:  companyID,
		Amount:     valueobject.NewMoneyGBP(toDecimal(req.Amount)),
		Purpose:    funding.Purpose(req.Purpose),
		TermMonths: req.TermMonths,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get godoc
// @ID           getApplication
// @Summary      Get an application
// @Description  Get a single application visible to the caller
// @Tags         applications
// @Produce      json
// @Param        id path string true "Application ID" format(uuid)
// @Success      200 {object} APIResponse[fundingapp.ApplicationDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
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

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	result, err := h.applicationService.GetApplication(c.Request.Context(), tenantID, fundingapp.Actor{UserID: userID, Role: role}, applicationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @ID           listApplications
// @Summary      List applications
// @Description  List applications visible to the caller, optionally filtered by stage
// @Tags         applications
// @Produce      json
// @Param        stage query string false "Filter by stage" Enums(draft, submitted, under_review, with_lender, offer_received, funded, declined, withdrawn)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]fundingapp.ApplicationDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
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

	var filter ApplicationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := fundingapp.ListApplicationsInput{
		TenantID: tenantID,
		Actor:    fundingapp.Actor{UserID: userID, Role: role},
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Stage != "" {
		stage := funding.Stage(filter.Stage)
		input.Stage = &stage
	}

	result, err := h.applicationService.ListApplications(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Applications, result.Total, result.Page, result.PageSize)
}

// UpdateDraft godoc
// @ID           updateDraftApplication
// @Summary      Update a draft application
// @Description  Edit amount, purpose or term while the application is still a draft
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id path string true "Application ID" format(uuid)
// @Param        request body UpdateDraftRequest true "Draft update request"
// @Success      200 {object} APIResponse[fundingapp.ApplicationDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /applications/{id} [put]
func (h *ApplicationHandler) UpdateDraft(c *gin.Context) {
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

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := fundingapp.UpdateDraftInput{
		TenantID:      tenantID,
		Actor:         fundingapp.Actor{UserID: userID, Role: role},
		ApplicationID: applicationID,
		TermMonths:    req.TermMonths,
	}
	if req.Amount != nil {
		amount := valueobject.NewMoneyGBP(toDecimal(*req.Amount))
		input.Amount = &amount
	}
	if req.Purpose != nil {
		purpose := funding.Purpose(*req.Purpose)
		input.Purpose = &purpose
	}

	result, err := h.applicationService.UpdateDraft(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Submit godoc
// @ID           submitApplication
// @Summary      Submit an application
// @Description  Submit a draft into the brokerage pipeline
// @Tags         applications
// @Produce      json
// @Param        id path string true "Application ID" format(uuid)
// @Success      200 {object} APIResponse[fundingapp.ApplicationDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /applications/{id}/submit [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
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

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	result, err := h.applicationService.SubmitApplication(c.Request.Context(), tenantID, fundingapp.Actor{UserID: userID, Role: role}, applicationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Transition godoc
// @ID           transitionApplication
// @Summary      Transition an application
// @Description  Move an application to the next pipeline stage; declines require a note
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id path string true "Application ID" format(uuid)
// @Param        request body TransitionRequest true "Transition request"
// @Success      200 {object} APIResponse[fundingapp.ApplicationDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /applications/{id}/transition [post]
func (h *ApplicationHandler) Transition(c *gin.Context) {
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

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.applicationService.TransitionStage(c.Request.Context(), fundingapp.TransitionInput{
		TenantID:      tenantID,
		Actor:         fundingapp.Actor{UserID: userID, Role: role},
		ApplicationID: applicationID,
		Target:        funding.Stage(req.Target),
		Note:          req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordOffer godoc
// @ID           recordOffer
// @Summary      Record a lender offer
// @Description  Record an offer against an application and move it to offer received
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id path string true "Application ID" format(uuid)
// @Param        request body RecordOfferRequest true "Offer details"
// @Success      200 {object} APIResponse[fundingapp.ApplicationDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /applications/{id}/offer [post]
func (h *ApplicationHandler) RecordOffer(c *gin.Context) {
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

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	var req RecordOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.applicationService.RecordOffer(c.Request.Context(), fundingapp.RecordOfferInput{
		TenantID:      tenantID,
		Actor:         fundingapp.Actor{UserID: userID, Role: role},
		ApplicationID: applicationID,
		LenderName:    req.LenderName,
		Amount:        valueobject.NewMoneyGBP(toDecimal(req.Amount)),
		RatePct:       toDecimal(req.RatePct),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Withdraw godoc
// @ID           withdrawApplication
// @Summary      Withdraw an application
// @Description  Withdraw an application from any non-terminal stage
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id path string true "Application ID" format(uuid)
// @Param        request body WithdrawRequest false "Withdrawal note"
// @Success      200 {object} APIResponse[fundingapp.ApplicationDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /applications/{id}/withdraw [post]
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
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

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.applicationService.WithdrawApplication(c.Request.Context(), fundingapp.WithdrawInput{
		TenantID:      tenantID,
		Actor:         fundingapp.Actor{UserID: userID, Role: role},
		ApplicationID: applicationID,
		Note:          req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
