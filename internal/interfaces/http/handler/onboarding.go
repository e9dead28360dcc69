package handler

import (
	"time"

	fundingapp "github.com/brokerhub/backend/internal/application/funding"
	"github.com/brokerhub/backend/internal/domain/funding"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OnboardingHandler handles onboarding wizard API endpoints
type OnboardingHandler struct {
	BaseHandler
	onboardingService *fundingapp.OnboardingService
}

// NewOnboardingHandler creates a new OnboardingHandler
func NewOnboardingHandler(onboardingService *fundingapp.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: onboardingService,
	}
}

// PersonalDetailsRequest is the payload of the first wizard step
// @Description Request body for submitting personal details
type PersonalDetailsRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100" example:"Jane"`
	LastName    string `json:"last_name" binding:"required,max=100" example:"Doe"`
	Phone       string `json:"phone" binding:"max=50" example:"+44 7700 900123"`
	IsHomeowner bool   `json:"is_homeowner"`
}

// CompanyDetailsRequest is the payload of the second wizard step
// @Description Request body for submitting company details
type CompanyDetailsRequest struct {
	LegalName          string          `json:"legal_name" binding:"required,min=1,max=200" example:"Acme Trading Ltd"`
	TradingName        string          `json:"trading_name" binding:"max=200"`
	Type               string          `json:"type" binding:"required,oneof=ltd llp plc sole_trader partnership" example:"ltd"`
	RegistrationNumber string          `json:"registration_number" binding:"max=20"`
	SICCode            string          `json:"sic_code" binding:"max=10"`
	IncorporatedOn     *time.Time      `json:"incorporated_on"`
	Address            *AddressRequest `json:"address"`
	MonthlyRevenue     float64         `json:"monthly_revenue" binding:"gte=0" example:"35000"`
}

// FundingDetailsRequest is the payload of the third wizard step
// @Description Request body for submitting funding requirements
type FundingDetailsRequest struct {
	Amount     float64 `json:"amount" binding:"required,gt=0" example:"50000"`
	Purpose    string  `json:"purpose" binding:"required,oneof=working_capital expansion equipment refinance property other" example:"working_capital"`
	TermMonths int     `json:"term_months" binding:"required,gte=1,lte=120" example:"12"`
}

// SubmitDocumentsRequest is the payload of the fourth wizard step
// @Description Request body for attaching uploaded documents to the wizard
type SubmitDocumentsRequest struct {
	DocumentIDs []string `json:"document_ids" binding:"required,min=1,dive,uuid"`
}

// Get godoc
// @ID           getOnboarding
// @Summary      Get onboarding state
// @Description  Get the wizard state for a user; clients see only their own
// @Tags         onboarding
// @Produce      json
// @Param        user_id query string false "User ID, defaults to the caller" format(uuid)
// @Success      200 {object} APIResponse[fundingapp.OnboardingDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /onboarding [get]
func (h *OnboardingHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	actorID, role, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	targetID := actorID
	if raw := c.Query("user_id"); raw != "" {
		targetID, err = uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid user ID format")
			return
		}
	}

	result, err := h.onboardingService.GetOnboarding(c.Request.Context(), tenantID, fundingapp.Actor{UserID: actorID, Role: role}, targetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SubmitPersonal godoc
// @ID           submitPersonalDetails
// @Summary      Submit personal details
// @Description  Complete the first wizard step
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request body PersonalDetailsRequest true "Personal details"
// @Success      200 {object} APIResponse[fundingapp.OnboardingDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /onboarding/personal [post]
func (h *OnboardingHandler) SubmitPersonal(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	actorID, role, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PersonalDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.onboardingService.SubmitPersonalDetails(c.Request.Context(), tenantID, fundingapp.Actor{UserID: actorID, Role: role}, funding.PersonalDetails{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		IsHomeowner: req.IsHomeowner,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SubmitCompany godoc
// @ID           submitCompanyDetails
// @Summary      Submit company details
// @Description  Complete the second wizard step
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request body CompanyDetailsRequest true "Company details"
// @Success      200 {object} APIResponse[fundingapp.OnboardingDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /onboarding/company [post]
func (h *OnboardingHandler) SubmitCompany(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	actorID, role, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CompanyDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	details := funding.CompanyDetails{
		LegalName:          req.LegalName,
		TradingName:        req.TradingName,
		Type:               req.Type,
		RegistrationNumber: req.RegistrationNumber,
		SICCode:            req.SICCode,
		IncorporatedOn:     req.IncorporatedOn,
		MonthlyRevenue:     valueobject.NewMoneyGBP(toDecimal(req.MonthlyRevenue)),
	}
	if req.Address != nil {
		address, err := toAddress(req.Address)
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		details.Address = address
	}

	result, err := h.onboardingService.SubmitCompanyDetails(c.Request.Context(), tenantID, fundingapp.Actor{UserID: actorID, Role: role}, details)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SubmitFunding godoc
// @ID           submitFundingDetails
// @Summary      Submit funding requirements
// @Description  Complete the third wizard step
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request body FundingDetailsRequest true "Funding requirements"
// @Success      200 {object} APIResponse[fundingapp.OnboardingDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /onboarding/funding [post]
func (h *OnboardingHandler) SubmitFunding(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	actorID, role, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req FundingDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.onboardingService.SubmitFundingDetails(c.Request.Context(), tenantID, fundingapp.Actor{UserID: actorID, Role: role}, funding.FundingDetails{
		Amount:     valueobject.NewMoneyGBP(toDecimal(req.Amount)),
		Purpose:    funding.Purpose(req.Purpose),
		TermMonths: req.TermMonths,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// SubmitDocuments godoc
// @ID           submitOnboardingDocuments
// @Summary      Attach documents
// @Description  Complete the fourth wizard step by attaching uploaded documents
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request body SubmitDocumentsRequest true "Uploaded document IDs"
// @Success      200 {object} APIResponse[fundingapp.OnboardingDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /onboarding/documents [post]
func (h *OnboardingHandler) SubmitDocuments(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	actorID, role, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	documentIDs := make([]uuid.UUID, len(req.DocumentIDs))
	for i, raw := range req.DocumentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid document ID format")
			return
		}
		documentIDs[i] = id
	}

	result, err := h.onboardingService.SubmitDocuments(c.Request.Context(), tenantID, fundingapp.Actor{UserID: actorID, Role: role}, documentIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Complete godoc
// @ID           completeOnboarding
// @Summary      Complete onboarding
// @Description  Finish the wizard, creating the company and a draft application
// @Tags         onboarding
// @Produce      json
// @Success      201 {object} APIResponse[fundingapp.CompleteOnboardingResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /onboarding/complete [post]
func (h *OnboardingHandler) Complete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	actorID, role, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.onboardingService.CompleteOnboarding(c.Request.Context(), tenantID, fundingapp.Actor{UserID: actorID, Role: role})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
