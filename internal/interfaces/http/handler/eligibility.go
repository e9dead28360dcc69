package handler

import (
	fundingapp "github.com/brokerhub/backend/internal/application/funding"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EligibilityHandler handles lender panel and eligibility scoring endpoints
type EligibilityHandler struct {
	BaseHandler
	eligibilityService *fundingapp.EligibilityService
}

// NewEligibilityHandler creates a new EligibilityHandler
func NewEligibilityHandler(eligibilityService *fundingapp.EligibilityService) *EligibilityHandler {
	return &EligibilityHandler{
		eligibilityService: eligibilityService,
	}
}

// CreateLenderRequest represents a request to register a lender
// @Description Request body for adding a lender to the panel
type CreateLenderRequest struct {
	Name              string   `json:"name" binding:"required,max=200" example:"Northbank Capital"`
	MinAmount         float64  `json:"min_amount" binding:"gte=0" example:"5000"`
	MaxAmount         float64  `json:"max_amount" binding:"required,gt=0" example:"250000"`
	MinMonthsTrading  int      `json:"min_months_trading" binding:"gte=0" example:"12"`
	MinMonthlyRevenue float64  `json:"min_monthly_revenue" binding:"gte=0" example:"10000"`
	ExcludedSICs      []string `json:"excluded_sics" binding:"omitempty,dive,max=10"`
	RequiresHomeowner bool     `json:"requires_homeowner"`
}

// UpdateLenderRequest represents a request to update lender thresholds
// @Description Request body for updating a lender; omitted fields are unchanged
type UpdateLenderRequest struct {
	MinAmount         *float64 `json:"min_amount" binding:"omitempty,gte=0"`
	MaxAmount         *float64 `json:"max_amount" binding:"omitempty,gt=0"`
	MinMonthsTrading  *int     `json:"min_months_trading" binding:"omitempty,gte=0"`
	MinMonthlyRevenue *float64 `json:"min_monthly_revenue" binding:"omitempty,gte=0"`
	ExcludedSICs      []string `json:"excluded_sics" binding:"omitempty,dive,max=10"`
	RequiresHomeowner *bool    `json:"requires_homeowner"`
	Active            *bool    `json:"active"`
}

// Score godoc
// @ID           scoreApplication
// @Summary      Score an application
// @Description  Score an application against every active lender's thresholds
// @Tags         eligibility
// @Produce      json
// @Param        id path string true "Application ID" format(uuid)
// @Success      200 {object} APIResponse[fundingapp.EligibilityReport]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /applications/{id}/eligibility [get]
func (h *EligibilityHandler) Score(c *gin.Context) {
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

	report, err := h.eligibilityService.ScoreApplication(c.Request.Context(), tenantID, fundingapp.Actor{UserID: userID, Role: role}, applicationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// CreateLender godoc
// @ID           createLender
// @Summary      Register a lender
// @Description  Add a lender with its eligibility thresholds to the panel
// @Tags         lenders
// @Accept       json
// @Produce      json
// @Param        request body CreateLenderRequest true "Lender details"
// @Success      201 {object} APIResponse[fundingapp.LenderDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /lenders [post]
func (h *EligibilityHandler) CreateLender(c *gin.Context) {
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

	var req CreateLenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.eligibilityService.CreateLender(c.Request.Context(), fundingapp.CreateLenderInput{
		TenantID:          tenantID,
		Actor:             fundingapp.Actor{UserID: userID, Role: role},
		Name:              req.Name,
		MinAmount:         valueobject.NewMoneyGBP(toDecimal(req.MinAmount)),
		MaxAmount:         valueobject.NewMoneyGBP(toDecimal(req.MaxAmount)),
		MinMonthsTrading:  req.MinMonthsTrading,
		MinMonthlyRevenue: valueobject.NewMoneyGBP(toDecimal(req.MinMonthlyRevenue)),
		ExcludedSICs:      req.ExcludedSICs,
		RequiresHomeowner: req.RequiresHomeowner,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// UpdateLender godoc
// @ID           updateLender
// @Summary      Update a lender
// @Description  Update a lender's thresholds or active flag
// @Tags         lenders
// @Accept       json
// @Produce      json
// @Param        id path string true "Lender ID" format(uuid)
// @Param        request body UpdateLenderRequest true "Lender update request"
// @Success      200 {object} APIResponse[fundingapp.LenderDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /lenders/{id} [put]
func (h *EligibilityHandler) UpdateLender(c *gin.Context) {
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

	lenderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lender ID format")
		return
	}

	var req UpdateLenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := fundingapp.UpdateLenderInput{
		TenantID:          tenantID,
		Actor:             fundingapp.Actor{UserID: userID, Role: role},
		LenderID:          lenderID,
		MinAmount:         toMoneyPtr(req.MinAmount),
		MaxAmount:         toMoneyPtr(req.MaxAmount),
		MinMonthsTrading:  req.MinMonthsTrading,
		MinMonthlyRevenue: toMoneyPtr(req.MinMonthlyRevenue),
		ExcludedSICs:      req.ExcludedSICs,
		RequiresHomeowner: req.RequiresHomeowner,
		Active:            req.Active,
	}

	result, err := h.eligibilityService.UpdateLender(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListLenders godoc
// @ID           listLenders
// @Summary      List lenders
// @Description  List the lender panel, including inactive lenders
// @Tags         lenders
// @Produce      json
// @Success      200 {object} APIResponse[[]fundingapp.LenderDTO]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /lenders [get]
func (h *EligibilityHandler) ListLenders(c *gin.Context) {
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

	results, err := h.eligibilityService.ListLenders(c.Request.Context(), tenantID, fundingapp.Actor{UserID: userID, Role: role})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// DeleteLender godoc
// @ID           deleteLender
// @Summary      Remove a lender
// @Description  Remove a lender from the panel
// @Tags         lenders
// @Produce      json
// @Param        id path string true "Lender ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /lenders/{id} [delete]
func (h *EligibilityHandler) DeleteLender(c *gin.Context) {
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

	lenderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lender ID format")
		return
	}

	if err := h.eligibilityService.DeleteLender(c.Request.Context(), tenantID, fundingapp.Actor{UserID: userID, Role: role}, lenderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
