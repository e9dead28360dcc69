package handler

import (
	companyapp "github.com/brokerhub/backend/internal/application/company"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegistryHandler handles company registry lookup endpoints
type RegistryHandler struct {
	BaseHandler
	registryService *companyapp.RegistryService
}

// NewRegistryHandler creates a new RegistryHandler
func NewRegistryHandler(registryService *companyapp.RegistryService) *RegistryHandler {
	return &RegistryHandler{
		registryService: registryService,
	}
}

// Lookup godoc
// @ID           lookupRegistry
// @Summary      Look up a registry record
// @Description  Fetch a single company record from the national registry by registration number
// @Tags         registry
// @Produce      json
// @Param        number path string true "Registration number" example(01234567)
// @Success      200 {object} APIResponse[company.RegistryResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /registry/companies/{number} [get]
func (h *RegistryHandler) Lookup(c *gin.Context) {
	result, err := h.registryService.Lookup(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Search godoc
// @ID           searchRegistry
// @Summary      Search registry records
// @Description  Search the national registry by company name
// @Tags         registry
// @Produce      json
// @Param        q query string true "Company name search term" minlength(2)
// @Success      200 {object} APIResponse[[]company.RegistryResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /registry/companies [get]
func (h *RegistryHandler) Search(c *gin.Context) {
	results, err := h.registryService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// CreateFromRegistry godoc
// @ID           createCompanyFromRegistry
// @Summary      Import a company from the registry
// @Description  Create a company prefilled from its registry record
// @Tags         registry
// @Accept       json
// @Produce      json
// @Param        request body CreateFromRegistryRequest true "Import request"
// @Success      201 {object} APIResponse[companyapp.CompanyDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /registry/companies/import [post]
func (h *RegistryHandler) CreateFromRegistry(c *gin.Context) {
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

	var req CreateFromRegistryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := companyapp.CreateFromRegistryInput{
		TenantID:           tenantID,
		Actor:              companyapp.Actor{UserID: userID, Role: role},
		RegistrationNumber: req.RegistrationNumber,
	}
	if req.OwnerID != "" {
		ownerID, err := uuid.Parse(req.OwnerID)
		if err != nil {
			h.BadRequest(c, "Invalid owner ID format")
			return
		}
		input.OwnerID = ownerID
	}

	result, err := h.registryService.CreateFromRegistry(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
