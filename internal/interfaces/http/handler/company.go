package handler

import (
	companyapp "github.com/brokerhub/backend/internal/application/company"
	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHandler handles company API endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *companyapp.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *companyapp.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// toAddress converts an address request to the domain value object
func toAddress(req *AddressRequest) (valueobject.Address, error) {
	opts := []valueobject.AddressOption{}
	if req.Line2 != "" {
		opts = append(opts, valueobject.WithLine2(req.Line2))
	}
	if req.Country != "" {
		opts = append(opts, valueobject.WithCountry(req.Country))
	}
	return valueobject.NewAddress(req.Line1, req.City, req.Postcode, opts...)
}

// toDirectors converts director requests to the domain form
func toDirectors(reqs []DirectorRequest) []company.Director {
	if reqs == nil {
		return nil
	}
	directors := make([]company.Director, len(reqs))
	for i, d := range reqs {
		directors[i] = company.Director{
			Name:        d.Name,
			Role:        d.Role,
			AppointedOn: d.AppointedOn,
		}
	}
	return directors
}

// Create godoc
// @ID           createCompany
// @Summary      Create a company
// @Description  Create a borrowing company owned by a client
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        request body CreateCompanyRequest true "Company creation request"
// @Success      201 {object} APIResponse[companyapp.CompanyDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
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

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := companyapp.CreateCompanyInput{
		TenantID:    tenantID,
		Actor:       companyapp.Actor{UserID: userID, Role: role},
		LegalName:   req.LegalName,
		TradingName: req.TradingName,
		Type:        company.CompanyType(req.Type),
	}
	if req.OwnerID != "" {
		ownerID, err := uuid.Parse(req.OwnerID)
		if err != nil {
			h.BadRequest(c, "Invalid owner ID format")
			return
		}
		input.OwnerID = ownerID
	}

	result, err := h.companyService.CreateCompany(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get godoc
// @ID           getCompany
// @Summary      Get a company
// @Description  Get a single company visible to the caller
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} APIResponse[companyapp.CompanyDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
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

	result, err := h.companyService.GetCompany(c.Request.Context(), tenantID, companyapp.Actor{UserID: userID, Role: role}, companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @ID           listCompanies
// @Summary      List companies
// @Description  List companies visible to the caller: clients see their own, partners their book, admins everything
// @Tags         companies
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]companyapp.CompanyDTO]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
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

	var listReq struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.companyService.ListCompanies(c.Request.Context(), companyapp.ListCompaniesInput{
		TenantID: tenantID,
		Actor:    companyapp.Actor{UserID: userID, Role: role},
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Companies, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateCompany
// @Summary      Update a company
// @Description  Update company details; omitted fields are unchanged
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Param        request body UpdateCompanyRequest true "Company update request"
// @Success      200 {object} APIResponse[companyapp.CompanyDTO]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
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

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := companyapp.UpdateCompanyInput{
		TenantID:           tenantID,
		Actor:              companyapp.Actor{UserID: userID, Role: role},
		CompanyID:          companyID,
		LegalName:          req.LegalName,
		TradingName:        req.TradingName,
		RegistrationNumber: req.RegistrationNumber,
		SICCode:            req.SICCode,
		IncorporatedOn:     req.IncorporatedOn,
		Directors:          toDirectors(req.Directors),
	}
	if req.Address != nil {
		address, err := toAddress(req.Address)
		if err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		input.Address = &address
	}
	if req.MonthlyRevenue != nil {
		revenue := valueobject.NewMoneyGBP(toDecimal(*req.MonthlyRevenue))
		input.MonthlyRevenue = &revenue
	}

	result, err := h.companyService.UpdateCompany(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Archive godoc
// @ID           archiveCompany
// @Summary      Archive a company
// @Description  Archive a company; archived companies reject new applications
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id}/archive [post]
func (h *CompanyHandler) Archive(c *gin.Context) {
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

	if err := h.companyService.ArchiveCompany(c.Request.Context(), tenantID, companyapp.Actor{UserID: userID, Role: role}, companyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Company archived"})
}

// Restore godoc
// @ID           restoreCompany
// @Summary      Restore a company
// @Description  Restore an archived company to active
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id}/restore [post]
func (h *CompanyHandler) Restore(c *gin.Context) {
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

	if err := h.companyService.RestoreCompany(c.Request.Context(), tenantID, companyapp.Actor{UserID: userID, Role: role}, companyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Company restored"})
}

// Reassign godoc
// @ID           reassignCompany
// @Summary      Reassign company ownership
// @Description  Transfer a company to a different client owner
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Param        request body ReassignCompanyRequest true "Reassignment request"
// @Success      200 {object} APIResponse[MessageData]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id}/reassign [post]
func (h *CompanyHandler) Reassign(c *gin.Context) {
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

	var req ReassignCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	newOwnerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	if err := h.companyService.ReassignCompany(c.Request.Context(), tenantID, companyapp.Actor{UserID: userID, Role: role}, companyID, newOwnerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MessageData{Message: "Company reassigned"})
}
