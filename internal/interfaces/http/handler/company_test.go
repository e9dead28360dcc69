package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	companyapp "github.com/brokerhub/backend/internal/application/company"
	"github.com/brokerhub/backend/internal/domain/company"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCompanyTestRouter(companyRepo *MockCompanyRepository, assignmentRepo *MockAssignmentRepository, tenantID, userID uuid.UUID, role identity.UserRole) *gin.Engine {
	svc := companyapp.NewCompanyService(companyRepo, assignmentRepo, zap.NewNop())
	h := NewCompanyHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, tenantID, userID, string(role))
	})
	router.POST("/companies", h.Create)
	router.GET("/companies", h.List)
	router.GET("/companies/:id", h.Get)
	router.PUT("/companies/:id", h.Update)
	router.POST("/companies/:id/archive", h.Archive)
	return router
}

func testCompany(t *testing.T, tenantID, ownerID uuid.UUID) *company.Company {
	t.Helper()
	c, err := company.NewCompany(tenantID, ownerID, "Acme Widgets Ltd", company.CompanyTypeLtd)
	require.NoError(t, err)
	c.ClearDomainEvents()
	return c
}

func TestCompanyHandlerCreate(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("client creates own company", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		router := newCompanyTestRouter(companyRepo, new(MockAssignmentRepository), tenantID, userID, identity.RoleClient)

		companyRepo.On("Save", mock.Anything, mock.AnythingOfType("*company.Company")).Return(nil)

		body, _ := json.Marshal(CreateCompanyRequest{
			LegalName: "Acme Widgets Ltd",
			Type:      "ltd",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/companies", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		companyRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown company type", func(t *testing.T) {
		router := newCompanyTestRouter(new(MockCompanyRepository), new(MockAssignmentRepository), tenantID, userID, identity.RoleClient)

		body := []byte(`{"legal_name":"Acme Widgets Ltd","type":"charity"}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/companies", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("client cannot create for another owner", func(t *testing.T) {
		router := newCompanyTestRouter(new(MockCompanyRepository), new(MockAssignmentRepository), tenantID, userID, identity.RoleClient)

		body, _ := json.Marshal(CreateCompanyRequest{
			LegalName: "Acme Widgets Ltd",
			Type:      "ltd",
			OwnerID:   uuid.New().String(),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/companies", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCompanyHandlerGet(t *testing.T) {
	tenantID := uuid.New()
	ownerID := uuid.New()

	t.Run("owner reads own company", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		router := newCompanyTestRouter(companyRepo, new(MockAssignmentRepository), tenantID, ownerID, identity.RoleClient)
		c := testCompany(t, tenantID, ownerID)

		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, c.ID).Return(c, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/companies/"+c.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("another client is forbidden", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		router := newCompanyTestRouter(companyRepo, new(MockAssignmentRepository), tenantID, uuid.New(), identity.RoleClient)
		c := testCompany(t, tenantID, ownerID)

		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, c.ID).Return(c, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/companies/"+c.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid id is a bad request", func(t *testing.T) {
		router := newCompanyTestRouter(new(MockCompanyRepository), new(MockAssignmentRepository), tenantID, ownerID, identity.RoleClient)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/companies/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCompanyHandlerList(t *testing.T) {
	tenantID := uuid.New()
	ownerID := uuid.New()

	t.Run("client lists own companies with meta", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		router := newCompanyTestRouter(companyRepo, new(MockAssignmentRepository), tenantID, ownerID, identity.RoleClient)
		c := testCompany(t, tenantID, ownerID)

		companyRepo.On("FindByOwner", mock.Anything, tenantID, ownerID, mock.Anything).Return([]company.Company{*c}, nil)
		companyRepo.On("CountByOwner", mock.Anything, tenantID, ownerID).Return(int64(1), nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/companies?page=1&page_size=10", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})
}

func TestCompanyHandlerArchive(t *testing.T) {
	tenantID := uuid.New()
	ownerID := uuid.New()

	t.Run("owner archives own company", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		router := newCompanyTestRouter(companyRepo, new(MockAssignmentRepository), tenantID, ownerID, identity.RoleClient)
		c := testCompany(t, tenantID, ownerID)

		companyRepo.On("FindByIDForTenant", mock.Anything, tenantID, c.ID).Return(c, nil)
		companyRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*company.Company")).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/companies/"+c.ID.String()+"/archive", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		companyRepo.AssertExpectations(t)
	})
}
