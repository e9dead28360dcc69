package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

func newRegistryTestRouter(client *MockRegistryClient, companyRepo *MockCompanyRepository, tenantID, userID uuid.UUID, role identity.UserRole) *gin.Engine {
	svc := companyapp.NewRegistryService(client, companyRepo, zap.NewNop())
	h := NewRegistryHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, tenantID, userID, string(role))
	})
	router.GET("/registry/companies", h.Search)
	router.GET("/registry/companies/:number", h.Lookup)
	router.POST("/registry/companies/import", h.CreateFromRegistry)
	return router
}

func TestRegistryHandlerLookup(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("returns registry record", func(t *testing.T) {
		client := new(MockRegistryClient)
		router := newRegistryTestRouter(client, new(MockCompanyRepository), tenantID, userID, identity.RoleClient)

		client.On("GetByNumber", mock.Anything, "01234567").Return(&company.RegistryResult{
			RegistrationNumber: "01234567",
			Name:               "ACME WIDGETS LIMITED",
			Status:             "active",
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/registry/companies/01234567", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("maps registry miss to 404", func(t *testing.T) {
		client := new(MockRegistryClient)
		router := newRegistryTestRouter(client, new(MockCompanyRepository), tenantID, userID, identity.RoleClient)

		client.On("GetByNumber", mock.Anything, "99999999").Return(nil, company.ErrRegistryNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/registry/companies/99999999", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("maps registry outage to 502", func(t *testing.T) {
		client := new(MockRegistryClient)
		router := newRegistryTestRouter(client, new(MockCompanyRepository), tenantID, userID, identity.RoleClient)

		client.On("GetByNumber", mock.Anything, "01234567").Return(nil, company.ErrRegistryUnavailable)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/registry/companies/01234567", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestRegistryHandlerSearch(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("returns matches", func(t *testing.T) {
		client := new(MockRegistryClient)
		router := newRegistryTestRouter(client, new(MockCompanyRepository), tenantID, userID, identity.RoleClient)

		client.On("SearchByName", mock.Anything, "acme", companyapp.RegistrySearchLimit).Return([]company.RegistryResult{
			{RegistrationNumber: "01234567", Name: "ACME WIDGETS LIMITED"},
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/registry/companies?q=acme", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects short search terms", func(t *testing.T) {
		router := newRegistryTestRouter(new(MockRegistryClient), new(MockCompanyRepository), tenantID, userID, identity.RoleClient)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/registry/companies?q=a", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegistryHandlerCreateFromRegistry(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("imports a record as a company", func(t *testing.T) {
		client := new(MockRegistryClient)
		companyRepo := new(MockCompanyRepository)
		router := newRegistryTestRouter(client, companyRepo, tenantID, userID, identity.RoleClient)

		companyRepo.On("ExistsByRegistrationNumber", mock.Anything, tenantID, "01234567").Return(false, nil)
		client.On("GetByNumber", mock.Anything, "01234567").Return(&company.RegistryResult{
			RegistrationNumber: "01234567",
			Name:               "ACME WIDGETS LIMITED",
			Type:               "ltd",
		}, nil)
		companyRepo.On("Save", mock.Anything, mock.AnythingOfType("*company.Company")).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/registry/companies/import", strings.NewReader(`{"registration_number":"01234567"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		companyRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate registration numbers", func(t *testing.T) {
		client := new(MockRegistryClient)
		companyRepo := new(MockCompanyRepository)
		router := newRegistryTestRouter(client, companyRepo, tenantID, userID, identity.RoleClient)

		companyRepo.On("ExistsByRegistrationNumber", mock.Anything, tenantID, "01234567").Return(true, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/registry/companies/import", strings.NewReader(`{"registration_number":"01234567"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
