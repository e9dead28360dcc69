package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestFormatValidationErrors(t *testing.T) {
	type inviteRequest struct {
		Email    string `json:"email" binding:"required,email"`
		LoanTerm int    `json:"loan_term" binding:"required,min=6"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/users/invite", func(c *gin.Context) {
		var req inviteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("returns validation errors for invalid input", func(t *testing.T) {
		body := strings.NewReader(`{"email": "invalid", "loan_term": 3}`)
		req := httptest.NewRequest("POST", "/api/v1/users/invite", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ValidationErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)

		assert.False(t, resp.Success)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		assert.Len(t, resp.Error.Details, 2)
	})

	t.Run("returns success for valid input", func(t *testing.T) {
		body := strings.NewReader(`{"email": "broker@acmecapital.test", "loan_term": 24}`)
		req := httptest.NewRequest("POST", "/api/v1/users/invite", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestValidationMessage(t *testing.T) {
	type constraintInput struct {
		Required string `binding:"required"`
		Email    string `binding:"email"`
		Min      string `binding:"min=5"`
		Max      string `binding:"max=10"`
		Len      string `binding:"len=5"`
		UUID     string `binding:"uuid"`
		OneOf    string `binding:"oneof=a b c"`
		GTE      int    `binding:"gte=10"`
		LTE      int    `binding:"lte=100"`
		GT       int    `binding:"gt=0"`
		LT       int    `binding:"lt=1000"`
		URL      string `binding:"url"`
		Numeric  string `binding:"numeric"`
	}

	v := validator.New()

	tests := []struct {
		field    string
		value    interface{}
		expected string
	}{
		{"Required", "", "This field is required"},
		{"Email", "invalid", "Invalid email format"},
		{"Min", "ab", "Must be at least 5 characters"},
		{"Max", "this is way too long", "Must be at most 10 characters"},
		{"Len", "ab", "Must be exactly 5 characters"},
		{"UUID", "invalid", "Invalid UUID format"},
		{"OneOf", "d", "Must be one of: a b c"},
		{"URL", "invalid", "Invalid URL format"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			obj := constraintInput{}
			err := v.Struct(obj)
			if err != nil {
				validationErrs := err.(validator.ValidationErrors)
				for _, e := range validationErrs {
					if e.Field() == tt.field {
						msg := validationMessage(e)
						assert.Contains(t, msg, tt.expected[:10])
						return
					}
				}
			}
		})
	}
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("handles validator.ValidationErrors", func(t *testing.T) {
		type createLeadInput struct {
			ContactName string `json:"contact_name" binding:"required"`
		}

		router := gin.New()
		router.POST("/api/v1/leads", func(c *gin.Context) {
			var input createLeadInput
			if err := c.ShouldBindJSON(&input); err != nil {
				HandleValidationError(c, err)
				return
			}
		})

		body := strings.NewReader(`{}`)
		req := httptest.NewRequest("POST", "/api/v1/leads", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}
