package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/brokerhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setJWTContext simulates an authenticated request without a real token.
func setJWTContext(c *gin.Context, tenantID, userID uuid.UUID, role string) {
	c.Set("jwt_tenant_id", tenantID.String())
	c.Set("jwt_user_id", userID.String())
	c.Set("jwt_role", role)
}

func newHandlerContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context string",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "req-7f2a")
			},
			expectedID: "req-7f2a",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set(RequestIDKey, "req-hdr-3b")
			},
			expectedID: "req-hdr-3b",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "req-ctx")
				c.Request.Header.Set(RequestIDKey, "req-hdr")
			},
			expectedID: "req-ctx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newHandlerContext()
			tt.setup(c)

			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newHandlerContext()

	h.Success(c, map[string]string{"status": "qualified"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newHandlerContext()

	h.SuccessWithMeta(c, []string{"ld-42", "ld-43"}, 100, 1, 10)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(100), resp.Meta.Total)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	c, w := newHandlerContext()

	h.Created(c, map[string]string{"id": uuid.NewString()})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandlerNoContent(t *testing.T) {
	h := &BaseHandler{}

	router := gin.New()
	router.DELETE("/api/v1/leads/:id", func(c *gin.Context) {
		h.NoContent(c)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/v1/leads/ld-42", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestBaseHandlerErrorMethods(t *testing.T) {
	tests := []struct {
		name         string
		method       func(*BaseHandler, *gin.Context)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "BadRequest",
			method: func(h *BaseHandler, c *gin.Context) {
				h.BadRequest(c, "Invalid request")
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  dto.ErrCodeBadRequest,
		},
		{
			name: "NotFound",
			method: func(h *BaseHandler, c *gin.Context) {
				h.NotFound(c, "Lead not found")
			},
			expectedCode: http.StatusNotFound,
			expectedErr:  dto.ErrCodeNotFound,
		},
		{
			name: "Unauthorized",
			method: func(h *BaseHandler, c *gin.Context) {
				h.Unauthorized(c, "Not authenticated")
			},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  dto.ErrCodeUnauthorized,
		},
		{
			name: "Forbidden",
			method: func(h *BaseHandler, c *gin.Context) {
				h.Forbidden(c, "Access denied")
			},
			expectedCode: http.StatusForbidden,
			expectedErr:  dto.ErrCodeForbidden,
		},
		{
			name: "Conflict",
			method: func(h *BaseHandler, c *gin.Context) {
				h.Conflict(c, "Lead already converted")
			},
			expectedCode: http.StatusConflict,
			expectedErr:  dto.ErrCodeConflict,
		},
		{
			name: "InternalError",
			method: func(h *BaseHandler, c *gin.Context) {
				h.InternalError(c, "Server error")
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  dto.ErrCodeInternal,
		},
		{
			name: "TooManyRequests",
			method: func(h *BaseHandler, c *gin.Context) {
				h.TooManyRequests(c, "Rate limit exceeded")
			},
			expectedCode: http.StatusTooManyRequests,
			expectedErr:  dto.ErrCodeRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newHandlerContext()

			tt.method(h, c)

			assert.Equal(t, tt.expectedCode, w.Code)

			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
		})
	}
}

func TestBaseHandlerErrorWithRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newHandlerContext()
	c.Set(RequestIDKey, "req-7f2a")

	h.BadRequest(c, "Invalid request")

	assert.Equal(t, "req-7f2a", decodeResponse(t, w).Error.RequestID)
}

func TestBaseHandlerErrorWithCode(t *testing.T) {
	h := &BaseHandler{}
	c, w := newHandlerContext()

	h.ErrorWithCode(c, dto.ErrCodeBusinessRule, "Document limit reached")

	// Business rule violations map to 422.
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeBusinessRule, decodeResponse(t, w).Error.Code)
}

func TestBaseHandlerValidationError(t *testing.T) {
	h := &BaseHandler{}
	c, w := newHandlerContext()
	c.Set(RequestIDKey, "req-7f2a")

	h.ValidationError(c, []dto.ValidationDetail{
		{Field: "email", Message: "Invalid format"},
		{Field: "contact_name", Message: "Required"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-7f2a", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
}

func TestBaseHandlerHandleDomainError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "not found",
			err:          shared.ErrNotFound,
			expectedCode: http.StatusNotFound,
			expectedErr:  dto.ErrCodeNotFound,
		},
		{
			name:         "already exists",
			err:          shared.ErrAlreadyExists,
			expectedCode: http.StatusConflict,
			expectedErr:  dto.ErrCodeAlreadyExists,
		},
		{
			name:         "invalid input",
			err:          shared.ErrInvalidInput,
			expectedCode: http.StatusBadRequest,
			expectedErr:  dto.ErrCodeInvalidInput,
		},
		{
			name:         "unauthorized",
			err:          shared.ErrUnauthorized,
			expectedCode: http.StatusUnauthorized,
			expectedErr:  dto.ErrCodeUnauthorized,
		},
		{
			name:         "forbidden",
			err:          shared.ErrForbidden,
			expectedCode: http.StatusForbidden,
			expectedErr:  dto.ErrCodeForbidden,
		},
		{
			name:         "invalid state",
			err:          shared.ErrInvalidState,
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  dto.ErrCodeInvalidState,
		},
		{
			name:         "concurrency conflict",
			err:          shared.ErrConcurrencyConflict,
			expectedCode: http.StatusConflict,
			expectedErr:  dto.ErrCodeConcurrencyConflict,
		},
		{
			name:         "registry unavailable",
			err:          shared.NewDomainError("REGISTRY_UNAVAILABLE", "Company registry is currently unavailable"),
			expectedCode: http.StatusBadGateway,
			expectedErr:  dto.ErrCodeUpstreamUnavailable,
		},
		{
			name:         "invalid transition",
			err:          shared.NewDomainError("INVALID_TRANSITION", "Stage transition not allowed"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedErr:  dto.ErrCodeInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newHandlerContext()

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)

			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.expectedErr, resp.Error.Code)
		})
	}
}

func TestBaseHandlerHandleDomainErrorWithRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newHandlerContext()
	c.Set(RequestIDKey, "req-7f2a")

	h.HandleDomainError(c, shared.ErrNotFound)

	assert.Equal(t, "req-7f2a", decodeResponse(t, w).Error.RequestID)
}

func TestBaseHandlerHandleNonDomainError(t *testing.T) {
	h := &BaseHandler{}
	c, w := newHandlerContext()

	// A plain error must not leak its message to the client.
	h.HandleDomainError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Message)
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newHandlerContext()

		h.HandleError(c, nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("domain error maps to its status", func(t *testing.T) {
		c, w := newHandlerContext()

		h.HandleError(c, shared.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("plain error maps to 500", func(t *testing.T) {
		c, w := newHandlerContext()

		h.HandleError(c, assert.AnError)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("wrapped domain error unwraps", func(t *testing.T) {
		c, w := newHandlerContext()

		h.HandleError(c, fmt.Errorf("loading lead ld-42: %w", shared.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, decodeResponse(t, w).Error.Code)
	})
}

func TestBaseHandlerUnprocessableEntity(t *testing.T) {
	h := &BaseHandler{}
	c, w := newHandlerContext()

	h.UnprocessableEntity(c, dto.ErrCodeBusinessRule, "Business rule violated")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeBusinessRule, decodeResponse(t, w).Error.Code)
}
