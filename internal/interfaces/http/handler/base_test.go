package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcm/backend/internal/domain/connector"
	"github.com/hcm/backend/internal/domain/hcm"
	"github.com/hcm/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set("X-Request-ID", "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name: "context wins over header",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-request-id")
				c.Request.Header.Set("X-Request-ID", "header-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name:       "empty when unset",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(c)

			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandler_HandleDomainError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"config not found", hcm.ErrConfigNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"sync log not found", hcm.ErrSyncLogNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"sync already running", hcm.ErrSyncAlreadyRunning, http.StatusConflict, dto.ErrCodeSyncInProgress},
		{"config inactive", hcm.ErrConfigInactive, http.StatusUnprocessableEntity, dto.ErrCodeConfigInactive},
		{"invalid sync type", hcm.ErrInvalidSyncType, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"unknown vendor", connector.ErrVendorUnknown, http.StatusBadRequest, dto.ErrCodeVendorUnknown},
		{"vendor not configured", connector.ErrVendorNotConfigured, http.StatusUnprocessableEntity, dto.ErrCodeConfigInvalid},
		{"unexpected error", assert.AnError, http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestBaseHandler_HandleDomainError_NilErr(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	(&BaseHandler{}).HandleDomainError(c, nil)

	assert.Empty(t, w.Body.Bytes())
}

func TestBaseHandler_Error_IncludesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(RequestIDKey, "req-123")

	(&BaseHandler{}).BadRequest(c, "bad input")

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Equal(t, "bad input", resp.Error.Message)
}
