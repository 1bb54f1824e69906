package httputil_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/httputil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type searchRequest struct {
	Latitude *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Radius   float64  `json:"radius" binding:"omitempty,gt=0"`
}

func serve(t *testing.T, h gin.HandlerFunc, body string) (int, httputil.ErrorResponse) {
	t.Helper()
	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		c.Set("request_id", "req-7")
		h(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestValidationError(t *testing.T) {
	bind := func(c *gin.Context) {
		var req searchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.ValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, httputil.ErrorResponse{})
	}

	t.Run("lists failing fields", func(t *testing.T) {
		status, resp := serve(t, bind, `{"latitude": null, "radius": -1}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperror.CodeValidation, resp.Code)
		assert.Equal(t, "req-7", resp.RequestID)
		assert.Equal(t, map[string]string{"Latitude": "required", "Radius": "gt=0"}, resp.Fields)
	})

	t.Run("passes through decode errors", func(t *testing.T) {
		status, resp := serve(t, bind, `{"latitude": "north"}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperror.CodeValidation, resp.Code)
		assert.Empty(t, resp.Fields)
		assert.NotEmpty(t, resp.Error)
	})
}

func TestHandleError(t *testing.T) {
	t.Run("app error keeps its status and code", func(t *testing.T) {
		status, resp := serve(t, func(c *gin.Context) {
			httputil.HandleError(c, apperror.RadiusTooLarge("radius exceeds 500000 meters"))
		}, "")

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, apperror.CodeRadiusTooLarge, resp.Code)
		assert.Equal(t, "radius exceeds 500000 meters", resp.Error)
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		status, resp := serve(t, func(c *gin.Context) {
			httputil.HandleError(c, errors.New("pq: connection reset"))
		}, "")

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, apperror.CodeInternal, resp.Code)
		assert.NotContains(t, resp.Error, "pq")
	})
}
