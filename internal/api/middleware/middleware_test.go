package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reditrend/internal/api/errors"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := gin.New()
	router.Use(RequestID())
	router.Use(ErrorHandler(logger))
	return router
}

type createReq struct {
	Title string `json:"title" binding:"required"`
	Style string `json:"style" binding:"omitempty,oneof=podcast slideshow"`
}

func TestValidateRequest_FieldErrors(t *testing.T) {
	router := testRouter()
	router.POST("/create", func(c *gin.Context) {
		var req createReq
		if err := ValidateRequest(c, &req); err != nil {
			HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"title": req.Title})
	})

	body := bytes.NewBufferString(`{"style":"opera"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Missing required fields are insufficient input, a 400.
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr errors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, errors.KindValidation, apiErr.Kind)
	assert.Equal(t, "is required", apiErr.Details["title"])
	assert.Equal(t, "must be one of the allowed values", apiErr.Details["style"])
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestValidateRequest_MalformedJSON(t *testing.T) {
	router := testRouter()
	router.POST("/create", func(c *gin.Context) {
		var req createReq
		if err := ValidateRequest(c, &req); err != nil {
			HandleError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create", bytes.NewBufferString(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr errors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, "invalid JSON format", apiErr.Details["request"])
}

func TestHandleError_MapsKindToStatus(t *testing.T) {
	router := testRouter()
	router.GET("/missing", func(c *gin.Context) {
		HandleError(c, errors.NewNotFoundError("Tracked video yt123"))
	})
	router.GET("/dup", func(c *gin.Context) {
		HandleError(c, errors.NewConflictError("Video yt123 is already tracked"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dup", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	router := testRouter()
	router.GET("/boom", func(c *gin.Context) {
		panic(errors.NewUnauthorizedError("YouTube authorization required", "https://example.com/auth"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var apiErr errors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, "https://example.com/auth", apiErr.AuthURL)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestRequestID_RespectsIncomingHeader(t *testing.T) {
	router := testRouter()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString("request_id")})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), "abc-123")

	// Without the header a fresh id is minted.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
