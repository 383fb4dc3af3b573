package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reditrend/internal/config"
)

// echoBackend records the path each proxied request arrived on.
func echoBackend(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &paths
}

func gatewayRouter(t *testing.T, services config.Services) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := gin.New()

	handler := NewHandler(NewHealthChecker(services), services, logger)
	require.NoError(t, handler.Register(router))
	return router
}

// closeNotifyRecorder makes httptest.ResponseRecorder satisfy
// http.CloseNotifier, which httputil.ReverseProxy still requires of the
// response writer on Go < 1.22.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
}

func (c closeNotifyRecorder) CloseNotify() <-chan bool { return make(chan bool) }

func TestProxy_PathRewrite(t *testing.T) {
	backend, paths := echoBackend(t)

	services := config.DefaultServices()
	services.Endpoints.Upload = backend.URL
	router := gatewayRouter(t, services)

	tests := []struct {
		requestPath string
		wantPath    string
	}{
		// An exact prefix hit maps to the service's root operation.
		{"/api/v1/upload", "/upload"},
		// Deeper paths drop the whole prefix.
		{"/api/v1/upload/auth/url", "/auth/url"},
		{"/api/v1/upload/auth/status", "/auth/status"},
	}

	for _, tt := range tests {
		t.Run(tt.requestPath, func(t *testing.T) {
			*paths = nil
			w := httptest.NewRecorder()
			router.ServeHTTP(closeNotifyRecorder{w}, httptest.NewRequest(http.MethodGet, tt.requestPath, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			require.Len(t, *paths, 1)
			assert.Equal(t, tt.wantPath, (*paths)[0])
		})
	}
}

func TestProxy_UnreachableServiceRendersEnvelope(t *testing.T) {
	services := config.DefaultServices()
	services.Endpoints.Video = "http://127.0.0.1:1"
	router := gatewayRouter(t, services)

	w := httptest.NewRecorder()
	router.ServeHTTP(closeNotifyRecorder{w}, httptest.NewRequest(http.MethodPost, "/api/v1/video/create", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "service_unavailable", body.Kind)
	assert.NotEmpty(t, body.Message)
}
