package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The gateway's own /health is the aggregated dependency check, not a
// static liveness answer.
func TestGatewayHealth_AggregatesAtHealthPath(t *testing.T) {
	router := gatewayRouter(t, servicesFor(allHealthy(t)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var report HealthReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "OK", report.Status)
	assert.Len(t, report.Services, 7)
}

func TestGatewayHealth_DegradedDependencyIs503(t *testing.T) {
	urls := allHealthy(t)
	urls["voice"] = "http://127.0.0.1:1"
	router := gatewayRouter(t, servicesFor(urls))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var report HealthReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "Degraded", report.Status)
}
