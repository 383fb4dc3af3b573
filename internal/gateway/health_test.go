package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reditrend/internal/config"
)

func healthServer(t *testing.T, status string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"` + status + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func servicesFor(urls map[string]string) config.Services {
	services := config.DefaultServices()
	services.Timeouts.Health = 2 * time.Second
	e := &services.Endpoints
	for name, url := range urls {
		switch name {
		case "orchestrator":
			e.Orchestrator = url
		case "trends":
			e.Trends = url
		case "script":
			e.Script = url
		case "voice":
			e.Voice = url
		case "video":
			e.Video = url
		case "upload":
			e.Upload = url
		case "analytics":
			e.Analytics = url
		}
	}
	return services
}

func allHealthy(t *testing.T) map[string]string {
	urls := make(map[string]string)
	for _, name := range []string{"orchestrator", "trends", "script", "voice", "video", "upload", "analytics"} {
		urls[name] = healthServer(t, "OK").URL
	}
	return urls
}

func TestCheckAll_AllHealthy(t *testing.T) {
	checker := NewHealthChecker(servicesFor(allHealthy(t)))

	report := checker.CheckAll(context.Background())
	assert.Equal(t, "OK", report.Status)
	require.Len(t, report.Services, 7)
	for _, s := range report.Services {
		assert.Equal(t, "OK", s.Status, s.Service)
		assert.Empty(t, s.Error, s.Service)
	}
}

func TestCheckAll_OneUnreachableDegrades(t *testing.T) {
	urls := allHealthy(t)
	urls["video"] = "http://127.0.0.1:1" // nothing listens here

	checker := NewHealthChecker(servicesFor(urls))
	report := checker.CheckAll(context.Background())

	assert.Equal(t, "Degraded", report.Status)

	byName := make(map[string]ServiceHealth)
	for _, s := range report.Services {
		byName[s.Service] = s
	}
	assert.Equal(t, "Unavailable", byName["video"].Status)
	assert.NotEmpty(t, byName["video"].Error)

	// The broken service must not mask the healthy ones.
	assert.Equal(t, "OK", byName["trends"].Status)
	assert.Equal(t, "OK", byName["analytics"].Status)
}

func TestCheckAll_NonOKStatusDegrades(t *testing.T) {
	urls := allHealthy(t)
	urls["upload"] = healthServer(t, "Starting").URL

	checker := NewHealthChecker(servicesFor(urls))
	report := checker.CheckAll(context.Background())

	assert.Equal(t, "Degraded", report.Status)

	for _, s := range report.Services {
		if s.Service == "upload" {
			assert.Equal(t, "Starting", s.Status)
			assert.NotEmpty(t, s.Error)
		}
	}
}
