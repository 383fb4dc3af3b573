package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"reditrend/internal/config"
)

// ServiceHealth is one downstream service's health as seen from the
// gateway.
type ServiceHealth struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// HealthReport aggregates every downstream check. Status is "OK" only
// when every service reported exactly "OK"; anything else, including an
// unreachable service, degrades the whole report.
type HealthReport struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}

// HealthChecker probes the downstream services concurrently. Each probe
// gets its own timeout so one hung service cannot starve the others.
type HealthChecker struct {
	httpClient *http.Client
	endpoints  map[string]string
	order      []string
	timeout    time.Duration
}

// NewHealthChecker creates a checker over the configured endpoints.
func NewHealthChecker(services config.Services) *HealthChecker {
	e := services.Endpoints
	return &HealthChecker{
		httpClient: &http.Client{},
		endpoints: map[string]string{
			"orchestrator": e.Orchestrator,
			"trends":       e.Trends,
			"script":       e.Script,
			"voice":        e.Voice,
			"video":        e.Video,
			"upload":       e.Upload,
			"analytics":    e.Analytics,
		},
		order:   []string{"orchestrator", "trends", "script", "voice", "video", "upload", "analytics"},
		timeout: services.Timeouts.Health,
	}
}

// CheckAll probes every service and aggregates the result. The fan-out
// always runs to completion; failures land in the report, not in an
// error return.
func (h *HealthChecker) CheckAll(ctx context.Context) HealthReport {
	results := make([]ServiceHealth, len(h.order))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range h.order {
		i, name := i, name
		g.Go(func() error {
			results[i] = h.check(gctx, name, h.endpoints[name])
			return nil
		})
	}
	g.Wait()

	report := HealthReport{Status: "OK", Services: results}
	for _, s := range results {
		if s.Status != "OK" {
			report.Status = "Degraded"
			break
		}
	}
	return report
}

func (h *HealthChecker) check(ctx context.Context, name, baseURL string) ServiceHealth {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	result := ServiceHealth{Service: name, Status: "Unavailable"}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Sprintf("status %d", resp.StatusCode)
		return result
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		result.Error = "invalid health response"
		return result
	}

	result.Status = body.Status
	if body.Status != "OK" {
		result.Error = fmt.Sprintf("reported status %q", body.Status)
	}
	return result
}
