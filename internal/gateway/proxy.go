package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"reditrend/internal/api/errors"
)

const apiPrefix = "/api/v1"

// newProxy builds a reverse proxy for one gateway route. An exact hit
// on the route prefix forwards to the service's root operation, so
// /api/v1/upload becomes /upload; deeper paths drop the whole prefix,
// so /api/v1/upload/auth/url becomes /auth/url. A connection failure
// renders the standard error envelope instead of a bare 502.
func newProxy(target string, prefix string, logger *slog.Logger) (gin.HandlerFunc, error) {
	targetURL, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse proxy target %s: %w", target, err)
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)
	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		if req.URL.Path == prefix || req.URL.Path == prefix+"/" {
			req.URL.Path = strings.TrimPrefix(prefix, apiPrefix)
		} else {
			req.URL.Path = "/" + strings.TrimPrefix(strings.TrimPrefix(req.URL.Path, prefix), "/")
		}
		req.Host = targetURL.Host
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("proxy error", "target", target, "path", r.URL.Path, "error", err)
		apiErr := errors.NewServiceUnavailableError("Upstream service unavailable")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(apiErr.HTTPStatus())
		fmt.Fprintf(w, `{"kind":%q,"message":%q}`, apiErr.Kind, apiErr.Message)
	}

	return func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
	}, nil
}
